package mapper

// nrom implements mapper 0 (NROM): no bank switching. A 16KiB PRG image is
// mirrored across the full $8000-$FFFF window; a 32KiB image fills it.
type nrom struct {
	media  Media
	mirror Mirror
}

func newNROM(media Media, hw Mirror) *nrom {
	return &nrom{media: media, mirror: hw}
}

func (m *nrom) CPURead(addr uint16) Result {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if len(m.media.PRGRAM) == 0 {
			return Result{Kind: Miss}
		}
		return Result{Kind: HitInternal, Value: m.media.PRGRAM[(addr-0x6000)%uint16(len(m.media.PRGRAM))]}
	case addr >= 0x8000:
		off := uint32(addr-0x8000) % uint32(len(m.media.PRG))
		return Result{Kind: Hit, Offset: off}
	default:
		return Result{Kind: Miss}
	}
}

func (m *nrom) CPUWrite(addr uint16, data uint8) Result {
	if addr >= 0x6000 && addr < 0x8000 && len(m.media.PRGRAM) > 0 {
		m.media.PRGRAM[(addr-0x6000)%uint16(len(m.media.PRGRAM))] = data
		return Result{Kind: Consumed}
	}
	return Result{Kind: Miss}
}

func (m *nrom) PPURead(addr uint16) Result {
	if addr < 0x2000 {
		return Result{Kind: Hit, Offset: uint32(addr) % uint32(len(m.media.CHR))}
	}
	return Result{Kind: Miss}
}

func (m *nrom) PPUWrite(addr uint16, data uint8) Result {
	if addr < 0x2000 && m.media.CHRIsRAM {
		m.media.CHR[uint32(addr)%uint32(len(m.media.CHR))] = data
		return Result{Kind: Hit, Offset: uint32(addr) % uint32(len(m.media.CHR))}
	}
	return Result{Kind: Miss}
}

func (m *nrom) MirrorMode() Mirror      { return m.mirror }
func (m *nrom) Scanline()               {}
func (m *nrom) IRQPending() bool        { return false }
func (m *nrom) IRQClear()               {}
func (m *nrom) Reset()                  {}
func (m *nrom) SaveState() []byte       { return nil }
func (m *nrom) LoadState(data []byte)   {}
