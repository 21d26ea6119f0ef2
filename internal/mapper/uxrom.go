package mapper

// uxrom implements mapper 2 (UxROM): a single 16KiB bank switchable at
// $8000-$BFFF; the last 16KiB bank is fixed at $C000-$FFFF. CHR is always
// 8KiB of RAM (UxROM boards carry no CHR-ROM).
type uxrom struct {
	media      Media
	mirror     Mirror
	prgBank    uint8
	lastPRGIdx int
}

func newUxROM(media Media, hw Mirror) *uxrom {
	return &uxrom{media: media, mirror: hw, lastPRGIdx: prgBanks16k(media.PRG) - 1}
}

func (m *uxrom) CPURead(addr uint16) Result {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if len(m.media.PRGRAM) == 0 {
			return Result{Kind: Miss}
		}
		return Result{Kind: HitInternal, Value: m.media.PRGRAM[(addr-0x6000)%uint16(len(m.media.PRGRAM))]}
	case addr >= 0x8000 && addr < 0xC000:
		bank := int(m.prgBank) % prgBanks16k(m.media.PRG)
		return Result{Kind: Hit, Offset: uint32(bank)*0x4000 + uint32(addr-0x8000)}
	case addr >= 0xC000:
		return Result{Kind: Hit, Offset: uint32(m.lastPRGIdx)*0x4000 + uint32(addr-0xC000)}
	default:
		return Result{Kind: Miss}
	}
}

func (m *uxrom) CPUWrite(addr uint16, data uint8) Result {
	if addr >= 0x8000 {
		m.prgBank = data & 0x0F
		return Result{Kind: Consumed}
	}
	if addr >= 0x6000 && len(m.media.PRGRAM) > 0 {
		m.media.PRGRAM[(addr-0x6000)%uint16(len(m.media.PRGRAM))] = data
		return Result{Kind: Consumed}
	}
	return Result{Kind: Miss}
}

func (m *uxrom) PPURead(addr uint16) Result {
	if addr < 0x2000 {
		return Result{Kind: Hit, Offset: uint32(addr) % uint32(len(m.media.CHR))}
	}
	return Result{Kind: Miss}
}

func (m *uxrom) PPUWrite(addr uint16, data uint8) Result {
	if addr < 0x2000 && m.media.CHRIsRAM {
		off := uint32(addr) % uint32(len(m.media.CHR))
		m.media.CHR[off] = data
		return Result{Kind: Hit, Offset: off}
	}
	return Result{Kind: Miss}
}

func (m *uxrom) MirrorMode() Mirror { return m.mirror }
func (m *uxrom) Scanline()          {}
func (m *uxrom) IRQPending() bool   { return false }
func (m *uxrom) IRQClear()          {}
func (m *uxrom) Reset()             { m.prgBank = 0 }

func (m *uxrom) SaveState() []byte { return []byte{m.prgBank} }
func (m *uxrom) LoadState(data []byte) {
	if len(data) > 0 {
		m.prgBank = data[0]
	}
}
