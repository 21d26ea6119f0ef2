package mapper

// gxrom implements mapper 66 (GxROM): one register byte at $8000-$FFFF packs
// a 2-bit CHR bank select (bits 0-1) and a 2-bit 32KiB PRG bank select
// (bits 4-5).
type gxrom struct {
	media   Media
	mirror  Mirror
	prgBank uint8
	chrBank uint8
}

func newGxROM(media Media, hw Mirror) *gxrom {
	return &gxrom{media: media, mirror: hw}
}

func (m *gxrom) CPURead(addr uint16) Result {
	if addr < 0x8000 {
		return Result{Kind: Miss}
	}
	banks := len(m.media.PRG) / 0x8000
	bank := 0
	if banks > 0 {
		bank = int(m.prgBank) % banks
	}
	return Result{Kind: Hit, Offset: uint32(bank)*0x8000 + uint32(addr-0x8000)}
}

func (m *gxrom) CPUWrite(addr uint16, data uint8) Result {
	if addr >= 0x8000 {
		m.chrBank = data & 0x03
		m.prgBank = (data >> 4) & 0x03
		return Result{Kind: Consumed}
	}
	return Result{Kind: Miss}
}

func (m *gxrom) PPURead(addr uint16) Result {
	if addr >= 0x2000 {
		return Result{Kind: Miss}
	}
	banks := chrBanks8k(m.media.CHR)
	bank := 0
	if banks > 0 {
		bank = int(m.chrBank) % banks
	}
	return Result{Kind: Hit, Offset: uint32(bank)*0x2000 + uint32(addr)}
}

func (m *gxrom) PPUWrite(addr uint16, data uint8) Result {
	if addr < 0x2000 && m.media.CHRIsRAM {
		r := m.PPURead(addr)
		m.media.CHR[r.Offset] = data
		return r
	}
	return Result{Kind: Miss}
}

func (m *gxrom) MirrorMode() Mirror { return m.mirror }
func (m *gxrom) Scanline()          {}
func (m *gxrom) IRQPending() bool   { return false }
func (m *gxrom) IRQClear()          {}
func (m *gxrom) Reset()             { m.prgBank, m.chrBank = 0, 0 }

func (m *gxrom) SaveState() []byte { return []byte{m.prgBank, m.chrBank} }
func (m *gxrom) LoadState(data []byte) {
	if len(data) > 1 {
		m.prgBank, m.chrBank = data[0], data[1]
	}
}
