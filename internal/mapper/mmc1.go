package mapper

// mmc1 implements mapper 1 (MMC1 / SxROM). Bank registers are loaded one
// bit at a time through a 5-bit serial shift register fed by consecutive
// writes to $8000-$FFFF; a write with bit 7 set resets the shifter and
// forces PRG mode 3 (fix last bank at $C000) instead of loading a register.
type mmc1 struct {
	media  Media
	mirror Mirror

	shift      uint8
	shiftCount uint8

	control uint8 // mirroring:2, prgMode:2, chrMode:1
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgBankCount int
	chrBankCount int
}

func newMMC1(media Media, hw Mirror) *mmc1 {
	m := &mmc1{
		media:        media,
		mirror:       hw,
		prgBankCount: prgBanks16k(media.PRG),
		chrBankCount: chrBanks8k(media.CHR) * 2, // MMC1 CHR banks are 4KiB
	}
	if m.chrBankCount == 0 {
		m.chrBankCount = len(media.CHR) / 0x1000
	}
	m.Reset()
	return m
}

// Reset restores documented power-up state: control selects PRG mode 3
// (16KiB, last bank fixed at $C000) and CHR mode 0 (8KiB). Hardware fixes
// PRG's high bank at $C000 to the cartridge's last bank on reset and leaves
// the CHR bank fields at zero.
func (m *mmc1) Reset() {
	m.shift = 0
	m.shiftCount = 0
	m.control = 0x0C
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
}

func (m *mmc1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *mmc1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

func (m *mmc1) CPURead(addr uint16) Result {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if len(m.media.PRGRAM) == 0 || m.prgBank&0x10 != 0 {
			return Result{Kind: Miss}
		}
		return Result{Kind: HitInternal, Value: m.media.PRGRAM[(addr-0x6000)%uint16(len(m.media.PRGRAM))]}
	case addr >= 0x8000:
		return Result{Kind: Hit, Offset: m.prgOffset(addr)}
	default:
		return Result{Kind: Miss}
	}
}

func (m *mmc1) prgOffset(addr uint16) uint32 {
	a := addr - 0x8000
	banks := m.prgBankCount
	if banks == 0 {
		banks = 1
	}
	switch m.prgMode() {
	case 0, 1: // 32KiB mode, ignore low bit of bank select
		pairs := banks / 2
		if pairs == 0 {
			pairs = 1
		}
		bank := int(m.prgBank>>1) % pairs
		return uint32(bank)*0x8000 + uint32(a)
	case 2: // fixed first bank at $8000, switchable at $C000
		if a < 0x4000 {
			return uint32(a)
		}
		bank := int(m.prgBank&0x0F) % banks
		return uint32(bank)*0x4000 + uint32(a-0x4000)
	default: // 3: switchable at $8000, fixed last bank at $C000
		if a < 0x4000 {
			bank := int(m.prgBank&0x0F) % banks
			return uint32(bank)*0x4000 + uint32(a)
		}
		return uint32(banks-1)*0x4000 + uint32(a-0x4000)
	}
}

func (m *mmc1) CPUWrite(addr uint16, data uint8) Result {
	if addr >= 0x6000 && addr < 0x8000 {
		if len(m.media.PRGRAM) > 0 && m.prgBank&0x10 == 0 {
			m.media.PRGRAM[(addr-0x6000)%uint16(len(m.media.PRGRAM))] = data
		}
		return Result{Kind: Consumed}
	}
	if addr < 0x8000 {
		return Result{Kind: Miss}
	}

	if data&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return Result{Kind: Consumed}
	}

	m.shift = (m.shift >> 1) | ((data & 1) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return Result{Kind: Consumed}
	}

	value := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch {
	case addr < 0xA000:
		m.control = value
	case addr < 0xC000:
		m.chrBank0 = value
	case addr < 0xE000:
		m.chrBank1 = value
	default:
		m.prgBank = value
	}
	return Result{Kind: Consumed}
}

func (m *mmc1) chrOffset(addr uint16) uint32 {
	if m.chrMode() == 0 {
		bank := 0
		if m.chrBankCount > 0 {
			pairs := m.chrBankCount / 2
			if pairs == 0 {
				pairs = 1
			}
			bank = int(m.chrBank0>>1) % pairs
		}
		return uint32(bank)*0x2000 + uint32(addr)
	}
	if addr < 0x1000 {
		bank := 0
		if m.chrBankCount > 0 {
			bank = int(m.chrBank0) % m.chrBankCount
		}
		return uint32(bank)*0x1000 + uint32(addr)
	}
	bank := 0
	if m.chrBankCount > 0 {
		bank = int(m.chrBank1) % m.chrBankCount
	}
	return uint32(bank)*0x1000 + uint32(addr-0x1000)
}

func (m *mmc1) PPURead(addr uint16) Result {
	if addr >= 0x2000 {
		return Result{Kind: Miss}
	}
	off := m.chrOffset(addr)
	if int(off) >= len(m.media.CHR) {
		off %= uint32(len(m.media.CHR))
	}
	return Result{Kind: Hit, Offset: off}
}

func (m *mmc1) PPUWrite(addr uint16, data uint8) Result {
	if addr < 0x2000 && m.media.CHRIsRAM {
		r := m.PPURead(addr)
		m.media.CHR[r.Offset] = data
		return r
	}
	return Result{Kind: Miss}
}

func (m *mmc1) MirrorMode() Mirror {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleLo
	case 1:
		return MirrorSingleHi
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func (m *mmc1) Scanline()        {}
func (m *mmc1) IRQPending() bool { return false }
func (m *mmc1) IRQClear()        {}

func (m *mmc1) SaveState() []byte {
	return []byte{m.shift, m.shiftCount, m.control, m.chrBank0, m.chrBank1, m.prgBank}
}

func (m *mmc1) LoadState(data []byte) {
	if len(data) < 6 {
		return
	}
	m.shift, m.shiftCount, m.control = data[0], data[1], data[2]
	m.chrBank0, m.chrBank1, m.prgBank = data[3], data[4], data[5]
}
