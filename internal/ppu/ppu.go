// Package ppu implements the 2C02 Picture Processing Unit: the per-dot
// background/sprite pipeline, the loopy scroll registers, OAM sprite
// evaluation (including the hardware sprite-overflow bug), and the
// VBlank/NMI edges the rest of the console synchronizes against.
package ppu

// Mirror selects how the two physical 1KiB nametables fill the four
// logical nametable slots the CPU/PPU address space exposes.
type Mirror uint8

const (
	MirrorHorizontal Mirror = iota
	MirrorVertical
	MirrorSingleLo
	MirrorSingleHi
	MirrorFourScreen
)

// Cartridge is the subset of cartridge behavior the PPU needs: CHR
// accesses (routed through the mapper) and the mapper's own mirroring
// selection, which can override the cartridge's hardware-wired default.
type Cartridge interface {
	ReadPPU(addr uint16) (value uint8, hit bool)
	WritePPU(addr uint16, data uint8)
	MirrorMode() Mirror
	Scanline()
}

const (
	dotsPerScanline     = 341
	scanlinesPerFrame   = 262
	visibleScanlines    = 240
	postRenderScanline  = 240
	preRenderScanline   = 261
	vblankStartScanline = 241
)

// spriteSlot holds one secondary-OAM entry's latched data for the
// scanline it was evaluated for.
type spriteSlot struct {
	tileLo, tileHi uint8
	attr           uint8
	x              uint8
	isSpriteZero   bool
}

// PPU reproduces the 2C02's externally observable per-dot behavior.
type PPU struct {
	cart Cartridge

	// CPU-visible registers.
	ctrl   uint8 // $2000
	mask   uint8 // $2001
	status uint8 // $2002
	oamAddr uint8 // $2003

	// Loopy scroll/address registers.
	v, t uint16 // 15-bit VRAM address / temporary address
	x    uint8  // fine X scroll, 3 bits
	w    bool   // write-toggle latch shared by $2005/$2006

	readBuffer uint8 // $2007 read-ahead buffer
	openBus    uint8

	nametables [2 * 1024]uint8
	palette    [32]uint8
	oam        [256]uint8
	secondary  [8]spriteSlot
	secondaryN int

	scanline int
	dot      int
	oddFrame bool

	nmiOccurred bool
	nmiOutput   bool
	nmiPulse    func(bool)

	frame [256 * 240]uint32

	// Background shift registers, reloaded every 8 dots from the pattern
	// and attribute fetches.
	bgShiftLo, bgShiftHi     uint16
	bgAttrShiftLo, bgAttrShiftHi uint16
	ntLatch, atLatch, tileLoLatch, tileHiLatch uint8

	sprite0HitPossible bool
	sprite0HitThisLine bool
	spriteOverflow     bool
}

// New returns a PPU with all registers zeroed; call Reset before use.
func New(cart Cartridge) *PPU {
	return &PPU{cart: cart, scanline: preRenderScanline}
}

// SetNMILine installs the callback the PPU drives to assert/deassert the
// CPU's NMI input line (typically cpu.CPU.SetNMI).
func (p *PPU) SetNMILine(f func(bool)) { p.nmiPulse = f }

// Reset restores documented power-up register state.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.x = 0, 0, 0
	p.w = false
	p.readBuffer = 0
	p.scanline = preRenderScanline
	p.dot = 0
	p.oddFrame = false
	p.nmiOccurred = false
	p.nmiOutput = false
}

func (p *PPU) spriteSize() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) baseNametable() uint16 { return 0x2000 + 0x400*uint16(p.ctrl&0x03) }
func (p *PPU) bgPatternTable() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0
}
func (p *PPU) spritePatternTable() uint16 {
	if p.ctrl&0x08 != 0 {
		return 0x1000
	}
	return 0
}
func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) renderingEnabled() bool { return p.mask&0x18 != 0 }
func (p *PPU) showBackground() bool   { return p.mask&0x08 != 0 }
func (p *PPU) showSprites() bool      { return p.mask&0x10 != 0 }

// ReadRegister services a CPU read of $2000-$2007. Unlisted addresses and
// write-only registers return the PPU's last-driven open-bus byte.
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 7 {
	case 2: // PPUSTATUS
		v := (p.status & 0xE0) | (p.openBus & 0x1F)
		p.status &^= 0x80
		p.nmiOccurred = false
		p.w = false
		p.openBus = v
		return v
	case 4: // OAMDATA
		v := p.oam[p.oamAddr]
		p.openBus = v
		return v
	case 7: // PPUDATA
		v := p.readData()
		p.openBus = v
		return v
	default:
		return p.openBus
	}
}

func (p *PPU) readData() uint8 {
	addr := p.v & 0x3FFF
	var ret uint8
	if addr >= 0x3F00 {
		ret = p.readPalette(addr)
		p.readBuffer = p.busRead(addr - 0x1000)
	} else {
		ret = p.readBuffer
		p.readBuffer = p.busRead(addr)
	}
	p.v += p.vramIncrement()
	return ret
}

// WriteRegister services a CPU write of $2000-$2007.
func (p *PPU) WriteRegister(addr uint16, val uint8) {
	p.openBus = val
	switch addr & 7 {
	case 0: // PPUCTRL
		wasOutput := p.nmiOutput
		p.ctrl = val
		p.t = (p.t &^ 0x0C00) | (uint16(val&0x03) << 10)
		p.nmiOutput = val&0x80 != 0
		if p.nmiOutput && !wasOutput && p.nmiOccurred {
			p.pulseNMI()
		}
	case 1: // PPUMASK
		p.mask = val
	case 3: // OAMADDR
		p.oamAddr = val
	case 4: // OAMDATA
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(val>>3)
			p.x = val & 0x07
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(val&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writeData(val)
	}
}

func (p *PPU) writeData(val uint8) {
	addr := p.v & 0x3FFF
	if addr >= 0x3F00 {
		p.writePalette(addr, val)
	} else {
		p.busWrite(addr, val)
	}
	p.v += p.vramIncrement()
}

func (p *PPU) nametableIndex(addr uint16) uint16 {
	addr &= 0x0FFF
	table := addr / 0x400
	offset := addr % 0x400
	switch p.cart.MirrorMode() {
	case MirrorVertical:
		return (table%2)*0x400 + offset
	case MirrorSingleLo:
		return offset
	case MirrorSingleHi:
		return 0x400 + offset
	case MirrorFourScreen:
		return addr % uint16(len(p.nametables))
	default: // Horizontal
		return (table/2)*0x400 + offset
	}
}

func (p *PPU) busRead(addr uint16) uint8 {
	addr &= 0x3FFF
	if addr < 0x2000 {
		if v, hit := p.cart.ReadPPU(addr); hit {
			return v
		}
		return 0
	}
	if addr < 0x3F00 {
		return p.nametables[p.nametableIndex(addr)]
	}
	return p.readPalette(addr)
}

func (p *PPU) busWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	if addr < 0x2000 {
		p.cart.WritePPU(addr, val)
		return
	}
	if addr < 0x3F00 {
		p.nametables[p.nametableIndex(addr)] = val
		return
	}
	p.writePalette(addr, val)
}

func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

func (p *PPU) readPalette(addr uint16) uint8 { return p.palette[paletteIndex(addr)] }
func (p *PPU) writePalette(addr uint16, val uint8) {
	p.palette[paletteIndex(addr)] = val & 0x3F
}

func (p *PPU) pulseNMI() {
	if p.nmiPulse == nil {
		return
	}
	p.nmiPulse(true)
	p.nmiPulse(false)
}

// OAMWrite is the target of OAM DMA transfers; it bypasses OAMADDR
// auto-increment semantics used by $2004 so callers can write all 256
// bytes starting from the current OAMADDR, matching hardware DMA.
func (p *PPU) OAMWrite(offset uint8, val uint8) {
	p.oam[p.oamAddr+offset] = val
}

// FrameBuffer returns the completed frame's RGB pixels, row-major,
// 256x240.
func (p *PPU) FrameBuffer() []uint32 { return p.frame[:] }

// Scanline/Dot report the PPU's current raster position for debug
// snapshotting.
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Dot() int      { return p.dot }

// State is a read-only snapshot of PPU register state for debug
// accessors; never consulted by the PPU itself.
type State struct {
	Ctrl, Mask, Status uint8
	V, T               uint16
	X                  uint8
	Scanline, Dot      int
	OddFrame           bool
}

func (p *PPU) Snapshot() State {
	return State{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status,
		V: p.v, T: p.t, X: p.x,
		Scanline: p.scanline, Dot: p.dot, OddFrame: p.oddFrame,
	}
}
