// Package bus memory-maps the CPU and PPU address spaces and owns the
// master-clock step that advances CPU, PPU, APU, and the cartridge's
// mapper in lockstep.
package bus

import (
	"errors"

	"nescore/internal/apu"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/ppu"
)

var errShortState = errors.New("bus: truncated save-state data")

const (
	controllerA = iota
	controllerB
	controllerCount
)

// dmaPhase tracks OAM DMA as a cycle-accurate state machine rather than a
// blocking copy, so the PPU and APU keep advancing tick-for-tick while
// the CPU is stalled.
type dmaPhase struct {
	active    bool
	page      uint8
	idleExtra bool // one extra idle cycle on an odd CPU cycle before the transfer proper
	halted    bool // the CPU's unconditional one-cycle halt before the transfer proper
	started   bool
	index     uint16 // 0..255, byte currently being transferred
	readStep  bool   // alternates read/write within a transfer pair
	latch     uint8
}

// Bus wires CPU/PPU/APU/Cartridge together and is the sole owner of all
// four; it is the only component any of them can reach a sibling through.
type Bus struct {
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	cart *cartridge.Cartridge

	ram [2048]uint8

	controllerState  [controllerCount]uint8
	controllerShift  [controllerCount]uint8

	dma dmaPhase

	clock        uint64 // master clock, 1 CPU tick per 3
	frameDone    bool
	mapperIRQ    bool
	apuIRQ       bool
}

// New wires a freshly loaded cartridge into a new Bus and its CPU/PPU/APU.
func New(cart *cartridge.Cartridge, sampleRate int) *Bus {
	b := &Bus{cart: cart}
	b.cpu = cpu.New()
	b.ppu = ppu.New(cartAdapter{cart})
	b.apu = apu.New(sampleRate)
	b.ppu.SetNMILine(b.cpu.SetNMI)
	b.apu.SetIRQLine(func(v bool) { b.apuIRQ = v; b.updateIRQ() })
	return b
}

// cartAdapter narrows *cartridge.Cartridge to the ppu.Cartridge interface
// and bridges the Mapper's IRQ into the PPU's per-scanline hook.
type cartAdapter struct{ c *cartridge.Cartridge }

func (a cartAdapter) ReadPPU(addr uint16) (uint8, bool) { return a.c.ReadPPU(addr) }
func (a cartAdapter) WritePPU(addr uint16, v uint8)     { a.c.WritePPU(addr, v) }
func (a cartAdapter) MirrorMode() ppu.Mirror { return ppu.Mirror(a.c.MirrorMode()) }
func (a cartAdapter) Scanline()              { a.c.Mapper().Scanline() }

func (b *Bus) updateIRQ() {
	b.cpu.SetIRQ(b.apuIRQ || b.mapperIRQ)
}

// CPU/PPU/APU expose the owned components for Console wiring and debug
// snapshots; nothing outside Bus holds a pointer to them.
func (b *Bus) CPU() *cpu.CPU { return b.cpu }
func (b *Bus) PPU() *ppu.PPU { return b.ppu }
func (b *Bus) APU() *apu.APU { return b.apu }

// Reset re-runs the cold reset sequence on every owned component without
// touching RAM or ROM contents.
func (b *Bus) Reset() {
	b.cpu.Reset(b)
	b.ppu.Reset()
	b.apu.Reset()
	b.cart.Reset()
	b.controllerShift = [controllerCount]uint8{}
	b.dma = dmaPhase{}
	b.apuIRQ = false
	b.mapperIRQ = false
}

// SetControllerState latches the externally observed button byte for a
// controller; it only takes effect on the next $4016 strobe write.
func (b *Bus) SetControllerState(index int, buttons uint8) {
	if index >= 0 && index < controllerCount {
		b.controllerState[index] = buttons
	}
}

// Tick advances the master clock by one PPU dot, running the CPU (and
// OAM DMA phase machine) every third tick. The PPU always advances;
// mapper IRQ state is re-sampled on each of those CPU ticks, before the
// CPU or DMA step, since scanline() may have fired it in between.
func (b *Bus) Tick() {
	b.ppu.Tick()
	if b.ppu.Scanline() == 241 && b.ppu.Dot() == 1 {
		b.frameDone = true
	}

	b.clock++
	if b.clock%3 != 0 {
		return
	}

	b.mapperIRQ = b.cart.Mapper().IRQPending()
	b.updateIRQ()

	if b.dma.active {
		b.stepDMA()
	} else {
		b.cpu.Tick(b)
	}
	b.apu.Tick()
}

// FrameDone reports whether a VBlank edge has occurred since the last
// call, clearing the flag.
func (b *Bus) FrameDone() bool {
	v := b.frameDone
	b.frameDone = false
	return v
}

func (b *Bus) stepDMA() {
	if !b.dma.started {
		if b.dma.idleExtra {
			b.dma.idleExtra = false
			return
		}
		// The CPU always halts for one cycle to hand the bus to the DMA
		// unit, independent of the odd-cycle alignment wait above: 513
		// cycles on an even start, 514 on an odd one.
		if !b.dma.halted {
			b.dma.halted = true
			return
		}
		b.dma.started = true
		b.dma.readStep = true
	}
	if b.dma.readStep {
		b.dma.latch = b.Read(uint16(b.dma.page)<<8 | b.dma.index)
		b.dma.readStep = false
		return
	}
	b.ppu.OAMWrite(uint8(b.dma.index), b.dma.latch)
	b.dma.index++
	b.dma.readStep = true
	if b.dma.index > 255 {
		b.dma.active = false
	}
}

// Read services a CPU memory access.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.ppu.ReadRegister(addr)
	case addr == 0x4015:
		return b.apu.ReadStatus()
	case addr == 0x4016:
		return b.readController(controllerA)
	case addr == 0x4017:
		return b.readController(controllerB)
	case addr < 0x4018:
		return 0
	case addr < 0x4020:
		return 0
	default:
		if v, hit := b.cart.ReadCPU(addr); hit {
			return v
		}
		return 0
	}
}

// Write services a CPU memory write.
func (b *Bus) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = v
	case addr < 0x4000:
		b.ppu.WriteRegister(addr, v)
	case addr == 0x4014:
		b.armDMA(v)
	case addr == 0x4016:
		b.strobeControllers(v)
	case addr == 0x4017:
		b.apu.WriteRegister(addr, v)
	case addr < 0x4018:
		b.apu.WriteRegister(addr, v)
	case addr < 0x4020:
		// Unused APU/IO test-mode range.
	default:
		b.cart.WriteCPU(addr, v)
	}
}

func (b *Bus) armDMA(page uint8) {
	b.dma = dmaPhase{active: true, page: page, idleExtra: b.clock%6 != 0}
}

func (b *Bus) strobeControllers(v uint8) {
	if v&1 != 0 {
		b.controllerShift[controllerA] = b.controllerState[controllerA]
		b.controllerShift[controllerB] = b.controllerState[controllerB]
	}
}

func (b *Bus) readController(index int) uint8 {
	v := (b.controllerShift[index] >> 7) & 1
	b.controllerShift[index] <<= 1
	return 0x40 | v
}

// SaveState serializes work RAM, controller shift registers, the master
// clock, and every owned component's own state.
func (b *Bus) SaveState() []byte {
	var buf []byte
	buf = append(buf, b.ram[:]...)
	buf = append(buf, b.controllerShift[0], b.controllerShift[1])
	for i := 0; i < 8; i++ {
		buf = append(buf, byte(b.clock>>(8*i)))
	}
	buf = appendBlock(buf, b.cpu.SaveState())
	buf = appendBlock(buf, b.ppu.SaveState())
	buf = appendBlock(buf, b.apu.SaveState())
	buf = appendBlock(buf, b.cart.SaveState())
	return buf
}

// LoadState restores state previously produced by SaveState.
func (b *Bus) LoadState(data []byte) error {
	if len(data) < len(b.ram)+2+8 {
		return errShortState
	}
	i := copy(b.ram[:], data)
	b.controllerShift[0], b.controllerShift[1] = data[i], data[i+1]
	i += 2
	var clock uint64
	for j := 0; j < 8; j++ {
		clock |= uint64(data[i+j]) << (8 * j)
	}
	b.clock = clock
	i += 8

	cpuState, rest, err := readBlock(data[i:])
	if err != nil {
		return err
	}
	b.cpu.LoadState(cpuState)

	ppuState, rest, err := readBlock(rest)
	if err != nil {
		return err
	}
	b.ppu.LoadState(ppuState)

	apuState, rest, err := readBlock(rest)
	if err != nil {
		return err
	}
	b.apu.LoadState(apuState)

	cartState, _, err := readBlock(rest)
	if err != nil {
		return err
	}
	return b.cart.LoadState(cartState)
}

func appendBlock(buf []byte, block []byte) []byte {
	n := uint32(len(block))
	buf = append(buf, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	return append(buf, block...)
}

func readBlock(data []byte) (block, rest []byte, err error) {
	if len(data) < 4 {
		return nil, nil, errShortState
	}
	n := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	data = data[4:]
	if uint32(len(data)) < n {
		return nil, nil, errShortState
	}
	return data[:n], data[n:], nil
}
