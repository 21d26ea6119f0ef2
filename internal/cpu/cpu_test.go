package cpu

// testBus is a flat 64KB RAM bus, enough to exercise every addressing
// mode and the reset/interrupt vectors without a real Bus implementation.
type testBus struct {
	mem [65536]uint8
}

func (b *testBus) Read(addr uint16) uint8        { return b.mem[addr] }
func (b *testBus) Write(addr uint16, v uint8)     { b.mem[addr] = v }

func (b *testBus) load(addr uint16, bytes ...uint8) {
	for i, v := range bytes {
		b.mem[int(addr)+i] = v
	}
}

func (b *testBus) setResetVector(addr uint16) {
	b.mem[resetVector] = uint8(addr)
	b.mem[resetVector+1] = uint8(addr >> 8)
}

func newTestCPU(entry uint16) (*CPU, *testBus) {
	bus := &testBus{}
	bus.setResetVector(entry)
	c := New()
	c.Reset(bus)
	return c, bus
}

// step executes exactly one instruction: the first Tick call fetches,
// decodes, and fully applies its effects, returning true; the remaining
// cycles it charges are then drained so the CPU is ready to fetch the
// next opcode.
func step(c *CPU, bus Bus) {
	for c.remaining > 0 {
		c.Tick(bus)
	}
	c.Tick(bus)
	for c.remaining > 0 {
		c.Tick(bus)
	}
}
