package cpu

import "testing"

func TestResetSequence(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	if c.PC != 0x8000 {
		t.Fatalf("PC = %04X, want 8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %02X, want FD", c.SP)
	}
	if !c.GetFlag(FlagI) {
		t.Fatalf("I flag should be set after reset")
	}
	_ = bus
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA9, 0x00) // LDA #$00
	step(c, bus)
	if c.A != 0 || !c.GetFlag(FlagZ) || c.GetFlag(FlagN) {
		t.Fatalf("A=%02X Z=%v N=%v, want A=0 Z=true N=false", c.A, c.GetFlag(FlagZ), c.GetFlag(FlagN))
	}

	c, bus = newTestCPU(0x8000)
	bus.load(0x8000, 0xA9, 0x80) // LDA #$80
	step(c, bus)
	if c.A != 0x80 || c.GetFlag(FlagZ) || !c.GetFlag(FlagN) {
		t.Fatalf("A=%02X Z=%v N=%v, want A=80 Z=false N=true", c.A, c.GetFlag(FlagZ), c.GetFlag(FlagN))
	}
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA9, 0x7F, 0x69, 0x01) // LDA #$7F; ADC #$01
	step(c, bus)
	step(c, bus)
	if c.A != 0x80 {
		t.Fatalf("A=%02X, want 80", c.A)
	}
	if !c.GetFlag(FlagV) {
		t.Fatalf("expected overflow flag set on 7F+01")
	}
	if c.GetFlag(FlagC) {
		t.Fatalf("expected no carry out of 7F+01")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	// SEC; LDA #$00; SBC #$01 -> 0xFF, carry clear (borrow), N set
	bus.load(0x8000, 0x38, 0xA9, 0x00, 0xE9, 0x01)
	step(c, bus)
	step(c, bus)
	step(c, bus)
	if c.A != 0xFF {
		t.Fatalf("A=%02X, want FF", c.A)
	}
	if c.GetFlag(FlagC) {
		t.Fatalf("expected carry clear (borrow occurred)")
	}
}

func TestBranchTakenChargesExtraCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	// LDA #$00 sets Z; BEQ +2 should be taken
	bus.load(0x8000, 0xA9, 0x00, 0xF0, 0x02)
	step(c, bus)
	before := c.TotalCycles()
	step(c, bus)
	if c.PC != 0x8006 {
		t.Fatalf("PC after taken branch = %04X, want 8006", c.PC)
	}
	if c.TotalCycles()-before != 3 {
		t.Fatalf("branch taken (same page) cost %d cycles, want 3", c.TotalCycles()-before)
	}
}

func TestBranchNotTaken(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	// LDA #$01 clears Z; BEQ +2 should not be taken
	bus.load(0x8000, 0xA9, 0x01, 0xF0, 0x02)
	step(c, bus)
	before := c.TotalCycles()
	step(c, bus)
	if c.PC != 0x8004 {
		t.Fatalf("PC after non-taken branch = %04X, want 8004", c.PC)
	}
	if c.TotalCycles()-before != 2 {
		t.Fatalf("branch not taken cost %d cycles, want 2", c.TotalCycles()-before)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x6C, 0xFF, 0x20) // JMP ($20FF)
	bus.mem[0x20FF] = 0x34
	bus.mem[0x2000] = 0x12 // hardware bug: high byte fetched from $2000, not $2100
	bus.mem[0x2100] = 0xFF
	step(c, bus)
	if c.PC != 0x1234 {
		t.Fatalf("PC = %04X, want 1234 (page-wrap bug)", c.PC)
	}
}

func TestStackPushPop(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68) // LDA #42; PHA; LDA #00; PLA
	step(c, bus)
	step(c, bus)
	step(c, bus)
	step(c, bus)
	if c.A != 0x42 {
		t.Fatalf("A=%02X after PLA, want 42", c.A)
	}
}

func TestNMIEdgeTriggered(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[nmiVector] = 0x00
	bus.mem[nmiVector+1] = 0x90
	bus.load(0x8000, 0xEA) // NOP
	c.SetNMI(true)
	step(c, bus) // services the NMI instead of the NOP
	if c.PC != 0x9000 {
		t.Fatalf("PC = %04X after NMI, want 9000", c.PC)
	}

	// A level held high without a new rising edge must not re-trigger.
	c2, bus2 := newTestCPU(0x8000)
	bus2.mem[nmiVector] = 0x00
	bus2.mem[nmiVector+1] = 0x90
	bus2.load(0x8000, 0xEA, 0xEA)
	c2.SetNMI(true)
	step(c2, bus2)
	step(c2, bus2)
	if c2.PC == 0x9000 {
		t.Fatalf("NMI re-triggered on held line without a new edge")
	}
}

func TestIRQMaskedByI(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xEA) // NOP; I flag is set after reset
	c.SetIRQ(true)
	step(c, bus)
	if c.PC != 0x8001 {
		t.Fatalf("PC = %04X, want 8001 (IRQ should be masked)", c.PC)
	}
}

func TestUndocumentedLAX(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA7, 0x10) // LAX $10
	bus.mem[0x10] = 0x77
	step(c, bus)
	if c.A != 0x77 || c.X != 0x77 {
		t.Fatalf("A=%02X X=%02X, want both 77", c.A, c.X)
	}
}

func TestCompareFlags(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA9, 0x10, 0xC9, 0x10) // LDA #$10; CMP #$10
	step(c, bus)
	step(c, bus)
	if !c.GetFlag(FlagZ) || !c.GetFlag(FlagC) {
		t.Fatalf("equal compare should set Z and C")
	}
}
