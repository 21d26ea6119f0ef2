package bus

import (
	"bytes"
	"testing"

	"nescore/internal/cartridge"
)

const prgBankSize = 16 * 1024

// buildNROM assembles a minimal one-bank NROM image with CHR-RAM, enough to
// back a Bus for memory-map and timing tests.
func buildNROM() []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1 PRG bank
	buf.WriteByte(0) // 0 CHR banks -> CHR-RAM
	buf.WriteByte(0) // mapper 0, horizontal mirroring
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, prgBankSize))
	return buf.Bytes()
}

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	cart, err := cartridge.LoadReader(bytes.NewReader(buildNROM()))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	b := New(cart, 44100)
	b.Reset()
	return b
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	if v := b.Read(0x0800); v != 0x42 {
		t.Fatalf("$0800 should mirror $0000, got %02X", v)
	}
	if v := b.Read(0x1800); v != 0x42 {
		t.Fatalf("$1800 should mirror $0000, got %02X", v)
	}
}

func TestControllerStrobeAndShiftRead(t *testing.T) {
	b := newTestBus(t)
	b.SetControllerState(0, 0b1010_0001) // A, Select, Right pressed (bit order per hardware shift)
	b.Write(0x4016, 1)                   // strobe high: latch state
	b.Write(0x4016, 0)                   // strobe low: enable shifting

	var bits []uint8
	for i := 0; i < 8; i++ {
		bits = append(bits, b.Read(0x4016)&1)
	}
	want := []uint8{1, 0, 1, 0, 0, 0, 0, 1}
	for i, v := range want {
		if bits[i] != v {
			t.Fatalf("bit %d = %d, want %d (full sequence %v)", i, bits[i], v, bits)
		}
	}
}

func TestControllerReadSetsOpenBusBits(t *testing.T) {
	b := newTestBus(t)
	v := b.Read(0x4016)
	if v&0x40 == 0 {
		t.Fatalf("controller reads should have bit 6 set (0x40 | data), got %02X", v)
	}
}

func TestOAMDMAStallsCPUForFullTransfer(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.ram[i] = uint8(i)
	}
	startClock := b.clock
	b.Write(0x4014, 0x00) // DMA from page $00

	for b.dma.active {
		b.Tick()
	}
	// Every 3rd master-clock tick services one CPU-side DMA half-step: one
	// halt cycle plus 512 alternating read/write cycles, 513 total on an
	// even-aligned start (514 on an odd one, see the next test).
	elapsedCPU := (b.clock - startClock) / 3
	if elapsedCPU != 513 {
		t.Fatalf("DMA completed in %d CPU cycles, want 513", elapsedCPU)
	}
}

func TestOAMDMATakesOneMoreCycleOnOddStart(t *testing.T) {
	b := newTestBus(t)
	b.clock = 3 // master clock 3 is CPU cycle 1, an odd CPU cycle, so idleExtra is armed
	startClock := b.clock
	b.armDMA(0x00)

	for b.dma.active {
		b.Tick()
	}
	elapsedCPU := (b.clock - startClock) / 3
	if elapsedCPU != 514 {
		t.Fatalf("odd-start DMA completed in %d CPU cycles, want 514", elapsedCPU)
	}
}

func TestOAMDMAOddCycleAddsIdleCycle(t *testing.T) {
	b := newTestBus(t)
	b.clock = 1 // force an odd starting master clock so idleExtra is armed
	b.armDMA(0x00)
	if !b.dma.idleExtra {
		t.Fatalf("expected idleExtra to be armed when DMA starts on an odd CPU cycle")
	}
}

func TestTickAdvancesMasterClockAndSignalsFrameDone(t *testing.T) {
	b := newTestBus(t)
	if b.FrameDone() {
		t.Fatalf("frame should not be done before any ticks")
	}
	// Run enough dots to reach scanline 241, dot 1 (VBlank start) from the
	// pre-render line the PPU resets to: one full pre-render line, then
	// 241 visible/post-render lines, then one more dot into the line.
	for i := 0; i < 341*242+1; i++ {
		b.Tick()
	}
	if !b.FrameDone() {
		t.Fatalf("expected FrameDone to report true once VBlank starts")
	}
	if b.FrameDone() {
		t.Fatalf("FrameDone should clear itself after being read")
	}
}

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	b := newTestBus(t)
	b.ram[5] = 0xAB
	b.controllerShift[0] = 0x3C
	b.clock = 123456789

	saved := b.SaveState()

	fresh := newTestBus(t)
	if err := fresh.LoadState(saved); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if fresh.ram[5] != 0xAB {
		t.Fatalf("RAM mismatch after restore")
	}
	if fresh.controllerShift[0] != 0x3C {
		t.Fatalf("controller shift register mismatch after restore")
	}
	if fresh.clock != 123456789 {
		t.Fatalf("master clock mismatch after restore: %d", fresh.clock)
	}
}

func TestLoadStateRejectsTruncatedData(t *testing.T) {
	b := newTestBus(t)
	if err := b.LoadState([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected an error for truncated save-state data")
	}
}
