package console

import (
	"bytes"
	"strings"
	"testing"
)

const prgBankSize = 16 * 1024

// buildNROM assembles a minimal one-bank NROM image with CHR-RAM.
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

func newTestConsole(t *testing.T, opts ...Option) *Console {
	t.Helper()
	c, err := PowerUpReader(bytes.NewReader(buildNROM()), DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("PowerUpReader: %v", err)
	}
	return c
}

func TestPowerUpReaderRejectsBadImage(t *testing.T) {
	_, err := PowerUpReader(bytes.NewReader([]byte("not a rom")), DefaultConfig())
	if err == nil {
		t.Fatalf("expected an error for a malformed ROM image")
	}
}

func TestStepFrameReturnsAfterOneVBlank(t *testing.T) {
	c := newTestConsole(t)
	c.StepFrame()
	fb := c.Framebuffer()
	if len(fb) != 256*240 {
		t.Fatalf("framebuffer length = %d, want %d", len(fb), 256*240)
	}
}

func TestStepFrameWritesTraceOnEachRetiredInstruction(t *testing.T) {
	var trace bytes.Buffer
	c := newTestConsole(t, WithTraceWriter(&trace))
	c.StepFrame()
	lines := strings.Count(trace.String(), "\n")
	if lines == 0 {
		t.Fatalf("expected at least one trace line after a full frame")
	}
}

func TestResetPreservesRAMButReinitializesRegisters(t *testing.T) {
	c := newTestConsole(t)
	c.bus.Write(0x0010, 0x5A)
	before := c.CPUState()
	c.Reset()
	after := c.CPUState()
	if after.PC != before.PC {
		t.Fatalf("PC after reset = %04X, want %04X (same reset vector)", after.PC, before.PC)
	}
	if v := c.bus.Read(0x0010); v != 0x5A {
		t.Fatalf("RAM $0010 after reset = %02X, want 5A (preserved)", v)
	}
}

func TestSetControllerStateIsForwarded(t *testing.T) {
	c := newTestConsole(t)
	// Console holds no controller state itself: the bytes go to the bus,
	// where a $4016 strobe latches them and $4016/$4017 shift them out.
	c.SetControllerState(0, 0xFF)
	c.SetControllerState(1, 0x00)
	c.bus.Write(0x4016, 1)
	c.bus.Write(0x4016, 0)
	if v := c.bus.Read(0x4016); v&1 != 1 {
		t.Fatalf("controller 0 first bit = %d, want 1", v&1)
	}
	if v := c.bus.Read(0x4017); v&1 != 0 {
		t.Fatalf("controller 1 first bit = %d, want 0", v&1)
	}
}

func TestDrainAudioReturnsAccumulatedSamples(t *testing.T) {
	c := newTestConsole(t)
	c.StepFrame()
	samples := c.DrainAudio()
	if len(samples) == 0 {
		t.Fatalf("expected at least one audio sample after a full frame")
	}
	if more := c.DrainAudio(); len(more) != 0 {
		t.Fatalf("DrainAudio should clear its buffer, got %d leftover samples", len(more))
	}
}

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	c := newTestConsole(t)
	c.StepFrame()

	var buf bytes.Buffer
	if err := c.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	fresh := newTestConsole(t)
	if err := fresh.LoadState(&buf); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if fresh.CPUState().PC != c.CPUState().PC {
		t.Fatalf("PC mismatch after restore")
	}
}

func TestLoadStateRejectsBadMagic(t *testing.T) {
	c := newTestConsole(t)
	if err := c.LoadState(bytes.NewReader([]byte("garbage data that is not a save state"))); err == nil {
		t.Fatalf("expected an error loading a non-savestate payload")
	}
}
