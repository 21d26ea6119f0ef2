package graphics

import "testing"

func TestTerminalBackendNameAndHeadlessFlag(t *testing.T) {
	b := NewTerminalBackend()
	if b.IsHeadless() {
		t.Fatalf("terminal backend writes to stdout, it is not headless")
	}
	if b.GetName() != "Terminal" {
		t.Fatalf("GetName() = %q, want %q", b.GetName(), "Terminal")
	}
}

func TestTerminalWindowRenderFrameDoesNotPanicOnBlankFrame(t *testing.T) {
	b := NewTerminalBackend()
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	win, err := b.CreateWindow("t", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	var frame [256 * 240]uint32
	if err := win.RenderFrame(frame); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
}

func TestLumaRampPicksBrighterCharacterForBrighterPixel(t *testing.T) {
	dark := (0x10 << 16) | (0x10 << 8) | 0x10
	bright := (0xF0 << 16) | (0xF0 << 8) | 0xF0

	idxOf := func(pixel uint32) int {
		r := (pixel >> 16) & 0xFF
		g := (pixel >> 8) & 0xFF
		b := pixel & 0xFF
		lum := (r*299 + g*587 + b*114) / 1000
		return int(lum) * (len(rampChars) - 1) / 255
	}
	if idxOf(uint32(dark)) >= idxOf(uint32(bright)) {
		t.Fatalf("expected a brighter pixel to map to a later (denser) ramp character")
	}
}
