//go:build !headless
// +build !headless

package graphics

import "testing"

func TestEbitengineBackendRejectsDoubleInitialize(t *testing.T) {
	b := NewEbitengineBackend()
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if err := b.Initialize(Config{}); err == nil {
		t.Fatalf("expected an error on a second Initialize")
	}
}

func TestEbitengineCreateWindowRejectsHeadlessConfig(t *testing.T) {
	b := NewEbitengineBackend()
	if err := b.Initialize(Config{Headless: true}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, err := b.CreateWindow("t", 256, 240); err == nil {
		t.Fatalf("expected CreateWindow to reject a Headless-configured backend")
	}
}

func TestEbitengineCreateWindowRequiresInitialize(t *testing.T) {
	b := NewEbitengineBackend()
	if _, err := b.CreateWindow("t", 256, 240); err == nil {
		t.Fatalf("expected CreateWindow to fail before Initialize")
	}
}

func TestEbitengineRenderFramePacksRGBAPixels(t *testing.T) {
	b := NewEbitengineBackend()
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	win, err := b.CreateWindow("t", 512, 480)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	ew := win.(*EbitengineWindow)

	var frame [256 * 240]uint32
	frame[0] = 0x112233
	if err := ew.RenderFrame(frame); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if ew.pixels[0] != 0x11 || ew.pixels[1] != 0x22 || ew.pixels[2] != 0x33 || ew.pixels[3] != 0xFF {
		t.Fatalf("pixel 0 packed as %02X%02X%02X%02X, want 112233FF",
			ew.pixels[0], ew.pixels[1], ew.pixels[2], ew.pixels[3])
	}
}

func TestEbitengineWindowPollEventsDrainsOnce(t *testing.T) {
	ew := &EbitengineWindow{events: []InputEvent{{Type: InputEventTypeQuit, Pressed: true}}}
	if got := ew.PollEvents(); len(got) != 1 {
		t.Fatalf("expected the queued event to be returned, got %d events", len(got))
	}
	if got := ew.PollEvents(); len(got) != 0 {
		t.Fatalf("PollEvents should drain its queue, got %d leftover events", len(got))
	}
}
