package graphics

import (
	"fmt"
	"strings"
)

// TerminalBackend renders a scaled-down luminance ramp straight to stdout,
// for running a ROM over SSH or in a log-only CI shell with no display.
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow owns no real pixels; RenderFrame prints directly.
type TerminalWindow struct {
	title         string
	width, height int
	running       bool
}

func NewTerminalBackend() Backend { return &TerminalBackend{} }

func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("graphics: terminal backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("graphics: backend not initialized")
	}
	return &TerminalWindow{title: title, width: width, height: height, running: true}, nil
}

func (b *TerminalBackend) Cleanup() error   { b.initialized = false; return nil }
func (b *TerminalBackend) IsHeadless() bool { return false }
func (b *TerminalBackend) GetName() string  { return "Terminal" }

func (w *TerminalWindow) SetTitle(title string) {
	w.title = title
	fmt.Printf("\033]0;%s\007", title)
}

func (w *TerminalWindow) GetSize() (int, int)      { return w.width, w.height }
func (w *TerminalWindow) ShouldClose() bool        { return !w.running }
func (w *TerminalWindow) SwapBuffers()             {}
func (w *TerminalWindow) PollEvents() []InputEvent { return nil }

// rampChars runs dark to light; index chosen by quantized luminance.
const rampChars = " .:-=+*#%@"

// RenderFrame downsamples the frame to one character per 4x8-pixel block
// (matching a terminal cell's rough aspect ratio) and prints a luminance
// ramp in place of real color.
func (w *TerminalWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	var out strings.Builder
	out.WriteString("\033[2J\033[H")
	for y := 0; y < 240; y += 8 {
		for x := 0; x < 256; x += 4 {
			pixel := frameBuffer[y*256+x]
			r := (pixel >> 16) & 0xFF
			g := (pixel >> 8) & 0xFF
			b := pixel & 0xFF
			lum := (r*299 + g*587 + b*114) / 1000 // ITU-R BT.601 luma
			idx := int(lum) * (len(rampChars) - 1) / 255
			out.WriteByte(rampChars[idx])
		}
		out.WriteByte('\n')
	}
	fmt.Print(out.String())
	return nil
}

func (w *TerminalWindow) Cleanup() error {
	w.running = false
	return nil
}
