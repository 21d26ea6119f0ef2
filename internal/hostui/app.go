package hostui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nescore/internal/console"
	"nescore/internal/graphics"
)

// buttonBit mirrors the NES controller shift-register bit order: A, B,
// Select, Start, Up, Down, Left, Right, with A in bit 7 (shifted out first)
// down to Right in bit 0.
const (
	bitA uint8 = 0x80 >> iota
	bitB
	bitSelect
	bitStart
	bitUp
	bitDown
	bitLeft
	bitRight
)

// App wires a Console to a graphics backend, translates backend input
// events into controller state, and drives one emulated frame per host
// frame. It is the only piece of this program that knows both the core's
// API and the windowing API — neither the core nor the graphics package
// imports the other.
type App struct {
	console *console.Console
	backend graphics.Backend
	window  graphics.Window
	audio   *audioPlayer
	video   *graphics.VideoProcessor
	cfg     Config
	romPath string

	buttons  [2]uint8
	frameBuf [256 * 240]uint32

	frames    uint64
	started   time.Time
	quitAsked bool
}

// New powers up a Console from romPath and creates the configured
// graphics backend and window, but does not start the loop.
func New(romPath string, hostCfg Config, coreCfg console.Config, opts ...console.Option) (*App, error) {
	c, err := console.PowerUp(romPath, coreCfg, opts...)
	if err != nil {
		return nil, err
	}

	backend, err := graphics.CreateBackend(graphics.BackendType(hostCfg.Video.Backend))
	if err != nil {
		return nil, fmt.Errorf("hostui: create backend: %w", err)
	}
	gcfg := graphics.Config{
		WindowTitle:  filepath.Base(romPath),
		WindowWidth:  256 * hostCfg.Window.Scale,
		WindowHeight: 240 * hostCfg.Window.Scale,
		Fullscreen:   hostCfg.Window.Fullscreen,
		VSync:        hostCfg.Video.VSync,
		Filter:       hostCfg.Video.Filter,
		Headless:     hostCfg.Video.Backend == "headless",
	}
	if err := backend.Initialize(gcfg); err != nil {
		return nil, fmt.Errorf("hostui: initialize backend: %w", err)
	}
	window, err := backend.CreateWindow(gcfg.WindowTitle, gcfg.WindowWidth, gcfg.WindowHeight)
	if err != nil {
		return nil, fmt.Errorf("hostui: create window: %w", err)
	}

	app := &App{console: c, backend: backend, window: window, cfg: hostCfg, romPath: romPath}
	app.video = graphics.NewVideoProcessor(
		hostCfg.Video.Brightness, hostCfg.Video.Contrast, hostCfg.Video.Saturation)
	if !backend.IsHeadless() {
		if player, err := newAudioPlayer(c, coreCfg.Audio.SampleRate); err == nil {
			app.audio = player
		}
	}
	return app, nil
}

// Run drives the emulate-render-poll loop until the window asks to close
// or a quit input event arrives. Ebitengine owns its own callback-driven
// game loop, so that backend is driven through SetEmulatorUpdateFunc and
// Run instead of the plain polling loop used by the headless/terminal
// backends.
func (a *App) Run() error {
	a.started = time.Now()
	if ew, ok := graphics.AsEbitengineWindow(a.window); ok {
		ew.SetEmulatorUpdateFunc(a.advance)
		return ew.Run()
	}
	for !a.window.ShouldClose() && !a.quitAsked {
		if err := a.advance(); err != nil {
			return err
		}
	}
	return nil
}

// advance steps input, one emulated frame, and a render; it is the body
// of both loop styles Run can drive.
func (a *App) advance() error {
	a.pollInput()
	a.console.StepFrame()
	copy(a.frameBuf[:], a.video.ProcessFrame(a.console.Framebuffer()))
	if err := a.window.RenderFrame(a.frameBuf); err != nil {
		return fmt.Errorf("hostui: render frame: %w", err)
	}
	a.window.SwapBuffers()
	a.frames++
	return nil
}

func (a *App) pollInput() {
	for _, ev := range a.window.PollEvents() {
		switch ev.Type {
		case graphics.InputEventTypeQuit:
			a.quitAsked = true
		case graphics.InputEventTypeButton:
			a.applyButton(ev.Button, ev.Pressed)
		case graphics.InputEventTypeKey:
			if ev.Pressed {
				a.applyHotkey(ev.Key)
			}
		}
	}
	a.console.SetControllerState(0, a.buttons[0])
	a.console.SetControllerState(1, a.buttons[1])
}

// applyHotkey handles function keys that don't map to a controller
// button: F1-F8 save state, F9 and F12 screenshot.
func (a *App) applyHotkey(k graphics.Key) {
	slot, ok := functionKeySlot(k)
	if !ok {
		return
	}
	if slot < 8 {
		if err := a.SaveState(slot); err != nil {
			a.logSaveError("save", slot, err)
		}
		return
	}
	if err := a.SaveScreenshot(a.screenshotPath()); err != nil {
		a.logSaveError("screenshot", slot, err)
	}
}

func functionKeySlot(k graphics.Key) (int, bool) {
	switch k {
	case graphics.KeyF1:
		return 0, true
	case graphics.KeyF2:
		return 1, true
	case graphics.KeyF3:
		return 2, true
	case graphics.KeyF4:
		return 3, true
	case graphics.KeyF5:
		return 4, true
	case graphics.KeyF6:
		return 5, true
	case graphics.KeyF7:
		return 6, true
	case graphics.KeyF8:
		return 7, true
	case graphics.KeyF9, graphics.KeyF12:
		return 8, true
	default:
		return 0, false
	}
}

func (a *App) applyButton(b graphics.Button, pressed bool) {
	player, bit := buttonBit(b)
	if bit == 0 {
		return
	}
	if pressed {
		a.buttons[player] |= bit
	} else {
		a.buttons[player] &^= bit
	}
}

func buttonBit(b graphics.Button) (player int, bit uint8) {
	switch b {
	case graphics.ButtonA:
		return 0, bitA
	case graphics.ButtonB:
		return 0, bitB
	case graphics.ButtonSelect:
		return 0, bitSelect
	case graphics.ButtonStart:
		return 0, bitStart
	case graphics.ButtonUp:
		return 0, bitUp
	case graphics.ButtonDown:
		return 0, bitDown
	case graphics.ButtonLeft:
		return 0, bitLeft
	case graphics.ButtonRight:
		return 0, bitRight
	case graphics.Button2A:
		return 1, bitA
	case graphics.Button2B:
		return 1, bitB
	case graphics.Button2Select:
		return 1, bitSelect
	case graphics.Button2Start:
		return 1, bitStart
	case graphics.Button2Up:
		return 1, bitUp
	case graphics.Button2Down:
		return 1, bitDown
	case graphics.Button2Left:
		return 1, bitLeft
	case graphics.Button2Right:
		return 1, bitRight
	default:
		return 0, 0
	}
}

func (a *App) screenshotPath() string {
	return fmt.Sprintf("%s.%06d.ppm", filepath.Base(a.romPath), a.frames)
}

func (a *App) logSaveError(op string, slot int, err error) {
	fmt.Fprintf(os.Stderr, "hostui: %s slot %d: %v\n", op, slot, err)
}

// FrameCount reports frames rendered this session.
func (a *App) FrameCount() uint64 { return a.frames }

// FPS reports the running average frame rate since Run started.
func (a *App) FPS() float64 {
	elapsed := time.Since(a.started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(a.frames) / elapsed
}

// SaveStatePath returns the path this App uses for a given save slot.
func (a *App) SaveStatePath(slot int) string {
	name := filepath.Base(a.romPath)
	return filepath.Join(a.cfg.Paths.SaveStates, fmt.Sprintf("%s.slot%d.state", name, slot))
}

// SaveState writes the current console state to the given slot.
func (a *App) SaveState(slot int) error {
	if err := os.MkdirAll(a.cfg.Paths.SaveStates, 0o755); err != nil {
		return err
	}
	f, err := os.Create(a.SaveStatePath(slot))
	if err != nil {
		return err
	}
	defer f.Close()
	return a.console.SaveState(f)
}

// LoadState restores console state previously written by SaveState.
func (a *App) LoadState(slot int) error {
	f, err := os.Open(a.SaveStatePath(slot))
	if err != nil {
		return err
	}
	defer f.Close()
	return a.console.LoadState(f)
}

// Cleanup releases the graphics backend's and audio player's resources.
func (a *App) Cleanup() error {
	if a.audio != nil {
		a.audio.Close()
	}
	if err := a.window.Cleanup(); err != nil {
		return err
	}
	return a.backend.Cleanup()
}
