//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitengineBackend renders through Ebitengine's own GL/Metal/DirectX
// backend and callback-driven game loop.
type EbitengineBackend struct {
	initialized bool
	config      Config
}

// EbitengineWindow adapts Ebitengine's ebiten.Game callbacks to the Window
// interface. Ebitengine owns Update/Draw/Layout; RenderFrame and
// PollEvents just hand data across that boundary.
type EbitengineWindow struct {
	title              string
	width, height      int
	running            bool
	pixels             [256 * 240 * 4]byte // RGBA, row-major, matches frameImage
	frameImage         *ebiten.Image
	events             []InputEvent
	emulatorUpdateFunc func() error
}

// NewEbitengineBackend constructs an uninitialized Ebitengine backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("graphics: ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("graphics: backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("graphics: cannot create a window in headless mode")
	}

	w := &EbitengineWindow{
		title:      title,
		width:      width,
		height:     height,
		running:    true,
		frameImage: ebiten.NewImage(256, 240),
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	ebiten.SetFullscreen(b.config.Fullscreen)
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return w, nil
}

func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

func (b *EbitengineBackend) IsHeadless() bool { return b.config.Headless }
func (b *EbitengineBackend) GetName() string  { return "Ebitengine" }

func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

func (w *EbitengineWindow) GetSize() (int, int) { return w.width, w.height }
func (w *EbitengineWindow) ShouldClose() bool   { return !w.running }
func (w *EbitengineWindow) SwapBuffers()        {} // ebiten presents after Draw returns

func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame repacks the NES frame into the RGBA byte layout
// ebiten.Image.WritePixels expects and uploads it in one call.
func (w *EbitengineWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	for i, pixel := range frameBuffer {
		o := i * 4
		w.pixels[o] = byte(pixel >> 16)
		w.pixels[o+1] = byte(pixel >> 8)
		w.pixels[o+2] = byte(pixel)
		w.pixels[o+3] = 0xFF
	}
	w.frameImage.WritePixels(w.pixels[:])
	return nil
}

func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run hands control to Ebitengine's own game loop; Update/Draw/Layout
// below are its ebiten.Game callbacks.
func (w *EbitengineWindow) Run() error {
	return ebiten.RunGame((*ebitengineGame)(w))
}

// SetEmulatorUpdateFunc registers the per-host-frame hook (one emulated
// NES frame plus a render) that Update calls on Ebitengine's behalf.
func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// ebitengineGame is EbitengineWindow under ebiten.Game's method set; kept
// as a distinct named type so Window's own methods stay uncluttered by
// ebiten's Update/Draw/Layout signatures.
type ebitengineGame EbitengineWindow

func (g *ebitengineGame) Update() error {
	w := (*EbitengineWindow)(g)
	w.pollHostInput()
	if w.emulatorUpdateFunc != nil {
		return w.emulatorUpdateFunc()
	}
	return nil
}

func (g *ebitengineGame) Draw(screen *ebiten.Image) {
	w := (*EbitengineWindow)(g)
	screen.Fill(color.Black)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := float64(sw) / 256
	if alt := float64(sh) / 240; alt < scale {
		scale = alt
	}
	offsetX := (float64(sw) - 256*scale) / 2
	offsetY := (float64(sh) - 240*scale) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(w.frameImage, op)
}

func (g *ebitengineGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// hotkeys maps the function-key row (plus A, used by the save-state
// and screenshot flows) straight to the Key events hostui interprets;
// Escape is handled separately as a quit event, and everything a
// controller can press is handled by buttonKeys below instead.
var hotkeys = map[ebiten.Key]Key{
	ebiten.KeyA:   KeyA,
	ebiten.KeyF1:  KeyF1,
	ebiten.KeyF2:  KeyF2,
	ebiten.KeyF3:  KeyF3,
	ebiten.KeyF4:  KeyF4,
	ebiten.KeyF5:  KeyF5,
	ebiten.KeyF6:  KeyF6,
	ebiten.KeyF7:  KeyF7,
	ebiten.KeyF8:  KeyF8,
	ebiten.KeyF9:  KeyF9,
	ebiten.KeyF12: KeyF12,
}

// buttonKeys is the default keyboard layout for both controllers: the
// arrows and W/S/D (A is a hotkey, so Left is on the arrow key only) plus
// J/K/Enter/Shift for player one, the number row for player two.
var buttonKeys = map[ebiten.Key]Button{
	ebiten.KeyArrowUp:    ButtonUp,
	ebiten.KeyArrowDown:  ButtonDown,
	ebiten.KeyArrowLeft:  ButtonLeft,
	ebiten.KeyArrowRight: ButtonRight,
	ebiten.KeyW:          ButtonUp,
	ebiten.KeyS:          ButtonDown,
	ebiten.KeyD:          ButtonRight,
	ebiten.KeyJ:          ButtonA,
	ebiten.KeyK:          ButtonB,
	ebiten.KeyEnter:      ButtonStart,
	ebiten.KeyShiftRight: ButtonSelect,
	ebiten.Key1:          Button2Up,
	ebiten.Key2:          Button2Down,
	ebiten.Key3:          Button2Left,
	ebiten.Key4:          Button2Right,
	ebiten.Key5:          Button2A,
	ebiten.Key6:          Button2B,
	ebiten.Key7:          Button2Start,
	ebiten.Key8:          Button2Select,
}

func (w *EbitengineWindow) pollHostInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.events = append(w.events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}
	for ek, key := range hotkeys {
		if inpututil.IsKeyJustPressed(ek) {
			w.events = append(w.events, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true})
		} else if inpututil.IsKeyJustReleased(ek) {
			w.events = append(w.events, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: false})
		}
	}
	for ek, btn := range buttonKeys {
		if inpututil.IsKeyJustPressed(ek) {
			w.events = append(w.events, InputEvent{Type: InputEventTypeButton, Button: btn, Pressed: true})
		} else if inpututil.IsKeyJustReleased(ek) {
			w.events = append(w.events, InputEvent{Type: InputEventTypeButton, Button: btn, Pressed: false})
		}
	}
}
