// Package graphics isolates the windowing/input surface from the core: a
// Backend owns a Window, a Window turns a raw NES frame buffer into pixels
// and raw input events into a host-agnostic InputEvent stream. Nothing in
// this package imports the console, and nothing in the core imports this
// package's concrete backends.
package graphics

// Backend creates and owns one Window for a chosen rendering target.
type Backend interface {
	Initialize(config Config) error
	CreateWindow(title string, width, height int) (Window, error)
	Cleanup() error
	IsHeadless() bool
	GetName() string
}

// Window renders a 256x240 NES frame and surfaces host input.
type Window interface {
	SetTitle(title string)
	GetSize() (width, height int)
	ShouldClose() bool
	SwapBuffers()
	PollEvents() []InputEvent
	RenderFrame(frameBuffer [256 * 240]uint32) error
	Cleanup() error
}

// Config configures a Backend's window and renderer.
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool
	Filter       string // "nearest", "linear"
	Headless     bool
}

// InputEventType distinguishes the three kinds of event a Window reports.
type InputEventType int

const (
	InputEventTypeKey InputEventType = iota
	InputEventTypeButton
	InputEventTypeQuit
)

// InputEvent is a single press or release, already translated out of
// whatever host key codes the backend received.
type InputEvent struct {
	Type    InputEventType
	Key     Key
	Button  Button
	Pressed bool
}

// Key enumerates the non-controller keys hostui cares about: escape to
// quit and the function-key row for save states and screenshots. Backends
// may recognize more host keys than this for controller mapping, but only
// report the ones with a Key constant here.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyA
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF12
)

// Button enumerates both controllers' eight shift-register bits.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonA
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	Button2A
	Button2B
	Button2Select
	Button2Start
	Button2Up
	Button2Down
	Button2Left
	Button2Right
)

// BackendType selects a concrete Backend implementation by name.
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
	BackendTerminal   BackendType = "terminal"
)

// CreateBackend builds the named backend, defaulting to Ebitengine for any
// unrecognized name so a stray config typo still yields a window.
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	case BackendTerminal:
		return NewTerminalBackend(), nil
	default:
		return NewEbitengineBackend(), nil
	}
}

// AsEbitengineWindow exposes the Ebitengine-only Run/SetEmulatorUpdateFunc
// methods to hostui, which needs to hand control to Ebitengine's own
// callback-driven loop instead of polling a Window itself.
func AsEbitengineWindow(window Window) (*EbitengineWindow, bool) {
	w, ok := window.(*EbitengineWindow)
	return w, ok
}
