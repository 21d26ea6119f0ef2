package graphics

import "fmt"

// HeadlessBackend discards every rendered frame; it exists so automated
// runs (fuzzing, save-state round-trip checks, CI) can drive a full
// console+hostui stack without a display.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow counts frames but never draws them.
type HeadlessWindow struct {
	title         string
	width, height int
	running       bool
	frameCount    int
}

func NewHeadlessBackend() Backend { return &HeadlessBackend{} }

func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("graphics: headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("graphics: backend not initialized")
	}
	return &HeadlessWindow{title: title, width: width, height: height, running: true}, nil
}

func (b *HeadlessBackend) Cleanup() error   { b.initialized = false; return nil }
func (b *HeadlessBackend) IsHeadless() bool { return true }
func (b *HeadlessBackend) GetName() string  { return "Headless" }

func (w *HeadlessWindow) SetTitle(title string)    { w.title = title }
func (w *HeadlessWindow) GetSize() (int, int)      { return w.width, w.height }
func (w *HeadlessWindow) ShouldClose() bool        { return !w.running }
func (w *HeadlessWindow) SwapBuffers()             {}
func (w *HeadlessWindow) PollEvents() []InputEvent { return nil }

func (w *HeadlessWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	w.frameCount++
	return nil
}

func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// FrameCount reports frames rendered this session, used by driver tools
// that want a progress readout without an actual display.
func (w *HeadlessWindow) FrameCount() int { return w.frameCount }
