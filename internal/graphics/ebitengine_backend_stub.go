//go:build headless
// +build headless

package graphics

import "fmt"

// EbitengineBackend and EbitengineWindow stand in for the real Ebitengine
// types on a headless build tag, where linking the real GL/Metal/DirectX
// backend isn't possible (e.g. a CI container with no display). Every
// method fails loudly rather than silently no-op, since choosing this
// backend on such a build is a configuration mistake, not a supported mode.
type EbitengineBackend struct{}
type EbitengineWindow struct{}

func NewEbitengineBackend() Backend { return &EbitengineBackend{} }

func (b *EbitengineBackend) Initialize(config Config) error {
	return fmt.Errorf("graphics: ebitengine backend unavailable in a headless build")
}

func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	return nil, fmt.Errorf("graphics: ebitengine backend unavailable in a headless build")
}

func (b *EbitengineBackend) Cleanup() error  { return nil }
func (b *EbitengineBackend) IsHeadless() bool { return true }
func (b *EbitengineBackend) GetName() string  { return "Ebitengine (unavailable)" }

func (w *EbitengineWindow) SetTitle(title string)        {}
func (w *EbitengineWindow) GetSize() (int, int)           { return 0, 0 }
func (w *EbitengineWindow) ShouldClose() bool             { return true }
func (w *EbitengineWindow) SwapBuffers()                  {}
func (w *EbitengineWindow) PollEvents() []InputEvent      { return nil }
func (w *EbitengineWindow) Cleanup() error                { return nil }
func (w *EbitengineWindow) SetEmulatorUpdateFunc(func() error) {}

func (w *EbitengineWindow) RenderFrame(frameBuffer [256 * 240]uint32) error {
	return fmt.Errorf("graphics: ebitengine backend unavailable in a headless build")
}

func (w *EbitengineWindow) Run() error {
	return fmt.Errorf("graphics: ebitengine backend unavailable in a headless build")
}
