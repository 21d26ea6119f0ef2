// Package hostui wires the headless console facade to a graphics backend,
// keyboard input, and on-disk save states — the windowed shell around the
// core, kept out of the core's own import graph.
package hostui

import (
	"encoding/json"
	"os"
)

// Config holds the host shell's own tunables: window, video, input, and
// path settings. The core's tunables (audio sample rate, trace) live in
// console.Config and are loaded separately.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Input  InputConfig  `json:"input"`
	Paths  PathsConfig  `json:"paths"`
}

// WindowConfig controls the backend window's size and chrome.
type WindowConfig struct {
	Scale      int  `json:"scale"` // NES resolution (256x240) multiplier
	Fullscreen bool `json:"fullscreen"`
}

// VideoConfig selects and tunes the rendering backend.
type VideoConfig struct {
	Backend    string  `json:"backend"` // "ebitengine", "headless", "terminal"
	Filter     string  `json:"filter"`  // "nearest", "linear"
	VSync      bool    `json:"vsync"`
	Brightness float32 `json:"brightness"`
	Contrast   float32 `json:"contrast"`
	Saturation float32 `json:"saturation"`
}

// InputConfig holds autofire settings; they are loaded and saved with the
// config, but nothing in the host reads them. Key bindings themselves are
// fixed in the Ebitengine backend's mapping table.
type InputConfig struct {
	AutofireRate  int  `json:"autofire_rate"`
	EnableAutofire bool `json:"enable_autofire"`
}

// PathsConfig locates on-disk resources relative to the working directory.
type PathsConfig struct {
	SaveStates string `json:"save_states"`
}

// DefaultConfig returns the host shell's out-of-box settings.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Scale: 2},
		Video: VideoConfig{
			Backend: "ebitengine", Filter: "nearest", VSync: true,
			Brightness: 1.0, Contrast: 1.0, Saturation: 1.0,
		},
		Input:  InputConfig{AutofireRate: 10},
		Paths:  PathsConfig{SaveStates: "./states"},
	}
}

// LoadConfig reads a JSON config file, falling back to DefaultConfig for
// any field the file omits. If the file cannot be read it returns
// DefaultConfig together with the read error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
