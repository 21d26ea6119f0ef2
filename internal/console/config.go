package console

import (
	"encoding/json"
	"os"
)

// Config holds the core's own tunables, independent of any host UI
// configuration layered on top of it.
type Config struct {
	Audio AudioConfig `json:"audio"`
	Trace TraceConfig `json:"trace"`
}

// AudioConfig controls the APU's sample generation rate.
type AudioConfig struct {
	SampleRate int `json:"sample_rate"`
}

// TraceConfig enables the headless instruction-trace writer used by
// hardware-accuracy test harnesses (e.g. nestest-style logs).
type TraceConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// DefaultConfig returns the settings a freshly powered-up Console uses
// when the host supplies none.
func DefaultConfig() Config {
	return Config{Audio: AudioConfig{SampleRate: 44100}}
}

// LoadConfig reads and parses a JSON config file, falling back to
// DefaultConfig for any field the file omits.
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
