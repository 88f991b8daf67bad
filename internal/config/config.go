// Package config holds the composer's tunable surface: tempo, output
// toggles, and delivery sizing. Values come from defaults, optionally a
// YAML file, then flag overrides in the CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BPM        float64 `yaml:"bpm"`
	SampleRate int     `yaml:"sample_rate"`
	ChunkSize  int     `yaml:"chunk_size"`
	QueueDepth int     `yaml:"queue_depth"`
	Playback   bool    `yaml:"playback"`
	RecordPath string  `yaml:"record_path"`
	MIDIPort   string  `yaml:"midi_port"`
}

// Default returns the stock configuration: 174 BPM at 44100 Hz, playback
// on, recording off.
func Default() Config {
	return Config{
		BPM:        174,
		SampleRate: 44100,
		ChunkSize:  2048,
		QueueDepth: 10,
		Playback:   true,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.BPM <= 0 {
		return fmt.Errorf("bpm must be positive, got %v", c.BPM)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.QueueDepth <= 0 {
		return fmt.Errorf("queue_depth must be positive, got %d", c.QueueDepth)
	}
	return nil
}

// BeatDuration returns the base beat length before tempo scaling.
func (c Config) BeatDuration() time.Duration {
	return time.Duration(60.0 / c.BPM * float64(time.Second))
}

// BarDuration returns the base four-beat bar length before tempo scaling.
func (c Config) BarDuration() time.Duration {
	return 4 * c.BeatDuration()
}
