// Package manifest handles brainruck.toml configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/brainruck/vm"
)

// FileName is the configuration file looked up next to programs.
const FileName = "brainruck.toml"

// Manifest represents a brainruck.toml configuration.
type Manifest struct {
	Tape    TapeConfig    `toml:"tape"`
	Run     RunConfig     `toml:"run"`
	Log     LogConfig     `toml:"log"`
	Image   ImageConfig   `toml:"image"`
	History HistoryConfig `toml:"history"`

	// Dir is the directory containing the brainruck.toml file (set at load
	// time). Empty for the built-in defaults.
	Dir string `toml:"-"`
}

// TapeConfig configures the tape.
type TapeConfig struct {
	Capacity int `toml:"capacity"`
}

// RunConfig configures execution.
type RunConfig struct {
	Strict   bool   `toml:"strict"`
	MaxSteps uint64 `toml:"max-steps"`
	Trace    bool   `toml:"trace"`
}

// LogConfig configures commonlog. Verbosity 1 shows run summaries and
// 2 shows traces.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// ImageConfig configures the snapshot written after a run.
type ImageConfig struct {
	Output string `toml:"output"`
}

// HistoryConfig configures the run log.
type HistoryConfig struct {
	Database string `toml:"database"`
}

// Default returns the configuration used when no brainruck.toml exists.
func Default() *Manifest {
	return &Manifest{
		Tape: TapeConfig{Capacity: 1024},
	}
}

// Load parses a brainruck.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// FindAndLoad walks up from startDir to find a brainruck.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Validate rejects values the interpreter cannot use.
func (m *Manifest) Validate() error {
	if m.Tape.Capacity < 0 {
		return fmt.Errorf("tape.capacity must not be negative, got %d", m.Tape.Capacity)
	}
	if m.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", m.Log.Verbosity)
	}
	return nil
}

// VMConfig returns the interpreter settings.
func (m *Manifest) VMConfig() vm.Config {
	return vm.Config{
		TapeCapacity: m.Tape.Capacity,
		MaxSteps:     m.Run.MaxSteps,
		Strict:       m.Run.Strict,
		Trace:        m.Run.Trace,
	}
}

// ImagePath returns the absolute snapshot path, or "" when disabled.
func (m *Manifest) ImagePath() string {
	return m.resolve(m.Image.Output)
}

// HistoryPath returns the absolute run log path, or "" when disabled.
func (m *Manifest) HistoryPath() string {
	return m.resolve(m.History.Database)
}

// LogPath returns the absolute log file path, or "" for stderr.
func (m *Manifest) LogPath() string {
	return m.resolve(m.Log.File)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir, p)
}
