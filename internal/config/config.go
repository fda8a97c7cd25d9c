// Package config loads the turbalance project file.
//
// The file is looked up from a start directory upwards. TOML wins over YAML
// when both live in the same directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"turbalance/internal/checker"
)

const (
	TOMLName = "turbalance.toml"
	YAMLName = "turbalance.yaml"
)

// ErrNotFound is returned by Find when no project file exists up to the root.
var ErrNotFound = errors.New("no turbalance.toml or turbalance.yaml found")

// Normalize modes.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

type Config struct {
	Check CheckConfig `toml:"check" yaml:"check"`
	Cache CacheConfig `toml:"cache" yaml:"cache"`

	// Path of the file the config came from; empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type CheckConfig struct {
	Extensions     []string `toml:"extensions" yaml:"extensions"`
	MaxDiagnostics int      `toml:"max_diagnostics" yaml:"max_diagnostics"`
	WordBoundary   bool     `toml:"word_boundary" yaml:"word_boundary"`
	FuncParens     bool     `toml:"func_parens" yaml:"func_parens"`
	Normalize      string   `toml:"normalize" yaml:"normalize"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

// Default returns the configuration used when no project file exists.
func Default() Config {
	return Config{
		Check: CheckConfig{
			Extensions:     []string{".tsw"},
			MaxDiagnostics: 0,
			Normalize:      NormalizeNone,
		},
	}
}

// CheckerOptions maps the rule switches onto checker options.
func (c Config) CheckerOptions() checker.Options {
	return checker.Options{
		WordBoundary: c.Check.WordBoundary,
		FuncParens:   c.Check.FuncParens,
	}
}

// Find walks up from startDir and returns the first project file path.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range []string{TOMLName, YAMLName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover finds and loads the project file, falling back to Default.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// Load reads a TOML or YAML project file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		// #nosec G304 -- path is provided by the caller
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if len(c.Check.Extensions) == 0 {
		return fmt.Errorf("[check].extensions must not be empty")
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[check].extensions: %q must start with '.'", ext)
		}
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be >= 0")
	}
	switch c.Check.Normalize {
	case NormalizeNone, NormalizeNFC:
	default:
		return fmt.Errorf("[check].normalize: unknown mode %q (expected none|nfc)", c.Check.Normalize)
	}
	return nil
}

// Write stores cfg as TOML at path, refusing to overwrite.
func Write(path string, cfg Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
