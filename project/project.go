package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/cnote/format"
)

// ConfigNames lists the project files looked up in a directory, in order of
// preference.
var ConfigNames = []string{".cnote.toml", ".cnote.yaml", ".cnote.yml"}

// Doc output modes.
const (
	ModeSingle = "single"
	ModeBook   = "book"
)

// Config holds the settings for a cnote run.
type Config struct {
	Jobs    int           `toml:"jobs" yaml:"jobs"`
	Exclude []string      `toml:"exclude" yaml:"exclude"`
	Clean   CleanConfig   `toml:"clean" yaml:"clean"`
	Doc     DocConfig     `toml:"doc" yaml:"doc"`
	License LicenseConfig `toml:"license" yaml:"license"`
}

// CleanConfig configures the formatter run after comments are stripped.
type CleanConfig struct {
	Formatter string `toml:"formatter" yaml:"formatter"`
	Style     string `toml:"style" yaml:"style"`
	NoFormat  bool   `toml:"no_format" yaml:"no_format"`
}

// DocConfig configures documentation output.
type DocConfig struct {
	Title string `toml:"title" yaml:"title"`
	Mode  string `toml:"mode" yaml:"mode"`
}

// LicenseConfig names the raw license text file.
type LicenseConfig struct {
	File string `toml:"file" yaml:"file"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Jobs: runtime.NumCPU(),
		Clean: CleanConfig{
			Formatter: format.DefaultCommand,
		},
		Doc: DocConfig{
			Title: "API Documentation",
			Mode:  ModeSingle,
		},
	}
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	switch c.Doc.Mode {
	case ModeSingle, ModeBook:
	default:
		return fmt.Errorf("doc mode must be %q or %q, got %q", ModeSingle, ModeBook, c.Doc.Mode)
	}
	return nil
}

// Workers returns the number of files processed concurrently.
func (c *Config) Workers() int {
	if c.Jobs <= 0 {
		return runtime.NumCPU()
	}
	return c.Jobs
}

// Load looks for a project file in the current directory.
func Load() (*Config, string, error) {
	return LoadFrom(".")
}

// LoadFrom looks for a project file in dir and loads it. When there is none,
// it returns the defaults and an empty path.
func LoadFrom(dir string) (*Config, string, error) {
	path, ok := FindConfig(dir)
	if !ok {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// FindConfig returns the first of ConfigNames present in dir.
func FindConfig(dir string) (string, bool) {
	for _, name := range ConfigNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadFile reads a TOML or YAML project file, chosen by extension. Values
// missing from the file keep their defaults. Unknown keys are an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ResolvePath makes a path from a project file relative to the directory
// holding that file. Absolute paths and an empty configPath leave p as is.
func ResolvePath(configPath, p string) string {
	if p == "" || configPath == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
