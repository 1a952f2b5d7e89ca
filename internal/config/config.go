package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"speakersplit/internal/timeline"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains state and log directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Annotation selects how diarization annotation files are read.
//
// Dialect "rttm" and "nemo" use built-in layouts and ignore the field
// positions. Dialect "custom" uses the positions below; set an unused
// position to -1.
type Annotation struct {
	Dialect       string `toml:"dialect"`
	RecordType    string `toml:"record_type"`
	StartField    int    `toml:"start_field"`
	DurationField int    `toml:"duration_field"`
	EndField      int    `toml:"end_field"`
	LabelField    int    `toml:"label_field"`
	LabelPrefix   string `toml:"label_prefix"`
}

// Reconstruction tunes speaker reconstruction.
type Reconstruction struct {
	FadeSeconds    float64 `toml:"fade_seconds"`
	SortIntervals  bool    `toml:"sort_intervals"`
	Workers        int     `toml:"workers"`
	CheckFreeSpace bool    `toml:"check_free_space"`
}

// History controls the run ledger.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for speakersplit.
//
// Configuration sections:
//   - Paths: history database and log file locations
//   - Annotation: annotation dialect and field layout
//   - Reconstruction: fade length, interval ordering, parallelism, preflight
//   - History: run ledger toggle
//   - Logging: log format and level
type Config struct {
	Paths          Paths          `toml:"paths"`
	Annotation     Annotation     `toml:"annotation"`
	Reconstruction Reconstruction `toml:"reconstruction"`
	History        History        `toml:"history"`
	Logging        Logging        `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the location of the run history database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, historyFileName)
}

// Dialect builds the annotation dialect described by the [annotation] section.
func (c *Config) Dialect() (timeline.Dialect, error) {
	var d timeline.Dialect
	if c.Annotation.Dialect == DialectCustom {
		d = timeline.Dialect{
			Name:          DialectCustom,
			RecordType:    c.Annotation.RecordType,
			StartField:    c.Annotation.StartField,
			DurationField: c.Annotation.DurationField,
			EndField:      c.Annotation.EndField,
			LabelField:    c.Annotation.LabelField,
		}
	} else {
		var err error
		if d, err = timeline.Lookup(c.Annotation.Dialect); err != nil {
			return timeline.Dialect{}, fmt.Errorf("annotation.dialect: %w", err)
		}
	}
	d.LabelPrefix = c.Annotation.LabelPrefix
	if err := d.Validate(); err != nil {
		return timeline.Dialect{}, fmt.Errorf("annotation: %w", err)
	}
	return d, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
