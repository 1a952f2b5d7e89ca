package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnnotation()
	c.normalizeReconstruction()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	// An empty log_dir disables the log file.
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnnotation() {
	c.Annotation.Dialect = strings.ToLower(strings.TrimSpace(c.Annotation.Dialect))
	if c.Annotation.Dialect == "" {
		c.Annotation.Dialect = defaultDialect
	}
	c.Annotation.RecordType = strings.TrimSpace(c.Annotation.RecordType)
	c.Annotation.LabelPrefix = strings.TrimSpace(c.Annotation.LabelPrefix)
}

func (c *Config) normalizeReconstruction() {
	if c.Reconstruction.Workers == 0 {
		c.Reconstruction.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
