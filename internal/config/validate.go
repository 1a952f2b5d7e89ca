package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnnotation(); err != nil {
		return err
	}
	if err := c.validateReconstruction(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnnotation() error {
	switch c.Annotation.Dialect {
	case DialectRTTM, DialectNeMo, DialectCustom:
	default:
		return fmt.Errorf("annotation.dialect must be one of %s, %s, %s (got %q)",
			DialectRTTM, DialectNeMo, DialectCustom, c.Annotation.Dialect)
	}
	_, err := c.Dialect()
	return err
}

func (c *Config) validateReconstruction() error {
	fade := c.Reconstruction.FadeSeconds
	if math.IsNaN(fade) || math.IsInf(fade, 0) || fade < 0 {
		return errors.New("reconstruction.fade_seconds must be a non-negative number")
	}
	if c.Reconstruction.Workers < 1 {
		return errors.New("reconstruction.workers must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
