package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConvert() error {
	if c.Convert.Workers < 1 {
		return errors.New("convert.workers must be at least 1")
	}
	if c.Convert.MaxSizeMB < 1 {
		return errors.New("convert.max_size_mb must be at least 1")
	}
	if c.Convert.MaxDimension < 1 {
		return errors.New("convert.max_dimension must be at least 1")
	}
	if c.Convert.StartQuality < 1 || c.Convert.StartQuality > 100 {
		return fmt.Errorf("convert.start_quality must be between 1 and 100, got %d", c.Convert.StartQuality)
	}
	if c.Convert.FloorQuality < 1 || c.Convert.FloorQuality > c.Convert.StartQuality {
		return fmt.Errorf("convert.floor_quality must be between 1 and start_quality (%d), got %d",
			c.Convert.StartQuality, c.Convert.FloorQuality)
	}
	if c.Convert.QualityStep < 1 {
		return errors.New("convert.quality_step must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
