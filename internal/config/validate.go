package config

import (
	"errors"
	"fmt"
)

var validPresets = map[string]struct{}{
	"ultrafast": {},
	"superfast": {},
	"veryfast":  {},
	"faster":    {},
	"fast":      {},
	"medium":    {},
	"slow":      {},
	"slower":    {},
	"veryslow":  {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.CRF < 0 || c.Transcode.CRF > 51 {
		return fmt.Errorf("transcode.crf must be between 0 and 51, got %d", c.Transcode.CRF)
	}
	if _, ok := validPresets[c.Transcode.Preset]; !ok {
		return fmt.Errorf("transcode.preset: unknown preset %q", c.Transcode.Preset)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
