package main

import (
	"strings"
	"sync"

	"log/slog"

	"castprep/internal/config"
	"castprep/internal/deps"
	"castprep/internal/logging"
	"castprep/internal/transcode"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	toolsOnce sync.Once
	tools     deps.Tools
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger returns the process logger, falling back to a no-op logger
// when log setup fails. CLI output never depends on it.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewForPath(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// resolveTools resolves the encoder and prober binaries once per process.
// Explicit config overrides win; otherwise the bundled vendor directory is
// preferred with a PATH fallback.
func (c *commandContext) resolveTools() (deps.Tools, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return deps.Tools{}, err
	}
	c.toolsOnce.Do(func() {
		tools := deps.ResolveTools(cfg.Paths.VendorDir, c.ensureLogger())
		if override := cfg.FFmpegBinary(); override != "" {
			tools.FFmpeg = override
		}
		if override := cfg.FFprobeBinary(); override != "" {
			tools.FFprobe = override
		}
		c.tools = tools
	})
	return c.tools, nil
}

func (c *commandContext) newSupervisor() (*transcode.Supervisor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	tools, err := c.resolveTools()
	if err != nil {
		return nil, err
	}
	quality := transcode.Quality{
		CRF:    cfg.Transcode.CRF,
		Preset: cfg.Transcode.Preset,
		Tune:   cfg.Transcode.Tune,
	}
	return transcode.New(tools, c.ensureLogger(), transcode.WithQuality(quality)), nil
}
