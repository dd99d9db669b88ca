package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownGPUVendors = map[string]struct{}{
	"nvidia": {},
	"intel":  {},
	"amd":    {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateProbe(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if strings.TrimSpace(c.FFmpeg.Binary) == "" {
		return errors.New("ffmpeg.binary must be set")
	}
	return nil
}

func (c *Config) validateProbe() error {
	if c.Probe.TimeoutSeconds <= 0 {
		return errors.New("probe.timeout_seconds must be positive")
	}
	if c.Probe.VerifyTimeoutSeconds <= 0 {
		return errors.New("probe.verify_timeout_seconds must be positive")
	}
	vendor := strings.ToLower(strings.TrimSpace(c.Probe.PreferredGPUVendor))
	if _, ok := knownGPUVendors[vendor]; !ok {
		return fmt.Errorf("probe.preferred_gpu_vendor: unknown vendor %q (expected NVIDIA, Intel, or AMD)", c.Probe.PreferredGPUVendor)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "pretty", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
