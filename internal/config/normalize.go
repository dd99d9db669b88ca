package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeFFmpeg(); err != nil {
		return err
	}
	c.normalizeProbe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeFFmpeg() error {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if value, ok := os.LookupEnv("KEYGRIP_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.Binary = strings.TrimSpace(value)
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}

	c.FFmpeg.CompanionBinary = strings.TrimSpace(c.FFmpeg.CompanionBinary)
	if c.FFmpeg.CompanionBinary == "" {
		c.FFmpeg.CompanionBinary = defaultCompanionBinary
	}

	dirs := make([]string, 0, len(c.FFmpeg.ExtraSearchDirs))
	for _, dir := range c.FFmpeg.ExtraSearchDirs {
		trimmed := strings.TrimSpace(dir)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("ffmpeg.extra_search_dirs: %w", err)
		}
		dirs = append(dirs, expanded)
	}
	c.FFmpeg.ExtraSearchDirs = dirs
	return nil
}

func (c *Config) normalizeProbe() {
	if c.Probe.TimeoutSeconds == 0 {
		c.Probe.TimeoutSeconds = defaultProbeTimeoutSeconds
	}
	if c.Probe.VerifyTimeoutSeconds == 0 {
		c.Probe.VerifyTimeoutSeconds = defaultVerifyTimeoutSeconds
	}
	c.Probe.PreferredGPUVendor = strings.TrimSpace(c.Probe.PreferredGPUVendor)
	if c.Probe.PreferredGPUVendor == "" {
		c.Probe.PreferredGPUVendor = defaultPreferredGPUVendor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
