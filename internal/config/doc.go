// Package config loads, normalizes, and validates keygrip configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the KEYGRIP_FFMPEG environment
// override. The Config type centralizes every knob the CLI and the capability
// service need: toolchain resolution, probe timeouts, preferred GPU vendor,
// and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
