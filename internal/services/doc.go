// Package services holds the error taxonomy shared by keygrip's probe
// components.
//
// Sentinel markers classify failures (external tool, validation,
// configuration, not-found, timeout, unsupported) and Wrap attaches
// component/operation context while preserving errors.Is chains. Probe
// failures are recovered locally and degrade detection results; only
// unsupported-platform errors cross the public API.
package services
