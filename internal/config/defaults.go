package config

const (
	defaultFFmpegBinary         = "ffmpeg"
	defaultCompanionBinary      = "drapto"
	defaultProbeTimeoutSeconds  = 10
	defaultVerifyTimeoutSeconds = 30
	defaultPreferredGPUVendor   = "NVIDIA"
	defaultLogFormat            = "pretty"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		FFmpeg: FFmpeg{
			Binary:          defaultFFmpegBinary,
			CompanionBinary: defaultCompanionBinary,
		},
		Probe: Probe{
			TimeoutSeconds:       defaultProbeTimeoutSeconds,
			VerifyTimeoutSeconds: defaultVerifyTimeoutSeconds,
			PreferredGPUVendor:   defaultPreferredGPUVendor,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
