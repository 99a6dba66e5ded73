package config

const (
	defaultLogDir          = "~/.local/share/seekbar/logs"
	defaultAPIBind         = "127.0.0.1:7335"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultSeekStepSeconds = 5.0
	defaultVolumeStep      = 0.1
	defaultBridgeEnabled   = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Player: Player{
			SeekStepSeconds: defaultSeekStepSeconds,
			VolumeStep:      defaultVolumeStep,
		},
		Bridge: Bridge{
			Enabled: defaultBridgeEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
