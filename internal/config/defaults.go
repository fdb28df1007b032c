package config

const (
	defaultWorkDir   = "~/.local/share/castprep/work"
	defaultLogDir    = "~/.local/share/castprep/logs"
	defaultVendorDir = "~/.local/share/castprep/vendor"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	// Defaults tuned for broadly compatible progressive playback.
	defaultCRF    = 23
	defaultPreset = "ultrafast"
	defaultTune   = "zerolatency"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
			VendorDir: defaultVendorDir,
		},
		Transcode: Transcode{
			CRF:    defaultCRF,
			Preset: defaultPreset,
			Tune:   defaultTune,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
