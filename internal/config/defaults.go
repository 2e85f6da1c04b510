package config

const (
	defaultLogDir       = "~/.local/share/pngpress/logs"
	defaultHistoryPath  = "~/.local/share/pngpress/history.db"
	defaultWorkers      = 14
	defaultMaxSizeMB    = 15
	defaultMaxDimension = 4000
	defaultStartQuality = 90
	defaultFloorQuality = 30
	defaultQualityStep  = 5
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Convert: Convert{
			Workers:      defaultWorkers,
			MaxSizeMB:    defaultMaxSizeMB,
			MaxDimension: defaultMaxDimension,
			StartQuality: defaultStartQuality,
			FloorQuality: defaultFloorQuality,
			QualityStep:  defaultQualityStep,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
