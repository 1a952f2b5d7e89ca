package config

import "speakersplit/internal/timeline"

const (
	defaultConfigPath     = "~/.config/speakersplit/config.toml"
	projectConfigName     = "speakersplit.toml"
	historyFileName       = "history.db"
	defaultStateDir       = "~/.local/share/speakersplit"
	defaultLogDir         = "~/.local/share/speakersplit/logs"
	defaultDialect        = "rttm"
	defaultFadeSeconds    = 0.2
	defaultWorkers        = 2
	defaultCheckFreeSpace = true
	defaultHistoryEnabled = true
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Dialect names accepted by annotation.dialect.
const (
	DialectRTTM   = "rttm"
	DialectNeMo   = "nemo"
	DialectCustom = "custom"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Annotation: Annotation{
			Dialect:       defaultDialect,
			StartField:    timeline.NeMo.StartField,
			DurationField: timeline.NoField,
			EndField:      timeline.NeMo.EndField,
			LabelField:    timeline.NeMo.LabelField,
		},
		Reconstruction: Reconstruction{
			FadeSeconds:    defaultFadeSeconds,
			Workers:        defaultWorkers,
			CheckFreeSpace: defaultCheckFreeSpace,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
