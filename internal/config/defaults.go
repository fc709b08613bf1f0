package config

const (
	defaultDatasetDir           = "~/datasets"
	defaultLogDir               = "~/.local/share/pipet/logs"
	defaultWorkers              = 4
	defaultProgressPollInterval = 200
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatasetDir: defaultDatasetDir,
			LogDir:     defaultLogDir,
		},
		Workflow: Workflow{
			Workers:              defaultWorkers,
			ProgressPollInterval: defaultProgressPollInterval,
		},
		Logging: Logging{
			Enabled: true,
			Format:  defaultLogFormat,
			Level:   defaultLogLevel,
		},
	}
}
