package config

const (
	defaultDataDir        = "~/.local/share/guise"
	defaultLogDir         = "~/.local/share/guise/logs"
	defaultPlayerID       = "local"
	defaultPlayerName     = "Local Player"
	defaultPlayerRole     = "master"
	defaultGridDPI        = 150
	defaultPollIntervalMS = 500
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Player: Player{
			ID:   defaultPlayerID,
			Name: defaultPlayerName,
			Role: defaultPlayerRole,
		},
		Grid: Grid{
			DefaultDPI: defaultGridDPI,
		},
		Watch: Watch{
			PollIntervalMS: defaultPollIntervalMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
