package config

const (
	defaultConfigPath    = "~/.config/prettycue/config.toml"
	projectConfigName    = "prettycue.toml"
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
	defaultInputEncoding = "auto"
	defaultOutputBackup  = false
	defaultOutputLock    = true
	envLogLevel          = "PRETTYCUE_LOG_LEVEL"
	envLogFormat         = "PRETTYCUE_LOG_FORMAT"
	envInputEncoding     = "PRETTYCUE_INPUT_ENCODING"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Input: Input{
			Encoding: defaultInputEncoding,
		},
		Output: Output{
			Backup: defaultOutputBackup,
			Lock:   defaultOutputLock,
		},
	}
}
