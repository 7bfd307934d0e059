package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"prettycue/internal/config"
	"prettycue/internal/faults"
	"prettycue/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = faults.Wrap(faults.KindConfiguration, "load config", "", err)
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				if !config.ValidLogLevel(level) {
					c.configErr = faults.Wrap(faults.KindConfiguration, "--log-level", "unsupported level "+level, nil)
					return
				}
				cfg.Logging.Level = level
			}
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// logger builds the base logger for this invocation, writing to w. Callers
// must run the returned close func once logging is done.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := logging.NewFromConfig(cfg, w)
	if err != nil {
		return nil, nil, faults.Wrap(faults.KindConfiguration, "init logging", "", err)
	}
	return logger, closeLog, nil
}
