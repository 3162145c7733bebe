package authz

import (
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/pkg/configuration"
)

// Config captures all inputs necessary to initialize the Casbin enforcer.
// Leaving both ModelPath and PolicyPath empty selects the embedded defaults.
type Config struct {
	ModelPath    string
	PolicyPath   string
	FlagPath     string
	FlagMode     Mode
	Logger       *logrus.Logger
	FlagProvider FlagProvider
}

func (c Config) validate() error {
	if (c.ModelPath == "") != (c.PolicyPath == "") {
		return configError("model and policy paths must be set together")
	}
	return nil
}

func (c Config) embedded() bool {
	return c.ModelPath == "" && c.PolicyPath == ""
}

func (c Config) normalized() Config {
	if !c.embedded() {
		c.ModelPath = filepath.Clean(c.ModelPath)
		c.PolicyPath = filepath.Clean(c.PolicyPath)
	}
	if c.FlagPath != "" {
		c.FlagPath = filepath.Clean(c.FlagPath)
	}
	c.FlagMode = sanitizeMode(c.FlagMode)
	return c
}

// ConfigFrom builds a Config from the application configuration.
func ConfigFrom(cfg *configuration.Configuration) Config {
	return Config{
		ModelPath:  strings.TrimSpace(cfg.Authz.ModelPath),
		PolicyPath: strings.TrimSpace(cfg.Authz.PolicyPath),
		FlagPath:   strings.TrimSpace(cfg.Authz.FlagConfigPath),
		FlagMode:   Mode(cfg.Authz.Mode),
		Logger:     cfg.Logger(),
	}
}
