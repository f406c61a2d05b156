package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// AppConfiguration contains the settings of the application the key is generated for
type AppConfiguration struct {
	// BasePath is the target of the @base alias
	BasePath string `mapstructure:"base-path"`
	// EnvFile is the environment file name relative to BasePath
	EnvFile string `mapstructure:"env-file"`
	// Key is the APP_KEY value present when the process started
	Key string `mapstructure:"key" json:"-"`
}

// EnvFileAlias returns the symbolic location of the environment file
func (a *AppConfiguration) EnvFileAlias() string {
	return "@base/" + filepath.ToSlash(a.EnvFile)
}

// Configuration habours the entire configuration
type Configuration struct {
	App *AppConfiguration `mapstructure:"app"`
}

// Validate does some basic validation and tries to be helpful on missconfiguration
func (c *Configuration) Validate() error {
	if c.App == nil {
		return errors.New("no app configuration found")
	}
	if strings.TrimSpace(c.App.EnvFile) == "" {
		return errors.New("app.env-file may not be empty")
	}
	if filepath.IsAbs(c.App.EnvFile) {
		return errors.WithHint(
			errors.Newf("app.env-file %q has to be relative", c.App.EnvFile),
			"use app.base-path to point at another directory",
		)
	}
	if c.App.BasePath != "" {
		fi, err := os.Stat(c.App.BasePath)
		if err != nil {
			return errors.Wrapf(err, "app.base-path %q is not usable", c.App.BasePath)
		}
		if !fi.IsDir() {
			return errors.Newf("app.base-path %q is not a directory", c.App.BasePath)
		}
	}
	return nil
}

// DebugMode returns true if APPKEY_DEBUG_MODE is set to true
func (*Configuration) DebugMode() bool {
	if r := os.Getenv("APPKEY_DEBUG_MODE"); r == "true" {
		return true
	}
	return false
}
