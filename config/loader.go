package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.base-path", "")
	v.SetDefault("app.env-file", ".env")
	v.SetDefault("app.key", "")
}

// loadEnvironmentFile puts the environment file into the process environment,
// already set variables win
func loadEnvironmentFile(logger *zap.Logger, path string) error {
	if _, err := os.Stat(path); err != nil {
		logger.Debug("No environment file loaded", zap.String("file", path))
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "unable to load environment file %s", path)
	}
	logger.Debug("Environment file loaded", zap.String("file", path))
	return nil
}

// Load resolves the configuration from v.
// configFile may be empty, then appkey.yaml is looked up in the working directory.
// The environment file below app.base-path is loaded into the process environment
// before APP_KEY is read, values already present in the environment are kept.
func Load(logger *zap.Logger, v *viper.Viper, configFile string) (*Configuration, error) {
	bind := func(from string, to string) {
		err := v.BindEnv(to, from)
		if err != nil {
			logger.Error("unable to bindenv", zap.String("from", from), zap.String("to", to), zap.Error(err))
		}
	}
	setDefaults(v)
	bind("APPKEY_BASE_PATH", "app.base-path")
	bind("APPKEY_ENV_FILE", "app.env-file")
	bind("APP_KEY", "app.key")

	if configFile != "" {
		logger.Debug("Using supplied config file", zap.String("file", configFile))
		v.SetConfigFile(configFile)
	} else {
		path, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "unable to get current working dir")
		}
		v.AddConfigPath(path)
		v.SetConfigName("appkey")
		v.SetConfigType("yaml")
		logger.Debug("Looking for default config file")
	}
	//precedence: environment overwrites yml
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, errors.Wrapf(err, "unable to read config file %s", configFile)
		}
		logger.Debug("No config file loaded")
	} else {
		logger.Debug("Config file loaded", zap.String("file", v.ConfigFileUsed()))
	}

	envPath := filepath.Join(v.GetString("app.base-path"), v.GetString("app.env-file"))
	if err := loadEnvironmentFile(logger, envPath); err != nil {
		return nil, err
	}

	conf := &Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshall config")
	}
	logger.Debug("Config loaded", zap.Any("config", conf))
	logger.Debug("Validating final config")
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return conf, nil
}
