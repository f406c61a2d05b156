package main

import (
	"fmt"
	"log"
	"os"

	"github.com/eisenwinter/appkey/cmd"
	"github.com/eisenwinter/appkey/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	Version   = "?"
	BuildTime = "?"
	GitCommit = "-"
	GitRef    = "-"
)

func main() {
	//version info
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("appkey %s, built %s from %s (%s)\n", Version, BuildTime, GitCommit, GitRef)
		return
	}
	logger := bootstrap()
	defer func() {
		_ = logger.Sync()
	}()
	cmd.TopLevelLogger = logger
	cmd.Execute()
}

func bootstrap() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if r := os.Getenv("DEBUG_LOG"); r == "true" {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		log.Fatal(err)
	}
	cobra.OnInitialize(func() { initConfig(logger, cfg.Level) })
	return logger
}

func initConfig(logger *zap.Logger, level zap.AtomicLevel) {
	conf, err := config.Load(logger, viper.GetViper(), cmd.ConfigFileLocation)
	if err != nil {
		logger.Fatal("Unable to load configuration", zap.Error(err))
	}
	if conf.DebugMode() {
		level.SetLevel(zap.DebugLevel)
		logger.Debug("Debug mode enabled")
	}
	cmd.LoadedConfig = conf
}
