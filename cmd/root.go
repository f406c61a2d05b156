package cmd

import (
	"fmt"
	"os"

	"github.com/eisenwinter/appkey/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// BasePath overrides app.base-path if set
var BasePath string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

var rootCommand = cobra.Command{
	Use:   "appkey",
	Short: "appkey manages the application key",
	Long: `appkey generates cryptographic secure application keys
and stores them in the environment file of your project`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")
	rootCommand.PersistentFlags().
		StringVar(&BasePath, "base-path", "", "directory the @base alias points to")
	cobra.CheckErr(viper.BindPFlag("app.base-path", rootCommand.PersistentFlags().Lookup("base-path")))

	keyCommand.AddCommand(&keyGenerateCommand)

	rootCommand.AddCommand(&keyCommand)
	rootCommand.AddCommand(&keyGenerateShortcutCommand)
}
