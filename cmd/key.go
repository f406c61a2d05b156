package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showKey bool
var forceKey bool

var keyCommand = cobra.Command{
	Use:   "key",
	Short: "application key commands",
	Long:  `commands to manage the application key (APP_KEY)`,
}

var keyGenerateCommand = cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Set the application key.",
	Long: `generates a cryptographic secure application key and replaces the
APP_KEY line of the environment file (@base/.env) with it.
If APP_KEY is already set you will be asked before it gets replaced.`,
	Example: `  appkey key generate
  appkey key gen --show
  appkey key:generate -s`,
	Args: cobra.NoArgs,
	Run:  runKeyGenerate,
}

// keyGenerateShortcutCommand provides the group:command notation
var keyGenerateShortcutCommand = cobra.Command{
	Use:     "key:generate",
	Aliases: []string{"key:gen"},
	Short:   keyGenerateCommand.Short,
	Long:    keyGenerateCommand.Long,
	Args:    cobra.NoArgs,
	Run:     runKeyGenerate,
}

func runKeyGenerate(cmd *cobra.Command, args []string) {
	generator := mustResolveKeyGenerator(cmd)
	if err := generator.WithForce(forceKey).Run(showKey); err != nil {
		TopLevelLogger.Error("Unable to generate application key", zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "Unable to generate application key: %s\r\n", err)
		os.Exit(1)
	}
}

func init() {
	for _, c := range []*cobra.Command{&keyGenerateCommand, &keyGenerateShortcutCommand} {
		c.Flags().BoolVarP(&showKey, "show", "s", false, "Display the key instead of modifying files.")
		c.Flags().BoolVarP(&forceKey, "force", "f", false, "Replace an existing key without asking.")
	}
}
