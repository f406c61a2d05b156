package cmd

import (
	"github.com/eisenwinter/appkey/alias"
	"github.com/eisenwinter/appkey/console"
	"github.com/eisenwinter/appkey/generator"
	"github.com/eisenwinter/appkey/keygen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func mustResolvePathResolver() *alias.Resolver {
	resolver, err := alias.New(LoadedConfig.App.BasePath)
	if err != nil {
		TopLevelLogger.Fatal("Failed to create path resolver", zap.Error(err))
	}
	return resolver
}

func mustResolveKeyGenerator(cmd *cobra.Command) *keygen.KeyGenerator {
	out := cmd.OutOrStdout()
	return keygen.New(
		TopLevelLogger.Named("key_generator"),
		LoadedConfig.App,
		generator.New(),
		mustResolvePathResolver(),
		console.NewPrompt(cmd.InOrStdin(), out),
		console.NewOutput(out),
	)
}
