package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/service/installer"
	"github.com/sandevgo/redwan/pkg/log"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Create the runtime directory and its configuration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()
		logger.Info().Str("path", runtimePath).Msg("starting installation")

		// run wizard (includes save step)
		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := godotenv.Read(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("written .env file is not readable")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'redwan start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
