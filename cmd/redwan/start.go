package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandevgo/redwan/pkg/log"
	"github.com/sandevgo/redwan/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat services",
	Long:  `Loads the knowledge sources and starts the configured transports (terminal, Telegram) and the data watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting redwan")

		services := NewServices(ctx)

		// a transport that exits (e.g. the terminal on EOF) stops the rest
		srv.StartServices(ctx, stop, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("redwan has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
