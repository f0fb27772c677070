package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/core"
)

var showSource bool

var askCmd = &cobra.Command{
	Use:          "ask <message>",
	Short:        "Answer one message and exit",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		kcfg := config.NewKnowledgeConfig(ctx, appCfg.GetRuntimePath())
		st, err := initKnowledge(ctx, kcfg)
		if err != nil {
			return err
		}

		// a single turn has no conversation, the generator stays off
		resp := newResponder(ctx, st, nil, config.NewGeneratorConfig(ctx))

		input := strings.Join(args, " ")
		history := []core.Message{{Sender: core.SenderUser, Text: input}}
		res := resp.ResolveWithFallback(ctx, input, history)

		if showSource {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", res.Source, res.Response)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Response)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVarP(&showSource, "source", "s", false, "print which stage answered")
	rootCmd.AddCommand(askCmd)
}
