package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/redwan/configs"
	"github.com/sandevgo/redwan/internal/config"
	"github.com/sandevgo/redwan/internal/service/installer"
	"github.com/sandevgo/redwan/internal/service/ui"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect and initialize the knowledge sources",
}

var dataCheckCmd = &cobra.Command{
	Use:          "check",
	Short:        "Load every knowledge source and report what was used",
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
		st, err := initKnowledge(ctx, config.NewKnowledgeConfig(ctx, appCfg.GetRuntimePath()))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		snap := st.Snapshot()
		for _, rep := range snap.Reports {
			where := rep.Path
			if rep.Embedded {
				where = "embedded:" + rep.Path
			}
			if !rep.OK() {
				fmt.Fprintf(out, "%s %s/%s: %v\n", ui.ErrorStyle.Render("✗"), rep.Kind, rep.Name, rep.Err)
				continue
			}
			fmt.Fprintf(out, "✓ %s/%s: %d entries %s\n", rep.Kind, rep.Name, rep.Count, ui.DescStyle.Render(where))
		}
		fmt.Fprintf(out, "\n%d intents, %d patterns, %d dictionary entries\n",
			snap.Intents.Len(), snap.Intents.PatternCount(), snap.Lexicon.Len())

		if n := len(snap.Failed()); n > 0 {
			return fmt.Errorf("%d sources were skipped", n)
		}
		return nil
	},
}

var dataInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Copy the bundled sources into the data directory for editing",
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

		written, err := installer.CopyDefaults(configs.FS, kcfg.GetDataPath())
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Fprintln(cmd.OutOrStdout(), "created", p)
		}
		if len(written) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "all sources already present in", kcfg.GetDataPath())
		}
		return nil
	},
}

func init() {
	dataCmd.AddCommand(dataCheckCmd, dataInitCmd)
	rootCmd.AddCommand(dataCmd)
}
