package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"MacroPulse/internal/di"
	"MacroPulse/internal/services/report"
	"MacroPulse/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:           "brief",
		Short:         "Print the market and macro briefing",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithEnv(configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			// the terminal is the output
			cfg.Scheduler.Enabled = false
			if cfg.Log.Level == "info" {
				cfg.Log.Level = "warn"
			}
			cfg.Log.Output = "stderr"

			uc, cleanup, err := di.InitializeBriefing(cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			b, _ := uc.GenerateAndDeliver(ctx)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(b)
			}
			_, err = fmt.Fprint(out, report.Assemble(report.FromBriefing(b)))
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "config file path")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "overall deadline")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print signals as JSON instead of the text report")
	return cmd
}
