package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"diarbench/internal/batch"
	"diarbench/internal/logging"
	"diarbench/internal/preflight"
	"diarbench/internal/results"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate every recording in the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			start := time.Now()
			logger, logPath, closeLog, err := logging.NewRunLogger(cfg, start)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer closeLog()

			diarizer := ctx.newDiarizer(cfg)
			scorer := ctx.newScorer(cfg)

			// The token check is not skippable: without HF_TOKEN the
			// pretrained pipeline cannot load and every recording would fail.
			if token := preflight.CheckToken(cfg); !token.Passed {
				return fmt.Errorf("%s: %s", token.Name, token.Detail)
			}

			if !skipPreflight {
				checks := preflight.RunAll(signalCtx, cfg, diarizer, scorer)
				printPreflight(cmd, checks)
				if !preflight.AllPassed(checks) {
					return fmt.Errorf("preflight failed; fix the issues above or rerun with --skip-preflight")
				}
			}

			store, err := results.Open(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("open results store: %w", err)
			}
			defer store.Close()

			runner, err := batch.New(cfg, store, diarizer, scorer, logger)
			if err != nil {
				return err
			}

			outcome, err := runner.Run(signalCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, outcome.Summary)
			fmt.Fprintf(out, "\nReport: %s\n", outcome.ReportPath)
			fmt.Fprintf(out, "Log:    %s\n", logPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before the run")
	return cmd
}
