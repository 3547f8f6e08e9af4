package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"diarbench/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check credentials, directories, and sidecar reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			checks := preflight.RunAll(cmd.Context(), cfg, ctx.newDiarizer(cfg), ctx.newScorer(cfg))
			printPreflight(cmd, checks)
			if !preflight.AllPassed(checks) {
				return fmt.Errorf("one or more preflight checks failed")
			}
			return nil
		},
	}
}

func printPreflight(cmd *cobra.Command, checks []preflight.Result) {
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		status := "FAIL"
		if check.Passed {
			status = "OK"
		}
		rows = append(rows, []string{check.Name, status, check.Detail})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Check", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
