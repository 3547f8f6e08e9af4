package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"diarbench/internal/report"
	"diarbench/internal/results"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [report.csv]",
		Short: "Summarize a report file or the most recent run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var rows []results.Result
			source := ""
			if len(args) == 1 {
				rows, err = report.ReadCSV(args[0])
				if err != nil {
					return fmt.Errorf("read report: %w", err)
				}
				source = args[0]
			} else {
				store, storeErr := results.Open(cfg.DatabasePath())
				if storeErr != nil {
					return fmt.Errorf("open results store: %w", storeErr)
				}
				defer store.Close()

				run, runErr := store.LatestFinishedRun(cmd.Context())
				if runErr != nil {
					return fmt.Errorf("find latest run: %w", runErr)
				}
				if run == nil {
					return errors.New("no finished runs recorded; run `diarbench run` first")
				}
				rows, err = store.ByRun(cmd.Context(), run.ID)
				if err != nil {
					return fmt.Errorf("load run results: %w", err)
				}
				source = fmt.Sprintf("run %s (%s)", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Analyzing %s\n\n", source)
			printSummary(out, report.Summarize(rows))
			return nil
		},
	}
}

func printSummary(out io.Writer, s report.Summary) {
	fmt.Fprintf(out, "Recordings: %d total, %d succeeded, %d failed\n\n", s.Total, s.Succeeded, s.Total-s.Succeeded)
	if s.Succeeded == 0 {
		fmt.Fprintln(out, "No successful recordings to summarize.")
		return
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Mean", "Median", "Min", "Max"},
		[][]string{{
			"DER",
			formatRate(s.MeanDER),
			formatRate(s.MedianDER),
			formatRate(s.MinDER),
			formatRate(s.MaxDER),
		}},
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))

	fmt.Fprintln(out, renderTable(
		[]string{"Component", "Mean"},
		[][]string{
			{"False alarm", formatRate(s.MeanFalseAlarm)},
			{"Missed detection", formatRate(s.MeanMissedDetection)},
			{"Confusion", formatRate(s.MeanConfusion)},
			{"Missing speech", fmt.Sprintf("%.1f%%", s.MeanMissingSpeechPct)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	fmt.Fprintf(out, "Speech detection: %d over-detecting, %d under-detecting\n\n", s.OverDetecting, s.UnderDetecting)

	if len(s.Categories) > 0 {
		names := make([]string, 0, len(s.Categories))
		for name := range s.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			rows = append(rows, []string{name, fmt.Sprintf("%d", s.Categories[name])})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Category", "Recordings"},
			rows,
			[]columnAlignment{alignLeft, alignRight},
		))
	}

	if len(s.Worst) > 0 {
		printRecordingList(out, "Worst recordings (DER > 0.50)", s.Worst)
	}
	if len(s.Best) > 0 {
		printRecordingList(out, "Best recordings (DER < 0.20)", s.Best)
	}

	if len(s.Recommendations) > 0 {
		fmt.Fprintln(out, "Recommendations:")
		for _, advice := range s.Recommendations {
			fmt.Fprintf(out, "  - %s\n", advice)
		}
	}
}

func printRecordingList(out io.Writer, title string, rows []results.Result) {
	fmt.Fprintln(out, title)
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{row.RecID, formatRate(row.DER), row.Category})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Recording", "DER", "Category"},
		tableRows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
