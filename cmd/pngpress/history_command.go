package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"pngpress/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled (set history.enabled = true)")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			headers := []string{"Started", "Input", "Files", "OK", "Failed", "Original", "Optimized", "Took"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.InputDir,
					fmt.Sprintf("%d", run.TotalFiles),
					fmt.Sprintf("%d", run.Succeeded),
					fmt.Sprintf("%d", run.Failed),
					humanize.IBytes(uint64(run.OriginalBytes)),
					humanize.IBytes(uint64(run.OptimizedBytes)),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
				})
			}

			aligns := []columnAlignment{
				alignLeft, alignLeft, alignRight, alignRight,
				alignRight, alignRight, alignRight, alignRight,
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}
