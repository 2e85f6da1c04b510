package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pngpress/internal/config"
	"pngpress/internal/history"
	"pngpress/internal/logging"
	"pngpress/internal/progress"
	"pngpress/internal/report"
	"pngpress/internal/run"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var maxSizeMB int

	cmd := &cobra.Command{
		Use:   "run [input-dir] [output-dir]",
		Short: "Convert every PNG under the input tree into a budgeted JPEG",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunOverrides(cfg, args, workers, maxSizeMB); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			return executeRun(cmd, cfg, logger)
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Override the worker count")
	cmd.Flags().IntVar(&maxSizeMB, "max-size-mb", 0, "Override the per-file size budget in megabytes")
	return cmd
}

func applyRunOverrides(cfg *config.Config, args []string, workers, maxSizeMB int) error {
	if len(args) > 0 {
		expanded, err := config.ExpandPath(args[0])
		if err != nil {
			return err
		}
		cfg.Paths.InputDir = expanded
	}
	if len(args) > 1 {
		expanded, err := config.ExpandPath(args[1])
		if err != nil {
			return err
		}
		cfg.Paths.OutputDir = expanded
	}
	if workers > 0 {
		cfg.Convert.Workers = workers
	}
	if maxSizeMB > 0 {
		cfg.Convert.MaxSizeMB = maxSizeMB
	}

	if strings.TrimSpace(cfg.Paths.InputDir) == "" {
		return errors.New("no input directory: pass it as an argument or set paths.input_dir")
	}
	if strings.TrimSpace(cfg.Paths.OutputDir) == "" {
		return errors.New("no output directory: pass it as an argument or set paths.output_dir")
	}
	return cfg.Validate()
}

func executeRun(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))
	started := time.Now()

	summary, err := run.Execute(cmd.Context(), cfg, logger, func(total int) progress.Tracker {
		return progress.New(total, cmd.ErrOrStderr())
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary.Render())

	if cfg.History.Enabled {
		if err := recordHistory(cmd, cfg, runID, started, summary); err != nil {
			// History is advisory; the conversions already happened.
			logger.Warn("record run history", slog.Any("error", err))
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", summary.Failed, summary.TotalFiles)
	}
	return nil
}

func recordHistory(cmd *cobra.Command, cfg *config.Config, runID string, started time.Time, summary report.Summary) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(cmd.Context(), history.Run{
		ID:             runID,
		StartedAt:      started,
		FinishedAt:     started.Add(summary.Elapsed),
		InputDir:       cfg.Paths.InputDir,
		OutputDir:      cfg.Paths.OutputDir,
		Workers:        cfg.Convert.Workers,
		MaxSizeBytes:   cfg.MaxSizeBytes(),
		TotalFiles:     summary.TotalFiles,
		Succeeded:      summary.Succeeded,
		Failed:         summary.Failed,
		OriginalBytes:  summary.OriginalBytes,
		OptimizedBytes: summary.OptimizedBytes,
	})
}
