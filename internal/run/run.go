package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"pngpress/internal/config"
	"pngpress/internal/discover"
	"pngpress/internal/pool"
	"pngpress/internal/progress"
	"pngpress/internal/report"
	"pngpress/internal/transcode"
)

const lockFileName = ".pngpress.lock"

// Execute performs one conversion run over the configured roots. newTracker
// is called with the discovered item count once it is known; a nil factory
// disables progress display.
//
// Discovery failures and lock contention abort before any work is scheduled.
// Per-file conversion failures never abort the run; they are logged, counted,
// and reflected in the returned summary.
func Execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, newTracker func(total int) progress.Tracker) (report.Summary, error) {
	started := time.Now()

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		return report.Summary{}, fmt.Errorf("create output root: %w", err)
	}

	// One writer per output tree. Two concurrent runs into the same root
	// would interleave quality-search rewrites of the same files.
	lock := flock.New(filepath.Join(cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return report.Summary{}, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return report.Summary{}, fmt.Errorf("another pngpress run is writing to %s", cfg.Paths.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	items, err := discover.Scan(cfg.Paths.InputDir, cfg.Paths.OutputDir)
	if err != nil {
		return report.Summary{}, err
	}

	logger.Info("discovery complete",
		slog.String("input_dir", cfg.Paths.InputDir),
		slog.Int("files", len(items)),
	)

	stats := report.NewStats(len(items))
	if len(items) == 0 {
		return stats.Finalize(time.Since(started)), nil
	}

	var tracker progress.Tracker = progress.Nop()
	if newTracker != nil {
		tracker = newTracker(len(items))
	}

	opts := transcode.Options{
		MaxBytes:     cfg.MaxSizeBytes(),
		MaxDimension: cfg.Convert.MaxDimension,
		StartQuality: cfg.Convert.StartQuality,
		FloorQuality: cfg.Convert.FloorQuality,
		QualityStep:  cfg.Convert.QualityStep,
	}

	results := pool.Run(ctx, items, cfg.Convert.Workers, func(_ context.Context, item discover.Item) transcode.Outcome {
		return transcode.File(item.Source, item.Dest, opts)
	})

	// Single consumer: statistics and the progress indicator both subscribe
	// to the completion stream here, so no further locking is needed.
	for res := range results {
		stats.Apply(res)
		tracker.Increment()

		if res.Outcome.Success {
			logger.Debug("converted",
				slog.String("source", res.Item.Source),
				slog.Int64("bytes", res.Outcome.OutputBytes),
				slog.Int("quality", res.Outcome.Quality),
				slog.Duration("took", res.Duration),
			)
		} else {
			logger.Warn("conversion failed",
				slog.String("source", res.Item.Source),
				slog.Any("error", res.Outcome.Err),
			)
		}
	}
	tracker.Finish()

	return stats.Finalize(time.Since(started)), nil
}
