package run_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"pngpress/internal/config"
	"pngpress/internal/logging"
	"pngpress/internal/progress"
	"pngpress/internal/report"
	"pngpress/internal/run"
	"pngpress/internal/testsupport"
)

type countingTracker struct {
	increments int
	finished   bool
}

func (c *countingTracker) Increment() { c.increments++ }
func (c *countingTracker) Finish()    { c.finished = true }

func testConfig(t *testing.T, workers int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.InputDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Convert.Workers = workers
	return &cfg
}

func TestExecuteConvertsTree(t *testing.T) {
	cfg := testConfig(t, 4)
	testsupport.WritePNG(t, filepath.Join(cfg.Paths.InputDir, "a.png"), 64, 64)
	testsupport.WritePNG(t, filepath.Join(cfg.Paths.InputDir, "sub", "b.png"), 32, 32)

	tracker := &countingTracker{}
	summary, err := run.Execute(context.Background(), cfg, logging.NewNop(), func(total int) progress.Tracker {
		if total != 2 {
			t.Fatalf("factory called with %d items", total)
		}
		return tracker
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if summary.TotalFiles != 2 || summary.Succeeded != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if tracker.increments != 2 || !tracker.finished {
		t.Fatalf("tracker saw %d increments, finished=%v", tracker.increments, tracker.finished)
	}

	for _, rel := range []string{"a.jpg", filepath.Join("sub", "b.jpg")} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, rel)); err != nil {
			t.Fatalf("missing output %s: %v", rel, err)
		}
	}
}

func TestExecuteEmptyRoot(t *testing.T) {
	cfg := testConfig(t, 4)

	summary, err := run.Execute(context.Background(), cfg, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("empty root must not fail: %v", err)
	}
	if summary.TotalFiles != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary for empty root: %+v", summary)
	}
	if _, ok := summary.Reduction(); ok {
		t.Fatal("empty run must not compute a reduction")
	}
}

func TestExecuteIsolatesCorruptFiles(t *testing.T) {
	cfg := testConfig(t, 4)
	testsupport.WritePNG(t, filepath.Join(cfg.Paths.InputDir, "good.png"), 48, 48)
	testsupport.WriteCorruptPNG(t, filepath.Join(cfg.Paths.InputDir, "bad.png"))

	summary, err := run.Execute(context.Background(), cfg, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("corrupt file must not abort the run: %v", err)
	}
	if summary.TotalFiles != 2 || summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "good.jpg")); err != nil {
		t.Fatalf("healthy file not converted: %v", err)
	}
}

func TestExecuteMissingInputRootIsFatal(t *testing.T) {
	cfg := testConfig(t, 2)
	cfg.Paths.InputDir = filepath.Join(cfg.Paths.InputDir, "missing")

	if _, err := run.Execute(context.Background(), cfg, logging.NewNop(), nil); err == nil {
		t.Fatal("expected fatal discovery error")
	}
}

func TestExecuteConcurrencyDoesNotChangeStatistics(t *testing.T) {
	input := t.TempDir()
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("img-%02d.png", i)
		if i%10 == 9 {
			testsupport.WriteCorruptPNG(t, filepath.Join(input, name))
		} else {
			testsupport.WritePNG(t, filepath.Join(input, "batch", name), 40, 30)
		}
	}

	summaries := make([]report.Summary, 0, 2)
	for _, workers := range []int{1, 8} {
		cfg := config.Default()
		cfg.Paths.InputDir = input
		cfg.Paths.OutputDir = t.TempDir()
		cfg.Convert.Workers = workers

		summary, err := run.Execute(context.Background(), &cfg, logging.NewNop(), nil)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if summary.Succeeded+summary.Failed != summary.TotalFiles {
			t.Fatalf("workers=%d: count invariant broken: %+v", workers, summary)
		}
		summaries = append(summaries, summary)
	}

	a, b := summaries[0].Stats, summaries[1].Stats
	if a != b {
		t.Fatalf("statistics differ across concurrency levels:\nworkers=1: %+v\nworkers=8: %+v", a, b)
	}
}

func TestExecuteRefusesConcurrentRunsIntoSameOutput(t *testing.T) {
	cfg := testConfig(t, 1)

	// Hold the lock from a second handle the way another process would.
	held, err := run.AcquireLockForTest(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	defer held.Unlock()

	if _, err := run.Execute(context.Background(), cfg, logging.NewNop(), nil); err == nil {
		t.Fatal("expected lock contention error")
	}
}
