package pool_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"pngpress/internal/discover"
	"pngpress/internal/pool"
	"pngpress/internal/transcode"
)

func makeItems(n int) []discover.Item {
	items := make([]discover.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, discover.Item{
			Source: fmt.Sprintf("in/%03d.png", i),
			Dest:   fmt.Sprintf("out/%03d.jpg", i),
		})
	}
	return items
}

func TestRunDeliversEveryItemExactlyOnce(t *testing.T) {
	items := makeItems(50)

	var mu sync.Mutex
	seen := make(map[string]int)

	results := pool.Run(context.Background(), items, 8, func(_ context.Context, item discover.Item) transcode.Outcome {
		mu.Lock()
		seen[item.Source]++
		mu.Unlock()
		return transcode.Outcome{Success: true, OutputBytes: 1}
	})

	count := 0
	for range results {
		count++
	}
	if count != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), count)
	}
	for _, item := range items {
		if seen[item.Source] != 1 {
			t.Fatalf("item %s executed %d times", item.Source, seen[item.Source])
		}
	}
}

func TestRunFailuresDoNotDropResults(t *testing.T) {
	items := makeItems(20)

	results := pool.Run(context.Background(), items, 4, func(_ context.Context, item discover.Item) transcode.Outcome {
		if item.Source == items[3].Source || item.Source == items[17].Source {
			return transcode.Outcome{Err: fmt.Errorf("decode %s: broken", item.Source)}
		}
		return transcode.Outcome{Success: true, OutputBytes: 10}
	})

	var succeeded, failed int
	for res := range results {
		if res.Outcome.Success {
			succeeded++
		} else {
			failed++
		}
	}
	if succeeded != 18 || failed != 2 {
		t.Fatalf("unexpected tally: %d succeeded, %d failed", succeeded, failed)
	}
}

func TestRunNeverExceedsWorkerBound(t *testing.T) {
	items := makeItems(40)
	const workers = 5

	var active, peak atomic.Int32

	results := pool.Run(context.Background(), items, workers, func(_ context.Context, _ discover.Item) transcode.Outcome {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		active.Add(-1)
		return transcode.Outcome{Success: true}
	})

	for range results {
	}
	if got := peak.Load(); got > workers {
		t.Fatalf("observed %d concurrent workers, bound is %d", got, workers)
	}
}

func TestRunClampsWorkerCount(t *testing.T) {
	items := makeItems(3)

	results := pool.Run(context.Background(), items, 0, func(_ context.Context, _ discover.Item) transcode.Outcome {
		return transcode.Outcome{Success: true}
	})

	count := 0
	for range results {
		count++
	}
	if count != 3 {
		t.Fatalf("expected 3 results, got %d", count)
	}
}

func TestRunEmptyItemListClosesImmediately(t *testing.T) {
	results := pool.Run(context.Background(), nil, 4, func(_ context.Context, _ discover.Item) transcode.Outcome {
		t.Fatal("worker must not run without items")
		return transcode.Outcome{}
	})

	if _, ok := <-results; ok {
		t.Fatal("expected closed channel with no results")
	}
}
