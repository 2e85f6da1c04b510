package pool

import (
	"context"
	"sync"
	"time"

	"pngpress/internal/discover"
	"pngpress/internal/transcode"
)

// Result pairs a work item with its outcome and the time the worker spent
// on it.
type Result struct {
	Item     discover.Item
	Outcome  transcode.Outcome
	Duration time.Duration
}

// Func converts one work item.
type Func func(ctx context.Context, item discover.Item) transcode.Outcome

// Run distributes items across a fixed pool of workers, each processing one
// item fully before pulling the next from the shared queue. Results are
// delivered on the returned channel in completion order, and the channel
// closes only after every item's result has been delivered: nothing is
// dropped, nothing is retried.
func Run(ctx context.Context, items []discover.Item, workers int, fn Func) <-chan Result {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan discover.Item)
	results := make(chan Result, len(items))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				started := time.Now()
				outcome := fn(ctx, item)
				results <- Result{
					Item:     item,
					Outcome:  outcome,
					Duration: time.Since(started),
				}
			}
		}()
	}

	go func() {
		for _, item := range items {
			jobs <- item
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	return results
}
