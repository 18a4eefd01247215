package pipeline

import (
	"context"
	"sync"
)

// runPool calls fn(i) for i in [0, n) on up to workers goroutines and waits for all of
// them. Indices not yet handed out when ctx is cancelled are skipped.
func runPool(ctx context.Context, workers, n int, fn func(i int)) {
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
}
