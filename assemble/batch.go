package assemble

import (
	"context"
	"runtime"
	"sync"

	"github.com/schemaworks/theoria/staging"
)

// AssembleBatch assembles many theories concurrently. Results align with
// the input order, one slot per bundle. Theories are isolated: a rejected
// theory never aborts the batch. When the context is cancelled the feed
// stops, in-flight work finishes, unstarted slots keep their zero value
// and the context error is returned.
func (a *Assembler) AssembleBatch(ctx context.Context, bundles []staging.TheoryBundle, workers int) ([]Result, error) {
	results := make([]Result, len(bundles))
	if len(bundles) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(bundles) {
		workers = len(bundles)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.Assemble(bundles[i])
			}
		}()
	}

	var err error
feed:
	for i := range bundles {
		if ctx.Err() != nil {
			err = ctx.Err()
			break feed
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, err
}
