package cli

import (
	"sync/atomic"

	"github.com/githubnext/nestcheck/pkg/balance"
	"github.com/githubnext/nestcheck/pkg/console"
	"github.com/sourcegraph/conc/pool"
)

// CheckFunc scans a single file
type CheckFunc func(path string) balance.Result

// checkFiles runs check over every path with at most workers scans at once.
// Results come back in the order of paths regardless of completion order.
func checkFiles(paths []string, workers int, check CheckFunc) []balance.Result {
	results := make([]balance.Result, len(paths))
	if len(paths) == 0 {
		return results
	}

	var spinner *console.SpinnerWrapper
	if len(paths) > 1 {
		spinner = console.NewSpinner("Checking files...")
		spinner.Start()
		defer spinner.Stop()
	}

	var done atomic.Int64
	p := pool.New().WithMaxGoroutines(max(workers, 1))
	for i, path := range paths {
		i, path := i, path
		p.Go(func() {
			results[i] = check(path)
			if spinner != nil {
				spinner.Advance(int(done.Add(1)), len(paths))
			}
		})
	}
	p.Wait()

	return results
}
