// Package parallel splits row-wise matrix work across goroutines.
//
// Only work inside a single batch is ever split. Every call blocks until
// all chunks are done, so callers observe a fully written result before
// the next forward, backward or update step begins.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Upper bound on goroutines per call.
	MinRows    int  // Minimum rows per goroutine to be worth the overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinRows:    256,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1, MinRows: 1}
}

// WithWorkers returns a copy of cfg limited to n workers. Values <= 1
// disable parallelism.
func (c Config) WithWorkers(n int) Config {
	if n <= 1 {
		c.Enabled = false
		c.NumWorkers = 1
		return c
	}
	c.Enabled = true
	c.NumWorkers = n
	return c
}

// Rows calls fn over [lo, hi) row ranges covering [0, n) exactly once.
// Ranges are disjoint, so fn may write rows lo..hi-1 without locking.
func Rows(n int, cfg Config, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	minRows := max(cfg.MinRows, 1)
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*minRows {
		fn(0, n)
		return
	}

	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minRows)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n), chunked the same way as Rows.
func For(n int, cfg Config, f func(i int)) {
	Rows(n, cfg, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	})
}
