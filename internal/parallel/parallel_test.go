package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsCoversEveryRowOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinRows: 3}

	for _, n := range []int{1, 5, 6, 7, 24, 1000} {
		hits := make([]int32, n)
		Rows(n, cfg, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			require.Equalf(t, int32(1), h, "n=%d row %d visited %d times", n, i, h)
		}
	}
}

func TestRowsSequentialFallback(t *testing.T) {
	calls := 0
	Rows(100, Sequential(), func(lo, hi int) {
		calls++
		assert.Equal(t, 0, lo)
		assert.Equal(t, 100, hi)
	})
	assert.Equal(t, 1, calls)
}

func TestRowsSmallInputRunsInline(t *testing.T) {
	cfg := DefaultConfig()
	calls := 0
	Rows(cfg.MinRows, cfg, func(lo, hi int) {
		calls++
	})
	assert.Equal(t, 1, calls)
}

func TestRowsZero(t *testing.T) {
	Rows(0, DefaultConfig(), func(lo, hi int) {
		t.Fatal("fn must not be called for n == 0")
	})
}

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 8, MinRows: 16}

	var counter int64
	For(1000, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})
	assert.Equal(t, int64(1000), counter)
}

func TestWithWorkers(t *testing.T) {
	cfg := DefaultConfig().WithWorkers(1)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.NumWorkers)

	cfg = Sequential().WithWorkers(3)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.NumWorkers)
}

func BenchmarkRows(b *testing.B) {
	cfg := DefaultConfig()
	data := make([]float64, 1<<16)

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Rows(len(data), cfg, func(lo, hi int) {
				for j := lo; j < hi; j++ {
					data[j] = float64(j) * 0.5
				}
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Rows(len(data), Sequential(), func(lo, hi int) {
				for j := lo; j < hi; j++ {
					data[j] = float64(j) * 0.5
				}
			})
		}
	})
}
