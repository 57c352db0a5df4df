package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSingleWorkerRunsInline(t *testing.T) {
	pool := Start(1)
	assert.Equal(t, 1, pool.Workers())

	var order []int
	for i := range 5 {
		pool.Do(func() { order = append(order, i) })
		assert.Len(t, order, i+1)
	}
	pool.Wait(true)
	pool.Cancel()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestWorkersRunEveryJob(t *testing.T) {
	pool := Start(4)
	assert.Equal(t, 4, pool.Workers())

	var count atomic.Int64
	for range 100 {
		pool.Do(func() { count.Add(1) })
	}
	pool.Wait(true)
	assert.EqualValues(t, 100, count.Load())

	assert.NotPanics(t, func() { pool.Cancel() }, "cancel after close")
}

func TestDefaultWorkers(t *testing.T) {
	pool := Start(0)
	defer pool.Wait(true)
	assert.Equal(t, runtime.GOMAXPROCS(0), pool.Workers())
}
