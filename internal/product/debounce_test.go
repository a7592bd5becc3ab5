package product_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockly/restock-dashboard/internal/product"
)

func TestDebouncerCollapsesBurst(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := product.NewDebouncer(20*time.Millisecond, func() {
		calls.Add(1)
	})

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// No further invocations after the burst settles.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerFiresPerSettledBurst(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := product.NewDebouncer(10*time.Millisecond, func() {
		calls.Add(1)
	})

	d.Trigger()
	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 2*time.Millisecond)

	d.Trigger()
	require.Eventually(t, func() bool {
		return calls.Load() == 2
	}, time.Second, 2*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := product.NewDebouncer(10*time.Millisecond, func() {
		calls.Add(1)
	})

	d.Trigger()
	d.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
