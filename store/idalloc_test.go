package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIDMonotonic(t *testing.T) {
	a, err := NewIDAlloc(CurrentEpoch)
	require.NoError(t, err)

	var last int64
	for i := 0; i < 10000; i++ {
		id, err := a.NextID()
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
}

// Many allocations land in one millisecond here; each must bump the
// sequence cleanly rather than trip the monotonic guard.
func TestNextIDBurstWithinMillisecond(t *testing.T) {
	a, err := NewIDAlloc(CurrentEpoch)
	require.NoError(t, err)

	first, err := a.NextID()
	require.NoError(t, err)
	last := first
	for i := 0; i < 2000; i++ {
		id, err := a.NextID()
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
	// the whole burst stays within the epoch's timestamp field
	require.Less(t, uint64(last)>>idTimeShift, idTimeMax)
}

// An epoch whose 39 bit millisecond window does not contain the present
// cannot represent any timestamp the allocator would mint.
func TestNewIDAllocRejectsForeignEpoch(t *testing.T) {
	// epoch 0 started 1970, the present overflows its field
	_, err := NewIDAlloc(0)
	require.ErrorIs(t, err, ErrIDClock)

	// a far future epoch has not started yet
	_, err = NewIDAlloc(10)
	require.ErrorIs(t, err, ErrIDClock)
}

func TestNextIDUniqueAcrossGoroutines(t *testing.T) {
	a, err := NewIDAlloc(CurrentEpoch)
	require.NoError(t, err)

	const workers = 8
	const perWorker = 5000

	var wg sync.WaitGroup
	results := make([][]int64, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]int64, 0, perWorker)
			for len(ids) < perWorker {
				id, err := a.NextID()
				if err != nil {
					// overloaded, back off and retry
					time.Sleep(time.Millisecond)
					continue
				}
				ids = append(ids, id)
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[int64]bool, workers*perWorker)
	for w := 0; w < workers; w++ {
		var last int64
		for _, id := range results[w] {
			// monotonic per goroutine, unique globally
			require.Greater(t, id, last)
			last = id
			require.False(t, seen[id], "duplicate id %016x", id)
			seen[id] = true
		}
	}
}

func TestIDTime(t *testing.T) {
	const epoch = CurrentEpoch
	a, err := NewIDAlloc(epoch)
	require.NoError(t, err)

	before := time.Now().Truncate(time.Millisecond)
	id, err := a.NextID()
	require.NoError(t, err)
	after := time.Now()

	at := IDTime(id, epoch)
	assert.False(t, at.Before(before), "id time %v before %v", at, before)
	assert.False(t, at.After(after.Add(time.Millisecond)), "id time %v after %v", at, after)
}

func TestEpochTimeUTC(t *testing.T) {
	assert.Equal(t, time.UnixMilli(0).UTC(), EpochTimeUTC(0))
	assert.True(t, EpochTimeUTC(2).After(EpochTimeUTC(1)))
}
