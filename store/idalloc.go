package store

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// MaxSpins bounds the CAS retry loop in NextID. When the loop fails
	// this many times *and* the sequence is exhausted, NextID errors
	// rather than risk the uniqueness promise.
	MaxSpins = 100

	// idTimeBits is the millisecond timestamp width. 39 bits spans
	// roughly 17 years per epoch and keeps the full id inside the
	// positive range of an int64. The field cannot represent a moment
	// outside its epoch, so the allocator rejects such configurations
	// outright rather than letting the shift at allocation time wrap.
	idTimeBits  = 39
	idSeqBits   = 24
	idTimeShift = idSeqBits

	idSeqMask uint64 = (1 << idSeqBits) - 1
	idTimeMax uint64 = (1 << idTimeBits) - 1

	// CurrentEpoch is the id epoch containing the present. Epoch 3 runs
	// from 2022 until ~2039, at which point this constant must step to
	// 4. All stores sharing a repository must agree on the epoch.
	CurrentEpoch uint8 = 3
)

var (
	ErrIDOverloaded = errors.New("store: the id allocator is over loaded for its configuration")
	ErrIDSequence   = errors.New("store: consecutive ids violated the monotonic promise")
	ErrIDClock      = errors.New("store: the system time reading makes no realistic sense")

	// The nanosecond unix time overflows an int64 in 2262. Tripping this
	// sentinel means the clock configuration is broken, not that time
	// ran out.
	unixNanoEndSentinel = time.Date(2261, 1, 1, 1, 1, 1, 1, time.UTC)
)

// IDAlloc mints time ordered unique payload ids: a 39 bit millisecond
// timestamp relative to a fixed epoch, over a 24 bit sequence counter.
// A single atomic word carries both, so the whole allocation is one
// read-modify-CAS and the series is strictly increasing for every
// consumer. When more ids are demanded in one millisecond than the
// sequence can carry, the timestamp is forced forward rather than
// letting the sequence overflow.
type IDAlloc struct {
	allowSpins int

	epochStartWallClock time.Time // strips the monotonic reading
	allocStart          time.Time // keeps the monotonic reading
	allocStartOffset    time.Duration

	// monotonic holds timestamp and sequence together. It only ever
	// increases.
	monotonic atomic.Uint64
}

// EpochMS returns the unix millisecond at which the numbered epoch
// starts. Epochs are ~17 years wide; CurrentEpoch names the one
// containing the present.
func EpochMS(epoch uint8) int64 {
	return int64(epoch) * ((1 << idTimeBits) - 1)
}

// EpochTimeUTC returns the epoch start as a wall clock time.
func EpochTimeUTC(epoch uint8) time.Time {
	return time.UnixMilli(EpochMS(epoch)).UTC()
}

// IDTime recovers the millisecond granularity allocation time of id.
func IDTime(id int64, epoch uint8) time.Time {
	ms := uint64(id) >> idTimeShift
	return EpochTimeUTC(epoch).Add(time.Duration(ms) * time.Millisecond)
}

// NewIDAlloc returns an allocator issuing ids relative to the given
// epoch. All stores sharing a repository must agree on the epoch.
func NewIDAlloc(epoch uint8) (*IDAlloc, error) {
	a := &IDAlloc{allowSpins: MaxSpins}

	// Time samples are taken relative to the allocator start so they
	// come from the process monotonic clock; wall clock adjustments
	// during the allocator's life never surface as reversals.
	a.allocStart = time.Now()
	if a.allocStart.After(unixNanoEndSentinel) {
		return nil, fmt.Errorf("clock reading near the int64 nanosecond limit: %w", ErrIDClock)
	}
	a.epochStartWallClock = EpochTimeUTC(epoch)
	a.allocStartOffset = a.allocStart.Sub(a.epochStartWallClock)

	// the epoch window must contain the present or every timestamp
	// would wrap the field
	offsetMS := a.allocStartOffset / time.Millisecond
	if offsetMS < 0 || uint64(offsetMS) > idTimeMax {
		return nil, fmt.Errorf("epoch %d does not contain the present: %w", epoch, ErrIDClock)
	}
	return a, nil
}

// EpochStart returns the wall clock time ids are measured from.
func (a *IDAlloc) EpochStart() time.Time {
	return a.epochStartWallClock
}

func (a *IDAlloc) millisecondMonotonicNow() uint64 {
	// Both samples carry a monotonic reading, so Sub cannot go
	// backwards even across wall clock adjustments.
	epochNow := time.Now().Sub(a.allocStart) + a.allocStartOffset
	return uint64(epochNow / time.Millisecond)
}

// NextID returns the next id in the series. The id is unique and
// greater than every id this allocator has returned before. On
// ErrIDOverloaded the caller should back off briefly, with jitter, and
// retry; the condition only arises under heavy contention.
func (a *IDAlloc) NextID() (int64, error) {
	var next uint64

	for i := 0; i <= a.allowSpins; i++ {
		now := a.millisecondMonotonicNow()
		if now > idTimeMax {
			// the epoch ended during this allocator's lifetime
			return 0, fmt.Errorf("millisecond offset %d exceeds the timestamp field: %w", now, ErrIDClock)
		}
		last := a.monotonic.Load()

		lastTime := last >> idTimeShift
		lastSeq := last & idSeqMask

		switch {
		case now > lastTime:
			// a fresh millisecond, shifting in the new time zeroes the
			// sequence
			next = now << idTimeShift
		case lastSeq == idSeqMask:
			// the sequence is exhausted within this millisecond, force
			// the clock forward. lastTime >= now here, so subsequent
			// callers keep taking this branch or the one below until
			// real time catches up.
			next = (lastTime + 1) << idTimeShift
		default:
			next = last + 1
		}

		if next <= last {
			return 0, fmt.Errorf("%016x then %016x: %w", last, next, ErrIDSequence)
		}
		if a.monotonic.CompareAndSwap(last, next) {
			// our value went back consistently, it is ours alone
			break
		}
		next = 0
	}

	if next == 0 {
		// Every CAS lost. There is nothing safe to hand out without the
		// swap landing, so error and let the caller throttle.
		return 0, ErrIDOverloaded
	}
	return int64(next), nil
}
