package bloom

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestOf(s string) []byte {
	d := sha256.Sum256([]byte(s))
	return d[:]
}

func TestNewRejectsBadParams(t *testing.T) {
	for _, tc := range []struct {
		name     string
		elements uint64
		bpe      uint64
		k        uint8
	}{
		{"zero elements", 0, 10, 7},
		{"zero bpe", 100, 0, 7},
		{"bpe too large", 100, MaxBitsPerElement + 1, 7},
		{"zero k", 100, 10, 0},
		{"mbits overflow", 1 << 40, 64, 7},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.elements, tc.bpe, tc.k)
			require.ErrorIs(t, err, ErrBadParams)
		})
	}
}

func TestNoFalseNegatives(t *testing.T) {
	f, err := New(1000, 10, 7)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		require.NoError(t, f.Add(digestOf(fmt.Sprintf("elem-%d", i))))
	}
	assert.Equal(t, uint64(1000), f.NInserted())

	for i := 0; i < 1000; i++ {
		ok, err := f.MaybeContains(digestOf(fmt.Sprintf("elem-%d", i)))
		require.NoError(t, err)
		require.True(t, ok, "inserted element %d reported absent", i)
	}
}

func TestFalsePositiveRate(t *testing.T) {
	f, err := New(1000, 10, 7)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.NoError(t, f.Add(digestOf(fmt.Sprintf("elem-%d", i))))
	}

	// 10 bits per element with k=7 should sit near 1%, allow generous
	// headroom for hash variance
	positives := 0
	const probes = 10000
	for i := 0; i < probes; i++ {
		ok, err := f.MaybeContains(digestOf(fmt.Sprintf("absent-%d", i)))
		require.NoError(t, err)
		if ok {
			positives++
		}
	}
	assert.Less(t, positives, probes/20, "false positive rate above 5%%")
}

func TestElemSizeChecked(t *testing.T) {
	f, err := New(10, 10, 7)
	require.NoError(t, err)
	require.ErrorIs(t, f.Add([]byte("short")), ErrBadElemSize)
	_, err = f.MaybeContains([]byte("short"))
	require.ErrorIs(t, err, ErrBadElemSize)
}
