package nstesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeiqiJust/RepoSync/names"
)

func TestDistinctNamesArePrefixFree(t *testing.T) {
	tc := NewTestContext(t, TestConfig{Seed: 7, TestLabelPrefix: "nstesting"})

	prefix := names.MustParseName("/gen")
	got := tc.DistinctNames(prefix, 3, 200)
	require.Len(t, got, 200)

	for i, a := range got {
		require.True(t, prefix.IsPrefixOf(a))
		for j, b := range got {
			if i == j {
				continue
			}
			assert.False(t, a.IsPrefixOf(b), "%s is a prefix of %s", a, b)
		}
	}
}

func TestSignedItemsCarryLocatorAndEnvelope(t *testing.T) {
	tc := NewTestContext(t, TestConfig{Seed: 7, TestLabelPrefix: "nstesting"})

	items := tc.SignedItems(names.MustParseName("/gen"), 2, 5)
	require.Len(t, items, 5)
	for _, d := range items {
		require.NotNil(t, d.KeyLocator)
		assert.True(t, d.KeyLocator.Name.Equal(tc.PublisherKeyName()))
		assert.NotEmpty(t, d.Signature)
		assert.NotEmpty(t, d.Payload)
	}
}
