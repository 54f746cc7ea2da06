package store

import (
	"context"
	"os"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEmulatorStorage connects to the azurite blob store emulator. The
// test is skipped when the emulator is not configured in the
// environment.
func newEmulatorStorage(t *testing.T) *AzureStorage {
	t.Helper()
	if os.Getenv("AZURITE_BLOB_STORAGE_URL") == "" {
		t.Skip("azurite emulator not configured, set AZURITE_BLOB_STORAGE_URL to enable")
	}
	storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), "payloadstoretest")
	require.NoError(t, err)
	// we expect, and ignore, an 'already exists' error here
	_, _ = storer.GetServiceClient().CreateContainer(context.Background(), "payloadstoretest", nil)

	s, err := NewAzureStorage(storer, CurrentEpoch)
	require.NoError(t, err)
	return s
}

func TestAzureStorageRoundTrip(t *testing.T) {
	s := newEmulatorStorage(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, []byte("blob payload"))
	require.NoError(t, err)

	got, err := s.Read(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob payload"), got)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Read(ctx, id)
	require.ErrorIs(t, err, ErrPayloadNotFound)
	require.ErrorIs(t, s.Delete(ctx, id), ErrPayloadNotFound)
}

func TestPayloadBlobPath(t *testing.T) {
	assert.Equal(t, "v1/payloads/00000000000000ff.bin", PayloadBlobPath(255))
}
