package store

import (
	"context"
	"fmt"
	"io"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/datatrails/go-datatrails-common/azblob"
)

const (
	// V1PayloadPrefix is the blob path prefix for stored payloads. Blob
	// listing is prefix based, so payloads get a prefix of their own.
	V1PayloadPrefix = "v1/payloads/"

	azblobBlobNotFound = "BlobNotFound"
)

// payloadBlobStore is the narrow view of the datatrails azblob Storer
// the payload store needs.
type payloadBlobStore interface {
	Put(
		ctx context.Context, identity string, source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)
	Reader(
		ctx context.Context, identity string, opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)
	Delete(ctx context.Context, identity string) error
	List(ctx context.Context, opts ...azblob.Option) (*azblob.ListerResponse, error)
}

// AzureStorage keeps payloads in azure block blobs, one blob per id.
// The blob path is derived from the id alone, so Read and Delete are
// single round trips.
type AzureStorage struct {
	store payloadBlobStore
	ids   *IDAlloc
}

// NewAzureStorage returns a payload store writing under
// V1PayloadPrefix in the given blob store.
func NewAzureStorage(store payloadBlobStore, epoch uint8) (*AzureStorage, error) {
	ids, err := NewIDAlloc(epoch)
	if err != nil {
		return nil, err
	}
	return &AzureStorage{store: store, ids: ids}, nil
}

// PayloadBlobPath returns the blob path payloads for id are stored
// under.
func PayloadBlobPath(id int64) string {
	return fmt.Sprintf("%s%016x.bin", V1PayloadPrefix, uint64(id))
}

func (s *AzureStorage) Insert(ctx context.Context, data []byte) (int64, error) {
	id, err := s.ids.NextID()
	if err != nil {
		return 0, err
	}
	// Ids are never re-issued, so a pre-existing blob at this path means
	// something is very wrong. The way to spell 'fail if the blob
	// exists' is to require that no blob matches *any* etag.
	_, err = s.store.Put(
		ctx, PayloadBlobPath(id), azblob.NewBytesReaderCloser(data),
		azblob.WithEtagNoneMatch("*"))
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *AzureStorage) Read(ctx context.Context, id int64) ([]byte, error) {
	rr, err := s.store.Reader(ctx, PayloadBlobPath(id))
	if err != nil {
		return nil, wrapPayloadNotFound(id, err)
	}
	defer rr.Reader.Close()
	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *AzureStorage) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, PayloadBlobPath(id)); err != nil {
		return wrapPayloadNotFound(id, err)
	}
	return nil
}

func (s *AzureStorage) Len(ctx context.Context) (int64, error) {
	var n int64
	var marker azblob.ListMarker
	for {
		r, err := s.store.List(
			ctx, azblob.WithListPrefix(V1PayloadPrefix), azblob.WithListMarker(marker))
		if err != nil {
			return 0, err
		}
		n += int64(len(r.Items))
		if len(r.Items) == 0 || r.Marker == nil {
			return n, nil
		}
		marker = r.Marker
	}
}

func asStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// wrapPayloadNotFound translates the azure sdk blob not found error to
// ErrPayloadNotFound. Any other error, nil included, is returned as is.
func wrapPayloadNotFound(id int64, err error) error {
	serr, ok := asStorageError(err)
	if !ok {
		return err
	}
	if serr.ErrorCode != azblobBlobNotFound {
		return err
	}
	return fmt.Errorf("%016x: %w", id, ErrPayloadNotFound)
}
