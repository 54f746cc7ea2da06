package store

import (
	"context"
	"errors"
)

var (
	// ErrPayloadNotFound is returned by Read and Delete when no payload
	// is held under the presented id.
	ErrPayloadNotFound = errors.New("store: no payload with that id")
)

// Storage is the payload storage engine. Ids are opaque to callers:
// they are minted by Insert and are only good for Read and Delete
// against the same store.
//
// Implementations are safe for concurrent use.
type Storage interface {
	// Insert stores the payload and returns the id it was stored under.
	Insert(ctx context.Context, data []byte) (int64, error)

	// Read returns the payload stored under id, ErrPayloadNotFound if
	// there is none.
	Read(ctx context.Context, id int64) ([]byte, error)

	// Delete removes the payload stored under id, ErrPayloadNotFound if
	// there is none.
	Delete(ctx context.Context, id int64) error

	// Len reports the number of payloads currently held.
	Len(ctx context.Context) (int64, error)
}
