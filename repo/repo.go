package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/WeiqiJust/RepoSync/bloom"
	"github.com/WeiqiJust/RepoSync/content"
	"github.com/WeiqiJust/RepoSync/index"
	"github.com/WeiqiJust/RepoSync/names"
	"github.com/WeiqiJust/RepoSync/store"
)

var (
	// ErrNotFound is returned by Retrieve and RetrieveName when no
	// stored item satisfies the request.
	ErrNotFound = errors.New("repo: no stored item satisfies the request")
)

type RepoConfig struct {
	// MaxEntries caps the index, tombstones included. Fixed for the
	// repository's lifetime.
	MaxEntries int
}

// Repo is the repository controller. It is safe for concurrent use;
// index access is serialized internally.
type Repo struct {
	log     logger.Logger
	codec   dtcbor.CBORCodec
	storage store.Storage

	mu    sync.Mutex
	index *index.Index

	// seen filters exact full name probes: every stored item's digest
	// component is added, a definite miss skips the index. Deleted items
	// stay "maybe", the index gives the true answer.
	seen *bloom.Filter

	// payload ids soft deleted from the index, awaiting Compact
	pending []int64
}

func NewRepo(cfg RepoConfig, log logger.Logger, storage store.Storage) (*Repo, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts())
	if err != nil {
		return nil, err
	}
	var seen *bloom.Filter
	if cfg.MaxEntries > 0 {
		if seen, err = bloom.New(uint64(cfg.MaxEntries), 10, 7); err != nil {
			return nil, err
		}
	}
	return &Repo{
		log:     log,
		codec:   codec,
		storage: storage,
		index:   index.New(cfg.MaxEntries, index.WithLogger(log)),
		seen:    seen,
	}, nil
}

// Store persists the item and indexes it under its full name. It
// returns false with a nil error when an item with the same full name
// is already stored. On any index rejection the freshly stored payload
// is deleted again, so the store never accumulates unindexed payloads.
func (r *Repo) Store(ctx context.Context, d *content.Data) (bool, error) {
	envelope, err := r.codec.MarshalCBOR(d)
	if err != nil {
		return false, err
	}

	fullName, err := d.FullName()
	if err != nil {
		return false, err
	}

	id, err := r.storage.Insert(ctx, envelope)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	ok, err := r.index.Insert(d, id)
	if ok && err == nil && r.seen != nil {
		// the trailing full name component is the item digest
		if aerr := r.seen.Add(fullName[len(fullName)-1]); aerr != nil && r.log != nil {
			r.log.Infof("repo: digest filter add failed for %s: %v", fullName, aerr)
		}
	}
	r.mu.Unlock()

	if err != nil || !ok {
		if derr := r.storage.Delete(ctx, id); derr != nil && r.log != nil {
			r.log.Infof("repo: orphaned payload %016x not deleted: %v", id, derr)
		}
	}
	return ok, err
}

// Retrieve resolves the query through the index and returns the stored
// item, ErrNotFound when nothing satisfies it.
func (r *Repo) Retrieve(ctx context.Context, q *content.Interest) (*content.Data, error) {
	r.mu.Lock()
	id, name := r.index.Find(q)
	r.mu.Unlock()
	if id == 0 {
		return nil, fmt.Errorf("%s: %w", q.Name, ErrNotFound)
	}
	return r.readItem(ctx, id, name)
}

// RetrieveName returns the item stored under the first live entry with
// n as a prefix, ErrNotFound when there is none.
func (r *Repo) RetrieveName(ctx context.Context, n names.Name) (*content.Data, error) {
	r.mu.Lock()
	id, name := r.index.FindName(n)
	r.mu.Unlock()
	if id == 0 {
		return nil, fmt.Errorf("%s: %w", n, ErrNotFound)
	}
	return r.readItem(ctx, id, name)
}

func (r *Repo) readItem(ctx context.Context, id int64, name names.Name) (*content.Data, error) {
	envelope, err := r.storage.Read(ctx, id)
	if err != nil {
		// the index said it was there, so this is a real fault, not
		// ErrNotFound
		return nil, fmt.Errorf("payload %016x for %s: %v", id, name, err)
	}
	d := &content.Data{}
	if err = r.codec.UnmarshalInto(envelope, d); err != nil {
		return nil, fmt.Errorf("payload %016x for %s: %v", id, name, err)
	}
	return d, nil
}

// Delete soft deletes the entry with exactly full name n. The payload
// is retained, and keeps its id queued, until Compact runs. It returns
// false when no live entry has that exact name.
func (r *Repo) Delete(n names.Name) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, got := r.index.FindName(n)
	if id == 0 || !got.Equal(n) {
		return false
	}
	if !r.index.Erase(n) {
		return false
	}
	r.pending = append(r.pending, id)
	return true
}

// Compact deletes every queued payload from storage and then prunes
// the index tombstones, releasing their capacity slots. Payload ids
// whose delete fails stay queued for the next attempt; the index is
// only pruned once every queued payload is gone.
func (r *Repo) Compact(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	var failed []int64
	for _, id := range r.pending {
		err := r.storage.Delete(ctx, id)
		if err != nil && !errors.Is(err, store.ErrPayloadNotFound) {
			failed = append(failed, id)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	r.pending = failed
	if firstErr != nil {
		return fmt.Errorf("%d payload deletes failed: %w", len(failed), firstErr)
	}
	r.index.Prune()
	if r.log != nil {
		r.log.Debugf("repo: compacted, size=%d", r.index.Size())
	}
	return nil
}

// Has reports whether the item, under its exact full name, is stored
// and not deleted.
func (r *Repo) Has(d *content.Data) bool {
	fullName, err := d.FullName()
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen != nil {
		if maybe, err := r.seen.MaybeContains(fullName[len(fullName)-1]); err == nil && !maybe {
			return false
		}
	}
	return r.index.HasData(d)
}

// Status returns the index status of the first entry with n as a
// prefix.
func (r *Repo) Status(n names.Name) index.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.GetStatus(n)
}

// Size returns the count of live stored items.
func (r *Repo) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.Size()
}
