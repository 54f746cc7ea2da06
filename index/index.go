package index

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/WeiqiJust/RepoSync/content"
	"github.com/WeiqiJust/RepoSync/names"
	"github.com/WeiqiJust/RepoSync/skiplist"
)

// Options collects the optional construction parameters for an Index.
type Options struct {
	Log logger.Logger

	// ContainerSeed pins the skip list level generator, for reproducible
	// tower shapes in tests.
	ContainerSeed *uint64
}

// Option is a generic option type. Implementations type assert to the
// Options target record and if that fails the expectation is they ignore
// the option.
type Option func(any)

func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Log = log
		}
	}
}

func WithContainerSeed(seed uint64) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.ContainerSeed = &seed
		}
	}
}

// Index is the ordered name index. It is not safe for concurrent use;
// callers requiring that must serialize access externally.
type Index struct {
	log        logger.Logger
	maxEntries int
	size       int
	entries    *skiplist.List[*Entry]
}

// New returns an empty index admitting at most maxEntries live entries.
// The capacity is fixed for the index's lifetime.
func New(maxEntries int, opts ...Option) *Index {
	options := Options{}
	for _, o := range opts {
		o(&options)
	}
	var listOpts []skiplist.Option
	if options.ContainerSeed != nil {
		listOpts = append(listOpts, skiplist.WithSeed(*options.ContainerSeed))
	}
	return &Index{
		log:        options.Log,
		maxEntries: maxEntries,
		entries:    skiplist.New(compareEntries, listOpts...),
	}
}

// Size returns the count of live (non tombstoned) entries.
func (x *Index) Size() int { return x.size }

// MaxSize returns the fixed live entry capacity.
func (x *Index) MaxSize() int { return x.maxEntries }

// isFull gates admission on occupied slots, live and tombstoned alike: a
// soft deleted entry keeps holding its slot against capacity until Prune
// reclaims it, even though Size no longer counts it. Under capacity
// pressure this throttles reinsertion until the caller compacts.
func (x *Index) isFull() bool { return x.entries.Len() >= x.maxEntries }

// Insert indexes a full content item under its full name, recording id as
// the opaque payload reference. It returns false with a nil error when an
// entry with the same name is already live: re-indexing is not an error,
// merely "nothing changed". Inserting over a tombstone resurrects the
// slot with the new id and key locator hash.
//
// ErrCapacityExceeded is returned, before anything else is examined, when
// every slot up to the configured maximum is occupied, tombstones
// included.
func (x *Index) Insert(d *content.Data, id int64) (bool, error) {
	if x.isFull() {
		return false, fmt.Errorf("%w: max %d", ErrCapacityExceeded, x.maxEntries)
	}
	e, err := NewEntryFromData(d, id)
	if err != nil {
		return false, err
	}
	return x.insertEntry(e)
}

// InsertName indexes a full name directly, with an already computed key
// locator hash (which may be nil). Semantics match Insert.
func (x *Index) InsertName(fullName names.Name, id int64, keyLocatorHash []byte) (bool, error) {
	if x.isFull() {
		return false, fmt.Errorf("%w: max %d", ErrCapacityExceeded, x.maxEntries)
	}
	return x.insertEntry(NewEntryWithHash(fullName, keyLocatorHash, id))
}

func (x *Index) insertEntry(e *Entry) (bool, error) {
	if it := x.entries.Find(e); it != nil {
		cur := it.Value()
		if cur.status != StatusDeleted {
			// the slot is live, nothing changed
			return false, nil
		}
		// Resurrect: drop the tombstone and insert the fresh entry under
		// the unchanged name. Order is unaffected.
		x.entries.Erase(it)
		e.status = StatusInserted
		if !x.entries.Insert(e) {
			return false, fmt.Errorf(
				"%w: resurrection reinsert collided for %s", ErrInvariantViolation, e.name)
		}
		x.size++
		if x.log != nil {
			x.log.Debugf("index: resurrected %s id=%d size=%d", e.name, e.id, x.size)
		}
		return true, nil
	}

	if !x.entries.Insert(e) {
		return false, fmt.Errorf(
			"%w: fresh insert collided for %s", ErrInvariantViolation, e.name)
	}
	x.size++
	if x.log != nil {
		x.log.Debugf("index: inserted %s id=%d size=%d", e.name, e.id, x.size)
	}
	return true, nil
}

// FindName resolves a bare name query: the lexicographically first live
// entry whose name has n as a prefix. Not found is (0, nil).
func (x *Index) FindName(n names.Name) (int64, names.Name) {
	it := x.entries.LowerBound(probeEntry(n))
	if it == nil {
		return 0, nil
	}
	return x.findFirstEntry(n, it)
}

// findFirstEntry scans forward from startingPoint, skipping tombstones,
// and returns the first entry under prefix. The scan gives up at the
// first live entry that is not a descendant.
func (x *Index) findFirstEntry(prefix names.Name, startingPoint *skiplist.Iterator[*Entry]) (int64, names.Name) {
	for it := startingPoint; it != nil; it = it.Next() {
		e := it.Value()
		if e.status == StatusDeleted {
			continue
		}
		if prefix.IsPrefixOf(e.name) {
			return e.id, e.name
		}
		return 0, nil
	}
	return 0, nil
}

// GetStatus returns the status of the first entry whose name has n as a
// prefix, StatusNone when there is no such entry. Tombstones are visible:
// a soft deleted name reports StatusDeleted, not StatusNone, so callers
// can tell "never existed" from "deleted but not yet pruned".
func (x *Index) GetStatus(n names.Name) Status {
	it := x.entries.LowerBound(probeEntry(n))
	if it == nil {
		return StatusNone
	}
	if n.IsPrefixOf(it.Value().name) {
		return it.Value().status
	}
	return StatusNone
}

// HasData reports whether an entry with the item's exact full name exists
// and is not tombstoned.
func (x *Index) HasData(d *content.Data) bool {
	fullName, err := d.FullName()
	if err != nil {
		return false
	}
	it := x.entries.Find(probeEntry(fullName))
	return it != nil && it.Value().status != StatusDeleted
}

// Erase soft deletes the entry with exactly name n: the status flips to
// StatusDeleted and the live size drops, but the entry stays physically
// present until Prune. It returns false when no live entry has that exact
// name; erasing an already tombstoned name is "already absent", false.
func (x *Index) Erase(n names.Name) bool {
	it := x.entries.Find(probeEntry(n))
	if it == nil {
		return false
	}
	e := it.Value()
	if e.status == StatusDeleted {
		return false
	}
	// status is not part of the ordering key so the flip is done in place
	e.status = StatusDeleted
	x.size--
	if x.log != nil {
		x.log.Debugf("index: tombstoned %s size=%d", e.name, x.size)
	}
	return true
}

// Prune sweeps the whole container and physically removes every
// tombstoned entry. It is never invoked implicitly; compaction is a
// caller scheduled maintenance operation.
func (x *Index) Prune() {
	removed := 0
	it := x.entries.First()
	for it != nil {
		if it.Value().status == StatusDeleted {
			it = x.entries.Erase(it)
			removed++
			continue
		}
		it = it.Next()
	}
	if x.log != nil && removed > 0 {
		x.log.Debugf("index: pruned %d tombstones", removed)
	}
}

// EnumerateEntries invokes f once per entry, live or tombstoned, in
// ascending canonical order. f must not mutate the index.
func (x *Index) EnumerateEntries(f func(names.Name, Status)) {
	for it := x.entries.First(); it != nil; it = it.Next() {
		e := it.Value()
		f(e.name, e.status)
	}
}
