package index

import (
	"github.com/WeiqiJust/RepoSync/content"
	"github.com/WeiqiJust/RepoSync/names"
)

// Status is the lifecycle state of an index entry.
type Status uint8

const (
	// StatusNone is the "no such entry" sentinel. It is never stored.
	StatusNone Status = iota
	StatusExisted
	StatusInserted
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "NONE"
	case StatusExisted:
		return "EXISTED"
	case StatusInserted:
		return "INSERTED"
	case StatusDeleted:
		return "DELETED"
	}
	return "UNKNOWN"
}

// NoID marks an entry carrying no storage reference, for example a probe.
const NoID int64 = -1

// Entry is a single indexed item: an immutable identity (full name, key
// locator hash, opaque storage id) plus a mutable lifecycle status. Only
// the status ever changes after construction.
type Entry struct {
	name           names.Name
	id             int64
	keyLocatorHash []byte
	status         Status
}

// NewEntryFromData builds an entry for a full content item. The entry is
// keyed by the item's full name and, when the item carries a key locator,
// records its digest token.
func NewEntryFromData(d *content.Data, id int64) (*Entry, error) {
	fullName, err := d.FullName()
	if err != nil {
		return nil, err
	}
	e := &Entry{name: fullName, id: id, status: StatusExisted}
	if d.KeyLocator != nil {
		if e.keyLocatorHash, err = content.KeyLocatorDigest(d.KeyLocator); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// NewEntry builds an entry from a full name and a key locator value whose
// digest is computed here.
func NewEntry(fullName names.Name, keyLocator *content.KeyLocator, id int64) (*Entry, error) {
	hash, err := content.KeyLocatorDigest(keyLocator)
	if err != nil {
		return nil, err
	}
	return &Entry{name: fullName, id: id, keyLocatorHash: hash, status: StatusExisted}, nil
}

// NewEntryWithHash builds an entry from a full name and an already
// computed key locator hash, which may be nil.
func NewEntryWithHash(fullName names.Name, keyLocatorHash []byte, id int64) *Entry {
	return &Entry{name: fullName, id: id, keyLocatorHash: keyLocatorHash, status: StatusExisted}
}

// probeEntry keys an exact lookup or erase by bare name; it carries no
// hash and no storage reference.
func probeEntry(n names.Name) *Entry {
	return &Entry{name: n, id: NoID, status: StatusExisted}
}

// Name returns the entry's full name.
func (e *Entry) Name() names.Name { return e.name }

// ID returns the opaque storage reference, NoID when absent. The index
// never dereferences it.
func (e *Entry) ID() int64 { return e.id }

// KeyLocatorHash returns the equality token for the publisher's key
// locator, nil when the item carried none.
func (e *Entry) KeyLocatorHash() []byte { return e.keyLocatorHash }

// Status returns the entry's lifecycle state.
func (e *Entry) Status() Status { return e.status }

func compareEntries(a, b *Entry) int {
	return names.Compare(a.name, b.name)
}
