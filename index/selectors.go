package index

import (
	"bytes"

	"github.com/WeiqiJust/RepoSync/content"
	"github.com/WeiqiJust/RepoSync/names"
	"github.com/WeiqiJust/RepoSync/skiplist"
)

// matchesSimpleSelectors determines whether an entry can satisfy the
// interest, disambiguation aside. pubHash is the digest of the
// interest's publisher key locator when one is present, ignored
// otherwise.
func matchesSimpleSelectors(q *content.Interest, pubHash []byte, e *Entry) bool {
	if e.status == StatusDeleted {
		return false
	}
	if !q.Name.IsPrefixOf(e.name) {
		return false
	}

	nSuffix := len(e.name) - len(q.Name)
	if q.MinSuffixComponents >= 0 && nSuffix < q.MinSuffixComponents {
		return false
	}
	if q.MaxSuffixComponents >= 0 && nSuffix > q.MaxSuffixComponents {
		return false
	}

	// the exclude filter constrains only the component immediately after
	// the interest name
	if !q.Exclude.Empty() && len(e.name) > len(q.Name) &&
		q.Exclude.IsExcluded(e.name[len(q.Name)]) {
		return false
	}

	if q.PublisherKeyLocator != nil {
		if !bytes.Equal(e.keyLocatorHash, pubHash) {
			return false
		}
	}
	return true
}

// Find resolves an interest to the best matching stored item, returning
// its opaque payload id and full name. Not found is (0, nil).
func (x *Index) Find(q *content.Interest) (int64, names.Name) {
	var pubHash []byte
	if q.PublisherKeyLocator != nil {
		var err error
		if pubHash, err = content.KeyLocatorDigest(q.PublisherKeyLocator); err != nil {
			if x.log != nil {
				x.log.Debugf("index: undigestable publisher key locator: %v", err)
			}
			return 0, nil
		}
	}

	start := x.entries.LowerBound(probeEntry(q.Name))
	if start == nil {
		return 0, nil
	}
	return x.selectChild(q, start, pubHash)
}

// selectChild picks among the descendants of the interest name according
// to the child selector.
func (x *Index) selectChild(q *content.Interest, startingPoint *skiplist.Iterator[*Entry], pubHash []byte) (int64, names.Name) {
	if q.ChildSelector <= 0 {
		return x.selectLeftmost(q, startingPoint, pubHash)
	}
	return x.selectRightmost(q, pubHash)
}

// selectLeftmost scans forward from the range start in canonical order,
// skipping tombstones, and returns the first satisfying entry. The scan
// stops the moment it reaches an entry outside the interest's subtree.
func (x *Index) selectLeftmost(q *content.Interest, startingPoint *skiplist.Iterator[*Entry], pubHash []byte) (int64, names.Name) {
	for it := startingPoint; it != nil; it = it.Next() {
		e := it.Value()
		if e.status == StatusDeleted {
			continue
		}
		if !q.Name.IsPrefixOf(e.name) {
			return 0, nil
		}
		if matchesSimpleSelectors(q, pubHash, e) {
			return e.id, e.name
		}
	}
	return 0, nil
}

// selectRightmost returns the lexicographically greatest satisfying
// descendant without a full reverse scan.
//
// The descendant range is bounded on the right by the interest name's
// successor (for the root name, by the container end). The window is then
// repeatedly shrunk from the right: locate the start of the last
// immediate-child subtree by truncating the window's final name to one
// component past the interest name, scan that single subtree for its last
// satisfying entry, and either return it (subtrees are visited in
// decreasing order, so it is the overall rightmost) or exclude the
// subtree and continue. The window start strictly decreases each round,
// so the search terminates when the window runs out of descendants.
func (x *Index) selectRightmost(q *content.Interest, pubHash []byte) (int64, names.Name) {
	// give up early unless at least one live descendant exists
	boundary := x.entries.LowerBound(probeEntry(q.Name))
	for boundary != nil && boundary.Value().status == StatusDeleted {
		boundary = boundary.Next()
	}
	if boundary == nil || !q.Name.IsPrefixOf(boundary.Value().name) {
		return 0, nil
	}

	// nil bounds the window at the container end
	var last *skiplist.Iterator[*Entry]
	if len(q.Name) > 0 {
		last = x.entries.LowerBound(probeEntry(q.Name.Successor()))
	}

	for {
		prev := x.entryBefore(last)
		if prev == nil {
			return 0, nil
		}
		pe := prev.Value()
		if !q.Name.IsPrefixOf(pe.name) {
			// the window holds no descendants any more
			return 0, nil
		}

		childPrefix := pe.name.Prefix(len(q.Name) + 1)
		first := x.entries.LowerBound(probeEntry(childPrefix))

		var match *Entry
		for it := first; it != nil && !it.At(last); it = it.Next() {
			e := it.Value()
			if e.status == StatusDeleted {
				continue
			}
			if matchesSimpleSelectors(q, pubHash, e) {
				match = e
			}
		}
		if match != nil {
			return match.id, match.name
		}

		// first <= prev < last, so the window strictly shrinks
		last = first
	}
}

// entryBefore returns the last entry strictly before the bound, where a
// nil bound means the container end.
func (x *Index) entryBefore(bound *skiplist.Iterator[*Entry]) *skiplist.Iterator[*Entry] {
	if bound == nil {
		return x.entries.Last()
	}
	return bound.Prev()
}
