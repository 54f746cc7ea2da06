package names

import "bytes"

// Component is a single opaque binary name component.
type Component []byte

// Name is an ordered sequence of opaque binary components. The zero value
// is the empty (root) name.
type Name []Component

// CompareComponents orders two components canonically: shorter components
// sort before longer ones, components of equal length compare by bytes.
func CompareComponents(a, b Component) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}

// Compare orders two names canonically, component-wise. A strict prefix
// sorts before any of its descendants.
func Compare(a, b Name) int {
	n := min(len(a), len(b))
	for i := range n {
		if c := CompareComponents(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b have identical components.
func (a Name) Equal(b Name) bool {
	return Compare(a, b) == 0
}

// IsPrefixOf reports whether every component of a matches the leading
// components of b. The empty name is a prefix of every name, and every
// name is a prefix of itself.
func (a Name) IsPrefixOf(b Name) bool {
	if len(a) > len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Prefix returns the name truncated to at most n leading components. The
// returned name aliases the receiver's storage.
func (a Name) Prefix(n int) Name {
	if n < 0 {
		n = 0
	}
	if n > len(a) {
		n = len(a)
	}
	return a[:n]
}

// Append returns a new name with the given components appended. The
// receiver is not modified.
func (a Name) Append(cs ...Component) Name {
	out := make(Name, 0, len(a)+len(cs))
	out = append(out, a...)
	out = append(out, cs...)
	return out
}

// Clone returns a deep copy of the name, sharing no storage with the
// receiver.
func (a Name) Clone() Name {
	out := make(Name, len(a))
	for i, c := range a {
		out[i] = bytes.Clone(c)
	}
	return out
}

// Successor returns the least name greater than every descendant of a.
// The final component is incremented as a big-endian integer; on full
// carry the component grows by one zero-filled byte, which keeps it
// minimal under the length-first component order.
//
// The empty name has no successor and returns nil; callers performing
// range scans over the root name must treat the container end as the
// upper bound instead.
func (a Name) Successor() Name {
	if len(a) == 0 {
		return nil
	}
	last := bytes.Clone(a[len(a)-1])
	for i := len(last) - 1; i >= 0; i-- {
		last[i]++
		if last[i] != 0 {
			return a[:len(a)-1].Append(last)
		}
	}
	// Full carry: every byte wrapped to zero, extend by one byte. The
	// smallest component longer than len(last) is all zeros.
	return a[:len(a)-1].Append(make(Component, len(last)+1))
}
