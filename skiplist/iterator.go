package skiplist

// Iterator is a stable position in a list. Positions obtained before an
// Erase of a *different* element remain valid; the erased position itself
// must not be reused.
type Iterator[T any] struct {
	list *List[T]
	n    *node[T]
}

// Value returns the element at the iterator's position.
func (it *Iterator[T]) Value() T { return it.n.value }

// SetValue replaces the element in place. The replacement must compare
// equal to the old value under the list comparator or the list order is
// silently corrupted.
func (it *Iterator[T]) SetValue(v T) { it.n.value = v }

// Next returns an iterator at the following element, or nil at the end.
func (it *Iterator[T]) Next() *Iterator[T] {
	if it.n.next[0] == nil {
		return nil
	}
	return &Iterator[T]{list: it.list, n: it.n.next[0]}
}

// Prev returns an iterator at the preceding element, or nil at the start.
func (it *Iterator[T]) Prev() *Iterator[T] {
	if it.n.prev == nil {
		return nil
	}
	return &Iterator[T]{list: it.list, n: it.n.prev}
}

// At reports whether two iterators address the same element. A nil
// argument never matches.
func (it *Iterator[T]) At(other *Iterator[T]) bool {
	return other != nil && it.n == other.n
}
