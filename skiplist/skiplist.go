package skiplist

import (
	"math/rand/v2"
)

const (
	// maxLevel bounds tower height. 2^32 elements at p=1/4 want ~16
	// levels; 24 leaves generous headroom without bloating the head.
	maxLevel = 24
)

type config struct {
	seed   uint64
	seeded bool
}

// Option configures a List at construction time.
type Option func(*config)

// WithSeed pins the level generator so the tower shape is reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

type node[T any] struct {
	value T
	next  []*node[T]
	// prev is the base level back link. nil marks the first element.
	prev *node[T]
}

// List is an ordered container over T. Elements are unique under cmp.
type List[T any] struct {
	cmp    func(a, b T) int
	head   []*node[T]
	last   *node[T]
	level  int
	length int
	rng    *rand.Rand
}

// New returns an empty list ordered by cmp.
func New[T any](cmp func(a, b T) int, opts ...Option) *List[T] {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	var src rand.Source
	if cfg.seeded {
		src = rand.NewPCG(cfg.seed, cfg.seed^0x9E3779B97F4A7C15)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &List[T]{
		cmp:   cmp,
		head:  make([]*node[T], maxLevel),
		level: 1,
		rng:   rand.New(src),
	}
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.length }

func (l *List[T]) randomLevel() int {
	level := 1
	for level < maxLevel && l.rng.Uint64()&3 == 0 {
		level++
	}
	return level
}

// findPredecessors fills update with, per level, the last node whose value
// sorts strictly before v (nil where the head pointer applies), and
// returns the base level candidate at or after v.
func (l *List[T]) findPredecessors(v T, update []*node[T]) *node[T] {
	var pred *node[T]
	for i := l.level - 1; i >= 0; i-- {
		next := l.head[i]
		if pred != nil {
			next = pred.next[i]
		}
		for next != nil && l.cmp(next.value, v) < 0 {
			pred = next
			next = pred.next[i]
		}
		update[i] = pred
	}
	if pred == nil {
		return l.head[0]
	}
	return pred.next[0]
}

// Insert places v in its slot. It returns false, without modifying the
// list, if an element equal to v already occupies the slot.
func (l *List[T]) Insert(v T) bool {
	update := make([]*node[T], maxLevel)
	at := l.findPredecessors(v, update)
	if at != nil && l.cmp(at.value, v) == 0 {
		return false
	}

	level := l.randomLevel()
	if level > l.level {
		for i := l.level; i < level; i++ {
			update[i] = nil
		}
		l.level = level
	}

	n := &node[T]{value: v, next: make([]*node[T], level)}
	for i := range level {
		if update[i] == nil {
			n.next[i] = l.head[i]
			l.head[i] = n
		} else {
			n.next[i] = update[i].next[i]
			update[i].next[i] = n
		}
	}

	n.prev = update[0]
	if n.next[0] != nil {
		n.next[0].prev = n
	} else {
		l.last = n
	}
	l.length++
	return true
}

// Find returns an iterator at the element equal to v, or nil.
func (l *List[T]) Find(v T) *Iterator[T] {
	it := l.LowerBound(v)
	if it == nil || l.cmp(it.n.value, v) != 0 {
		return nil
	}
	return it
}

// LowerBound returns an iterator at the first element >= v, or nil when
// every element sorts before v.
func (l *List[T]) LowerBound(v T) *Iterator[T] {
	var pred *node[T]
	for i := l.level - 1; i >= 0; i-- {
		next := l.head[i]
		if pred != nil {
			next = pred.next[i]
		}
		for next != nil && l.cmp(next.value, v) < 0 {
			pred = next
			next = pred.next[i]
		}
	}
	at := l.head[0]
	if pred != nil {
		at = pred.next[0]
	}
	if at == nil {
		return nil
	}
	return &Iterator[T]{list: l, n: at}
}

// Erase unlinks the element the iterator is positioned at and returns an
// iterator at its successor, or nil when the erased element was the last.
// The iterator must have been obtained from this list and not already
// erased.
func (l *List[T]) Erase(it *Iterator[T]) *Iterator[T] {
	update := make([]*node[T], maxLevel)
	at := l.findPredecessors(it.n.value, update)
	if at != it.n {
		// value moved or was never here; nothing sane to unlink
		return nil
	}
	for i := range len(at.next) {
		if update[i] == nil {
			l.head[i] = at.next[i]
		} else {
			update[i].next[i] = at.next[i]
		}
	}
	if at.next[0] != nil {
		at.next[0].prev = at.prev
	} else {
		l.last = at.prev
	}
	for l.level > 1 && l.head[l.level-1] == nil {
		l.level--
	}
	l.length--
	if at.next[0] == nil {
		return nil
	}
	return &Iterator[T]{list: l, n: at.next[0]}
}

// First returns an iterator at the least element, or nil when empty.
func (l *List[T]) First() *Iterator[T] {
	if l.head[0] == nil {
		return nil
	}
	return &Iterator[T]{list: l, n: l.head[0]}
}

// Last returns an iterator at the greatest element, or nil when empty.
func (l *List[T]) Last() *Iterator[T] {
	if l.last == nil {
		return nil
	}
	return &Iterator[T]{list: l, n: l.last}
}
