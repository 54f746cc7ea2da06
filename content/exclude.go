package content

import (
	"github.com/WeiqiJust/RepoSync/names"
)

type excludeItem struct {
	from    names.Component
	to      names.Component
	isRange bool
}

// Exclude is a predicate over a single name component: a set of discrete
// components and closed component ranges. The zero value and the nil
// pointer both exclude nothing.
type Exclude struct {
	items []excludeItem
}

// ExcludeComponents builds an exclude over the given discrete components.
func ExcludeComponents(cs ...names.Component) *Exclude {
	e := &Exclude{}
	for _, c := range cs {
		e.AddComponent(c)
	}
	return e
}

// AddComponent excludes exactly c.
func (e *Exclude) AddComponent(c names.Component) *Exclude {
	e.items = append(e.items, excludeItem{from: c})
	return e
}

// AddRange excludes every component in the closed canonical-order
// interval [from, to].
func (e *Exclude) AddRange(from, to names.Component) *Exclude {
	e.items = append(e.items, excludeItem{from: from, to: to, isRange: true})
	return e
}

// Empty reports whether the filter excludes nothing.
func (e *Exclude) Empty() bool {
	return e == nil || len(e.items) == 0
}

// IsExcluded reports whether c is matched by the filter.
func (e *Exclude) IsExcluded(c names.Component) bool {
	if e == nil {
		return false
	}
	for _, it := range e.items {
		if !it.isRange {
			if names.CompareComponents(it.from, c) == 0 {
				return true
			}
			continue
		}
		if names.CompareComponents(it.from, c) <= 0 &&
			names.CompareComponents(c, it.to) <= 0 {
			return true
		}
	}
	return false
}
