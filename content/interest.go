package content

import (
	"github.com/WeiqiJust/RepoSync/names"
)

// Child selector values. Any value <= 0 selects the leftmost eligible
// descendant; any positive value selects the rightmost.
const (
	SelectLeftmost  = 0
	SelectRightmost = 1
)

// Interest is a query for the best matching stored item: a name prefix
// plus selector constraints. All selector fields are read-only to the
// index.
type Interest struct {
	Name names.Name

	// MinSuffixComponents / MaxSuffixComponents bound the number of name
	// components a matching item may have beyond the interest name. -1
	// leaves the bound open.
	MinSuffixComponents int
	MaxSuffixComponents int

	// Exclude restricts the single component immediately following the
	// interest name in a matching item's name.
	Exclude *Exclude

	ChildSelector int

	// PublisherKeyLocator, when set, requires a matching item to carry a
	// key locator with an equal digest token.
	PublisherKeyLocator *KeyLocator
}

// NewInterest returns an interest for name with every selector open:
// unbounded suffix lengths, no exclusions, leftmost disambiguation and no
// publisher constraint.
func NewInterest(name names.Name) *Interest {
	return &Interest{
		Name:                name,
		MinSuffixComponents: -1,
		MaxSuffixComponents: -1,
		ChildSelector:       SelectLeftmost,
	}
}
