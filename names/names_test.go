package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareComponentOrderIsLengthFirst(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"equal roots", "/", "/", 0},
		{"root before any", "/", "/a", -1},
		{"prefix before descendant", "/a", "/a/b", -1},
		{"byte order within equal length", "/a/1", "/a/2", -1},
		{"shorter component first", "/b", "/aX", -1},
		{"deep vs sibling", "/a/b/x", "/a/c", -1},
		{"equal deep", "/a/b/c", "/a/b/c", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParseName(tt.a)
			b := MustParseName(tt.b)
			assert.Equal(t, tt.want, Compare(a, b))
			assert.Equal(t, -tt.want, Compare(b, a))
		})
	}
}

func TestIsPrefixOf(t *testing.T) {
	root := Name{}
	a := MustParseName("/a")
	ab := MustParseName("/a/b")
	ax := MustParseName("/aX")

	assert.True(t, root.IsPrefixOf(a))
	assert.True(t, a.IsPrefixOf(a))
	assert.True(t, a.IsPrefixOf(ab))
	assert.False(t, ab.IsPrefixOf(a))
	assert.False(t, a.IsPrefixOf(ax))
}

func TestPrefixClamps(t *testing.T) {
	abc := MustParseName("/a/b/c")
	assert.True(t, abc.Prefix(2).Equal(MustParseName("/a/b")))
	assert.True(t, abc.Prefix(0).Equal(Name{}))
	assert.True(t, abc.Prefix(9).Equal(abc))
	assert.True(t, abc.Prefix(-1).Equal(Name{}))
}

// The successor must be the least name greater than every descendant, so
// that [n, n.Successor()) is exactly n plus its descendants.
func TestSuccessorBoundsDescendants(t *testing.T) {
	ab := MustParseName("/a/b")
	succ := ab.Successor()
	require.True(t, succ.Equal(MustParseName("/a/c")))

	// every descendant sorts strictly below the successor
	for _, d := range []string{"/a/b/x", "/a/b/%FF", "/a/b/z/z/z"} {
		assert.Negative(t, Compare(MustParseName(d), succ), d)
	}
	assert.Negative(t, Compare(ab, succ))
}

func TestSuccessorFullCarryExtends(t *testing.T) {
	n := MustParseName("/a/%FF%FF")
	succ := n.Successor()
	require.True(t, succ.Equal(MustParseName("/a/%00%00%00")))
	// the extended component is still minimal under length first order
	assert.Negative(t, Compare(n, succ))
}

func TestSuccessorEmptyComponent(t *testing.T) {
	n := Name{Component{}}
	succ := n.Successor()
	require.Len(t, succ, 1)
	assert.Equal(t, Component{0}, succ[0])
}

func TestSuccessorRootHasNone(t *testing.T) {
	assert.Nil(t, Name{}.Successor())
}

func TestAppendDoesNotAliasReceiver(t *testing.T) {
	a := MustParseName("/a")
	ab := a.Append(Component("b"))
	ac := a.Append(Component("c"))
	assert.True(t, ab.Equal(MustParseName("/a/b")))
	assert.True(t, ac.Equal(MustParseName("/a/c")))
	assert.True(t, a.Equal(MustParseName("/a")))
}
