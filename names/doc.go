package names

/*

# Hierarchical name primitives

This package provides the canonical name type used to key the repository
index: an ordered sequence of opaque binary components.

It follows the same "functional primitives" style as the mmr and urkle
packages:

- small, composable functions
- explicit ordering rules
- a burden of knowledge on the caller for hot paths

## Canonical order

Names are totally ordered component-wise. Two components compare by length
first and then by their bytes. A name that is a strict prefix of another
sorts before it. Consequently, for any name N, every descendant of N falls
in the contiguous half-open interval [N, N.Successor()).

The successor rule is what makes prefix ranges cheap for ordered
containers: Successor increments the final component as a big-endian
integer, growing it by one zero-filled byte on full carry. The empty name
has no successor; range scans over the root must use the container end as
their upper bound.

*/
