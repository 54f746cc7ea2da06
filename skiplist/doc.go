package skiplist

/*

# Probabilistic ordered container

A classic skip list specialized for the repository index: elements are
totally ordered by an explicit three-way comparator and each element
occupies a unique slot under that order. Insert never overwrites; an
insert colliding with an occupied slot reports false and leaves the
resolution to the caller.

Expected O(log n) insert, find, lower-bound and erase. Iteration is plain
linked-list traversal and the base level carries back links, so windows
located with LowerBound can be walked right-to-left as well as
left-to-right. Values may be mutated in place through iterators provided
the mutation does not affect the comparator's verdict.

The level generator draws from a seedable PCG source so tests can pin the
tower shape.

*/
