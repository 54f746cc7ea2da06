// Package bloom is a double hashed bloom filter over 32 byte digests.
//
// The repository layer uses it as a fast negative for exact name
// membership: every stored item's implicit digest component is added,
// and a "definitely not present" answer short circuits the index probe.
// Elements cannot be removed; a deleted item degrades the filter to
// "maybe", never to a false negative, so soft deletes stay correct.
package bloom
