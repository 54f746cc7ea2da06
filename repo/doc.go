// Package repo ties the ordered name index to a payload store.
//
// The repository stores whole content items: the item's encoding goes
// to the payload store, and the full name (the publisher name plus the
// implicit digest component) goes to the index against the payload id.
// Retrieval resolves a query through the index and reads the payload
// back. Deletion is two phase: Delete soft deletes the index entry and
// queues the payload id, Compact later deletes the queued payloads and
// prunes the index. Compaction is never implicit.
package repo
