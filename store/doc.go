// Package store owns content payload bytes behind opaque int64 ids.
//
// The index layer never sees payload bytes and the storage layer never
// sees names. The only coupling is the id: storage allocates it on
// insert and the index records it against the full name. Ids are
// allocated from a time ordered series so that payload creation order
// is recoverable from the ids alone.
//
// Two implementations are provided. MemoryStorage is the default for
// embedding and for tests. AzureStorage keeps payloads in azure block
// blobs behind the datatrails azblob wrapper and is suitable when the
// repository must survive process restarts.
package store
