package index

/*

# Ordered name index

The in-memory lookup index of the repository: it maps stored content
identifiers to opaque references in the payload store, keyed by canonical
name order, and resolves queries (a name prefix plus selector
constraints) to the single best matching stored item.

## Core invariants

1. entries are totally ordered by name alone; at most one entry, live or
   tombstoned, occupies a given name
2. Size counts live entries only and never exceeds the configured maximum
3. a soft deleted entry remains physically present, blocking fresh reuse
   of its name slot, until an explicit Prune sweep

Deletion is deferred by design: a tombstone keeps in-flight range scans
valid and a later, caller scheduled, Prune performs the batched physical
cleanup. Insert under a tombstoned name resurrects the slot with the new
id and key locator hash; the name is unchanged so no reordering occurs.

The index is single threaded and purely in-memory. It holds no payload
bytes; ids are opaque references into the storage engine and the index
is never persisted itself.

*/
