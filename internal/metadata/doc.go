// Package metadata implements the per-callable metadata store.
//
// A store is a three-level mapping:
//
//	slot (parameter name or ReturnSlot) -> namespace identifier -> key -> value
//
// Values are opaque. The store never interprets them and never validates them.
//
// Ownership rules:
//   - A store belongs to exactly one callable and lives as long as it does.
//   - Entries are created or extended, never deleted.
//   - Writers only touch the entry under their own identifier. The store does
//     not enforce this; the annotate package's decorators do.
//
// Consumers (documentation generators and the like) enumerate slots, then
// namespaces within each slot, and read only entries under identifiers they
// recognise. Store.For selects that view in one call.
//
// A Store is not safe for concurrent use. Decoration normally happens once at
// program initialisation; callers decorating the same callable from several
// goroutines must serialise those calls themselves.
package metadata
