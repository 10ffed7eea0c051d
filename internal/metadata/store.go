package metadata

import (
	"maps"
	"slices"

	"github.com/roach88/annotizer/internal/ident"
)

// Slot names a position on a callable that can carry metadata: a declared
// parameter name or ReturnSlot.
type Slot string

// ReturnSlot is the reserved slot for the return value. "return" is a Go
// keyword, so no declared parameter can collide with it.
const ReturnSlot Slot = "return"

// DocKey is the entry key written by the default decorators.
const DocKey = "doc"

// Entry maps user-chosen keys to opaque values.
type Entry map[string]any

// Namespaces maps identifiers to their entries within a single slot.
type Namespaces map[ident.ID]Entry

// Store is the metadata attached to one callable.
// The zero value is an empty store ready for use; maps are created on first write.
type Store struct {
	slots map[Slot]Namespaces

	// order records parameter declaration order so enumeration follows the
	// signature rather than map order.
	order []Slot
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// SetOrder records the declaration order of parameter slots. Slots not in
// order enumerate after the ordered ones, sorted by name.
func (s *Store) SetOrder(params []string) {
	s.order = s.order[:0]
	for _, p := range params {
		s.order = append(s.order, Slot(p))
	}
}

// EnsureSlot creates slot if it does not exist yet and returns its namespaces.
// An existing slot is returned unchanged.
func (s *Store) EnsureSlot(slot Slot) Namespaces {
	if s.slots == nil {
		s.slots = make(map[Slot]Namespaces)
	}
	ns, ok := s.slots[slot]
	if !ok {
		ns = make(Namespaces)
		s.slots[slot] = ns
	}
	return ns
}

// EnsureEntry creates the slot and the entry for id as needed and returns the
// entry. Entries under other identifiers are not touched.
func (s *Store) EnsureEntry(slot Slot, id ident.ID) Entry {
	ns := s.EnsureSlot(slot)
	entry, ok := ns[id]
	if !ok {
		entry = make(Entry)
		ns[id] = entry
	}
	return entry
}

// Set writes value under (slot, id, key), replacing any previous value for
// that exact triple.
func (s *Store) Set(slot Slot, id ident.ID, key string, value any) {
	s.EnsureEntry(slot, id)[key] = value
}

// Get reads the value under (slot, id, key).
func (s *Store) Get(slot Slot, id ident.ID, key string) (any, bool) {
	entry, ok := s.Entry(slot, id)
	if !ok {
		return nil, false
	}
	v, ok := entry[key]
	return v, ok
}

// Doc is shorthand for Get(slot, id, DocKey).
func (s *Store) Doc(slot Slot, id ident.ID) (any, bool) {
	return s.Get(slot, id, DocKey)
}

// Entry returns the entry for id under slot. The returned map is live.
func (s *Store) Entry(slot Slot, id ident.ID) (Entry, bool) {
	ns, ok := s.slots[slot]
	if !ok {
		return nil, false
	}
	entry, ok := ns[id]
	return entry, ok
}

// Has reports whether slot exists.
func (s *Store) Has(slot Slot) bool {
	_, ok := s.slots[slot]
	return ok
}

// Namespaces returns the namespaces present under slot.
// The returned map is live; use IDs for deterministic iteration.
func (s *Store) Namespaces(slot Slot) (Namespaces, bool) {
	ns, ok := s.slots[slot]
	return ns, ok
}

// IDs returns the identifiers present under slot, sorted by canonical string.
func (s *Store) IDs(slot Slot) []ident.ID {
	ns := s.slots[slot]
	ids := slices.Collect(maps.Keys(ns))
	slices.SortFunc(ids, ident.Compare)
	return ids
}

// Slots returns every slot in enumeration order: parameters in declaration
// order, then any other parameter slots sorted by name, then ReturnSlot.
func (s *Store) Slots() []Slot {
	out := make([]Slot, 0, len(s.slots))
	seen := make(map[Slot]bool, len(s.slots))

	for _, slot := range s.order {
		if _, ok := s.slots[slot]; ok && !seen[slot] {
			out = append(out, slot)
			seen[slot] = true
		}
	}

	var rest []Slot
	for slot := range s.slots {
		if !seen[slot] && slot != ReturnSlot {
			rest = append(rest, slot)
		}
	}
	slices.Sort(rest)
	out = append(out, rest...)

	if s.Has(ReturnSlot) {
		out = append(out, ReturnSlot)
	}
	return out
}

// Len returns the number of slots.
func (s *Store) Len() int {
	return len(s.slots)
}

// Empty reports whether nothing has been written yet.
func (s *Store) Empty() bool {
	return len(s.slots) == 0
}

// For returns every slot's entry for id. Slots without an entry for id are
// omitted. The entries are copies.
func (s *Store) For(id ident.ID) map[Slot]Entry {
	out := make(map[Slot]Entry)
	for slot, ns := range s.slots {
		if entry, ok := ns[id]; ok {
			out[slot] = maps.Clone(entry)
		}
	}
	return out
}

// Clone returns a deep copy of the store's structure. Values are copied by
// assignment, so opaque reference values are shared.
func (s *Store) Clone() *Store {
	c := &Store{order: slices.Clone(s.order)}
	for slot, ns := range s.slots {
		for id, entry := range ns {
			dst := c.EnsureEntry(slot, id)
			maps.Copy(dst, entry)
		}
		c.EnsureSlot(slot)
	}
	return c
}

// Snapshot returns a string-keyed deep copy: slot -> identifier -> key -> value.
// Identifiers use their canonical string form.
func (s *Store) Snapshot() map[string]map[string]map[string]any {
	out := make(map[string]map[string]map[string]any, len(s.slots))
	for slot, ns := range s.slots {
		nsOut := make(map[string]map[string]any, len(ns))
		for id, entry := range ns {
			nsOut[id.String()] = maps.Clone(map[string]any(entry))
		}
		out[string(slot)] = nsOut
	}
	return out
}
