package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/annotizer/internal/ident"
	"github.com/roach88/annotizer/internal/metadata"
)

// digestDomain separates view digests from any other SHA-256 use.
const digestDomain = "annotizer/view/v1"

// Aliases maps identifiers to display names. Identifiers without an alias
// display as their canonical string.
type Aliases map[ident.ID]string

func (a Aliases) name(id ident.ID) string {
	if alias, ok := a[id]; ok {
		return alias
	}
	return id.String()
}

// Value converts an opaque metadata value into something Canonical accepts.
// Strings, booleans and integers pass through; floats become their shortest
// decimal string; slices and string-keyed maps convert element-wise;
// fmt.Stringer and error use their text; anything else uses %v.
func Value(v any) any {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Value(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Value(iter.Value().Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
	}
	return fmt.Sprintf("%v", v)
}

// Tree converts store into slot -> namespace name -> key -> value, with every
// value passed through Value.
func Tree(store *metadata.Store, aliases Aliases) map[string]any {
	out := make(map[string]any, store.Len())
	for _, slot := range store.Slots() {
		nsOut := make(map[string]any)
		for _, id := range store.IDs(slot) {
			entry, _ := store.Entry(slot, id)
			entryOut := make(map[string]any, len(entry))
			for k, v := range entry {
				entryOut[k] = Value(v)
			}
			nsOut[aliases.name(id)] = entryOut
		}
		out[string(slot)] = nsOut
	}
	return out
}

// JSON renders store as canonical JSON.
func JSON(store *metadata.Store, aliases Aliases) ([]byte, error) {
	return Canonical(Tree(store, aliases))
}

// Digest returns a domain-separated SHA-256 hex digest of data.
func Digest(data []byte) string {
	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StoreDigest is Digest over JSON(store, nil). Two stores with the same
// content have the same digest regardless of write order.
func StoreDigest(store *metadata.Store) (string, error) {
	data, err := JSON(store, nil)
	if err != nil {
		return "", err
	}
	return Digest(data), nil
}

// Text renders store as an indented tree in enumeration order:
//
//	a
//	  A
//	    doc: "a"
//	return
//	  A
//	    doc: "d1"
//
// Namespaces are ordered by display name.
func Text(store *metadata.Store, aliases Aliases) string {
	if store.Empty() {
		return "(no annotations)\n"
	}

	var b strings.Builder
	for _, slot := range store.Slots() {
		fmt.Fprintf(&b, "%s\n", slot)

		ids := store.IDs(slot)
		slices.SortStableFunc(ids, func(x, y ident.ID) int {
			return strings.Compare(aliases.name(x), aliases.name(y))
		})
		for _, id := range ids {
			fmt.Fprintf(&b, "  %s\n", aliases.name(id))
			entry, _ := store.Entry(slot, id)
			for _, k := range SortedKeys(entry) {
				data, err := Canonical(Value(entry[k]))
				if err != nil {
					data = []byte(fmt.Sprintf("%v", entry[k]))
				}
				fmt.Fprintf(&b, "    %s: %s\n", k, data)
			}
		}
	}
	return b.String()
}
