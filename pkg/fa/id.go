package fa

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the shape of a state identifier.
type Kind uint8

const (
	// Atomic holds a single scalar value.
	Atomic Kind = iota
	// Tuple is a fixed-length ordered composite (product construction).
	Tuple
	// List is a variable-length ordered composite.
	List
	// Set is an unordered composite (subset construction).
	Set
)

func (k Kind) String() string {
	switch k {
	case Atomic:
		return "atomic"
	case Tuple:
		return "tuple"
	case List:
		return "list"
	case Set:
		return "set"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ID is a structurally comparable state identifier.
//
// The zero value is an atomic identifier holding nil. IDs are immutable;
// constructors copy their arguments.
type ID struct {
	kind  Kind
	atom  any
	elems []ID
}

// Atom returns an atomic identifier for a scalar value.
// Signed integers are normalized to int64, unsigned integers to uint64 and
// floats to float64, so Atom(1) and Atom(int64(1)) are the same state.
func Atom(v any) ID {
	return ID{kind: Atomic, atom: normalize(v)}
}

// Text returns an atomic identifier for a string.
func Text(s string) ID {
	return ID{kind: Atomic, atom: s}
}

// TupleOf returns a fixed-length ordered composite of elems.
func TupleOf(elems ...ID) ID {
	return ID{kind: Tuple, elems: slices.Clone(elems)}
}

// ListOf returns a variable-length ordered composite of elems.
func ListOf(elems ...ID) ID {
	return ID{kind: List, elems: slices.Clone(elems)}
}

// SetOf returns an unordered composite of elems.
// Duplicate members (by [ID.Key]) are collapsed and members are stored in
// key order, so the argument order never affects equality.
func SetOf(elems ...ID) ID {
	seen := make(map[string]bool, len(elems))
	members := make([]ID, 0, len(elems))
	for _, e := range elems {
		k := e.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		members = append(members, e)
	}
	slices.SortFunc(members, func(a, b ID) int { return strings.Compare(a.Key(), b.Key()) })
	return ID{kind: Set, elems: members}
}

// Kind reports the identifier's shape.
func (id ID) Kind() Kind { return id.kind }

// Value returns the scalar of an atomic identifier, or nil for composites.
func (id ID) Value() any {
	if id.kind != Atomic {
		return nil
	}
	return id.atom
}

// Elems returns a copy of a composite's members. Set members come back in
// key order. Atomic identifiers have no members.
func (id ID) Elems() []ID {
	return slices.Clone(id.elems)
}

// Len returns the number of members of a composite, or 0 for atoms.
func (id ID) Len() int { return len(id.elems) }

// Equal reports whether id and other are structurally equal.
func (id ID) Equal(other ID) bool { return id.Key() == other.Key() }

// String returns the display label; see [FormatState].
func (id ID) String() string { return FormatState(id) }

// Key returns the canonical structural key of the identifier.
//
// Keys of atoms carry a type tag so that values of different scalar types
// never collide (1 and "1" are distinct states). Keys never start with an
// underscore, which leaves that prefix free for synthetic graph nodes.
func (id ID) Key() string {
	var b strings.Builder
	id.writeKey(&b)
	return b.String()
}

func (id ID) writeKey(b *strings.Builder) {
	switch id.kind {
	case Tuple:
		writeKeys(b, "(", id.elems, ")")
	case List:
		writeKeys(b, "[", id.elems, "]")
	case Set:
		writeKeys(b, "{", id.elems, "}")
	default:
		b.WriteString(atomKey(id.atom))
	}
}

func writeKeys(b *strings.Builder, open string, elems []ID, close string) {
	b.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		e.writeKey(b)
	}
	b.WriteString(close)
}

func atomKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "n"
	case string:
		return "s" + strconv.Quote(x)
	case bool:
		return "b" + strconv.FormatBool(x)
	case int64:
		return "i" + strconv.FormatInt(x, 10)
	case uint64:
		return "u" + strconv.FormatUint(x, 10)
	case float64:
		return "f" + strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return "v" + strconv.Quote(fmt.Sprintf("%T:%v", x, x))
	}
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case float32:
		return float64(x)
	}
	return v
}
