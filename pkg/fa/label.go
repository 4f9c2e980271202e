package fa

import (
	"fmt"
	"slices"
	"strings"
)

// Display glyphs.
const (
	LambdaGlyph   = "λ" // empty text state
	EmptySetGlyph = "∅" // empty set state
	EpsilonGlyph  = "ε" // epsilon transition symbol
)

// FormatState returns the display label of a state identifier.
//
// Atomic text is returned as-is except the empty string, which renders as
// [LambdaGlyph]. Composites format their members recursively, join them with
// ", " and wrap them in ( ) for tuples, [ ] for lists and { } for sets. Set
// members are ordered by label; the empty set renders as [EmptySetGlyph].
// Other scalars use their default fmt representation.
func FormatState(id ID) string {
	switch id.kind {
	case Tuple:
		return "(" + joinLabels(id.elems) + ")"
	case List:
		return "[" + joinLabels(id.elems) + "]"
	case Set:
		if len(id.elems) == 0 {
			return EmptySetGlyph
		}
		labels := formatAll(id.elems)
		slices.Sort(labels)
		return "{" + strings.Join(labels, ", ") + "}"
	}

	if s, ok := id.atom.(string); ok {
		if s == "" {
			return LambdaGlyph
		}
		return s
	}
	return fmt.Sprintf("%v", id.atom)
}

// FormatSymbol returns the display label of a transition symbol.
// [Epsilon] renders as [EpsilonGlyph].
func FormatSymbol(s Symbol) string {
	if s == Epsilon {
		return EpsilonGlyph
	}
	return string(s)
}

func joinLabels(elems []ID) string {
	return strings.Join(formatAll(elems), ", ")
}

func formatAll(elems []ID) []string {
	labels := make([]string, len(elems))
	for i, e := range elems {
		labels[i] = FormatState(e)
	}
	return labels
}
