// Package fa models finite automata as seen by the diagram renderer.
//
// # Overview
//
// The renderer never builds or simulates automata itself. It consumes them
// through two small contracts defined here:
//
//   - [Automaton]: states, transitions, and the initial/accepting predicates
//   - [Tracer]: replays an input string and reports the transitions taken
//
// Any type satisfying these interfaces can be drawn. [Machine] is a
// table-driven reference implementation used by the CLI, the HTTP service
// and the tests.
//
// # State Identifiers
//
// Automata produced by product or subset constructions use composite states
// such as tuples of states or sets of states. [ID] is a closed variant over
// four shapes:
//
//   - [Atomic]: a scalar (text, integer, float, bool)
//   - [Tuple]: a fixed-length ordered composite, drawn as (a, b)
//   - [List]: a variable-length ordered composite, drawn as [a, b]
//   - [Set]: an unordered composite, drawn as {a, b} or ∅ when empty
//
// Equality is structural: [ID.Key] returns a canonical string that is equal
// for structurally equal identifiers and is used as a map key wherever states
// are deduplicated.
//
// # Labels
//
// [FormatState] and [FormatSymbol] turn identifiers and symbols into display
// strings. Both are pure: the same input always yields the same label.
//
//	fa.FormatState(fa.SetOf(fa.Text("q0"), fa.Text("q1"))) // "{q0, q1}"
//	fa.FormatState(fa.SetOf())                            // "∅"
//	fa.FormatState(fa.Text(""))                           // "λ"
//	fa.FormatSymbol(fa.Epsilon)                           // "ε"
package fa
