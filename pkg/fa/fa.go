package fa

import (
	"fmt"
	"iter"

	"github.com/matzehuels/fadiagram/pkg/errors"
)

// Symbol is an input symbol. The empty string is the epsilon marker.
type Symbol string

// Epsilon marks a transition that consumes no input.
const Epsilon Symbol = ""

// Transition is a single (from, to, symbol) triple.
// Several transitions may share the same (From, To) pair.
type Transition struct {
	From   ID
	To     ID
	Symbol Symbol
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -%s-> %s", FormatState(t.From), FormatSymbol(t.Symbol), FormatState(t.To))
}

// Automaton is the structural contract the renderer draws from.
//
// States and Transitions must return finite sequences that can be iterated
// more than once.
type Automaton interface {
	States() iter.Seq[ID]
	Transitions() iter.Seq[Transition]
	IsInitial(state ID) bool
	IsAccepting(state ID) bool
}

// Tracer replays an input string against an automaton.
//
// TracePath returns the transitions taken, in order, and whether the state
// reached at the end is accepting. The path may be empty. Implementations
// should fail with an [*InvalidSymbolError] when input contains symbols
// outside the alphabet; renderers pass such errors through unchanged.
type Tracer interface {
	TracePath(input string) (path []Transition, accepted bool, err error)
}

// InvalidSymbolError reports an input symbol outside an automaton's alphabet.
type InvalidSymbolError struct {
	Symbol   Symbol
	Position int // zero-based index of the symbol in the input
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("%s: symbol %q at position %d is not in the alphabet",
		errors.ErrCodeInvalidInput, string(e.Symbol), e.Position)
}

// Code returns the error code for this error type.
func (e *InvalidSymbolError) Code() errors.Code {
	return errors.ErrCodeInvalidInput
}
