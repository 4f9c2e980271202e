package io

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
)

// Definition is the file representation of a [fa.Machine].
//
// State identifiers are stored as plain values so every format can carry
// them; see [ParseID] for the encoding.
type Definition struct {
	Name        string       `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" mapstructure:"name"`
	States      []any        `json:"states" yaml:"states" toml:"states" mapstructure:"states"`
	Alphabet    []string     `json:"alphabet,omitempty" yaml:"alphabet,omitempty" toml:"alphabet,omitempty" mapstructure:"alphabet"`
	Initial     any          `json:"initial" yaml:"initial" toml:"initial" mapstructure:"initial"`
	Accepting   []any        `json:"accepting,omitempty" yaml:"accepting,omitempty" toml:"accepting,omitempty" mapstructure:"accepting"`
	Transitions []Transition `json:"transitions" yaml:"transitions" toml:"transitions" mapstructure:"transitions"`
}

// Transition is one transition of a [Definition]. An empty or missing
// symbol is an epsilon transition.
type Transition struct {
	From   any    `json:"from" yaml:"from" toml:"from" mapstructure:"from"`
	To     any    `json:"to" yaml:"to" toml:"to" mapstructure:"to"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty" toml:"symbol,omitempty" mapstructure:"symbol"`
}

// Composite keys recognized by [ParseID].
const (
	keyTuple = "tuple"
	keyList  = "list"
	keySet   = "set"
)

// ParseID converts a decoded value into a state identifier.
//
//   - strings, booleans and numbers become atoms; integral numbers are int64
//   - an array becomes a tuple
//   - {"tuple": [...]}, {"list": [...]} and {"set": [...]} select the
//     composite kind explicitly
//
// Anything else fails with INVALID_DEFINITION.
func ParseID(v any) (fa.ID, error) {
	switch x := v.(type) {
	case nil:
		return fa.ID{}, errors.New(errors.ErrCodeInvalidDefinition, "state identifier is missing")
	case string:
		return fa.Text(x), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fa.Atom(x), nil
	case float32:
		return parseFloat(float64(x)), nil
	case float64:
		return parseFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return fa.Atom(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return fa.ID{}, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "number %s", x)
		}
		return parseFloat(f), nil
	case []any:
		elems, err := parseIDs(x)
		if err != nil {
			return fa.ID{}, err
		}
		return fa.TupleOf(elems...), nil
	case map[string]any:
		return parseComposite(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return parseComposite(m)
	default:
		return fa.ID{}, errors.New(errors.ErrCodeInvalidDefinition, "unsupported state identifier %v (%T)", v, v)
	}
}

func parseFloat(f float64) fa.ID {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return fa.Atom(int64(f))
	}
	return fa.Atom(f)
}

func parseComposite(m map[string]any) (fa.ID, error) {
	if len(m) != 1 {
		return fa.ID{}, errors.New(errors.ErrCodeInvalidDefinition,
			"composite state must have exactly one of %q, %q or %q", keyTuple, keyList, keySet)
	}
	var kind string
	var raw any
	for k, v := range m {
		kind, raw = k, v
	}

	items, ok := raw.([]any)
	if !ok && raw != nil {
		return fa.ID{}, errors.New(errors.ErrCodeInvalidDefinition, "%s members must be an array", kind)
	}
	elems, err := parseIDs(items)
	if err != nil {
		return fa.ID{}, err
	}
	switch kind {
	case keyTuple:
		return fa.TupleOf(elems...), nil
	case keyList:
		return fa.ListOf(elems...), nil
	case keySet:
		return fa.SetOf(elems...), nil
	default:
		return fa.ID{}, errors.New(errors.ErrCodeInvalidDefinition, "unknown composite kind %q", kind)
	}
}

func parseIDs(vals []any) ([]fa.ID, error) {
	out := make([]fa.ID, 0, len(vals))
	for _, v := range vals {
		id, err := ParseID(v)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// EncodeID is the inverse of [ParseID]. Tuples encode as arrays, lists and
// sets as single-key objects.
func EncodeID(id fa.ID) any {
	switch id.Kind() {
	case fa.Tuple:
		return encodeIDs(id.Elems())
	case fa.List:
		return map[string]any{keyList: encodeIDs(id.Elems())}
	case fa.Set:
		return map[string]any{keySet: encodeIDs(id.Elems())}
	default:
		return id.Value()
	}
}

func encodeIDs(ids []fa.ID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = EncodeID(id)
	}
	return out
}

// Machine validates the definition and builds the automaton.
func (d *Definition) Machine() (*fa.Machine, error) {
	states, err := parseIDs(d.States)
	if err != nil {
		return nil, err
	}
	initial, err := ParseID(d.Initial)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "initial state")
	}
	accepting, err := parseIDs(d.Accepting)
	if err != nil {
		return nil, err
	}

	cfg := fa.MachineConfig{
		States:    states,
		Initial:   initial,
		Accepting: accepting,
	}
	for _, s := range d.Alphabet {
		cfg.Alphabet = append(cfg.Alphabet, fa.Symbol(s))
	}
	for i, t := range d.Transitions {
		from, err := ParseID(t.From)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "transition %d: from", i)
		}
		to, err := ParseID(t.To)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "transition %d: to", i)
		}
		cfg.Transitions = append(cfg.Transitions, fa.Transition{From: from, To: to, Symbol: fa.Symbol(t.Symbol)})
	}
	return fa.NewMachine(cfg)
}

// FromMachine returns the definition of m.
func FromMachine(m *fa.Machine, name string) *Definition {
	d := &Definition{Name: name, Initial: EncodeID(m.Initial())}
	for s := range m.States() {
		d.States = append(d.States, EncodeID(s))
	}
	for _, s := range m.Accepting() {
		d.Accepting = append(d.Accepting, EncodeID(s))
	}
	for _, sym := range m.Alphabet() {
		d.Alphabet = append(d.Alphabet, string(sym))
	}
	for t := range m.Transitions() {
		d.Transitions = append(d.Transitions, Transition{
			From:   EncodeID(t.From),
			To:     EncodeID(t.To),
			Symbol: string(t.Symbol),
		})
	}
	return d
}
