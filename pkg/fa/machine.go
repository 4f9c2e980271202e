package fa

import (
	"iter"
	"slices"

	"github.com/matzehuels/fadiagram/pkg/errors"
)

// MachineConfig describes a [Machine] to construct.
type MachineConfig struct {
	States      []ID
	Alphabet    []Symbol // derived from Transitions when empty
	Initial     ID
	Accepting   []ID
	Transitions []Transition
}

// Machine is a table-driven finite automaton with a single initial state.
//
// It accepts nondeterministic and epsilon transitions for drawing, but
// [Machine.TracePath] only replays deterministic machines. Transitions keep
// their definition order, so iteration is stable across calls.
//
// A Machine is immutable after [NewMachine] and safe for concurrent use.
type Machine struct {
	states      []ID
	index       map[string]int
	alphabet    []Symbol
	symbols     map[Symbol]bool
	transitions []Transition
	delta       map[string]map[Symbol][]ID
	initial     ID
	accepting   map[string]bool
	epsilon     bool
}

// NewMachine validates cfg and builds a [Machine].
//
// It fails with an INVALID_DEFINITION error when the machine has no states,
// a state is listed twice, the initial or an accepting state is unknown, a
// transition references an unknown state, or a transition uses a symbol
// outside an explicit alphabet. Exact duplicate transitions are collapsed.
func NewMachine(cfg MachineConfig) (*Machine, error) {
	if len(cfg.States) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "automaton has no states")
	}

	m := &Machine{
		index:     make(map[string]int, len(cfg.States)),
		symbols:   make(map[Symbol]bool),
		delta:     make(map[string]map[Symbol][]ID),
		accepting: make(map[string]bool),
		initial:   cfg.Initial,
	}

	for _, s := range cfg.States {
		k := s.Key()
		if _, dup := m.index[k]; dup {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "duplicate state %s", FormatState(s))
		}
		m.index[k] = len(m.states)
		m.states = append(m.states, s)
	}

	if !m.has(cfg.Initial) {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "initial state %s is not a state", FormatState(cfg.Initial))
	}
	for _, s := range cfg.Accepting {
		if !m.has(s) {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "accepting state %s is not a state", FormatState(s))
		}
		m.accepting[s.Key()] = true
	}

	explicit := len(cfg.Alphabet) > 0
	for _, sym := range cfg.Alphabet {
		if sym == Epsilon {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "alphabet must not contain the empty symbol")
		}
		m.symbols[sym] = true
	}

	seen := make(map[transitionKey]bool, len(cfg.Transitions))
	for _, t := range cfg.Transitions {
		if !m.has(t.From) {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "transition %s: unknown source state", t)
		}
		if !m.has(t.To) {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "transition %s: unknown target state", t)
		}
		if t.Symbol == Epsilon {
			m.epsilon = true
		} else if !m.symbols[t.Symbol] {
			if explicit {
				return nil, errors.New(errors.ErrCodeInvalidDefinition, "transition %s: symbol %q is not in the alphabet", t, string(t.Symbol))
			}
			m.symbols[t.Symbol] = true
		}

		k := keyOf(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		m.transitions = append(m.transitions, t)

		row := m.delta[k.from]
		if row == nil {
			row = make(map[Symbol][]ID)
			m.delta[k.from] = row
		}
		row[t.Symbol] = append(row[t.Symbol], t.To)
	}

	for sym := range m.symbols {
		m.alphabet = append(m.alphabet, sym)
	}
	slices.Sort(m.alphabet)
	return m, nil
}

// States yields the states in definition order.
func (m *Machine) States() iter.Seq[ID] {
	return slices.Values(m.states)
}

// Transitions yields the transitions in definition order.
func (m *Machine) Transitions() iter.Seq[Transition] {
	return slices.Values(m.transitions)
}

// IsInitial reports whether state is the initial state.
func (m *Machine) IsInitial(state ID) bool { return state.Equal(m.initial) }

// IsAccepting reports whether state is accepting.
func (m *Machine) IsAccepting(state ID) bool { return m.accepting[state.Key()] }

// Initial returns the initial state.
func (m *Machine) Initial() ID { return m.initial }

// Accepting returns the accepting states in definition order.
func (m *Machine) Accepting() []ID {
	var out []ID
	for _, s := range m.states {
		if m.accepting[s.Key()] {
			out = append(out, s)
		}
	}
	return out
}

// Alphabet returns the sorted input symbols.
func (m *Machine) Alphabet() []Symbol { return slices.Clone(m.alphabet) }

// NumStates returns the number of states.
func (m *Machine) NumStates() int { return len(m.states) }

// NumTransitions returns the number of distinct transitions.
func (m *Machine) NumTransitions() int { return len(m.transitions) }

// Deterministic reports whether the machine has no epsilon transitions and
// at most one target per (state, symbol). Missing transitions are allowed.
func (m *Machine) Deterministic() bool {
	if m.epsilon {
		return false
	}
	for _, row := range m.delta {
		for _, targets := range row {
			if len(targets) > 1 {
				return false
			}
		}
	}
	return true
}

// TracePath replays input one rune per symbol from the initial state.
//
// Every rune is checked against the alphabet before stepping; the first
// unknown one yields an [*InvalidSymbolError]. Nondeterministic machines
// fail with UNSUPPORTED. When a state has no transition for the next
// symbol the trace stops there and is rejected.
func (m *Machine) TracePath(input string) ([]Transition, bool, error) {
	symbols := make([]Symbol, 0, len(input))
	for i, r := range []rune(input) {
		sym := Symbol(string(r))
		if !m.symbols[sym] {
			return nil, false, &InvalidSymbolError{Symbol: sym, Position: i}
		}
		symbols = append(symbols, sym)
	}
	if !m.Deterministic() {
		return nil, false, errors.New(errors.ErrCodeUnsupported, "tracing requires a deterministic automaton")
	}

	path := make([]Transition, 0, len(symbols))
	cur := m.initial
	for _, sym := range symbols {
		targets := m.delta[cur.Key()][sym]
		if len(targets) == 0 {
			return path, false, nil
		}
		next := targets[0]
		path = append(path, Transition{From: cur, To: next, Symbol: sym})
		cur = next
	}
	return path, m.IsAccepting(cur), nil
}

func (m *Machine) has(s ID) bool {
	_, ok := m.index[s.Key()]
	return ok
}

type transitionKey struct {
	from, to string
	symbol   Symbol
}

func keyOf(t Transition) transitionKey {
	return transitionKey{from: t.From.Key(), to: t.To.Key(), symbol: t.Symbol}
}
