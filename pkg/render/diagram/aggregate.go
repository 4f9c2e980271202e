package diagram

import (
	"slices"
	"strings"

	"github.com/matzehuels/fadiagram/pkg/fa"
)

// Aggregate merges every transition not in drawn into one edge per
// (from, to) pair. Repeated symbols collapse, then their formatted labels
// are sorted and comma-joined. Pairs
// appear in the order their first undrawn transition appears in
// a.Transitions(), so the result depends only on that sequence.
//
// A nil drawn set excludes nothing.
func Aggregate(a fa.Automaton, drawn Drawn, opts Options) []Edge {
	opts = opts.withDefaults()

	type pair struct{ from, to string }
	type group struct {
		from, to fa.ID
		symbols  []fa.Symbol
	}

	var order []pair
	groups := make(map[pair]*group)
	for t := range a.Transitions() {
		if drawn.Has(t) {
			continue
		}
		p := pair{from: t.From.Key(), to: t.To.Key()}
		g, ok := groups[p]
		if !ok {
			g = &group{from: t.From, to: t.To}
			groups[p] = g
			order = append(order, p)
		}
		if !slices.Contains(g.symbols, t.Symbol) {
			g.symbols = append(g.symbols, t.Symbol)
		}
	}

	edges := make([]Edge, 0, len(order))
	for _, p := range order {
		g := groups[p]
		labels := make([]string, len(g.symbols))
		for i, sym := range g.symbols {
			labels[i] = fa.FormatSymbol(sym)
		}
		slices.Sort(labels)
		edges = append(edges, Edge{
			From:      NodeID(g.from),
			To:        NodeID(g.to),
			Kind:      EdgeKindAggregate,
			Label:     strings.Join(labels, ","),
			Tooltip:   fa.FormatState(g.from) + " -> " + fa.FormatState(g.to),
			ArrowSize: opts.ArrowSize,
			FontSize:  opts.FontSize,
		})
	}
	return edges
}
