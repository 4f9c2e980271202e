package diagram

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
)

// EntryPrefix starts every entry marker ID. State node IDs are canonical
// keys, which never start with an underscore, so the two cannot collide.
const EntryPrefix = "_entry_"

// NodeID returns the graph node ID of a state.
func NodeID(state fa.ID) string { return state.Key() }

func newEntryID() string { return EntryPrefix + uuid.NewString() }

// Build translates an automaton into a [Graph].
//
// The graph holds one entry marker per initial state, one node per state,
// the highlighted path when opts.Input is set, and one aggregated edge per
// remaining (from, to) pair. An input on an automaton that does not
// implement [fa.Tracer] fails with INVALID_INPUT; tracer errors are
// returned unchanged.
func Build(a fa.Automaton, opts Options) (*Graph, error) {
	_, g, err := build(a, opts)
	return g, err
}

// build also returns the overlay so the renderer can report trace hooks.
func build(a fa.Automaton, opts Options) (*PathOverlay, *Graph, error) {
	if a == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "automaton is nil")
	}
	opts = opts.withDefaults()

	engine, err := ParseEngine(opts.Engine)
	if err != nil {
		return nil, nil, err
	}

	g := &Graph{
		Engine: engine,
		Attrs: Attrs{
			RankDir: opts.rankDir(),
			RankSep: opts.StateSeparation,
		},
	}
	if fs := opts.FigureSize; fs != nil {
		g.Attrs.Size = fmtFloat(fs.Width) + "," + fmtFloat(fs.Height)
	}

	seen := make(map[string]bool)
	var entries []Node
	var entryEdges []Edge
	for s := range a.States() {
		id := NodeID(s)
		if seen[id] {
			continue
		}
		seen[id] = true

		label := fa.FormatState(s)
		initial, accepting := a.IsInitial(s), a.IsAccepting(s)
		shape := ShapeCircle
		if accepting {
			shape = ShapeDoubleCircle
		}
		g.Nodes = append(g.Nodes, Node{
			ID:        id,
			Kind:      NodeKindState,
			Label:     label,
			Shape:     shape,
			Tooltip:   label,
			FontSize:  opts.FontSize,
			Initial:   initial,
			Accepting: accepting,
		})

		if initial {
			entry := newEntryID()
			entries = append(entries, Node{
				ID:       entry,
				Kind:     NodeKindEntry,
				Shape:    ShapePoint,
				Tooltip:  ".",
				FontSize: opts.FontSize,
			})
			entryEdges = append(entryEdges, Edge{
				From:      entry,
				To:        id,
				Kind:      EdgeKindEntry,
				Tooltip:   "->" + label,
				ArrowSize: opts.ArrowSize,
			})
		}
	}
	// Entry markers go first so dot ranks them ahead of their states.
	g.Nodes = append(entries, g.Nodes...)
	g.Edges = entryEdges

	var overlay *PathOverlay
	if opts.Input != nil {
		tracer, ok := a.(fa.Tracer)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput,
				"automaton %T cannot trace input", a)
		}
		overlay, err = Highlight(tracer, *opts.Input, opts)
		if err != nil {
			return nil, nil, err
		}
		g.Edges = append(g.Edges, overlay.Edges...)
		g.Trace = &Trace{
			Input:    *opts.Input,
			Steps:    len(overlay.Edges),
			Accepted: overlay.Accepted,
		}
	}

	var drawn Drawn
	if overlay != nil {
		drawn = overlay.Drawn
	}
	g.Edges = append(g.Edges, Aggregate(a, drawn, opts)...)
	return overlay, g, nil
}

// String summarizes the graph for logs.
func (g *Graph) String() string {
	return fmt.Sprintf("graph(%d nodes, %d edges, %s)", g.NodeCount(), g.EdgeCount(), g.Engine)
}
