package diagram

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Node shapes.
const (
	ShapeCircle       = "circle"
	ShapeDoubleCircle = "doublecircle"
	ShapePoint        = "point"
)

// PathPenWidth is the pen width of highlighted path edges.
const PathPenWidth = 2.5

// NodeKind distinguishes automaton states from layout-only markers.
type NodeKind int

const (
	// NodeKindState is a node for an automaton state.
	NodeKindState NodeKind = iota
	// NodeKindEntry is a synthetic, unlabeled point that draws the arrow
	// into an initial state. It has no counterpart in the automaton.
	NodeKindEntry
)

// EdgeKind tells how an edge came to be in the graph.
type EdgeKind int

const (
	// EdgeKindEntry connects an entry marker to its initial state.
	EdgeKindEntry EdgeKind = iota
	// EdgeKindPath is one step of a highlighted trace.
	EdgeKindPath
	// EdgeKindAggregate carries every remaining symbol of a (from, to) pair.
	EdgeKindAggregate
)

// Node is a graph vertex with its Graphviz attributes.
type Node struct {
	ID       string
	Kind     NodeKind
	Label    string
	Shape    string
	Tooltip  string
	FontSize float64

	Initial   bool
	Accepting bool
}

// Edge is a directed graph edge with its Graphviz attributes.
// Zero-valued optional attributes are omitted from the DOT output.
type Edge struct {
	From string
	To   string
	Kind EdgeKind

	Label     string
	Tooltip   string
	Color     string // hex color, path edges only
	Step      int    // 1-based trace step, path edges only
	ArrowSize float64
	FontSize  float64
	PenWidth  float64
}

// Attrs holds graph-level layout attributes.
type Attrs struct {
	RankDir string  // LR, RL, TB or BT
	RankSep float64 // rank separation in inches
	Size    string  // "width,height" bound, or empty
}

// Trace summarizes the highlighted input, when there is one.
type Trace struct {
	Input    string
	Steps    int
	Accepted bool
}

// Graph is the declarative description handed to the layout engine.
// It is built fresh by [Build] and not modified afterwards.
type Graph struct {
	Engine Engine
	Attrs  Attrs
	Nodes  []Node
	Edges  []Edge
	Trace  *Trace
}

// NodeCount returns the number of nodes, entry markers included.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges, entry edges included.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesOfKind returns the edges of one kind in graph order.
func (g *Graph) EdgesOfKind(kind EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// DOT encodes the graph in Graphviz DOT format.
func (g *Graph) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if g.Attrs.RankDir != "" {
		fmt.Fprintf(&buf, "  rankdir=%s;\n", g.Attrs.RankDir)
	}
	if g.Attrs.RankSep > 0 {
		fmt.Fprintf(&buf, "  ranksep=%s;\n", fmtFloat(g.Attrs.RankSep))
	}
	if g.Attrs.Size != "" {
		fmt.Fprintf(&buf, "  size=%s;\n", quote(g.Attrs.Size))
	}
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n Node) []string {
	attrs := []string{"label=" + quote(n.Label)}
	if n.Shape != "" {
		attrs = append(attrs, "shape="+n.Shape)
	}
	if n.Tooltip != "" {
		attrs = append(attrs, "tooltip="+quote(n.Tooltip))
	}
	if n.FontSize > 0 {
		attrs = append(attrs, "fontsize="+fmtFloat(n.FontSize))
	}
	return attrs
}

func edgeAttrs(e Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(e.Label))
	}
	if e.Tooltip != "" {
		attrs = append(attrs, "tooltip="+quote(e.Tooltip))
	}
	if e.Color != "" {
		attrs = append(attrs, "color="+quote(e.Color))
	}
	if e.ArrowSize > 0 {
		attrs = append(attrs, "arrowsize="+fmtFloat(e.ArrowSize))
	}
	if e.FontSize > 0 {
		attrs = append(attrs, "fontsize="+fmtFloat(e.FontSize))
	}
	if e.PenWidth > 0 {
		attrs = append(attrs, "penwidth="+fmtFloat(e.PenWidth))
	}
	return attrs
}

// quote produces a DOT string literal. Newlines become \n, which Graphviz
// renders as a centered line break.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
