package diagram

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/fadiagram/pkg/fa"
)

// Path gradient endpoints. The start color is the same for every trace;
// the end color tells accepted from rejected input apart.
const (
	StartColor  = "#ffff00"
	AcceptColor = "#00ff00"
	RejectColor = "#ff0000"
)

// EndColor returns the gradient end color for a trace outcome.
func EndColor(accepted bool) string {
	if accepted {
		return AcceptColor
	}
	return RejectColor
}

// Gradient returns steps+1 colors evenly spaced along an HCL blend from
// start to end, as lowercase hex. The first sample is start and the last is
// end, exactly. Invalid hex input is treated as black, like colorful.Hex.
func Gradient(start, end string, steps int) []string {
	if steps <= 0 {
		return []string{start}
	}
	c1, _ := colorful.Hex(start)
	c2, _ := colorful.Hex(end)

	out := make([]string, steps+1)
	out[0] = start
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		out[i] = c1.BlendHcl(c2, t).Clamped().Hex()
	}
	out[steps] = end
	return out
}

// Drawn is the set of transitions already drawn as path edges, keyed by
// (from, to, symbol). The zero value is not usable; use [NewDrawn].
type Drawn map[drawnKey]struct{}

type drawnKey struct {
	from, to string
	symbol   fa.Symbol
}

// NewDrawn returns an empty set.
func NewDrawn() Drawn { return make(Drawn) }

// Has reports whether t was drawn.
func (d Drawn) Has(t fa.Transition) bool {
	_, ok := d[keyFor(t)]
	return ok
}

// Len returns the number of distinct drawn transitions.
func (d Drawn) Len() int { return len(d) }

func (d Drawn) add(t fa.Transition) { d[keyFor(t)] = struct{}{} }

func keyFor(t fa.Transition) drawnKey {
	return drawnKey{from: t.From.Key(), to: t.To.Key(), symbol: t.Symbol}
}

// PathOverlay is the result of highlighting one input.
type PathOverlay struct {
	Drawn    Drawn
	Edges    []Edge // one per step, in trace order
	Accepted bool
}

// Highlight traces input through t and returns one colored edge per step.
//
// The tracer's error is returned as is. Step i (1-based) is labeled with
// its index and formatted symbol and colored with gradient sample i, so the
// last step always carries [EndColor]. A step that repeats an earlier
// transition gets its own edge.
func Highlight(t fa.Tracer, input string, opts Options) (*PathOverlay, error) {
	opts = opts.withDefaults()

	path, accepted, err := t.TracePath(input)
	if err != nil {
		return nil, err
	}

	colors := Gradient(StartColor, EndColor(accepted), len(path))
	overlay := &PathOverlay{
		Drawn:    NewDrawn(),
		Edges:    make([]Edge, 0, len(path)),
		Accepted: accepted,
	}
	for i, tr := range path {
		step := i + 1
		overlay.Edges = append(overlay.Edges, Edge{
			From:      NodeID(tr.From),
			To:        NodeID(tr.To),
			Kind:      EdgeKindPath,
			Label:     fmt.Sprintf(" [#%d]\n%s ", step, fa.FormatSymbol(tr.Symbol)),
			Tooltip:   tr.String(),
			Color:     colors[step],
			Step:      step,
			ArrowSize: opts.ArrowSize,
			FontSize:  opts.FontSize,
			PenWidth:  PathPenWidth,
		})
		overlay.Drawn.add(tr)
	}
	return overlay, nil
}
