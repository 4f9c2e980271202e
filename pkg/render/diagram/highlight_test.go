package diagram

import (
	stderrors "errors"
	"regexp"
	"strings"
	"testing"

	"github.com/matzehuels/fadiagram/pkg/fa"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestGradient(t *testing.T) {
	tests := []struct {
		name  string
		end   string
		steps int
	}{
		{"empty path", AcceptColor, 0},
		{"one step accepted", AcceptColor, 1},
		{"one step rejected", RejectColor, 1},
		{"long accepted", AcceptColor, 7},
		{"long rejected", RejectColor, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gradient(StartColor, tt.end, tt.steps)
			if tt.steps == 0 {
				if len(got) != 1 || got[0] != StartColor {
					t.Errorf("Gradient() = %v, want [%s]", got, StartColor)
				}
				return
			}
			if len(got) != tt.steps+1 {
				t.Fatalf("len = %d, want %d", len(got), tt.steps+1)
			}
			if got[0] != StartColor {
				t.Errorf("first = %s, want %s", got[0], StartColor)
			}
			if got[tt.steps] != tt.end {
				t.Errorf("last = %s, want %s", got[tt.steps], tt.end)
			}
			for i, c := range got {
				if !hexColorRe.MatchString(c) {
					t.Errorf("sample %d = %q, want lowercase hex", i, c)
				}
			}
		})
	}
}

func TestGradientDeterministic(t *testing.T) {
	a := Gradient(StartColor, RejectColor, 5)
	b := Gradient(StartColor, RejectColor, 5)
	if strings.Join(a, " ") != strings.Join(b, " ") {
		t.Errorf("Gradient() not deterministic: %v vs %v", a, b)
	}
}

func TestHighlightAccepted(t *testing.T) {
	overlay, err := Highlight(twoState(t), "a", DefaultOptions())
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	if !overlay.Accepted {
		t.Error("Accepted = false, want true")
	}
	if len(overlay.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(overlay.Edges))
	}

	e := overlay.Edges[0]
	if e.From != NodeID(fa.Text("q0")) || e.To != NodeID(fa.Text("q1")) {
		t.Errorf("edge = %s -> %s, want q0 -> q1", e.From, e.To)
	}
	if e.Color != AcceptColor {
		t.Errorf("Color = %s, want %s", e.Color, AcceptColor)
	}
	if e.Label != " [#1]\na " {
		t.Errorf("Label = %q", e.Label)
	}
	if e.Step != 1 || e.PenWidth != PathPenWidth {
		t.Errorf("Step = %d, PenWidth = %v", e.Step, e.PenWidth)
	}
	if !overlay.Drawn.Has(fa.Transition{From: fa.Text("q0"), To: fa.Text("q1"), Symbol: "a"}) {
		t.Error("q0 -a-> q1 not recorded as drawn")
	}
}

func TestHighlightRejected(t *testing.T) {
	overlay, err := Highlight(twoState(t), "bb", DefaultOptions())
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	if overlay.Accepted {
		t.Error("Accepted = true, want false")
	}
	if len(overlay.Edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(overlay.Edges))
	}
	if got := overlay.Edges[1].Color; got != RejectColor {
		t.Errorf("last color = %s, want %s", got, RejectColor)
	}
	// The loop is taken twice: one edge per step, one drawn entry.
	if overlay.Edges[0].Color == overlay.Edges[1].Color {
		t.Error("repeated step reused the same color")
	}
	if overlay.Drawn.Len() != 1 {
		t.Errorf("Drawn.Len() = %d, want 1", overlay.Drawn.Len())
	}
}

func TestHighlightEmptyInput(t *testing.T) {
	overlay, err := Highlight(twoState(t), "", DefaultOptions())
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	if len(overlay.Edges) != 0 || overlay.Drawn.Len() != 0 {
		t.Errorf("overlay = %+v, want no edges", overlay)
	}
}

type failingTracer struct{ err error }

func (f failingTracer) TracePath(string) ([]fa.Transition, bool, error) { return nil, false, f.err }

func TestHighlightPropagatesErrors(t *testing.T) {
	sentinel := stderrors.New("tracer exploded")
	_, err := Highlight(failingTracer{err: sentinel}, "x", DefaultOptions())
	if err != sentinel {
		t.Errorf("Highlight() error = %v, want the tracer's error value", err)
	}

	_, err = Highlight(twoState(t), "abc", DefaultOptions())
	var symErr *fa.InvalidSymbolError
	if !stderrors.As(err, &symErr) {
		t.Fatalf("Highlight() error = %v, want *fa.InvalidSymbolError", err)
	}
	if symErr.Symbol != "c" || symErr.Position != 2 {
		t.Errorf("InvalidSymbolError = %+v, want c at 2", symErr)
	}
}

func TestBuildHighlight(t *testing.T) {
	g, err := Build(twoState(t), DefaultOptions().WithInput("a"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	path := g.EdgesOfKind(EdgeKindPath)
	if len(path) != 1 {
		t.Fatalf("path edges = %d, want 1", len(path))
	}
	if path[0].Color != AcceptColor || path[0].Step != 1 {
		t.Errorf("path edge = %+v", path[0])
	}

	q0, q1 := NodeID(fa.Text("q0")), NodeID(fa.Text("q1"))
	for _, e := range g.EdgesOfKind(EdgeKindAggregate) {
		if e.From == q0 && e.To == q1 {
			t.Errorf("aggregated duplicate of highlighted edge: %+v", e)
		}
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
	if g.Trace == nil || !g.Trace.Accepted || g.Trace.Steps != 1 {
		t.Errorf("Trace = %+v", g.Trace)
	}
}

func TestBuildNoColorWithoutSteps(t *testing.T) {
	g, err := Build(twoState(t), DefaultOptions().WithInput(""))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for _, e := range g.Edges {
		if e.Color != "" {
			t.Errorf("edge %s -> %s colored %s for empty input", e.From, e.To, e.Color)
		}
	}
}
