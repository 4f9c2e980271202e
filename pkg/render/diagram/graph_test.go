package diagram

import (
	"strings"
	"testing"

	"github.com/matzehuels/fadiagram/pkg/fa"
)

func TestGraphDOT(t *testing.T) {
	g, err := Build(twoState(t), DefaultOptions().WithInput("a"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	dot := g.DOT()

	wantContains := []string{
		"digraph G {",
		"rankdir=LR;",
		"ranksep=0.5;",
		`[label="q1", shape=doublecircle, tooltip="q1", fontsize=14];`,
		`[label="q0", shape=circle, tooltip="q0", fontsize=14];`,
		`[label="", shape=point, tooltip=".", fontsize=14];`,
		`label=" [#1]\na "`,
		`color="#00ff00"`,
		"penwidth=2.5",
		"arrowsize=0.85",
	}
	for _, want := range wantContains {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "\n  size=") {
		t.Errorf("DOT has size without a figure size:\n%s", dot)
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT not closed:\n%s", dot)
	}
}

func TestGraphDOTStable(t *testing.T) {
	g, err := Build(twoState(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.DOT() != g.DOT() {
		t.Error("DOT() differs between calls on the same graph")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"q0", `"q0"`},
		{"", `""`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"one\ntwo", `"one\ntwo"`},
		{"crlf\r\n", `"crlf\n"`},
		{fa.EmptySetGlyph, `"∅"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestGraphQueries(t *testing.T) {
	g, err := Build(twoState(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) found a node")
	}
	if got := len(g.EdgesOfKind(EdgeKindPath)); got != 0 {
		t.Errorf("path edges = %d, want 0", got)
	}
	if got := g.String(); !strings.Contains(got, "3 nodes") {
		t.Errorf("String() = %q", got)
	}
}
