package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
)

const evenZerosJSON = `{
  "name": "even-zeros",
  "states": ["even", "odd"],
  "initial": "even",
  "accepting": ["even"],
  "transitions": [
    {"from": "even", "to": "odd", "symbol": "0"},
    {"from": "even", "to": "even", "symbol": "1"},
    {"from": "odd", "to": "even", "symbol": "0"},
    {"from": "odd", "to": "odd", "symbol": "1"}
  ]
}`

const evenZerosYAML = `name: even-zeros
states: [even, odd]
initial: even
accepting: [even]
transitions:
  - {from: even, to: odd, symbol: 0}
  - {from: even, to: even, symbol: 1}
  - {from: odd, to: even, symbol: 0}
  - {from: odd, to: odd, symbol: 1}
`

const evenZerosTOML = `name = "even-zeros"
states = ["even", "odd"]
initial = "even"
accepting = ["even"]

[[transitions]]
from = "even"
to = "odd"
symbol = "0"

[[transitions]]
from = "even"
to = "even"
symbol = "1"

[[transitions]]
from = "odd"
to = "even"
symbol = "0"

[[transitions]]
from = "odd"
to = "odd"
symbol = "1"
`

func TestReadEncodings(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		doc  string
	}{
		{"json", JSON, evenZerosJSON},
		{"yaml", YAML, evenZerosYAML},
		{"toml", TOML, evenZerosTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Read(strings.NewReader(tt.doc), tt.enc)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if def.Name != "even-zeros" {
				t.Errorf("Name = %q", def.Name)
			}
			m, err := def.Machine()
			if err != nil {
				t.Fatalf("Machine() error: %v", err)
			}
			if m.NumStates() != 2 || m.NumTransitions() != 4 {
				t.Errorf("machine has %d states, %d transitions", m.NumStates(), m.NumTransitions())
			}
			_, accepted, err := m.TracePath("0110")
			if err != nil || !accepted {
				t.Errorf("TracePath(0110) = %v, %v, want accepted", accepted, err)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		doc  string
		want errors.Code
	}{
		{"malformed json", JSON, `{"states": [`, errors.ErrCodeInvalidDefinition},
		{"unknown key", JSON, `{"states": ["a"], "initial": "a", "colour": "red"}`, errors.ErrCodeInvalidDefinition},
		{"unknown transition key", YAML, "transitions:\n  - {from: a, to: b, via: c}\n", errors.ErrCodeInvalidDefinition},
		{"bad encoding", Encoding("xml"), "<fa/>", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc), tt.enc)
			if !errors.Is(err, tt.want) {
				t.Errorf("Read() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want fa.ID
	}{
		{"text", "q0", fa.Text("q0")},
		{"int", 3, fa.Atom(int64(3))},
		{"integral float", 3.0, fa.Atom(int64(3))},
		{"float", 2.5, fa.Atom(2.5)},
		{"bool", true, fa.Atom(true)},
		{"tuple", []any{"q0", "p1"}, fa.TupleOf(fa.Text("q0"), fa.Text("p1"))},
		{"explicit tuple", map[string]any{"tuple": []any{"a"}}, fa.TupleOf(fa.Text("a"))},
		{"list", map[string]any{"list": []any{"a", "b"}}, fa.ListOf(fa.Text("a"), fa.Text("b"))},
		{"set", map[string]any{"set": []any{"b", "a", "a"}}, fa.SetOf(fa.Text("a"), fa.Text("b"))},
		{"empty set", map[string]any{"set": []any{}}, fa.SetOf()},
		{"yaml map", map[any]any{"set": []any{"a"}}, fa.SetOf(fa.Text("a"))},
		{"nested", []any{map[string]any{"set": []any{"q0"}}, 1}, fa.TupleOf(fa.SetOf(fa.Text("q0")), fa.Atom(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if err != nil {
				t.Fatalf("ParseID() error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseID() = %s (%s), want %s (%s)", got, got.Key(), tt.want, tt.want.Key())
			}
		})
	}
}

func TestParseIDErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"two keys", map[string]any{"set": []any{}, "list": []any{}}},
		{"unknown kind", map[string]any{"bag": []any{"a"}}},
		{"members not array", map[string]any{"set": "a"}},
		{"unsupported type", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseID(tt.in); !errors.Is(err, errors.ErrCodeInvalidDefinition) {
				t.Errorf("ParseID() error = %v, want %s", err, errors.ErrCodeInvalidDefinition)
			}
		})
	}
}

func TestEncodeIDRoundTrip(t *testing.T) {
	ids := []fa.ID{
		fa.Text("q0"),
		fa.Atom(7),
		fa.TupleOf(fa.Text("a"), fa.Atom(1)),
		fa.ListOf(fa.Text("x"), fa.Text("y")),
		fa.SetOf(fa.Text("q1"), fa.Text("q0")),
		fa.SetOf(),
		fa.TupleOf(fa.SetOf(fa.Text("q0")), fa.ListOf()),
	}
	for _, id := range ids {
		t.Run(id.String(), func(t *testing.T) {
			got, err := ParseID(EncodeID(id))
			if err != nil {
				t.Fatalf("ParseID(EncodeID()) error: %v", err)
			}
			if !got.Equal(id) {
				t.Errorf("round trip = %s, want %s", got, id)
			}
		})
	}
}

func TestCompositeStatesYAML(t *testing.T) {
	doc := `states:
  - {set: []}
  - {set: [q0]}
  - {set: [q0, q1]}
initial: {set: [q0]}
accepting:
  - {set: [q0, q1]}
transitions:
  - {from: {set: [q0]}, to: {set: [q0, q1]}, symbol: a}
  - {from: {set: [q0]}, to: {set: []}, symbol: b}
`
	def, err := Read(strings.NewReader(doc), YAML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	m, err := def.Machine()
	if err != nil {
		t.Fatalf("Machine() error: %v", err)
	}
	if !m.IsAccepting(fa.SetOf(fa.Text("q1"), fa.Text("q0"))) {
		t.Error("{q0, q1} not accepting")
	}
	if !m.IsInitial(fa.SetOf(fa.Text("q0"))) {
		t.Error("{q0} not initial")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	def, err := Read(strings.NewReader(evenZerosJSON), JSON)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	m, err := def.Machine()
	if err != nil {
		t.Fatalf("Machine() error: %v", err)
	}

	for _, enc := range []Encoding{JSON, YAML, TOML} {
		t.Run(string(enc), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(FromMachine(m, "even-zeros"), &buf, enc); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			back, err := Read(&buf, enc)
			if err != nil {
				t.Fatalf("Read() error: %v\n%s", err, buf.String())
			}
			m2, err := back.Machine()
			if err != nil {
				t.Fatalf("Machine() error: %v", err)
			}
			if m2.NumStates() != m.NumStates() || m2.NumTransitions() != m.NumTransitions() {
				t.Errorf("round trip changed the machine: %d/%d states, %d/%d transitions",
					m2.NumStates(), m.NumStates(), m2.NumTransitions(), m.NumTransitions())
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "even.yml")
	if err := os.WriteFile(src, []byte(evenZerosYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ImportMachine(src)
	if err != nil {
		t.Fatalf("ImportMachine() error: %v", err)
	}

	dst := filepath.Join(dir, "even.json")
	if err := Export(FromMachine(m, "even-zeros"), dst); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	def, err := Import(dst)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(def.States) != 2 || def.Initial != "even" {
		t.Errorf("imported = %+v", def)
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := Import(filepath.Join(dir, "even.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(.txt) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"", JSON},
		{"application/json", JSON},
		{"application/json; charset=utf-8", JSON},
		{"application/yaml", YAML},
		{"application/x-yaml", YAML},
		{"text/yaml", YAML},
		{"application/toml", TOML},
		{"toml", TOML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEncoding(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseEncoding(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
	if _, err := ParseEncoding("text/html"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseEncoding(text/html) error = %v", err)
	}
}
