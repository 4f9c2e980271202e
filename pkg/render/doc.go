// Package render provides output rendering for automaton diagrams.
//
// # Overview
//
// This package contains the pieces of the rendering pipeline that are
// independent of any particular diagram:
//
//   - Generic format conversion (SVG to PDF)
//   - Automaton state diagrams (in [diagram] subpackage)
//
// # Format Conversion
//
// The Graphviz build used by the diagram renderer emits SVG, PNG, JPG and
// DOT. PDF output is produced by converting SVG with the external
// rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//
// [PDFAvailable] reports a RENDER_UNAVAILABLE error when the tool is
// missing, so callers can fail before doing any layout work.
//
// # State Diagrams
//
// The [diagram] subpackage turns a finite automaton into a Graphviz graph,
// optionally highlighting the path an input string takes:
//
//	r := diagram.New()
//	res, err := r.Render(ctx, machine, diagram.DefaultOptions().WithInput("abba"))
//
// [diagram]: github.com/matzehuels/fadiagram/pkg/render/diagram
package render
