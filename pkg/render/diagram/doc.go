// Package diagram draws finite automata as Graphviz graphs.
//
// # Overview
//
// Rendering happens in two stages. [Build] turns any [fa.Automaton] into a
// declarative [Graph]; a [Renderer] then lays the graph out with a
// [Backend] and writes or displays the result.
//
//	g, err := diagram.Build(machine, diagram.DefaultOptions())
//	fmt.Print(g.DOT())
//
// A graph contains:
//
//   - one node per state, drawn as a double circle when accepting
//   - one unlabeled point per initial state with an arrow into it
//   - the highlighted trace of Options.Input, when set
//   - one edge per remaining (from, to) pair carrying all its symbols
//
// # Path Highlighting
//
// When an input is given, the automaton must implement [fa.Tracer]. Each
// step of the trace becomes its own edge labeled with the step number and
// colored along a yellow-to-green gradient for accepted input or
// yellow-to-red for rejected input (see [Gradient]). Transitions drawn this
// way are left out of the aggregated edges.
//
// # Export
//
// [Renderer.Render] checks the backend first and validates the format and
// engine before any graph work:
//
//	r := diagram.New(diagram.WithLogger(logger))
//	opts := diagram.DefaultOptions().WithInput("0110")
//	opts.Destination = "out/even.svg"
//	res, err := r.Render(ctx, machine, opts)
//
// Formats are svg, png, jpg, dot (also gv) and pdf, inferred from the
// destination extension unless Options.Format overrides it. Setting View
// as well opens the written file. [Renderer.Encode] returns the artifact
// bytes without touching the filesystem. [Renderer.DisplayPayload] produces the SVG-only payload used by rich
// display front-ends.
package diagram
