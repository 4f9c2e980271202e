// Package pkg provides the libraries behind fadiagram, a renderer for
// finite-automaton state diagrams.
//
// # Overview
//
// fadiagram turns the states and transitions of a finite automaton into a
// Graphviz diagram. Accepting states are drawn as double circles, every
// initial state gets an arrow from an unlabeled entry point, and the path an
// input string takes can be highlighted with a yellow-to-green (accepted) or
// yellow-to-red (rejected) gradient.
//
// # Architecture
//
// The typical data flow:
//
//	Definition file (JSON, YAML, TOML)
//	         ↓
//	    [io] package (decode into a definition, build a machine)
//	         ↓
//	    [fa] package (automaton contract, state identifiers, labels)
//	         ↓
//	    [render/diagram] package (build graph, highlight, aggregate, export)
//	         ↓
//	    SVG/PNG/JPG/DOT/PDF output
//
// # Quick Start
//
//	import (
//	    "context"
//	    fio "github.com/matzehuels/fadiagram/pkg/io"
//	    "github.com/matzehuels/fadiagram/pkg/render/diagram"
//	)
//
//	m, _ := fio.ImportMachine("dfa.yaml")
//	opts := diagram.DefaultOptions().WithInput("0110")
//	opts.Destination = "out/dfa.svg"
//	res, _ := diagram.New().Render(context.Background(), m, opts)
//	fmt.Println(res.Path) // out/dfa.svg
//
// # Main Packages
//
// [fa] - State identifiers (atomic, tuple, list, set), the label formatter,
// the Automaton and Tracer contracts, and a table-driven [fa.Machine].
//
// [render/diagram] - Graph builder with entry markers, path highlighter,
// edge aggregator, DOT encoding, and the Renderer with its pluggable
// Backend. [diagram.CachedBackend] serves repeated renders from a cache.
//
// [render] - SVG to PDF conversion through rsvg-convert.
//
// [io] - Definition import and export in JSON, YAML and TOML.
//
// [cache] - Artifact caches: null, file and Redis.
//
// [config] - The optional TOML configuration file.
//
// [server] - HTTP handler rendering posted definitions.
//
// [observability] - Render hooks with a Prometheus implementation.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./...            # All tests
//	go test ./pkg/fa/...     # Specific package
//	go test -run Example     # Examples only
//
// Renderer tests use a fake Backend, so Graphviz is only needed by the
// examples that render for real.
//
// [fa]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/fa
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/render/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/fadiagram/pkg/errors
package pkg
