package diagram

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
	"github.com/matzehuels/fadiagram/pkg/observability"
	"github.com/matzehuels/fadiagram/pkg/render"
)

// MIMESVG is the only key of a display payload.
const MIMESVG = "image/svg+xml"

// Viewer opens a rendered file for the user.
type Viewer func(path string) error

// Option configures a [Renderer].
type Option func(*Renderer)

// WithBackend replaces the Graphviz backend.
func WithBackend(b Backend) Option { return func(r *Renderer) { r.backend = b } }

// WithLogger sets the logger for debug output. The default discards.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithHooks attaches observability hooks.
func WithHooks(h observability.RenderHooks) Option { return func(r *Renderer) { r.hooks = h } }

// WithViewer replaces the platform viewer used by Options.View.
func WithViewer(v Viewer) Option { return func(r *Renderer) { r.viewer = v } }

// Renderer builds automaton graphs and exports them through a [Backend].
// It holds only configuration, so one Renderer may serve concurrent calls.
type Renderer struct {
	backend Backend
	logger  *log.Logger
	hooks   observability.RenderHooks
	viewer  Viewer
}

// New returns a Renderer using Graphviz, a discard logger, no-op hooks and
// the platform viewer unless overridden.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		backend: GraphvizBackend{},
		hooks:   observability.NoopRenderHooks{},
		viewer:  OpenFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if r.hooks == nil {
		r.hooks = observability.NoopRenderHooks{}
	}
	return r
}

// Result is the outcome of [Renderer.Render].
type Result struct {
	Graph *Graph
	// Path is the written artifact, or the temporary file shown by the
	// viewer. Empty when nothing was written.
	Path   string
	Format Format
	Data   []byte
}

// Render builds the graph of a and exports it as opts request.
//
// The backend capability check runs first, then format and engine
// validation, so neither failure does any graph work. With a Destination
// the artifact is written to <dir>/<stem>.<format>, creating dir as needed,
// and opened in the viewer when View is also set. A Destination ending in a
// path separator is rejected. With View and no Destination an SVG is written to a temporary file and
// opened. Otherwise only the graph is returned and nothing touches the
// backend beyond the capability check.
func (r *Renderer) Render(ctx context.Context, a fa.Automaton, opts Options) (*Result, error) {
	writes := opts.Destination != "" || opts.View
	g, format, err := r.prepare(ctx, a, opts, writes)
	if err != nil {
		return nil, err
	}

	res := &Result{Graph: g, Format: format}
	switch {
	case opts.Destination != "":
		if err := r.export(ctx, g, format, opts, res); err != nil {
			return nil, err
		}
		if opts.View {
			r.logger.Debug("opening viewer", "path", res.Path)
			if err := r.viewer(res.Path); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "open viewer")
			}
		}
	case opts.View:
		if err := r.view(ctx, g, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Encode builds the graph of a and encodes it in the requested format in
// memory. Destination and View are ignored. The backend is checked once.
func (r *Renderer) Encode(ctx context.Context, a fa.Automaton, opts Options) (*Result, error) {
	opts.Destination = ""
	opts.View = false
	g, format, err := r.prepare(ctx, a, opts, true)
	if err != nil {
		return nil, err
	}
	data, err := r.encode(ctx, g, format)
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Format: format, Data: data}, nil
}

// prepare runs the capability and option checks, then builds the graph.
// The PDF converter is only required when encodes is set.
func (r *Renderer) prepare(ctx context.Context, a fa.Automaton, opts Options, encodes bool) (*Graph, Format, error) {
	if err := r.backend.Available(ctx); err != nil {
		return nil, "", err
	}

	format, err := opts.outputFormat()
	if err != nil {
		return nil, "", err
	}
	if opts.Destination == "" && opts.View {
		if opts.Format != "" && format != FormatSVG {
			r.logger.Debug("view renders svg", "requested", format)
		}
		format = FormatSVG
	}
	if _, err := ParseEngine(opts.Engine); err != nil {
		return nil, "", err
	}
	if d := opts.Destination; d != "" && os.IsPathSeparator(d[len(d)-1]) {
		return nil, "", errors.New(errors.ErrCodeInvalidPath, "destination %q names a directory, not a file", opts.Destination)
	}
	if format == FormatPDF && encodes {
		if err := render.PDFAvailable(); err != nil {
			return nil, "", err
		}
	}

	start := time.Now()
	overlay, g, err := build(a, opts)
	if opts.Input != nil {
		if overlay != nil {
			r.hooks.OnTrace(ctx, len(overlay.Edges), overlay.Accepted, nil)
		} else {
			r.hooks.OnTrace(ctx, 0, false, err)
		}
	}
	if err != nil {
		return nil, "", err
	}
	r.hooks.OnBuild(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start))
	r.logger.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "engine", g.Engine)
	return g, format, nil
}

func (r *Renderer) encode(ctx context.Context, g *Graph, format Format) ([]byte, error) {
	start := time.Now()
	data, err := r.backend.Render(ctx, g, format)
	r.hooks.OnExport(ctx, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("rendered", "format", format, "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}

func (r *Renderer) export(ctx context.Context, g *Graph, format Format, opts Options, res *Result) error {
	dir := filepath.Dir(opts.Destination)
	base := filepath.Base(opts.Destination)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return errors.New(errors.ErrCodeInvalidPath, "destination %q has no file name", opts.Destination)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}

	data, err := r.encode(ctx, g, format)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, stem+"."+string(format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	r.logger.Debug("wrote artifact", "path", path)

	if !opts.Cleanup {
		source := filepath.Join(dir, stem)
		if err := os.WriteFile(source, []byte(g.DOT()), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", source)
		}
		r.logger.Debug("kept dot source", "path", source)
	}

	res.Path = path
	res.Data = data
	return nil
}

func (r *Renderer) view(ctx context.Context, g *Graph, res *Result) error {
	data, err := r.encode(ctx, g, FormatSVG)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "fadiagram-*.svg")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create temporary file")
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", f.Name())
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "close %s", f.Name())
	}

	r.logger.Debug("opening viewer", "path", f.Name())
	if err := r.viewer(f.Name()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open viewer")
	}
	res.Path = f.Name()
	res.Data = data
	return nil
}

// DisplayPayload renders g as SVG for rich display front-ends.
//
// The result always has exactly one entry, keyed by [MIMESVG]. include and
// exclude are accepted for front-end compatibility and ignored.
func (r *Renderer) DisplayPayload(ctx context.Context, g *Graph, include, exclude []string) (map[string][]byte, error) {
	if err := r.backend.Available(ctx); err != nil {
		return nil, err
	}
	svg, err := r.encode(ctx, g, FormatSVG)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{MIMESVG: svg}, nil
}

// OpenFile opens path with the platform's default application.
func OpenFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
