package diagram

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/render"
)

// Backend lays out a graph and encodes it in an output format.
type Backend interface {
	// Available fails with RENDER_UNAVAILABLE when the backend cannot run.
	Available(ctx context.Context) error
	// Render lays out g with g.Engine and returns the encoded artifact.
	Render(ctx context.Context, g *Graph, format Format) ([]byte, error)
}

// GraphvizBackend renders through the Graphviz library compiled to wasm.
// PDF is produced from the SVG rendering with rsvg-convert.
type GraphvizBackend struct{}

var graphvizFormats = map[Format]graphviz.Format{
	FormatSVG: graphviz.SVG,
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
	FormatDOT: graphviz.Format("dot"),
}

// Available initializes and closes a Graphviz context.
func (GraphvizBackend) Available(ctx context.Context) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderUnavailable, err, "graphviz backend unavailable")
	}
	return gv.Close()
}

// Render parses the DOT encoding of g and renders it. SVG output has its
// viewBox normalized so the drawing scales from the origin.
func (b GraphvizBackend) Render(ctx context.Context, g *Graph, format Format) ([]byte, error) {
	if format == FormatPDF {
		svg, err := b.Render(ctx, g, FormatSVG)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	}

	gvFormat, ok := graphvizFormats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(g.DOT()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer parsed.Close()

	engine := g.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	gv.SetLayout(graphviz.Layout(engine))

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s with %s", format, engine)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose width and height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
