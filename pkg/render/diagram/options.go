package diagram

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/fadiagram/pkg/errors"
)

// Default style knobs.
const (
	DefaultFontSize        = 14.0
	DefaultArrowSize       = 0.85
	DefaultStateSeparation = 0.5
	DefaultEngine          = EngineDot
	DefaultFormat          = FormatSVG
)

// Format is an output format understood by the layout backend.
type Format string

// Output formats.
const (
	FormatSVG Format = "svg" // vector image, also used for display payloads
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatDOT Format = "dot" // layout description with computed positions
	FormatPDF Format = "pdf" // SVG converted with rsvg-convert
)

// Formats lists the supported formats in display order.
var Formats = []string{string(FormatSVG), string(FormatPNG), string(FormatJPG), string(FormatDOT), string(FormatPDF)}

var formatAliases = map[string]Format{
	"jpeg": FormatJPG,
	"gv":   FormatDOT,
}

// ParseFormat validates a format name. It accepts the aliases "jpeg" and
// "gv" and ignores case. Unknown names fail with INVALID_FORMAT.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidFormat, "format", s, Formats); err != nil {
		return "", err
	}
	return Format(s), nil
}

var mimeTypes = map[Format]string{
	FormatSVG: MIMESVG,
	FormatPNG: "image/png",
	FormatJPG: "image/jpeg",
	FormatDOT: "text/vnd.graphviz",
	FormatPDF: "application/pdf",
}

// MIMEType returns the media type of artifacts in format f.
func (f Format) MIMEType() string {
	if m, ok := mimeTypes[f]; ok {
		return m
	}
	return "application/octet-stream"
}

// FormatFromPath infers the format from a file extension.
// Paths without an extension use [DefaultFormat].
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return DefaultFormat, nil
	}
	return ParseFormat(ext)
}

// Engine is a Graphviz layout engine name.
type Engine string

// Layout engines.
const (
	EngineDot       Engine = "dot" // hierarchical (default)
	EngineNeato     Engine = "neato"
	EngineFdp       Engine = "fdp"
	EngineSfdp      Engine = "sfdp"
	EngineCirco     Engine = "circo"
	EngineTwopi     Engine = "twopi"
	EngineOsage     Engine = "osage"
	EnginePatchwork Engine = "patchwork"
)

// Engines lists the supported layout engines.
var Engines = []string{
	string(EngineDot), string(EngineNeato), string(EngineFdp), string(EngineSfdp),
	string(EngineCirco), string(EngineTwopi), string(EngineOsage), string(EnginePatchwork),
}

// ParseEngine validates an engine name. The empty string selects
// [DefaultEngine]; unknown names fail with INVALID_ENGINE.
func ParseEngine(s string) (Engine, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultEngine, nil
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidEngine, "engine", s, Engines); err != nil {
		return "", err
	}
	return Engine(s), nil
}

// Size bounds the drawing, in inches.
type Size struct {
	Width  float64
	Height float64
}

// Options configures one render call. Start from [DefaultOptions]; the zero
// value disables horizontal layout and cleanup.
type Options struct {
	// Input, when non-nil, is traced and its path highlighted.
	Input *string

	// Destination is the output file. Empty means no file is written.
	Destination string
	// Format overrides the format inferred from Destination.
	Format string
	// Engine selects the layout engine; empty means [DefaultEngine].
	Engine string
	// View opens the result in the platform viewer.
	View bool
	// Cleanup removes the intermediate DOT source after export.
	Cleanup bool

	// Horizontal lays states out left to right instead of top to bottom.
	Horizontal bool
	// ReverseOrientation flips the layout axis (LR→RL, TB→BT).
	ReverseOrientation bool
	// FigureSize optionally bounds the drawing.
	FigureSize *Size

	FontSize        float64
	ArrowSize       float64
	StateSeparation float64
}

// DefaultOptions returns the documented defaults: horizontal layout,
// cleanup on, font size 14, arrow size 0.85, state separation 0.5.
func DefaultOptions() Options {
	return Options{
		Cleanup:         true,
		Horizontal:      true,
		FontSize:        DefaultFontSize,
		ArrowSize:       DefaultArrowSize,
		StateSeparation: DefaultStateSeparation,
	}
}

// WithInput returns a copy of o that highlights the trace of input.
func (o Options) WithInput(input string) Options {
	o.Input = &input
	return o
}

// withDefaults fills unset numeric knobs.
func (o Options) withDefaults() Options {
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.ArrowSize <= 0 {
		o.ArrowSize = DefaultArrowSize
	}
	if o.StateSeparation <= 0 {
		o.StateSeparation = DefaultStateSeparation
	}
	return o
}

// rankDir maps the orientation flags to a Graphviz rankdir value.
func (o Options) rankDir() string {
	switch {
	case o.Horizontal && o.ReverseOrientation:
		return "RL"
	case o.Horizontal:
		return "LR"
	case o.ReverseOrientation:
		return "BT"
	default:
		return "TB"
	}
}

// outputFormat resolves the export format: an explicit override wins, then
// the destination extension, then [DefaultFormat].
func (o Options) outputFormat() (Format, error) {
	if o.Format != "" {
		return ParseFormat(o.Format)
	}
	if o.Destination != "" {
		return FormatFromPath(o.Destination)
	}
	return DefaultFormat, nil
}
