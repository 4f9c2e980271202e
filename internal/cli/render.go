package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fadiagram/pkg/errors"
	fio "github.com/matzehuels/fadiagram/pkg/io"
	"github.com/matzehuels/fadiagram/pkg/render/diagram"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output          string  // output file; empty prints DOT unless --view
	format          string  // overrides the output extension
	input           string  // string to trace
	engine          string  // Graphviz layout engine
	vertical        bool    // lay out top to bottom
	reverse         bool    // flip the layout axis
	size            string  // "width,height" in inches
	fontSize        float64 // label font size
	arrowSize       float64 // arrowhead scale
	stateSeparation float64 // rank separation in inches
	noCleanup       bool    // keep the DOT source next to the artifact
	view            bool    // open the result
}

// renderCommand creates the render command for drawing a definition.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <definition>",
		Short: "Render an automaton definition as a state diagram",
		Long: `Render an automaton definition as a state diagram.

Without --output or --view the DOT source is printed. The output format is
taken from --format, then the --output extension, then svg. Defaults are read
from the configuration file and overridden by explicit flags.`,
		Example: `  fadiagram render dfa.yaml -o out/dfa.svg
  fadiagram render dfa.json --input 0110 --view
  fadiagram render dfa.toml --vertical --engine circo > dfa.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			ropts, err := opts.apply(cmd, cfg.Options())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], ropts)
		},
	}

	defaults := diagram.DefaultOptions()
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(diagram.Formats, ", "))
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input string to trace and highlight")
	cmd.Flags().StringVar(&opts.engine, "engine", "", "layout engine: "+strings.Join(diagram.Engines, ", "))
	cmd.Flags().BoolVar(&opts.vertical, "vertical", false, "lay out top to bottom")
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "reverse the layout direction")
	cmd.Flags().StringVar(&opts.size, "size", "", `bound the drawing, "width,height" in inches`)
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", defaults.FontSize, "label font size")
	cmd.Flags().Float64Var(&opts.arrowSize, "arrow-size", defaults.ArrowSize, "arrowhead size")
	cmd.Flags().Float64Var(&opts.stateSeparation, "state-separation", defaults.StateSeparation, "rank separation in inches")
	cmd.Flags().BoolVar(&opts.noCleanup, "no-cleanup", false, "keep the DOT source next to the output")
	cmd.Flags().BoolVar(&opts.view, "view", false, "open the result in the default viewer")

	return cmd
}

// apply overrides base with the flags the user set explicitly.
func (o *renderOpts) apply(cmd *cobra.Command, base diagram.Options) (diagram.Options, error) {
	opts := base
	flags := cmd.Flags()

	opts.Destination = o.output
	opts.Format = o.format
	opts.View = o.view
	if flags.Changed("input") {
		if err := errors.ValidateInputText(o.input); err != nil {
			return opts, err
		}
		opts = opts.WithInput(o.input)
	}
	if flags.Changed("engine") {
		opts.Engine = o.engine
	}
	if flags.Changed("vertical") {
		opts.Horizontal = !o.vertical
	}
	if flags.Changed("reverse") {
		opts.ReverseOrientation = o.reverse
	}
	if flags.Changed("size") {
		size, err := parseSize(o.size)
		if err != nil {
			return opts, err
		}
		opts.FigureSize = &size
	}
	if flags.Changed("font-size") {
		opts.FontSize = o.fontSize
	}
	if flags.Changed("arrow-size") {
		opts.ArrowSize = o.arrowSize
	}
	if flags.Changed("state-separation") {
		opts.StateSeparation = o.stateSeparation
	}
	if flags.Changed("no-cleanup") {
		opts.Cleanup = !o.noCleanup
	}
	return opts, nil
}

// parseSize parses "width,height" into a positive figure size.
func parseSize(s string) (diagram.Size, error) {
	w, h, ok := strings.Cut(s, ",")
	if !ok {
		return diagram.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q: want width,height", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil || width <= 0 {
		return diagram.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q: invalid width", s)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil || height <= 0 {
		return diagram.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q: invalid height", s)
	}
	return diagram.Size{Width: width, Height: height}, nil
}

// runRender loads the definition at path and renders it as opts request.
func (c *CLI) runRender(ctx context.Context, path string, opts diagram.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := fio.ImportMachine(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded definition", "path", path, "states", m.NumStates(), "transitions", m.NumTransitions())

	res, err := c.newRenderer(c.backend(), logHooks{logger}).Render(ctx, m, opts)
	if err != nil {
		return err
	}

	out := c.out()
	switch {
	case opts.Destination != "":
		prog.done(fmt.Sprintf("Rendered %s", res.Path))
		printFile(out, res.Path)
	case opts.View:
		prog.done(fmt.Sprintf("Opened %s", res.Path))
	default:
		if _, err := io.WriteString(out, res.Graph.DOT()); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write dot")
		}
	}
	if t := res.Graph.Trace; t != nil {
		logger.Info("Traced input", "input", t.Input, "steps", t.Steps, "accepted", t.Accepted)
	}
	return nil
}

// logHooks reports render stages at debug level.
type logHooks struct{ logger *log.Logger }

func (h logHooks) OnBuild(_ context.Context, nodes, edges int, d time.Duration) {
	h.logger.Debug("build", "nodes", nodes, "edges", edges, "elapsed", d)
}

func (h logHooks) OnTrace(_ context.Context, steps int, accepted bool, err error) {
	if err != nil {
		h.logger.Debug("trace failed", "err", err)
		return
	}
	h.logger.Debug("trace", "steps", steps, "accepted", accepted)
}

func (h logHooks) OnExport(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("export", "format", format, "bytes", size, "elapsed", d, "err", err)
}
