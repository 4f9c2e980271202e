// Package cli implements the fadiagram command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fadiagram/pkg/buildinfo"
	"github.com/matzehuels/fadiagram/pkg/config"
	"github.com/matzehuels/fadiagram/pkg/observability"
	"github.com/matzehuels/fadiagram/pkg/render/diagram"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "fadiagram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Backend overrides the layout backend. Nil means Graphviz.
	Backend diagram.Backend
	// Viewer overrides how --view opens files. Nil means the platform opener.
	Viewer diagram.Viewer
	// Out receives command output. Nil means stdout.
	Out io.Writer
	// LoadConfig overrides configuration loading. Nil means [config.Load].
	LoadConfig func() (config.Config, error)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fadiagram draws finite automata as Graphviz diagrams",
		Long: `fadiagram draws finite automata as Graphviz state diagrams. Definitions
are read from JSON, YAML or TOML files. An input string can be traced through
a deterministic automaton and its path highlighted with a color gradient.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Renderer Factory
// =============================================================================

// newRenderer creates a diagram renderer for CLI use.
func (c *CLI) newRenderer(backend diagram.Backend, hooks observability.RenderHooks) *diagram.Renderer {
	opts := []diagram.Option{diagram.WithLogger(c.Logger), diagram.WithBackend(backend)}
	if c.Viewer != nil {
		opts = append(opts, diagram.WithViewer(c.Viewer))
	}
	if hooks != nil {
		opts = append(opts, diagram.WithHooks(hooks))
	}
	return diagram.New(opts...)
}

func (c *CLI) backend() diagram.Backend {
	if c.Backend != nil {
		return c.Backend
	}
	return diagram.GraphvizBackend{}
}

func (c *CLI) config() (config.Config, error) {
	if c.LoadConfig != nil {
		return c.LoadConfig()
	}
	return config.Load()
}

func (c *CLI) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}
