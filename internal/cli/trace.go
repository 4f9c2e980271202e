package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
	fio "github.com/matzehuels/fadiagram/pkg/io"
)

// traceCommand creates the trace command, which prints the path an input
// takes through a deterministic automaton without drawing it.
func (c *CLI) traceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trace <definition> <input>",
		Short: "Print the path an input string takes through an automaton",
		Example: `  fadiagram trace dfa.yaml 0110
  fadiagram trace dfa.yaml ""`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], args[1])
		},
	}
}

func (c *CLI) runTrace(ctx context.Context, path, input string) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateInputText(input); err != nil {
		return err
	}
	m, err := fio.ImportMachine(path)
	if err != nil {
		return err
	}
	steps, accepted, err := m.TracePath(input)
	if err != nil {
		return err
	}
	logger.Debug("traced", "input", input, "steps", len(steps))

	out := c.out()
	printKeyValue(out, "input", fa.FormatSymbol(fa.Symbol(input)))
	printKeyValue(out, "start", fa.FormatState(m.Initial()))
	if len(steps) == 0 {
		printInfo(out, "no transitions taken")
	}
	for i, t := range steps {
		printStep(out, i+1, fa.FormatState(t.From), fa.FormatSymbol(t.Symbol), fa.FormatState(t.To))
	}

	if accepted {
		printSuccess(out, "accepted")
	} else {
		printError(out, "rejected")
	}
	return nil
}
