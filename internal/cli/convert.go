package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/fadiagram/pkg/io"
)

// convertCommand creates the convert command, which rewrites a definition
// in another encoding. Both encodings are chosen by file extension.
func (c *CLI) convertCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "convert <source> <destination>",
		Short:   "Convert a definition between JSON, YAML and TOML",
		Example: `  fadiagram convert dfa.json dfa.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], args[1], name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "override the definition name")
	return cmd
}

// runConvert validates the source by building its machine, so a converted
// file is always loadable.
func (c *CLI) runConvert(ctx context.Context, src, dst, name string) error {
	prog := newProgress(loggerFromContext(ctx))

	def, err := fio.Import(src)
	if err != nil {
		return err
	}
	m, err := def.Machine()
	if err != nil {
		return err
	}
	if name == "" {
		name = def.Name
	}
	if err := fio.Export(fio.FromMachine(m, name), dst); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Converted %s", src))
	printFile(c.out(), dst)
	return nil
}
