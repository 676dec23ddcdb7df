// Package cli assembles the cap2geojson command tree.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// Run executes the root command with the given arguments.
func Run(out, stderr io.Writer, args []string) error {
	cmd := RootCommand(out, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// RootCommand builds the cap2geojson command tree. Output writers are
// injected so tests can capture command output.
func RootCommand(out, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cap2geojson",
		Short:         "Convert CAP alert XML documents to GeoJSON",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(out)
	cmd.SetErr(stderr)

	cmd.AddCommand(newTransformCmd(out))
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newPipelineCmd())
	cmd.AddCommand(newValidateCmd(out))
	cmd.AddCommand(newVersionCmd(out))

	return cmd
}
