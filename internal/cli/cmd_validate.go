package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/World-Meteorological-Organization/cap2geojson/internal/schema"
	"github.com/spf13/cobra"
)

func newValidateCmd(out io.Writer) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a GeoJSON document against the FeatureCollection schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(out, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "GeoJSON file to validate")

	return cmd
}

func runValidate(out io.Writer, file string) error {
	if file == "" {
		return errors.New("--file is required")
	}

	doc, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read GeoJSON document: %w", err)
	}

	issues, err := schema.Validate(doc)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintln(out, issue)
		}
		return fmt.Errorf("document is invalid: %d issue(s)", len(issues))
	}

	fmt.Fprintln(out, "document is valid")
	return nil
}
