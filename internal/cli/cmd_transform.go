package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	cap2geojson "github.com/World-Meteorological-Organization/cap2geojson"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTransformCmd(out io.Writer) *cobra.Command {
	var (
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Convert a CAP alert XML document to a GeoJSON FeatureCollection",
		Long: `Convert a CAP alert XML document to a GeoJSON FeatureCollection.
Reads the document from the given file, or from stdin when the argument is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(out, cmd.InOrStdin(), args[0], outputPath, format)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")

	return cmd
}

func runTransform(out io.Writer, stdin io.Reader, path, outputPath, format string) error {
	var (
		doc []byte
		err error
	)
	if path == "-" {
		doc, err = io.ReadAll(stdin)
	} else {
		doc, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read CAP document: %w", err)
	}

	fc, err := cap2geojson.ToGeoJSON(doc)
	if err != nil {
		return err
	}

	var rendered []byte
	switch format {
	case "json":
		rendered, err = json.MarshalIndent(fc, "", "  ")
		rendered = append(rendered, '\n')
	case "yaml":
		rendered, err = yaml.Marshal(fc)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("serialize result: %w", err)
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, rendered, 0o644)
	}
	_, err = out.Write(rendered)
	return err
}
