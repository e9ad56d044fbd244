package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"carbon-scribe/project-portal/boundary-importer/internal/boundaries"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a boundary file and print its geometry",
	Long: `Reads a .geojson, .json, .kml or zipped shapefile (.zip) and prints the
accepted Polygon or MultiPolygon as JSON. Exits non-zero when the import fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List accepted file extensions",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(formatsCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	outcome := importService.Import(cmd.Context(), boundaries.RawFile{
		Name:    filepath.Base(path),
		Content: f,
	})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(boundaries.NewImportResponse(uuid.New(), outcome)); err != nil {
		return err
	}

	if !outcome.Succeeded() {
		return outcome.Err
	}
	return nil
}

func runFormats(cmd *cobra.Command, args []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(boundaries.SupportedExtensions(), " "))
	return err
}
