// Package cli implements the boundaryctl command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"carbon-scribe/project-portal/boundary-importer/internal/boundaries"
)

// importService is injected by Execute.
var importService boundaries.Service

var rootCmd = &cobra.Command{
	Use:           "boundaryctl",
	Short:         "Import field boundaries from GeoJSON, KML or zipped shapefiles",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given import service and arguments.
func Execute(service boundaries.Service, args []string) error {
	importService = service
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
