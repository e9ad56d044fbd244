package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"carbon-scribe/project-portal/boundary-importer/internal/boundaries"
	"carbon-scribe/project-portal/boundary-importer/internal/cli"
	"carbon-scribe/project-portal/boundary-importer/internal/config"
	"carbon-scribe/project-portal/boundary-importer/internal/logging"
	"carbon-scribe/project-portal/boundary-importer/pkg/shapefile"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.LoadConfig(os.Getenv("BOUNDARY_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	logger, err := logging.New(config.LoggingConfig{Level: "error", Format: cfg.Logging.Format})
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	service := boundaries.NewService(shapefile.NewDecoder(), nil, logger)
	if err := cli.Execute(service, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
