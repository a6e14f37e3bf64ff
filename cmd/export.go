package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minjae-dev/asset-management/internal/assignment"
	assignmentPostgres "github.com/minjae-dev/asset-management/internal/assignment/postgres"
	"github.com/minjae-dev/asset-management/internal/audit"
	auditPostgres "github.com/minjae-dev/asset-management/internal/audit/postgres"
	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/internal/export"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assignments to a file",
	Long:  `Export the assignment collection to an xlsx workbook or csv file without going through the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExport()
	},
}

var (
	exportFormat  string
	exportOut     string
	exportStatus  []string
	exportSearch  string
	exportDetails bool
)

func runExport() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := initGormDB(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus(log)
	auditService := audit.NewService(auditPostgres.NewAuditRepository(gormDB), log)
	audit.NewEventHandler(auditService, log).RegisterEventHandlers(eventBus)
	defer eventBus.Drain()

	assignmentService := assignment.NewService(assignmentPostgres.NewAssignmentRepository(gormDB), eventBus, log)
	exportService := export.NewService(assignmentService, eventBus, log)

	query := assignment.ListQuery{
		Search: exportSearch,
	}
	for _, s := range exportStatus {
		query.Filters.Statuses = append(query.Filters.Statuses, assignment.Status(s))
	}

	opts := export.Options{
		Format:                 exportFormat,
		IncludeEmployeeDetails: exportDetails,
		IncludeAssetDetails:    exportDetails,
		IncludeStatistics:      exportDetails,
	}

	result, err := exportService.Export("cli", query, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	out := exportOut
	if out == "" {
		out = result.FileName
	} else if filepath.Ext(out) == "" {
		out = out + "." + opts.Format
	}

	if err := os.WriteFile(out, result.Content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bytes to %s\n", len(result.Content), out)
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatXLSX, "Output format (xlsx or csv)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (defaults to the generated file name)")
	exportCmd.Flags().StringSliceVar(&exportStatus, "status", nil, "Filter by status, repeatable (in_use, returned, pending, overdue, lost, damaged)")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "Search term applied before exporting")
	exportCmd.Flags().BoolVar(&exportDetails, "details", false, "Include employee, asset and statistics sheets")

	rootCmd.AddCommand(exportCmd)
}
