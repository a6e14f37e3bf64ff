package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minjae-dev/asset-management/internal/assignment"
	assignmentPostgres "github.com/minjae-dev/asset-management/internal/assignment/postgres"
	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/internal/report"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the utilization report",
	Long:  `Render the asset utilization report as a standalone HTML page with embedded charts.`,
	Run: func(cmd *cobra.Command, args []string) {
		runReport()
	},
}

var reportOut string

func runReport() {
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

	// Reports only read, so no audit wiring here.
	eventBus := events.NewEventBus(log)
	assignmentService := assignment.NewService(assignmentPostgres.NewAssignmentRepository(gormDB), eventBus, log)
	reportService := report.NewService(assignmentService, log)

	result, err := reportService.Utilization(assignment.ListQuery{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Report rendering failed: %v\n", err)
		os.Exit(1)
	}

	out := reportOut
	if out == "" {
		out = result.FileName
	}

	if err := os.WriteFile(out, result.Content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Report written to %s\n", out)
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output file path (defaults to "+report.FileName+")")

	rootCmd.AddCommand(reportCmd)
}
