package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	assignmentPostgres "github.com/minjae-dev/asset-management/internal/assignment/postgres"
	"github.com/minjae-dev/asset-management/internal/asset"
	assetPostgres "github.com/minjae-dev/asset-management/internal/asset/postgres"
	"github.com/minjae-dev/asset-management/internal/audit"
	auditPostgres "github.com/minjae-dev/asset-management/internal/audit/postgres"
	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/internal/employee"
	employeePostgres "github.com/minjae-dev/asset-management/internal/employee/postgres"
	"github.com/minjae-dev/asset-management/internal/importer"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import assignments from a CSV file",
	Long:  `Validate and import assignment rows from a CSV file. The whole file is rejected when any row fails validation.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(args[0])
	},
}

func runImport(path string) {
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

	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), log)
	assetService := asset.NewService(assetPostgres.NewAssetRepository(gormDB), log)

	validator := importer.NewValidator(employeeService, assetService,
		importer.ValidatorConfig{MaxWorkers: cfg.Importer.WorkerCount}, log)
	defer validator.Shutdown()

	importService := importer.NewService(
		assignmentPostgres.NewAssignmentRepository(gormDB), validator, eventBus, cfg.Importer.MaxRows, log)

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	summary, err := importService.Import("cli", filepath.Base(path), file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d assignments from %s\n", summary.RowCount, summary.FileName)
	for _, id := range summary.AssignmentIDs {
		fmt.Println("  ", id)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
