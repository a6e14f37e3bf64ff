package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/asset"
	assetPostgres "github.com/minjae-dev/asset-management/internal/asset/postgres"
	"github.com/minjae-dev/asset-management/internal/assignment"
	assignmentPostgres "github.com/minjae-dev/asset-management/internal/assignment/postgres"
	"github.com/minjae-dev/asset-management/internal/audit"
	auditPostgres "github.com/minjae-dev/asset-management/internal/audit/postgres"
	"github.com/minjae-dev/asset-management/internal/auth"
	authPostgres "github.com/minjae-dev/asset-management/internal/auth/postgres"
	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/internal/employee"
	employeePostgres "github.com/minjae-dev/asset-management/internal/employee/postgres"
	"github.com/minjae-dev/asset-management/internal/export"
	"github.com/minjae-dev/asset-management/internal/importer"
	"github.com/minjae-dev/asset-management/internal/report"
	"github.com/minjae-dev/asset-management/internal/transport/rest"
	"github.com/minjae-dev/asset-management/internal/user"
	userPostgres "github.com/minjae-dev/asset-management/internal/user/postgres"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	GormDB          *gorm.DB
	Router          *chi.Mux
	Logger          *slog.Logger
	EventBus        *events.EventBus
	ImportValidator *importer.Validator

	AuthHandler       *auth.Handler
	AuthService       *auth.Service
	UserHandler       *user.Handler
	AssignmentHandler *assignment.Handler
	AssetHandler      *asset.Handler
	EmployeeHandler   *employee.Handler
	ExportHandler     *export.Handler
	ImportHandler     *importer.Handler
	ReportHandler     *report.Handler
	AuditHandler      *audit.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.HTTPServer.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.HTTPServer.ReadTimeout,
		WriteTimeout: deps.Config.HTTPServer.WriteTimeout,
		IdleTimeout:  deps.Config.HTTPServer.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)

		ctx, cancel := internal.WithTimeout(context.Background(), deps.Config.HTTPServer.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.ImportValidator.Shutdown()
		// Let in-flight audit handlers finish before the pool goes away.
		deps.EventBus.Drain()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB,
		deps.AuthHandler, deps.AuthService, deps.UserHandler,
		deps.AssignmentHandler, deps.AssetHandler, deps.EmployeeHandler,
		deps.ExportHandler, deps.ImportHandler, deps.ReportHandler,
		deps.AuditHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(log)

	// Audit trail listens on the bus for every assignment lifecycle event.
	auditService := audit.NewService(auditPostgres.NewAuditRepository(gormDB), log)
	audit.NewEventHandler(auditService, log).RegisterEventHandlers(eventBus)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BcryptCost)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB))

	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), log)
	assetService := asset.NewService(assetPostgres.NewAssetRepository(gormDB), log)

	assignmentRepo := assignmentPostgres.NewAssignmentRepository(gormDB)
	assignmentService := assignment.NewService(assignmentRepo, eventBus, log)

	exportService := export.NewService(assignmentService, eventBus, log)

	importValidator := importer.NewValidator(employeeService, assetService,
		importer.ValidatorConfig{MaxWorkers: config.Importer.WorkerCount}, log)
	importService := importer.NewService(assignmentRepo, importValidator, eventBus, config.Importer.MaxRows, log)

	reportService := report.NewService(assignmentService, log)

	return &Dependencies{
		Config:          config,
		DB:              db,
		GormDB:          gormDB,
		Router:          chi.NewRouter(),
		Logger:          log,
		EventBus:        eventBus,
		ImportValidator: importValidator,

		AuthHandler:       auth.NewHandler(authService),
		AuthService:       authService,
		UserHandler:       user.NewHandler(userService),
		AssignmentHandler: assignment.NewHandler(assignmentService),
		AssetHandler:      asset.NewHandler(assetService),
		EmployeeHandler:   employee.NewHandler(employeeService),
		ExportHandler:     export.NewHandler(exportService),
		ImportHandler:     importer.NewHandler(importService),
		ReportHandler:     report.NewHandler(reportService),
		AuditHandler:      audit.NewHandler(auditService),
	}, nil
}

// initDB opens the pgx-backed connection pool used for raw SQL and
// health checks.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return dbConn, nil
}

// initGormDB layers the ORM over the existing connection so repos and
// the health check share one pool.
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open orm connection: %w", err)
	}
	return gormDB, nil
}
