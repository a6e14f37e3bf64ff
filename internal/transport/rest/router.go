package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/minjae-dev/asset-management/internal/asset"
	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/audit"
	"github.com/minjae-dev/asset-management/internal/auth"
	"github.com/minjae-dev/asset-management/internal/employee"
	"github.com/minjae-dev/asset-management/internal/export"
	"github.com/minjae-dev/asset-management/internal/importer"
	"github.com/minjae-dev/asset-management/internal/report"
	"github.com/minjae-dev/asset-management/internal/transport/middleware"
	"github.com/minjae-dev/asset-management/internal/transport/swagger"
	"github.com/minjae-dev/asset-management/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, authService *auth.Service, userHandler *user.Handler, assignmentHandler *assignment.Handler, assetHandler *asset.Handler, employeeHandler *employee.Handler, exportHandler *export.Handler, importHandler *importer.Handler, reportHandler *report.Handler, auditHandler *audit.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	rbac := authService.RBACAuthorization()

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Assignment routes
				if assignmentHandler != nil {
					pr.Route("/assignments", func(ar chi.Router) {
						// Read routes, open to viewers and managers
						ar.Group(func(rr chi.Router) {
							rr.Use(middleware.RequirePermissions(auth.PermissionViewAssignments, auth.PermissionManageAssignments))
							rr.Get("/", assignmentHandler.ListAssignments)
							rr.Get("/stats", assignmentHandler.GetStats)
							rr.Get("/{id}", assignmentHandler.GetAssignment)
						})

						// Mutations require the manage permission
						ar.Group(func(mr chi.Router) {
							mr.Use(rbac.Middleware(auth.PermissionManageAssignments))
							mr.Post("/", assignmentHandler.CreateAssignment)
							mr.Put("/{id}", assignmentHandler.UpdateAssignment)
							mr.Put("/{id}/return", assignmentHandler.ReturnAssignment)
							mr.Delete("/{id}", assignmentHandler.DeleteAssignment)
						})

						if exportHandler != nil {
							ar.Group(func(er chi.Router) {
								er.Use(rbac.Middleware(auth.PermissionExportData))
								er.Post("/export", exportHandler.ExportAssignments)
							})
						}

						if importHandler != nil {
							ar.Group(func(ir chi.Router) {
								ir.Use(rbac.Middleware(auth.PermissionImportData))
								ir.Post("/import", importHandler.ImportAssignments)
							})
						}
					})
				}

				// Asset routes
				if assetHandler != nil {
					pr.Route("/assets", func(ar chi.Router) {
						ar.Group(func(rr chi.Router) {
							rr.Use(middleware.RequirePermissions(auth.PermissionViewAssignments, auth.PermissionManageAssets))
							rr.Get("/", assetHandler.ListAssets)
							rr.Get("/{id}", assetHandler.GetAsset)
						})

						ar.Group(func(mr chi.Router) {
							mr.Use(rbac.Middleware(auth.PermissionManageAssets))
							mr.Post("/", assetHandler.CreateAsset)
							mr.Put("/{id}", assetHandler.UpdateAsset)
							mr.Delete("/{id}", assetHandler.DeleteAsset)
						})
					})
				}

				// Employee routes
				if employeeHandler != nil {
					pr.Route("/employees", func(er chi.Router) {
						er.Group(func(rr chi.Router) {
							rr.Use(middleware.RequirePermissions(auth.PermissionViewAssignments, auth.PermissionManageEmployees))
							rr.Get("/", employeeHandler.ListEmployees)
							rr.Get("/departments", employeeHandler.ListDepartments)
							rr.Get("/{id}", employeeHandler.GetEmployee)
						})

						er.Group(func(mr chi.Router) {
							mr.Use(rbac.Middleware(auth.PermissionManageEmployees))
							mr.Post("/", employeeHandler.CreateEmployee)
							mr.Put("/{id}", employeeHandler.UpdateEmployee)
							mr.Delete("/{id}", employeeHandler.DeleteEmployee)
						})
					})
				}

				// Utilization report
				if reportHandler != nil {
					pr.Group(func(rr chi.Router) {
						rr.Use(rbac.Middleware(auth.PermissionViewAssignments))
						rr.Get("/reports/utilization", reportHandler.UtilizationReport)
					})
				}

				// Audit trail (restricted)
				if auditHandler != nil {
					pr.Group(func(ur chi.Router) {
						ur.Use(rbac.Middleware(auth.PermissionViewAudit))
						ur.Get("/audit", auditHandler.ListAuditLogs)
					})
				}
			})
		}
	})
}
