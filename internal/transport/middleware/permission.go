package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/minjae-dev/asset-management/internal"
	"github.com/minjae-dev/asset-management/internal/auth"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

// RequirePermissions allows the request through when the user holds any
// of the listed permissions. Admins always pass.
func RequirePermissions(permissions ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				writeAppError(w, apperrors.NewUnauthorizedError("authentication required", apperrors.ErrCodeUnauthorizedAccess))
				return
			}

			if user.IsAdmin() || user.HasAnyPermission(permissions) {
				next.ServeHTTP(w, r)
				return
			}

			logger.From(r.Context()).Warn("permission denied",
				"user_id", user.ID,
				"required", permissions,
				"path", r.URL.Path,
			)
			writeAppError(w, apperrors.NewForbiddenError("insufficient permissions", apperrors.ErrCodeUnauthorizedAccess))
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
