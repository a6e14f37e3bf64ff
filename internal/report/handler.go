package report

import (
	"log/slog"
	"net/http"

	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/transport"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

type ServiceAPI interface {
	Utilization(query assignment.ListQuery) (*Result, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// UtilizationReport serves the rendered report inline. The collection
// is selected by the same query parameters as the list endpoint.
func (h *Handler) UtilizationReport(w http.ResponseWriter, r *http.Request) {
	query := assignment.ParseListQuery(r.URL.Query())

	result, err := h.Service.Utilization(query)
	if err != nil {
		h.Logger.Error("UtilizationReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.Logger.Error("UtilizationReport: write failed", "error", err)
	}
}
