package audit

import (
	"log/slog"
	"net/http"

	"github.com/minjae-dev/asset-management/internal/transport"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

type ServiceAPI interface {
	List(query ListQuery) (*ListResponse, error)
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

// ListAuditLogs returns the trail newest first, filtered by the query
// parameters.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := ParseListQuery(r.URL.Query())

	resp, err := h.Service.List(query)
	if err != nil {
		h.Logger.Error("ListAuditLogs: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
