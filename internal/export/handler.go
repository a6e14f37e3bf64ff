package export

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/minjae-dev/asset-management/internal/assignment"
	"github.com/minjae-dev/asset-management/internal/auth"
	"github.com/minjae-dev/asset-management/internal/transport"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

type ServiceAPI interface {
	Export(actorID string, query assignment.ListQuery, opts Options) (*Result, error)
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

// ExportAssignments streams a rendered export as a file download. The
// collection is selected by the same query parameters as the list
// endpoint; the options arrive in the request body.
func (h *Handler) ExportAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var opts Options
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			h.Logger.Error("ExportAssignments: invalid request body", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if opts.Format == "" {
		opts.Format = FormatXLSX
	}

	query := assignment.ParseListQuery(r.URL.Query())

	result, err := h.Service.Export(strconv.FormatInt(actor.ID, 10), query, opts)
	if err != nil {
		h.Logger.Error("ExportAssignments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.Logger.Error("ExportAssignments: write failed", "error", err)
	}
}
