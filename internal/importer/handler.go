package importer

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/minjae-dev/asset-management/internal/auth"
	"github.com/minjae-dev/asset-management/internal/transport"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

// maxUploadBytes caps the multipart body, not the row count; the row
// limit is enforced by the service after parsing.
const maxUploadBytes = 8 << 20

type ServiceAPI interface {
	Import(actorID, fileName string, r io.Reader) (*Summary, error)
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

// ImportAssignments accepts a multipart upload under the "file" field
// and applies it as one batch.
func (h *Handler) ImportAssignments(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Error("ImportAssignments: missing upload", "error", err)
		h.WriteError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	summary, err := h.Service.Import(strconv.FormatInt(actor.ID, 10), header.Filename, file)
	if err != nil {
		h.Logger.Error("ImportAssignments: service error", "error", err, "file_name", header.Filename)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, summary)
}
