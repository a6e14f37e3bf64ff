package assignment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/minjae-dev/asset-management/internal/auth"
	"github.com/minjae-dev/asset-management/internal/transport"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

type ServiceAPI interface {
	List(query ListQuery) (*ListResponse, error)
	GetByID(id string) (*Assignment, error)
	Stats(query ListQuery) (Stats, error)
	Create(actorID string, dto CreateAssignmentDTO) (*Assignment, error)
	Update(actorID, id string, dto UpdateAssignmentDTO) (*Assignment, error)
	Return(actorID, id string, dto ReturnAssignmentDTO) (*Assignment, error)
	Delete(actorID, id string) error
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

func actorID(r *http.Request) (string, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		return "", false
	}
	return strconv.FormatInt(user.ID, 10), true
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	query := ParseListQuery(r.URL.Query())

	resp, err := h.Service.List(query)
	if err != nil {
		h.Logger.Error("ListAssignments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetAssignment: service error", "error", err, "assignment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewAssignmentResponse(a))
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	query := ParseListQuery(r.URL.Query())

	stats, err := h.Service.Stats(query)
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		h.Logger.Error("CreateAssignment: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAssignment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(actor, dto)
	if err != nil {
		h.Logger.Error("CreateAssignment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAssignment: assignment created",
		"assignment_id", created.ID,
		"employee_id", created.EmployeeID,
		"asset_id", created.AssetID)

	h.WriteJSON(w, http.StatusCreated, NewAssignmentResponse(created))
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		h.Logger.Error("UpdateAssignment: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	var dto UpdateAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAssignment: invalid request body", "error", err, "assignment_id", id)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(actor, id, dto)
	if err != nil {
		h.Logger.Error("UpdateAssignment: service error", "error", err, "assignment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewAssignmentResponse(updated))
}

func (h *Handler) ReturnAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		h.Logger.Error("ReturnAssignment: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	var dto ReturnAssignmentDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.Logger.Error("ReturnAssignment: invalid request body", "error", err, "assignment_id", id)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	returned, err := h.Service.Return(actor, id, dto)
	if err != nil {
		h.Logger.Error("ReturnAssignment: service error", "error", err, "assignment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ReturnAssignment: assignment returned",
		"assignment_id", returned.ID,
		"return_date", returned.ReturnDate)

	h.WriteJSON(w, http.StatusOK, NewAssignmentResponse(returned))
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		h.Logger.Error("DeleteAssignment: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(actor, id); err != nil {
		h.Logger.Error("DeleteAssignment: service error", "error", err, "assignment_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteAssignment: assignment deleted", "assignment_id", id)
	w.WriteHeader(http.StatusNoContent)
}
