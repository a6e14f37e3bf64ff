package asset

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/minjae-dev/asset-management/internal/transport"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

type ServiceAPI interface {
	List(query ListQuery) (*ListResponse, error)
	GetByID(id string) (*Asset, error)
	Create(dto CreateAssetDTO) (*Asset, error)
	Update(id string, dto UpdateAssetDTO) (*Asset, error)
	Delete(id string) error
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

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.List(ParseListQuery(r.URL.Query()))
	if err != nil {
		h.Logger.Error("ListAssets: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetAsset: service error", "error", err, "asset_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, NewAssetResponse(a))
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateAsset: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAsset: asset created", "asset_id", created.ID)
	h.WriteJSON(w, http.StatusCreated, NewAssetResponse(created))
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAsset: invalid request body", "error", err, "asset_id", id)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateAsset: service error", "error", err, "asset_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, NewAssetResponse(updated))
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteAsset: service error", "error", err, "asset_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DeleteAsset: asset deleted", "asset_id", id)
	w.WriteHeader(http.StatusNoContent)
}
