// internal/app/features/showrooms/handler.go

// Package showrooms serves the admin-managed branch registry. The
// registry doubles as the active-set filter for the analytics rollups.
package showrooms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	showroomstore "github.com/showroomhq/showroomhub/internal/app/store/showrooms"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the showroom registry endpoints.
type Handler struct {
	Showrooms *showroomstore.Store
	Log       *zap.Logger
}

// NewHandler creates a showrooms Handler.
func NewHandler(showrooms *showroomstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Showrooms: showrooms, Log: logger}
}

type createRequest struct {
	Name string `json:"name"`
}

// ServeCreate handles POST /api/user/showrooms.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sr, err := h.Showrooms.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, showroomstore.ErrDuplicateName) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}
		respond.ServerError(w, h.Log, "create showroom", err)
		return
	}

	respond.JSON(w, http.StatusCreated, sr)
}

// ServeList handles GET /api/user/showrooms. Every signed-in role may
// read the registry; the terminal UI needs it for its branch picker.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Showrooms.List(ctx)
	if err != nil {
		respond.ServerError(w, h.Log, "list showrooms", err)
		return
	}
	if items == nil {
		items = []models.Showroom{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"items": items})
}

type activeRequest struct {
	Active *bool `json:"active"`
}

// ServeSetActive handles PUT /api/user/showrooms/{id}/active.
func (h *Handler) ServeSetActive(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid showroom id")
		return
	}

	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		respond.Error(w, http.StatusBadRequest, "active is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Showrooms.SetActive(ctx, id, *req.Active); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "showroom not found")
			return
		}
		respond.ServerError(w, h.Log, "set showroom active", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "showroom updated"})
}

// ServeDelete handles DELETE /api/user/showrooms/{id}. Existing visit
// and feedback records keep their branch strings; deleting a registry
// entry only removes it from the active-set filter.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid showroom id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Showrooms.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "showroom not found")
			return
		}
		respond.ServerError(w, h.Log, "delete showroom", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "showroom deleted"})
}
