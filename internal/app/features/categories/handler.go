// internal/app/features/categories/handler.go

// Package categories serves the admin-managed product category registry.
package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	categorystore "github.com/showroomhq/showroomhub/internal/app/store/categories"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Categories *categorystore.Store
	Log        *zap.Logger
}

func NewHandler(categories *categorystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Categories: categories, Log: logger}
}

type createRequest struct {
	Name string `json:"name"`
}

// ServeCreate handles POST /api/user/categories.
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

	cat, err := h.Categories.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, categorystore.ErrDuplicateName) {
			respond.Error(w, http.StatusConflict, err.Error())
			return
		}
		respond.ServerError(w, h.Log, "create category", err)
		return
	}

	respond.JSON(w, http.StatusCreated, cat)
}

// ServeList handles GET /api/user/categories.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Categories.List(ctx)
	if err != nil {
		respond.ServerError(w, h.Log, "list categories", err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// ServeDelete handles DELETE /api/user/categories/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "category not found")
			return
		}
		respond.ServerError(w, h.Log, "delete category", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
