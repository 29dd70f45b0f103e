// internal/app/features/customers/update.go
package customers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	customerstore "github.com/showroomhq/showroomhub/internal/app/store/customers"
	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/htmlsanitize"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type updateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
	Status   *string `json:"status"`
}

// ServeUpdate handles PUT /api/user/customers/{id}. Only the editable
// fields can change; showroom accounts can only touch entries from
// their own branch.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == nil && req.Phone == nil && req.Category == nil && req.Notes == nil && req.Status == nil {
		respond.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if req.Notes != nil {
		clean := htmlsanitize.Sanitize(*req.Notes)
		req.Notes = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if authz.IsShowroom(r) {
		visit, err := h.Customers.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respond.Error(w, http.StatusNotFound, "customer not found")
				return
			}
			respond.ServerError(w, h.Log, "load visit", err)
			return
		}
		if visit.ShowroomBranch != authz.UserShowroom(r) {
			respond.Error(w, http.StatusForbidden, "forbidden")
			return
		}
	}

	err = h.Customers.Update(ctx, id, customerstore.UpdateFields{
		Name:     req.Name,
		Phone:    req.Phone,
		Category: req.Category,
		Notes:    req.Notes,
		Status:   req.Status,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		respond.ServerError(w, h.Log, "update visit", err)
		return
	}

	visit, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		respond.ServerError(w, h.Log, "reload visit", err)
		return
	}
	respond.JSON(w, http.StatusOK, visit)
}

// ServeDelete handles DELETE /api/user/customers/{id} (admin only, the
// route enforces the role).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Customers.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		respond.ServerError(w, h.Log, "delete visit", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
