// internal/app/features/feedback/list.go
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	feedbackstore "github.com/showroomhq/showroomhub/internal/app/store/feedback"
	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type listResponse struct {
	Items []models.Feedback `json:"items"`
	From  time.Time         `json:"from"`
	To    time.Time         `json:"to"`
}

// ServeList handles GET /api/user/feedback with the same window
// defaults as the other range endpoints. Showroom accounts only see
// their own branch.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	rng := daterange.FromRequest(r, time.Now())

	showroom := query.Get(r, "showroom")
	if authz.IsShowroom(r) {
		showroom = authz.UserShowroom(r)
	}
	status := query.Get(r, "status")

	limit := int64(defaultListLimit)
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 && n <= maxListLimit {
			limit = n
		}
	}

	if rng.IsEmpty() {
		respond.JSON(w, http.StatusOK, listResponse{Items: []models.Feedback{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Feedback.List(ctx, feedbackstore.ListFilter{
		Showroom: showroom,
		Status:   status,
		Start:    rng.Start,
		End:      rng.End,
		Limit:    limit,
	})
	if err != nil {
		respond.ServerError(w, h.Log, "list feedback", err)
		return
	}
	if items == nil {
		items = []models.Feedback{}
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Items: items,
		From:  rng.Start,
		To:    rng.End,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// ServeSetStatus handles PUT /api/user/feedback/{id}/status, moving a
// response through new → reviewed → resolved (any direction allowed).
func (h *Handler) ServeSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid feedback id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Feedback.SetStatus(ctx, id, req.Status); err != nil {
		switch {
		case errors.Is(err, feedbackstore.ErrBadStatus):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.Error(w, http.StatusNotFound, "feedback not found")
		default:
			respond.ServerError(w, h.Log, "set feedback status", err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}
