// internal/app/features/sales/handler.go

// Package sales records sale amounts per showroom; the daily trend
// endpoint sums them into its per-day rows.
package sales

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	salestore "github.com/showroomhq/showroomhub/internal/app/store/sales"
	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

type Handler struct {
	Sales *salestore.Store
	Log   *zap.Logger
}

func NewHandler(sales *salestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Sales: sales, Log: logger}
}

type createRequest struct {
	Showroom string   `json:"showroom"`
	Amount   *float64 `json:"amount"`
}

// ServeCreate handles POST /api/user/sales. Showroom accounts record
// against their own branch.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	showroom := req.Showroom
	if authz.IsShowroom(r) {
		showroom = authz.UserShowroom(r)
	}
	if showroom == "" {
		respond.Error(w, http.StatusBadRequest, "showroom is required")
		return
	}
	if req.Amount == nil {
		respond.Error(w, http.StatusBadRequest, "amount is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sale, err := h.Sales.Create(ctx, showroom, *req.Amount, time.Time{})
	if err != nil {
		if errors.Is(err, salestore.ErrBadAmount) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		respond.ServerError(w, h.Log, "create sale", err)
		return
	}

	respond.JSON(w, http.StatusCreated, sale)
}

type listResponse struct {
	Items []models.Sale `json:"items"`
	Total float64       `json:"total"`
	From  time.Time     `json:"from"`
	To    time.Time     `json:"to"`
}

// ServeList handles GET /api/user/sales with the standard window
// defaults.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	rng := daterange.FromRequest(r, time.Now())

	showroom := query.Get(r, "showroom")
	if authz.IsShowroom(r) {
		showroom = authz.UserShowroom(r)
	}

	if rng.IsEmpty() {
		respond.JSON(w, http.StatusOK, listResponse{Items: []models.Sale{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Sales.List(ctx, showroom, rng.Start, rng.End)
	if err != nil {
		respond.ServerError(w, h.Log, "list sales", err)
		return
	}
	if items == nil {
		items = []models.Sale{}
	}

	var total float64
	for _, s := range items {
		total += s.Amount
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Items: items,
		Total: total,
		From:  rng.Start,
		To:    rng.End,
	})
}
