// internal/app/features/customers/list.go
package customers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	customerstore "github.com/showroomhq/showroomhub/internal/app/store/customers"
	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type listResponse struct {
	Items []models.Visit `json:"items"`
	From  time.Time      `json:"from"`
	To    time.Time      `json:"to"`
}

// ServeList handles GET /api/user/customers. The window defaults to the
// same trailing-30-day range the aggregators use; a malformed date
// selects nothing rather than failing.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	rng := daterange.FromRequest(r, time.Now())

	showroom := query.Get(r, "showroom")
	if authz.IsShowroom(r) {
		showroom = authz.UserShowroom(r)
	}

	limit := parseBounded(query.Get(r, "limit"), defaultListLimit, maxListLimit)
	skip := parseBounded(query.Get(r, "skip"), 0, 1<<31)

	if rng.IsEmpty() {
		respond.JSON(w, http.StatusOK, listResponse{Items: []models.Visit{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	visits, err := h.Customers.List(ctx, customerstore.ListFilter{
		Showroom: showroom,
		Start:    rng.Start,
		End:      rng.End,
		Limit:    limit,
		Skip:     skip,
	})
	if err != nil {
		respond.ServerError(w, h.Log, "list visits", err)
		return
	}
	if visits == nil {
		visits = []models.Visit{}
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Items: visits,
		From:  rng.Start,
		To:    rng.End,
	})
}

// parseBounded parses a non-negative integer query value, falling back
// to def and clamping at max.
func parseBounded(s string, def, max int64) int64 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
