// internal/app/features/officeadmin/dailycount.go
package officeadmin

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	dailycountstore "github.com/showroomhq/showroomhub/internal/app/store/dailycounts"
	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

type dailyCountResponse struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}

// today returns the server-local calendar day key.
func today() string {
	return time.Now().Format(daterange.DayFormat)
}

// validDate reports whether s is a well-formed day key.
func validDate(s string) bool {
	_, err := time.Parse(daterange.DayFormat, s)
	return err == nil
}

// ServeGetDailyCount returns the caller's manual count for one day,
// summed across showrooms. Days with no entry read as zero.
// GET /api/user/office-admin/daily-count?date=
func (h *Handler) ServeGetDailyCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, adminID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	date := query.Get(r, "date")
	if date == "" {
		date = today()
	}
	if !validDate(date) {
		respond.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	count, err := h.DailyCounts.SumForDay(ctx, adminID, date)
	if err != nil {
		respond.ServerError(w, h.Log, "get daily count", err)
		return
	}

	respond.JSON(w, http.StatusOK, dailyCountResponse{Date: date, Count: count})
}

// ServePutDailyCount upserts the caller's manual count for one day and
// showroom. Repeated submissions overwrite; a concurrent duplicate-key
// race surfaces as 409.
// PUT /api/user/office-admin/daily-count
func (h *Handler) ServePutDailyCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, adminID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var body struct {
		Date     string   `json:"date"`
		Count    *float64 `json:"count"`
		Showroom string   `json:"showroom"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Negative and non-finite counts are rejected, never clamped.
	if body.Count == nil || math.IsNaN(*body.Count) || math.IsInf(*body.Count, 0) || *body.Count < 0 {
		respond.Error(w, http.StatusBadRequest, "count must be a finite number >= 0")
		return
	}

	date := body.Date
	if date == "" {
		date = today()
	}
	if !validDate(date) {
		respond.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	dc, err := h.DailyCounts.Upsert(ctx, adminID, date, body.Showroom, *body.Count)
	if err != nil {
		if errors.Is(err, dailycountstore.ErrConflict) {
			respond.Error(w, http.StatusConflict, "daily count was updated concurrently; retry")
			return
		}
		respond.ServerError(w, h.Log, "upsert daily count", err)
		return
	}

	respond.JSON(w, http.StatusOK, dailyCountResponse{Date: dc.Date, Count: dc.Count})
}
