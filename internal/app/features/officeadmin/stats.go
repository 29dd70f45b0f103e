// internal/app/features/officeadmin/stats.go
package officeadmin

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/authz"
	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

type todayStatsResponse struct {
	Date          string  `json:"date"`
	ShowroomToday int64   `json:"showroomToday"`
	AdminToday    float64 `json:"adminToday"`
	Ratio         float64 `json:"ratio"`
	RatioPercent  int     `json:"ratioPercent"`
}

type dayStat struct {
	Date                 string  `json:"date"`
	ShowroomVisitorCount int64   `json:"showroomVisitorCount"`
	ManualAdminCount     float64 `json:"manualAdminCount"`
	RatioPercent         int     `json:"ratioPercent"`
}

type dailyStatsResponse struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	Days          []dayStat `json:"days"`
	TotalShowroom int64     `json:"totalShowroom"`
}

// ratioPct computes round(measured/manual*100) with a zero guard.
func ratioPct(measured int64, manual float64) int {
	if manual <= 0 {
		return 0
	}
	return int(math.Round(float64(measured) / manual * 100))
}

// ServeTodayStats compares today's measured showroom traffic against the
// caller's manual tally. The measured side is the raw visit count, not
// deduplicated by phone: reconciliation counts footfall, not identities.
// GET /api/user/office-admin/today-stats
func (h *Handler) ServeTodayStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, adminID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	started := time.Now()
	now := time.Now()
	date := now.Format(daterange.DayFormat)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	showroomToday, err := h.Customers.CountCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordAggregation("today_stats", "error", time.Since(started))
		}
		respond.ServerError(w, h.Log, "today stats visit count", err)
		return
	}

	adminToday, err := h.DailyCounts.SumForDay(ctx, adminID, date)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordAggregation("today_stats", "error", time.Since(started))
		}
		respond.ServerError(w, h.Log, "today stats manual count", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordAggregation("today_stats", "ok", time.Since(started))
	}

	var ratio float64
	if adminToday > 0 {
		ratio = math.Round(float64(showroomToday)/adminToday*10) / 10
	}

	respond.JSON(w, http.StatusOK, todayStatsResponse{
		Date:          date,
		ShowroomToday: showroomToday,
		AdminToday:    adminToday,
		Ratio:         ratio,
		RatioPercent:  ratioPct(showroomToday, adminToday),
	})
}

// ServeDailyStats extends the reconciliation over a range, materializing
// one row per calendar day including days with no activity at all.
// GET /api/user/office-admin/daily-stats?from=&to=
func (h *Handler) ServeDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, _, adminID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	started := time.Now()
	rng := daterange.FromRequest(r, time.Now())
	days := rng.Days()

	visitCounts, err := h.rawVisitsPerDay(ctx, rng)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordAggregation("daily_stats", "error", time.Since(started))
		}
		respond.ServerError(w, h.Log, "daily stats visit counts", err)
		return
	}

	var manualSums map[string]float64
	if len(days) > 0 {
		manualSums, err = h.DailyCounts.SumsByDate(ctx, adminID, days[0], days[len(days)-1])
		if err != nil {
			if h.Metrics != nil {
				h.Metrics.RecordAggregation("daily_stats", "error", time.Since(started))
			}
			respond.ServerError(w, h.Log, "daily stats manual sums", err)
			return
		}
	}
	if h.Metrics != nil {
		h.Metrics.RecordAggregation("daily_stats", "ok", time.Since(started))
	}

	stats := make([]dayStat, 0, len(days))
	var total int64
	for _, day := range days {
		measured := visitCounts[day]
		manual := manualSums[day]
		total += measured
		stats = append(stats, dayStat{
			Date:                 day,
			ShowroomVisitorCount: measured,
			ManualAdminCount:     manual,
			RatioPercent:         ratioPct(measured, manual),
		})
	}

	respond.JSON(w, http.StatusOK, dailyStatsResponse{
		From:          rng.From(),
		To:            rng.To(),
		Days:          stats,
		TotalShowroom: total,
	})
}

// rawVisitsPerDay counts visit documents per "%Y-%m-%d" bucket without
// phone deduplication.
func (h *Handler) rawVisitsPerDay(ctx context.Context, rng daterange.Range) (map[string]int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": rng.Start, "$lt": rng.End}}},
		{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"count": bson.M{"$sum": 1},
		}},
	}

	cur, err := h.DB.Collection("customers").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	for cur.Next(ctx) {
		var doc struct {
			Day   string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.Day] = doc.Count
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
