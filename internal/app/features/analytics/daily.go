// internal/app/features/analytics/daily.go
package analytics

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeDaily produces the per-day visitor/feedback/sales trend over the
// range. Day buckets come from the database's own $dateToString
// truncation of created_at, and only days with activity in at least one
// stream appear.
// GET /api/user/analytics/showroom-daily
func (h *Handler) ServeDaily(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	started := time.Now()
	rng := daterange.FromRequest(r, time.Now())
	showroomFilter := query.Get(r, "showroom")

	days, err := h.dailyTrend(ctx, rng, showroomFilter)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordAggregation("showroom_daily", "error", time.Since(started))
		}
		respond.ServerError(w, h.Log, "showroom daily trend", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordAggregation("showroom_daily", "ok", time.Since(started))
	}

	total := 0
	// Unlike the summary's averages, the daily averages skip zero
	// days entirely.
	var accs, perfs []int
	for _, d := range days {
		total += d.Visitors
		if d.Accuracy != 0 {
			accs = append(accs, d.Accuracy)
		}
		if d.Performance != 0 {
			perfs = append(perfs, d.Performance)
		}
	}

	respond.JSON(w, http.StatusOK, dailyResponse{
		Days:           days,
		TotalVisitors:  total,
		AvgAccuracy:    roundMean(accs),
		AvgPerformance: roundMean(perfs),
		From:           rng.Start,
		To:             rng.End,
	})
}

func (h *Handler) dailyTrend(ctx context.Context, rng daterange.Range, showroomFilter string) ([]dailyRow, error) {
	visitors, err := h.phonesPerDay(ctx, "customers", "showroom_branch", rng, showroomFilter)
	if err != nil {
		return nil, err
	}
	feedback, err := h.phonesPerDay(ctx, "feedback", "showroom", rng, showroomFilter)
	if err != nil {
		return nil, err
	}
	sales, err := h.salesPerDay(ctx, rng, showroomFilter)
	if err != nil {
		return nil, err
	}

	dayset := make(map[string]bool)
	for d := range visitors {
		dayset[d] = true
	}
	for d := range feedback {
		dayset[d] = true
	}
	for d := range sales {
		dayset[d] = true
	}

	rows := make([]dailyRow, 0, len(dayset))
	for d := range dayset {
		row := dailyRow{
			Day:      d,
			Visitors: visitors[d],
			Accuracy: pct(feedback[d], visitors[d]),
			Sales:    sales[d],
		}
		row.Performance = row.Accuracy
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return rows, nil
}

func (h *Handler) dailyMatch(rng daterange.Range, showroomField, showroomFilter string) bson.M {
	match := bson.M{"created_at": bson.M{"$gte": rng.Start, "$lt": rng.End}}
	if showroomFilter != "" {
		match[showroomField] = anchoredCI(showroomFilter)
	}
	return match
}

// phonesPerDay returns the distinct-phone count per "%Y-%m-%d" bucket.
func (h *Handler) phonesPerDay(ctx context.Context, coll, showroomField string, rng daterange.Range, showroomFilter string) (map[string]int, error) {
	pipeline := []bson.M{
		{"$match": h.dailyMatch(rng, showroomField, showroomFilter)},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"phones": bson.M{"$addToSet": "$phone"},
		}},
	}

	cur, err := h.DB.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int)
	for cur.Next(ctx) {
		var doc struct {
			Day    string   `bson:"_id"`
			Phones []string `bson:"phones"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.Day] = len(doc.Phones)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// salesPerDay returns the summed sale amount per "%Y-%m-%d" bucket.
func (h *Handler) salesPerDay(ctx context.Context, rng daterange.Range, showroomFilter string) (map[string]float64, error) {
	pipeline := []bson.M{
		{"$match": h.dailyMatch(rng, "showroom", showroomFilter)},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$created_at",
			}},
			"total": bson.M{"$sum": "$amount"},
		}},
	}

	cur, err := h.DB.Collection("sales").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]float64)
	for cur.Next(ctx) {
		var doc struct {
			Day   string  `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.Day] = doc.Total
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
