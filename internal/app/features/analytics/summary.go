// internal/app/features/analytics/summary.go
package analytics

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
)

// activeWindow is how recently a showroom must have seen activity to be
// reported as "Active".
const activeWindow = 24 * time.Hour

// ServeSummary produces one rollup row per showroom branch seen in the
// visit or feedback streams within the range.
// GET /api/user/analytics/showroom-summary
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	started := time.Now()
	now := time.Now()
	rng := daterange.FromRequest(r, now)

	items, err := h.summarize(ctx, rng, now)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordAggregation("showroom_summary", "error", time.Since(started))
		}
		respond.ServerError(w, h.Log, "showroom summary", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordAggregation("showroom_summary", "ok", time.Since(started))
	}

	// Averages are unweighted means over all retained rows, zeros
	// included.
	accs := make([]int, len(items))
	perfs := make([]int, len(items))
	for i, it := range items {
		accs[i] = it.AccuracyPercent
		perfs[i] = it.PerformancePercent
	}

	// Advisory only; dashboards poll this endpoint aggressively.
	w.Header().Set("Cache-Control", "private, max-age=30")
	respond.JSON(w, http.StatusOK, summaryResponse{
		Items:          items,
		From:           rng.Start,
		To:             rng.End,
		AvgAccuracy:    roundMean(accs),
		AvgPerformance: roundMean(perfs),
	})
}

// groupStats is one stream's per-showroom aggregate.
type groupStats struct {
	Phones []string  `bson:"phones"`
	Last   time.Time `bson:"last"`
}

func (h *Handler) summarize(ctx context.Context, rng daterange.Range, now time.Time) ([]summaryItem, error) {
	match := bson.M{"created_at": bson.M{"$gte": rng.Start, "$lt": rng.End}}

	visits, err := h.groupByShowroom(ctx, "customers", "$showroom_branch", match)
	if err != nil {
		return nil, err
	}
	fbs, err := h.groupByShowroom(ctx, "feedback", "$showroom", match)
	if err != nil {
		return nil, err
	}

	// Merge on the raw showroom string. The two streams only meet when
	// their showroom text is byte-identical; the empty string is a
	// valid key for blank branch names.
	type merged struct {
		visitors int
		feedback int
		last     time.Time
	}
	rows := make(map[string]*merged)
	for name, g := range visits {
		m := &merged{visitors: len(g.Phones), last: g.Last}
		rows[name] = m
	}
	for name, g := range fbs {
		m, ok := rows[name]
		if !ok {
			m = &merged{}
			rows[name] = m
		}
		m.feedback = len(g.Phones)
		if g.Last.After(m.last) {
			m.last = g.Last
		}
	}

	active, applyFilter, err := h.Showrooms.ActiveFilter(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]summaryItem, 0, len(rows))
	for name, m := range rows {
		if applyFilter && !active[name] {
			continue
		}

		item := summaryItem{
			Showroom:            name,
			UniqueVisitorCount:  m.visitors,
			UniqueFeedbackCount: m.feedback,
			AccuracyPercent:     pct(m.feedback, m.visitors),
			Status:              "Inactive",
		}
		// Performance has never been given its own formula; it mirrors
		// accuracy until the product defines it.
		item.PerformancePercent = item.AccuracyPercent
		if !m.last.IsZero() {
			last := m.last
			item.LastActivity = &last
			if now.Sub(last) <= activeWindow {
				item.Status = "Active"
			}
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Showroom < items[j].Showroom
	})
	return items, nil
}

// groupByShowroom groups one event collection by showroom name over the
// match window, collecting the distinct phone set and latest timestamp.
func (h *Handler) groupByShowroom(ctx context.Context, coll, key string, match bson.M) (map[string]groupStats, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":    key,
			"phones": bson.M{"$addToSet": "$phone"},
			"last":   bson.M{"$max": "$created_at"},
		}},
	}

	cur, err := h.DB.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]groupStats)
	for cur.Next(ctx) {
		var doc struct {
			Showroom string `bson:"_id"`
			groupStats `bson:",inline"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.Showroom] = doc.groupStats
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
