// internal/app/features/analytics/report.go
package analytics

import (
	"context"
	"net/http"
	"regexp"
	"sort"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/daterange"
	"github.com/showroomhq/showroomhub/internal/app/system/respond"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeReport produces per-(showroom, category) visit and feedback
// counts over the range. A supplied category filter collapses the
// grouping to showroom only, since the filter already pins the category.
// GET /api/user/analytics/showroom-report
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	started := time.Now()
	rng := daterange.FromRequest(r, time.Now())
	showroomFilter := query.Get(r, "showroom")
	categoryFilter := query.Get(r, "category")

	rows, err := h.report(ctx, rng, showroomFilter, categoryFilter)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordAggregation("showroom_report", "error", time.Since(started))
		}
		respond.ServerError(w, h.Log, "showroom report", err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordAggregation("showroom_report", "ok", time.Since(started))
	}

	respond.JSON(w, http.StatusOK, reportResponse{
		Rows: rows,
		From: rng.Start,
		To:   rng.End,
	})
}

// anchoredCI builds a case-insensitive exact-match regex for a filter
// value. Filters match loosely, but the visit and feedback streams are
// still merged on byte-identical strings.
func anchoredCI(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

type reportKey struct {
	showroom string
	category string
}

func (h *Handler) report(ctx context.Context, rng daterange.Range, showroomFilter, categoryFilter string) ([]reportRow, error) {
	collapse := categoryFilter != ""

	visits, err := h.groupByShowroomCategory(ctx, "customers", "$showroom_branch",
		h.reportMatch(rng, "showroom_branch", showroomFilter, categoryFilter), collapse)
	if err != nil {
		return nil, err
	}
	fbs, err := h.groupByShowroomCategory(ctx, "feedback", "$showroom",
		h.reportMatch(rng, "showroom", showroomFilter, categoryFilter), collapse)
	if err != nil {
		return nil, err
	}

	type merged struct {
		customers int
		feedback  int
	}
	rows := make(map[reportKey]*merged)
	for k, n := range visits {
		rows[k] = &merged{customers: n}
	}
	for k, n := range fbs {
		m, ok := rows[k]
		if !ok {
			m = &merged{}
			rows[k] = m
		}
		m.feedback = n
	}

	active, applyFilter, err := h.Showrooms.ActiveFilter(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]reportRow, 0, len(rows))
	for k, m := range rows {
		if applyFilter && !active[k.showroom] {
			continue
		}
		category := k.category
		if collapse {
			category = categoryFilter
		}
		out = append(out, reportRow{
			Showroom:      k.showroom,
			Category:      category,
			CustomerCount: m.customers,
			FeedbackCount: m.feedback,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Showroom != out[j].Showroom {
			return out[i].Showroom < out[j].Showroom
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (h *Handler) reportMatch(rng daterange.Range, showroomField, showroomFilter, categoryFilter string) bson.M {
	match := bson.M{"created_at": bson.M{"$gte": rng.Start, "$lt": rng.End}}
	if showroomFilter != "" {
		match[showroomField] = anchoredCI(showroomFilter)
	}
	if categoryFilter != "" {
		match["category"] = anchoredCI(categoryFilter)
	}
	return match
}

// groupByShowroomCategory counts distinct phones per group. With
// collapse set, the group key is showroom alone.
func (h *Handler) groupByShowroomCategory(ctx context.Context, coll, showroomKey string, match bson.M, collapse bool) (map[reportKey]int, error) {
	groupID := bson.M{"showroom": showroomKey, "category": "$category"}
	if collapse {
		groupID = bson.M{"showroom": showroomKey}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":    groupID,
			"phones": bson.M{"$addToSet": "$phone"},
		}},
	}

	cur, err := h.DB.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[reportKey]int)
	for cur.Next(ctx) {
		var doc struct {
			ID struct {
				Showroom string `bson:"showroom"`
				Category string `bson:"category"`
			} `bson:"_id"`
			Phones []string `bson:"phones"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[reportKey{showroom: doc.ID.Showroom, category: doc.ID.Category}] = len(doc.Phones)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
