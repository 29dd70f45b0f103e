// internal/app/features/analytics/types.go
package analytics

import "time"

// summaryItem is one per-showroom rollup row.
type summaryItem struct {
	Showroom            string     `json:"showroom"`
	UniqueVisitorCount  int        `json:"uniqueVisitorCount"`
	UniqueFeedbackCount int        `json:"uniqueFeedbackCount"`
	AccuracyPercent     int        `json:"accuracyPercent"`
	PerformancePercent  int        `json:"performancePercent"`
	LastActivity        *time.Time `json:"lastActivity,omitempty"`
	Status              string     `json:"status"` // Active | Inactive
}

type summaryResponse struct {
	Items          []summaryItem `json:"items"`
	From           time.Time     `json:"from"`
	To             time.Time     `json:"to"`
	AvgAccuracy    int           `json:"avgAccuracy"`
	AvgPerformance int           `json:"avgPerformance"`
}

// reportRow is one (showroom, category) count pair. No percentages are
// computed server-side; callers derive their own ratios.
type reportRow struct {
	Showroom      string `json:"showroom"`
	Category      string `json:"category"`
	CustomerCount int    `json:"customerCount"`
	FeedbackCount int    `json:"feedbackCount"`
}

type reportResponse struct {
	Rows []reportRow `json:"rows"`
	From time.Time   `json:"from"`
	To   time.Time   `json:"to"`
}

// dailyRow is one calendar-day trend row. Days with no activity in any
// stream do not appear.
type dailyRow struct {
	Day         string  `json:"day"` // YYYY-MM-DD
	Visitors    int     `json:"visitors"`
	Accuracy    int     `json:"accuracy"`
	Performance int     `json:"performance"`
	Sales       float64 `json:"sales"`
}

type dailyResponse struct {
	Days           []dailyRow `json:"days"`
	TotalVisitors  int        `json:"totalVisitors"`
	AvgAccuracy    int        `json:"avgAccuracy"`
	AvgPerformance int        `json:"avgPerformance"`
	From           time.Time  `json:"from"`
	To             time.Time  `json:"to"`
}

// pct computes round(num/den*100), returning 0 when den is 0. All
// percentage fields are rounded integers, never truncated.
func pct(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(float64(num)/float64(den)*100 + 0.5)
}

// roundMean returns the rounded unweighted mean of vals, 0 when empty.
func roundMean(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return int(float64(sum)/float64(len(vals)) + 0.5)
}
