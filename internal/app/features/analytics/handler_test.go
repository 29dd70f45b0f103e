package analytics

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	showroomstore "github.com/showroomhq/showroomhub/internal/app/store/showrooms"
	"github.com/showroomhq/showroomhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, showroomstore.New(db), nil, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func rangeQuery(start, end time.Time) string {
	return "?start=" + start.Format("2006-01-02") + "&end=" + end.Format("2006-01-02")
}

func TestSummaryDedupAndAccuracy(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Now().UTC().Add(-2 * time.Hour)

	// Phone A visits twice, phone B once; one feedback from A.
	f.CreateVisit(ctx, "Gulshan", "A", day)
	f.CreateVisit(ctx, "Gulshan", "A", day.Add(10*time.Minute))
	f.CreateVisit(ctx, "Gulshan", "B", day.Add(20*time.Minute))
	f.CreateFeedback(ctx, "Gulshan", "A", day.Add(30*time.Minute))

	req := testutil.NewRequest("GET", "/showroom-summary")
	rec := httptest.NewRecorder()
	h.ServeSummary(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "private, max-age=30" {
		t.Errorf("Cache-Control: got %q", cc)
	}

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	it := resp.Items[0]
	if it.UniqueVisitorCount != 2 {
		t.Errorf("uniqueVisitorCount: got %d, want 2", it.UniqueVisitorCount)
	}
	if it.UniqueFeedbackCount != 1 {
		t.Errorf("uniqueFeedbackCount: got %d, want 1", it.UniqueFeedbackCount)
	}
	if it.AccuracyPercent != 50 {
		t.Errorf("accuracyPercent: got %d, want 50", it.AccuracyPercent)
	}
	if it.PerformancePercent != it.AccuracyPercent {
		t.Errorf("performance must equal accuracy")
	}
	if it.Status != "Active" {
		t.Errorf("status: got %q, want Active for recent activity", it.Status)
	}
	if resp.AvgAccuracy != 50 {
		t.Errorf("avgAccuracy: got %d, want 50", resp.AvgAccuracy)
	}
}

func TestSummaryEmptyRange(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/showroom-summary")
	rec := httptest.NewRecorder()
	h.ServeSummary(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("expected no items, got %d", len(resp.Items))
	}
	if resp.AvgAccuracy != 0 || resp.AvgPerformance != 0 {
		t.Errorf("empty averages must be 0, got %d/%d", resp.AvgAccuracy, resp.AvgPerformance)
	}
}

func TestSummaryRegistryFilter(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Now().UTC().Add(-2 * time.Hour)
	f.CreateVisit(ctx, "Gulshan", "A", day)
	f.CreateVisit(ctx, "Closed Branch", "B", day)

	// Non-empty registry: only registered-active names survive.
	f.CreateShowroom(ctx, "Gulshan")
	f.CreateInactiveShowroom(ctx, "Closed Branch")

	req := testutil.NewRequest("GET", "/showroom-summary")
	rec := httptest.NewRecorder()
	h.ServeSummary(rec, req)

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Showroom != "Gulshan" {
		t.Fatalf("expected only Gulshan, got %+v", resp.Items)
	}
}

func TestSummaryEmptyRegistryKeepsAllRows(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Now().UTC().Add(-2 * time.Hour)
	f.CreateVisit(ctx, "Unregistered", "A", day)
	f.CreateVisit(ctx, "", "B", day) // blank branch is a valid key

	req := testutil.NewRequest("GET", "/showroom-summary")
	rec := httptest.NewRecorder()
	h.ServeSummary(rec, req)

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("empty registry must not filter, got %d items", len(resp.Items))
	}
}

func TestSummaryInactiveStatus(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Last activity well past the 24h window.
	old := time.Now().UTC().Add(-72 * time.Hour)
	f.CreateVisit(ctx, "Gulshan", "A", old)

	start := old.Add(-24 * time.Hour)
	end := time.Now().UTC().Add(24 * time.Hour)
	req := testutil.NewRequest("GET", "/showroom-summary"+rangeQuery(start, end))
	rec := httptest.NewRecorder()
	h.ServeSummary(rec, req)

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	if resp.Items[0].Status != "Inactive" {
		t.Errorf("status: got %q, want Inactive", resp.Items[0].Status)
	}
}

func TestSummaryInvalidDateSelectsNothing(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateVisit(ctx, "Gulshan", "A", time.Now().UTC().Add(-time.Hour))

	req := testutil.NewRequest("GET", "/showroom-summary?start=not-a-date")
	rec := httptest.NewRecorder()
	h.ServeSummary(rec, req)

	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("invalid date must select nothing, got %d items", len(resp.Items))
	}
}

func TestReportGroupsByShowroomAndCategory(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Now().UTC().Add(-2 * time.Hour)
	f.CreateVisitInCategory(ctx, "Gulshan", "Sofas", "A", day)
	f.CreateVisitInCategory(ctx, "Gulshan", "Beds", "B", day)
	f.CreateFeedbackInCategory(ctx, "Gulshan", "Sofas", "A", day)

	req := testutil.NewRequest("GET", "/showroom-report")
	rec := httptest.NewRecorder()
	h.ServeReport(rec, req)

	var resp reportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(resp.Rows), resp.Rows)
	}
	// Sorted: Beds before Sofas.
	if resp.Rows[0].Category != "Beds" || resp.Rows[0].CustomerCount != 1 || resp.Rows[0].FeedbackCount != 0 {
		t.Errorf("Beds row: %+v", resp.Rows[0])
	}
	if resp.Rows[1].Category != "Sofas" || resp.Rows[1].CustomerCount != 1 || resp.Rows[1].FeedbackCount != 1 {
		t.Errorf("Sofas row: %+v", resp.Rows[1])
	}
}

func TestReportCategoryFilterCollapses(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Now().UTC().Add(-2 * time.Hour)
	f.CreateVisitInCategory(ctx, "Gulshan", "Sofas", "A", day)
	f.CreateVisitInCategory(ctx, "Gulshan", "Beds", "B", day)
	f.CreateFeedbackInCategory(ctx, "Gulshan", "Sofas", "C", day)

	// Filter matches case-insensitively even though stored text differs
	// in case from the query value.
	req := testutil.NewRequest("GET", "/showroom-report?category=sofas")
	rec := httptest.NewRecorder()
	h.ServeReport(rec, req)

	var resp reportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("expected 1 collapsed row, got %d: %+v", len(resp.Rows), resp.Rows)
	}
	row := resp.Rows[0]
	if row.Showroom != "Gulshan" || row.CustomerCount != 1 || row.FeedbackCount != 1 {
		t.Errorf("collapsed row: %+v", row)
	}
}

func TestReportJoinIsByteIdentical(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Now().UTC().Add(-2 * time.Hour)
	// Same showroom name in different case: two separate rows, never
	// merged, even though a filter would match both.
	f.CreateVisit(ctx, "Gulshan", "A", day)
	f.CreateFeedback(ctx, "GULSHAN", "A", day)

	req := testutil.NewRequest("GET", "/showroom-report?showroom=gulshan")
	rec := httptest.NewRecorder()
	h.ServeReport(rec, req)

	var resp reportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("case-different names must not merge, got %d rows: %+v", len(resp.Rows), resp.Rows)
	}
}

func TestDailyTrend(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d1 := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	// Day 1: two unique visitors, one feedback, one sale.
	f.CreateVisit(ctx, "Gulshan", "A", d1)
	f.CreateVisit(ctx, "Gulshan", "B", d1.Add(time.Hour))
	f.CreateFeedback(ctx, "Gulshan", "A", d1.Add(2*time.Hour))
	f.CreateSale(ctx, "Gulshan", 1500, d1.Add(3*time.Hour))
	// Day 3 (day 2 has no activity): visitors only.
	f.CreateVisit(ctx, "Gulshan", "C", d3)

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	req := testutil.NewRequest("GET", "/showroom-daily"+rangeQuery(start, end))
	rec := httptest.NewRecorder()
	h.ServeDaily(rec, req)

	var resp dailyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}

	// Empty day 2026-03-11 is absent, not zero-filled.
	if len(resp.Days) != 2 {
		t.Fatalf("expected 2 days, got %d: %+v", len(resp.Days), resp.Days)
	}
	day1 := resp.Days[0]
	if day1.Day != "2026-03-10" || day1.Visitors != 2 || day1.Accuracy != 50 || day1.Sales != 1500 {
		t.Errorf("day1: %+v", day1)
	}
	day3 := resp.Days[1]
	if day3.Day != "2026-03-12" || day3.Visitors != 1 || day3.Accuracy != 0 {
		t.Errorf("day3: %+v", day3)
	}

	if resp.TotalVisitors != 3 {
		t.Errorf("totalVisitors: got %d, want 3", resp.TotalVisitors)
	}
	// Zero-accuracy days are excluded from the average, so the average
	// is day1's 50, not (50+0)/2.
	if resp.AvgAccuracy != 50 {
		t.Errorf("avgAccuracy: got %d, want 50", resp.AvgAccuracy)
	}
}

func TestDailyShowroomFilter(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d1 := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	f.CreateVisit(ctx, "Gulshan", "A", d1)
	f.CreateVisit(ctx, "Banani", "B", d1)
	f.CreateSale(ctx, "Banani", 999, d1)

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	req := testutil.NewRequest("GET", "/showroom-daily"+rangeQuery(start, end)+"&showroom=gulshan")
	rec := httptest.NewRecorder()
	h.ServeDaily(rec, req)

	var resp dailyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(resp.Days))
	}
	if resp.Days[0].Visitors != 1 || resp.Days[0].Sales != 0 {
		t.Errorf("filtered day: %+v", resp.Days[0])
	}
}

func TestPct(t *testing.T) {
	cases := []struct {
		num, den, want int
	}{
		{1, 2, 50},
		{0, 5, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
	}
	for _, c := range cases {
		if got := pct(c.num, c.den); got != c.want {
			t.Errorf("pct(%d, %d): got %d, want %d", c.num, c.den, got, c.want)
		}
	}
}
