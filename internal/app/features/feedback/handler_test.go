package feedback

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	feedbackstore "github.com/showroomhq/showroomhub/internal/app/store/feedback"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/showroomhq/showroomhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(feedbackstore.New(db), zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestSubmitPublic(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"showroom":"Gulshan","category":"Sofa","phone":"01711-1","comment":"great <script>x</script>service","rating":5}`
	req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeSubmit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var fb models.Feedback
	if err := json.Unmarshal(rec.Body.Bytes(), &fb); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if fb.Status != models.FeedbackNew {
		t.Errorf("status: got %q, want new", fb.Status)
	}
	if strings.Contains(fb.Comment, "script") {
		t.Errorf("comment not stripped: %q", fb.Comment)
	}
	// The showroom string is stored verbatim; the aggregators join on it.
	if fb.Showroom != "Gulshan" {
		t.Errorf("showroom: got %q", fb.Showroom)
	}
}

func TestSubmitValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing phone", `{"showroom":"Gulshan"}`},
		{"missing showroom", `{"phone":"01711-1"}`},
		{"rating too high", `{"showroom":"G","phone":"01711-1","rating":9}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/feedback", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeSubmit(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestListFilters(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	f.CreateFeedback(ctx, "Gulshan", "01-1", now.Add(-time.Hour))
	f.CreateFeedback(ctx, "Banani", "01-2", now.Add(-time.Hour))

	req := testutil.WithUser(
		httptest.NewRequest("GET", "/api/user/feedback", nil),
		testutil.ShowroomUser("Banani"))
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Showroom != "Banani" {
		t.Errorf("items: %+v, want only Banani", resp.Items)
	}
}

func TestSetStatus(t *testing.T) {
	h, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fb := f.CreateFeedback(ctx, "Gulshan", "01-1", time.Now().UTC().Add(-time.Hour))

	do := func(id, body string) *httptest.ResponseRecorder {
		req := testutil.WithUser(
			httptest.NewRequest("PUT", "/api/user/feedback/"+id+"/status", strings.NewReader(body)),
			testutil.AdminUser())
		req = testutil.WithChiURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		h.ServeSetStatus(rec, req)
		return rec
	}

	if rec := do(fb.ID.Hex(), `{"status":"reviewed"}`); rec.Code != http.StatusOK {
		t.Fatalf("reviewed: got %d, body %s", rec.Code, rec.Body.String())
	}
	got, err := h.Feedback.GetByID(ctx, fb.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.FeedbackReviewed {
		t.Errorf("status: got %q, want reviewed", got.Status)
	}

	if rec := do(fb.ID.Hex(), `{"status":"bogus"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: got %d, want 400", rec.Code)
	}
	if rec := do("aaaaaaaaaaaaaaaaaaaaaaaa", `{"status":"resolved"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rec.Code)
	}
	if rec := do("nothex", `{"status":"resolved"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: got %d, want 400", rec.Code)
	}
}
