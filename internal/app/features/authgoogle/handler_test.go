package authgoogle

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/store/oauthstate"
	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/testutil"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *oauthstate.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	sm, err := auth.NewSessionManager(testSessionKey, "showroomhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	states := oauthstate.New(db)
	h := NewHandler(userstore.New(db), sm, states,
		"client-id", "client-secret", "http://localhost:8080/auth/google/callback",
		zap.NewNop())
	return h, states
}

func TestServeLoginRedirectsToGoogle(t *testing.T) {
	h, states := newTestHandler(t)

	req := httptest.NewRequest("GET", "/auth/google?return=/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != 307 {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "accounts.google.com") {
		t.Fatalf("expected redirect to Google, got %q", loc)
	}

	// The state embedded in the redirect must be redeemable exactly once.
	u, err := url.Parse(loc)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	state := u.Query().Get("state")
	if state == "" {
		t.Fatal("redirect URL has no state parameter")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	returnURL, valid, err := states.Validate(ctx, state)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !valid {
		t.Fatal("saved state did not validate")
	}
	if returnURL != "/dashboard" {
		t.Errorf("return URL: got %q", returnURL)
	}
	if _, valid, _ := states.Validate(ctx, state); valid {
		t.Error("state validated twice")
	}
}

func TestServeLoginUnconfigured(t *testing.T) {
	h, _ := newTestHandler(t)
	h.ClientSecret = ""

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != 404 {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestServeCallbackRejections(t *testing.T) {
	h, states := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := states.Save(ctx, "known-state", "/", time.Now().Add(stateTTL)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cases := []struct {
		name      string
		query     string
		wantError string
	}{
		{"provider error", "error=access_denied", "google_denied"},
		{"missing state", "code=abc", "invalid_state"},
		{"unknown state", "state=bogus&code=abc", "invalid_state"},
		{"missing code", "state=known-state", "invalid_code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/auth/google/callback?"+tc.query, nil)
			rec := httptest.NewRecorder()
			h.ServeCallback(rec, req)

			if rec.Code != 303 {
				t.Fatalf("status: got %d", rec.Code)
			}
			loc := rec.Header().Get("Location")
			if !strings.Contains(loc, "error="+tc.wantError) {
				t.Errorf("redirect: got %q, want error=%s", loc, tc.wantError)
			}
		})
	}
}

func TestSafeReturn(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "/dashboard"},
		{"/reports", "/reports"},
		{"//evil.example", "/dashboard"},
		{"https://evil.example", "/dashboard"},
	}
	for _, tc := range cases {
		if got := safeReturn(tc.in, "/dashboard"); got != tc.want {
			t.Errorf("safeReturn(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
