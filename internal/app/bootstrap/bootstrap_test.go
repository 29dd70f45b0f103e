package bootstrap

import (
	"net/http/httptest"
	"testing"

	"github.com/showroomhq/showroomhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func TestValidateConfig(t *testing.T) {
	core := &config.CoreConfig{}

	cases := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{"valid minimal", AppConfig{MongoURI: "mongodb://localhost:27017", MongoDatabase: "showroomhub"}, false},
		{"bad uri", AppConfig{MongoURI: "not-a-uri", MongoDatabase: "showroomhub"}, true},
		{"empty database", AppConfig{MongoURI: "mongodb://localhost:27017"}, true},
		{"partial oauth", AppConfig{
			MongoURI:       "mongodb://localhost:27017",
			MongoDatabase:  "showroomhub",
			GoogleClientID: "id-only",
		}, true},
		{"full oauth", AppConfig{
			MongoURI:           "mongodb://localhost:27017",
			MongoDatabase:      "showroomhub",
			GoogleClientID:     "id",
			GoogleClientSecret: "secret",
			GoogleRedirectURL:  "http://localhost:8080/auth/google/callback",
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(core, tc.cfg, zap.NewNop())
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateConfig: err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	if err := EnsureSchema(ctx, &config.CoreConfig{}, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// Running it again must be a no-op, not an error.
	if err := EnsureSchema(ctx, &config.CoreConfig{}, AppConfig{}, deps, zap.NewNop()); err != nil {
		t.Fatalf("EnsureSchema (second run): %v", err)
	}
}

func TestBuildHandlerRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)

	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}
	appCfg := AppConfig{SessionKey: testSessionKey, SessionName: "showroomhub_session"}

	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, appCfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("BuildHandler: %v", err)
	}

	// Health is public.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != 200 {
		t.Errorf("/health: got %d", rec.Code)
	}

	// Metrics is public.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Errorf("/metrics: got %d", rec.Code)
	}

	// Analytics requires authentication.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/user/analytics/showroom-summary", nil))
	if rec.Code != 401 {
		t.Errorf("unauthenticated analytics: got %d, want 401", rec.Code)
	}

	// Public feedback submission is reachable without a session but
	// still validates its body.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/feedback", nil))
	if rec.Code != 400 {
		t.Errorf("empty feedback submit: got %d, want 400", rec.Code)
	}
}
