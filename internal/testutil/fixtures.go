package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateShowroom inserts an active showroom registry entry.
func (f *Fixtures) CreateShowroom(ctx context.Context, name string) models.Showroom {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Showroom{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Active:    true,
		Status:    "Active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("showrooms").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test showroom: %v", err)
	}
	return s
}

// CreateInactiveShowroom inserts a registry entry that the analytics
// active-set must exclude.
func (f *Fixtures) CreateInactiveShowroom(ctx context.Context, name string) models.Showroom {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Showroom{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Active:    false,
		Status:    "Inactive",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("showrooms").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create inactive test showroom: %v", err)
	}
	return s
}

// CreateCategory inserts an active product category.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("categories").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

// CreateVisit inserts a visit with the given showroom, phone, and
// created-at instant. Category may be empty.
func (f *Fixtures) CreateVisit(ctx context.Context, showroom, phone string, at time.Time) models.Visit {
	f.t.Helper()
	return f.CreateVisitInCategory(ctx, showroom, "", phone, at)
}

// CreateVisitInCategory inserts a visit with an explicit category.
func (f *Fixtures) CreateVisitInCategory(ctx context.Context, showroom, category, phone string, at time.Time) models.Visit {
	f.t.Helper()

	v := models.Visit{
		ID:             primitive.NewObjectID(),
		Name:           "Test Customer",
		Phone:          phone,
		ShowroomBranch: showroom,
		Category:       category,
		CreatedAt:      at,
		UpdatedAt:      at,
	}

	if _, err := f.db.Collection("customers").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test visit: %v", err)
	}
	return v
}

// CreateFeedback inserts a feedback event for the given showroom, phone,
// and created-at instant. Category may be empty.
func (f *Fixtures) CreateFeedback(ctx context.Context, showroom, phone string, at time.Time) models.Feedback {
	f.t.Helper()
	return f.CreateFeedbackInCategory(ctx, showroom, "", phone, at)
}

// CreateFeedbackInCategory inserts a feedback event with an explicit category.
func (f *Fixtures) CreateFeedbackInCategory(ctx context.Context, showroom, category, phone string, at time.Time) models.Feedback {
	f.t.Helper()

	fb := models.Feedback{
		ID:        primitive.NewObjectID(),
		Showroom:  showroom,
		Category:  category,
		Phone:     phone,
		Status:    models.FeedbackNew,
		CreatedAt: at,
		UpdatedAt: at,
	}

	if _, err := f.db.Collection("feedback").InsertOne(ctx, fb); err != nil {
		f.t.Fatalf("failed to create test feedback: %v", err)
	}
	return fb
}

// CreateSale inserts a sale amount for the given showroom.
func (f *Fixtures) CreateSale(ctx context.Context, showroom string, amount float64, at time.Time) models.Sale {
	f.t.Helper()

	s := models.Sale{
		ID:        primitive.NewObjectID(),
		Showroom:  showroom,
		Amount:    amount,
		CreatedAt: at,
	}

	if _, err := f.db.Collection("sales").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test sale: %v", err)
	}
	return s
}

// CreateUser inserts a dashboard account with the given role. Showroom
// may be empty for admin and office-admin accounts.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, loginID, role, showroom string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		LoginID:    loginID,
		LoginIDCI:  text.Fold(loginID),
		AuthMethod: "password",
		Role:       role,
		Showroom:   showroom,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateDailyCount inserts a manual daily count for the given office admin.
func (f *Fixtures) CreateDailyCount(ctx context.Context, adminID primitive.ObjectID, date, showroom string, count float64) models.DailyCount {
	f.t.Helper()

	dc := models.DailyCount{
		ID:            primitive.NewObjectID(),
		OfficeAdminID: adminID,
		Date:          date,
		Showroom:      showroom,
		Count:         count,
		UpdatedAt:     time.Now().UTC(),
	}

	if _, err := f.db.Collection("daily_counts").InsertOne(ctx, dc); err != nil {
		f.t.Fatalf("failed to create test daily count: %v", err)
	}
	return dc
}
