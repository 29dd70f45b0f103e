package feedbackstore

import (
	"errors"
	"testing"
	"time"

	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/showroomhq/showroomhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateDefaultsStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fb, err := s.Create(ctx, models.Feedback{
		Showroom: "Gulshan",
		Phone:    "017 1234-5678",
		Comment:  "great service",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if fb.Status != models.FeedbackNew {
		t.Errorf("default status: got %q, want new", fb.Status)
	}
	if fb.Phone != "01712345678" {
		t.Errorf("phone not normalized: %q", fb.Phone)
	}
}

func TestListByStatusAndShowroom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	f.CreateFeedback(ctx, "Gulshan", "0170", base)
	f.CreateFeedback(ctx, "Gulshan", "0171", base.Add(time.Hour))
	f.CreateFeedback(ctx, "Banani", "0172", base)

	got, err := s.List(ctx, ListFilter{Showroom: "Gulshan", Status: "new"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Error("expected newest-first ordering")
	}
}

func TestSetStatusTransitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fb, err := s.Create(ctx, models.Feedback{Showroom: "Gulshan", Phone: "0170"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.SetStatus(ctx, fb.ID, "Reviewed"); err != nil {
		t.Fatalf("SetStatus reviewed failed: %v", err)
	}
	if err := s.SetStatus(ctx, fb.ID, "resolved"); err != nil {
		t.Fatalf("SetStatus resolved failed: %v", err)
	}

	got, err := s.GetByID(ctx, fb.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.FeedbackResolved {
		t.Errorf("status: got %q, want resolved", got.Status)
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	fb, err := s.Create(ctx, models.Feedback{Showroom: "Gulshan", Phone: "0170"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.SetStatus(ctx, fb.ID, "archived"); !errors.Is(err, ErrBadStatus) {
		t.Errorf("expected ErrBadStatus, got %v", err)
	}
}

func TestSetStatusMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := s.SetStatus(ctx, primitive.NewObjectID(), "reviewed")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}
