package customerstore

import (
	"errors"
	"testing"
	"time"

	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/showroomhq/showroomhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateNormalizesPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := s.Create(ctx, models.Visit{
		Name:           " Karim ",
		Phone:          "017-1234 5678",
		ShowroomBranch: "Gulshan",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if v.Phone != "01712345678" {
		t.Errorf("phone not normalized: %q", v.Phone)
	}
	if v.Name != "Karim" {
		t.Errorf("name not trimmed: %q", v.Name)
	}
	if v.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestListRangeAndShowroom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	f.CreateVisit(ctx, "Gulshan", "0170", base)
	f.CreateVisit(ctx, "Gulshan", "0171", base.Add(24*time.Hour))
	f.CreateVisit(ctx, "Banani", "0172", base)
	f.CreateVisit(ctx, "Gulshan", "0173", base.Add(72*time.Hour)) // outside range

	got, err := s.List(ctx, ListFilter{
		Showroom: "Gulshan",
		Start:    base.Add(-time.Hour),
		End:      base.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(got))
	}
	// Newest first.
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Error("expected newest-first ordering")
	}
}

func TestUpdateEditableFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := s.Create(ctx, models.Visit{Name: "A", Phone: "0170", ShowroomBranch: "Gulshan"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	notes := "asked about sofas"
	status := "Contacted"
	if err := s.Update(ctx, v.ID, UpdateFields{Notes: &notes, Status: &status}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Notes != notes {
		t.Errorf("notes: got %q", got.Notes)
	}
	if got.Status != "contacted" {
		t.Errorf("status not normalized: %q", got.Status)
	}
	// Untouched fields survive.
	if got.ShowroomBranch != "Gulshan" || got.Phone != "0170" {
		t.Errorf("unrelated fields changed: %+v", got)
	}
}

func TestUpdateMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	name := "x"
	err := s.Update(ctx, primitive.NewObjectID(), UpdateFields{Name: &name})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	v, err := s.Create(ctx, models.Visit{Name: "A", Phone: "0170", ShowroomBranch: "Gulshan"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, v.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments on second delete, got %v", err)
	}
}

func TestCountCreatedBetweenIsRaw(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// Same phone twice: the raw count must be 2, not 1.
	f.CreateVisit(ctx, "Gulshan", "0170", base)
	f.CreateVisit(ctx, "Gulshan", "0170", base.Add(time.Hour))
	f.CreateVisit(ctx, "Banani", "0171", base.Add(48*time.Hour)) // outside

	n, err := s.CountCreatedBetween(ctx, base.Add(-time.Hour), base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("CountCreatedBetween failed: %v", err)
	}
	if n != 2 {
		t.Errorf("raw count: got %d, want 2", n)
	}
}
