package categorystore

import (
	"errors"
	"testing"

	"github.com/showroomhq/showroomhub/internal/testutil"
)

func TestCreateListAndDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	if _, err := s.Create(ctx, "Sofas"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(ctx, "Beds"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(ctx, "sofas"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(items))
	}
	// Sorted by folded name.
	if items[0].Name != "Beds" || items[1].Name != "Sofas" {
		t.Errorf("unexpected order: %q, %q", items[0].Name, items[1].Name)
	}
}

func TestSetActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	c, err := s.Create(ctx, "Dining")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := s.SetActive(ctx, c.ID, false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	items, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if items[0].Active {
		t.Error("expected inactive category")
	}
}
