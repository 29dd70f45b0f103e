package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx(t *testing.T) {
	id := primitive.NewObjectID()

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Name: "Admin", Role: "Admin"})

	role, name, userID, ok := UserCtx(req)
	if !ok {
		t.Fatal("expected ok")
	}
	if role != "admin" {
		t.Errorf("role: got %q, want lowercased %q", role, "admin")
	}
	if name != "Admin" {
		t.Errorf("name: got %q", name)
	}
	if userID != id {
		t.Errorf("userID: got %v, want %v", userID, id)
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, _, userID, ok := UserCtx(req)
	if ok {
		t.Error("expected ok=false")
	}
	if role != "visitor" {
		t.Errorf("role: got %q, want visitor", role)
	}
	if userID != primitive.NilObjectID {
		t.Errorf("userID: got %v, want nil", userID)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-objectid", Role: "admin"})

	if _, _, _, ok := UserCtx(req); ok {
		t.Error("malformed ID must fail closed")
	}
}

func TestRoleHelpers(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id, Role: "officeadmin"})

	if !IsOfficeAdmin(req) {
		t.Error("IsOfficeAdmin should be true")
	}
	if IsAdmin(req) || IsShowroom(req) {
		t.Error("other role helpers should be false")
	}
	if !HasAnyRole(req, "admin", "officeAdmin") {
		t.Error("HasAnyRole should match case-insensitively")
	}
	if HasAnyRole(req, "admin", "showroom") {
		t.Error("HasAnyRole should not match absent roles")
	}
}

func TestUserShowroom(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id, Role: "showroom", Showroom: "Gulshan"})

	if got := UserShowroom(req); got != "Gulshan" {
		t.Errorf("UserShowroom: got %q, want Gulshan", got)
	}

	if got := UserShowroom(httptest.NewRequest("GET", "/", nil)); got != "" {
		t.Errorf("UserShowroom without user: got %q, want empty", got)
	}
}
