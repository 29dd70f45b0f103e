// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles understood by the backend.
const (
	RoleAdmin       = "admin"
	RoleOfficeAdmin = "officeadmin"
	RoleShowroom    = "showroom"
)

// UserCtx returns the caller's role (lowercased), name, Mongo ObjectID,
// and a found flag. ok=false means no authenticated user or a malformed
// user ID in the session; callers can trust ok=true implies a valid
// ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Fail closed on session corruption.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the caller is a head-office admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleAdmin
}

// IsOfficeAdmin reports whether the caller is an office admin.
func IsOfficeAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleOfficeAdmin
}

// IsShowroom reports whether the caller is a showroom terminal account.
func IsShowroom(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleShowroom
}

// UserShowroom returns the showroom branch a showroom account is pinned
// to, or "" for roles that are not branch-scoped.
func UserShowroom(r *http.Request) string {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return ""
	}
	return user.Showroom
}

// HasAnyRole reports whether the caller has any of the given roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
