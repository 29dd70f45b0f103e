// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FetchUser implements auth.UserFetcher. Session-cookie logins are
// re-resolved against the database on every request so that disabled
// accounts and role changes take effect immediately.
func (s *Store) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := s.GetByID(ctx, oid)
	if err != nil {
		return nil
	}
	if u.Status == "disabled" {
		return nil
	}

	return &auth.SessionUser{
		ID:       u.ID.Hex(),
		Name:     u.FullName,
		LoginID:  u.LoginID,
		Role:     u.Role,
		Showroom: u.Showroom,
	}
}
