// internal/app/store/tokens/tokenstore.go

// Package tokenstore manages the bearer API tokens issued at login.
// Tokens are opaque uuid strings; expiry is enforced both at lookup time
// and by a TTL index that reaps stale documents.
package tokenstore

import (
	"context"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 30 * 24 * time.Hour

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("auth_tokens"),
		users: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique token index and the TTL reaper on
// expires_at.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_tokens_token"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_tokens_ttl"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_tokens_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Issue creates and stores a fresh token for the user.
func (s *Store) Issue(ctx context.Context, user models.User) (models.AuthToken, error) {
	now := time.Now().UTC()
	tok := models.AuthToken{
		ID:        primitive.NewObjectID(),
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(DefaultTTL),
	}
	if _, err := s.c.InsertOne(ctx, tok); err != nil {
		return models.AuthToken{}, err
	}
	return tok, nil
}

// Revoke deletes one token. Deleting an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token": token})
	return err
}

// RevokeAllForUser deletes every token belonging to a user, forcing a
// fresh login everywhere. Used when an account is disabled.
func (s *Store) RevokeAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// FetchToken implements auth.TokenFetcher. It returns nil for unknown or
// expired tokens and for tokens whose account has been disabled since
// issuance.
func (s *Store) FetchToken(ctx context.Context, token string) *auth.SessionUser {
	var tok models.AuthToken
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&tok)
	if err != nil {
		return nil
	}

	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": tok.UserID}).Decode(&u); err != nil {
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
