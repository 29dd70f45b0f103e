// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	categorystore "github.com/showroomhq/showroomhub/internal/app/store/categories"
	customerstore "github.com/showroomhq/showroomhub/internal/app/store/customers"
	dailycountstore "github.com/showroomhq/showroomhub/internal/app/store/dailycounts"
	feedbackstore "github.com/showroomhq/showroomhub/internal/app/store/feedback"
	"github.com/showroomhq/showroomhub/internal/app/store/oauthstate"
	salestore "github.com/showroomhq/showroomhub/internal/app/store/sales"
	showroomstore "github.com/showroomhq/showroomhub/internal/app/store/showrooms"
	tokenstore "github.com/showroomhq/showroomhub/internal/app/store/tokens"
	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a
// ping before startup proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates every collection's indexes. Index creation is
// idempotent, so this runs on each startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", userstore.New(db).EnsureIndexes},
		{"auth_tokens", tokenstore.New(db).EnsureIndexes},
		{"oauth_states", oauthstate.New(db).EnsureIndexes},
		{"customers", customerstore.New(db).EnsureIndexes},
		{"feedback", feedbackstore.New(db).EnsureIndexes},
		{"showrooms", showroomstore.New(db).EnsureIndexes},
		{"categories", categorystore.New(db).EnsureIndexes},
		{"daily_counts", dailycountstore.New(db).EnsureIndexes},
		{"sales", salestore.New(db).EnsureIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", e.name, err)
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
