// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	activitystore "github.com/letkeeper/letkeeper/internal/app/store/activity"
	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	gueststore "github.com/letkeeper/letkeeper/internal/app/store/guests"
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
)

// ConnectDB establishes the MongoDB connection and bundles it into
// DBDeps for the rest of the lifecycle hooks.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		LetKeeperMongoClient:   client,
		LetKeeperMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes every collection depends on: unique
// account email/alias, unique property alias, the 2dsphere position
// index behind the proximity search, and the booking and activity sort
// indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.LetKeeperMongoDatabase

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"accounts", accountstore.New(db).EnsureIndexes},
		{"properties", propertystore.New(db).EnsureIndexes},
		{"guests", gueststore.New(db).EnsureIndexes},
		{"activities", activitystore.New(db).EnsureIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", e.name, err)
		}
	}

	logger.Info("database indexes ensured")
	return nil
}
