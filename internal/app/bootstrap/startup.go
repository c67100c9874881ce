// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/app/system/normalize"
	"github.com/letkeeper/letkeeper/internal/app/system/timeouts"
	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	if appCfg.MasterAdminEmail != "" {
		if err := ensureMasterAdmin(ctx, deps, appCfg.MasterAdminEmail, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureMasterAdmin promotes the named account to masteradmin so a
// deployment always has an administrator who can manage staff. The
// account must already exist; accounts are only created through
// /account/signup, which needs a password.
func ensureMasterAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	c := deps.LetKeeperMongoDatabase.Collection("accounts")
	email = normalize.Email(email)

	var acct models.Account
	err := c.FindOne(ctx, bson.M{"email": email, "is_deleted": false}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Warn("masteradmin account not found; create it via signup first",
			zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	if acct.Role == models.RoleMasterAdmin {
		return nil
	}

	_, err = c.UpdateOne(ctx, bson.M{"_id": acct.ID}, bson.M{"$set": bson.M{
		"role":       models.RoleMasterAdmin,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}

	logger.Info("promoted account to masteradmin",
		zap.String("email", email),
		zap.String("previous_role", acct.Role))
	return nil
}
