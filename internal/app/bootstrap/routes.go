// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/letkeeper/letkeeper/internal/app/features/accounts"
	activityfeature "github.com/letkeeper/letkeeper/internal/app/features/activity"
	geofeature "github.com/letkeeper/letkeeper/internal/app/features/geo"
	guestsfeature "github.com/letkeeper/letkeeper/internal/app/features/guests"
	healthfeature "github.com/letkeeper/letkeeper/internal/app/features/health"
	propertiesfeature "github.com/letkeeper/letkeeper/internal/app/features/properties"
	publicfeature "github.com/letkeeper/letkeeper/internal/app/features/public"
	usersfeature "github.com/letkeeper/letkeeper/internal/app/features/users"
	"github.com/letkeeper/letkeeper/internal/app/media"
	activitystore "github.com/letkeeper/letkeeper/internal/app/store/activity"
	accountstore "github.com/letkeeper/letkeeper/internal/app/store/accounts"
	gueststore "github.com/letkeeper/letkeeper/internal/app/store/guests"
	propertystore "github.com/letkeeper/letkeeper/internal/app/store/properties"
	"github.com/letkeeper/letkeeper/internal/app/system/auditlog"
	"github.com/letkeeper/letkeeper/internal/app/system/auth"
	"github.com/letkeeper/letkeeper/internal/app/system/geocode"
	"github.com/letkeeper/letkeeper/internal/app/system/ratelimit"
	"github.com/letkeeper/letkeeper/internal/app/system/storage"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. It builds the token manager,
// the stores, the S3-backed media manager and the geocoding client,
// then mounts one feature router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.LetKeeperMongoDatabase

	tokens, err := auth.NewManager(appCfg.JWTSecret, appCfg.AccessTokenExpiry, appCfg.RefreshTokenExpiry)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	objects, err := storage.NewS3Store(context.Background(), appCfg.S3Bucket, appCfg.S3Region)
	if err != nil {
		logger.Error("object store init failed", zap.Error(err))
		return nil, err
	}

	accounts := accountstore.New(db)
	properties := propertystore.New(db)
	guests := gueststore.New(db)
	activities := activitystore.New(db)

	audit := auditlog.New(activities, logger)
	mediaMgr := media.New(properties, objects, appCfg.S3Folder, logger)
	geocoder := geocode.New(geocode.Config{
		BaseURL: appCfg.GeoBaseURL,
		Version: appCfg.GeoVersion,
		Ext:     appCfg.GeoExt,
		APIKey:  appCfg.GeoAPIKey,
	})

	r := chi.NewRouter()

	// Global auth middleware: injects the caller into context when a
	// valid bearer token is presented. Per-feature middleware decides
	// whether anonymous callers are acceptable.
	r.Use(tokens.LoadActor)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.LetKeeperMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication and self-service account routes
	accountsHandler := accountsfeature.NewHandler(accounts, tokens, audit, ratelimit.NewSignInLimiter(), logger)
	r.Mount("/account", accountsfeature.Routes(accountsHandler))

	// Staff administration (masteradmin only)
	usersHandler := usersfeature.NewHandler(accounts, audit, logger)
	r.Mount("/user", usersfeature.Routes(usersHandler))

	// Property listings and media
	propertiesHandler := propertiesfeature.NewHandler(properties, accounts, mediaMgr, audit, logger)
	r.Mount("/property", propertiesfeature.Routes(propertiesHandler))

	// Guest bookings
	guestsHandler := guestsfeature.NewHandler(guests, properties, audit, logger)
	r.Mount("/guest", guestsfeature.Routes(guestsHandler))

	// Audit trail views (masteradmin only)
	activityHandler := activityfeature.NewHandler(activities, logger)
	r.Mount("/activity", activityfeature.Routes(activityHandler))

	// Geocoding lookups
	geoHandler := geofeature.NewHandler(geocoder, logger)
	r.Mount("/map", geofeature.Routes(geoHandler))

	// Unauthenticated listing view
	publicHandler := publicfeature.NewHandler(db, logger)
	r.Mount("/public", publicfeature.Routes(publicHandler))

	return r, nil
}
