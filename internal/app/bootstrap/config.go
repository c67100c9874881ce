// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for LetKeeper.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: LETKEEPER_MONGO_URI, LETKEEPER_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "letkeeper", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Token configuration
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "JWT signing secret (at least 32 bytes; must be strong in production)"},
	{Name: "access_token_expiry", Default: "1h", Desc: "Access token lifetime"},
	{Name: "refresh_token_expiry", Default: "23h", Desc: "Refresh token lifetime"},

	// S3 media storage
	{Name: "s3_bucket", Default: "", Desc: "S3 bucket for property media"},
	{Name: "s3_region", Default: "", Desc: "AWS region for the media bucket"},
	{Name: "s3_folder", Default: "properties", Desc: "Object key prefix for property media"},

	// Geocoding service
	{Name: "geocode_base_url", Default: "api.tomtom.com", Desc: "Geocoding API host"},
	{Name: "geocode_version", Default: "2", Desc: "Geocoding API version"},
	{Name: "geocode_ext", Default: "json", Desc: "Geocoding response format"},
	{Name: "geocode_api_key", Default: "", Desc: "Geocoding API key"},

	// Database operation timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health-check ping timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document operation timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "Multi-document operation timeout"},
	{Name: "timeout_long", Default: "30s", Desc: "Upload and fan-out operation timeout"},

	// MasterAdmin bootstrap
	{Name: "masteradmin_email", Default: "", Desc: "Email of an account promoted to masteradmin on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles loading from .env and
// config files, reading environment variables (WAFFLE_* for core,
// LETKEEPER_* for app), parsing command-line flags, and merging with
// precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "LETKEEPER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:          appValues.String("jwt_secret"),
		AccessTokenExpiry:  appValues.Duration("access_token_expiry", time.Hour),
		RefreshTokenExpiry: appValues.Duration("refresh_token_expiry", 23*time.Hour),

		S3Bucket: appValues.String("s3_bucket"),
		S3Region: appValues.String("s3_region"),
		S3Folder: appValues.String("s3_folder"),

		GeoBaseURL: appValues.String("geocode_base_url"),
		GeoVersion: appValues.String("geocode_version"),
		GeoExt:     appValues.String("geocode_ext"),
		GeoAPIKey:  appValues.String("geocode_api_key"),

		TimeoutPing:   appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),

		MasterAdminEmail: appValues.String("masteradmin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// LetKeeper validates the MongoDB URI format and the JWT secret length
// to catch configuration errors early, before attempting to connect or
// serve a request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 bytes, got %d", len(appCfg.JWTSecret))
	}

	if appCfg.S3Bucket == "" || appCfg.S3Region == "" {
		return fmt.Errorf("s3_bucket and s3_region are required for property media storage")
	}

	if appCfg.GeoAPIKey == "" {
		logger.Warn("geocode_api_key is not set; address lookups will fail upstream")
	}

	return nil
}
