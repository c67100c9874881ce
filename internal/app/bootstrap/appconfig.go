// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig
// handles framework-level settings like HTTP ports, TLS, logging level
// and CORS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret          string        // HMAC signing secret (at least 32 bytes)
	AccessTokenExpiry  time.Duration // Access token lifetime
	RefreshTokenExpiry time.Duration // Refresh token lifetime

	// S3 media storage configuration
	S3Bucket string // Bucket for property media
	S3Region string // AWS region
	S3Folder string // Object key prefix for uploads

	// Geocoding service configuration
	GeoBaseURL string // Geocoding API host
	GeoVersion string // Geocoding API version path segment
	GeoExt     string // Response format extension (e.g., "json")
	GeoAPIKey  string // Geocoding API key

	// Database operation timeouts
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// MasterAdminEmail names an account promoted to masteradmin on
	// startup, so a fresh deployment always has an administrator.
	MasterAdminEmail string
}
