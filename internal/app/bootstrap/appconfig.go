// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to this service.
// SMS gateway settings deliberately do NOT live here: they sit in the
// settings document so admins can change them from the dashboard
// without a redeploy.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Google OAuth (optional; sign-in is hidden when unset)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}
