// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds LUNICAR-specific configuration. WAFFLE's CoreConfig
// covers ports, TLS, environment, logging and CORS; everything else the
// site needs lives here.
type AppConfig struct {
	// Public identity, used for canonical URLs, JSON-LD and the sitemap.
	SiteURL string

	// TrustProxy takes the client IP from forwarding headers. Enable it
	// only behind a reverse proxy that overwrites them.
	TrustProxy bool

	// Content backend: "file" keeps one JSON file per collection in
	// DataDir, "mongo" keeps one document per collection.
	StoreBackend     string
	DataDir          string
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64
	SeedContent      bool // write default cities, themes and article into empty collections

	// Admin API
	AdminPassword        string
	AdminPasswordHash    string // bcrypt; takes precedence over AdminPassword
	AdminSessionIdle     time.Duration
	AdminLoginAttempts   int
	AdminLoginLockout    time.Duration
	AdminSweepInterval   time.Duration
	BackendProbeInterval time.Duration

	// Timeouts (zero keeps the default)
	TimeoutShort   time.Duration
	TimeoutLong    time.Duration
	TimeoutRequest time.Duration

	// Wizard session (id cookie plus files in SessionDir) and form CSRF
	SessionKey    string
	SessionName   string
	SessionDomain string
	SessionDir    string
	CSRFKey       string

	// Upload storage
	StorageType      string // "local" or "s3"
	StorageLocalPath string
	StorageLocalURL  string

	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// Upload limits per request
	UploadMaxFiles int
	UploadMaxBytes int64

	// Notification email
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	MailTo       string
}
