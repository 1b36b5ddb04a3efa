// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/lunicar/lunicar/internal/app/system/authutil"
	"github.com/lunicar/lunicar/internal/app/system/photos"
	"github.com/lunicar/lunicar/internal/app/system/timeouts"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables (LUNICAR_SITE_URL, ...).
const EnvVarPrefix = "LUNICAR"

// Development defaults. ValidateConfig refuses them in production.
const (
	defaultAdminPassword = "lunicar2024"
	defaultSessionKey    = "dev-only-change-me-please-0123456789ABCDEF"
	defaultCSRFKey       = "dev-only-csrf-key-please-change-0123456789"
)

// appConfigKeys are loaded from config files, LUNICAR_* environment
// variables and --flags, in increasing precedence.
var appConfigKeys = []config.AppKey{
	{Name: "site_url", Default: models.DefaultSiteURL, Desc: "Public base URL, without trailing slash"},
	{Name: "trust_proxy", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (only behind a trusted reverse proxy)"},

	// Content backend
	{Name: "store_backend", Default: "file", Desc: "Content backend: 'file' or 'mongo'"},
	{Name: "data_dir", Default: "./data", Desc: "Directory of the JSON collections (file backend)"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (mongo backend)"},
	{Name: "mongo_database", Default: "lunicar", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},
	{Name: "seed_content", Default: true, Desc: "Seed default cities, themes and article into empty collections"},

	// Admin API
	{Name: "admin_password", Default: defaultAdminPassword, Desc: "Admin password (ignored when admin_password_hash is set)"},
	{Name: "admin_password_hash", Default: "", Desc: "bcrypt hash of the admin password"},
	{Name: "admin_session_idle", Default: "1h", Desc: "Admin token idle timeout"},
	{Name: "admin_login_attempts", Default: 5, Desc: "Failed admin logins before lockout"},
	{Name: "admin_login_lockout", Default: "15m", Desc: "Admin lockout duration"},
	{Name: "admin_sweep_interval", Default: "60s", Desc: "Interval of the admin session and lockout sweep"},
	{Name: "backend_probe_interval", Default: "5m", Desc: "Interval of the content backend probe"},

	// Timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for content reads"},
	{Name: "timeout_long", Default: "20s", Desc: "Timeout for writes and photo uploads"},
	{Name: "timeout_request", Default: "30s", Desc: "Overall per-request timeout"},

	// Wizard session and CSRF
	{Name: "session_key", Default: defaultSessionKey, Desc: "Wizard session signing key (must be strong in production)"},
	{Name: "session_name", Default: "lunicar-reprise", Desc: "Wizard session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Cookie domain (blank means current host)"},
	{Name: "session_dir", Default: "./data/sessions", Desc: "Directory of the server-side wizard session files"},
	{Name: "csrf_key", Default: defaultCSRFKey, Desc: "CSRF token signing key (32+ chars in production)"},

	// Upload storage
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded photos"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local uploads"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	{Name: "upload_max_files", Default: photos.DefaultMaxFiles, Desc: "Maximum photos per request"},
	{Name: "upload_max_bytes", Default: int(photos.DefaultMaxBytes), Desc: "Maximum size of one photo in bytes"},

	// Notification email
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank simulates sending)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "", Desc: "From address (defaults to the SMTP user)"},
	{Name: "mail_from_name", Default: models.DefaultSiteName, Desc: "From display name"},
	{Name: "mail_to", Default: models.DefaultMailTo, Desc: "Back-office inbox for leads and contact messages"},
}

// LoadConfig loads WAFFLE core config and the LUNICAR app config.
// Precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, v, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SiteURL:    v.String("site_url"),
		TrustProxy: v.Bool("trust_proxy"),

		StoreBackend:     v.String("store_backend"),
		DataDir:          v.String("data_dir"),
		MongoURI:         v.String("mongo_uri"),
		MongoDatabase:    v.String("mongo_database"),
		MongoMaxPoolSize: uint64(v.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(v.Int("mongo_min_pool_size")),
		SeedContent:      v.Bool("seed_content"),

		AdminPassword:        v.String("admin_password"),
		AdminPasswordHash:    v.String("admin_password_hash"),
		AdminSessionIdle:     v.Duration("admin_session_idle", time.Hour),
		AdminLoginAttempts:   v.Int("admin_login_attempts"),
		AdminLoginLockout:    v.Duration("admin_login_lockout", 15*time.Minute),
		AdminSweepInterval:   v.Duration("admin_sweep_interval", time.Minute),
		BackendProbeInterval: v.Duration("backend_probe_interval", 5*time.Minute),

		TimeoutShort:   v.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutLong:    v.Duration("timeout_long", timeouts.DefaultLong),
		TimeoutRequest: v.Duration("timeout_request", timeouts.DefaultRequest),

		SessionKey:    v.String("session_key"),
		SessionName:   v.String("session_name"),
		SessionDomain: v.String("session_domain"),
		SessionDir:    v.String("session_dir"),
		CSRFKey:       v.String("csrf_key"),

		StorageType:        v.String("storage_type"),
		StorageLocalPath:   v.String("storage_local_path"),
		StorageLocalURL:    v.String("storage_local_url"),
		StorageS3Region:    v.String("storage_s3_region"),
		StorageS3Bucket:    v.String("storage_s3_bucket"),
		StorageS3Prefix:    v.String("storage_s3_prefix"),
		StorageCFURL:       v.String("storage_cf_url"),
		StorageCFKeyPairID: v.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   v.String("storage_cf_key_path"),

		UploadMaxFiles: v.Int("upload_max_files"),
		UploadMaxBytes: int64(v.Int("upload_max_bytes")),

		MailSMTPHost: v.String("mail_smtp_host"),
		MailSMTPPort: v.Int("mail_smtp_port"),
		MailSMTPUser: v.String("mail_smtp_user"),
		MailSMTPPass: v.String("mail_smtp_pass"),
		MailFrom:     v.String("mail_from"),
		MailFromName: v.String("mail_from_name"),
		MailTo:       v.String("mail_to"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects settings the app cannot start with. Development
// secrets are refused in production and only warned about elsewhere.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.SiteURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid site_url %q: must be an absolute http(s) URL", appCfg.SiteURL)
	}

	switch appCfg.StoreBackend {
	case "file":
		if appCfg.DataDir == "" {
			return errors.New("data_dir is required with the file backend")
		}
	case "mongo":
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return errors.New("mongo_database is required with the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store_backend %q (want file or mongo)", appCfg.StoreBackend)
	}

	switch appCfg.StorageType {
	case "local", "":
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			return errors.New("storage_s3_bucket and storage_s3_region are required with s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage_type %q (want local or s3)", appCfg.StorageType)
	}

	if appCfg.UploadMaxFiles < 1 || appCfg.UploadMaxBytes < 1 {
		return errors.New("upload_max_files and upload_max_bytes must be positive")
	}
	if appCfg.SessionDir == "" {
		return errors.New("session_dir is required")
	}
	if appCfg.AdminLoginAttempts < 1 {
		return errors.New("admin_login_attempts must be at least 1")
	}
	if appCfg.AdminPassword == "" && appCfg.AdminPasswordHash == "" {
		return errors.New("admin_password or admin_password_hash is required")
	}
	if appCfg.AdminPasswordHash == "" {
		if err := authutil.ValidatePassword(appCfg.AdminPassword); err != nil {
			logger.Warn("weak admin password", zap.Error(err))
		}
	}

	prod := coreCfg.Env == "prod"
	defaults := map[string]bool{
		"admin_password": appCfg.AdminPasswordHash == "" && appCfg.AdminPassword == defaultAdminPassword,
		"session_key":    appCfg.SessionKey == defaultSessionKey,
		"csrf_key":       appCfg.CSRFKey == defaultCSRFKey,
	}
	for key, isDefault := range defaults {
		if !isDefault {
			continue
		}
		if prod {
			return fmt.Errorf("%s must be changed from its development default in production", key)
		}
		logger.Warn("using development default secret", zap.String("key", key))
	}
	return nil
}
