// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for this service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, notify_mode, etc.
//   - Environment variables: PEERPRACTICE_MONGO_URI, PEERPRACTICE_NOTIFY_MODE, etc.
//   - Command-line flags: --mongo_uri, --notify_mode, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "peerpractice", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Join request notifications
	{Name: "notify_mode", Default: "log", Desc: "Join request notifications: 'log' or 'email'"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@peerpractice.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "PeerPractice", Desc: "From display name"},

	// Links in notification emails
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},
	{Name: "site_name", Default: "PeerPractice", Desc: "Site name shown in email subjects"},

	// Session reaper
	{Name: "reaper_enabled", Default: true, Desc: "Enable the expired-session reaper"},
	{Name: "reaper_interval", Default: "1h", Desc: "How often the reaper sweeps (e.g., 15m, 1h)"},
	{Name: "reaper_retention", Default: "720h", Desc: "How long ended sessions are kept before removal"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PEERPRACTICE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PEERPRACTICE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		NotifyMode: appValues.String("notify_mode"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		BaseURL:  appValues.String("base_url"),
		SiteName: appValues.String("site_name"),

		ReaperEnabled:   appValues.Bool("reaper_enabled"),
		ReaperInterval:  appValues.Duration("reaper_interval", time.Hour),
		ReaperRetention: appValues.Duration("reaper_retention", 720*time.Hour),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked up front so a typo fails startup
// instead of the first query.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.NotifyMode {
	case "log", "email":
	default:
		return fmt.Errorf("notify_mode must be 'log' or 'email', got %q", appCfg.NotifyMode)
	}

	if appCfg.NotifyMode == "email" && appCfg.MailSMTPHost == "" {
		return fmt.Errorf("notify_mode 'email' requires mail_smtp_host")
	}
	if appCfg.ReaperEnabled && appCfg.ReaperInterval <= 0 {
		return fmt.Errorf("reaper_interval must be positive, got %s", appCfg.ReaperInterval)
	}

	return nil
}
