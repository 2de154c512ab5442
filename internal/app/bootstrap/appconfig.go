// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, request limits). AppConfig is everything specific to
// this application: the MongoDB connection, mail delivery for join
// request notifications, and the session reaper's schedule.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Join request notifications: "log" writes to the log only, "email"
	// sends mail to the group owner via SMTP.
	NotifyMode string

	// Email/SMTP configuration (used when NotifyMode is "email")
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Base URL and site name for links placed in notification emails
	BaseURL  string // e.g., "http://localhost:3000"
	SiteName string // e.g., "PeerPractice"

	// Session reaper: sweep cadence and how long ended sessions are kept
	ReaperEnabled   bool
	ReaperInterval  time.Duration
	ReaperRetention time.Duration
}
