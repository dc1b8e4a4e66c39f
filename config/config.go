package config

type Config struct {
	AdminEmail     string   `envconfig:"ADMIN_EMAIL" required:"true"`
	AdminAllowlist []string `envconfig:"ADMIN_ALLOWLIST" required:"true"`
	Firebase       Firebase `envconfig:"FIREBASE" required:"true"`
	SMTP           SMTP     `envconfig:"SMTP" required:"true"`
	SentryDSN      string   `envconfig:"SENTRY_DSN"`
	ServerPort     string   `envconfig:"PORTFOLIO_SERVICE_SERVER_PORT" required:"true"`
	SiteBaseURL    string   `envconfig:"SITE_BASE_URL" required:"true"`
	OTLPEndpoint   string   `envconfig:"OTLP_ENDPOINT"`

	// NotificationRetentionDays bounds how long like/follow notification
	// records survive before the daily cleanup removes them.
	NotificationRetentionDays int `envconfig:"NOTIFICATION_RETENTION_DAYS" default:"30"`
}

type Firebase struct {
	PrivateKey string `envconfig:"PRIVATE_KEY" required:"true"`
	ProjectID  string `envconfig:"PROJECT_ID" required:"true"`
}

type SMTP struct {
	Host     string `envconfig:"HOST" default:"smtp.gmail.com"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME" required:"true"`
	Password string `envconfig:"PASSWORD" required:"true"`
	From     string `envconfig:"FROM" required:"true"`
	FromName string `envconfig:"FROM_NAME" default:"Portfolio"`
}
