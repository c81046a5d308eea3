package config

// Config holds all configuration for the application.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBName   string `envconfig:"DB_NAME" default:"pickleball.db"`
	Turso    TursoConfig
	RedisURL string `envconfig:"REDIS_URL"`

	Schedule ScheduleConfig
	Slack    SlackConfig
	Inngest  InngestConfig
	// ProjectID enables Google Cloud Pub/Sub. Without it notifications are
	// delivered in-process.
	ProjectID string `envconfig:"GCP_PROJECT"`
	TenantID  string `envconfig:"PLAYTOMIC_TENANT_ID"`

	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile           string `envconfig:"LOG_FILE"`
	PersistMaxRetries uint64 `envconfig:"PERSIST_MAX_RETRIES" default:"3"`
}

type TursoConfig struct {
	PrimaryURL string `envconfig:"TURSO_PRIMARY_URL"`
	AuthToken  string `envconfig:"TURSO_AUTH_TOKEN"`
}

type ScheduleConfig struct {
	WindowDays int    `envconfig:"SLOT_WINDOW_DAYS" default:"7"`
	OpenHour   int    `envconfig:"OPEN_HOUR" default:"9"`
	CloseHour  int    `envconfig:"CLOSE_HOUR" default:"18"`
	Timezone   string `envconfig:"CLUB_TIMEZONE" default:"UTC"`
}

type SlackConfig struct {
	Token         string `envconfig:"SLACK_BOT_TOKEN"`
	ChannelID     string `envconfig:"SLACK_CHANNEL_ID"`
	SigningSecret string `envconfig:"SLACK_SIGNING_SECRET"`
}

type InngestConfig struct {
	AppID      string `envconfig:"INNGEST_APP_ID" default:"pickleball-courts"`
	SigningKey string `envconfig:"INNGEST_SIGNING_KEY"`
	EventKey   string `envconfig:"INNGEST_EVENT_KEY"`
	Dev        bool   `envconfig:"INNGEST_DEV"`
}

// Enabled reports whether the Inngest functions should be served.
func (c InngestConfig) Enabled() bool {
	return c.SigningKey != "" || c.Dev
}
