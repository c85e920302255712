package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	App       AppConfig
	Booking   BookingConfig
	Pricing   PricingConfig
	Notifier  NotifierConfig
	SMTP      SMTPConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Stats     StatsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
}

type AppConfig struct {
	// ClientURL is the frontend origin; payment links are built on top of it.
	ClientURL string `envconfig:"CLIENT_URL" default:"http://localhost:3000"`
	TeamEmail string `envconfig:"TEAM_EMAIL" default:""`
}

type BookingConfig struct {
	StrictTransitions    bool          `envconfig:"BOOKING_STRICT_TRANSITIONS" default:"false"`
	ReferenceMaxAttempts int           `envconfig:"BOOKING_REFERENCE_MAX_ATTEMPTS" default:"5"`
	CancellationWindow   time.Duration `envconfig:"BOOKING_CANCELLATION_WINDOW" default:"24h"`
	ReminderLeadTime     time.Duration `envconfig:"BOOKING_REMINDER_LEAD_TIME" default:"72h"`
	ReminderInterval     time.Duration `envconfig:"BOOKING_REMINDER_INTERVAL" default:"1h"`
}

type PricingConfig struct {
	CatalogPath string `envconfig:"PRICING_CATALOG_PATH" default:""`
}

type NotifierConfig struct {
	// log | smtp | kafka
	Driver  string        `envconfig:"NOTIFIER_DRIVER" default:"log"`
	Timeout time.Duration `envconfig:"NOTIFIER_TIMEOUT" default:"10s"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"EMAIL_USER" default:""`
	Password string `envconfig:"EMAIL_PASS" default:""`
	From     string `envconfig:"EMAIL_FROM" default:""`
}

type KafkaConfig struct {
	Brokers            []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	NotificationsTopic string   `envconfig:"KAFKA_NOTIFICATIONS_TOPIC" default:"booking-notifications"`
	GroupID            string   `envconfig:"KAFKA_GROUP_ID" default:"booking-mailer"`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RateLimitConfig struct {
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	MaxRequests int64         `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
}

type StatsConfig struct {
	CacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"30s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Configured reports whether mail credentials are present.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// MigrateConfig is the subset the migration command needs. It carries no server settings.
type MigrateConfig struct {
	DB  DBConfig
	Log LogConfig
}

func loadDotEnv() error {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func LoadMigrateConfig() (MigrateConfig, error) {
	if err := loadDotEnv(); err != nil {
		return MigrateConfig{}, err
	}

	var cfg MigrateConfig
	if err := envconfig.Process("", &cfg.DB); err != nil {
		return MigrateConfig{}, fmt.Errorf("failed to process db config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Log); err != nil {
		return MigrateConfig{}, fmt.Errorf("failed to process log config: %w", err)
	}
	return cfg, nil
}

func LoadConfig() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Booking.ReferenceMaxAttempts < 1 {
		return Config{}, fmt.Errorf("BOOKING_REFERENCE_MAX_ATTEMPTS must be positive, got %d", cfg.Booking.ReferenceMaxAttempts)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		App: AppConfig{
			ClientURL: "http://localhost:3000",
			TeamEmail: "team@example.com",
		},
		Booking: BookingConfig{
			ReferenceMaxAttempts: 5,
			CancellationWindow:   24 * time.Hour,
			ReminderLeadTime:     72 * time.Hour,
			ReminderInterval:     time.Hour,
		},
		Notifier: NotifierConfig{
			Driver:  "log",
			Timeout: 5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Window:      15 * time.Minute,
			MaxRequests: 100,
		},
		Stats: StatsConfig{
			CacheTTL: 30 * time.Second,
		},
	}
}

// TeamRecipient falls back to the SMTP account when no dedicated team address is set.
func (c Config) TeamRecipient() string {
	if c.App.TeamEmail != "" {
		return c.App.TeamEmail
	}
	return c.SMTP.Username
}
