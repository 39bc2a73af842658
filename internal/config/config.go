package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Log        LogConfig
	S3         S3Config
	Automation AutomationConfig
	Tokens     TokensConfig
	LLM        LLMConfig
	Calendar   CalendarConfig
	Email      EmailConfig
	Scoring    CollaboratorConfig
	Risk       CollaboratorConfig
	Sentry     SentryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret   string
	RefreshSecret  string
	AccessExpiry   time.Duration
	RefreshExpiry  time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// S3Config holds S3 storage configuration
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// AutomationConfig holds timing knobs for the hiring orchestrator's background cycle.
type AutomationConfig struct {
	CyclePeriod             time.Duration
	ConfirmationDeadline    time.Duration
	SlotSelectionDeadline   time.Duration
	ReminderWindowStart     time.Duration
	ReminderWindowEnd       time.Duration
	DefaultBufferTarget     int
	NegotiationMaxRounds    int
	NegotiationSlotsPerPage int
	NegotiationWindow       time.Duration
	SchedulerLeaseTTL       time.Duration
	FrontendBaseURL         string
}

// TokensConfig holds the interview-action token signing secret and TTL.
type TokensConfig struct {
	SigningSecret string
	TTL           time.Duration
}

// LLMConfig holds Anthropic API access for availability parsing and response generation.
type LLMConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// CalendarConfig holds Google Calendar OAuth2 credentials for the calendar collaborator.
type CalendarConfig struct {
	ClientID          string
	ClientSecret      string
	RefreshToken      string
	CalendarID        string
	BusinessStartHour int
	BusinessEndHour   int
	Timeout           time.Duration
}

// EmailConfig holds Resend API access for the email collaborator.
type EmailConfig struct {
	APIKey    string
	FromEmail string
	Timeout   time.Duration
}

// CollaboratorConfig holds endpoint + timeout for a generic external HTTP collaborator
// (the scoring service and the risk service share this shape).
type CollaboratorConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SentryConfig holds error-tracking configuration.
type SentryConfig struct {
	DSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "jobber"),
			Password:        getEnv("DB_PASSWORD", "jobber"),
			DBName:          getEnv("DB_NAME", "jobber"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:   getEnv("JWT_ACCESS_SECRET", ""),
			RefreshSecret:  getEnv("JWT_REFRESH_SECRET", ""),
			AccessExpiry:   getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry:  getEnvAsDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "eu-central"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		Automation: AutomationConfig{
			CyclePeriod:             getEnvAsDuration("CYCLE_PERIOD", 5*time.Minute),
			ConfirmationDeadline:    getEnvAsDuration("CONFIRMATION_DEADLINE", 48*time.Hour),
			SlotSelectionDeadline:   getEnvAsDuration("SLOT_SELECTION_DEADLINE", 24*time.Hour),
			ReminderWindowStart:     getEnvAsDuration("REMINDER_WINDOW_START", 23*time.Hour),
			ReminderWindowEnd:       getEnvAsDuration("REMINDER_WINDOW_END", 25*time.Hour),
			DefaultBufferTarget:     getEnvAsInt("DEFAULT_BUFFER_TARGET", 3),
			NegotiationMaxRounds:    getEnvAsInt("NEGOTIATION_MAX_ROUNDS", 3),
			NegotiationSlotsPerPage: getEnvAsInt("NEGOTIATION_SLOTS_PER_PAGE", 3),
			NegotiationWindow:       getEnvAsDuration("NEGOTIATION_WINDOW", 14*24*time.Hour),
			SchedulerLeaseTTL:       getEnvAsDuration("SCHEDULER_LEASE_TTL", 4*time.Minute),
			FrontendBaseURL:         getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
		},
		Tokens: TokensConfig{
			SigningSecret: getEnv("TOKEN_SIGNING_SECRET", ""),
			TTL:           getEnvAsDuration("TOKEN_TTL", 7*24*time.Hour),
		},
		LLM: LLMConfig{
			APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			Model:   getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 10*time.Second),
		},
		Calendar: CalendarConfig{
			ClientID:          getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret:      getEnv("GOOGLE_CLIENT_SECRET", ""),
			RefreshToken:      getEnv("GOOGLE_REFRESH_TOKEN", ""),
			CalendarID:        getEnv("GOOGLE_CALENDAR_ID", "primary"),
			BusinessStartHour: getEnvAsInt("BUSINESS_HOURS_START", 9),
			BusinessEndHour:   getEnvAsInt("BUSINESS_HOURS_END", 18),
			Timeout:           getEnvAsDuration("CALENDAR_TIMEOUT", 10*time.Second),
		},
		Email: EmailConfig{
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("EMAIL_FROM", "hiring@jobber.example.com"),
			Timeout:   getEnvAsDuration("EMAIL_TIMEOUT", 5*time.Second),
		},
		Scoring: CollaboratorConfig{
			BaseURL: getEnv("SCORING_SERVICE_URL", "http://localhost:9001"),
			Timeout: getEnvAsDuration("SCORING_TIMEOUT", 10*time.Second),
		},
		Risk: CollaboratorConfig{
			BaseURL: getEnv("RISK_SERVICE_URL", "http://localhost:9002"),
			Timeout: getEnvAsDuration("RISK_TIMEOUT", 5*time.Second),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
	}

	// Validate required fields
	if cfg.JWT.AccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET is required")
	}
	if cfg.Tokens.SigningSecret == "" {
		return nil, fmt.Errorf("TOKEN_SIGNING_SECRET is required")
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
