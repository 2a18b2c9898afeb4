package config

import (
	"os"
	"strconv"
)

// Config topweb-backend (HTTP API + report worker) configuration
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	SMTP    SMTPConfig
	OpenAI  OpenAIConfig
	Reports ReportsConfig
	Log     struct {
		Level  string
		Format string
	}
}

// DatabaseConfig Postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// SMTPConfig mail transport settings for the monthly report digest
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// OpenAIConfig chat-completion API settings
type OpenAIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// ReportsConfig report scheduler settings
type ReportsConfig struct {
	ScheduleEnabled bool   // run the first-of-month report cycle in-process
	DashboardURL    string // linked from the digest email
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "topweb")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTP.Port = parseInt(getEnv("SMTP_PORT", "587"), 587)
	cfg.SMTP.Username = getEnv("SMTP_USER", "reports@topwebdirectories.com.au")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.FromName = getEnv("SMTP_FROM_NAME", "Top Web Directories")
	cfg.SMTP.FromEmail = getEnv("SMTP_FROM_EMAIL", "stefan.neale@topwebdirectories.com.au")

	cfg.OpenAI.BaseURL = getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.OpenAI.APIKey = getEnv("OPENAI_API_KEY", "")
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", "gpt-4o")

	cfg.Reports.ScheduleEnabled = getEnv("REPORTS_SCHEDULE_ENABLED", "false") == "true"
	cfg.Reports.DashboardURL = getEnv("REPORTS_DASHBOARD_URL", "https://topwebdirectories.com.au/dashboard")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
