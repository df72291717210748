// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Sheets        SheetsConfig       `mapstructure:"sheets"`
	Scoring       ScoringConfig      `mapstructure:"scoring"`
	Inquiries     InquiriesConfig    `mapstructure:"inquiries"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Kafka         KafkaConfig        `mapstructure:"kafka"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address    string `mapstructure:"address"`
	AdminToken string `mapstructure:"admin_token"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// SheetsConfig holds settings for the catalog ingestion pipeline.
type SheetsConfig struct {
	FetchTimeout    int `mapstructure:"fetch_timeout"`    // milliseconds
	RefreshInterval int `mapstructure:"refresh_interval"` // milliseconds
	CacheTTL        int `mapstructure:"cache_ttl"`        // milliseconds
}

// ScoringConfig overrides the default match engine weights. A zero value
// keeps the default for that field; the observed constants live in the
// match package.
type ScoringConfig struct {
	BudgetInRange       int     `mapstructure:"budget_in_range"`
	BudgetUnder         int     `mapstructure:"budget_under"`
	BudgetStretch       int     `mapstructure:"budget_stretch"`
	BudgetStretchFactor float64 `mapstructure:"budget_stretch_factor"`
	BedroomExact        int     `mapstructure:"bedroom_exact"`
	BedroomAdjacent     int     `mapstructure:"bedroom_adjacent"`
	BathExact           int     `mapstructure:"bath_exact"`
	BathClose           int     `mapstructure:"bath_close"`
	SizeStrong          int     `mapstructure:"size_strong"`
	SizePartial         int     `mapstructure:"size_partial"`
	SizeDefault         int     `mapstructure:"size_default"`
	PriorityBonus       int     `mapstructure:"priority_bonus"`
}

// InquiriesConfig holds lead-capture settings.
type InquiriesConfig struct {
	RateLimitWindow int `mapstructure:"rate_limit_window"` // milliseconds
	RateLimitMax    int `mapstructure:"rate_limit_max"`
}

// NotificationConfig holds settings for agent lead notifications.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
		ToEmail   string `mapstructure:"to_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled     bool   `mapstructure:"enabled"`
		PhoneNumber string `mapstructure:"phone_number"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// KafkaConfig holds settings for the lead event stream.
type KafkaConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Broker     string `mapstructure:"broker"`
	LeadsTopic string `mapstructure:"leads_topic"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
