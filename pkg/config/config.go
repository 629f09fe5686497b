package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Text analysis strategies
const (
	TextStrategyProvider = "provider"
	TextStrategyLexicon  = "lexicon"
)

// Text fallback policies applied when the provider fails
const (
	TextFallbackNone    = "none"
	TextFallbackNeutral = "neutral"
	TextFallbackLexicon = "lexicon"
)

// Baseline store backends
const (
	BaselineStoreNone   = "none"
	BaselineStoreMemory = "memory"
	BaselineStoreRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Faces    FacesConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	BodyLimit       string   `envconfig:"BODY_LIMIT" default:"64M"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool   `envconfig:"DB_ENABLED" default:"false"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"mind_measure"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// LLMConfig configures the text-understanding provider (OpenAI-compatible API)
type LLMConfig struct {
	APIKey      string        `envconfig:"LLM_API_KEY"`
	BaseURL     string        `envconfig:"LLM_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model       string        `envconfig:"LLM_MODEL" default:"llama-3.1-70b-versatile"`
	Temperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	MaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"1200"`
	Timeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"20s"`
	MaxRetries  uint64        `envconfig:"LLM_MAX_RETRIES" default:"2"`
}

// FacesConfig configures the face-attribute recognition service
type FacesConfig struct {
	BaseURL string        `envconfig:"FACES_BASE_URL" default:"http://localhost:8090"`
	APIKey  string        `envconfig:"FACES_API_KEY"`
	Timeout time.Duration `envconfig:"FACES_TIMEOUT" default:"10s"`
}

// PipelineConfig holds enrichment deadlines and strategy choices
type PipelineConfig struct {
	AudioDeadline  time.Duration `envconfig:"AUDIO_DEADLINE" default:"6s"`
	VisualDeadline time.Duration `envconfig:"VISUAL_DEADLINE" default:"4s"`
	CheckInTimeout time.Duration `envconfig:"CHECKIN_TIMEOUT" default:"30s"`
	TextStrategy   string        `envconfig:"TEXT_STRATEGY" default:"provider"`
	TextFallback   string        `envconfig:"TEXT_FALLBACK" default:"none"`
	BaselineStore  string        `envconfig:"BASELINE_STORE" default:"memory"`
	BaselineTTL    time.Duration `envconfig:"BASELINE_TTL" default:"2160h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Pipeline.AudioDeadline <= 0 {
		return fmt.Errorf("AUDIO_DEADLINE must be positive")
	}
	if c.Pipeline.VisualDeadline <= 0 {
		return fmt.Errorf("VISUAL_DEADLINE must be positive")
	}
	if c.Pipeline.CheckInTimeout <= 0 {
		return fmt.Errorf("CHECKIN_TIMEOUT must be positive")
	}

	switch c.Pipeline.TextStrategy {
	case TextStrategyProvider:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("LLM_API_KEY is required when TEXT_STRATEGY=%s", TextStrategyProvider)
		}
	case TextStrategyLexicon:
	default:
		return fmt.Errorf("unknown TEXT_STRATEGY %q", c.Pipeline.TextStrategy)
	}

	switch c.Pipeline.TextFallback {
	case TextFallbackNone, TextFallbackNeutral, TextFallbackLexicon:
	default:
		return fmt.Errorf("unknown TEXT_FALLBACK %q", c.Pipeline.TextFallback)
	}

	switch c.Pipeline.BaselineStore {
	case BaselineStoreNone, BaselineStoreMemory, BaselineStoreRedis:
	default:
		return fmt.Errorf("unknown BASELINE_STORE %q", c.Pipeline.BaselineStore)
	}

	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
