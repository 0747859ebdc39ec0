package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ServiceConfig holds all configuration for the rental service. Nothing
// here lives in package-level state; the loaded struct is injected into
// the components that need it at startup.
type ServiceConfig struct {
	Port   string `envconfig:"SERVICE_PORT" default:":8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	DB    DatabaseConfig
	JWT   JWTConfig
	Kafka KafkaConfig
	Jobs  JobsConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName   string `envconfig:"DB_NAME" default:"rental"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret      string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLMin int    `envconfig:"JWT_TOKEN_TTL_MIN" default:"1440"`
}

// KafkaConfig holds event broker settings.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
}

// JobsConfig holds background job settings.
type JobsConfig struct {
	// ExpirySchedule is the cron expression for the pending-booking sweep.
	ExpirySchedule string `envconfig:"EXPIRY_SCHEDULE" default:"*/10 * * * *"`
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load(prefix string) (*ServiceConfig, error) {
	_ = godotenv.Load()

	var cfg ServiceConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
