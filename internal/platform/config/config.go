package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// StoreBackend selects the persistence adapter: memory, sheet or postgres.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	SheetPath    string `envconfig:"SHEET_PATH" default:"bookings.xlsx"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"angthong_poolvilla"`

	// RedisAddr left empty disables the blocked-dates cache.
	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	// LineChannelToken left empty disables booking notifications.
	LineChannelToken string `envconfig:"LINE_CHANNEL_TOKEN" default:""`
	LineRecipientID  string `envconfig:"LINE_RECIPIENT_ID" default:""`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	AutoCompleteInterval time.Duration `envconfig:"AUTO_COMPLETE_INTERVAL" default:"1h"`
}

// Load reads configuration from the environment, with a local .env file
// taken into account when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
