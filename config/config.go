package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-derived setting. It is loaded once in main
// and passed into constructors; nothing else reads the environment.
type Config struct {
	Port     string `envconfig:"PORT" default:"8000"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	DBName   string `envconfig:"DB_NAME" default:"ecommerce"`

	AccessTokenSecret  string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	RefreshTokenSecret string        `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`
	AccessTokenTTL     time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL    time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	EmailSender    string `envconfig:"EMAIL_SENDER" default:"no-reply@ecommerce.local"`

	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimitRPS   float64  `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int      `envconfig:"RATE_LIMIT_BURST" default:"100"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Production reports whether the service runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}
