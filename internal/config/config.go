package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries every externally supplied option. Missing values are
// not rejected at startup; downstream calls fail instead.
type Config struct {
	HTTPPort string `env:"PORT" envDefault:"8080"`
	Mode     string `env:"MODE" envDefault:"default"`

	SessionSecret string        `env:"SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"500s"`

	MongoURI              string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDBName           string        `env:"MONGO_DB_NAME" envDefault:"storefront"`
	MongoConnectTimeout   time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MongoSelectionTimeout time.Duration `env:"MONGO_SELECTION_TIMEOUT" envDefault:"5s"`
	MongoMaxPoolSize      uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	CatalogDBPath  string `env:"CATALOG_DB_PATH" envDefault:"catalog.db"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	MailAccount  string `env:"TEST_MAIL"`
	MailPassword string `env:"MAIL_PASS"`

	TwilioSID      string        `env:"TWILIO_SID"`
	TwilioToken    string        `env:"TWILIO_TOKEN"`
	SMSFrom        string        `env:"SMS_FROM" envDefault:"+17245387231"`
	WhatsAppFrom   string        `env:"WHATSAPP_FROM" envDefault:"+14155238886"`
	OperatorEmail  string        `env:"OPERATOR_EMAIL"`
	UploadDir      string        `env:"UPLOAD_DIR" envDefault:"public/img"`
	PublicBaseURL  string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.OperatorEmail == "" {
		cfg.OperatorEmail = cfg.MailAccount
	}
	return cfg, nil
}
