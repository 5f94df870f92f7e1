package config

import (
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Config is the full runtime configuration of the storefront API.
type Config struct {
	Port        string `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL        time.Duration `envconfig:"JWT_TTL" default:"24h"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD"`

	StoreName      string          `envconfig:"STORE_NAME" default:"CorazoneHives"`
	WhatsAppNumber string          `envconfig:"WHATSAPP_NUMBER" default:"254700123456"`
	TaxRate        decimal.Decimal `envconfig:"TAX_RATE" default:"0.08"`
	DeliveryAreas  []string        `envconfig:"DELIVERY_AREAS" default:"CBD,Westlands,Karen,Kilimani,Lavington,Parklands,Eastleigh,South B,South C,Kileleshwa"`

	UploadDir       string `envconfig:"UPLOAD_DIR" default:"./public/uploads"`
	UploadURLPrefix string `envconfig:"UPLOAD_URL_PREFIX" default:"/uploads"`
}

// Load reads an optional .env file and then the process environment.
func Load(logger *logrus.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	if cfg.TaxRate.IsNegative() {
		return nil, errors.Errorf("TAX_RATE must not be negative, got %s", cfg.TaxRate)
	}
	return &cfg, nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
