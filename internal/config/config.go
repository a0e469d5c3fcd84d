package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/invoicetradeai-create/bizzauto-project/pkg/db"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(func(cfg *Config) db.Config { return cfg.Database }),
)

// Config carries everything the API and the document worker need at boot.
// Values come from the environment, optionally seeded by a .env file.
type Config struct {
	AppName string
	Env     string

	HTTPAddr string

	Database db.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Queue the OCR worker blocks on.
	OcrQueueKey       string
	WorkerConcurrency int
	JobTimeout        time.Duration

	UploadDir     string
	MaxUploadSize int64

	AzureVisionEndpoint string
	AzureVisionKey      string

	GeminiAPIKey string
	GeminiModel  string

	WhatsappToken       string
	WhatsappPhoneID     string
	WhatsappVerifyToken string
	SessionTTL          time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		AppName:  getenv("APP_NAME", "bizzauto"),
		Env:      getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		Database: db.Config{
			Type:            getenv("DB_TYPE", "sqlite"),
			Host:            getenv("DB_HOST", "localhost"),
			Port:            getenv("DB_PORT", "5432"),
			Name:            getenv("DB_NAME", "bizzauto"),
			User:            getenv("DB_USER", "postgres"),
			Password:        getenv("DB_PASSWORD", ""),
			SSLMode:         getenv("DB_SSLMODE", "disable"),
			MaxIdleConn:     int(getenvInt64("DB_MAX_IDLE_CONN", 5)),
			MaxOpenConn:     int(getenvInt64("DB_MAX_OPEN_CONN", 25)),
			ConnMaxLifetime: int(getenvInt64("DB_CONN_MAX_LIFETIME_SECONDS", 1800)),
			ConnMaxIdleTime: int(getenvInt64("DB_CONN_MAX_IDLE_TIME_SECONDS", 300)),
		},
		RedisAddr:           getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getenv("REDIS_PASSWORD", ""),
		RedisDB:             int(getenvInt64("REDIS_DB", 0)),
		OcrQueueKey:         getenv("OCR_QUEUE_KEY", "ocr_queue"),
		WorkerConcurrency:   int(getenvInt64("WORKER_CONCURRENCY", 2)),
		JobTimeout:          getenvDuration("JOB_TIMEOUT", 2*time.Minute),
		UploadDir:           getenv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:       getenvInt64("MAX_UPLOAD_SIZE", 10<<20),
		AzureVisionEndpoint: getenv("AZURE_VISION_ENDPOINT", ""),
		AzureVisionKey:      getenv("AZURE_VISION_KEY", ""),
		GeminiAPIKey:        getenv("GEMINI_API_KEY", ""),
		GeminiModel:         getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		WhatsappToken:       getenv("WHATSAPP_TOKEN", ""),
		WhatsappPhoneID:     getenv("WHATSAPP_PHONE_ID", ""),
		WhatsappVerifyToken: getenv("WHATSAPP_VERIFY_TOKEN", ""),
		SessionTTL:          getenvDuration("AGENT_SESSION_TTL", 30*time.Minute),
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
