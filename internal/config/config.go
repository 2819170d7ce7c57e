package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	AppEnv          string
	StorageDriver   string // "memory" veya "postgres"
	DatabaseDSN     string
	RedisURL        string // Boşsa Redis köprüsü kapalı
	RedisChannel    string
	PollInterval    int // Saniye
	DefaultPlatform string
	CORSOrigins     string
	MaxUploadMB     int
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=pazaryeri_kar port=5432 sslmode=disable"

func Load() *Config {
	// .env yoksa sorun değil, ortam değişkenleri kullanılır
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		AppEnv:          getEnv("APP_ENV", "development"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "memory"),
		DatabaseDSN:     getEnv("DATABASE_DSN", defaultDSN),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisChannel:    getEnv("REDIS_CHANNEL", "pazaryeri-kar:degisiklik"),
		PollInterval:    getEnvInt("POLL_INTERVAL_SECONDS", 2),
		DefaultPlatform: getEnv("DEFAULT_PLATFORM", "trendyol"),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 20),
	}

	if cfg.StorageDriver != "memory" && cfg.StorageDriver != "postgres" {
		log.Fatalf("[FATAL] STORAGE_DRIVER geçersiz: %q (memory veya postgres olmalı)", cfg.StorageDriver)
	}
	if cfg.StorageDriver == "memory" && cfg.AppEnv == "production" {
		log.Println("[WARN] STORAGE_DRIVER=memory production'da kullanılıyor, veriler yeniden başlatmada kaybolur.")
	}
	if cfg.StorageDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.PollInterval < 1 {
		log.Println("[WARN] POLL_INTERVAL_SECONDS 1'den küçük olamaz, 1 kullanılıyor.")
		cfg.PollInterval = 1
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s sayı değil (%q), varsayılan %d kullanılıyor", key, v, def)
		return def
	}
	return n
}
