// config.go
package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	DatabaseURL   string
	SessionSecret string
	Port          string
	Env           string // "development" | "production"
}

func loadConfig() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "ecolearn-dev-secret"),
		Port:          getEnv("PORT", "5000"),
		Env:           getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newLogger(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch env {
	case "production", "prod":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
