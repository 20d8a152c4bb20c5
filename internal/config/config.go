package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	AppEnv          string
	XenditSecretKey string
	CallbackBaseURL string
	CompanyID       string
	DiagLogPath     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:         os.Getenv("APP_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		XenditSecretKey: os.Getenv("XENDIT_APIKEY"),
		CallbackBaseURL: os.Getenv("CALLBACK_BASE_URL"),
		CompanyID:       os.Getenv("COMPANY_ID"),
		DiagLogPath:     os.Getenv("DIAG_LOG_PATH"),
	}

	if cfg.XenditSecretKey == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
