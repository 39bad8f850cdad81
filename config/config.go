package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken         string
	SheetsWebhookURL string
	Port             string
}

func LoadConfig() *Config {
	err := godotenv.Load() // Environment variables from a .env file, if present
	if err != nil {
		log.Printf("No .env file loaded, using process environment: %v", err)
	}

	cfg := &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		SheetsWebhookURL: getEnv("SHEETS_WEBHOOK_URL", ""),
		Port:             getEnv("PORT", "8080"),
	}

	if cfg.SheetsWebhookURL == "" {
		log.Printf("SHEETS_WEBHOOK_URL is not set; expense submissions will fail until it is configured")
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
