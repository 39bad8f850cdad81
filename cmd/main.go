package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/config"
	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/handlers"
	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/repository"
	"github.com/Mukeshkannan-R/ExpenseTrackerBot/pkg/sheets"
)

const (
	sessionTTL      = 30 * time.Minute
	janitorInterval = 5 * time.Minute
)

func main() {
	cfg := config.LoadConfig()

	repo := repository.NewMemorySessionRepository(sessionTTL)
	go repo.Janitor(context.Background(), janitorInterval)

	sheetsClient := sheets.NewClient(cfg.SheetsWebhookURL)

	bot, err := handlers.NewBotHandler(cfg.BotToken, repo, sheetsClient)
	if err != nil {
		log.Fatalf("Failed to initialize the Telegram bot: %v", err)
	}

	go func() {
		http.Handle("/health", handlers.HealthHandler{})
		log.Printf("Health endpoint listening on :%s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
			log.Fatalf("Health server failed: %v", err)
		}
	}()

	bot.Start()
}
