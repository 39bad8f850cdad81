package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token-123")
	t.Setenv("SHEETS_WEBHOOK_URL", "https://example.com/exec")
	t.Setenv("PORT", "9000")

	cfg := LoadConfig()
	assert.Equal(t, "token-123", cfg.BotToken)
	assert.Equal(t, "https://example.com/exec", cfg.SheetsWebhookURL)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadConfigDefaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must actually be unset so the
	// defaults kick in.
	for _, key := range []string{"BOT_TOKEN", "SHEETS_WEBHOOK_URL", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()
	assert.Empty(t, cfg.BotToken)
	assert.Empty(t, cfg.SheetsWebhookURL)
	assert.Equal(t, "8080", cfg.Port)
}
