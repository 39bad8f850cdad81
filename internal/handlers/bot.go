package handlers

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/repository"
	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/services"
)

// BotHandler connects the Telegram update stream to the expense flow and
// implements the flow's Sender over the Telegram API.
type BotHandler struct {
	bot  *tgbotapi.BotAPI
	flow *services.ExpenseFlow
}

func NewBotHandler(token string, sessions repository.SessionRepository, sheets services.Submitter) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	h := &BotHandler{bot: bot}
	h.flow = services.NewExpenseFlow(sessions, sheets, h)
	return h, nil
}

func (h *BotHandler) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	log.Printf("Bot @%s is polling for updates", h.bot.Self.UserName)
	for update := range updates {
		h.handleUpdate(update)
	}
}

// handleUpdate processes one update to completion. Nothing that happens in
// here may take down the polling loop.
func (h *BotHandler) handleUpdate(update tgbotapi.Update) {
	var userID int64
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic while handling update: %v", r)
			if userID != 0 {
				h.SendText(userID, "⚠️ Something went wrong - please try /add again")
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		userID = cb.From.ID

		promptID, value := services.SplitCallbackData(cb.Data)
		choice := services.Choice{
			UserID:   userID,
			Username: cb.From.UserName,
			PromptID: promptID,
			Value:    value,
		}
		if cb.Message != nil {
			choice.MessageID = cb.Message.MessageID
		}
		h.flow.HandleChoice(ctx, choice)

		// Acknowledge the press so the client stops its spinner.
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			log.Printf("Failed to answer callback query: %v", err)
		}

	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		userID = msg.From.ID

		if msg.IsCommand() {
			h.flow.HandleCommand(ctx, services.Command{
				UserID:   userID,
				Username: msg.From.UserName,
				Name:     msg.Command(),
			})
			return
		}
		h.flow.HandleText(ctx, services.Text{
			UserID:   userID,
			Username: msg.From.UserName,
			Text:     msg.Text,
		})
	}
}

func (h *BotHandler) SendText(userID int64, text string) error {
	_, err := h.bot.Send(tgbotapi.NewMessage(userID, text))
	return err
}

func (h *BotHandler) SendChoices(userID int64, text string, rows [][]services.Button) error {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = inlineKeyboard(rows)
	_, err := h.bot.Send(msg)
	return err
}

func (h *BotHandler) EditChoices(userID int64, messageID int, text string, rows [][]services.Button) error {
	edit := tgbotapi.NewEditMessageText(userID, messageID, text)
	if rows != nil {
		markup := inlineKeyboard(rows)
		edit.ReplyMarkup = &markup
	}
	_, err := h.bot.Send(edit)
	return err
}

func inlineKeyboard(rows [][]services.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
