package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/models"
	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/repository"
)

// Recognized bot commands. Anything else is ignored.
const (
	CommandStart  = "start"
	CommandAdd    = "add"
	CommandCancel = "cancel"
)

const (
	curPrefix = "cur:"
	catPrefix = "cat:"
)

// Command is the /slash-command event from the chat platform.
type Command struct {
	UserID   int64
	Username string
	Name     string
}

// Choice is a button press. PromptID is the tag parsed off the callback data;
// it must match the session's current tag or the press is discarded.
type Choice struct {
	UserID    int64
	Username  string
	PromptID  string
	Value     string
	MessageID int // message the pressed keyboard is attached to
}

// Text is a free-form message.
type Text struct {
	UserID   int64
	Username string
	Text     string
}

// Button is one inline-keyboard option.
type Button struct {
	Label string
	Data  string
}

// Sender delivers prompts back to the chat platform.
type Sender interface {
	SendText(userID int64, text string) error
	SendChoices(userID int64, text string, rows [][]Button) error
	EditChoices(userID int64, messageID int, text string, rows [][]Button) error
}

// Submitter persists a finished record to the remote store.
type Submitter interface {
	Append(ctx context.Context, rec models.ExpenseRecord) error
}

// ExpenseFlow walks each user through the expense-entry conversation:
// date, currency, amount, category, note, then one webhook submission.
type ExpenseFlow struct {
	sessions repository.SessionRepository
	sheets   Submitter
	sender   Sender
	now      func() time.Time
}

func NewExpenseFlow(sessions repository.SessionRepository, sheets Submitter, sender Sender) *ExpenseFlow {
	return &ExpenseFlow{
		sessions: sessions,
		sheets:   sheets,
		sender:   sender,
		now:      time.Now,
	}
}

func (f *ExpenseFlow) HandleCommand(ctx context.Context, cmd Command) {
	switch cmd.Name {
	case CommandStart:
		f.send(cmd.UserID, "🚀 Expense Bot ready!\n/add - Add expense\n/cancel - Cancel current entry")

	case CommandAdd:
		// Always a fresh session; stale data from an abandoned run is dropped.
		sess := f.sessions.Start(cmd.UserID, newPromptTag())
		f.sendChoices(cmd.UserID, "📅 Select date:", monthKeyboard(sess.PromptTag, f.now()))

	case CommandCancel:
		if _, ok := f.sessions.Get(cmd.UserID); !ok {
			f.send(cmd.UserID, "Nothing to cancel. /add starts a new expense.")
			return
		}
		f.sessions.Clear(cmd.UserID)
		f.send(cmd.UserID, "❌ Expense cancelled")
	}
}

func (f *ExpenseFlow) HandleChoice(ctx context.Context, ch Choice) {
	sess, ok := f.sessions.Get(ch.UserID)
	if !ok {
		return // stale button after cancel, submit or expiry
	}
	if ch.PromptID != sess.PromptTag {
		return // button from a superseded prompt
	}

	switch {
	case strings.HasPrefix(ch.Value, calNavPrefix):
		if sess.Step != models.StepDate {
			return
		}
		month, err := time.Parse(monthLayout, strings.TrimPrefix(ch.Value, calNavPrefix))
		if err != nil {
			return
		}
		f.edit(ch.UserID, ch.MessageID, "📅 Select date:", monthKeyboard(sess.PromptTag, month))

	case strings.HasPrefix(ch.Value, calDayPrefix):
		if sess.Step != models.StepDate {
			return // duplicate click, the flow already moved on
		}
		f.confirmDate(sess, ch)

	case strings.HasPrefix(ch.Value, curPrefix):
		if sess.Step != models.StepCurrency {
			return
		}
		f.confirmCurrency(sess, ch)

	case strings.HasPrefix(ch.Value, catPrefix):
		if sess.Step != models.StepCategory {
			return
		}
		f.confirmCategory(sess, ch)
	}
	// calSkip and unknown values fall through as a no-op.
}

func (f *ExpenseFlow) HandleText(ctx context.Context, msg Text) {
	sess, ok := f.sessions.Get(msg.UserID)
	if !ok {
		return // no conversation in progress
	}

	switch sess.Step {
	case models.StepAmount:
		amount, err := ValidateAmount(msg.Text)
		if err != nil {
			f.send(msg.UserID, "❌ Enter valid number only")
			return
		}
		if err := f.sessions.Update(msg.UserID, func(s *models.Session) {
			s.Amount = amount
			s.Step = models.StepCategory
		}); err != nil {
			return
		}
		f.sendChoices(msg.UserID, "🏷️ Choose category:", categoryKeyboard(sess.PromptTag))

	case models.StepNote:
		f.finish(ctx, sess, msg)

	default:
		// A button press is expected at this step; free text is ignored.
	}
}

func (f *ExpenseFlow) confirmDate(sess models.Session, ch Choice) {
	date, err := ValidateDate(strings.TrimPrefix(ch.Value, calDayPrefix))
	if err != nil {
		return // the picker only emits well-formed dates, drop forged data
	}
	err = f.sessions.Update(ch.UserID, func(s *models.Session) {
		s.Date = date
		s.Step = models.StepCurrency
	})
	if err != nil {
		return
	}
	f.edit(ch.UserID, ch.MessageID,
		fmt.Sprintf("📅 Date: %s\n💰 Choose currency:", date),
		currencyKeyboard(sess.PromptTag))
}

func (f *ExpenseFlow) confirmCurrency(sess models.Session, ch Choice) {
	currency, err := ValidateCurrency(strings.TrimPrefix(ch.Value, curPrefix))
	if err != nil {
		f.sendChoices(ch.UserID, "💰 Choose currency:", currencyKeyboard(sess.PromptTag))
		return
	}
	err = f.sessions.Update(ch.UserID, func(s *models.Session) {
		s.Currency = currency
		s.Step = models.StepAmount
	})
	if err != nil {
		return
	}
	f.edit(ch.UserID, ch.MessageID,
		fmt.Sprintf("💰 Currency: %s\nEnter amount (e.g. 250):", currency.Symbol()), nil)
}

func (f *ExpenseFlow) confirmCategory(sess models.Session, ch Choice) {
	category, err := ValidateCategory(strings.TrimPrefix(ch.Value, catPrefix))
	if err != nil {
		f.sendChoices(ch.UserID, "🏷️ Choose category:", categoryKeyboard(sess.PromptTag))
		return
	}
	err = f.sessions.Update(ch.UserID, func(s *models.Session) {
		s.Category = category
		s.Step = models.StepNote
	})
	if err != nil {
		return
	}
	f.edit(ch.UserID, ch.MessageID, "📝 Optional note (or send '-' to skip):", nil)
}

func (f *ExpenseFlow) finish(ctx context.Context, sess models.Session, msg Text) {
	note := ValidateNote(msg.Text)

	rec := models.ExpenseRecord{
		Date:     sess.Date,
		Amount:   sess.Amount.InexactFloat64(),
		Currency: sess.Currency.Symbol(),
		Category: string(sess.Category),
		Note:     note,
		UserID:   msg.UserID,
		Username: msg.Username,
	}

	// The conversation is over either way; a failed save means starting over.
	f.sessions.Clear(msg.UserID)

	if err := f.sheets.Append(ctx, rec); err != nil {
		log.Printf("Failed to append expense for user %d: %v", msg.UserID, err)
		f.send(msg.UserID, "❌ Save failed - please try /add again")
		return
	}

	f.send(msg.UserID, fmt.Sprintf("✅ Saved!\n📅 %s\n💰 %s%s\n🏷️ %s",
		rec.Date, rec.Currency, sess.Amount.String(), rec.Category))
}

func currencyKeyboard(tag string) [][]Button {
	row := make([]Button, 0, 3)
	for _, c := range models.Currencies() {
		row = append(row, Button{
			Label: c.Symbol() + " " + string(c),
			Data:  callbackData(tag, curPrefix+string(c)),
		})
	}
	return [][]Button{row}
}

func categoryKeyboard(tag string) [][]Button {
	labels := map[models.Category]string{
		models.CategoryFood:      "🍚 Food",
		models.CategoryTransport: "🚗 Transport",
		models.CategoryBills:     "💡 Bills",
		models.CategoryOther:     "❓ Other",
	}

	var rows [][]Button
	categories := models.Categories()
	for i := 0; i < len(categories); i += 2 {
		row := make([]Button, 0, 2)
		for _, c := range categories[i:min(i+2, len(categories))] {
			row = append(row, Button{
				Label: labels[c],
				Data:  callbackData(tag, catPrefix+string(c)),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func callbackData(tag, value string) string {
	return tag + "|" + value
}

// SplitCallbackData pulls the prompt tag off raw callback data.
func SplitCallbackData(data string) (promptID, value string) {
	if i := strings.IndexByte(data, '|'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return "", data
}

func newPromptTag() string {
	return uuid.NewString()[:8]
}

func (f *ExpenseFlow) send(userID int64, text string) {
	if err := f.sender.SendText(userID, text); err != nil {
		log.Printf("Failed to send message to user %d: %v", userID, err)
	}
}

func (f *ExpenseFlow) sendChoices(userID int64, text string, rows [][]Button) {
	if err := f.sender.SendChoices(userID, text, rows); err != nil {
		log.Printf("Failed to send choices to user %d: %v", userID, err)
	}
}

func (f *ExpenseFlow) edit(userID int64, messageID int, text string, rows [][]Button) {
	if err := f.sender.EditChoices(userID, messageID, text, rows); err != nil {
		log.Printf("Failed to edit message %d for user %d: %v", messageID, userID, err)
	}
}
