package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/models"
)

// ErrInvalidInput marks user input that failed validation for the current
// step. The step is re-prompted and the session left untouched.
var ErrInvalidInput = errors.New("invalid input")

const (
	dateLayout = "2006-01-02"

	// Notes are stored verbatim but capped so a pasted wall of text cannot
	// blow up the spreadsheet row.
	maxNoteRunes = 500
)

func ValidateAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || amount.IsNegative() {
		return decimal.Decimal{}, ErrInvalidInput
	}
	return amount, nil
}

func ValidateDate(selection string) (string, error) {
	d, err := time.Parse(dateLayout, selection)
	if err != nil {
		return "", ErrInvalidInput
	}
	return d.Format(dateLayout), nil
}

func ValidateCurrency(selection string) (models.Currency, error) {
	for _, c := range models.Currencies() {
		if selection == string(c) {
			return c, nil
		}
	}
	return "", ErrInvalidInput
}

func ValidateCategory(selection string) (models.Category, error) {
	for _, c := range models.Categories() {
		if selection == string(c) {
			return c, nil
		}
	}
	return "", ErrInvalidInput
}

// ValidateNote always succeeds. "-" is the skip sentinel and normalizes to
// an empty note; anything else is kept as typed, up to the cap.
func ValidateNote(raw string) string {
	if raw == "-" {
		return ""
	}
	runes := []rune(raw)
	if len(runes) > maxNoteRunes {
		return string(runes[:maxNoteRunes])
	}
	return raw
}
