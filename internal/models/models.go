package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Step is the stage of the expense-entry conversation a user is currently at.
type Step int

const (
	StepNone Step = iota
	StepDate
	StepCurrency
	StepAmount
	StepCategory
	StepNote
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "awaiting_date"
	case StepCurrency:
		return "awaiting_currency"
	case StepAmount:
		return "awaiting_amount"
	case StepCategory:
		return "awaiting_category"
	case StepNote:
		return "awaiting_note"
	default:
		return "none"
	}
}

type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Symbol returns the sign written into the spreadsheet for this currency.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyINR:
		return "₹"
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	default:
		return string(c)
	}
}

func Currencies() []Currency {
	return []Currency{CurrencyINR, CurrencyUSD, CurrencyEUR}
}

type Category string

const (
	CategoryFood      Category = "Food"
	CategoryTransport Category = "Transport"
	CategoryBills     Category = "Bills"
	CategoryOther     Category = "Other"
)

func Categories() []Category {
	return []Category{CategoryFood, CategoryTransport, CategoryBills, CategoryOther}
}

// Session is the in-progress expense entry for a single user. Fields are filled
// strictly in step order; a field is only set once the step before it completed.
type Session struct {
	UserID    int64
	PromptTag string // stamped into every keyboard emitted for this session
	Step      Step
	Date      string // 2006-01-02
	Currency  Currency
	Amount    decimal.Decimal
	Category  Category
	Note      string
	UpdatedAt time.Time
}

// ExpenseRecord is the finalized payload sent to the sheets webhook.
type ExpenseRecord struct {
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Category  string  `json:"category"`
	Note      string  `json:"note"`
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username,omitempty"`
	Timestamp string  `json:"timestamp"`
}
