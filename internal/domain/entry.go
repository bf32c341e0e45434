package domain

import (
	"time"

	"github.com/google/uuid"
)

// Currency is an ISO 4217 code accepted for daily expenses.
type Currency string

// Category groups daily expenses for reporting.
type Category string

// Currencies lists the supported expense currencies. The first entry is the default.
var Currencies = []Currency{"USD", "EUR", "GBP", "JPY", "INR", "CAD", "AUD"}

// Categories lists the supported expense categories. The first entry is the default.
var Categories = []Category{"Food", "Transport", "Accommodation", "Activities", "Shopping", "Other"}

// DailyEntry is a single journal line for one day of a trip, with the money spent.
// Entries are created and deleted, never edited.
type DailyEntry struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Date      time.Time
	Notes     string
	Expense   float64
	Currency  Currency
	Category  Category
	CreatedAt time.Time
}

// ExpenseTotals sums expenses per currency. Amounts in different currencies
// are never converted or combined.
type ExpenseTotals map[Currency]float64

// SumExpenses totals the expenses of entries per currency.
func SumExpenses(entries []DailyEntry) ExpenseTotals {
	totals := ExpenseTotals{}
	for _, e := range entries {
		totals[e.Currency] += e.Expense
	}
	return totals
}
