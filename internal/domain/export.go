package domain

import "time"

// ExportRow is a single row in a trip's expense export.
// It is a flat, denormalized view: one row per daily entry, with the trip
// fields repeated on every row.
type ExportRow struct {
	TripID   string
	TripName string

	Date     time.Time
	Category Category
	Currency Currency
	Expense  float64
	Notes    string
}
