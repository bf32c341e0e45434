package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/backend/internal/domain"
)

func TestTripPath_String(t *testing.T) {
	p := domain.TripPath{Tenant: "app-1", User: "u1", TripID: "t1"}

	assert.Equal(t, "app-1/users/u1/trips/t1", p.String())
	assert.Equal(t, "app-1/users/u1/trips/t1/daily_entries", p.Collection(domain.DailyEntriesCollection).String())
	assert.Equal(t, "app-1/users/u1/trips/t1/photos", p.Collection(domain.PhotosCollection).String())
}

func TestParseTripPath(t *testing.T) {
	got, err := domain.ParseTripPath("/app-1/users/u1/trips/t1/")

	require.NoError(t, err)
	assert.Equal(t, domain.TripPath{Tenant: "app-1", User: "u1", TripID: "t1"}, got)
}

func TestParseTripPath_Malformed(t *testing.T) {
	for _, s := range []string{
		"",
		"app-1/users/u1",
		"app-1/people/u1/trips/t1",
		"app-1/users/u1/journeys/t1",
		"app-1/users/u1/trips/t1/photos",
	} {
		_, err := domain.ParseTripPath(s)
		assert.ErrorIs(t, err, domain.ErrValidation, "path %q", s)
	}
}

func TestSumExpenses(t *testing.T) {
	totals := domain.SumExpenses([]domain.DailyEntry{
		{Expense: 10, Currency: "USD"},
		{Expense: 2.5, Currency: "USD"},
		{Expense: 3000, Currency: "JPY"},
		{Expense: 0, Currency: "EUR"},
	})

	assert.Len(t, totals, 3)
	assert.InDelta(t, 12.5, totals["USD"], 0.0001)
	assert.InDelta(t, 3000, totals["JPY"], 0.0001)
	assert.Zero(t, totals["EUR"])
}
