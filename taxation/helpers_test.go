package taxation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCalculator(t *testing.T, year string) *Calculator {
	t.Helper()
	c, err := NewCalculator(year)
	if err != nil {
		t.Fatalf("NewCalculator(%q): unexpected error: %v", year, err)
	}
	return c
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, description string) {
	t.Helper()
	want := money(expected)
	if !want.Equal(actual) {
		t.Errorf("%s: expected £%s, got £%s (diff: £%s)",
			description, want.StringFixed(2), actual.StringFixed(2), actual.Sub(want).StringFixed(2))
	}
}
