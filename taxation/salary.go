package taxation

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Period selects whether a calculation returns a monthly or annual amount.
type Period int

const (
	Monthly Period = iota // Annual amount divided by 12
	Annual                // Whole tax year
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Annual:
		return "annual"
	default:
		return "unknown"
	}
}

// StudentLoanPlan is a student loan repayment scheme.
type StudentLoanPlan int

const (
	NoPlan StudentLoanPlan = iota // No student loan repayments
	Plan1
	Plan2
)

// Valid reports whether p is one of NoPlan, Plan1 or Plan2.
func (p StudentLoanPlan) Valid() bool {
	return p >= NoPlan && p <= Plan2
}

func (p StudentLoanPlan) String() string {
	switch p {
	case NoPlan:
		return "none"
	case Plan1:
		return "Plan 1"
	case Plan2:
		return "Plan 2"
	default:
		return "invalid plan " + strconv.Itoa(int(p))
	}
}

// ParseSalary converts user input such as "52000" or "52000.50" into a
// salary. Thousands separators, words, exponents, blanks and negative
// values are rejected.
func ParseSalary(s string) (decimal.Decimal, error) {
	const op = "taxation.parse_salary"

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, validationError(op, s, "the value given is empty, not a number", ErrInvalidSalary)
	}
	if strings.ContainsAny(trimmed, "eE") {
		// decimal accepts 1e50000000, which Round then expands digit by digit
		return decimal.Zero, validationError(op, s, "the value given uses an exponent, enter it in full", ErrInvalidSalary)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, validationError(op, s, "the value given is a string, not a number", ErrInvalidSalary)
	}
	if d.IsNegative() {
		return decimal.Zero, validationError(op, s, "the value given is less than zero", ErrInvalidSalary)
	}
	return d, nil
}

// SalaryFromFloat converts a float salary, rejecting NaN, infinities and
// negative values.
func SalaryFromFloat(f float64) (decimal.Decimal, error) {
	const op = "taxation.salary_from_float"

	value := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, validationError(op, value, "the value given is not a finite number", ErrInvalidSalary)
	}
	if f < 0 {
		return decimal.Zero, validationError(op, value, "the value given is less than zero", ErrInvalidSalary)
	}
	return decimal.NewFromFloat(f), nil
}
