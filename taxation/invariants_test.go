package taxation

import (
	"testing"

	"github.com/shopspring/decimal"
)

// Mathematical Invariants Test Suite
//
// Properties that must hold for every bundled tax year regardless of the
// exact figures: monotonicity, continuity at band edges, and agreement
// between monthly and annual amounts.

type calcFunc func(c *Calculator, salary decimal.Decimal, period Period) (decimal.Decimal, error)

var allCalculations = map[string]calcFunc{
	"PAYE":       (*Calculator).PAYE,
	"EmployeeNI": (*Calculator).EmployeeNI,
	"EmployerNI": (*Calculator).EmployerNI,
	"StudentLoanPlan1": func(c *Calculator, s decimal.Decimal, p Period) (decimal.Decimal, error) {
		return c.StudentLoan(s, Plan1, p)
	},
	"StudentLoanPlan2": func(c *Calculator, s decimal.Decimal, p Period) (decimal.Decimal, error) {
		return c.StudentLoan(s, Plan2, p)
	},
}

func eachCalculator(t *testing.T, fn func(t *testing.T, c *Calculator)) {
	t.Helper()
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	for _, year := range catalog.Years() {
		c := newTestCalculator(t, year)
		t.Run(year, func(t *testing.T) { fn(t, c) })
	}
}

func sampleSalaries() []decimal.Decimal {
	var out []decimal.Decimal
	for s := int64(0); s <= 400000; s += 250 {
		out = append(out, decimal.NewFromInt(s))
	}
	return out
}

// =============================================================================
// Monotonicity
// =============================================================================

func TestInvariant_AmountsNeverDecrease(t *testing.T) {
	eachCalculator(t, func(t *testing.T, c *Calculator) {
		for name, calc := range allCalculations {
			for _, period := range []Period{Monthly, Annual} {
				previous := decimal.Zero
				for _, salary := range sampleSalaries() {
					got, err := calc(c, salary, period)
					if err != nil {
						t.Fatalf("%s(%s): %v", name, salary, err)
					}
					if got.LessThan(previous) {
						t.Errorf("%s %s decreased from £%s to £%s at salary £%s",
							name, period, previous, got, salary)
					}
					previous = got
				}
			}
		}
	})
}

func TestInvariant_NeverNegative(t *testing.T) {
	eachCalculator(t, func(t *testing.T, c *Calculator) {
		for name, calc := range allCalculations {
			for _, salary := range sampleSalaries() {
				got, err := calc(c, salary, Annual)
				if err != nil {
					t.Fatalf("%s(%s): %v", name, salary, err)
				}
				if got.IsNegative() {
					t.Errorf("%s on £%s is negative: £%s", name, salary, got)
				}
				if got.GreaterThan(salary) {
					t.Errorf("%s on £%s exceeds the salary: £%s", name, salary, got)
				}
			}
		}
	})
}

// =============================================================================
// Continuity at band boundaries
// =============================================================================

func TestInvariant_NoJumpsAtThresholds(t *testing.T) {
	// Stepping £1 over a threshold costs at most the top band rate.
	step := decimal.NewFromInt(1)
	tolerance := decimal.RequireFromString("0.01")

	eachCalculator(t, func(t *testing.T, c *Calculator) {
		ty := c.TaxYear()
		maxRate := ty.AdditionalTaxRate
		thresholds := []decimal.Decimal{
			ty.DefaultPersonalAllowance,
			ty.BasicRateThreshold,
			ty.HigherRateThreshold,
			ty.PersonalAllowanceReductionPoint,
			ty.AdditionalRateThreshold,
			ty.PrimaryThreshold,
			ty.SecondaryThreshold,
			ty.UpperEarningsLimit,
		}

		for _, name := range []string{"PAYE", "EmployeeNI", "EmployerNI"} {
			calc := allCalculations[name]
			for _, threshold := range thresholds {
				at, err := calc(c, threshold, Annual)
				if err != nil {
					t.Fatalf("%s(%s): %v", name, threshold, err)
				}
				above, err := calc(c, threshold.Add(step), Annual)
				if err != nil {
					t.Fatalf("%s(%s): %v", name, threshold.Add(step), err)
				}
				diff := above.Sub(at)
				if diff.IsNegative() || diff.GreaterThan(maxRate.Mul(step).Add(tolerance)) {
					t.Errorf("%s jumps by £%s between £%s and £%s",
						name, diff, threshold, threshold.Add(step))
				}
			}
		}
	})
}

func TestInvariant_MarginalRateMatchesEnteringBand(t *testing.T) {
	c := newTestCalculator(t, "")
	ty := c.TaxYear()
	step := decimal.NewFromInt(100)

	tests := []struct {
		name      string
		calc      calcFunc
		threshold decimal.Decimal
		rate      decimal.Decimal
	}{
		{"PAYE basic", allCalculations["PAYE"], ty.BasicRateThreshold, ty.BasicTaxRate},
		{"PAYE higher", allCalculations["PAYE"], ty.HigherRateThreshold, ty.HigherTaxRate},
		{"PAYE additional", allCalculations["PAYE"], ty.AdditionalRateThreshold, ty.AdditionalTaxRate},
		{"EmployeeNI main", allCalculations["EmployeeNI"], ty.PrimaryThreshold, ty.PTToUEL},
		{"EmployeeNI above UEL", allCalculations["EmployeeNI"], ty.UpperEarningsLimit, ty.UELAndAbove},
		{"EmployerNI main", allCalculations["EmployerNI"], ty.SecondaryThreshold, ty.EmployerSTToUEL},
		{"EmployerNI above UEL", allCalculations["EmployerNI"], ty.UpperEarningsLimit, ty.EmployerUELAndAbove},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			at, err := tc.calc(c, tc.threshold, Annual)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			above, err := tc.calc(c, tc.threshold.Add(step), Annual)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := step.Mul(tc.rate)
			if !above.Sub(at).Equal(want) {
				t.Errorf("£%s over £%s costs £%s; want £%s", step, tc.threshold, above.Sub(at), want)
			}
		})
	}
}

// =============================================================================
// Monthly and annual amounts agree
// =============================================================================

func TestInvariant_MonthlyTimesTwelveMatchesAnnual(t *testing.T) {
	// Both figures are rounded to the penny, so twelve monthly amounts can
	// drift from the annual amount by a little over half a penny each.
	tolerance := decimal.RequireFromString("0.07")
	perMonth := decimal.RequireFromString("0.006")

	eachCalculator(t, func(t *testing.T, c *Calculator) {
		for name, calc := range allCalculations {
			for _, salary := range sampleSalaries() {
				annual, err := calc(c, salary, Annual)
				if err != nil {
					t.Fatalf("%s(%s): %v", name, salary, err)
				}
				monthly, err := calc(c, salary, Monthly)
				if err != nil {
					t.Fatalf("%s(%s): %v", name, salary, err)
				}
				if diff := annual.Sub(monthly.Mul(monthsPerYear)).Abs(); diff.GreaterThan(tolerance) {
					t.Errorf("%s on £%s: annual £%s vs 12 × £%s (diff £%s)",
						name, salary, annual, monthly, diff)
				}
				if diff := annual.Div(monthsPerYear).Sub(monthly).Abs(); diff.GreaterThan(perMonth) {
					t.Errorf("%s on £%s: monthly £%s is not annual / 12 rounded", name, salary, monthly)
				}
			}
		}
	})
}

// =============================================================================
// Rejected input never panics and always reports a validation error
// =============================================================================

func TestInvariant_NegativeSalaryRejectedEverywhere(t *testing.T) {
	eachCalculator(t, func(t *testing.T, c *Calculator) {
		for name, calc := range allCalculations {
			for _, salary := range []string{"-0.01", "-25000"} {
				got, err := calc(c, money(salary), Monthly)
				if !IsKind(err, KindValidation) {
					t.Errorf("%s(%s): expected validation error, got %v", name, salary, err)
				}
				if !got.IsZero() {
					t.Errorf("%s(%s): expected zero with error, got %s", name, salary, got)
				}
			}
		}
	})
}
