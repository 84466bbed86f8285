// Package taxation calculates UK payroll deductions (PAYE income tax,
// employee and employer National Insurance, and student loan repayments)
// for an annual salary using fixed per-tax-year rate tables.
//
// PAYE data for 2018-2019 is taken from https://www.gov.uk/income-tax-rates,
// 2016-2017 and 2017-2018 from https://www.gov.uk/income-tax-rates/previous-tax-years.
// National Insurance and student loan thresholds come from the HMRC
// "rates and thresholds for employers" pages for each year.
package taxation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Version of the calculator rules and API.
const Version = "0.1.6"

// DefaultTaxYear is used when a calculator is built without a tax year.
// It is the earliest bundled year, kept for backwards compatibility with
// callers that predate tax-year selection.
const DefaultTaxYear = "2016-2017"

// TaxYear holds one tax year's thresholds and rates. Money values are in
// pounds, rates are decimals (0.20 = 20%).
type TaxYear struct {
	Year string

	// Tax thresholds, rates and codes
	PersonalAllowanceReductionPoint decimal.Decimal
	DefaultPersonalAllowance        decimal.Decimal
	BasicRateThreshold              decimal.Decimal
	HigherRateThreshold             decimal.Decimal
	AdditionalRateThreshold         decimal.Decimal
	BasicTaxRate                    decimal.Decimal
	HigherTaxRate                   decimal.Decimal
	AdditionalTaxRate               decimal.Decimal

	// Class 1 National Insurance thresholds
	LowerEarningsLimit                   decimal.Decimal
	PrimaryThreshold                     decimal.Decimal
	SecondaryThreshold                   decimal.Decimal
	UpperSecondaryThresholdU21           decimal.Decimal
	ApprenticeUpperSecondaryThresholdU25 decimal.Decimal
	UpperEarningsLimit                   decimal.Decimal

	// Class 1 National Insurance rates (employee)
	LELToPT     decimal.Decimal
	PTToUEL     decimal.Decimal
	UELAndAbove decimal.Decimal

	// Employer (secondary) contribution rates
	EmployerLELToST     decimal.Decimal
	EmployerSTToUEL     decimal.Decimal
	EmployerUELAndAbove decimal.Decimal

	// Student loan recovery
	AnnualRepaymentThresholdPlan1 decimal.Decimal
	AnnualRepaymentThresholdPlan2 decimal.Decimal
	StudentLoanRate               decimal.Decimal
}

// Validate checks that thresholds are ordered and rates lie in [0,1].
func (ty TaxYear) Validate() error {
	const op = "taxation.validate_tax_year"

	if ty.Year == "" {
		return configurationError(op, "", "tax year identifier is required", ErrInvalidTaxTable)
	}

	ordered := []struct {
		name   string
		values []decimal.Decimal
	}{
		{"income tax thresholds", []decimal.Decimal{ty.BasicRateThreshold, ty.HigherRateThreshold, ty.AdditionalRateThreshold}},
		{"primary threshold", []decimal.Decimal{ty.LowerEarningsLimit, ty.PrimaryThreshold, ty.UpperEarningsLimit}},
		{"secondary threshold", []decimal.Decimal{ty.LowerEarningsLimit, ty.SecondaryThreshold, ty.UpperEarningsLimit}},
	}
	for _, o := range ordered {
		for i := 1; i < len(o.values); i++ {
			if o.values[i].LessThan(o.values[i-1]) {
				return configurationError(op, ty.Year, o.name+" must be non-decreasing", ErrInvalidTaxTable)
			}
		}
	}

	money := map[string]decimal.Decimal{
		"personal_allowance_reduction_point": ty.PersonalAllowanceReductionPoint,
		"default_personal_allowance":         ty.DefaultPersonalAllowance,
		"basic_rate_threshold":               ty.BasicRateThreshold,
		"lower_earnings_limit":               ty.LowerEarningsLimit,
		"annual_repayment_threshold_plan_1":  ty.AnnualRepaymentThresholdPlan1,
		"annual_repayment_threshold_plan_2":  ty.AnnualRepaymentThresholdPlan2,
	}
	for name, v := range money {
		if v.IsNegative() {
			return configurationError(op, ty.Year, name+" must not be negative", ErrInvalidTaxTable)
		}
	}

	one := decimal.NewFromInt(1)
	for name, r := range ty.rates() {
		if r.IsNegative() || r.GreaterThan(one) {
			return configurationError(op, ty.Year, fmt.Sprintf("%s must be between 0 and 1, got %s", name, r), ErrInvalidTaxTable)
		}
	}

	return nil
}

func (ty TaxYear) rates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"basic_tax_rate":         ty.BasicTaxRate,
		"higher_tax_rate":        ty.HigherTaxRate,
		"additional_tax_rate":    ty.AdditionalTaxRate,
		"lel_to_pt":              ty.LELToPT,
		"pt_to_uel":              ty.PTToUEL,
		"uel_and_above":          ty.UELAndAbove,
		"employer_lel_to_pt":     ty.EmployerLELToST,
		"employer_pt_to_uel":     ty.EmployerSTToUEL,
		"employer_uel_and_above": ty.EmployerUELAndAbove,
		"sl_interest_rate":       ty.StudentLoanRate,
	}
}

// RepaymentThreshold returns the annual threshold for a repayment plan.
// NoPlan and invalid plans report false.
func (ty TaxYear) RepaymentThreshold(plan StudentLoanPlan) (decimal.Decimal, bool) {
	switch plan {
	case Plan1:
		return ty.AnnualRepaymentThresholdPlan1, true
	case Plan2:
		return ty.AnnualRepaymentThresholdPlan2, true
	default:
		return decimal.Zero, false
	}
}
