package taxation

import (
	"github.com/shopspring/decimal"
)

// PersonalAllowance returns the tax-free allowance for salary. Above the
// reduction point the allowance goes down by £1 for every whole £2 of
// income over it, reaching zero at reduction point + 2 × allowance.
// https://www.gov.uk/income-tax-rates/income-over-100000
func (c *Calculator) PersonalAllowance(salary decimal.Decimal) decimal.Decimal {
	ty := c.taxYear
	allowance := ty.DefaultPersonalAllowance
	if salary.GreaterThan(ty.PersonalAllowanceReductionPoint) {
		reduction := salary.Sub(ty.PersonalAllowanceReductionPoint).Div(two).Floor()
		allowance = allowance.Sub(reduction)
		if allowance.IsNegative() {
			allowance = decimal.Zero
		}
	}
	return allowance
}

// PAYE calculates income tax on an annual salary.
//
// The bands are removed from the top down: the slice above the additional
// rate threshold, then the higher rate slice, then the basic rate slice.
// The higher rate slice is whatever remains after taking away the
// (tapered) allowance and the full width of the basic rate band, so a lost
// allowance is taxed at the higher rate.
func (c *Calculator) PAYE(salary decimal.Decimal, period Period) (decimal.Decimal, error) {
	const op = "taxation.paye"

	if err := c.checkSalary(op, salary); err != nil {
		return decimal.Zero, err
	}

	ty := c.taxYear
	if salary.LessThanOrEqual(ty.DefaultPersonalAllowance) {
		return decimal.Zero, nil
	}

	allowance := c.PersonalAllowance(salary)
	basicBand := ty.HigherRateThreshold.Sub(ty.BasicRateThreshold)
	remaining := salary
	paye := decimal.Zero

	if remaining.GreaterThan(ty.AdditionalRateThreshold) {
		chunk := remaining.Sub(ty.AdditionalRateThreshold)
		paye = paye.Add(chunk.Mul(ty.AdditionalTaxRate))
		remaining = remaining.Sub(chunk)
	}

	if remaining.GreaterThan(ty.HigherRateThreshold) && remaining.LessThanOrEqual(ty.AdditionalRateThreshold) {
		chunk := remaining.Sub(allowance).Sub(basicBand)
		paye = paye.Add(chunk.Mul(ty.HigherTaxRate))
		remaining = remaining.Sub(chunk)
	}

	if remaining.GreaterThan(ty.BasicRateThreshold) && remaining.LessThanOrEqual(ty.HigherRateThreshold) {
		chunk := remaining.Sub(allowance)
		if salary.GreaterThan(ty.HigherRateThreshold) {
			chunk = basicBand
		}
		paye = paye.Add(chunk.Mul(ty.BasicTaxRate))
	}

	return forPeriod(paye, period), nil
}
