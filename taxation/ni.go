package taxation

import (
	"github.com/shopspring/decimal"
)

// niBands describes one side of Class 1 contributions: earnings up to the
// threshold, threshold to the upper earnings limit, and above the limit.
type niBands struct {
	threshold  decimal.Decimal
	upperLimit decimal.Decimal
	belowRate  decimal.Decimal
	mainRate   decimal.Decimal
	aboveRate  decimal.Decimal
}

func (b niBands) contribution(salary decimal.Decimal) decimal.Decimal {
	remaining := salary
	nic := decimal.Zero

	if remaining.GreaterThan(b.upperLimit) {
		chunk := remaining.Sub(b.upperLimit)
		nic = nic.Add(chunk.Mul(b.aboveRate))
		remaining = remaining.Sub(chunk)
	}

	if remaining.GreaterThan(b.threshold) && remaining.LessThanOrEqual(b.upperLimit) {
		chunk := remaining.Sub(b.threshold)
		nic = nic.Add(chunk.Mul(b.mainRate))
		remaining = remaining.Sub(chunk)
	}

	if !remaining.IsNegative() && remaining.LessThanOrEqual(b.threshold) {
		nic = nic.Add(remaining.Mul(b.belowRate))
	}

	return nic
}

func (ty TaxYear) employeeBands() niBands {
	return niBands{
		threshold:  ty.PrimaryThreshold,
		upperLimit: ty.UpperEarningsLimit,
		belowRate:  ty.LELToPT,
		mainRate:   ty.PTToUEL,
		aboveRate:  ty.UELAndAbove,
	}
}

func (ty TaxYear) employerBands() niBands {
	return niBands{
		threshold:  ty.SecondaryThreshold,
		upperLimit: ty.UpperEarningsLimit,
		belowRate:  ty.EmployerLELToST,
		mainRate:   ty.EmployerSTToUEL,
		aboveRate:  ty.EmployerUELAndAbove,
	}
}

// EmployeeNI calculates the employee's (primary) Class 1 National Insurance
// contribution on an annual salary.
func (c *Calculator) EmployeeNI(salary decimal.Decimal, period Period) (decimal.Decimal, error) {
	if err := c.checkSalary("taxation.employee_ni", salary); err != nil {
		return decimal.Zero, err
	}
	return forPeriod(c.taxYear.employeeBands().contribution(salary), period), nil
}

// EmployerNI calculates the employer's (secondary) Class 1 National
// Insurance contribution on an annual salary.
func (c *Calculator) EmployerNI(salary decimal.Decimal, period Period) (decimal.Decimal, error) {
	if err := c.checkSalary("taxation.employer_ni", salary); err != nil {
		return decimal.Zero, err
	}
	return forPeriod(c.taxYear.employerBands().contribution(salary), period), nil
}
