package taxation

import (
	"github.com/shopspring/decimal"
)

// Ticket is the monthly breakdown of deductions for one salary.
type Ticket struct {
	TaxYear         string
	AnnualGross     decimal.Decimal
	MonthlyGross    decimal.Decimal
	Plan            StudentLoanPlan
	PAYE            decimal.Decimal
	StudentLoan     decimal.Decimal
	EmployeeNI      decimal.Decimal
	EmployerNI      decimal.Decimal
	NetMonthlyPay   decimal.Decimal
	MonthlyTotalTax decimal.Decimal
}

// Ticket works out every monthly deduction for salary. Net pay is gross
// monthly pay less PAYE, student loan and employee NI. Total tax also
// counts the employer's NI.
func (c *Calculator) Ticket(salary decimal.Decimal, plan StudentLoanPlan) (Ticket, error) {
	paye, err := c.PAYE(salary, Monthly)
	if err != nil {
		return Ticket{}, err
	}
	sl, err := c.StudentLoan(salary, plan, Monthly)
	if err != nil {
		return Ticket{}, err
	}
	eeni, err := c.EmployeeNI(salary, Monthly)
	if err != nil {
		return Ticket{}, err
	}
	erni, err := c.EmployerNI(salary, Monthly)
	if err != nil {
		return Ticket{}, err
	}

	monthly := salary.Div(monthsPerYear)
	return Ticket{
		TaxYear:         c.taxYear.Year,
		AnnualGross:     salary,
		MonthlyGross:    monthly.Round(2),
		Plan:            plan,
		PAYE:            paye,
		StudentLoan:     sl,
		EmployeeNI:      eeni,
		EmployerNI:      erni,
		NetMonthlyPay:   monthly.Sub(paye).Sub(sl).Sub(eeni).Round(2),
		MonthlyTotalTax: paye.Add(eeni).Add(erni).Add(sl),
	}, nil
}
