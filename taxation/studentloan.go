package taxation

import (
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StudentLoan calculates student loan repayments on an annual salary.
// Repayments are the plan rate applied to income over the plan threshold,
// rounded down to whole pounds for the year before any monthly split.
// https://www.gov.uk/guidance/rates-and-thresholds-for-employers-2016-to-2017#student-loan-recovery
func (c *Calculator) StudentLoan(salary decimal.Decimal, plan StudentLoanPlan, period Period) (decimal.Decimal, error) {
	const op = "taxation.student_loan"

	if err := c.checkSalary(op, salary); err != nil {
		return decimal.Zero, err
	}
	if !plan.Valid() {
		err := validationError(op, strconv.Itoa(int(plan)), "the repayment plan value can only be 0, 1 or 2", ErrInvalidPlan)
		c.log.Debug("rejected plan", zap.String("op", op), zap.Error(err))
		return decimal.Zero, err
	}
	if plan == NoPlan {
		return decimal.Zero, nil
	}

	threshold, _ := c.taxYear.RepaymentThreshold(plan)
	if salary.LessThanOrEqual(threshold) {
		return decimal.Zero, nil
	}

	repayment := salary.Sub(threshold).Mul(c.taxYear.StudentLoanRate).Floor()
	return forPeriod(repayment, period), nil
}
