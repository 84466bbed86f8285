package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"goPayeCalculator/taxation"
)

// EmployeeTicket pairs a tax ticket with the employee it was produced for
type EmployeeTicket struct {
	Name   string
	Ticket taxation.Ticket
}

// FormatAmount formats money with thousands separators and two decimals,
// e.g. 100000 -> "100,000.00"
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

// FormatMoney formats money as pounds, e.g. "£100,000.00"
func FormatMoney(amount decimal.Decimal) string {
	return "£" + FormatAmount(amount)
}

const ticketRule = "──────────────────────────────────────────────"

// PrintTicket prints one tax ticket with monthly deductions
func PrintTicket(w io.Writer, et EmployeeTicket) {
	t := et.Ticket
	line := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(w, "  %-32s : £%12s\n", label, FormatAmount(amount))
	}

	fmt.Fprintln(w)
	title := "Tax Receipt for tax year " + t.TaxYear
	if et.Name != "" {
		title += " - " + et.Name
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ticketRule)
	line("Gross Annual Pay", t.AnnualGross)
	line("Gross Monthly Pay", t.MonthlyGross)
	line("PAYE                   (monthly)", t.PAYE)
	line(fmt.Sprintf("Student Loans PLAN %d   (monthly)", int(t.Plan)), t.StudentLoan)
	line("Employee NI            (monthly)", t.EmployeeNI)
	line("Employer NI            (monthly)", t.EmployerNI)
	fmt.Fprintln(w, ticketRule)
	line("Net Monthly Pay        (monthly)", t.NetMonthlyPay)
	fmt.Fprintln(w, ticketRule)
	line("Total Tax              (monthly)", t.MonthlyTotalTax)
	fmt.Fprintln(w)
}

// PrintAnnualSummary prints the annual amounts for one salary
func PrintAnnualSummary(w io.Writer, calc *taxation.Calculator, salary decimal.Decimal, plan taxation.StudentLoanPlan) error {
	paye, err := calc.PAYE(salary, taxation.Annual)
	if err != nil {
		return err
	}
	eeni, err := calc.EmployeeNI(salary, taxation.Annual)
	if err != nil {
		return err
	}
	erni, err := calc.EmployerNI(salary, taxation.Annual)
	if err != nil {
		return err
	}
	sl, err := calc.StudentLoan(salary, plan, taxation.Annual)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Annual deductions on %s (%s)\n", FormatMoney(salary), calc.TaxYear().Year)
	fmt.Fprintln(w, ticketRule)
	fmt.Fprintf(w, "  %-22s : £%12s\n", "PAYE", FormatAmount(paye))
	fmt.Fprintf(w, "  %-22s : £%12s\n", "Student Loans "+plan.String(), FormatAmount(sl))
	fmt.Fprintf(w, "  %-22s : £%12s\n", "Employee NI", FormatAmount(eeni))
	fmt.Fprintf(w, "  %-22s : £%12s\n", "Employer NI", FormatAmount(erni))
	fmt.Fprintln(w)
	return nil
}

func formatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

// PrintRates prints the thresholds and rates of a tax year
func PrintRates(w io.Writer, ty taxation.TaxYear) {
	fmt.Fprintln(w, "╔══════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  UK PAYROLL RATES AND THRESHOLDS %-11s ║\n", ty.Year)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════╝")

	section := func(name string) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, name)
		fmt.Fprintln(w, strings.Repeat("─", len([]rune(name))))
	}
	money := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(w, "  %-40s %s\n", label, FormatMoney(amount))
	}
	rate := func(label string, r decimal.Decimal) {
		fmt.Fprintf(w, "  %-40s %s\n", label, formatRate(r))
	}

	section("Income tax")
	money("Personal allowance", ty.DefaultPersonalAllowance)
	money("Allowance reduction point", ty.PersonalAllowanceReductionPoint)
	money("Basic rate threshold", ty.BasicRateThreshold)
	money("Higher rate threshold", ty.HigherRateThreshold)
	money("Additional rate threshold", ty.AdditionalRateThreshold)
	rate("Basic rate", ty.BasicTaxRate)
	rate("Higher rate", ty.HigherTaxRate)
	rate("Additional rate", ty.AdditionalTaxRate)

	section("Class 1 National Insurance thresholds")
	money("Lower earnings limit", ty.LowerEarningsLimit)
	money("Primary threshold", ty.PrimaryThreshold)
	money("Secondary threshold", ty.SecondaryThreshold)
	money("Upper secondary threshold (under 21)", ty.UpperSecondaryThresholdU21)
	money("Apprentice upper secondary threshold (U25)", ty.ApprenticeUpperSecondaryThresholdU25)
	money("Upper earnings limit", ty.UpperEarningsLimit)

	section("Class 1 National Insurance rates")
	rate("Employee: LEL to PT", ty.LELToPT)
	rate("Employee: PT to UEL", ty.PTToUEL)
	rate("Employee: above UEL", ty.UELAndAbove)
	rate("Employer: LEL to ST", ty.EmployerLELToST)
	rate("Employer: ST to UEL", ty.EmployerSTToUEL)
	rate("Employer: above UEL", ty.EmployerUELAndAbove)

	section("Student loan recovery")
	money("Plan 1 annual threshold", ty.AnnualRepaymentThresholdPlan1)
	money("Plan 2 annual threshold", ty.AnnualRepaymentThresholdPlan2)
	rate("Repayment rate", ty.StudentLoanRate)
	fmt.Fprintln(w)
}
