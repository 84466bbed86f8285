package taxation

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTicket_Breakdown(t *testing.T) {
	c := newTestCalculator(t, "")

	ticket, err := c.Ticket(money("30000"), Plan1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ticket.TaxYear != "2016-2017" {
		t.Errorf("expected tax year 2016-2017, got %s", ticket.TaxYear)
	}
	if ticket.Plan != Plan1 {
		t.Errorf("expected plan 1, got %s", ticket.Plan)
	}
	assertMoney(t, "30000", ticket.AnnualGross, "annual gross")
	assertMoney(t, "2500", ticket.MonthlyGross, "monthly gross")
	assertMoney(t, "316.67", ticket.PAYE, "PAYE: 19000 × 0.20 / 12")
	assertMoney(t, "93.75", ticket.StudentLoan, "student loan: floor(12505 × 0.09) / 12")
	assertMoney(t, "219.4", ticket.EmployeeNI, "employee NI: 21940 × 0.12 / 12")
	assertMoney(t, "251.71", ticket.EmployerNI, "employer NI: 21888 × 0.138 / 12")
	assertMoney(t, "1870.18", ticket.NetMonthlyPay, "2500 - 316.67 - 93.75 - 219.40")
	assertMoney(t, "881.53", ticket.MonthlyTotalTax, "316.67 + 219.40 + 251.71 + 93.75")
}

func TestTicket_HighEarner2017(t *testing.T) {
	c := newTestCalculator(t, "2017-2018")

	ticket, err := c.Ticket(money("100000"), NoPlan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMoney(t, "8333.33", ticket.MonthlyGross, "monthly gross")
	assertMoney(t, "2391.65", ticket.PAYE, "PAYE")
	assertMoney(t, "0", ticket.StudentLoan, "student loan")
	assertMoney(t, "460.03", ticket.EmployeeNI, "employee NI")
	assertMoney(t, "1056.11", ticket.EmployerNI, "employer NI")
	assertMoney(t, "5481.65", ticket.NetMonthlyPay, "net pay")
	assertMoney(t, "3907.79", ticket.MonthlyTotalTax, "total tax")
}

func TestTicket_InvalidInput(t *testing.T) {
	c := newTestCalculator(t, "")

	if _, err := c.Ticket(money("-1"), NoPlan); !errors.Is(err, ErrInvalidSalary) {
		t.Errorf("expected ErrInvalidSalary, got %v", err)
	}
	if _, err := c.Ticket(money("30000"), 7); !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("expected ErrInvalidPlan, got %v", err)
	}
}

func TestCalculator_LogsRejectedInput(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, err := NewCalculator("2018-2019", WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.PAYE(money("-10"), Monthly); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := c.StudentLoan(money("30000"), 9, Annual); err == nil {
		t.Fatalf("expected error")
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "rejected salary" || entries[1].Message != "rejected plan" {
		t.Errorf("unexpected messages: %q, %q", entries[0].Message, entries[1].Message)
	}
	if got := entries[0].ContextMap()["tax_year"]; got != "2018-2019" {
		t.Errorf("expected tax_year field, got %v", got)
	}
}

func TestCalculator_LogsUnknownYear(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	if _, err := NewCalculator("1999-2000", WithLogger(zap.New(core))); err == nil {
		t.Fatalf("expected error")
	}
	if logs.FilterMessage("tax year not found").Len() != 1 {
		t.Errorf("expected a warning for the unknown year, got %v", logs.All())
	}
}

func TestError_Message(t *testing.T) {
	c := newTestCalculator(t, "")
	_, err := c.EmployeeNI(money("-25000"), Monthly)

	want := "taxation.employee_ni: validation: invalid salary >>-25000<<: the value given is less than zero"
	if err.Error() != want {
		t.Errorf("Error() = %q; want %q", err.Error(), want)
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" || nilErr.Unwrap() != nil {
		t.Errorf("nil *Error should be safe to use")
	}
}
