package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"goPayeCalculator/taxation"
)

const (
	ticketsSheet = "Tickets"
	ratesSheet   = "Rates"
)

var ticketColumns = []string{
	"Employee", "Tax year", "Student loan", "Gross annual pay", "Gross monthly pay",
	"PAYE", "Student loan repayment", "Employee NI", "Employer NI", "Net monthly pay", "Total tax",
}

// GenerateTicketsXLSX writes one row per ticket plus a totals row, and the
// rate table on a second sheet
func GenerateTicketsXLSX(ty taxation.TaxYear, tickets []EmployeeTicket) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ticketsSheet); err != nil {
		return nil, err
	}

	moneyFmt := "£#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"003366"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(ticketsSheet, "A1", &ticketColumns); err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(ticketColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ticketsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ticketsSheet, "A", "A", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ticketsSheet, "B", lastCol, 16); err != nil {
		return nil, err
	}

	for i, et := range tickets {
		row := i + 2
		t := et.Ticket
		values := []any{
			ticketName(i+1, et),
			t.TaxYear,
			t.Plan.String(),
			t.AnnualGross.InexactFloat64(),
			t.MonthlyGross.InexactFloat64(),
			t.PAYE.InexactFloat64(),
			t.StudentLoan.InexactFloat64(),
			t.EmployeeNI.InexactFloat64(),
			t.EmployerNI.InexactFloat64(),
			t.NetMonthlyPay.InexactFloat64(),
			t.MonthlyTotalTax.InexactFloat64(),
		}
		if err := f.SetSheetRow(ticketsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(ticketsSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%s%d", lastCol, row), moneyStyle); err != nil {
			return nil, err
		}
	}

	if len(tickets) > 0 {
		totalRow := len(tickets) + 2
		if err := f.SetCellValue(ticketsSheet, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
			return nil, err
		}
		for col := 4; col <= len(ticketColumns); col++ {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return nil, err
			}
			formula := fmt.Sprintf("SUM(%s2:%s%d)", name, name, totalRow-1)
			if err := f.SetCellFormula(ticketsSheet, fmt.Sprintf("%s%d", name, totalRow), formula); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(ticketsSheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("%s%d", lastCol, totalRow), totalStyle); err != nil {
			return nil, err
		}
	}

	if err := writeRatesSheet(f, ty, headerStyle, moneyStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRatesSheet(f *excelize.File, ty taxation.TaxYear, headerStyle, moneyStyle int) error {
	if _, err := f.NewSheet(ratesSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(ratesSheet, "A1", &[]string{"Tax year " + ty.Year, "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(ratesSheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(ratesSheet, "A", "A", 44); err != nil {
		return err
	}
	if err := f.SetColWidth(ratesSheet, "B", "B", 14); err != nil {
		return err
	}

	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return err
	}

	rows := []struct {
		label string
		value decimal.Decimal
		rate  bool
	}{
		{"Personal allowance", ty.DefaultPersonalAllowance, false},
		{"Allowance reduction point", ty.PersonalAllowanceReductionPoint, false},
		{"Basic rate threshold", ty.BasicRateThreshold, false},
		{"Higher rate threshold", ty.HigherRateThreshold, false},
		{"Additional rate threshold", ty.AdditionalRateThreshold, false},
		{"Basic rate", ty.BasicTaxRate, true},
		{"Higher rate", ty.HigherTaxRate, true},
		{"Additional rate", ty.AdditionalTaxRate, true},
		{"Lower earnings limit", ty.LowerEarningsLimit, false},
		{"Primary threshold", ty.PrimaryThreshold, false},
		{"Secondary threshold", ty.SecondaryThreshold, false},
		{"Upper secondary threshold (under 21)", ty.UpperSecondaryThresholdU21, false},
		{"Apprentice upper secondary threshold (U25)", ty.ApprenticeUpperSecondaryThresholdU25, false},
		{"Upper earnings limit", ty.UpperEarningsLimit, false},
		{"Employee NI: LEL to PT", ty.LELToPT, true},
		{"Employee NI: PT to UEL", ty.PTToUEL, true},
		{"Employee NI: above UEL", ty.UELAndAbove, true},
		{"Employer NI: LEL to ST", ty.EmployerLELToST, true},
		{"Employer NI: ST to UEL", ty.EmployerSTToUEL, true},
		{"Employer NI: above UEL", ty.EmployerUELAndAbove, true},
		{"Student loan Plan 1 threshold", ty.AnnualRepaymentThresholdPlan1, false},
		{"Student loan Plan 2 threshold", ty.AnnualRepaymentThresholdPlan2, false},
		{"Student loan repayment rate", ty.StudentLoanRate, true},
	}

	for i, r := range rows {
		row := i + 2
		if err := f.SetSheetRow(ratesSheet, fmt.Sprintf("A%d", row), &[]any{r.label, r.value.InexactFloat64()}); err != nil {
			return err
		}
		cell := fmt.Sprintf("B%d", row)
		style := moneyStyle
		if r.rate {
			style = percentStyle
		}
		if err := f.SetCellStyle(ratesSheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
