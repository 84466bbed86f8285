package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// pdfText converts UTF-8 text to PDF-safe encoding
// The £ sign in UTF-8 is 0xC2 0xA3, but PDF standard fonts expect Latin-1 (just 0xA3)
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}

// FormatMoneyPDF formats money for PDF output (handles £ encoding)
func FormatMoneyPDF(amount decimal.Decimal) string {
	return pdfText(FormatMoney(amount))
}

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFTicketReport renders tax tickets as a PDF document
type PDFTicketReport struct {
	pdf     *fpdf.Fpdf
	taxYear string
	tickets []EmployeeTicket
	now     time.Time
}

// GenerateTicketsPDF renders a title page, one page per ticket and a payroll summary
func GenerateTicketsPDF(taxYear string, tickets []EmployeeTicket) ([]byte, error) {
	report := &PDFTicketReport{
		pdf:     fpdf.New("P", "mm", "A4", ""),
		taxYear: taxYear,
		tickets: tickets,
		now:     time.Now(),
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)
	report.pdf.SetTitle("Tax Receipts "+taxYear, false)

	report.addTitlePage()
	for i, t := range tickets {
		report.addTicketPage(i+1, t)
	}
	if len(tickets) > 1 {
		report.addSummaryPage()
	}

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFTicketReport) addTitlePage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 28)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(50)
	r.pdf.CellFormat(contentWidth, 15, "Tax Receipts", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(10)
	r.pdf.CellFormat(contentWidth, 10, "Tax year "+r.taxYear, "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(15)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", r.now.Format("2 January 2006")), "", 1, "C", false, 0, "")

	r.pdf.Ln(20)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Employees", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	for i, t := range r.tickets {
		text := fmt.Sprintf("%s - %s a year, student loan %s",
			ticketName(i+1, t), FormatMoneyPDF(t.Ticket.AnnualGross), t.Ticket.Plan)
		r.pdf.CellFormat(contentWidth, 7, text, "LR", 1, "C", true, 0, "")
	}
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")

	r.pdf.Ln(15)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5,
		"Figures are estimates based on the published thresholds and rates for the tax year. "+
			"Check your payslip and HMRC guidance before relying on them.", "", "C", false)
}

func (r *PDFTicketReport) addTicketPage(n int, et EmployeeTicket) {
	t := et.Ticket
	r.pdf.AddPage()
	r.drawSectionHeader(pdfText("Tax Receipt: " + ticketName(n, et)))

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 6, "Tax year "+t.TaxYear, "", 1, "L", false, 0, "")
	r.pdf.Ln(4)

	widths := []float64{contentWidth * 0.6, contentWidth * 0.4}
	r.drawTableHeader([]string{"Item", "Amount"}, widths)
	r.drawTableRow([]string{"Gross annual pay", FormatMoneyPDF(t.AnnualGross)}, widths, false)
	r.drawTableRow([]string{"Gross monthly pay", FormatMoneyPDF(t.MonthlyGross)}, widths, false)
	r.drawTableRow([]string{"PAYE (monthly)", FormatMoneyPDF(t.PAYE)}, widths, false)
	r.drawTableRow([]string{fmt.Sprintf("Student loan %s (monthly)", t.Plan), FormatMoneyPDF(t.StudentLoan)}, widths, false)
	r.drawTableRow([]string{"Employee NI (monthly)", FormatMoneyPDF(t.EmployeeNI)}, widths, false)
	r.drawTableRow([]string{"Employer NI (monthly)", FormatMoneyPDF(t.EmployerNI)}, widths, false)
	r.drawTableRow([]string{"Net monthly pay", FormatMoneyPDF(t.NetMonthlyPay)}, widths, true)
	r.drawTableRow([]string{"Total tax (monthly)", FormatMoneyPDF(t.MonthlyTotalTax)}, widths, true)
}

func (r *PDFTicketReport) addSummaryPage() {
	r.pdf.AddPage()
	r.drawSectionHeader("Payroll Summary")

	widths := []float64{50, 26, 26, 26, 26, 26}
	r.drawTableHeader([]string{"Employee", "Gross", "PAYE", "Loan", "Emp. NI", "Net"}, widths)

	var gross, paye, sl, ni, net decimal.Decimal
	for i, et := range r.tickets {
		t := et.Ticket
		r.drawTableRow([]string{
			pdfText(truncateString(ticketName(i+1, et), 28)),
			FormatMoneyPDF(t.MonthlyGross),
			FormatMoneyPDF(t.PAYE),
			FormatMoneyPDF(t.StudentLoan),
			FormatMoneyPDF(t.EmployeeNI),
			FormatMoneyPDF(t.NetMonthlyPay),
		}, widths, false)
		gross = gross.Add(t.MonthlyGross)
		paye = paye.Add(t.PAYE)
		sl = sl.Add(t.StudentLoan)
		ni = ni.Add(t.EmployeeNI)
		net = net.Add(t.NetMonthlyPay)
	}
	r.drawTableRow([]string{"Total", FormatMoneyPDF(gross), FormatMoneyPDF(paye),
		FormatMoneyPDF(sl), FormatMoneyPDF(ni), FormatMoneyPDF(net)}, widths, true)
}

func (r *PDFTicketReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFTicketReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFTicketReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

// ticketName falls back to a numbered label for unnamed employees
func ticketName(n int, et EmployeeTicket) string {
	if et.Name != "" {
		return et.Name
	}
	return fmt.Sprintf("Employee %d", n)
}

// truncateString shortens s to maxLen characters, counting runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
