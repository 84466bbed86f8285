package main

import (
	"html/template"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

var ticketsTemplate = template.Must(template.New("tickets").Funcs(template.FuncMap{
	"money": FormatMoney,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Tax Receipts: {{.TaxYear}}</title>
    <style>
        :root {
            --primary: #2563eb;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 960px; margin: 0 auto; }
        h1 { font-size: 1.75rem; margin-bottom: 0.5rem; color: var(--primary); }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle { color: var(--text-muted); margin-bottom: 1.5rem; }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
        th, td { padding: 0.4rem 0.75rem; border-bottom: 1px solid var(--border); }
        th { text-align: left; color: var(--text-muted); font-weight: 600; }
        td.amount, th.amount { text-align: right; font-variant-numeric: tabular-nums; }
        tr.total td { font-weight: 700; }
    </style>
</head>
<body>
<div class="container">
    <h1>Tax Receipts</h1>
    <p class="subtitle">Tax year {{.TaxYear}} &middot; generated {{.Generated}}</p>
{{range .Tickets}}
    <div class="card">
        <h2>{{.Name}}</h2>
        <table>
            <tr><td>Gross annual pay</td><td class="amount">{{money .Ticket.AnnualGross}}</td></tr>
            <tr><td>Gross monthly pay</td><td class="amount">{{money .Ticket.MonthlyGross}}</td></tr>
            <tr><td>PAYE (monthly)</td><td class="amount">{{money .Ticket.PAYE}}</td></tr>
            <tr><td>Student loan {{.Ticket.Plan}} (monthly)</td><td class="amount">{{money .Ticket.StudentLoan}}</td></tr>
            <tr><td>Employee NI (monthly)</td><td class="amount">{{money .Ticket.EmployeeNI}}</td></tr>
            <tr><td>Employer NI (monthly)</td><td class="amount">{{money .Ticket.EmployerNI}}</td></tr>
            <tr class="total"><td>Net monthly pay</td><td class="amount">{{money .Ticket.NetMonthlyPay}}</td></tr>
            <tr class="total"><td>Total tax (monthly)</td><td class="amount">{{money .Ticket.MonthlyTotalTax}}</td></tr>
        </table>
    </div>
{{end}}
{{if gt (len .Tickets) 1}}
    <div class="card">
        <h2>Payroll Summary</h2>
        <table>
            <tr><th>Employee</th><th class="amount">Gross</th><th class="amount">PAYE</th><th class="amount">Student loan</th><th class="amount">Employee NI</th><th class="amount">Employer NI</th><th class="amount">Net</th></tr>
{{range .Tickets}}
            <tr><td>{{.Name}}</td><td class="amount">{{money .Ticket.MonthlyGross}}</td><td class="amount">{{money .Ticket.PAYE}}</td><td class="amount">{{money .Ticket.StudentLoan}}</td><td class="amount">{{money .Ticket.EmployeeNI}}</td><td class="amount">{{money .Ticket.EmployerNI}}</td><td class="amount">{{money .Ticket.NetMonthlyPay}}</td></tr>
{{end}}
            <tr class="total"><td>Total</td><td class="amount">{{money .Total.MonthlyGross}}</td><td class="amount">{{money .Total.PAYE}}</td><td class="amount">{{money .Total.StudentLoan}}</td><td class="amount">{{money .Total.EmployeeNI}}</td><td class="amount">{{money .Total.EmployerNI}}</td><td class="amount">{{money .Total.NetMonthlyPay}}</td></tr>
        </table>
    </div>
{{end}}
</div>
</body>
</html>
`))

type payrollTotal struct {
	MonthlyGross  decimal.Decimal
	PAYE          decimal.Decimal
	StudentLoan   decimal.Decimal
	EmployeeNI    decimal.Decimal
	EmployerNI    decimal.Decimal
	NetMonthlyPay decimal.Decimal
}

type ticketsPage struct {
	TaxYear   string
	Generated string
	Tickets   []EmployeeTicket
	Total     payrollTotal
}

// WriteTicketsHTML renders tax tickets as a standalone HTML page
func WriteTicketsHTML(w io.Writer, taxYear string, tickets []EmployeeTicket) error {
	page := ticketsPage{
		TaxYear:   taxYear,
		Generated: time.Now().Format("2 January 2006"),
		Tickets:   make([]EmployeeTicket, len(tickets)),
	}
	for i, et := range tickets {
		et.Name = ticketName(i+1, et)
		page.Tickets[i] = et

		t := et.Ticket
		page.Total.MonthlyGross = page.Total.MonthlyGross.Add(t.MonthlyGross)
		page.Total.PAYE = page.Total.PAYE.Add(t.PAYE)
		page.Total.StudentLoan = page.Total.StudentLoan.Add(t.StudentLoan)
		page.Total.EmployeeNI = page.Total.EmployeeNI.Add(t.EmployeeNI)
		page.Total.EmployerNI = page.Total.EmployerNI.Add(t.EmployerNI)
		page.Total.NetMonthlyPay = page.Total.NetMonthlyPay.Add(t.NetMonthlyPay)
	}
	return ticketsTemplate.Execute(w, page)
}

// GenerateTicketsHTMLFile writes the HTML tickets page to filename
func GenerateTicketsHTMLFile(filename, taxYear string, tickets []EmployeeTicket) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteTicketsHTML(f, taxYear, tickets); err != nil {
		return err
	}
	return f.Close()
}
