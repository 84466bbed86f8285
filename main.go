package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"goPayeCalculator/taxation"
)

// cliOptions holds the parsed command line
type cliOptions struct {
	configFile string
	taxYear    string
	salary     string
	plan       int
	annual     bool
	tablesFile string
	showRates  bool
	pdfFile    string
	htmlFile   string
	xlsxFile   string
	initFile   string
	verbose    bool
	version    bool

	interactive bool
	input       io.Reader
}

// payslipRequest is one salary waiting to be turned into a ticket
type payslipRequest struct {
	Name   string
	Salary decimal.Decimal
	Plan   taxation.StudentLoanPlan
}

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `UK PAYE Calculator

Works out the monthly tax ticket for a gross annual salary: income tax
(PAYE), employee and employer National Insurance, student loan repayment
and net monthly pay, using the published thresholds and rates of a UK tax
year.

TAX YEARS:
  2016-2017 (default when no year is given), 2017-2018, 2018-2019.
  Further years can be added with a tax tables file (-tables), using the
  same keys as the bundled table.

MODES:
  DEMONSTRATION (default)
    Prints tickets for the payroll run embedded in the binary.

  SINGLE SALARY (-salary)
    Prints one ticket for the salary given. Use -plan for a student loan
    and -annual for annual rather than monthly figures.

  PAYROLL RUN (-config)
    Prints one ticket per employee listed in a YAML file. Write a starting
    file with -init.

  INTERACTIVE (-interactive)
    Asks for the tax year and each employee at the console, optionally
    saving the run as a YAML file for -config.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                                  Demonstration payroll run
  %s -salary 52000 -plan 2            One ticket, Plan 2 student loan
  %s -salary 52000 -annual            Annual deductions
  %s -year 2018-2019 -rates           Show thresholds and rates
  %s -init payroll.yaml               Write an editable payroll run
  %s -config payroll.yaml -pdf t.pdf  Payroll run with PDF tickets
  %s -interactive                     Enter employees at prompts
  %s -xlsx payroll.xlsx               Demonstration run as a workbook

Configuration:
  tax_year:    tax year identifier, e.g. 2017-2018
  tax_tables:  optional YAML file with extra tax years
  employees:   list of name, salary and student_loan_plan (0, 1 or 2)
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	var opts cliOptions
	flag.StringVar(&opts.configFile, "config", "", "Path to YAML payroll run (default: embedded demonstration run)")
	flag.StringVar(&opts.taxYear, "year", "", "Tax year, e.g. 2017-2018 (overrides tax_year in config)")
	flag.StringVar(&opts.salary, "salary", "", "Gross annual salary for a single ticket, e.g. 52000")
	flag.IntVar(&opts.plan, "plan", 0, "Student loan plan for -salary: 0 = none, 1 = Plan 1, 2 = Plan 2")
	flag.BoolVar(&opts.annual, "annual", false, "Show annual deductions instead of the monthly ticket")
	flag.StringVar(&opts.tablesFile, "tables", "", "YAML file with extra tax years (overrides tax_tables in config)")
	flag.BoolVar(&opts.showRates, "rates", false, "Print the thresholds and rates of the tax year")
	flag.StringVar(&opts.pdfFile, "pdf", "", "Write tickets to a PDF file")
	flag.StringVar(&opts.htmlFile, "html", "", "Write tickets to an HTML file")
	flag.StringVar(&opts.xlsxFile, "xlsx", "", "Write tickets and the rate table to an Excel workbook")
	flag.StringVar(&opts.initFile, "init", "", "Write the demonstration payroll run to a file and exit")
	flag.BoolVar(&opts.interactive, "interactive", false, "Enter the payroll run at prompts")
	flag.BoolVar(&opts.verbose, "verbose", false, "Log debug output to stderr")
	flag.BoolVar(&opts.version, "version", false, "Print the version and exit")
	flag.Parse()
	opts.input = os.Stdin

	logger, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(opts, os.Stdout, os.Stderr, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

// run executes one invocation of the program. Errors that stop the whole
// run are returned; a bad employee in a payroll run is reported on stderr
// and skipped.
func run(opts cliOptions, stdout, stderr io.Writer, logger *zap.Logger) error {
	if opts.version {
		fmt.Fprintf(stdout, "goPayeCalculator version %s\n", taxation.Version)
		return nil
	}

	if opts.initFile != "" {
		config, err := LoadDefaultConfig()
		if err != nil {
			return err
		}
		if err := SaveConfig(config, opts.initFile); err != nil {
			return fmt.Errorf("writing %s: %w", opts.initFile, err)
		}
		fmt.Fprintf(stdout, "Payroll run written to %s\n", opts.initFile)
		return nil
	}

	single := opts.salary != ""
	requests, config, err := loadRequests(opts, stdout, stderr, logger)
	if err != nil {
		return err
	}

	taxYear := opts.taxYear
	if taxYear == "" {
		taxYear = config.TaxYear
	}
	tablesFile := opts.tablesFile
	if tablesFile == "" {
		tablesFile = config.TaxTables
	}

	catalog, err := loadCatalog(tablesFile)
	if err != nil {
		return err
	}
	calc, err := taxation.NewCalculator(taxYear, taxation.WithCatalog(catalog), taxation.WithLogger(logger))
	if err != nil {
		return err
	}
	year := calc.TaxYear().Year
	logger.Debug("tax year resolved", zap.String("tax_year", year), zap.Int("requests", len(requests)))

	if opts.showRates {
		PrintRates(stdout, calc.TaxYear())
		if !single && !opts.interactive && opts.configFile == "" {
			return nil
		}
	}

	var tickets []EmployeeTicket
	for _, req := range requests {
		ticket, err := calc.Ticket(req.Salary, req.Plan)
		if err != nil {
			if single {
				return err
			}
			fmt.Fprintf(stderr, "Skipping %s: %v\n", req.Name, err)
			continue
		}

		et := EmployeeTicket{Name: req.Name, Ticket: ticket}
		if opts.annual {
			if err := PrintAnnualSummary(stdout, calc, req.Salary, req.Plan); err != nil {
				return err
			}
		} else {
			PrintTicket(stdout, et)
		}
		tickets = append(tickets, et)
	}

	if len(tickets) == 0 {
		return fmt.Errorf("no tickets produced")
	}

	if opts.pdfFile != "" {
		data, err := GenerateTicketsPDF(year, tickets)
		if err != nil {
			return fmt.Errorf("generating PDF: %w", err)
		}
		if err := os.WriteFile(opts.pdfFile, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.pdfFile, err)
		}
		fmt.Fprintf(stdout, "PDF tickets written to %s\n", opts.pdfFile)
	}
	if opts.htmlFile != "" {
		if err := GenerateTicketsHTMLFile(opts.htmlFile, year, tickets); err != nil {
			return fmt.Errorf("writing %s: %w", opts.htmlFile, err)
		}
		fmt.Fprintf(stdout, "HTML tickets written to %s\n", opts.htmlFile)
	}
	if opts.xlsxFile != "" {
		data, err := GenerateTicketsXLSX(calc.TaxYear(), tickets)
		if err != nil {
			return fmt.Errorf("generating workbook: %w", err)
		}
		if err := os.WriteFile(opts.xlsxFile, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.xlsxFile, err)
		}
		fmt.Fprintf(stdout, "Excel tickets written to %s\n", opts.xlsxFile)
	}
	return nil
}

// loadRequests works out which salaries to ticket. -salary wins over
// -interactive, then -config, then the embedded demonstration run.
func loadRequests(opts cliOptions, stdout, stderr io.Writer, logger *zap.Logger) ([]payslipRequest, *Config, error) {
	if opts.salary != "" {
		salary, err := taxation.ParseSalary(opts.salary)
		if err != nil {
			return nil, nil, err
		}
		req := payslipRequest{Salary: salary, Plan: taxation.StudentLoanPlan(opts.plan)}
		config := &Config{}
		if opts.configFile != "" {
			// Only the tax year and tables are taken from the file
			if config, err = LoadConfig(opts.configFile); err != nil {
				return nil, nil, err
			}
		}
		return []payslipRequest{req}, config, nil
	}

	var config *Config
	var err error
	switch {
	case opts.interactive:
		config, err = buildInteractiveConfig(opts, stdout)
	case opts.configFile != "":
		config, err = LoadConfig(opts.configFile)
	default:
		config, err = LoadDefaultConfig()
	}
	if err != nil {
		return nil, nil, err
	}

	requests := make([]payslipRequest, 0, len(config.Employees))
	for i, e := range config.Employees {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("Employee %d", i+1)
		}
		salary, err := taxation.SalaryFromFloat(e.Salary)
		if err != nil {
			logger.Debug("skipping employee", zap.String("employee", name), zap.Error(err))
			fmt.Fprintf(stderr, "Skipping %s: %v\n", name, err)
			continue
		}
		requests = append(requests, payslipRequest{
			Name:   name,
			Salary: salary,
			Plan:   taxation.StudentLoanPlan(e.StudentLoanPlan),
		})
	}
	return requests, config, nil
}

func buildInteractiveConfig(opts cliOptions, stdout io.Writer) (*Config, error) {
	catalog, err := loadCatalog(opts.tablesFile)
	if err != nil {
		return nil, err
	}
	input := opts.input
	if input == nil {
		input = os.Stdin
	}
	return NewInteractiveConfigBuilder(input, stdout, catalog.Years()).Build()
}
