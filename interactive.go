package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"goPayeCalculator/taxation"
)

var errNoEmployees = errors.New("no employees entered")

// InteractiveConfigBuilder asks for a payroll run on the console
type InteractiveConfigBuilder struct {
	reader        *bufio.Reader
	out           io.Writer
	years         []string
	config        *Config
	defaultConfig *Config
}

// NewInteractiveConfigBuilder creates a builder offering the given tax years
func NewInteractiveConfigBuilder(in io.Reader, out io.Writer, years []string) *InteractiveConfigBuilder {
	builder := &InteractiveConfigBuilder{
		reader: bufio.NewReader(in),
		out:    out,
		years:  years,
		config: &Config{},
	}

	// Defaults come from the demonstration run when it loads
	defaultConfig, err := LoadDefaultConfig()
	if err == nil {
		builder.defaultConfig = defaultConfig
	}

	return builder
}

// readLine returns the next trimmed line. ok is false once input is exhausted.
func (b *InteractiveConfigBuilder) readLine() (line string, ok bool) {
	input, err := b.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if err != nil && input == "" {
		return "", false
	}
	return input, true
}

// promptString asks for a string with a default value
func (b *InteractiveConfigBuilder) promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(b.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(b.out, "%s: ", prompt)
	}
	input, ok := b.readLine()
	if !ok || input == "" {
		return defaultVal
	}
	return input
}

// promptTaxYear asks for one of the known tax years
func (b *InteractiveConfigBuilder) promptTaxYear(defaultVal string) string {
	for {
		input := b.promptString("Tax year ("+strings.Join(b.years, ", ")+")", defaultVal)
		if slices.Contains(b.years, input) {
			return input
		}
		fmt.Fprintf(b.out, "  ✗ Unknown tax year %q\n", input)
		if input == defaultVal {
			// Nothing better to offer once the default itself is unknown
			return defaultVal
		}
	}
}

// promptSalary asks for a gross annual salary such as "52000", "£52000"
// or "52k". ok is false when the user finishes with a blank line.
func (b *InteractiveConfigBuilder) promptSalary(prompt string) (salary decimal.Decimal, ok bool) {
	for {
		fmt.Fprintf(b.out, "%s: ", prompt)
		input, more := b.readLine()
		if !more || input == "" {
			return decimal.Zero, false
		}

		multiplier := decimal.NewFromInt(1)
		lower := strings.ToLower(input)
		if strings.HasSuffix(lower, "k") {
			multiplier = decimal.NewFromInt(1000)
			lower = strings.TrimSuffix(lower, "k")
		}
		lower = strings.TrimPrefix(lower, "£")

		amount, err := taxation.ParseSalary(lower)
		if err != nil {
			var te *taxation.Error
			if errors.As(err, &te) {
				fmt.Fprintf(b.out, "  ✗ %s >>%s<<. Enter as '52000', '£52000' or '52k'\n", te.Reason, input)
			} else {
				fmt.Fprintf(b.out, "  ✗ %v\n", err)
			}
			continue
		}
		return amount.Mul(multiplier), true
	}
}

// promptPlan asks for a student loan plan (0, 1 or 2)
func (b *InteractiveConfigBuilder) promptPlan(prompt string, defaultVal taxation.StudentLoanPlan) taxation.StudentLoanPlan {
	for {
		fmt.Fprintf(b.out, "%s [%d]: ", prompt, int(defaultVal))
		input, ok := b.readLine()
		if !ok || input == "" {
			return defaultVal
		}
		val, err := strconv.Atoi(input)
		if err != nil || !taxation.StudentLoanPlan(val).Valid() {
			fmt.Fprintf(b.out, "  ✗ The repayment plan value can only be 0, 1 or 2\n")
			continue
		}
		return taxation.StudentLoanPlan(val)
	}
}

// Build runs the prompts and returns the payroll run entered
func (b *InteractiveConfigBuilder) Build() (*Config, error) {
	fmt.Fprintln(b.out, "╔══════════════════════════════════════════════╗")
	fmt.Fprintln(b.out, "║           PAYROLL RUN SETUP                  ║")
	fmt.Fprintln(b.out, "╚══════════════════════════════════════════════╝")
	fmt.Fprintln(b.out, "Press Enter to accept the value in brackets.")
	fmt.Fprintln(b.out)

	defaultYear := taxation.DefaultTaxYear
	if b.defaultConfig != nil && b.defaultConfig.TaxYear != "" {
		defaultYear = b.defaultConfig.TaxYear
	}
	b.config.TaxYear = b.promptTaxYear(defaultYear)

	for n := 1; ; n++ {
		fmt.Fprintln(b.out)
		salary, ok := b.promptSalary(fmt.Sprintf("Gross annual salary for employee %d (blank to finish)", n))
		if !ok {
			break
		}
		name := b.promptString("Name", fmt.Sprintf("Employee %d", n))
		plan := b.promptPlan("Student loan plan (0 = none, 1, 2)", taxation.NoPlan)

		b.config.Employees = append(b.config.Employees, EmployeeConfig{
			Name:            name,
			Salary:          salary.InexactFloat64(),
			StudentLoanPlan: int(plan),
		})
		fmt.Fprintf(b.out, "  ✓ %s on %s added\n", name, FormatMoney(salary))
	}

	if len(b.config.Employees) == 0 {
		return nil, errNoEmployees
	}

	fmt.Fprintln(b.out)
	if filename := b.promptString("Save payroll run to file (blank to skip)", ""); filename != "" {
		if err := b.SaveConfig(filename); err != nil {
			return nil, fmt.Errorf("writing %s: %w", filename, err)
		}
		fmt.Fprintf(b.out, "  ✓ Saved to %s\n", filename)
	}
	fmt.Fprintln(b.out)

	return b.config, nil
}

// SaveConfig writes the payroll run built so far
func (b *InteractiveConfigBuilder) SaveConfig(filename string) error {
	return SaveConfig(b.config, filename)
}
