package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"goPayeCalculator/taxation"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// EmployeeConfig is one salary to produce a tax ticket for
type EmployeeConfig struct {
	Name            string  `yaml:"name,omitempty" json:"name,omitempty"`
	Salary          float64 `yaml:"salary" json:"salary"`                       // Gross annual salary (£)
	StudentLoanPlan int     `yaml:"student_loan_plan" json:"student_loan_plan"` // 0 = none, 1 = Plan 1, 2 = Plan 2
}

// Config holds a payroll run
type Config struct {
	// TaxYear selects the rate table, e.g. "2017-2018". Empty means the
	// calculator default (2016-2017).
	TaxYear string `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
	// TaxTables is an optional YAML file of extra tax years
	TaxTables string           `yaml:"tax_tables,omitempty" json:"tax_tables,omitempty"`
	Employees []EmployeeConfig `yaml:"employees" json:"employees"`
}

// LoadConfig loads a payroll run from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return parseConfig(data, filename)
}

// LoadDefaultConfig loads the demonstration run embedded in the binary
func LoadDefaultConfig() (*Config, error) {
	return parseConfig([]byte(defaultConfigYAML), "default-config.yaml")
}

func parseConfig(data []byte, source string) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	config.TaxYear = strings.TrimSpace(config.TaxYear)

	for i, e := range config.Employees {
		if !taxation.StudentLoanPlan(e.StudentLoanPlan).Valid() {
			return nil, fmt.Errorf("%s: employees[%d].student_loan_plan: the repayment plan value can only be 0, 1 or 2, got %d",
				source, i, e.StudentLoanPlan)
		}
	}
	return &config, nil
}

// SaveConfig saves a payroll run to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# PAYE Calculator payroll run
# Generated by goPayeCalculator - feel free to edit manually
#
#   tax_year:           2016-2017, 2017-2018 or 2018-2019 (blank = 2016-2017)
#   tax_tables:         optional YAML file with extra tax years
#   employees:          one entry per ticket
#     salary:             gross annual salary in GBP
#     student_loan_plan:  0 = none, 1 = Plan 1, 2 = Plan 2
#
#   ./goPayeCalculator -config payroll.yaml
#   ./goPayeCalculator -config payroll.yaml -pdf tickets.pdf -html tickets.html

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// loadCatalog returns the bundled tax years plus any from tablesFile
func loadCatalog(tablesFile string) (*taxation.Catalog, error) {
	base, err := taxation.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if tablesFile == "" {
		return base, nil
	}
	extra, err := taxation.LoadCatalogFile(tablesFile)
	if err != nil {
		return nil, err
	}
	return base.Merge(extra)
}
