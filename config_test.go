package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadDefaultConfig(t *testing.T) {
	config, err := LoadDefaultConfig()
	if err != nil {
		t.Fatalf("LoadDefaultConfig: %v", err)
	}

	if config.TaxYear != "2018-2019" {
		t.Errorf("expected demonstration tax year 2018-2019, got %q", config.TaxYear)
	}
	if len(config.Employees) != 11 {
		t.Fatalf("expected 11 employees, got %d", len(config.Employees))
	}
	if config.Employees[0].Name != "Tom Smith" || config.Employees[0].Salary != 50000 {
		t.Errorf("unexpected first employee: %+v", config.Employees[0])
	}

	plans := map[int]bool{}
	for _, e := range config.Employees {
		plans[e.StudentLoanPlan] = true
	}
	for _, p := range []int{0, 1, 2} {
		if !plans[p] {
			t.Errorf("demonstration run should cover student loan plan %d", p)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "payroll.yaml", `
tax_year: " 2017-2018 "
employees:
  - name: Ann
    salary: 30000
    student_loan_plan: 1
  - salary: 45000.50
    student_loan_plan: 0
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.TaxYear != "2017-2018" {
		t.Errorf("tax year should be trimmed, got %q", config.TaxYear)
	}
	if len(config.Employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(config.Employees))
	}
	if config.Employees[1].Salary != 45000.50 || config.Employees[1].Name != "" {
		t.Errorf("unexpected second employee: %+v", config.Employees[1])
	}
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bad plan",
			content: "employees:\n  - salary: 30000\n    student_loan_plan: 3\n",
			want:    "employees[0].student_loan_plan",
		},
		{
			name:    "salary not a number",
			content: "employees:\n  - salary: lots\n",
			want:    "payroll.yaml",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "payroll.yaml", tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error to mention %q, got %v", tc.want, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	original := &Config{
		TaxYear: "2016-2017",
		Employees: []EmployeeConfig{
			{Name: "Ann", Salary: 23000, StudentLoanPlan: 1},
			{Salary: 52000, StudentLoanPlan: 2},
		},
	}

	path := filepath.Join(t.TempDir(), "payroll.yaml")
	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# PAYE Calculator payroll run") {
		t.Errorf("saved config should start with the header comment")
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.TaxYear != original.TaxYear || len(loaded.Employees) != 2 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	for i := range original.Employees {
		if loaded.Employees[i] != original.Employees[i] {
			t.Errorf("employee %d: got %+v, want %+v", i, loaded.Employees[i], original.Employees[i])
		}
	}
}

const extraTaxYear = `
tax_years:
  - tax_year: "2019-2020"
    personal_allowance_reduction_point: 100000
    default_personal_allowance: 12500
    basic_rate_threshold: 12500
    higher_rate_threshold: 50001
    additional_rate_threshold: 150000
    basic_tax_rate: 0.2
    higher_tax_rate: 0.4
    additional_tax_rate: 0.45
    lower_earnings_limit: 6136
    primary_threshold: 8632
    secondary_threshold: 8632
    upper_secondary_threshold_u21: 50000
    apprentice_upper_secondary_threshold_u25: 50000
    upper_earnings_limit: 50000
    lel_to_pt: 0
    pt_to_uel: 0.12
    uel_and_above: 0.02
    employer_lel_to_pt: 0
    employer_pt_to_uel: 0.138
    employer_uel_and_above: 0.138
    annual_repayment_threshold_plan_1: 18935
    annual_repayment_threshold_plan_2: 25725
    sl_interest_rate: 0.09
`

func TestLoadCatalog(t *testing.T) {
	base, err := loadCatalog("")
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if got := len(base.Years()); got != 3 {
		t.Errorf("expected 3 bundled years, got %d", got)
	}

	merged, err := loadCatalog(writeFile(t, "tables.yaml", extraTaxYear))
	if err != nil {
		t.Fatalf("loadCatalog with tables: %v", err)
	}
	years := merged.Years()
	if len(years) != 4 || years[3] != "2019-2020" {
		t.Errorf("expected 2019-2020 appended, got %v", years)
	}

	if _, err := loadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing tables file")
	}
}
