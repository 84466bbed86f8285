package taxation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed taxyears.yaml
var defaultTaxYearsYAML []byte

// yamlCatalog mirrors the layout of taxyears.yaml.
type yamlCatalog struct {
	TaxYears []yamlTaxYear `yaml:"tax_years"`
}

type yamlTaxYear struct {
	TaxYear string `yaml:"tax_year"`

	PersonalAllowanceReductionPoint *float64 `yaml:"personal_allowance_reduction_point"`
	DefaultPersonalAllowance        *float64 `yaml:"default_personal_allowance"`
	BasicRateThreshold              *float64 `yaml:"basic_rate_threshold"`
	HigherRateThreshold             *float64 `yaml:"higher_rate_threshold"`
	AdditionalRateThreshold         *float64 `yaml:"additional_rate_threshold"`
	BasicTaxRate                    *float64 `yaml:"basic_tax_rate"`
	HigherTaxRate                   *float64 `yaml:"higher_tax_rate"`
	AdditionalTaxRate               *float64 `yaml:"additional_tax_rate"`

	LowerEarningsLimit                   *float64 `yaml:"lower_earnings_limit"`
	PrimaryThreshold                     *float64 `yaml:"primary_threshold"`
	SecondaryThreshold                   *float64 `yaml:"secondary_threshold"`
	UpperSecondaryThresholdU21           *float64 `yaml:"upper_secondary_threshold_u21"`
	ApprenticeUpperSecondaryThresholdU25 *float64 `yaml:"apprentice_upper_secondary_threshold_u25"`
	UpperEarningsLimit                   *float64 `yaml:"upper_earnings_limit"`

	LELToPT     *float64 `yaml:"lel_to_pt"`
	PTToUEL     *float64 `yaml:"pt_to_uel"`
	UELAndAbove *float64 `yaml:"uel_and_above"`

	EmployerLELToPT     *float64 `yaml:"employer_lel_to_pt"`
	EmployerPTToUEL     *float64 `yaml:"employer_pt_to_uel"`
	EmployerUELAndAbove *float64 `yaml:"employer_uel_and_above"`

	AnnualRepaymentThresholdPlan1 *float64 `yaml:"annual_repayment_threshold_plan_1"`
	AnnualRepaymentThresholdPlan2 *float64 `yaml:"annual_repayment_threshold_plan_2"`
	SLInterestRate                *float64 `yaml:"sl_interest_rate"`
}

// toTaxYear converts the record at path, e.g. tax_years[2]. Every money and
// rate key must be present; a missing key would otherwise read as zero.
func (y yamlTaxYear) toTaxYear(path string) (TaxYear, error) {
	const op = "taxation.parse_catalog"

	ty := TaxYear{Year: strings.TrimSpace(y.TaxYear)}
	fields := []struct {
		key string
		src *float64
		dst *decimal.Decimal
	}{
		{"personal_allowance_reduction_point", y.PersonalAllowanceReductionPoint, &ty.PersonalAllowanceReductionPoint},
		{"default_personal_allowance", y.DefaultPersonalAllowance, &ty.DefaultPersonalAllowance},
		{"basic_rate_threshold", y.BasicRateThreshold, &ty.BasicRateThreshold},
		{"higher_rate_threshold", y.HigherRateThreshold, &ty.HigherRateThreshold},
		{"additional_rate_threshold", y.AdditionalRateThreshold, &ty.AdditionalRateThreshold},
		{"basic_tax_rate", y.BasicTaxRate, &ty.BasicTaxRate},
		{"higher_tax_rate", y.HigherTaxRate, &ty.HigherTaxRate},
		{"additional_tax_rate", y.AdditionalTaxRate, &ty.AdditionalTaxRate},

		{"lower_earnings_limit", y.LowerEarningsLimit, &ty.LowerEarningsLimit},
		{"primary_threshold", y.PrimaryThreshold, &ty.PrimaryThreshold},
		{"secondary_threshold", y.SecondaryThreshold, &ty.SecondaryThreshold},
		{"upper_secondary_threshold_u21", y.UpperSecondaryThresholdU21, &ty.UpperSecondaryThresholdU21},
		{"apprentice_upper_secondary_threshold_u25", y.ApprenticeUpperSecondaryThresholdU25, &ty.ApprenticeUpperSecondaryThresholdU25},
		{"upper_earnings_limit", y.UpperEarningsLimit, &ty.UpperEarningsLimit},

		{"lel_to_pt", y.LELToPT, &ty.LELToPT},
		{"pt_to_uel", y.PTToUEL, &ty.PTToUEL},
		{"uel_and_above", y.UELAndAbove, &ty.UELAndAbove},

		{"employer_lel_to_pt", y.EmployerLELToPT, &ty.EmployerLELToST},
		{"employer_pt_to_uel", y.EmployerPTToUEL, &ty.EmployerSTToUEL},
		{"employer_uel_and_above", y.EmployerUELAndAbove, &ty.EmployerUELAndAbove},

		{"annual_repayment_threshold_plan_1", y.AnnualRepaymentThresholdPlan1, &ty.AnnualRepaymentThresholdPlan1},
		{"annual_repayment_threshold_plan_2", y.AnnualRepaymentThresholdPlan2, &ty.AnnualRepaymentThresholdPlan2},
		{"sl_interest_rate", y.SLInterestRate, &ty.StudentLoanRate},
	}
	for _, f := range fields {
		if f.src == nil {
			return TaxYear{}, configurationError(op, ty.Year,
				fmt.Sprintf("%s.%s is required", path, f.key), ErrInvalidTaxTable)
		}
		*f.dst = decimal.NewFromFloat(*f.src)
	}
	return ty, nil
}

// Catalog is a fixed set of tax years keyed by identifier. It is never
// modified after construction.
type Catalog struct {
	years map[string]TaxYear
	order []string
}

// NewCatalog builds a catalog, rejecting invalid records and duplicate years.
func NewCatalog(years ...TaxYear) (*Catalog, error) {
	const op = "taxation.new_catalog"

	c := &Catalog{years: make(map[string]TaxYear, len(years))}
	for _, ty := range years {
		if err := ty.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.years[ty.Year]; dup {
			return nil, configurationError(op, ty.Year, "tax year listed more than once", ErrInvalidTaxTable)
		}
		c.years[ty.Year] = ty
		c.order = append(c.order, ty.Year)
	}
	sort.Strings(c.order)
	return c, nil
}

// ParseCatalog reads tax years from YAML in the taxyears.yaml layout.
func ParseCatalog(data []byte) (*Catalog, error) {
	const op = "taxation.parse_catalog"

	// Unknown keys are rejected so a misspelt threshold is not read as zero
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var dto yamlCatalog
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return nil, configurationError(op, "", err.Error(), ErrInvalidTaxTable)
	}
	if len(dto.TaxYears) == 0 {
		return nil, configurationError(op, "", "no tax years defined", ErrInvalidTaxTable)
	}

	years := make([]TaxYear, 0, len(dto.TaxYears))
	for i, y := range dto.TaxYears {
		ty, err := y.toTaxYear(fmt.Sprintf("tax_years[%d]", i))
		if err != nil {
			return nil, err
		}
		years = append(years, ty)
	}
	return NewCatalog(years...)
}

// LoadCatalogFile reads a YAML tax table file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configurationError("taxation.load_catalog", path, "", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the bundled tax years (2016-2017 to 2018-2019).
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(defaultTaxYearsYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// Resolve returns the record for year. Unknown years are a configuration
// error; there is no fallback.
func (c *Catalog) Resolve(year string) (TaxYear, error) {
	const op = "taxation.resolve"

	if c != nil {
		if ty, ok := c.years[year]; ok {
			return ty, nil
		}
	}
	return TaxYear{}, configurationError(op, year,
		"supported tax years are "+strings.Join(c.Years(), ", "), ErrUnknownTaxYear)
}

// Years lists the identifiers in the catalog in ascending order.
func (c *Catalog) Years() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Merge returns a new catalog holding the years of both. A year present in
// both is an error.
func (c *Catalog) Merge(other *Catalog) (*Catalog, error) {
	var years []TaxYear
	for _, src := range []*Catalog{c, other} {
		if src == nil {
			continue
		}
		for _, y := range src.order {
			years = append(years, src.years[y])
		}
	}
	return NewCatalog(years...)
}

// Resolve looks year up in the default catalog.
func Resolve(year string) (TaxYear, error) {
	c, err := DefaultCatalog()
	if err != nil {
		return TaxYear{}, err
	}
	return c.Resolve(year)
}
