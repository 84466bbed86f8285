package taxation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	two           = decimal.NewFromInt(2)
)

// Calculator computes deductions for one tax year. It is immutable once
// built and safe for concurrent use.
type Calculator struct {
	taxYear TaxYear
	log     *zap.Logger
}

type options struct {
	catalog *Catalog
	log     *zap.Logger
}

// Option configures NewCalculator.
type Option func(*options)

// WithCatalog resolves the tax year from c instead of the bundled tables.
func WithCatalog(c *Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithLogger sets the logger used to report rejected input.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// NewCalculator builds a calculator for taxYear, e.g. "2017-2018". An empty
// taxYear means DefaultTaxYear. An unknown year returns a nil calculator and
// a KindConfiguration error.
func NewCalculator(taxYear string, opts ...Option) (*Calculator, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if taxYear == "" {
		taxYear = DefaultTaxYear
	}

	catalog := o.catalog
	if catalog == nil {
		var err error
		catalog, err = DefaultCatalog()
		if err != nil {
			return nil, err
		}
	}

	ty, err := catalog.Resolve(taxYear)
	if err != nil {
		o.log.Warn("tax year not found", zap.String("tax_year", taxYear), zap.Strings("supported", catalog.Years()))
		return nil, err
	}

	return &Calculator{
		taxYear: ty,
		log:     o.log.With(zap.String("tax_year", ty.Year)),
	}, nil
}

// TaxYear returns the rate table the calculator was built with.
func (c *Calculator) TaxYear() TaxYear {
	return c.taxYear
}

func (c *Calculator) checkSalary(op string, salary decimal.Decimal) error {
	if salary.IsNegative() {
		err := validationError(op, salary.String(), "the value given is less than zero", ErrInvalidSalary)
		c.log.Debug("rejected salary", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

// forPeriod rounds the annual total to pence, dividing by 12 first for
// monthly amounts.
func forPeriod(annual decimal.Decimal, period Period) decimal.Decimal {
	if period == Monthly {
		return annual.Div(monthsPerYear).Round(2)
	}
	return annual.Round(2)
}
