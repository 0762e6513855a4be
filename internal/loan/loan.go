// Package loan computes fixed-payment amortization schedules for parcel
// financing. The computation is pure: no I/O, no side effects.
package loan

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/vportella/landfolio/internal/money"
)

// DownPaymentMode selects how Terms.DownPayment is interpreted.
type DownPaymentMode string

const (
	// ModePercent treats the down payment as a percentage of the sale price.
	ModePercent DownPaymentMode = "percent"
	// ModeAbsolute treats the down payment as a currency amount.
	ModeAbsolute DownPaymentMode = "absolute"
)

// ErrInvalidTerms is returned for terms that cannot produce a schedule.
var ErrInvalidTerms = errors.New("invalid financing terms")

// Terms are the inputs to an amortization computation.
type Terms struct {
	SalePrice         decimal.Decimal
	DownPayment       decimal.Decimal
	Mode              DownPaymentMode
	TermMonths        int
	AnnualRatePercent decimal.Decimal
}

// Schedule is the result of an amortization computation. All currency
// amounts are rounded to cents.
type Schedule struct {
	DownPayment       decimal.Decimal
	FinancedAmount    decimal.Decimal
	Payment           decimal.Decimal
	TotalInterest     decimal.Decimal
	AnnualRatePercent decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Amortize computes the fixed monthly payment that repays the financed
// amount over TermMonths at the given annual rate.
//
// A zero rate is a valid input: the closed-form payment formula degenerates
// to 0/0 there, so it is special-cased to a straight division. For any
// non-negative rate, Payment*TermMonths >= FinancedAmount.
func Amortize(t Terms) (Schedule, error) {
	if err := t.validate(); err != nil {
		return Schedule{}, err
	}

	down := t.DownPayment
	if t.Mode == ModePercent {
		down = t.SalePrice.Mul(t.DownPayment).Div(oneHundred)
	}
	down = money.Cents(down)
	financed := t.SalePrice.Sub(down)

	months := decimal.NewFromInt(int64(t.TermMonths))

	var payment decimal.Decimal
	if t.AnnualRatePercent.IsZero() {
		payment = money.Cents(financed.Div(months))
	} else {
		// The compounding term is computed in float64; the error is far
		// below the cent rounding applied to the result.
		j := t.AnnualRatePercent.InexactFloat64() / 100 / 12
		pow := math.Pow(1+j, float64(t.TermMonths))
		pmt := financed.InexactFloat64() * (j * pow) / (pow - 1)
		payment = money.Cents(decimal.NewFromFloat(pmt))
	}

	total := payment.Mul(months).Sub(financed)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Schedule{
		DownPayment:       down,
		FinancedAmount:    financed,
		Payment:           payment,
		TotalInterest:     money.Cents(total),
		AnnualRatePercent: t.AnnualRatePercent,
	}, nil
}

func (t Terms) validate() error {
	if !t.SalePrice.IsPositive() {
		return fmt.Errorf("%w: sale price must be positive, got %s", ErrInvalidTerms, t.SalePrice)
	}
	if t.TermMonths <= 0 {
		return fmt.Errorf("%w: term must be at least one month, got %d", ErrInvalidTerms, t.TermMonths)
	}
	if t.AnnualRatePercent.IsNegative() {
		return fmt.Errorf("%w: annual rate must be non-negative, got %s", ErrInvalidTerms, t.AnnualRatePercent)
	}

	switch t.Mode {
	case ModePercent:
		if t.DownPayment.IsNegative() || t.DownPayment.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: down payment percentage must be within [0,100], got %s", ErrInvalidTerms, t.DownPayment)
		}
	case ModeAbsolute:
		if t.DownPayment.IsNegative() {
			return fmt.Errorf("%w: down payment must be non-negative, got %s", ErrInvalidTerms, t.DownPayment)
		}
		if t.DownPayment.GreaterThan(t.SalePrice) {
			return fmt.Errorf("%w: down payment exceeds sale price", ErrInvalidTerms)
		}
	default:
		return fmt.Errorf("%w: unknown down payment mode %q", ErrInvalidTerms, t.Mode)
	}
	return nil
}
