// Package money parses and formats the currency strings stored in the
// worksheet. Values arrive in whatever shape the operator typed:
// "50000", "$50,000.00", " $1,234.5 ". Parsing is strict — a value that
// does not contain a number is an error, never a silent zero.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparseable is returned when a cell does not contain a usable amount.
var ErrUnparseable = errors.New("unparseable amount")

var stripPattern = regexp.MustCompile(`[^0-9.\-]`)

// Parse extracts a decimal amount from a worksheet cell, stripping
// currency symbols and thousands separators.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := stripPattern.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	return d, nil
}

// Cents rounds an amount to two decimal places.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
