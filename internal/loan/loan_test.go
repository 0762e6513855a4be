package loan

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAmortizeReferenceScenario(t *testing.T) {
	// 100k sale, 30% down, 36 months at 6% nominal annual.
	sched, err := Amortize(Terms{
		SalePrice:         dec("100000"),
		DownPayment:       dec("30"),
		Mode:              ModePercent,
		TermMonths:        36,
		AnnualRatePercent: dec("6"),
	})
	require.NoError(t, err)

	assert.True(t, sched.DownPayment.Equal(dec("30000")), "down payment = %s", sched.DownPayment)
	assert.True(t, sched.FinancedAmount.Equal(dec("70000")), "financed = %s", sched.FinancedAmount)

	// PMT(0.005, 36, 70000) = 2129.5356..., rounded to cents.
	assert.Equal(t, "2129.54", sched.Payment.StringFixed(2))
	assert.Equal(t, "6663.44", sched.TotalInterest.StringFixed(2))
	assert.True(t, sched.AnnualRatePercent.Equal(dec("6")))
}

func TestAmortizeZeroRate(t *testing.T) {
	sched, err := Amortize(Terms{
		SalePrice:         dec("36000"),
		DownPayment:       dec("0"),
		Mode:              ModeAbsolute,
		TermMonths:        36,
		AnnualRatePercent: decimal.Zero,
	})
	require.NoError(t, err)

	// Exactly financed/term, no NaN and no interest.
	assert.Equal(t, "1000.00", sched.Payment.StringFixed(2))
	assert.True(t, sched.TotalInterest.IsZero(), "interest = %s", sched.TotalInterest)
}

func TestAmortizeAbsoluteDownPayment(t *testing.T) {
	sched, err := Amortize(Terms{
		SalePrice:         dec("50000"),
		DownPayment:       dec("12500"),
		Mode:              ModeAbsolute,
		TermMonths:        24,
		AnnualRatePercent: dec("12"),
	})
	require.NoError(t, err)
	assert.True(t, sched.FinancedAmount.Equal(dec("37500")))
	assert.True(t, sched.Payment.IsPositive())
}

func TestAmortizeInterestNeverNegative(t *testing.T) {
	cases := []Terms{
		{SalePrice: dec("100000"), DownPayment: dec("0"), Mode: ModePercent, TermMonths: 1, AnnualRatePercent: decimal.Zero},
		{SalePrice: dec("100000"), DownPayment: dec("50"), Mode: ModePercent, TermMonths: 12, AnnualRatePercent: dec("0.5")},
		{SalePrice: dec("1234.56"), DownPayment: dec("100"), Mode: ModePercent, TermMonths: 6, AnnualRatePercent: dec("9")},
		{SalePrice: dec("75000"), DownPayment: dec("30"), Mode: ModePercent, TermMonths: 120, AnnualRatePercent: dec("18")},
	}
	for i, terms := range cases {
		sched, err := Amortize(terms)
		require.NoError(t, err, "case %d", i)
		paid := sched.Payment.Mul(decimal.NewFromInt(int64(terms.TermMonths)))
		// Interest is non-negative: total paid covers the financed amount
		// up to the half-cent the final rounding can shave off.
		assert.True(t, paid.Sub(sched.FinancedAmount).GreaterThanOrEqual(dec("-0.005").Mul(decimal.NewFromInt(int64(terms.TermMonths)))),
			"case %d: paid %s < financed %s", i, paid, sched.FinancedAmount)
		assert.False(t, sched.TotalInterest.IsNegative(), "case %d", i)
		assert.False(t, sched.Payment.IsNegative(), "case %d", i)
	}
}

func TestAmortizeRejectsInvalidTerms(t *testing.T) {
	cases := []Terms{
		{SalePrice: decimal.Zero, DownPayment: dec("30"), Mode: ModePercent, TermMonths: 36},
		{SalePrice: dec("-1"), DownPayment: dec("30"), Mode: ModePercent, TermMonths: 36},
		{SalePrice: dec("100"), DownPayment: dec("30"), Mode: ModePercent, TermMonths: 0},
		{SalePrice: dec("100"), DownPayment: dec("30"), Mode: ModePercent, TermMonths: -3},
		{SalePrice: dec("100"), DownPayment: dec("101"), Mode: ModePercent, TermMonths: 12},
		{SalePrice: dec("100"), DownPayment: dec("-5"), Mode: ModePercent, TermMonths: 12},
		{SalePrice: dec("100"), DownPayment: dec("150"), Mode: ModeAbsolute, TermMonths: 12},
		{SalePrice: dec("100"), DownPayment: dec("10"), Mode: "weird", TermMonths: 12},
		{SalePrice: dec("100"), DownPayment: dec("10"), Mode: ModePercent, TermMonths: 12, AnnualRatePercent: dec("-1")},
	}
	for i, terms := range cases {
		if _, err := Amortize(terms); !errors.Is(err, ErrInvalidTerms) {
			t.Errorf("case %d: expected ErrInvalidTerms, got %v", i, err)
		}
	}
}
