package models

import "github.com/shopspring/decimal"

// Simulation is one registered financing simulation, appended to its own
// tab for later review by the team.
type Simulation struct {
	Number            string
	DownPayment       decimal.Decimal
	SaleValue         decimal.Decimal
	TotalInterest     decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
	Payment           decimal.Decimal
}
