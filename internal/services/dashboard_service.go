package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/money"
	"github.com/vportella/landfolio/internal/repository"
)

// Overview is the aggregate portfolio picture shown on the dashboard.
// Averages are omitted (empty) when no parcel contributes to them.
type Overview struct {
	TotalParcels   int    `json:"total_parcels"`
	Sold           int    `json:"sold"`
	Available      int    `json:"available"`
	Blocked        int    `json:"blocked"`
	AvgDaysToSale  string `json:"avg_days_to_sale,omitempty"`
	AvgDaysInStock string `json:"avg_days_in_stock,omitempty"`
	TotalProfit    string `json:"total_profit"`
	AvgROIPercent  string `json:"avg_roi_percent,omitempty"`
}

// DashboardService computes the portfolio overview.
type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
}

type dashboardService struct {
	parcels repository.ParcelRepository
	log     *logger.Logger
	now     func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(parcels repository.ParcelRepository, log *logger.Logger) DashboardService {
	return &dashboardService{
		parcels: parcels,
		log:     log,
		now:     time.Now,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*Overview, error) {
	parcels, err := s.parcels.List(ctx)
	if err != nil {
		s.log.Error("Failed to list parcels for dashboard", err, nil)
		return nil, fmt.Errorf("failed to list parcels: %w", err)
	}

	overview := &Overview{TotalParcels: len(parcels)}

	var (
		daysToSale   decimal.Decimal
		saleSamples  int
		daysInStock  decimal.Decimal
		stockSamples int
		totalProfit  decimal.Decimal
		totalROI     decimal.Decimal
		roiSamples   int
	)
	now := s.now()

	for _, p := range parcels {
		switch {
		case p.Blocked():
			overview.Blocked++
		case p.Sold():
			overview.Sold++
		default:
			overview.Available++
		}

		purchase, hasPurchase := parseSheetDate(p.PurchaseDate)
		if p.Sold() {
			if sale, ok := parseSheetDate(p.SaleDate); ok && hasPurchase && !sale.Before(purchase) {
				daysToSale = daysToSale.Add(decimal.NewFromFloat(sale.Sub(purchase).Hours() / 24))
				saleSamples++
			}
		} else if hasPurchase {
			daysInStock = daysInStock.Add(decimal.NewFromFloat(now.Sub(purchase).Hours() / 24))
			stockSamples++
		}

		if strings.TrimSpace(p.Profit) != "" {
			profit, err := money.Parse(p.Profit)
			if err != nil {
				// A malformed cell skips the parcel instead of poisoning
				// the total.
				s.log.Warn("Skipping unparseable profit cell", logger.Fields{
					"number": p.Number,
					"profit": p.Profit,
				})
			} else {
				totalProfit = totalProfit.Add(profit)
			}
		}

		if roi, ok := parseROI(p.ROI); ok {
			totalROI = totalROI.Add(roi)
			roiSamples++
		}
	}

	if saleSamples > 0 {
		overview.AvgDaysToSale = daysToSale.Div(decimal.NewFromInt(int64(saleSamples))).Round(1).String()
	}
	if stockSamples > 0 {
		overview.AvgDaysInStock = daysInStock.Div(decimal.NewFromInt(int64(stockSamples))).Round(1).String()
	}
	overview.TotalProfit = money.Cents(totalProfit).StringFixed(2)
	if roiSamples > 0 {
		overview.AvgROIPercent = totalROI.Div(decimal.NewFromInt(int64(roiSamples))).Round(2).String()
	}

	return overview, nil
}

// parseROI reads an ROI cell. Historical rows carry values like "12,5%"
// with a decimal comma.
func parseROI(cell string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(cell)
	if v == "" {
		return decimal.Zero, false
	}
	v = strings.ReplaceAll(v, ",", ".")
	d, err := money.Parse(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
