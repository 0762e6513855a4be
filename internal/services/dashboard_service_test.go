package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vportella/landfolio/internal/models"
)

func TestDashboardOverview(t *testing.T) {
	f := newFixture()
	f.seedParcels(
		// Sold after 90 days, clean profit and ROI.
		parcelRow(func(r []string) {
			r[models.ParcelCols.Number] = "12"
			r[models.ParcelCols.PurchaseDate] = "1/1/2024"
			r[models.ParcelCols.SaleDate] = "3/31/2024"
			r[models.ParcelCols.Profit] = "$10,000.00"
			r[models.ParcelCols.ROI] = "20%"
		}),
		// In stock for 100 days as of the fixed clock.
		parcelRow(func(r []string) {
			r[models.ParcelCols.Number] = "13"
			r[models.ParcelCols.PurchaseDate] = "3/23/2024"
		}),
		// Blocked, with a decimal-comma ROI and a junk profit cell.
		parcelRow(func(r []string) {
			r[models.ParcelCols.Number] = "14"
			r[models.ParcelCols.Blocked] = "Sim"
			r[models.ParcelCols.Profit] = "a combinar"
			r[models.ParcelCols.ROI] = "12,5%"
		}),
	)

	service := NewDashboardService(f.parcels, f.log).(*dashboardService)
	service.now = func() time.Time {
		return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	}

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalParcels)
	assert.Equal(t, 1, overview.Sold)
	assert.Equal(t, 1, overview.Available)
	assert.Equal(t, 1, overview.Blocked)

	assert.Equal(t, "90", overview.AvgDaysToSale)
	assert.Equal(t, "100", overview.AvgDaysInStock)
	// The junk profit cell is skipped, not zeroed into the total.
	assert.Equal(t, "10000.00", overview.TotalProfit)
	// (20 + 12.5) / 2
	assert.Equal(t, "16.25", overview.AvgROIPercent)
}

func TestDashboardOverview_Empty(t *testing.T) {
	f := newFixture()
	f.seedParcels()
	service := NewDashboardService(f.parcels, f.log)

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, overview.TotalParcels)
	assert.Empty(t, overview.AvgDaysToSale)
	assert.Empty(t, overview.AvgDaysInStock)
	assert.Equal(t, "0.00", overview.TotalProfit)
	assert.Empty(t, overview.AvgROIPercent)
}

func TestToSheetDate(t *testing.T) {
	got, err := toSheetDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "6/1/2024", got)

	_, err = toSheetDate("06/01/2024")
	assert.Error(t, err)
}

func TestParseSheetDate(t *testing.T) {
	testCases := []struct {
		in   string
		ok   bool
		want string
	}{
		{"3/15/2023", true, "2023-03-15"},
		{"03/15/2023", true, "2023-03-15"},
		{"2023-03-15", true, "2023-03-15"},
		{"", false, ""},
		{"soon", false, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseSheetDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got.Format("2006-01-02"))
			}
		})
	}
}
