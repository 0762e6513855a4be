package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vportella/landfolio/internal/models"
)

func seedThreeParcels(f *fixture) {
	f.seedParcels(
		parcelRow(func(r []string) {
			r[models.ParcelCols.Number] = "12"
			r[models.ParcelCols.State] = "FL"
			r[models.ParcelCols.County] = "Marion"
			r[models.ParcelCols.Address] = "123 County Rd"
		}),
		parcelRow(func(r []string) {
			r[models.ParcelCols.Number] = "13"
			r[models.ParcelCols.State] = "FL"
			r[models.ParcelCols.SaleDate] = "6/1/2024"
			r[models.ParcelCols.Buyer] = "John Buyer"
		}),
		parcelRow(func(r []string) {
			r[models.ParcelCols.Number] = "14"
			r[models.ParcelCols.State] = "TX"
			r[models.ParcelCols.Blocked] = "Sim"
		}),
	)
}

func TestParcelList_Filters(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)
	ctx := context.Background()

	testCases := []struct {
		name   string
		filter ParcelFilter
		want   []string
	}{
		{"no filter", ParcelFilter{}, []string{"12", "13", "14"}},
		{"by state", ParcelFilter{State: "fl"}, []string{"12", "13"}},
		{"by county", ParcelFilter{County: "Marion"}, []string{"12"}},
		{"sold", ParcelFilter{Status: StatusSold}, []string{"13"}},
		{"available", ParcelFilter{Status: StatusAvailable}, []string{"12"}},
		{"blocked", ParcelFilter{Status: StatusBlocked}, []string{"14"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parcels, err := service.List(ctx, tc.filter)
			require.NoError(t, err)
			got := make([]string, 0, len(parcels))
			for _, p := range parcels {
				got = append(got, p.Number)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParcelList_InvalidStatus(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)

	_, err := service.List(context.Background(), ParcelFilter{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParcelGet(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)
	ctx := context.Background()

	parcel, err := service.Get(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "123 County Rd", parcel.Address)

	_, err = service.Get(ctx, "99")
	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestParcelCreate(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)
	ctx := context.Background()

	err := service.Create(ctx, map[string]string{
		"property_number": "15",
		"address":         "Lot 9, Pine Trail",
		"state":           "GA",
	})
	require.NoError(t, err)

	parcel, err := service.Get(ctx, "15")
	require.NoError(t, err)
	assert.Equal(t, "Lot 9, Pine Trail", parcel.Address)
}

func TestParcelCreate_DuplicateNumber(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)

	err := service.Create(context.Background(), map[string]string{"property_number": "12"})
	assert.ErrorIs(t, err, ErrParcelExists)
}

func TestParcelCreate_UnknownField(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)

	err := service.Create(context.Background(), map[string]string{
		"property_number": "16",
		"adress":          "typo street",
	})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestParcelUpdate(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	service := NewParcelService(f.parcels, f.ledger, f.log)
	ctx := context.Background()

	err := service.Update(ctx, "12", map[string]string{
		"status":  "Reserved",
		"blocked": "Sim",
	})
	require.NoError(t, err)

	parcel, err := service.Get(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "Reserved", parcel.Status)
	assert.True(t, parcel.Blocked())

	// An unknown field rejects the whole update before any write.
	err = service.Update(ctx, "12", map[string]string{"stauts": "x"})
	assert.ErrorIs(t, err, ErrUnknownField)

	err = service.Update(ctx, "99", map[string]string{"status": "x"})
	assert.ErrorIs(t, err, ErrParcelNotFound)
}

func TestParcelOptions(t *testing.T) {
	f := newFixture()
	seedThreeParcels(f)
	f.store.Seed(models.SettingsSheet, models.SettingsOptionsFirstRow, [][]string{
		{"", "Closing Fee"},
		{"", "Survey"},
	})
	f.seedLedger(
		[]string{"1/5/2024", "12", "Back Taxes", "Propriedade", "120.00", "", "", "Acme Fund"},
		[]string{"2/5/2024", "13", "Survey", "Propriedade", "300.00", "", "", "Acme Fund"},
	)
	service := NewParcelService(f.parcels, f.ledger, f.log)

	options, err := service.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "13", "14"}, options.Numbers)
	assert.Equal(t, []string{"Closing Fee", "Survey"}, options.Descriptions)
	assert.Equal(t, []string{"Acme Fund"}, options.Investors)
}
