package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/sheets"
)

func seedParcels(store *sheets.MemStore) {
	header := models.ExpectedParcelHeaderRow()
	store.Seed(models.ParcelSheet, models.ParcelHeaderRow, [][]string{header})

	row1 := make([]string, 62)
	row1[models.ParcelCols.PurchaseDate] = "3/15/2023"
	row1[models.ParcelCols.Number] = "12"
	row1[models.ParcelCols.Address] = "123 County Rd"
	row1[models.ParcelCols.State] = "FL"
	row1[models.ParcelCols.SalePrice] = "$50,000.00"

	row2 := make([]string, 62)
	row2[models.ParcelCols.Number] = "13"
	row2[models.ParcelCols.State] = "TX"
	row2[models.ParcelCols.SaleDate] = "6/1/2024"

	blank := make([]string, 62)

	store.Seed(models.ParcelSheet, models.ParcelFirstRow, [][]string{row1, row2, blank})
}

func TestParcelList(t *testing.T) {
	store := sheets.NewMemStore()
	seedParcels(store)
	repo := NewParcelRepository(store)

	parcels, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, parcels, 2)
	assert.Equal(t, "12", parcels[0].Number)
	assert.Equal(t, 9, parcels[0].RowNumber)
	assert.Equal(t, "13", parcels[1].Number)
	assert.True(t, parcels[1].Sold())
}

func TestParcelFindByNumber(t *testing.T) {
	store := sheets.NewMemStore()
	seedParcels(store)
	repo := NewParcelRepository(store)
	ctx := context.Background()

	p, err := repo.FindByNumber(ctx, " 12 ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "123 County Rd", p.Address)

	// Absence is nil, nil — not an error.
	p, err = repo.FindByNumber(ctx, "99")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestParcelAppend(t *testing.T) {
	store := sheets.NewMemStore()
	repo := NewParcelRepository(store)
	ctx := context.Background()

	err := repo.Append(ctx, map[string]string{
		"purchase_date":   "2/1/2025",
		"property_number": "21",
		"address":         "Lot 4, Pine Trail",
		"county":          "Marion",
		"state":           "FL",
	})
	require.NoError(t, err)

	parcels, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	assert.Equal(t, "21", parcels[0].Number)
	assert.Equal(t, "Lot 4, Pine Trail", parcels[0].Address)
	assert.Equal(t, "Marion", parcels[0].County)
	assert.Equal(t, 9, parcels[0].RowNumber)
}

func TestParcelUpdateCells(t *testing.T) {
	store := sheets.NewMemStore()
	seedParcels(store)
	repo := NewParcelRepository(store)
	ctx := context.Background()

	err := repo.UpdateCells(ctx, 9, map[int]string{
		models.ParcelCols.Status:  "Reserved",
		models.ParcelCols.Blocked: "Sim",
	})
	require.NoError(t, err)

	p, err := repo.FindByNumber(ctx, "12")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Reserved", p.Status)
	assert.True(t, p.Blocked())
}

func TestParcelVerifyHeader(t *testing.T) {
	ctx := context.Background()

	store := sheets.NewMemStore()
	seedParcels(store)
	repo := NewParcelRepository(store)
	assert.NoError(t, repo.VerifyHeader(ctx))

	// A drifted sheet is refused.
	drifted := sheets.NewMemStore()
	header := models.ExpectedParcelHeaderRow()
	header[models.ParcelCols.Number] = "Codigo"
	drifted.Seed(models.ParcelSheet, models.ParcelHeaderRow, [][]string{header})
	assert.Error(t, NewParcelRepository(drifted).VerifyHeader(ctx))
}

func TestDescriptionOptions(t *testing.T) {
	store := sheets.NewMemStore()
	store.Seed(models.SettingsSheet, models.SettingsOptionsFirstRow, [][]string{
		{"", "Closing Fee"},
		{"", "Survey"},
		{"", " Closing Fee "},
		{"", ""},
		{"", "Back Taxes"},
	})
	repo := NewParcelRepository(store)

	options, err := repo.DescriptionOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Closing Fee", "Survey", "Back Taxes"}, options)
}
