package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/sheets"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(number, description, amount string) LedgerLine {
	return LedgerLine{
		Date:           "1/5/2024",
		Number:         number,
		Description:    description,
		Classification: models.ClassificationSale,
		Amount:         dec(amount),
	}
}

func readLedger(t *testing.T, store *sheets.MemStore) [][]string {
	t.Helper()
	rows, err := store.ReadRange(context.Background(), "'Registros'!B9:F")
	require.NoError(t, err)
	return rows
}

func TestUpsertInsertsThenOverwrites(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	repo := NewLedgerRepository(store)

	row, err := repo.Upsert(ctx, line("12", "Closing Fee", "500"))
	require.NoError(t, err)
	assert.Equal(t, 9, row)

	// Same key with a corrected amount lands on the same row.
	row2, err := repo.Upsert(ctx, line("12", "  closing fee ", "650"))
	require.NoError(t, err)
	assert.Equal(t, row, row2)

	rows := readLedger(t, store)
	require.Len(t, rows, 1)
	assert.Equal(t, "650.00", rows[0][4])
}

func TestUpsertDistinctDescriptionsGetDistinctRows(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	repo := NewLedgerRepository(store)

	r1, err := repo.Upsert(ctx, line("12", "Closing Fee", "500"))
	require.NoError(t, err)
	r2, err := repo.Upsert(ctx, line("12", "Survey", "300"))
	require.NoError(t, err)
	r3, err := repo.Upsert(ctx, line("13", "Closing Fee", "450"))
	require.NoError(t, err)

	assert.NotEqual(t, r1, r2)
	assert.NotEqual(t, r1, r3)
	assert.NotEqual(t, r2, r3)
	assert.Len(t, readLedger(t, store), 3)
}

func TestUpsertReusesFirstEmptyRow(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	// Row 10 is a hole between two populated rows.
	store.Seed(models.LedgerSheet, 9, [][]string{
		{"", "1/1/2024", "7", "Deed", "Propriedade", "120"},
		{},
		{"", "1/2/2024", "8", "Survey", "Propriedade", "300"},
	})
	repo := NewLedgerRepository(store)

	row, err := repo.Upsert(ctx, line("12", "Closing Fee", "500"))
	require.NoError(t, err)
	assert.Equal(t, 10, row)
}

func TestLedgerPlanAssignsWithinOnePlan(t *testing.T) {
	plan := newLedgerPlan([][]string{
		{"1/1/2024", "12", "Closing Fee", "Venda", "500"},
	})

	// Existing key maps to its row; repeated asks are stable.
	assert.Equal(t, 9, plan.rowFor("12", "closing fee"))
	assert.Equal(t, 9, plan.rowFor("12", "Closing Fee"))

	// New keys move past the end without colliding.
	assert.Equal(t, 10, plan.rowFor("12", models.SaleValueDescription))
	assert.Equal(t, 11, plan.rowFor("12", "State Commission"))
}

func TestRecordSaleCommitsOneBatch(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	repo := NewLedgerRepository(store)

	lines := []LedgerLine{
		line("12", "Closing Fee", "500"),
		line("12", models.SaleValueDescription, "50000"),
	}
	terms := SaleTerms{
		LegalParcel:      "013-022-008",
		Address:          "123 County Rd",
		Buyer:            "John Buyer",
		PaymentMethod:    "Financing",
		DownPayment:      dec("15000"),
		InstallmentCount: 36,
		InstallmentValue: dec("1000"),
	}

	result, err := repo.RecordSale(ctx, lines, terms)
	require.NoError(t, err)
	assert.Equal(t, 10, result.SaleRow)
	assert.Equal(t, 2, result.RowsWritten)

	rows := readLedger(t, store)
	require.Len(t, rows, 2)
	assert.Equal(t, "Closing Fee", rows[0][2])
	assert.Equal(t, models.SaleValueDescription, rows[1][2])
	assert.Equal(t, "50000.00", rows[1][4])

	// Sale terms land only on the sale-value row.
	wide, err := store.ReadRange(ctx, "'Registros'!B9:U")
	require.NoError(t, err)
	costRow, saleRow := wide[0], wide[1]
	assert.Less(t, len(costRow), 16, "cost row must not carry buyer columns")
	assert.Equal(t, "John Buyer", saleRow[15])
	assert.Equal(t, "Financing", saleRow[16])
	assert.Equal(t, "15000.00", saleRow[17])
	assert.Equal(t, "36", saleRow[18])
	assert.Equal(t, "1000.00", saleRow[19])
	assert.Equal(t, "013-022-008", saleRow[5])
	assert.Equal(t, "123 County Rd", saleRow[6])
	assert.Equal(t, "John Buyer", saleRow[7])
}

func TestRecordSaleResubmissionOverwrites(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	repo := NewLedgerRepository(store)

	terms := SaleTerms{Buyer: "John Buyer", PaymentMethod: "Cash"}

	_, err := repo.RecordSale(ctx, []LedgerLine{
		line("12", "Closing Fee", "500"),
		line("12", models.SaleValueDescription, "50000"),
	}, terms)
	require.NoError(t, err)

	// Corrected amounts, same keys: no new rows.
	result, err := repo.RecordSale(ctx, []LedgerLine{
		line("12", "Closing Fee", "650"),
		line("12", models.SaleValueDescription, "52000"),
	}, terms)
	require.NoError(t, err)
	assert.Equal(t, 10, result.SaleRow)

	rows := readLedger(t, store)
	require.Len(t, rows, 2)
	assert.Equal(t, "650.00", rows[0][4])
	assert.Equal(t, "52000.00", rows[1][4])
}

func TestRecordSaleRequiresSaleLine(t *testing.T) {
	store := sheets.NewMemStore()
	repo := NewLedgerRepository(store)

	_, err := repo.RecordSale(context.Background(), []LedgerLine{
		line("12", "Closing Fee", "500"),
	}, SaleTerms{})
	assert.Error(t, err)
}

func TestEntriesSkipsBlankRows(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	store.Seed(models.LedgerSheet, 9, [][]string{
		{"", "1/1/2024", "7", "Deed", "Propriedade", "120", "", "", "ACME"},
		{},
		{"", "1/2/2024", "8", "Survey", "Leilão", "300"},
	})
	repo := NewLedgerRepository(store)

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[0].RowNumber)
	assert.Equal(t, "ACME", entries[0].Investor)
	assert.Equal(t, 11, entries[1].RowNumber)
}

func TestInvestorsDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemStore()
	store.Seed(models.LedgerSheet, 9, [][]string{
		{"", "1/1/2024", "7", "Deed", "Propriedade", "120", "", "", "ACME"},
		{"", "1/2/2024", "8", "Survey", "Leilão", "300", "", "", " ACME "},
		{"", "1/3/2024", "9", "Deed", "Propriedade", "100", "", "", "Blue Ridge"},
	})
	repo := NewLedgerRepository(store)

	investors, err := repo.Investors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME", "Blue Ridge"}, investors)
}
