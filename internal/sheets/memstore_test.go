package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreReadRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	m.Seed("Registros", 9, [][]string{
		{"", "1/5/2024", "12", "Closing Fee", "Venda", "500"},
		{"", "1/6/2024", "12", "Valor da Venda", "Venda", "50000"},
	})

	rows, err := m.ReadRange(ctx, "'Registros'!B9:F")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1/5/2024", "12", "Closing Fee", "Venda", "500"}, rows[0])

	// Key-column scan range.
	rows, err = m.ReadRange(ctx, "'Registros'!C9:D")
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "Closing Fee"}, rows[0])
	assert.Equal(t, []string{"12", "Valor da Venda"}, rows[1])

	// Empty tab reads as no rows.
	rows, err = m.ReadRange(ctx, "'Cliente'!A2:E")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemStoreAppendRow(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	require.NoError(t, m.AppendRow(ctx, "'Cliente'!A:E", []string{"Ana", "555-1", "ana@x.com", "", ""}))
	require.NoError(t, m.AppendRow(ctx, "'Cliente'!A:E", []string{"Bia", "555-2", "bia@x.com", "", ""}))

	rows, err := m.ReadRange(ctx, "'Cliente'!A1:E")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0][0])
	assert.Equal(t, "Bia", rows[1][0])

	// Appending within a row-bounded range starts at that row.
	require.NoError(t, m.AppendRow(ctx, "'Registros'!B9:J", []string{"1/1/2024", "7", "Deed", "Propriedade", "120"}))
	got, err := m.ReadRange(ctx, "'Registros'!B9:F")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Deed", got[0][2])
}

func TestMemStoreUpdateAndBatch(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	require.NoError(t, m.UpdateCell(ctx, "'Registros'!Q12", "John Buyer"))
	require.NoError(t, m.UpdateRow(ctx, "'Registros'!B12:F12", []string{"1/5/2024", "12", "Valor da Venda", "Venda", "50000"}))

	require.NoError(t, m.BatchUpdate(ctx, []CellWrite{
		{Range: "'Registros'!G12", Values: []string{"013-022-008"}},
		{Range: "'Registros'!H12", Values: []string{"County Rd 12"}},
	}))

	rows, err := m.ReadRange(ctx, "'Registros'!B12:Q12")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "50000", rows[0][4])
	assert.Equal(t, "013-022-008", rows[0][5])
	assert.Equal(t, "John Buyer", rows[0][15])
}

func TestMemStoreEnsureSheet(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	header := []string{"Propriedade", "Entrada (USD)"}

	require.NoError(t, m.EnsureSheet(ctx, "Simulacoes", header))
	rows, err := m.ReadRange(ctx, "'Simulacoes'!A1:B1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, header, rows[0])

	// Second call leaves existing data untouched.
	require.NoError(t, m.AppendRow(ctx, "'Simulacoes'!A:B", []string{"12", "15000"}))
	require.NoError(t, m.EnsureSheet(ctx, "Simulacoes", header))
	rows, err = m.ReadRange(ctx, "'Simulacoes'!A1:B")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
