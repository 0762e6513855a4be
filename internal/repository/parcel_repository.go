package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/sheets"
)

// ParcelRepository is the data access layer for the parcel registry tab.
type ParcelRepository interface {
	// List returns every parcel row with a non-blank property number.
	List(ctx context.Context) ([]models.Parcel, error)

	// FindByNumber returns the parcel with the given property number.
	// Returns nil, nil when no parcel matches (not an error).
	FindByNumber(ctx context.Context, number string) (*models.Parcel, error)

	// Append registers a new parcel from named form fields.
	Append(ctx context.Context, fields map[string]string) error

	// UpdateCells overwrites individual cells of an existing parcel row,
	// addressed by column index from the registry.
	UpdateCells(ctx context.Context, rowNumber int, updates map[int]string) error

	// DescriptionOptions returns the configured ledger description options.
	DescriptionOptions(ctx context.Context) ([]string, error)

	// VerifyHeader checks the worksheet header against the column registry.
	VerifyHeader(ctx context.Context) error
}

type parcelRepository struct {
	store sheets.Store
}

// NewParcelRepository creates a ParcelRepository over the given store.
func NewParcelRepository(store sheets.Store) ParcelRepository {
	return &parcelRepository{store: store}
}

func (r *parcelRepository) List(ctx context.Context) ([]models.Parcel, error) {
	rng := sheets.Span(models.ParcelSheet, 0, models.ParcelCols.Status, models.ParcelFirstRow)
	rows, err := r.store.ReadRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read parcels: %w", err)
	}

	parcels := make([]models.Parcel, 0, len(rows))
	for i, row := range rows {
		parcel := models.ParcelFromRow(row, models.ParcelFirstRow+i)
		if parcel.Number == "" {
			continue
		}
		parcels = append(parcels, parcel)
	}
	return parcels, nil
}

func (r *parcelRepository) FindByNumber(ctx context.Context, number string) (*models.Parcel, error) {
	parcels, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	want := strings.TrimSpace(number)
	for i := range parcels {
		if parcels[i].Number == want {
			return &parcels[i], nil
		}
	}
	return nil, nil
}

func (r *parcelRepository) Append(ctx context.Context, fields map[string]string) error {
	// Column A is not part of the form; the row starts at B.
	row := make([]string, 1, len(models.ParcelCreateFields)+1)
	for _, name := range models.ParcelCreateFields {
		row = append(row, fields[name])
	}

	rng := sheets.Span(models.ParcelSheet, 0, len(models.ParcelCreateFields), models.ParcelFirstRow)
	if err := r.store.AppendRow(ctx, rng, row); err != nil {
		return fmt.Errorf("failed to append parcel: %w", err)
	}
	return nil
}

func (r *parcelRepository) UpdateCells(ctx context.Context, rowNumber int, updates map[int]string) error {
	if len(updates) == 0 {
		return nil
	}

	cols := make([]int, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	writes := make([]sheets.CellWrite, 0, len(cols))
	for _, col := range cols {
		writes = append(writes, sheets.CellWrite{
			Range:  sheets.Cell(models.ParcelSheet, col, rowNumber),
			Values: []string{updates[col]},
		})
	}

	if err := r.store.BatchUpdate(ctx, writes); err != nil {
		return fmt.Errorf("failed to update parcel row %d: %w", rowNumber, err)
	}
	return nil
}

func (r *parcelRepository) DescriptionOptions(ctx context.Context) ([]string, error) {
	rng := sheets.Span(models.SettingsSheet, 1, 1, models.SettingsOptionsFirstRow)
	rows, err := r.store.ReadRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read description options: %w", err)
	}

	seen := make(map[string]bool)
	var options []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		opt := strings.TrimSpace(row[0])
		if opt == "" || seen[opt] {
			continue
		}
		seen[opt] = true
		options = append(options, opt)
	}
	return options, nil
}

func (r *parcelRepository) VerifyHeader(ctx context.Context) error {
	return models.VerifyParcelHeader(ctx, r.store)
}
