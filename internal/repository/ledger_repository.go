package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/sheets"
)

// LedgerLine is one cost/credit/sale line to be placed in the ledger.
type LedgerLine struct {
	Date           string
	Number         string
	Description    string
	Classification string
	Amount         decimal.Decimal
}

// SaleTerms are the buyer/financing columns stamped onto the sale-value
// row during a sale.
type SaleTerms struct {
	LegalParcel      string
	Address          string
	Buyer            string
	PaymentMethod    string
	DownPayment      decimal.Decimal
	InstallmentCount int
	InstallmentValue decimal.Decimal
}

// SaleResult reports where a recorded sale landed.
type SaleResult struct {
	SaleRow     int `json:"sale_row"`
	RowsWritten int `json:"rows_written"`
}

// LedgerRepository is the data access layer for the ledger tab.
type LedgerRepository interface {
	// Entries lists all populated ledger rows.
	Entries(ctx context.Context) ([]models.LedgerEntry, error)

	// Upsert finds the row matching the line's (parcel number, description)
	// pair — case-insensitive, trimmed — and overwrites it, or writes the
	// line into the first fully-empty row, appending past the end when none
	// is empty. Returns the 1-based row written.
	Upsert(ctx context.Context, line LedgerLine) (int, error)

	// AppendEntry appends a standalone cost/credit entry with its
	// denormalized parcel columns.
	AppendEntry(ctx context.Context, entry models.LedgerEntry) error

	// RecordSale places all lines of a sale in one staged batch write and
	// stamps the sale terms onto the sale-value row. The whole plan commits
	// in a single remote call, so a sale can never be half-written by a
	// failure between lines.
	RecordSale(ctx context.Context, lines []LedgerLine, terms SaleTerms) (*SaleResult, error)

	// Investors returns the distinct investor names present in the ledger.
	Investors(ctx context.Context) ([]string, error)
}

type ledgerRepository struct {
	store  sheets.Store
	keys   *keyedMutex
	saleMu sync.Mutex
}

// NewLedgerRepository creates a LedgerRepository over the given store.
func NewLedgerRepository(store sheets.Store) LedgerRepository {
	return &ledgerRepository{
		store: store,
		keys:  newKeyedMutex(),
	}
}

// scanRange covers columns B..F from the first data row: the five cells
// that decide both key matching and row emptiness.
func scanRange() string {
	return sheets.Span(models.LedgerSheet, models.LedgerCols.Date, models.LedgerCols.Amount, models.LedgerFirstRow)
}

func (r *ledgerRepository) Entries(ctx context.Context) ([]models.LedgerEntry, error) {
	rng := sheets.Span(models.LedgerSheet, models.LedgerCols.Date, models.LedgerCols.Notes, models.LedgerFirstRow)
	rows, err := r.store.ReadRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	entries := make([]models.LedgerEntry, 0, len(rows))
	for i, row := range rows {
		entry := models.LedgerEntryFromRow(row, models.LedgerFirstRow+i)
		if entry.Date == "" && entry.Number == "" && entry.Description == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *ledgerRepository) Upsert(ctx context.Context, line LedgerLine) (int, error) {
	unlock := r.keys.lock(ledgerKey(line.Number, line.Description))
	defer unlock()

	rows, err := r.store.ReadRange(ctx, scanRange())
	if err != nil {
		return 0, fmt.Errorf("failed to scan ledger for upsert: %w", err)
	}

	plan := newLedgerPlan(rows)
	row := plan.rowFor(line.Number, line.Description)

	rng := sheets.RowSpan(models.LedgerSheet, models.LedgerCols.Date, models.LedgerCols.Amount, row)
	if err := r.store.UpdateRow(ctx, rng, lineCells(line)); err != nil {
		return 0, fmt.Errorf("failed to write ledger row %d: %w", row, err)
	}
	return row, nil
}

func (r *ledgerRepository) AppendEntry(ctx context.Context, entry models.LedgerEntry) error {
	rng := sheets.Span(models.LedgerSheet, models.LedgerCols.Date, models.LedgerCols.Notes, models.LedgerFirstRow)
	row := []string{
		entry.Date,
		entry.Number,
		entry.Description,
		entry.Classification,
		entry.Amount,
		entry.LegalParcel,
		entry.Address,
		entry.Investor,
		entry.Notes,
	}
	if err := r.store.AppendRow(ctx, rng, row); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepository) RecordSale(ctx context.Context, lines []LedgerLine, terms SaleTerms) (*SaleResult, error) {
	// One writer at a time for the whole sale: the plan below assigns
	// empty rows from a single snapshot, which only holds if nothing else
	// is placing rows concurrently.
	r.saleMu.Lock()
	defer r.saleMu.Unlock()

	rows, err := r.store.ReadRange(ctx, scanRange())
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger for sale: %w", err)
	}

	plan := newLedgerPlan(rows)
	writes := make([]sheets.CellWrite, 0, len(lines)+2)
	saleRow := 0

	for _, line := range lines {
		row := plan.rowFor(line.Number, line.Description)
		writes = append(writes, sheets.CellWrite{
			Range:  sheets.RowSpan(models.LedgerSheet, models.LedgerCols.Date, models.LedgerCols.Amount, row),
			Values: lineCells(line),
		})
		if strings.EqualFold(strings.TrimSpace(line.Description), models.SaleValueDescription) {
			saleRow = row
		}
	}

	if saleRow == 0 {
		return nil, fmt.Errorf("sale plan is missing the %q line", models.SaleValueDescription)
	}

	writes = append(writes,
		sheets.CellWrite{
			Range:  sheets.RowSpan(models.LedgerSheet, models.LedgerCols.LegalParcel, models.LedgerCols.Investor, saleRow),
			Values: []string{terms.LegalParcel, terms.Address, terms.Buyer},
		},
		sheets.CellWrite{
			Range:  sheets.RowSpan(models.LedgerSheet, models.LedgerCols.Buyer, models.LedgerCols.InstallmentValue, saleRow),
			Values: []string{
				terms.Buyer,
				terms.PaymentMethod,
				terms.DownPayment.StringFixed(2),
				strconv.Itoa(terms.InstallmentCount),
				terms.InstallmentValue.StringFixed(2),
			},
		},
	)

	if err := r.store.BatchUpdate(ctx, writes); err != nil {
		return nil, fmt.Errorf("failed to commit sale batch: %w", err)
	}

	return &SaleResult{SaleRow: saleRow, RowsWritten: len(lines)}, nil
}

func (r *ledgerRepository) Investors(ctx context.Context) ([]string, error) {
	rng := sheets.Span(models.LedgerSheet, models.LedgerCols.Investor, models.LedgerCols.Investor, models.LedgerFirstRow)
	rows, err := r.store.ReadRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read investors: %w", err)
	}

	seen := make(map[string]bool)
	var investors []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		investors = append(investors, name)
	}
	return investors, nil
}

func lineCells(line LedgerLine) []string {
	return []string{
		line.Date,
		line.Number,
		line.Description,
		line.Classification,
		line.Amount.StringFixed(2),
	}
}

func ledgerKey(number, description string) string {
	return strings.ToLower(strings.TrimSpace(number)) + "\x00" + strings.ToLower(strings.TrimSpace(description))
}

// ledgerPlan assigns worksheet rows to ledger lines against one snapshot
// of the scan range. A row handed out once — by key match or as an empty
// slot — is never handed out again within the same plan, so multi-line
// sales cannot collide with themselves.
type ledgerPlan struct {
	rows    [][]string
	taken   map[int]bool
	byKey   map[string]int
	overrun int
}

func newLedgerPlan(rows [][]string) *ledgerPlan {
	return &ledgerPlan{
		rows:  rows,
		taken: make(map[int]bool),
		byKey: make(map[string]int),
	}
}

// rowFor returns the 1-based worksheet row where the (number, description)
// line belongs: its existing row, the first free empty row, or the next
// row past the end.
func (p *ledgerPlan) rowFor(number, description string) int {
	key := ledgerKey(number, description)
	if row, ok := p.byKey[key]; ok {
		return row
	}

	num := strings.ToLower(strings.TrimSpace(number))
	desc := strings.ToLower(strings.TrimSpace(description))

	for i, raw := range p.rows {
		rowNum := strings.ToLower(strings.TrimSpace(cellAt(raw, 1)))
		rowDesc := strings.ToLower(strings.TrimSpace(cellAt(raw, 2)))
		if rowNum == num && rowDesc == desc {
			row := models.LedgerFirstRow + i
			p.claim(key, row)
			return row
		}
	}

	for i, raw := range p.rows {
		row := models.LedgerFirstRow + i
		if p.taken[row] {
			continue
		}
		if rowEmpty(raw) {
			p.claim(key, row)
			return row
		}
	}

	row := models.LedgerFirstRow + len(p.rows) + p.overrun
	p.overrun++
	p.claim(key, row)
	return row
}

func (p *ledgerPlan) claim(key string, row int) {
	p.taken[row] = true
	p.byKey[key] = row
}

func rowEmpty(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
