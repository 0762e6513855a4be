package services

import (
	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/repository"
	"github.com/vportella/landfolio/internal/sheets"
)

// fixture wires real repositories over a seeded in-memory store, so
// service tests exercise the same range arithmetic production uses.
type fixture struct {
	store   *sheets.MemStore
	parcels repository.ParcelRepository
	ledger  repository.LedgerRepository
	clients repository.ClientRepository
	sims    repository.SimulationRepository
	log     *logger.Logger
}

func newFixture() *fixture {
	store := sheets.NewMemStore()
	return &fixture{
		store:   store,
		parcels: repository.NewParcelRepository(store),
		ledger:  repository.NewLedgerRepository(store),
		clients: repository.NewClientRepository(store),
		sims:    repository.NewSimulationRepository(store),
		log:     logger.New("test"),
	}
}

func parcelRow(mut func(row []string)) []string {
	row := make([]string, models.ParcelCols.Status+1)
	mut(row)
	return row
}

// seedParcels places the header row plus the given data rows.
func (f *fixture) seedParcels(rows ...[]string) {
	f.store.Seed(models.ParcelSheet, models.ParcelHeaderRow, [][]string{models.ExpectedParcelHeaderRow()})
	f.store.Seed(models.ParcelSheet, models.ParcelFirstRow, rows)
}

func (f *fixture) seedLedger(rows ...[]string) {
	// Ledger rows are seeded from column B, matching the data region.
	shifted := make([][]string, len(rows))
	for i, row := range rows {
		shifted[i] = append([]string{""}, row...)
	}
	f.store.Seed(models.LedgerSheet, models.LedgerFirstRow, shifted)
}
