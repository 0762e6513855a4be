package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/sheets"
)

// SimulationRepository persists registered financing simulations on their
// own tab, creating it with a header on first use.
type SimulationRepository interface {
	Record(ctx context.Context, sim models.Simulation) error
}

type simulationRepository struct {
	store sheets.Store
}

// NewSimulationRepository creates a SimulationRepository over the given store.
func NewSimulationRepository(store sheets.Store) SimulationRepository {
	return &simulationRepository{store: store}
}

func (r *simulationRepository) Record(ctx context.Context, sim models.Simulation) error {
	if err := r.store.EnsureSheet(ctx, models.SimulationSheet, models.SimulationHeader); err != nil {
		return fmt.Errorf("failed to ensure simulations sheet: %w", err)
	}

	rng := sheets.Span(models.SimulationSheet, 0, len(models.SimulationHeader)-1, 1)
	row := []string{
		sim.Number,
		sim.DownPayment.StringFixed(2),
		sim.SaleValue.StringFixed(2),
		sim.TotalInterest.StringFixed(2),
		sim.AnnualRatePercent.String() + "%",
		strconv.Itoa(sim.TermMonths),
		sim.Payment.StringFixed(2),
	}
	if err := r.store.AppendRow(ctx, rng, row); err != nil {
		return fmt.Errorf("failed to append simulation: %w", err)
	}
	return nil
}
