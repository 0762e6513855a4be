package repository

import (
	"context"
	"fmt"

	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/sheets"
)

// ClientRepository is the data access layer for the clients tab.
type ClientRepository interface {
	// List returns every client row with a non-blank name.
	List(ctx context.Context) ([]models.Client, error)

	// Append adds a client to the end of the list.
	Append(ctx context.Context, client models.Client) error
}

type clientRepository struct {
	store sheets.Store
}

// NewClientRepository creates a ClientRepository over the given store.
func NewClientRepository(store sheets.Store) ClientRepository {
	return &clientRepository{store: store}
}

func (r *clientRepository) List(ctx context.Context) ([]models.Client, error) {
	rng := sheets.Span(models.ClientSheet, models.ClientCols.Name, models.ClientCols.Notes, models.ClientFirstRow)
	rows, err := r.store.ReadRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}

	clients := make([]models.Client, 0, len(rows))
	for i, row := range rows {
		client := models.ClientFromRow(row, models.ClientFirstRow+i)
		if client.Name == "" {
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

func (r *clientRepository) Append(ctx context.Context, client models.Client) error {
	rng := sheets.Span(models.ClientSheet, models.ClientCols.Name, models.ClientCols.Notes, 1)
	row := []string{client.Name, client.Phone, client.Email, client.TaxID, client.Notes}
	if err := r.store.AppendRow(ctx, rng, row); err != nil {
		return fmt.Errorf("failed to append client: %w", err)
	}
	return nil
}
