package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/repository"
)

// ErrInvalidClient is returned when a client record is missing its name.
var ErrInvalidClient = errors.New("invalid client")

// PurchasedParcel is the parcel summary shown next to a buying client.
type PurchasedParcel struct {
	Number    string `json:"property_number"`
	Address   string `json:"address"`
	SaleDate  string `json:"sale_date"`
	SalePrice string `json:"sale_price"`
}

// ClientWithParcel is a client joined to the parcel they bought, when one
// matches. The worksheet stores no relation; the join is a trimmed
// name match against the parcel buyer column.
type ClientWithParcel struct {
	models.Client
	Parcel *PurchasedParcel `json:"parcel,omitempty"`
}

// ClientService defines the interface for client business logic operations.
type ClientService interface {
	// List returns all clients, each joined to a bought parcel by buyer name.
	List(ctx context.Context) ([]ClientWithParcel, error)

	// Create registers a new client. Returns ErrInvalidClient when the
	// name is blank.
	Create(ctx context.Context, client models.Client) error
}

type clientService struct {
	clients repository.ClientRepository
	parcels repository.ParcelRepository
	log     *logger.Logger
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clients repository.ClientRepository, parcels repository.ParcelRepository, log *logger.Logger) ClientService {
	return &clientService{
		clients: clients,
		parcels: parcels,
		log:     log,
	}
}

func (s *clientService) List(ctx context.Context) ([]ClientWithParcel, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		s.log.Error("Failed to list clients", err, nil)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	parcels, err := s.parcels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels for client join: %w", err)
	}

	byBuyer := make(map[string]models.Parcel, len(parcels))
	for _, p := range parcels {
		buyer := strings.ToLower(strings.TrimSpace(p.Buyer))
		if buyer == "" {
			continue
		}
		// First match wins; the team keeps one active purchase per buyer.
		if _, ok := byBuyer[buyer]; !ok {
			byBuyer[buyer] = p
		}
	}

	out := make([]ClientWithParcel, 0, len(clients))
	for _, c := range clients {
		joined := ClientWithParcel{Client: c}
		if p, ok := byBuyer[strings.ToLower(strings.TrimSpace(c.Name))]; ok {
			joined.Parcel = &PurchasedParcel{
				Number:    p.Number,
				Address:   p.Address,
				SaleDate:  p.SaleDate,
				SalePrice: p.SalePrice,
			}
		}
		out = append(out, joined)
	}
	return out, nil
}

func (s *clientService) Create(ctx context.Context, client models.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidClient)
	}

	if err := s.clients.Append(ctx, client); err != nil {
		s.log.Error("Failed to register client", err, logger.Fields{"name": client.Name})
		return fmt.Errorf("failed to register client: %w", err)
	}

	s.log.Info("Client registered", logger.Fields{"name": client.Name})
	return nil
}
