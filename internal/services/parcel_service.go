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

// Listing filter values for the status query parameter.
const (
	StatusSold      = "sold"
	StatusAvailable = "available"
	StatusBlocked   = "blocked"
)

// Service-level errors
var (
	ErrParcelNotFound = errors.New("parcel not found")
	ErrParcelExists   = errors.New("parcel number already registered")
	ErrUnknownField   = errors.New("unknown parcel field")
	ErrInvalidFilter  = errors.New("invalid status filter")
)

// ParcelFilter narrows a parcel listing. Zero values mean "no filter".
type ParcelFilter struct {
	State  string
	County string
	Status string
}

// ParcelOptions carries the dropdown data used by the registration and
// sale forms.
type ParcelOptions struct {
	Numbers      []string `json:"numbers"`
	Descriptions []string `json:"descriptions"`
	Investors    []string `json:"investors"`
}

// ParcelService defines the interface for parcel business logic operations.
type ParcelService interface {
	// List retrieves parcels matching the filter.
	// Returns ErrInvalidFilter for an unrecognized status value.
	List(ctx context.Context, filter ParcelFilter) ([]models.Parcel, error)

	// Get retrieves a single parcel by property number.
	// Returns ErrParcelNotFound if no parcel matches.
	Get(ctx context.Context, number string) (*models.Parcel, error)

	// Create registers a new parcel from named form fields.
	// Returns ErrUnknownField for a field name outside the registry and
	// ErrParcelExists when the property number is already taken.
	Create(ctx context.Context, fields map[string]string) error

	// Update overwrites individual cells of an existing parcel, addressed
	// by field name. Returns ErrParcelNotFound or ErrUnknownField.
	Update(ctx context.Context, number string, fields map[string]string) error

	// Options returns the dropdown data for the registration and sale forms.
	Options(ctx context.Context) (*ParcelOptions, error)
}

type parcelService struct {
	parcels repository.ParcelRepository
	ledger  repository.LedgerRepository
	log     *logger.Logger
}

// NewParcelService creates a new instance of ParcelService.
func NewParcelService(parcels repository.ParcelRepository, ledger repository.LedgerRepository, log *logger.Logger) ParcelService {
	return &parcelService{
		parcels: parcels,
		ledger:  ledger,
		log:     log,
	}
}

func (s *parcelService) List(ctx context.Context, filter ParcelFilter) ([]models.Parcel, error) {
	switch filter.Status {
	case "", StatusSold, StatusAvailable, StatusBlocked:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter.Status)
	}

	parcels, err := s.parcels.List(ctx)
	if err != nil {
		s.log.Error("Failed to list parcels", err, nil)
		return nil, fmt.Errorf("failed to list parcels: %w", err)
	}

	filtered := make([]models.Parcel, 0, len(parcels))
	for _, p := range parcels {
		if !matchesFilter(p, filter) {
			continue
		}
		filtered = append(filtered, p)
	}

	s.log.Debug("Parcels listed", logger.Fields{
		"total":    len(parcels),
		"returned": len(filtered),
	})
	return filtered, nil
}

func matchesFilter(p models.Parcel, f ParcelFilter) bool {
	if f.State != "" && !strings.EqualFold(p.State, f.State) {
		return false
	}
	if f.County != "" && !strings.EqualFold(p.County, f.County) {
		return false
	}
	switch f.Status {
	case StatusSold:
		return p.Sold()
	case StatusAvailable:
		return !p.Sold() && !p.Blocked()
	case StatusBlocked:
		return p.Blocked()
	}
	return true
}

func (s *parcelService) Get(ctx context.Context, number string) (*models.Parcel, error) {
	parcel, err := s.parcels.FindByNumber(ctx, number)
	if err != nil {
		s.log.Error("Failed to look up parcel", err, logger.Fields{"number": number})
		return nil, fmt.Errorf("failed to look up parcel: %w", err)
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	return parcel, nil
}

func (s *parcelService) Create(ctx context.Context, fields map[string]string) error {
	for name := range fields {
		if _, ok := models.ParcelFieldColumn(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	number := strings.TrimSpace(fields["property_number"])
	existing, err := s.parcels.FindByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to check for existing parcel: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrParcelExists, number)
	}

	if err := s.parcels.Append(ctx, fields); err != nil {
		s.log.Error("Failed to register parcel", err, logger.Fields{"number": number})
		return fmt.Errorf("failed to register parcel: %w", err)
	}

	s.log.Info("Parcel registered", logger.Fields{"number": number})
	return nil
}

func (s *parcelService) Update(ctx context.Context, number string, fields map[string]string) error {
	parcel, err := s.Get(ctx, number)
	if err != nil {
		return err
	}

	updates := make(map[int]string, len(fields))
	for name, value := range fields {
		col, ok := models.ParcelFieldColumn(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		updates[col] = value
	}

	if err := s.parcels.UpdateCells(ctx, parcel.RowNumber, updates); err != nil {
		s.log.Error("Failed to update parcel", err, logger.Fields{
			"number": number,
			"row":    parcel.RowNumber,
		})
		return fmt.Errorf("failed to update parcel: %w", err)
	}

	s.log.Info("Parcel updated", logger.Fields{
		"number": number,
		"fields": len(updates),
	})
	return nil
}

func (s *parcelService) Options(ctx context.Context) (*ParcelOptions, error) {
	parcels, err := s.parcels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels for options: %w", err)
	}
	numbers := make([]string, 0, len(parcels))
	for _, p := range parcels {
		numbers = append(numbers, p.Number)
	}

	descriptions, err := s.parcels.DescriptionOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read description options: %w", err)
	}

	investors, err := s.ledger.Investors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read investors: %w", err)
	}

	return &ParcelOptions{
		Numbers:      numbers,
		Descriptions: descriptions,
		Investors:    investors,
	}, nil
}
