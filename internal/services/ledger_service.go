package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/money"
	"github.com/vportella/landfolio/internal/repository"
)

// EntryRequest is a cost/credit form submission for the ledger.
type EntryRequest struct {
	Date        string `json:"date" binding:"required"`
	Number      string `json:"property_number" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Auction     bool   `json:"auction"`
	Investor    string `json:"investor"`
	Notes       string `json:"notes"`
}

// LedgerService lists and appends ledger entries.
type LedgerService interface {
	// List returns every populated ledger row.
	List(ctx context.Context) ([]models.LedgerEntry, error)

	// CreateEntry appends one cost/credit line, denormalizing the
	// parcel's legal number and address onto the row as the other
	// writers do. Returns ErrParcelNotFound, ErrInvalidDate, or
	// ErrInvalidAmount.
	CreateEntry(ctx context.Context, req EntryRequest) error
}

type ledgerService struct {
	ledger  repository.LedgerRepository
	parcels repository.ParcelRepository
	log     *logger.Logger
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(ledger repository.LedgerRepository, parcels repository.ParcelRepository, log *logger.Logger) LedgerService {
	return &ledgerService{
		ledger:  ledger,
		parcels: parcels,
		log:     log,
	}
}

func (s *ledgerService) List(ctx context.Context) ([]models.LedgerEntry, error) {
	entries, err := s.ledger.Entries(ctx)
	if err != nil {
		s.log.Error("Failed to list ledger entries", err, nil)
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) CreateEntry(ctx context.Context, req EntryRequest) error {
	parcel, err := s.parcels.FindByNumber(ctx, req.Number)
	if err != nil {
		return fmt.Errorf("failed to look up parcel: %w", err)
	}
	if parcel == nil {
		return ErrParcelNotFound
	}

	date, err := toSheetDate(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount.IsZero() {
		return fmt.Errorf("%w: %q", ErrInvalidAmount, req.Amount)
	}

	classification := models.ClassificationProperty
	if req.Auction {
		classification = models.ClassificationAuction
	}

	entry := models.LedgerEntry{
		Date:           date,
		Number:         parcel.Number,
		Description:    strings.TrimSpace(req.Description),
		Classification: classification,
		Amount:         money.Cents(amount).StringFixed(2),
		LegalParcel:    parcel.LegalParcel,
		Address:        parcel.Address,
		Investor:       strings.TrimSpace(req.Investor),
		Notes:          req.Notes,
	}
	if err := s.ledger.AppendEntry(ctx, entry); err != nil {
		s.log.Error("Failed to append ledger entry", err, logger.Fields{
			"number":      parcel.Number,
			"description": entry.Description,
		})
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	s.log.Info("Ledger entry appended", logger.Fields{
		"number":         parcel.Number,
		"description":    entry.Description,
		"classification": classification,
	})
	return nil
}
