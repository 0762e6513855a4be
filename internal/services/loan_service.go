package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vportella/landfolio/internal/loan"
	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/money"
	"github.com/vportella/landfolio/internal/repository"
)

// ErrInvalidSalePrice is returned when the parcel's sale-price cell does
// not contain a usable amount. The simulation refuses to run rather than
// assuming a price.
var ErrInvalidSalePrice = errors.New("parcel sale price is not a usable amount")

// SimulateRequest names a parcel and the financing terms to simulate.
type SimulateRequest struct {
	Number            string `json:"property_number" binding:"required"`
	DownPayment       string `json:"down_payment" binding:"required"`
	DownPaymentMode   string `json:"down_payment_mode" binding:"required,oneof=percent absolute"`
	TermMonths        int    `json:"term_months" binding:"required,gt=0"`
	AnnualRatePercent string `json:"annual_rate_percent" binding:"required"`
}

// SimulationResult is the computed schedule plus the parcel context the
// form displays alongside it. Currency values are fixed to cents.
type SimulationResult struct {
	Number            string `json:"property_number"`
	Address           string `json:"address"`
	SalePrice         string `json:"sale_price"`
	DownPayment       string `json:"down_payment"`
	FinancedAmount    string `json:"financed_amount"`
	Payment           string `json:"monthly_payment"`
	TotalInterest     string `json:"total_interest"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	TermMonths        int    `json:"term_months"`
}

// LoanService runs and registers financing simulations.
type LoanService interface {
	// Simulate computes an amortization schedule for a parcel's sale price.
	// Returns ErrParcelNotFound, ErrInvalidSalePrice, ErrInvalidAmount, or
	// loan.ErrInvalidTerms.
	Simulate(ctx context.Context, req SimulateRequest) (*SimulationResult, error)

	// Register computes a schedule and appends it to the simulations tab.
	Register(ctx context.Context, req SimulateRequest) (*SimulationResult, error)
}

type loanService struct {
	parcels     repository.ParcelRepository
	simulations repository.SimulationRepository
	log         *logger.Logger
}

// NewLoanService creates a new instance of LoanService.
func NewLoanService(parcels repository.ParcelRepository, simulations repository.SimulationRepository, log *logger.Logger) LoanService {
	return &loanService{
		parcels:     parcels,
		simulations: simulations,
		log:         log,
	}
}

func (s *loanService) Simulate(ctx context.Context, req SimulateRequest) (*SimulationResult, error) {
	parcel, err := s.parcels.FindByNumber(ctx, req.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to look up parcel: %w", err)
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}

	salePrice, err := money.Parse(parcel.SalePrice)
	if err != nil || !salePrice.IsPositive() {
		s.log.Warn("Simulation refused: unusable sale price", logger.Fields{
			"number":     parcel.Number,
			"sale_price": parcel.SalePrice,
		})
		return nil, fmt.Errorf("%w: %q", ErrInvalidSalePrice, parcel.SalePrice)
	}

	downPayment, err := money.Parse(req.DownPayment)
	if err != nil {
		return nil, fmt.Errorf("%w: down payment %q", ErrInvalidAmount, req.DownPayment)
	}
	rate, err := money.Parse(req.AnnualRatePercent)
	if err != nil {
		return nil, fmt.Errorf("%w: annual rate %q", ErrInvalidAmount, req.AnnualRatePercent)
	}

	schedule, err := loan.Amortize(loan.Terms{
		SalePrice:         salePrice,
		DownPayment:       downPayment,
		Mode:              loan.DownPaymentMode(req.DownPaymentMode),
		TermMonths:        req.TermMonths,
		AnnualRatePercent: rate,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Simulation computed", logger.Fields{
		"number":  parcel.Number,
		"payment": schedule.Payment.StringFixed(2),
		"term":    req.TermMonths,
	})

	return &SimulationResult{
		Number:            parcel.Number,
		Address:           parcel.Address,
		SalePrice:         money.Cents(salePrice).StringFixed(2),
		DownPayment:       schedule.DownPayment.StringFixed(2),
		FinancedAmount:    schedule.FinancedAmount.StringFixed(2),
		Payment:           schedule.Payment.StringFixed(2),
		TotalInterest:     schedule.TotalInterest.StringFixed(2),
		AnnualRatePercent: schedule.AnnualRatePercent.String(),
		TermMonths:        req.TermMonths,
	}, nil
}

func (s *loanService) Register(ctx context.Context, req SimulateRequest) (*SimulationResult, error) {
	result, err := s.Simulate(ctx, req)
	if err != nil {
		return nil, err
	}

	down, _ := money.Parse(result.DownPayment)
	saleValue, _ := money.Parse(result.SalePrice)
	interest, _ := money.Parse(result.TotalInterest)
	rate, _ := money.Parse(result.AnnualRatePercent)
	payment, _ := money.Parse(result.Payment)

	sim := models.Simulation{
		Number:            result.Number,
		DownPayment:       down,
		SaleValue:         saleValue,
		TotalInterest:     interest,
		AnnualRatePercent: rate,
		TermMonths:        result.TermMonths,
		Payment:           payment,
	}
	if err := s.simulations.Record(ctx, sim); err != nil {
		s.log.Error("Failed to register simulation", err, logger.Fields{"number": result.Number})
		return nil, fmt.Errorf("failed to register simulation: %w", err)
	}

	s.log.Info("Simulation registered", logger.Fields{
		"number":  result.Number,
		"payment": result.Payment,
	})
	return result, nil
}
