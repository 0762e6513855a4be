package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vportella/landfolio/internal/logger"
	"github.com/vportella/landfolio/internal/models"
	"github.com/vportella/landfolio/internal/money"
	"github.com/vportella/landfolio/internal/repository"
)

// Commission modes accepted on a sale request.
const (
	CommissionPercent  = "percent"
	CommissionAbsolute = "absolute"
)

// Service-level errors
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidCommission = errors.New("invalid commission")
)

// SaleRequest carries everything a sale submission needs. Amounts arrive
// as strings because the operator types them into currency fields.
type SaleRequest struct {
	SaleDate         string            `json:"sale_date" binding:"required"`
	SalePrice        string            `json:"sale_price" binding:"required"`
	Buyer            string            `json:"buyer_name" binding:"required"`
	PaymentMethod    string            `json:"payment_method"`
	DownPayment      string            `json:"down_payment"`
	InstallmentCount int               `json:"installment_count" binding:"gte=0"`
	InstallmentValue string            `json:"installment_value"`
	CommissionMode   string            `json:"commission_mode" binding:"omitempty,oneof=percent absolute"`
	Commission       string            `json:"commission"`
	DocStamps        string            `json:"doc_stamps"`
	Costs            map[string]string `json:"costs"`
	Credits          map[string]string `json:"credits"`
}

// SaleService records parcel sales against the ledger.
type SaleService interface {
	// RecordSale validates the request, plans every ledger line of the
	// sale against a single snapshot, commits the plan in one batch, and
	// stamps the sale onto the parcel row.
	// Returns ErrParcelNotFound, ErrInvalidDate, ErrInvalidAmount, or
	// ErrInvalidCommission for rejected submissions.
	RecordSale(ctx context.Context, number string, req SaleRequest) (*repository.SaleResult, error)
}

type saleService struct {
	parcels repository.ParcelRepository
	ledger  repository.LedgerRepository
	log     *logger.Logger
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(parcels repository.ParcelRepository, ledger repository.LedgerRepository, log *logger.Logger) SaleService {
	return &saleService{
		parcels: parcels,
		ledger:  ledger,
		log:     log,
	}
}

func (s *saleService) RecordSale(ctx context.Context, number string, req SaleRequest) (*repository.SaleResult, error) {
	parcel, err := s.parcels.FindByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to look up parcel: %w", err)
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}

	// Everything is validated before the first write so a rejected
	// submission leaves the ledger untouched.
	date, err := toSheetDate(req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	salePrice, err := money.Parse(req.SalePrice)
	if err != nil || !salePrice.IsPositive() {
		return nil, fmt.Errorf("%w: sale price %q", ErrInvalidAmount, req.SalePrice)
	}

	costs, err := parseAmountMap(req.Costs)
	if err != nil {
		return nil, err
	}
	credits, err := parseAmountMap(req.Credits)
	if err != nil {
		return nil, err
	}

	commission, err := commissionAmount(req, salePrice)
	if err != nil {
		return nil, err
	}
	docStamps, err := optionalAmount(req.DocStamps)
	if err != nil {
		return nil, err
	}
	downPayment, err := optionalAmount(req.DownPayment)
	if err != nil {
		return nil, err
	}
	installment, err := optionalAmount(req.InstallmentValue)
	if err != nil {
		return nil, err
	}

	line := func(description string, amount decimal.Decimal) repository.LedgerLine {
		return repository.LedgerLine{
			Date:           date,
			Number:         parcel.Number,
			Description:    description,
			Classification: models.ClassificationSale,
			Amount:         amount,
		}
	}

	// Plan order is stable: costs, the sale value itself, commission,
	// stamps, credits. Zero lines are dropped.
	var lines []repository.LedgerLine
	for _, desc := range sortedKeys(costs) {
		lines = append(lines, line(desc, costs[desc]))
	}
	lines = append(lines, line(models.SaleValueDescription, money.Cents(salePrice)))
	if commission.IsPositive() {
		lines = append(lines, line(models.CommissionDescription, commission))
	}
	if docStamps.IsPositive() {
		lines = append(lines, line(models.DocStampsDescription, docStamps))
	}
	for _, desc := range sortedKeys(credits) {
		lines = append(lines, line(desc, credits[desc]))
	}

	terms := repository.SaleTerms{
		LegalParcel:      parcel.LegalParcel,
		Address:          parcel.Address,
		Buyer:            strings.TrimSpace(req.Buyer),
		PaymentMethod:    req.PaymentMethod,
		DownPayment:      money.Cents(downPayment),
		InstallmentCount: req.InstallmentCount,
		InstallmentValue: money.Cents(installment),
	}

	result, err := s.ledger.RecordSale(ctx, lines, terms)
	if err != nil {
		s.log.Error("Failed to record sale", err, logger.Fields{"number": parcel.Number})
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	// Stamp the sale onto the parcel row. The ledger is the source of
	// truth for the money; these cells feed the registry views.
	updates := map[int]string{
		models.ParcelCols.SaleDate:  date,
		models.ParcelCols.SalePrice: money.Cents(salePrice).StringFixed(2),
		models.ParcelCols.Buyer:     terms.Buyer,
	}
	if err := s.parcels.UpdateCells(ctx, parcel.RowNumber, updates); err != nil {
		s.log.Error("Sale recorded but parcel row not updated", err, logger.Fields{
			"number":   parcel.Number,
			"sale_row": result.SaleRow,
		})
		return nil, fmt.Errorf("failed to update parcel after sale: %w", err)
	}

	s.log.Info("Sale recorded", logger.Fields{
		"number":       parcel.Number,
		"buyer":        terms.Buyer,
		"sale_row":     result.SaleRow,
		"rows_written": result.RowsWritten,
	})
	return result, nil
}

// parseAmountMap parses a description→amount form map, dropping blank and
// zero entries. Any unparseable amount rejects the whole submission.
func parseAmountMap(raw map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(raw))
	for desc, value := range raw {
		name := strings.TrimSpace(desc)
		if name == "" || strings.TrimSpace(value) == "" {
			continue
		}
		amount, err := money.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s = %q", ErrInvalidAmount, name, value)
		}
		if amount.IsZero() {
			continue
		}
		out[name] = money.Cents(amount)
	}
	return out, nil
}

func commissionAmount(req SaleRequest, salePrice decimal.Decimal) (decimal.Decimal, error) {
	if strings.TrimSpace(req.Commission) == "" {
		return decimal.Zero, nil
	}
	value, err := money.Parse(req.Commission)
	if err != nil || value.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCommission, req.Commission)
	}

	switch req.CommissionMode {
	case CommissionPercent:
		return money.Cents(salePrice.Mul(value).Div(decimal.NewFromInt(100))), nil
	case CommissionAbsolute, "":
		return money.Cents(value), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown mode %q", ErrInvalidCommission, req.CommissionMode)
	}
}

// optionalAmount parses a blank-or-amount field. Blank means zero; a
// value that is present must parse.
func optionalAmount(value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	amount, err := money.Parse(value)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return amount, nil
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
