package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/vportella/landfolio/internal/sheets"
)

// Tab names and fixed layout anchors of the backing spreadsheet. The
// worksheet predates this service and keeps its Portuguese tab names.
const (
	ParcelSheet     = "Cadastro de Propriedades"
	LedgerSheet     = "Registros"
	ClientSheet     = "Cliente"
	SimulationSheet = "Simulacoes"
	SettingsSheet   = "Configurações"

	ParcelHeaderRow = 8
	ParcelFirstRow  = 9
	LedgerFirstRow  = 9
	ClientFirstRow  = 2

	// SettingsOptionsFirstRow is where the ledger description dropdown
	// options start in the settings tab, column B.
	SettingsOptionsFirstRow = 5
)

// Ledger description and classification literals shared with the worksheet.
const (
	SaleValueDescription    = "Valor da Venda"
	CommissionDescription   = "State Commission"
	DocStampsDescription    = "Documents Stamps"
	ClassificationSale      = "Venda"
	ClassificationAuction   = "Leilão"
	ClassificationProperty  = "Propriedade"
	BlockedSentinel         = "Sim"
)

// ParcelColumnSet is the single source of truth for where each parcel
// field lives. All offsets are 0-based from column A.
type ParcelColumnSet struct {
	PurchaseDate int
	Number       int
	Description  int
	LegalParcel  int
	Address      int
	County       int
	State        int
	SquareFeet   int
	Acres        int
	PhotoURL     int
	SaleDate     int
	SalePrice    int
	Profit       int
	ROI          int
	Buyer        int
	Blocked      int
	Status       int
}

// ParcelCols pins the worksheet's current layout.
var ParcelCols = ParcelColumnSet{
	PurchaseDate: 1,
	Number:       2,
	Description:  3,
	LegalParcel:  4,
	Address:      5,
	County:       6,
	State:        7,
	SquareFeet:   8,
	Acres:        9,
	PhotoURL:     33,
	SaleDate:     34,
	SalePrice:    50,
	Profit:       51,
	ROI:          52,
	Buyer:        58,
	Blocked:      60,
	Status:       61,
}

// ParcelCreateFields lists the registration-form fields in worksheet
// order, columns B through AG.
var ParcelCreateFields = []string{
	"purchase_date", "property_number", "description", "legal_parcel",
	"address", "county", "state", "square_feet", "acres", "zoning_code",
	"zoning_type", "lot_measurements", "property_tax", "water",
	"water_description", "electricity", "electricity_description", "sewer",
	"sewer_description", "flood_zone", "property_description", "zone_notes",
	"minimum_lot_area", "coordinates", "legal_description", "hoa",
	"hoa_name", "hoa_value", "hoa_period", "optional_notes", "images",
	"documents",
}

// parcelFieldIndex maps every externally-updatable field name to its
// column. Updates addressed by anything else are rejected, so a typo can
// never land in an unrelated column.
var parcelFieldIndex = buildParcelFieldIndex()

func buildParcelFieldIndex() map[string]int {
	idx := make(map[string]int, len(ParcelCreateFields)+6)
	for i, name := range ParcelCreateFields {
		idx[name] = i + 1 // create fields start at column B
	}
	idx["photo_url"] = ParcelCols.PhotoURL
	idx["sale_date"] = ParcelCols.SaleDate
	idx["sale_price"] = ParcelCols.SalePrice
	idx["buyer_name"] = ParcelCols.Buyer
	idx["blocked"] = ParcelCols.Blocked
	idx["status"] = ParcelCols.Status
	return idx
}

// ParcelFieldColumn resolves an updatable field name to its column index.
func ParcelFieldColumn(field string) (int, bool) {
	idx, ok := parcelFieldIndex[field]
	return idx, ok
}

// expectedParcelHeaders pins the header text of a few anchor columns.
// If any of these drift the whole positional mapping is suspect, so the
// service refuses to start rather than silently reading the wrong cells.
var expectedParcelHeaders = map[int]string{
	ParcelCols.PurchaseDate: "Data da Compra",
	ParcelCols.Number:       "Número da Propriedade",
	ParcelCols.LegalParcel:  "Parcel",
	ParcelCols.Address:      "Endereço",
	ParcelCols.SalePrice:    "Valor da Venda",
}

// ExpectedParcelHeaderRow returns the full header row the registry
// expects, with only the anchor columns populated. Used to seed dev
// fixtures.
func ExpectedParcelHeaderRow() []string {
	row := make([]string, ParcelCols.Status+1)
	for idx, label := range expectedParcelHeaders {
		row[idx] = label
	}
	return row
}

// VerifyParcelHeader reads the parcel header row and fails when an anchor
// column no longer carries the expected label.
func VerifyParcelHeader(ctx context.Context, store sheets.Store) error {
	rng := sheets.RowSpan(ParcelSheet, 0, ParcelCols.Status, ParcelHeaderRow)
	rows, err := store.ReadRange(ctx, rng)
	if err != nil {
		return fmt.Errorf("read parcel header: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("parcel header row %d is empty", ParcelHeaderRow)
	}

	header := rows[0]
	for idx, want := range expectedParcelHeaders {
		var got string
		if idx < len(header) {
			got = strings.TrimSpace(header[idx])
		}
		if !strings.EqualFold(got, want) {
			return fmt.Errorf("parcel header drift at column %s: expected %q, found %q",
				sheets.ColumnLetter(idx), want, got)
		}
	}
	return nil
}

// LedgerColumnSet maps ledger fields to their 0-based columns.
type LedgerColumnSet struct {
	Date             int
	Number           int
	Description      int
	Classification   int
	Amount           int
	LegalParcel      int
	Address          int
	Investor         int
	Notes            int
	Buyer            int
	PaymentMethod    int
	DownPayment      int
	InstallmentCount int
	InstallmentValue int
}

// LedgerCols pins the ledger tab's layout. Columns Q through U are only
// populated on the sale-value row.
var LedgerCols = LedgerColumnSet{
	Date:             1,
	Number:           2,
	Description:      3,
	Classification:   4,
	Amount:           5,
	LegalParcel:      6,
	Address:          7,
	Investor:         8,
	Notes:            9,
	Buyer:            16,
	PaymentMethod:    17,
	DownPayment:      18,
	InstallmentCount: 19,
	InstallmentValue: 20,
}

// ClientColumnSet maps client fields to their 0-based columns.
type ClientColumnSet struct {
	Name  int
	Phone int
	Email int
	TaxID int
	Notes int
}

// ClientCols pins the client tab's layout.
var ClientCols = ClientColumnSet{Name: 0, Phone: 1, Email: 2, TaxID: 3, Notes: 4}

// SimulationHeader is seeded into the simulations tab when it is created.
var SimulationHeader = []string{
	"Propriedade",
	"Entrada (USD)",
	"Valor de Venda (USD)",
	"Total de Juros (USD)",
	"Taxa de Juros (%)",
	"Número de Parcelas",
	"Parcela (USD)",
}

// cell returns the value at idx or "" when the ragged row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
