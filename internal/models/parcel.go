package models

// Parcel is one land property record, read from a single worksheet row.
// Money fields stay as raw strings at this layer; the worksheet mixes
// plain numbers with "$1,234.56"-style values and parsing is a service
// concern.
type Parcel struct {
	RowNumber    int    `json:"row_number"`
	PurchaseDate string `json:"purchase_date"`
	Number       string `json:"property_number"`
	Description  string `json:"description"`
	LegalParcel  string `json:"legal_parcel"`
	Address      string `json:"address"`
	County       string `json:"county"`
	State        string `json:"state"`
	SquareFeet   string `json:"square_feet"`
	Acres        string `json:"acres"`
	PhotoURL     string `json:"photo_url"`
	SaleDate     string `json:"sale_date"`
	SalePrice    string `json:"sale_price"`
	Profit       string `json:"profit"`
	ROI          string `json:"roi"`
	Buyer        string `json:"buyer_name"`
	BlockedFlag  string `json:"-"`
	Status       string `json:"status"`
}

// ParcelFromRow maps a raw worksheet row (columns from A) onto a Parcel.
// rowNumber is the 1-based worksheet row the data came from.
func ParcelFromRow(row []string, rowNumber int) Parcel {
	return Parcel{
		RowNumber:    rowNumber,
		PurchaseDate: cell(row, ParcelCols.PurchaseDate),
		Number:       cell(row, ParcelCols.Number),
		Description:  cell(row, ParcelCols.Description),
		LegalParcel:  cell(row, ParcelCols.LegalParcel),
		Address:      cell(row, ParcelCols.Address),
		County:       cell(row, ParcelCols.County),
		State:        cell(row, ParcelCols.State),
		SquareFeet:   cell(row, ParcelCols.SquareFeet),
		Acres:        cell(row, ParcelCols.Acres),
		PhotoURL:     cell(row, ParcelCols.PhotoURL),
		SaleDate:     cell(row, ParcelCols.SaleDate),
		SalePrice:    cell(row, ParcelCols.SalePrice),
		Profit:       cell(row, ParcelCols.Profit),
		ROI:          cell(row, ParcelCols.ROI),
		Buyer:        cell(row, ParcelCols.Buyer),
		BlockedFlag:  cell(row, ParcelCols.Blocked),
		Status:       cell(row, ParcelCols.Status),
	}
}

// Sold reports whether the parcel has a recorded sale date.
func (p Parcel) Sold() bool {
	return p.SaleDate != ""
}

// Blocked reports whether the blocked column carries the "Sim" sentinel.
func (p Parcel) Blocked() bool {
	return p.BlockedFlag == BlockedSentinel
}
