package models

// Client is one buyer/contact record. Clients are linked to parcels only
// by a read-time name match against the parcel's buyer column; no
// relation is stored.
type Client struct {
	RowNumber int    `json:"row_number"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	TaxID     string `json:"tax_id"`
	Notes     string `json:"notes"`
}

// ClientFromRow maps a raw worksheet row (columns from A) onto a Client.
func ClientFromRow(row []string, rowNumber int) Client {
	return Client{
		RowNumber: rowNumber,
		Name:      cell(row, ClientCols.Name),
		Phone:     cell(row, ClientCols.Phone),
		Email:     cell(row, ClientCols.Email),
		TaxID:     cell(row, ClientCols.TaxID),
		Notes:     cell(row, ClientCols.Notes),
	}
}
