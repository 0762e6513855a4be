package models

// LedgerEntry is one dated money movement (cost, credit, or sale) tied to
// a parcel, read from a ledger row starting at column B. Amount stays a
// raw string; the worksheet preserves whatever currency formatting the
// operator typed.
type LedgerEntry struct {
	RowNumber      int    `json:"row_number"`
	Date           string `json:"date"`
	Number         string `json:"property_number"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
	Amount         string `json:"amount"`
	LegalParcel    string `json:"legal_parcel"`
	Address        string `json:"address"`
	Investor       string `json:"investor"`
	Notes          string `json:"notes"`
}

// LedgerEntryFromRow maps a raw row read from column B onward onto a
// LedgerEntry. rowNumber is the 1-based worksheet row.
func LedgerEntryFromRow(row []string, rowNumber int) LedgerEntry {
	// The row slice starts at column B, so indexes shift down by one
	// relative to the registry.
	at := func(col int) string { return cell(row, col-1) }
	return LedgerEntry{
		RowNumber:      rowNumber,
		Date:           at(LedgerCols.Date),
		Number:         at(LedgerCols.Number),
		Description:    at(LedgerCols.Description),
		Classification: at(LedgerCols.Classification),
		Amount:         at(LedgerCols.Amount),
		LegalParcel:    at(LedgerCols.LegalParcel),
		Address:        at(LedgerCols.Address),
		Investor:       at(LedgerCols.Investor),
		Notes:          at(LedgerCols.Notes),
	}
}
