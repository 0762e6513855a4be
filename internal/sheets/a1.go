package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetter converts a 0-based column index into its A1 letter,
// e.g. 0 -> "A", 25 -> "Z", 33 -> "AH".
func ColumnLetter(idx int) string {
	col := ""
	n := idx + 1
	for n > 0 {
		rem := (n - 1) % 26
		col = string(rune('A'+rem)) + col
		n = (n - 1) / 26
	}
	return col
}

// Cell builds an A1 reference for a single cell on a named tab,
// e.g. Cell("Registros", 1, 12) -> "'Registros'!B12".
func Cell(tab string, colIdx, row int) string {
	return fmt.Sprintf("'%s'!%s%d", tab, ColumnLetter(colIdx), row)
}

// RowSpan addresses a horizontal strip of one row,
// e.g. RowSpan("Registros", 1, 5, 12) -> "'Registros'!B12:F12".
func RowSpan(tab string, fromCol, toCol, row int) string {
	return fmt.Sprintf("'%s'!%s%d:%s%d", tab, ColumnLetter(fromCol), row, ColumnLetter(toCol), row)
}

// Span addresses an open-ended column block starting at a row,
// e.g. Span("Registros", 1, 9, 9) -> "'Registros'!B9:J".
func Span(tab string, fromCol, toCol, fromRow int) string {
	return fmt.Sprintf("'%s'!%s%d:%s", tab, ColumnLetter(fromCol), fromRow, ColumnLetter(toCol))
}

// a1Range is a parsed A1 reference. Column indexes are 0-based and
// inclusive; endCol < 0 means the range is a single column reference is
// absent and endRow == 0 means the range is open-ended downward.
type a1Range struct {
	tab      string
	startCol int
	endCol   int
	startRow int // 1-based; 0 when the reference has no row (whole columns)
	endRow   int // 1-based; 0 when open-ended
}

// parseA1 understands the subset of A1 notation this service uses:
// "'Tab'!B9:F", "Tab!A1:G1", "'Tab'!C9:C", "Tab!B12", "Tab!A:E".
func parseA1(rng string) (a1Range, error) {
	bang := strings.LastIndex(rng, "!")
	if bang < 0 {
		return a1Range{}, fmt.Errorf("range %q is missing a tab name", rng)
	}
	tab := strings.Trim(rng[:bang], "'")
	ref := rng[bang+1:]
	if tab == "" || ref == "" {
		return a1Range{}, fmt.Errorf("malformed range %q", rng)
	}

	parts := strings.SplitN(ref, ":", 2)
	startCol, startRow, err := parseCellRef(parts[0])
	if err != nil {
		return a1Range{}, fmt.Errorf("malformed range %q: %w", rng, err)
	}

	out := a1Range{tab: tab, startCol: startCol, endCol: startCol, startRow: startRow, endRow: startRow}
	if len(parts) == 2 {
		endCol, endRow, err := parseCellRef(parts[1])
		if err != nil {
			return a1Range{}, fmt.Errorf("malformed range %q: %w", rng, err)
		}
		out.endCol = endCol
		out.endRow = endRow
	}
	return out, nil
}

// parseCellRef splits "AH12" into column index 33 and row 12.
// A bare column letter ("F") yields row 0.
func parseCellRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("no column letters in %q", ref)
	}

	for _, ch := range ref[:i] {
		col = col*26 + int(ch-'A') + 1
	}
	col--

	if i < len(ref) {
		row, err = strconv.Atoi(ref[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("bad row in %q", ref)
		}
	}
	return col, row, nil
}
