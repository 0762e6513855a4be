package services

import (
	"fmt"
	"strings"
	"time"
)

// The worksheet stores dates the way its operators type them, US style
// without zero padding. API input is ISO.
const (
	isoDateLayout   = "2006-01-02"
	sheetDateLayout = "1/2/2006"
)

// sheetDateLayouts covers the handwritten variants found in existing rows.
var sheetDateLayouts = []string{
	sheetDateLayout,
	"01/02/2006",
	"2006-01-02",
	"1/2/06",
}

// toSheetDate converts an ISO API date to the worksheet's format.
func toSheetDate(iso string) (string, error) {
	t, err := time.Parse(isoDateLayout, strings.TrimSpace(iso))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", iso)
	}
	return t.Format(sheetDateLayout), nil
}

// parseSheetDate reads a worksheet date cell, tolerating the formats that
// appear in historical rows.
func parseSheetDate(cell string) (time.Time, bool) {
	v := strings.TrimSpace(cell)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
