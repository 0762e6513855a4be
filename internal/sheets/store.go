package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for remote-store failures. Handlers map these onto
// 403/401/502 responses.
var (
	ErrPermissionDenied = errors.New("remote store: permission denied")
	ErrUnauthorized     = errors.New("remote store: unauthorized")
	ErrUnavailable      = errors.New("remote store: unreachable")
	ErrUpstream         = errors.New("remote store: server error")
)

// CellWrite is one staged write: a row of values placed at the top-left
// corner of Range. Single-cell writes carry a one-element row.
type CellWrite struct {
	Range  string
	Values []string
}

// Store is the only interface the rest of the service uses to reach the
// backing spreadsheet. Ranges use A1 notation including the tab name.
// Cells travel as raw strings in both directions; no type coercion happens
// at this layer.
type Store interface {
	// ReadRange returns the rows of the addressed range. Trailing empty
	// rows and trailing empty cells within a row are trimmed, matching the
	// remote API's behavior.
	ReadRange(ctx context.Context, rng string) ([][]string, error)

	// AppendRow adds a row after the last occupied row within the range.
	AppendRow(ctx context.Context, rng string, row []string) error

	// UpdateCell overwrites a single cell.
	UpdateCell(ctx context.Context, cell string, value string) error

	// UpdateRow overwrites a horizontal strip of cells starting at the
	// range's top-left corner.
	UpdateRow(ctx context.Context, rng string, row []string) error

	// BatchUpdate applies all writes in a single remote call.
	BatchUpdate(ctx context.Context, writes []CellWrite) error

	// EnsureSheet idempotently creates a tab and seeds its header row.
	// An existing tab is left untouched.
	EnsureSheet(ctx context.Context, title string, header []string) error

	// Ping verifies the store is reachable and readable.
	Ping(ctx context.Context) error
}

// classify remaps a remote API error onto one of the sentinel errors so
// callers can branch with errors.Is without importing googleapi.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 403:
			return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		case apiErr.Code == 401:
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		case apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Auth failures from the token exchange arrive as plain errors, so the
	// message is the only signal left.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "invalid_grant"):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
