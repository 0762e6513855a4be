package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/vportella/landfolio/internal/config"
)

// Client implements Store against the Google Sheets v4 API using a
// service-account JWT built from the configured client email and key.
type Client struct {
	svc           *sheetsv4.Service
	spreadsheetID string
}

// NewClient builds the authenticated sheets service. Private keys pasted
// into env vars usually carry literal `\n` sequences; they are normalized
// here.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	key := strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(key),
		Scopes:     []string{sheetsv4.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsv4.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func (c *Client) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, classify(err))
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		rows[i] = cellsToStrings(raw)
	}
	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, rng string, row []string) error {
	body := &sheetsv4.ValueRange{Values: [][]interface{}{stringsToCells(row)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, classify(err))
	}
	return nil
}

func (c *Client) UpdateCell(ctx context.Context, cell string, value string) error {
	return c.UpdateRow(ctx, cell, []string{value})
}

func (c *Client) UpdateRow(ctx context.Context, rng string, row []string) error {
	body := &sheetsv4.ValueRange{Values: [][]interface{}{stringsToCells(row)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, classify(err))
	}
	return nil
}

func (c *Client) BatchUpdate(ctx context.Context, writes []CellWrite) error {
	if len(writes) == 0 {
		return nil
	}

	data := make([]*sheetsv4.ValueRange, 0, len(writes))
	for _, w := range writes {
		data = append(data, &sheetsv4.ValueRange{
			Range:  w.Range,
			Values: [][]interface{}{stringsToCells(w.Values)},
		})
	}

	req := &sheetsv4.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update of %d ranges: %w", len(writes), classify(err))
	}
	return nil
}

func (c *Client) EnsureSheet(ctx context.Context, title string, header []string) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet metadata: %w", classify(err))
	}

	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return nil
		}
	}

	addReq := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, addReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet %q: %w", title, classify(err))
	}

	if len(header) == 0 {
		return nil
	}
	headerRange := RowSpan(title, 0, len(header)-1, 1)
	if err := c.UpdateRow(ctx, headerRange, header); err != nil {
		return fmt.Errorf("seed header for %q: %w", title, err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("ping spreadsheet: %w", classify(err))
	}
	return nil
}

func cellsToStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}

func stringsToCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
