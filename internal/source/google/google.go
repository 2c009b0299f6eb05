// Package google reads the expense ledger from a Google Sheets tab with the
// same column contract as the CSV input.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"matumizi/internal/source"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Reader struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ source.RowReader = (*Reader)(nil)

// NewFromEnv creates a Sheets reader using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "Expenses"), plus credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS (falls back to ADC).
func NewFromEnv(ctx context.Context) (*Reader, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Reader{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credsJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	credsFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if credsJSON == "" && credsFile == "" {
		credsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	opts := []goption.ClientOption{goption.WithScopes(gsheet.SpreadsheetsReadonlyScope)}
	switch {
	case credsJSON != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(credsJSON)))
	case credsFile != "":
		opts = append(opts, goption.WithCredentialsFile(credsFile))
	default:
		slog.InfoContext(ctx, "No explicit credentials, using application default credentials")
	}
	return gsheet.NewService(ctx, opts...)
}

// ReadRows fetches the whole sheet. The first row is the header; the column
// contract is enforced exactly as for file input.
func (r *Reader) ReadRows(ctx context.Context) ([]source.Row, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %q: %w", r.sheetName, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", r.sheetName)
	}
	header := toStrings(resp.Values[0])
	records := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		records = append(records, toStrings(row))
	}
	slog.InfoContext(ctx, "Fetched ledger rows from Google Sheets",
		"spreadsheet_id", r.spreadsheetID,
		"sheet", r.sheetName,
		"rows", len(records))
	return source.FromTable(header, records)
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch s := v.(type) {
		case string:
			out[i] = s
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
