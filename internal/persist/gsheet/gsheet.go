// Package gsheet mirrors collection CSVs into a Google Spreadsheet, one tab
// per file. It is an export-only adapter driven by the worker; the primary
// store never waits on it.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"budgetbook/internal/persist"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ persist.Writer = (*Client)(nil)

// NewFromEnv creates a Sheets export client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credentialsJSON := []byte(strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")))
	if len(credentialsJSON) == 0 {
		file := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
		if file == "" {
			file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		}
		if file == "" {
			return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
		}
		var err error
		credentialsJSON, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Write replaces the tab named after fileName (bills.csv -> bills) with the
// CSV content, creating the tab on first export.
func (c *Client) Write(ctx context.Context, fileName, content string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	tab := tabName(fileName)
	values := csvToValues(content)

	if err := c.ensureTab(ctx, tab); err != nil {
		return fmt.Errorf("ensure tab %s: %w", tab, err)
	}
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, tab+"!A:ZZ", &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear tab %s: %w", tab, err)
	}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, tab+"!A1", &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update tab %s: %w", tab, err)
	}

	slog.InfoContext(ctx, "Exported collection to spreadsheet",
		"tab", tab,
		"rows", len(values))
	return nil
}

func (c *Client) ensureTab(ctx context.Context, tab string) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return nil
		}
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	return nil
}

func tabName(fileName string) string {
	return strings.TrimSuffix(fileName, ".csv")
}

// csvToValues splits serialized CSV into the Sheets values matrix. The
// format has no quoting, so a plain split matches the codec exactly.
func csvToValues(content string) [][]interface{} {
	var values [][]interface{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		row := make([]interface{}, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		values = append(values, row)
	}
	return values
}
