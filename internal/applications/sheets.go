package applications

import (
	"context"
	"fmt"

	"github.com/msme-awards/adjudication-api/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient is the Google Sheets implementation of TabularStore.
type SheetsClient struct {
	srv           *sheets.Service
	spreadsheetID string
	readRange     string
}

func NewSheetsClient(ctx context.Context, cfg *config.Config) (*SheetsClient, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsClient{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.SheetRange,
	}, nil
}

func (c *SheetsClient) ReadAll() ([]string, [][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, nil
	}

	headers := stringRow(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, stringRow(raw))
	}
	return headers, rows, nil
}

func (c *SheetsClient) UpdateCell(rng, value string) error {
	body := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", rng, err)
	}
	return nil
}

func (c *SheetsClient) BatchUpdate(updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheets.ValueRange{
			Range:  u.Range,
			Values: [][]interface{}{{u.Value}},
		})
	}
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	_, err := c.srv.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Do()
	if err != nil {
		return fmt.Errorf("failed to batch update spreadsheet: %w", err)
	}
	return nil
}

func stringRow(raw []interface{}) []string {
	row := make([]string, len(raw))
	for i, v := range raw {
		row[i] = fmt.Sprint(v)
	}
	return row
}
