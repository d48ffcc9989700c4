package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const sheetsBaseURL = "https://sheets.googleapis.com/v4"

// SheetsClient reads the rota grid from a Google Spreadsheet. It
// implements the parser's GridSource.
type SheetsClient struct {
	httpClient    *http.Client
	spreadsheetID string
	rangeName     string
}

func NewSheetsClient(ctx context.Context, keyFile, spreadsheetID, rangeName string) (*SheetsClient, error) {
	httpClient, err := newServiceAccountClient(ctx, keyFile, scopeSheetsReadonly)
	if err != nil {
		return nil, err
	}
	return &SheetsClient{
		httpClient:    httpClient,
		spreadsheetID: spreadsheetID,
		rangeName:     rangeName,
	}, nil
}

// ReadGrid fetches the configured range. Rows come back ragged: trailing
// empty cells are simply absent, which the parser treats as empty.
func (c *SheetsClient) ReadGrid(ctx context.Context) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		sheetsBaseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.rangeName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("read spreadsheet: %s: %s", resp.Status, body)
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode spreadsheet response: %w", err)
	}

	slog.Debug("Fetched spreadsheet range", "spreadsheet", c.spreadsheetID, "range", c.rangeName, "rows", len(payload.Values))
	return payload.Values, nil
}
