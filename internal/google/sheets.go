package google

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/digitaldrywood/habittracker/internal/grid"
)

const valueInputOption = "USER_ENTERED"

type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
	log           *zap.Logger
}

// CellWrite is a single-cell value write, Range being a sheet-qualified A1
// address.
type CellWrite struct {
	Range string
	Value string
}

func NewSheetsClient(service *sheets.Service, spreadsheetID string, log *zap.Logger) *SheetsClient {
	return &SheetsClient{
		service:       service,
		spreadsheetID: spreadsheetID,
		log:           log,
	}
}

// Title returns the spreadsheet's title.
func (s *SheetsClient) Title(ctx context.Context) (string, error) {
	resp, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", s.wrap("unable to access spreadsheet", err)
	}
	return resp.Properties.Title, nil
}

// SheetID looks up a sheet by title.
func (s *SheetsClient) SheetID(ctx context.Context, title string) (int64, bool, error) {
	resp, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties(sheetId,title)").
		Context(ctx).
		Do()
	if err != nil {
		return 0, false, s.wrap("unable to list sheets", err)
	}

	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, true, nil
		}
	}
	return 0, false, nil
}

// Values fetches rng (a sheet name or A1 range) as a grid of formatted strings.
func (s *SheetsClient) Values(ctx context.Context, rng string) (grid.Grid, error) {
	s.log.Debug("get values", zap.String("range", rng))

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		Context(ctx).
		Do()
	if err != nil {
		return nil, s.wrap(fmt.Sprintf("unable to retrieve data from %s", rng), err)
	}

	return grid.FromValues(resp.Values), nil
}

// BatchUpdateValues sends every write in one request and returns the number
// of cells the API reports as updated.
func (s *SheetsClient) BatchUpdateValues(ctx context.Context, writes []CellWrite) (int64, error) {
	data := make([]*sheets.ValueRange, 0, len(writes))
	for _, w := range writes {
		data = append(data, &sheets.ValueRange{
			Range:  w.Range,
			Values: [][]interface{}{{w.Value}},
		})
	}

	s.log.Debug("batch update values", zap.Int("cells", len(writes)))

	resp, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return 0, s.wrap("unable to update values", err)
	}

	return resp.TotalUpdatedCells, nil
}

// BatchUpdate applies structural requests (row inserts, formatting,
// validation, new sheets) in one request.
func (s *SheetsClient) BatchUpdate(ctx context.Context, requests []*sheets.Request) error {
	s.log.Debug("batch update spreadsheet", zap.Int("requests", len(requests)))

	_, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return s.wrap("unable to update spreadsheet", err)
	}

	return nil
}

// AppendRow appends one row of values after the last row of rng.
func (s *SheetsClient) AppendRow(ctx context.Context, rng string, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	s.log.Debug("append row", zap.String("range", rng), zap.Strings("values", values))

	_, err := s.service.Spreadsheets.Values.Append(
		s.spreadsheetID,
		rng,
		&sheets.ValueRange{Values: [][]interface{}{row}},
	).ValueInputOption(valueInputOption).Context(ctx).Do()
	if err != nil {
		return s.wrap(fmt.Sprintf("unable to append data to %s", rng), err)
	}

	return nil
}

func (s *SheetsClient) wrap(msg string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		s.log.Warn(msg, zap.Int("status", gerr.Code), zap.String("reason", gerr.Message))
	} else {
		s.log.Warn(msg, zap.Error(err))
	}
	return fmt.Errorf("%s: %w", msg, err)
}
