package tracker

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/grid"
	"github.com/digitaldrywood/habittracker/internal/journal"
)

const (
	configSheet   = "Config"
	configRange   = "Config!A1:C100"
	configRows    = 100
	configColumns = 3
)

var (
	monthLabelStyle = google.CellStyle{
		Foreground: google.White,
		Background: google.Black,
		FontSize:   10,
		FontFamily: "Arial",
		Alignment:  "LEFT",
	}
	dateHeaderStyle = google.CellStyle{
		Foreground: google.White,
		Background: google.Green,
		FontSize:   9,
		FontFamily: "Arial",
		Alignment:  "CENTER",
	}
	bodyStyle = google.CellStyle{
		Foreground: google.Black,
		Background: google.White,
		FontSize:   9,
		FontFamily: "Arial",
		Alignment:  "CENTER",
	}
)

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// monthTemplateRequests returns the structural batch for a new month block
// of n rows (label row, one row per habit, blank separator) at the top of
// the sheet.
func monthTemplateRequests(sheetID int64, n int64, days int) []*sheets.Request {
	lastCol := int64(days) + 1
	body := google.GridRange{SheetID: sheetID, StartRow: 1, EndRow: n - 1, StartColumn: 1, EndColumn: lastCol}

	requests := []*sheets.Request{
		google.InsertRows(sheetID, 0, n),
		google.ClearFormat(sheetID, 0, n),
	}
	// No habits means no body rows to validate or format.
	if body.EndRow > body.StartRow {
		requests = append(requests, google.BooleanValidation(body))
	}
	requests = append(requests,
		google.RepeatCell(google.GridRange{SheetID: sheetID, StartRow: 0, EndRow: 1, StartColumn: 0, EndColumn: 1}, monthLabelStyle),
		google.RepeatCell(google.GridRange{SheetID: sheetID, StartRow: 0, EndRow: 1, StartColumn: 1, EndColumn: lastCol}, dateHeaderStyle),
	)
	if body.EndRow > body.StartRow {
		requests = append(requests, google.RepeatCell(body, bodyStyle))
	}
	return requests
}

// monthTemplateValues labels a new block: month name in A1, habits down
// column A in sorted order, day numbers across row 1.
func monthTemplateValues(sheet, month string, habits []string, days int) []google.CellWrite {
	writes := make([]google.CellWrite, 0, 1+len(habits)+days)
	writes = append(writes, google.CellWrite{Range: grid.Range(sheet, grid.CellAddress(1, 1)), Value: month})
	for i, habit := range habits {
		writes = append(writes, google.CellWrite{Range: grid.Range(sheet, grid.CellAddress(i+2, 1)), Value: habit})
	}
	for d := 1; d <= days; d++ {
		writes = append(writes, google.CellWrite{Range: grid.Range(sheet, grid.CellAddress(1, d+1)), Value: strconv.Itoa(d)})
	}
	return writes
}

// BuildMonth inserts and labels a grid for the session's month using the
// active habits from the Config sheet, then reloads the sheet into s.
func (t *Tracker) BuildMonth(ctx context.Context, s *Session) error {
	month := s.Month()

	cfg, err := t.ConfigSheet(ctx)
	if err != nil {
		return err
	}

	active := grid.ActiveHabits(cfg, grid.ConfigStartRow)
	habits := make([]string, 0, len(active))
	for habit := range active {
		habits = append(habits, habit)
	}
	sort.Strings(habits)

	n := int64(len(habits) + 2)
	days := daysIn(s.Now)

	err = t.sheets.BatchUpdate(ctx, monthTemplateRequests(s.SheetID, n, days))
	t.record(ctx, journal.KindTemplateStructure, t.sheetName, month, 0, 0, err)
	if err != nil {
		return fmt.Errorf("failed to insert %s grid: %w", month, err)
	}

	writes := monthTemplateValues(t.sheetName, month, habits, days)
	updated, err := t.sheets.BatchUpdateValues(ctx, writes)
	t.record(ctx, journal.KindTemplateValues, t.sheetName, month, int64(len(writes)), updated, err)
	if err != nil {
		t.log.Error("month grid left unlabeled", zap.String("month", month), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrIncompleteMonthBlock, err)
	}
	t.report.Updated(updated)

	if err := t.sheets.BatchUpdate(ctx, []*sheets.Request{
		google.AutoResizeColumns(s.SheetID, 0, newSheetColumns),
	}); err != nil {
		t.log.Warn("failed to resize columns", zap.Error(err))
	}

	g, err := t.sheets.Values(ctx, grid.Range(t.sheetName, ""))
	if err != nil {
		return fmt.Errorf("failed to reload %s after building %s: %w", t.sheetName, month, err)
	}
	s.Refresh(g)

	return nil
}

// ConfigSheet reads the habit configuration, creating the Config sheet with
// its header and checkbox columns first if it does not exist.
func (t *Tracker) ConfigSheet(ctx context.Context) (grid.Grid, error) {
	_, ok, err := t.sheets.SheetID(ctx, configSheet)
	if err != nil {
		return nil, err
	}

	if !ok {
		t.printf("Config sheet not found, creating it...\n")
		if err := t.createConfigSheet(ctx); err != nil {
			return nil, err
		}
	}

	g, err := t.sheets.Values(ctx, configRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read habit config: %w", err)
	}
	return g, nil
}

func (t *Tracker) createConfigSheet(ctx context.Context) error {
	err := t.sheets.BatchUpdate(ctx, []*sheets.Request{
		google.AddSheet(configSheet, 1, configRows, configColumns),
	})
	t.record(ctx, journal.KindNewSheet, configSheet, "", 0, 0, err)
	if err != nil {
		return fmt.Errorf("failed to create Config sheet: %w", err)
	}

	id, ok, err := t.sheets.SheetID(ctx, configSheet)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("config sheet still missing after creation")
	}

	if err := t.sheets.BatchUpdate(ctx, []*sheets.Request{
		google.BooleanValidation(google.GridRange{SheetID: id, StartRow: 1, EndRow: configRows, StartColumn: 1, EndColumn: configColumns}),
		google.RepeatCell(google.GridRange{SheetID: id, StartRow: 0, EndRow: 1, StartColumn: 0, EndColumn: configColumns}, monthLabelStyle),
	}); err != nil {
		t.log.Warn("failed to format Config sheet", zap.Error(err))
	}

	header := []string{"Habit", "Complete", "Active"}
	writes := make([]google.CellWrite, len(header))
	for i, h := range header {
		writes[i] = google.CellWrite{Range: grid.Range(configSheet, grid.CellAddress(1, i+1)), Value: h}
	}
	updated, err := t.sheets.BatchUpdateValues(ctx, writes)
	t.record(ctx, journal.KindHabitConfig, configSheet, "header", int64(len(writes)), updated, err)
	if err != nil {
		return fmt.Errorf("failed to write Config header: %w", err)
	}

	t.printf("Add your habits to the Config sheet (Habit, Complete, Active) or via \"Manage habit config\".\n")
	return nil
}
