package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/grid"
	"github.com/digitaldrywood/habittracker/internal/journal"
)

const (
	newSheetRows    = 500
	newSheetColumns = 32
)

// Session is the snapshot one loop iteration works on. It is owned by a
// single call chain and mutated in place after successful writes.
type Session struct {
	Grid    grid.Grid
	Months  map[string]int
	SheetID int64
	Now     time.Time
}

// Month is the name of the session's current month.
func (s *Session) Month() string {
	return s.Now.Month().String()
}

// Refresh recomputes the month index after the grid changed shape.
func (s *Session) Refresh(g grid.Grid) {
	s.Grid = g
	s.Months = grid.Months(g)
}

// Start fetches the year sheet, creating it if needed, and makes sure the
// current month has a grid.
func (t *Tracker) Start(ctx context.Context) (*Session, error) {
	s, err := t.EnsureSheet(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.EnsureMonth(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureSheet loads the year sheet, adding it at the front of the
// spreadsheet when it does not exist yet.
func (t *Tracker) EnsureSheet(ctx context.Context) (*Session, error) {
	id, ok, err := t.sheets.SheetID(ctx, t.sheetName)
	if err != nil {
		return nil, setupErr("look up sheet", err)
	}

	if !ok {
		t.printf("Sheet %s not found, creating it...\n", t.sheetName)
		err := t.sheets.BatchUpdate(ctx, []*sheets.Request{
			google.AddSheet(t.sheetName, 0, newSheetRows, newSheetColumns),
		})
		t.record(ctx, journal.KindNewSheet, t.sheetName, "", 0, 0, err)
		if err != nil {
			return nil, setupErr("create sheet "+t.sheetName, err)
		}

		id, ok, err = t.sheets.SheetID(ctx, t.sheetName)
		if err != nil {
			return nil, setupErr("look up sheet", err)
		}
		if !ok {
			return nil, setupErr("create sheet "+t.sheetName, fmt.Errorf("sheet %s still missing after creation", t.sheetName))
		}
	}

	g, err := t.sheets.Values(ctx, grid.Range(t.sheetName, ""))
	if err != nil {
		return nil, setupErr("read sheet "+t.sheetName, err)
	}

	s := &Session{SheetID: id, Now: t.today()}
	s.Refresh(g)

	t.log.Debug("sheet loaded",
		zap.String("sheet", t.sheetName),
		zap.Int("rows", len(g)),
		zap.Int("months", len(s.Months)))

	return s, nil
}

// EnsureMonth builds the current month's grid when it is missing.
func (t *Tracker) EnsureMonth(ctx context.Context, s *Session) error {
	month := s.Month()
	if _, ok := s.Months[month]; ok {
		return nil
	}

	t.printf("⚡ '%s' missing from database. Initiating reconstruction protocol... 🚧\n", month)

	if err := t.BuildMonth(ctx, s); err != nil {
		return setupErr("build "+month+" grid", err)
	}
	if _, ok := s.Months[month]; !ok {
		return setupErr("build "+month+" grid", ErrIncompleteMonthBlock)
	}

	t.printf("✅ '%s' grid created successfully! You’re all set to continue. 🎉\n", month)
	return nil
}

// monthTables returns the habit and date lookups for month.
func monthTables(s *Session, month string) (map[string]int, map[int]int, bool) {
	idx, ok := s.Months[month]
	if !ok {
		return nil, nil, false
	}
	return grid.Habits(s.Grid, idx), grid.Dates(s.Grid, idx), true
}

// ShowToday prints the habits already marked done today.
func (t *Tracker) ShowToday(s *Session) {
	habits, dates, ok := monthTables(s, s.Month())
	if !ok {
		t.report.Today(nil)
		return
	}

	col, ok := dates[s.Now.Day()]
	var done []string
	if ok {
		for habit, row := range habits {
			if s.Grid.IsTrue(row, col) {
				done = append(done, habit)
			}
		}
	}
	t.report.Today(done)
}

// MonthTotal prints every habit's done count for the current month.
func (t *Tracker) MonthTotal(s *Session) {
	habits, dates, _ := monthTables(s, s.Month())

	scores := make(map[string]int, len(habits))
	for habit, row := range habits {
		scores[habit] = 0
		for _, col := range dates {
			if s.Grid.IsTrue(row, col) {
				scores[habit]++
			}
		}
	}
	t.report.MonthTotal(scores)
}
