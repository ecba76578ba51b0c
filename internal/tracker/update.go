package tracker

import (
	"context"
	"fmt"

	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/grid"
	"github.com/digitaldrywood/habittracker/internal/journal"
	"github.com/digitaldrywood/habittracker/internal/report"
)

func cellValue(done bool) string {
	if done {
		return grid.True
	}
	return grid.False
}

// activityWrites builds one write per selected (habit, date) pair and
// mirrors each value into g. Pairs missing from the lookup tables are
// skipped.
func activityWrites(sheet string, g *grid.Grid, habits map[string]int, dates map[int]int, sel Selection, done bool) []google.CellWrite {
	value := cellValue(done)

	var writes []google.CellWrite
	for _, habit := range sel.Habits.Chosen() {
		row, ok := habits[habit]
		if !ok {
			continue
		}
		for _, day := range sel.Dates.Chosen() {
			col, ok := dates[day]
			if !ok {
				continue
			}
			writes = append(writes, google.CellWrite{
				Range: grid.Range(sheet, grid.CellAddress(row+1, col+1)),
				Value: value,
			})
			g.Set(row, col, value)
		}
	}
	return writes
}

// UpdateActivities writes done/skipped for every selected pair of month in
// one batch. The session grid is updated before the request is sent and is
// not rolled back if the request fails.
func (t *Tracker) UpdateActivities(ctx context.Context, s *Session, month string, sel Selection, done bool) error {
	habits, dates, ok := monthTables(s, month)
	if !ok {
		return fmt.Errorf("month %s not found in sheet %s", month, t.sheetName)
	}

	writes := activityWrites(t.sheetName, &s.Grid, habits, dates, sel, done)

	var updated int64
	if len(writes) > 0 {
		var err error
		updated, err = t.sheets.BatchUpdateValues(ctx, writes)
		t.record(ctx, journal.KindActivities, t.sheetName, month, int64(len(writes)), updated, err)
		if err != nil {
			return err
		}
	}

	t.report.Updated(updated)
	t.report.Activities(t.activities(s, month, habits, dates, sel.Habits.Chosen(), sel.Dates.Chosen()))
	return nil
}

func (t *Tracker) activities(s *Session, month string, habits map[string]int, dates map[int]int, names []string, days []int) report.Activities {
	return report.Activities{
		Month:  month,
		Sheet:  t.sheetName,
		Habits: names,
		Dates:  days,
		Done: func(habit string, day int) bool {
			row, ok := habits[habit]
			if !ok {
				return false
			}
			col, ok := dates[day]
			if !ok {
				return false
			}
			return s.Grid.IsTrue(row, col)
		},
	}
}

// RecordToday marks the chosen habits done or skipped for today.
func (t *Tracker) RecordToday(ctx context.Context, s *Session) error {
	month := s.Month()
	habits, dates, ok := monthTables(s, month)
	if !ok {
		return fmt.Errorf("month %s not found in sheet %s", month, t.sheetName)
	}

	today := s.Now.Day()
	if _, ok := dates[today]; !ok {
		return fmt.Errorf("day %d is missing from the %s header row", today, month)
	}

	selected, err := pickHabits(t.prompt, "Select habits", sortedHabits(habits))
	if err != nil {
		return err
	}
	done, err := pickDone(t.prompt)
	if err != nil {
		return err
	}

	sel := Selection{Habits: selected, Dates: DateSelection{today: false}}
	sel.SelectAll()

	return t.UpdateActivities(ctx, s, month, sel, done)
}

// BrowseHistory lets the user pick a month, habits and dates, previews the
// selection and optionally rewrites it.
func (t *Tracker) BrowseHistory(ctx context.Context, s *Session) error {
	month, err := pickMonth(t.prompt, s.Months)
	if err != nil {
		return err
	}
	habits, dates, _ := monthTables(s, month)

	habitSel, err := pickHabits(t.prompt, "Select habits", sortedHabits(habits))
	if err != nil {
		return err
	}
	dateSel, err := pickDates(t.prompt, "Select date(s)", sortedDays(dates))
	if err != nil {
		return err
	}
	sel := Selection{Habits: habitSel, Dates: dateSel}

	t.report.Activities(t.activities(s, month, habits, dates, habitSel.Keys(), dateSel.Keys()))

	submit, err := t.prompt.Confirm("Submit selected activities?", "yes", "no")
	if err != nil || !submit {
		return err
	}

	return t.BulkUpdate(ctx, s, month, sel)
}

// BulkUpdate narrows sel (or takes all of it) and writes one value to every
// remaining pair.
func (t *Tracker) BulkUpdate(ctx context.Context, s *Session, month string, sel Selection) error {
	all, err := t.prompt.Confirm("Mark all selected as done/undone? 🎯", "yes", "no")
	if err != nil {
		return err
	}

	if all {
		sel.SelectAll()
	} else {
		keepHabits, err := pickHabits(t.prompt, "Select habits", sel.Habits.Keys())
		if err != nil {
			return err
		}
		keepDates, err := pickDates(t.prompt, "Select dates", sel.Dates.Keys())
		if err != nil {
			return err
		}
		for h := range keepHabits {
			sel.Habits[h] = true
		}
		for d := range keepDates {
			sel.Dates[d] = true
		}
	}

	done, err := pickDone(t.prompt)
	if err != nil {
		return err
	}

	return t.UpdateActivities(ctx, s, month, sel, done)
}
