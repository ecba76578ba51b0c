// Package grid holds the in-memory snapshot of a habit sheet and the
// lookups derived from its fixed block layout.
//
// A month block is laid out as:
//
//	row r-1:  <Month>  1  2  3 ... N
//	row r:    <Habit>  TRUE FALSE ...
//	...
//	row r+k:  (empty)
//
// where r is the month index returned by Months.
package grid

import (
	"fmt"
	"strconv"
	"time"
)

// Cell values as they round-trip through the spreadsheet.
const (
	True  = "TRUE"
	False = "FALSE"
)

// Config sheet columns (zero-based).
const (
	ConfigHabitColumn    = 0
	ConfigCompleteColumn = 1
	ConfigActiveColumn   = 2

	// ConfigStartRow skips the header row of the Config sheet.
	ConfigStartRow = 1
)

// Grid is a snapshot of a sheet's cell values. Rows may be ragged because
// the Sheets API trims trailing empty cells.
type Grid [][]string

// FromValues converts a Sheets value range into a Grid.
func FromValues(values [][]interface{}) Grid {
	g := make(Grid, len(values))
	for i, row := range values {
		g[i] = make([]string, len(row))
		for j, v := range row {
			switch s := v.(type) {
			case string:
				g[i][j] = s
			case nil:
			default:
				g[i][j] = fmt.Sprint(s)
			}
		}
	}
	return g
}

// Cell returns the value at row r, column c, and false when it is missing.
func (g Grid) Cell(r, c int) (string, bool) {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return "", false
	}
	return g[r][c], true
}

// Set writes v at row r, column c, growing the grid as needed.
func (g *Grid) Set(r, c int, v string) {
	for len(*g) <= r {
		*g = append(*g, nil)
	}
	row := (*g)[r]
	for len(row) <= c {
		row = append(row, "")
	}
	row[c] = v
	(*g)[r] = row
}

// IsTrue reports whether the cell holds the literal TRUE.
func (g Grid) IsTrue(r, c int) bool {
	v, _ := g.Cell(r, c)
	return v == True
}

// Months maps each month label found in column 0 to the index of the row
// just below it. A label row is a month name followed by day 1 in column 1,
// so a habit that happens to be called "May" is not taken for a month. The
// topmost occurrence wins, since new months are inserted at the top of the
// sheet.
func Months(g Grid) map[string]int {
	months := make(map[string]int)
	for i := range g {
		if !isLabelRow(g, i) {
			continue
		}
		label, _ := g.Cell(i, 0)
		if _, seen := months[label]; !seen {
			months[label] = i + 1
		}
	}
	return months
}

func isLabelRow(g Grid, row int) bool {
	label, ok := g.Cell(row, 0)
	if !ok || !isMonthName(label) {
		return false
	}
	first, ok := g.Cell(row, 1)
	if !ok {
		return false
	}
	day, err := strconv.Atoi(first)
	return err == nil && day == 1
}

func isMonthName(s string) bool {
	for m := time.January; m <= time.December; m++ {
		if m.String() == s {
			return true
		}
	}
	return false
}

// Habits maps each column-0 label to its row, reading down from start until
// the first empty or missing cell.
func Habits(g Grid, start int) map[string]int {
	habits := make(map[string]int)
	for i := start; i < len(g); i++ {
		label, ok := g.Cell(i, 0)
		if !ok || label == "" {
			break
		}
		habits[label] = i
	}
	return habits
}

// ActiveHabits is Habits for the Config sheet: rows whose active flag is not
// TRUE, or whose complete flag is TRUE, are skipped without ending the scan.
func ActiveHabits(g Grid, start int) map[string]int {
	habits := make(map[string]int)
	for i := start; i < len(g); i++ {
		label, ok := g.Cell(i, ConfigHabitColumn)
		if !ok || label == "" {
			break
		}
		if !g.IsTrue(i, ConfigActiveColumn) || g.IsTrue(i, ConfigCompleteColumn) {
			continue
		}
		habits[label] = i
	}
	return habits
}

// Dates maps each day number in the header row (start-1) to its column,
// stopping at the first empty or non-numeric cell.
func Dates(g Grid, start int) map[int]int {
	dates := make(map[int]int)
	header := start - 1
	if header < 0 || header >= len(g) {
		return dates
	}
	for c := 1; c < len(g[header]); c++ {
		day, err := strconv.Atoi(g[header][c])
		if err != nil || day <= 0 {
			break
		}
		dates[day] = c
	}
	return dates
}
