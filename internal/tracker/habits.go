package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/grid"
	"github.com/digitaldrywood/habittracker/internal/journal"
	"github.com/digitaldrywood/habittracker/internal/prompt"
)

const configAppendRange = "Config!A:C"

// ManageHabits edits the Config sheet: toggling habits active or adding a
// new one.
func (t *Tracker) ManageHabits(ctx context.Context, s *Session) error {
	choice, err := t.prompt.Select("Manage habit config", []string{
		"🔁 Activate / deactivate habits",
		"➕ Add a new habit",
	})
	if err != nil {
		return err
	}

	cfg, err := t.ConfigSheet(ctx)
	if err != nil {
		return err
	}

	if choice == 1 {
		return t.AddHabit(ctx, cfg)
	}
	return t.SetHabitsActive(ctx, s, cfg)
}

// SetHabitsActive flips the Active column for the chosen Config habits.
func (t *Tracker) SetHabitsActive(ctx context.Context, s *Session, cfg grid.Grid) error {
	configHabits := grid.Habits(cfg, grid.ConfigStartRow)
	if len(configHabits) == 0 {
		t.printf("No habits in the Config sheet yet.\n")
		return nil
	}

	sel, err := pickHabits(t.prompt, "Select habits", sortedHabits(configHabits))
	if err != nil {
		return err
	}
	for h := range sel {
		sel[h] = true
	}

	active, err := t.prompt.Confirm("Set habit", "Active ✅", "Inactive 🚫")
	if err != nil {
		return err
	}

	if !active {
		habits, dates, _ := monthTables(s, s.Month())
		for _, habit := range rejectDeactivation(s.Grid, habits, dates, sel) {
			t.printf("%s has activity history. Deactivation is not allowed.\n", habit)
		}
	}

	value := cellValue(active)
	var writes []google.CellWrite
	for _, habit := range sel.Chosen() {
		row := configHabits[habit]
		writes = append(writes, google.CellWrite{
			Range: grid.Range(configSheet, grid.CellAddress(row+1, grid.ConfigActiveColumn+1)),
			Value: value,
		})
	}

	var updated int64
	if len(writes) > 0 {
		updated, err = t.sheets.BatchUpdateValues(ctx, writes)
		t.record(ctx, journal.KindHabitConfig, configSheet, "active="+value, int64(len(writes)), updated, err)
		if err != nil {
			return err
		}
	}
	t.report.Updated(updated)
	return nil
}

// rejectDeactivation unselects every habit that has at least one TRUE cell
// in the given month tables and returns the rejected names, sorted.
func rejectDeactivation(g grid.Grid, habits map[string]int, dates map[int]int, sel HabitSelection) []string {
	var rejected []string
	for _, habit := range sel.Chosen() {
		row, ok := habits[habit]
		if !ok {
			continue
		}
		for _, col := range dates {
			if g.IsTrue(row, col) {
				sel[habit] = false
				rejected = append(rejected, habit)
				break
			}
		}
	}
	return rejected
}

// AddHabit appends an active, incomplete habit to the Config sheet. It
// shows up in the next month grid that gets built.
func (t *Tracker) AddHabit(ctx context.Context, cfg grid.Grid) error {
	name, err := t.prompt.Input("New habit name", "e.g. Reading")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty: %w", prompt.ErrAborted)
	}
	if _, ok := grid.Habits(cfg, grid.ConfigStartRow)[name]; ok {
		return fmt.Errorf("habit %q already exists", name)
	}

	err = t.sheets.AppendRow(ctx, configAppendRange, []string{name, grid.False, grid.True})
	t.record(ctx, journal.KindHabitConfig, configSheet, "add "+name, 3, 0, err)
	if err != nil {
		return err
	}

	t.printf("Added %s. It will appear in the next month's grid.\n", name)
	return nil
}
