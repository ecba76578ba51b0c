package tracker

import (
	"sort"
	"strconv"

	"github.com/digitaldrywood/habittracker/internal/prompt"
)

// HabitSelection marks which of the offered habits an action applies to.
type HabitSelection map[string]bool

// DateSelection marks which of the offered days an action applies to.
type DateSelection map[int]bool

// Selection pairs the habits and dates chosen for one update.
type Selection struct {
	Habits HabitSelection
	Dates  DateSelection
}

// SelectAll flips every offered habit and date to selected.
func (s Selection) SelectAll() {
	for h := range s.Habits {
		s.Habits[h] = true
	}
	for d := range s.Dates {
		s.Dates[d] = true
	}
}

// Keys returns every offered habit, sorted.
func (s HabitSelection) Keys() []string {
	keys := make([]string, 0, len(s))
	for h := range s {
		keys = append(keys, h)
	}
	sort.Strings(keys)
	return keys
}

// Chosen returns the selected habits, sorted.
func (s HabitSelection) Chosen() []string {
	var out []string
	for _, h := range s.Keys() {
		if s[h] {
			out = append(out, h)
		}
	}
	return out
}

// Keys returns every offered day, sorted.
func (s DateSelection) Keys() []int {
	keys := make([]int, 0, len(s))
	for d := range s {
		keys = append(keys, d)
	}
	sort.Ints(keys)
	return keys
}

// Chosen returns the selected days, sorted.
func (s DateSelection) Chosen() []int {
	var out []int
	for _, d := range s.Keys() {
		if s[d] {
			out = append(out, d)
		}
	}
	return out
}

func sortedHabits(habits map[string]int) []string {
	names := make([]string, 0, len(habits))
	for h := range habits {
		names = append(names, h)
	}
	sort.Strings(names)
	return names
}

func sortedDays(dates map[int]int) []int {
	days := make([]int, 0, len(dates))
	for d := range dates {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// pickHabits offers habits alphabetically and returns the picks as an
// unselected HabitSelection.
func pickHabits(p prompt.Prompter, title string, habits []string) (HabitSelection, error) {
	idx, err := p.MultiSelect(title, habits)
	if err != nil {
		return nil, err
	}
	sel := make(HabitSelection, len(idx))
	for _, i := range idx {
		sel[habits[i]] = false
	}
	return sel, nil
}

// pickDates offers days in ascending order and returns the picks as an
// unselected DateSelection.
func pickDates(p prompt.Prompter, title string, days []int) (DateSelection, error) {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = strconv.Itoa(d)
	}
	idx, err := p.MultiSelect(title, labels)
	if err != nil {
		return nil, err
	}
	sel := make(DateSelection, len(idx))
	for _, i := range idx {
		sel[days[i]] = false
	}
	return sel, nil
}

// pickDone asks whether the selection should be marked done or skipped.
func pickDone(p prompt.Prompter) (bool, error) {
	return p.Confirm("Mark this habit as complete or not:", "Done ✅", "Skipped 🚫")
}

// pickMonth offers the sheet's months newest first.
func pickMonth(p prompt.Prompter, months map[string]int) (string, error) {
	names := make([]string, 0, len(months))
	for m := range months {
		names = append(names, m)
	}
	sort.Slice(names, func(i, j int) bool { return months[names[i]] < months[names[j]] })

	i, err := p.Select("Select month", names)
	if err != nil {
		return "", err
	}
	return names[i], nil
}
