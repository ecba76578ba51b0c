// Package report prints progress summaries. Flavor text is drawn from fixed
// phrase pools using the Reporter's random source.
package report

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	doneMarker    = "✅✅✅"
	missedMarker  = "❌❌❌"
	activityWidth = 40
	statsWidth    = 30
	rule          = "========================================================================================"
)

type Reporter struct {
	out     io.Writer
	rng     *rand.Rand
	heading lipgloss.Style
	muted   lipgloss.Style
}

func New(out io.Writer, rng *rand.Rand) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:     out,
		rng:     rng,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (r *Reporter) pick(pool []string) string {
	return pool[r.rng.IntN(len(pool))]
}

// pad right-pads s to width terminal cells.
func pad(s string, width int) string {
	n := width - runewidth.StringWidth(s)
	if n < 0 {
		n = 0
	}
	return s + strings.Repeat(" ", n)
}

// Today lists the habits completed today, or an encouragement when none are.
func (r *Reporter) Today(done []string) {
	if len(done) == 0 {
		fmt.Fprintln(r.out, "No quests completed today. The world is waiting, hero ⚔️")
		return
	}

	sorted := append([]string(nil), done...)
	sort.Strings(sorted)

	fmt.Fprintln(r.out, r.heading.Render("Today's progress:"))
	for _, habit := range sorted {
		fmt.Fprintln(r.out, strings.ReplaceAll(r.pick(todayMessages), "{habit}", habit))
	}
	fmt.Fprintln(r.out)
}

// Activities describes a habit × date selection to render.
type Activities struct {
	Month  string
	Sheet  string
	Habits []string
	Dates  []int
	Done   func(habit string, day int) bool
}

// Activities prints each selected date's habit states followed by a
// per-habit tally over the selection.
func (r *Reporter) Activities(a Activities) {
	habits := append([]string(nil), a.Habits...)
	sort.Strings(habits)
	dates := append([]int(nil), a.Dates...)
	sort.Ints(dates)

	score := make(map[string]int, len(habits))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.muted.Render(rule))

	for _, day := range dates {
		fmt.Fprintf(r.out, "%d %s %s activities:\n", day, a.Month, a.Sheet)
		for _, habit := range habits {
			marker := missedMarker
			if a.Done(habit, day) {
				marker = doneMarker
				score[habit]++
			}
			fmt.Fprintf(r.out, "  %s%s\n", pad(habit, activityWidth), marker)
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.heading.Render("Selected date stats:"))

	total := 0
	for _, habit := range habits {
		fmt.Fprintf(r.out, "  %s +%d EXP\n", pad(habit, statsWidth), score[habit])
		total += score[habit]
	}

	fmt.Fprintf(r.out, "\nQuest Summary: You’ve earned a total of %d EXP for the selected date(s)! ⚔️\n\n", total)
}

// MonthTotal prints every habit's done count for the month with a grand
// total.
func (r *Reporter) MonthTotal(scores map[string]int) {
	habits := make([]string, 0, len(scores))
	for habit := range scores {
		habits = append(habits, habit)
	}
	sort.Strings(habits)

	fmt.Fprintf(r.out, "\n%s\n%s\n\n", r.heading.Render(r.pick(openings)), r.pick(bodies))

	total := 0
	for _, habit := range habits {
		fmt.Fprintf(r.out, "%s : %d EXP\n", habit, scores[habit])
		total += scores[habit]
	}

	line := strings.ReplaceAll(r.pick(totals), "{total}", strconv.Itoa(total))
	fmt.Fprintf(r.out, "\n%s\n%s\n\n", line, r.pick(closings))
}

// Updated reports the provider's updated-cell count.
func (r *Reporter) Updated(n int64) {
	fmt.Fprintf(r.out, "%d cells updated\n", n)
}
