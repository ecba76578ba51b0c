package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"google.golang.org/api/sheets/v4"

	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/grid"
	"github.com/digitaldrywood/habittracker/internal/prompt"
)

// fakeSheets is an in-memory spreadsheet that understands the handful of
// requests the tracker sends.
type fakeSheets struct {
	grids  map[string]grid.Grid
	ids    map[string]int64
	nextID int64

	writes   [][]google.CellWrite
	batches  [][]*sheets.Request
	appended [][]string

	failValues func(writes []google.CellWrite) error
	failBatch  func(requests []*sheets.Request) error
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		grids:  make(map[string]grid.Grid),
		ids:    make(map[string]int64),
		nextID: 100,
	}
}

func (f *fakeSheets) addSheet(title string, g grid.Grid) int64 {
	id := f.nextID
	f.nextID++
	f.grids[title] = g
	f.ids[title] = id
	return id
}

func (f *fakeSheets) titleFor(id int64) string {
	for title, sid := range f.ids {
		if sid == id {
			return title
		}
	}
	return ""
}

// splitRange returns the unquoted sheet name and the A1 part of rng.
func splitRange(rng string) (string, string) {
	sheet, address, _ := strings.Cut(rng, "!")
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet, address
}

// parseCell turns "F2" into zero-based (row, col).
func parseCell(address string) (int, int, error) {
	i := strings.IndexFunc(address, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return 0, 0, fmt.Errorf("bad cell %q", address)
	}
	col, err := grid.ColumnNumber(address[:i])
	if err != nil {
		return 0, 0, err
	}
	row, err := strconv.Atoi(address[i:])
	if err != nil {
		return 0, 0, err
	}
	return row - 1, col - 1, nil
}

func (f *fakeSheets) SheetID(_ context.Context, title string) (int64, bool, error) {
	id, ok := f.ids[title]
	return id, ok, nil
}

func (f *fakeSheets) Values(_ context.Context, rng string) (grid.Grid, error) {
	sheet, _ := splitRange(rng)
	g, ok := f.grids[sheet]
	if !ok {
		return nil, fmt.Errorf("unable to parse range: %s", rng)
	}
	out := make(grid.Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeSheets) BatchUpdateValues(_ context.Context, writes []google.CellWrite) (int64, error) {
	f.writes = append(f.writes, writes)
	if f.failValues != nil {
		if err := f.failValues(writes); err != nil {
			return 0, err
		}
	}
	for _, w := range writes {
		sheet, address := splitRange(w.Range)
		g, ok := f.grids[sheet]
		if !ok {
			return 0, fmt.Errorf("no sheet %s", sheet)
		}
		row, col, err := parseCell(address)
		if err != nil {
			return 0, err
		}
		g.Set(row, col, w.Value)
		f.grids[sheet] = g
	}
	return int64(len(writes)), nil
}

func (f *fakeSheets) BatchUpdate(_ context.Context, requests []*sheets.Request) error {
	f.batches = append(f.batches, requests)
	if f.failBatch != nil {
		if err := f.failBatch(requests); err != nil {
			return err
		}
	}
	for _, req := range requests {
		switch {
		case req.AddSheet != nil:
			f.addSheet(req.AddSheet.Properties.Title, grid.Grid{})
		case req.InsertDimension != nil:
			r := req.InsertDimension.Range
			title := f.titleFor(r.SheetId)
			g := f.grids[title]
			n := int(r.EndIndex - r.StartIndex)
			blank := make(grid.Grid, n)
			for i := range blank {
				blank[i] = []string{}
			}
			at := int(r.StartIndex)
			g = append(g[:at:at], append(blank, g[at:]...)...)
			f.grids[title] = g
		}
	}
	return nil
}

func (f *fakeSheets) AppendRow(_ context.Context, rng string, values []string) error {
	sheet, _ := splitRange(rng)
	f.appended = append(f.appended, values)
	f.grids[sheet] = append(f.grids[sheet], append([]string(nil), values...))
	return nil
}

func (f *fakeSheets) lastWrites() []google.CellWrite {
	if len(f.writes) == 0 {
		return nil
	}
	return f.writes[len(f.writes)-1]
}

// scripted answers prompts from a fixed queue. Each answer's type must match
// the prompt asked: int for Select, []int for MultiSelect, bool for Confirm,
// string for Input, or an error for any of them.
type scripted struct {
	t       *testing.T
	answers []any
	titles  []string
	options [][]string
}

var _ prompt.Prompter = (*scripted)(nil)

func script(t *testing.T, answers ...any) *scripted {
	return &scripted{t: t, answers: answers}
}

func (s *scripted) next(title string, options []string) any {
	s.t.Helper()
	s.titles = append(s.titles, title)
	s.options = append(s.options, options)
	if len(s.answers) == 0 {
		s.t.Fatalf("unexpected prompt %q", title)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a
}

func (s *scripted) Select(title string, options []string) (int, error) {
	s.t.Helper()
	switch a := s.next(title, options).(type) {
	case int:
		return a, nil
	case error:
		return 0, a
	default:
		s.t.Fatalf("prompt %q: want int answer, got %T", title, a)
		return 0, nil
	}
}

func (s *scripted) MultiSelect(title string, options []string) ([]int, error) {
	s.t.Helper()
	switch a := s.next(title, options).(type) {
	case []int:
		return a, nil
	case error:
		return nil, a
	default:
		s.t.Fatalf("prompt %q: want []int answer, got %T", title, a)
		return nil, nil
	}
}

func (s *scripted) Confirm(title, yes, no string) (bool, error) {
	s.t.Helper()
	switch a := s.next(title, []string{yes, no}).(type) {
	case bool:
		return a, nil
	case error:
		return false, a
	default:
		s.t.Fatalf("prompt %q: want bool answer, got %T", title, a)
		return false, nil
	}
}

func (s *scripted) Input(title, placeholder string) (string, error) {
	s.t.Helper()
	switch a := s.next(title, nil).(type) {
	case string:
		return a, nil
	case error:
		return "", a
	default:
		s.t.Fatalf("prompt %q: want string answer, got %T", title, a)
		return "", nil
	}
}

func (s *scripted) done() {
	s.t.Helper()
	if len(s.answers) != 0 {
		s.t.Errorf("%d scripted answers left unused", len(s.answers))
	}
}
