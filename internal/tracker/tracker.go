package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"github.com/digitaldrywood/habittracker/internal/google"
	"github.com/digitaldrywood/habittracker/internal/grid"
	"github.com/digitaldrywood/habittracker/internal/journal"
	"github.com/digitaldrywood/habittracker/internal/prompt"
	"github.com/digitaldrywood/habittracker/internal/report"
)

// Spreadsheet is the subset of the Sheets API the tracker uses.
type Spreadsheet interface {
	SheetID(ctx context.Context, title string) (int64, bool, error)
	Values(ctx context.Context, rng string) (grid.Grid, error)
	BatchUpdateValues(ctx context.Context, writes []google.CellWrite) (int64, error)
	BatchUpdate(ctx context.Context, requests []*sheets.Request) error
	AppendRow(ctx context.Context, rng string, values []string) error
}

// Journal records every batch sent to the spreadsheet.
type Journal interface {
	Record(ctx context.Context, b *journal.Batch) error
	Last(ctx context.Context, kind journal.Kind, sheet string) (*journal.Batch, error)
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, *journal.Batch) error { return nil }
func (nopJournal) Last(context.Context, journal.Kind, string) (*journal.Batch, error) {
	return nil, nil
}

// Options wires a Tracker. Sheets, SheetName and Prompter are required; the
// rest default to a no-op journal, a nop logger, stdout, UTC, the wall clock
// and a time-seeded random source.
type Options struct {
	Sheets    Spreadsheet
	SheetName string
	Prompter  prompt.Prompter
	Journal   Journal
	Logger    *zap.Logger
	Out       io.Writer
	Location  *time.Location
	Now       func() time.Time
	Rand      *rand.Rand
}

type Tracker struct {
	sheets    Spreadsheet
	sheetName string
	prompt    prompt.Prompter
	journal   Journal
	log       *zap.Logger
	out       io.Writer
	report    *report.Reporter
	loc       *time.Location
	now       func() time.Time
	session   string
}

func NewTracker(opts Options) *Tracker {
	t := &Tracker{
		sheets:    opts.Sheets,
		sheetName: opts.SheetName,
		prompt:    opts.Prompter,
		journal:   opts.Journal,
		log:       opts.Logger,
		out:       opts.Out,
		loc:       opts.Location,
		now:       opts.Now,
		session:   uuid.NewString(),
	}
	if t.journal == nil {
		t.journal = nopJournal{}
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	if t.out == nil {
		t.out = os.Stdout
	}
	if t.loc == nil {
		t.loc = time.UTC
	}
	if t.now == nil {
		t.now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	t.report = report.New(t.out, rng)
	return t
}

func (t *Tracker) today() time.Time {
	return t.now().In(t.loc)
}

func (t *Tracker) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// record journals a batch; journal failures never abort the action.
func (t *Tracker) record(ctx context.Context, kind journal.Kind, sheet, label string, requested, updated int64, err error) {
	b := &journal.Batch{
		Session:        t.session,
		Kind:           kind,
		Sheet:          sheet,
		Label:          label,
		CellsRequested: requested,
		CellsUpdated:   updated,
		OK:             err == nil,
		CreatedAt:      t.now(),
	}
	if err != nil {
		b.Error = sql.NullString{String: err.Error(), Valid: true}
	}
	if jerr := t.journal.Record(ctx, b); jerr != nil {
		t.log.Warn("failed to journal batch",
			zap.String("session", t.session),
			zap.String("kind", string(kind)),
			zap.Error(jerr))
	}
}

type menuItem struct {
	label string
	run   func(ctx context.Context, s *Session) error
}

// Run drives the interactive loop until the user exits. Only setup errors
// are returned; failed actions are reported and the menu is shown again.
func (t *Tracker) Run(ctx context.Context) error {
	t.log.Debug("session started", zap.String("session", t.session), zap.String("sheet", t.sheetName))
	t.printf("%s\n\n", t.today().Format("2006-01-02 15:04"))
	t.warnIncompleteTemplate(ctx)

	exit := errors.New("exit")
	menu := []menuItem{
		{"✅ Record today's accomplishments", t.RecordToday},
		{"🔍 Browse & improve previous entries", t.BrowseHistory},
		{"📊 Show total progress this month", func(_ context.Context, s *Session) error {
			t.MonthTotal(s)
			return nil
		}},
		{"⚙️  Manage habit config", t.ManageHabits},
		{"🌙 Rest for today (exit)", func(context.Context, *Session) error { return exit }},
	}
	labels := make([]string, len(menu))
	for i, item := range menu {
		labels[i] = item.label
	}

	for {
		s, err := t.Start(ctx)
		if err != nil {
			return err
		}

		t.printf("\n")
		t.ShowToday(s)
		t.printf("\n")

		choice, err := t.prompt.Select("How would you like to start?", labels)
		if errors.Is(err, prompt.ErrAborted) {
			break
		}
		if err != nil {
			return setupErr("menu", err)
		}

		err = menu[choice].run(ctx, s)
		switch {
		case errors.Is(err, exit):
			t.printf("\nSee you tomorrow!\n")
			return nil
		case IsSetup(err):
			return err
		case errors.Is(err, prompt.ErrAborted):
			t.printf("Cancelled.\n")
		case err != nil:
			t.printf("Update failed: %v\n", err)
			t.log.Error("action failed", zap.String("action", labels[choice]), zap.Error(err))
		}

		wrapUp, err := t.prompt.Confirm("Wrap up your session? 📘", "Yes ✅", "No 🚫")
		if err != nil || wrapUp {
			break
		}
	}

	t.printf("\nSee you tomorrow!\n")
	return nil
}

// Summary prints the current month's totals without entering the menu.
func (t *Tracker) Summary(ctx context.Context) error {
	s, err := t.Start(ctx)
	if err != nil {
		return err
	}
	t.MonthTotal(s)
	return nil
}

func (t *Tracker) warnIncompleteTemplate(ctx context.Context) {
	last, err := t.journal.Last(ctx, journal.KindTemplateValues, t.sheetName)
	if err != nil {
		t.log.Warn("failed to read journal", zap.Error(err))
		return
	}
	if last != nil && !last.OK {
		// A rebuild inserts its rows above the unlabeled ones, which stay
		// behind until someone deletes them in the sheet.
		t.printf("⚠️  The %s grid created on %s was left without labels (%s).\n"+
			"   Its blank rows stay in sheet %s below any grid built later. Delete them by hand in the spreadsheet.\n\n",
			last.Label, last.CreatedAt.In(t.loc).Format("2006-01-02 15:04"), last.Error.String, t.sheetName)
	}
}
