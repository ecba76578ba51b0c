// Package journal keeps a local log of every batch sent to the spreadsheet,
// so a half-applied month template can be spotted on the next run.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Kind string

const (
	KindNewSheet          Kind = "new-sheet"
	KindTemplateStructure Kind = "template-structure"
	KindTemplateValues    Kind = "template-values"
	KindActivities        Kind = "activities"
	KindHabitConfig       Kind = "habit-config"
)

// Batch is one request sent to the spreadsheet.
type Batch struct {
	ID             int64
	Session        string // groups the batches of one run
	Kind           Kind
	Sheet          string
	Label          string
	CellsRequested int64
	CellsUpdated   int64
	OK             bool
	Error          sql.NullString
	CreatedAt      time.Time
}

type DB struct {
	conn *sql.DB
}

func New(path string, log *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(log); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func (db *DB) migrate(log *zap.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{log.Sugar()})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db.conn, "migrations"); err != nil {
		return err
	}

	return nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Record stores b and fills in its ID. A zero CreatedAt is set to now.
func (db *DB) Record(ctx context.Context, b *Batch) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	result, err := db.conn.ExecContext(ctx, `
		INSERT INTO sync_batches (session, kind, sheet, label, cells_requested, cells_updated, ok, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.Session, string(b.Kind), b.Sheet, b.Label, b.CellsRequested, b.CellsUpdated, b.OK, b.Error, b.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record batch: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	b.ID = id
	return nil
}

// Recent returns up to n batches, newest first.
func (db *DB) Recent(ctx context.Context, n int) ([]Batch, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, session, kind, sheet, label, cells_requested, cells_updated, ok, error, created_at
		FROM sync_batches ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, *b)
	}
	return batches, rows.Err()
}

// Last returns the newest batch of the given kind for sheet, or nil.
func (db *DB) Last(ctx context.Context, kind Kind, sheet string) (*Batch, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, session, kind, sheet, label, cells_requested, cells_updated, ok, error, created_at
		FROM sync_batches WHERE kind = ? AND sheet = ? ORDER BY id DESC LIMIT 1
	`, string(kind), sheet)

	b, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return b, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(s scanner) (*Batch, error) {
	var (
		b       Batch
		kind    string
		created string
	)
	err := s.Scan(&b.ID, &b.Session, &kind, &b.Sheet, &b.Label, &b.CellsRequested, &b.CellsUpdated, &b.OK, &b.Error, &created)
	if err != nil {
		return nil, err
	}

	b.Kind = Kind(kind)
	b.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	return &b, nil
}

type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Errorf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Debugf(format, v...) }
