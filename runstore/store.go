// Package runstore persists finished runs (parameters, per-step
// diagnostics and the selected plan) in a SQLite database.
package runstore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvdistrict/chain"
	"github.com/katalvlaran/lvdistrict/redistrict"
)

//go:embed schema.sql
var schema string

// Sentinel errors.
var (
	// ErrNotFound indicates an unknown run ID.
	ErrNotFound = errors.New("runstore: run not found")

	// ErrNilResult indicates SaveRun without a result.
	ErrNilResult = errors.New("runstore: nil result")
)

// Run is the stored summary of one run.
type Run struct {
	ID              string
	Region          string
	CreatedAt       time.Time
	Districts       int
	Steps           int
	Epsilon         float64
	Seed            int64
	TreeMethod      string
	IdealPopulation float64
	TotalPopulation float64
	BestIndex       int
	Score           float64
	Deviation       float64
	Compactness     float64
}

// Store is a SQLite-backed run store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("runstore: path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path)
	}
	dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("runstore: open: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("runstore: ping: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("runstore: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores res under a new run ID, in a single transaction, and
// returns the ID.
func (s *Store) SaveRun(ctx context.Context, region string, params redistrict.Params, res *redistrict.Result) (id string, err error) {
	if res == nil || res.Selection == nil || res.Best == nil {
		return "", ErrNilResult
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("runstore: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id = uuid.NewString()
	sel := res.Selection
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, region, created_at, districts, steps, epsilon, seed, tree_method,
		   ideal_population, total_population, best_index, score, deviation, compactness)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, region, time.Now().UTC().UnixMilli(), params.NumDistricts, params.TotalSteps,
		params.Epsilon, params.Seed, string(params.TreeMethod),
		res.IdealPopulation, res.TotalPopulation, sel.Index, sel.Score, sel.Deviation, sel.Compactness,
	)
	if err != nil {
		return "", fmt.Errorf("runstore: insert run: %w", err)
	}

	stepStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO steps (run_id, idx, outcome, pair_a, pair_b, compactness) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("runstore: prepare steps: %w", err)
	}
	defer stepStmt.Close()
	for _, st := range res.Steps {
		if _, err = stepStmt.ExecContext(ctx, id, st.Index, st.Outcome.String(), st.Pair[0], st.Pair[1], st.Compactness); err != nil {
			return "", fmt.Errorf("runstore: insert step %d: %w", st.Index, err)
		}
	}

	assignStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assignments (run_id, unit_id, district) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("runstore: prepare assignments: %w", err)
	}
	defer assignStmt.Close()
	res.Best.EachAssignment(func(unit, district int) {
		if err != nil {
			return
		}
		if _, err = assignStmt.ExecContext(ctx, id, unit, district); err != nil {
			err = fmt.Errorf("runstore: insert assignment of unit %d: %w", unit, err)
		}
	})
	if err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("runstore: commit: %w", err)
	}

	return id, nil
}

const runColumns = `id, region, created_at, districts, steps, epsilon, seed, tree_method,
	ideal_population, total_population, best_index, score, deviation, compactness`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var created int64
	err := row.Scan(&r.ID, &r.Region, &created, &r.Districts, &r.Steps, &r.Epsilon, &r.Seed, &r.TreeMethod,
		&r.IdealPopulation, &r.TotalPopulation, &r.BestIndex, &r.Score, &r.Deviation, &r.Compactness)
	r.CreatedAt = time.UnixMilli(created).UTC()

	return r, err
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("runstore: get run: %w", err)
	}

	return r, nil
}

// ListRuns returns every stored run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("runstore: list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("runstore: scan run: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Steps returns the step diagnostics of a run in step order.
func (s *Store) Steps(ctx context.Context, id string) ([]chain.Step, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, outcome, pair_a, pair_b, compactness FROM steps WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("runstore: query steps: %w", err)
	}
	defer rows.Close()

	var out []chain.Step
	for rows.Next() {
		var st chain.Step
		var outcome string
		if err = rows.Scan(&st.Index, &outcome, &st.Pair[0], &st.Pair[1], &st.Compactness); err != nil {
			return nil, fmt.Errorf("runstore: scan step: %w", err)
		}
		if st.Outcome, err = parseOutcome(outcome); err != nil {
			return nil, err
		}
		out = append(out, st)
	}

	return out, rows.Err()
}

// Assignment returns the selected plan of a run as unit -> district.
func (s *Store) Assignment(ctx context.Context, id string) (map[int]int, error) {
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT unit_id, district FROM assignments WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("runstore: query assignment: %w", err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var unit, district int
		if err = rows.Scan(&unit, &district); err != nil {
			return nil, fmt.Errorf("runstore: scan assignment: %w", err)
		}
		out[unit] = district
	}

	return out, rows.Err()
}

func parseOutcome(s string) (chain.Outcome, error) {
	for _, o := range []chain.Outcome{chain.Accepted, chain.Rejected, chain.NoSplit} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("runstore: unknown step outcome %q", s)
}
