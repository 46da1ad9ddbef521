// Package sqlite persists forecast runs to a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no stored run matches a lookup.
var ErrNotFound = domain.ErrRunNotFound

const schema = `
	CREATE TABLE IF NOT EXISTS forecast_runs (
		id TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		evaluation_json TEXT NOT NULL,
		summary_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_forecast_runs_generated_at ON forecast_runs(generated_at);
	CREATE TABLE IF NOT EXISTS forecast_entries (
		run_id TEXT NOT NULL REFERENCES forecast_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		year INTEGER NOT NULL,
		predicted_temperature REAL NOT NULL,
		tier TEXT NOT NULL,
		advisories_json TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
`

// Store is a run history backed by SQLite.
// It implements pipeline.Loader.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening forecast database: %w", err)
	}
	// One connection keeps :memory: databases coherent across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating forecast tables: %w", err)
	}
	return &Store{db: db}, nil
}

// Name identifies the sink in logs and metrics.
func (s *Store) Name() string { return "sqlite" }

// LoadRun stores a run and its entries in one transaction. Storing the same
// run ID again replaces it.
func (s *Store) LoadRun(ctx context.Context, run domain.ForecastRun) (err error) {
	evaluation, err := json.Marshal(run.Evaluation)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin forecast transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM forecast_entries WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clear forecast entries: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO forecast_runs (id, generated_at, evaluation_json, summary_json) VALUES (?, ?, ?, ?)`,
		run.ID, run.GeneratedAt.UTC().Format(time.RFC3339Nano), string(evaluation), string(summary),
	); err != nil {
		return fmt.Errorf("insert forecast run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO forecast_entries (run_id, position, year, predicted_temperature, tier, advisories_json) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare forecast entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range run.Result {
		advisories, mErr := json.Marshal(e.Advisories)
		if mErr != nil {
			err = fmt.Errorf("encode advisories for %d: %w", e.Year, mErr)
			return err
		}
		if _, err = stmt.ExecContext(ctx, run.ID, i, e.Year, e.PredictedTemperature, string(e.Tier), string(advisories)); err != nil {
			return fmt.Errorf("insert forecast entry %d: %w", e.Year, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit forecast run: %w", err)
	}
	return nil
}

// LatestRun returns the most recently generated run.
func (s *Store) LatestRun(ctx context.Context) (domain.ForecastRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, generated_at, evaluation_json, summary_json FROM forecast_runs ORDER BY generated_at DESC, rowid DESC LIMIT 1`)
	return s.readRun(ctx, row)
}

// Run returns the stored run with the given ID.
// It implements httpadapter.RunLookup.
func (s *Store) Run(ctx context.Context, id string) (domain.ForecastRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, generated_at, evaluation_json, summary_json FROM forecast_runs WHERE id = ?`, id)
	return s.readRun(ctx, row)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) readRun(ctx context.Context, row *sql.Row) (domain.ForecastRun, error) {
	var (
		run                 domain.ForecastRun
		generatedAt         string
		evaluation, summary string
	)
	if err := row.Scan(&run.ID, &generatedAt, &evaluation, &summary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ForecastRun{}, ErrNotFound
		}
		return domain.ForecastRun{}, fmt.Errorf("scan forecast run: %w", err)
	}

	var err error
	if run.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
		return domain.ForecastRun{}, fmt.Errorf("parse generated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(evaluation), &run.Evaluation); err != nil {
		return domain.ForecastRun{}, fmt.Errorf("decode evaluation: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &run.Summary); err != nil {
		return domain.ForecastRun{}, fmt.Errorf("decode summary: %w", err)
	}

	run.Result, err = s.entries(ctx, run.ID)
	if err != nil {
		return domain.ForecastRun{}, err
	}
	return run, nil
}

func (s *Store) entries(ctx context.Context, runID string) (domain.ForecastResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, predicted_temperature, tier, advisories_json FROM forecast_entries WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query forecast entries: %w", err)
	}
	defer rows.Close()

	result := domain.ForecastResult{}
	for rows.Next() {
		var (
			e          domain.ForecastEntry
			tier       string
			advisories string
		)
		if err := rows.Scan(&e.Year, &e.PredictedTemperature, &tier, &advisories); err != nil {
			return nil, fmt.Errorf("scan forecast entry: %w", err)
		}
		e.Tier = domain.Tier(tier)
		if err := json.Unmarshal([]byte(advisories), &e.Advisories); err != nil {
			return nil, fmt.Errorf("decode advisories: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
