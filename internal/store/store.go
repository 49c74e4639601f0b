// Package store handles SQLite persistence of analysis history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/readability/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			name TEXT NOT NULL,
			lang TEXT NOT NULL,
			words INTEGER NOT NULL,
			sentences INTEGER NOT NULL,
			syllables INTEGER NOT NULL,
			text_standard TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_metrics (
			run_id INTEGER NOT NULL,
			metric TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (run_id, metric)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_metrics_metric ON run_metrics(metric);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run with its metrics. A missing run ID or timestamp is
// filled in; the stored run is returned.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (model.Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Run{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, name, lang, words, sentences, syllables, text_standard)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.CreatedAt.Format(timeLayout),
		run.Name,
		run.Lang,
		run.Stats.Words,
		run.Stats.Sentences,
		run.Stats.Syllables,
		run.TextStandard,
	)
	if err != nil {
		return model.Run{}, err
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return model.Run{}, err
	}

	if len(run.Metrics) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx, `INSERT INTO run_metrics (run_id, metric, value) VALUES (?, ?, ?)`)
		if err != nil {
			return model.Run{}, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, m := range run.Metrics {
			if _, err = stmt.ExecContext(ctx, run.ID, m.Name, m.Value); err != nil {
				return model.Run{}, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return model.Run{}, err
	}
	return run, nil
}

func filterClauses(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Name != "" {
		clauses = append(clauses, "name = ?")
		args = append(args, cfg.Name)
	}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

// ListRuns returns runs matching cfg, oldest first. Last limits the result to
// the most recent N runs.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.Run, error) {
	where, args := filterClauses(cfg)
	limit := -1
	if cfg.Last > 0 {
		limit = cfg.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, run_id, created_at, name, lang, words, sentences, syllables, text_standard
		FROM (
			SELECT * FROM runs WHERE %s ORDER BY created_at DESC, id DESC LIMIT ?
		)
		ORDER BY created_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.RunID, &createdAt, &run.Name, &run.Lang,
			&run.Stats.Words, &run.Stats.Sentences, &run.Stats.Syllables, &run.TextStandard); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachMetrics(ctx, runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// attachMetrics loads stored metrics for runs, in presentation order.
func (s *Store) attachMetrics(ctx context.Context, runs []model.Run) error {
	if len(runs) == 0 {
		return nil
	}
	index := make(map[int64]int, len(runs))
	placeholders := make([]string, len(runs))
	args := make([]any, len(runs))
	for i, run := range runs {
		index[run.ID] = i
		placeholders[i] = "?"
		args[i] = run.ID
	}
	query := fmt.Sprintf(`SELECT run_id, metric, value FROM run_metrics WHERE run_id IN (%s)`,
		strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	byRun := make(map[int64]map[string]float64, len(runs))
	for rows.Next() {
		var id int64
		var name string
		var value float64
		if err := rows.Scan(&id, &name, &value); err != nil {
			return err
		}
		if byRun[id] == nil {
			byRun[id] = map[string]float64{}
		}
		byRun[id][name] = value
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for id, values := range byRun {
		run := &runs[index[id]]
		for _, name := range model.MetricOrder {
			if v, ok := values[name]; ok {
				run.Metrics = append(run.Metrics, model.MetricValue{
					Name:    name,
					Value:   v,
					Integer: name == model.MetricDifficultWords || name == model.MetricTextStandard,
				})
			}
		}
	}
	return nil
}

// MetricSeries returns one metric's values across runs matching cfg, oldest first.
func (s *Store) MetricSeries(ctx context.Context, metric string, cfg model.HistoryConfig) ([]model.MetricPoint, error) {
	where, args := filterClauses(cfg)
	limit := -1
	if cfg.Last > 0 {
		limit = cfg.Last
	}
	args = append([]any{metric}, args...)
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, created_at, value FROM (
			SELECT r.id, r.created_at, m.value
			FROM runs r
			JOIN run_metrics m ON m.run_id = r.id AND m.metric = ?
			WHERE %s
			ORDER BY r.created_at DESC, r.id DESC
			LIMIT ?
		)
		ORDER BY created_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var points []model.MetricPoint
	for rows.Next() {
		var p model.MetricPoint
		var createdAt string
		if err := rows.Scan(&p.RunID, &createdAt, &p.Value); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = parsed
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return points, nil
}
