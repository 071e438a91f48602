// Package store persists task and dependency records in a local
// SQLite database. It is a host-side collaborator: the scheduling
// engine never reads or writes storage itself, it only receives the
// records the store materializes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/horizon/internal/task"
)

// schema contains the DDL executed on every open. IF NOT EXISTS makes
// it safe to rerun.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL DEFAULT '',
    project_id     TEXT NOT NULL DEFAULT '',
    type           TEXT NOT NULL DEFAULT '',
    status         TEXT NOT NULL DEFAULT 'todo',
    priority       INTEGER NOT NULL DEFAULT 0,
    assignee       TEXT NOT NULL DEFAULT '',
    start_date     TEXT,
    due_date       TEXT,
    estimate_hours REAL NOT NULL DEFAULT 0,
    actual_hours   REAL NOT NULL DEFAULT 0,
    labels         TEXT NOT NULL DEFAULT '[]',
    parent_id      TEXT NOT NULL DEFAULT '',
    depends_on     TEXT NOT NULL DEFAULT '[]',
    created_at     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS dependencies (
    id         TEXT PRIMARY KEY,
    pred_id    TEXT NOT NULL,
    succ_id    TEXT NOT NULL,
    type       TEXT NOT NULL DEFAULT 'finish_to_start',
    lag_days   INTEGER NOT NULL DEFAULT 0,
    UNIQUE(pred_id, succ_id)
);
`

// Store wraps a SQLite database holding task records.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath, enables WAL mode
// and a busy timeout, and creates the schema if missing.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and a lone pooled
	// connection keeps PRAGMA state consistent without SQLITE_BUSY
	// churn between pool members.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTask upserts one task record.
func (s *Store) SaveTask(ctx context.Context, t task.Task) error {
	labels, err := json.Marshal(t.Labels)
	if err != nil {
		return fmt.Errorf("store: encode labels: %w", err)
	}
	dependsOn, err := json.Marshal(t.DependsOn)
	if err != nil {
		return fmt.Errorf("store: encode depends_on: %w", err)
	}

	const q = `
		INSERT INTO tasks (id, name, project_id, type, status, priority, assignee,
			start_date, due_date, estimate_hours, actual_hours, labels, parent_id,
			depends_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			project_id = excluded.project_id,
			type = excluded.type,
			status = excluded.status,
			priority = excluded.priority,
			assignee = excluded.assignee,
			start_date = excluded.start_date,
			due_date = excluded.due_date,
			estimate_hours = excluded.estimate_hours,
			actual_hours = excluded.actual_hours,
			labels = excluded.labels,
			parent_id = excluded.parent_id,
			depends_on = excluded.depends_on,
			created_at = excluded.created_at`

	_, err = s.db.ExecContext(ctx, q,
		t.ID, t.Name, t.ProjectID, t.Type, string(t.Status), t.Priority, t.Assignee,
		encodeDate(t.Start), encodeDate(t.Due), t.EstimateHours, t.ActualHours,
		string(labels), t.ParentID, string(dependsOn), encodeTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("store: save task %s: %w", t.ID, err)
	}
	return nil
}

// SaveDependency upserts one dependency record, keyed by its
// predecessor/successor pair.
func (s *Store) SaveDependency(ctx context.Context, d task.Dependency) error {
	const q = `
		INSERT INTO dependencies (id, pred_id, succ_id, type, lag_days)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(pred_id, succ_id) DO UPDATE SET
			type = excluded.type,
			lag_days = excluded.lag_days`
	_, err := s.db.ExecContext(ctx, q,
		d.ID, d.PredecessorID, d.SuccessorID, string(d.Type), d.LagDays)
	if err != nil {
		return fmt.Errorf("store: save dependency %s→%s: %w", d.PredecessorID, d.SuccessorID, err)
	}
	return nil
}

// Tasks loads all task records, optionally restricted to a project,
// ordered by ID.
func (s *Store) Tasks(ctx context.Context, projectID string) ([]task.Task, error) {
	q := `SELECT id, name, project_id, type, status, priority, assignee,
		start_date, due_date, estimate_hours, actual_hours, labels, parent_id,
		depends_on, created_at FROM tasks`
	args := []any{}
	if projectID != "" {
		q += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	q += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var status, labels, dependsOn, createdAt string
		var start, due sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.ProjectID, &t.Type, &status,
			&t.Priority, &t.Assignee, &start, &due, &t.EstimateHours,
			&t.ActualHours, &labels, &t.ParentID, &dependsOn, &createdAt); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		t.Status = task.Status(status)
		if t.Start, err = decodeDate(start); err != nil {
			return nil, fmt.Errorf("store: task %s start_date: %w", t.ID, err)
		}
		if t.Due, err = decodeDate(due); err != nil {
			return nil, fmt.Errorf("store: task %s due_date: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(labels), &t.Labels); err != nil {
			return nil, fmt.Errorf("store: task %s labels: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(dependsOn), &t.DependsOn); err != nil {
			return nil, fmt.Errorf("store: task %s depends_on: %w", t.ID, err)
		}
		if createdAt != "" {
			if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
				return nil, fmt.Errorf("store: task %s created_at: %w", t.ID, err)
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Dependencies loads all dependency records, ordered by predecessor
// then successor ID.
func (s *Store) Dependencies(ctx context.Context) ([]task.Dependency, error) {
	const q = `SELECT id, pred_id, succ_id, type, lag_days
		FROM dependencies ORDER BY pred_id, succ_id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: query dependencies: %w", err)
	}
	defer rows.Close()

	var deps []task.Dependency
	for rows.Next() {
		var d task.Dependency
		var typ string
		if err := rows.Scan(&d.ID, &d.PredecessorID, &d.SuccessorID, &typ, &d.LagDays); err != nil {
			return nil, fmt.Errorf("store: scan dependency: %w", err)
		}
		d.Type = task.DependencyType(typ)
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

// Import saves every task and dependency of a loaded plan.
func (s *Store) Import(ctx context.Context, tasks []task.Task, deps []task.Dependency) error {
	for _, t := range tasks {
		if err := s.SaveTask(ctx, t); err != nil {
			return err
		}
	}
	for _, d := range deps {
		if err := s.SaveDependency(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func encodeDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func encodeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func decodeDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
