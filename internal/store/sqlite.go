package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"autotrack/internal/models"

	_ "modernc.org/sqlite"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute

	nextIDMetaKey = "next_id"
)

// SQLite persists the store into a SQLite database with the same
// full-replace contract as JSONFile.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and bootstraps the schema.
func OpenSQLite(path string) (*SQLite, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads every task in stored order plus the next-id counter.
func (s *SQLite) Load(ctx context.Context) (State, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, status, submitter, priority, last_run, notes
		FROM tasks ORDER BY position ASC
	`)
	if err != nil {
		return State{}, err
	}
	defer rows.Close()

	state := State{Tasks: []models.Task{}, NextID: 1}
	for rows.Next() {
		var (
			record    taskRecord
			submitter sql.NullString
			priority  sql.NullString
		)
		if err := rows.Scan(&record.ID, &record.Name, &record.Status, &submitter, &priority, &record.LastRun, &record.Notes); err != nil {
			return State{}, err
		}
		if submitter.Valid {
			record.Submitter = &submitter.String
		}
		if priority.Valid {
			record.Priority = &priority.String
		}
		task, err := record.toTask()
		if err != nil {
			return State{}, err
		}
		state.Tasks = append(state.Tasks, task)
	}
	if err := rows.Err(); err != nil {
		return State{}, err
	}

	var raw string
	err = s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", nextIDMetaKey).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return State{}, err
	default:
		nextID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return State{}, fmt.Errorf("invalid stored next_id %q", raw)
		}
		state.NextID = nextID
	}

	return normalizeState(state)
}

// Save replaces every stored row with state in one transaction.
func (s *SQLite) Save(ctx context.Context, state State) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, name, status, submitter, priority, last_run, notes, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for position, task := range state.Tasks {
		if _, err = stmt.ExecContext(ctx,
			task.ID,
			task.Name,
			string(task.Status),
			task.Submitter,
			string(task.Priority),
			task.LastRun,
			task.Notes,
			position,
		); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		nextIDMetaKey, strconv.Itoa(state.NextID),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Single writer; the store serializes access anyway.
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}
