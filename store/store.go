// Package store keeps named cavity presets and a history of solved operating
// points in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/AnkushinDaniil/shgcavity/entity"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
)

var (
	ErrNotFound    = errors.New("store: not found")
	ErrInvalidName = errors.New("store: invalid preset name")
)

const memory = ":memory:"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS presets (
		name       TEXT PRIMARY KEY,
		params     TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS solutions (
		id         TEXT PRIMARY KEY,
		preset     TEXT NOT NULL DEFAULT '',
		params     TEXT NOT NULL,
		result     TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS solutions_preset ON solutions(preset, created_at)`,
}

// Preset is a named parameter record.
type Preset struct {
	Name      string                `json:"name"`
	Params    parameters.Parameters `json:"params"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Solution is one solved operating point. Preset is empty when the parameters
// did not come from a preset.
type Solution struct {
	ID        string                `json:"id"`
	Preset    string                `json:"preset,omitempty"`
	Params    parameters.Parameters `json:"params"`
	Result    entity.ModeResult     `json:"result"`
	CreatedAt time.Time             `json:"created_at"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != memory {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(10000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serializes
	// writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	log.WithField("path", path).Debug("Store opened")
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SavePreset creates or replaces the preset name.
func (s *Store) SavePreset(ctx context.Context, name string, p parameters.Parameters) error {
	if err := validName(name); err != nil {
		return err
	}
	params, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	now := s.now().UnixNano()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (name, params, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET params = excluded.params, updated_at = excluded.updated_at`,
		name, string(params), now, now)
	if err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}
	return nil
}

// Preset returns the preset name or ErrNotFound.
func (s *Store) Preset(ctx context.Context, name string) (Preset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, params, created_at, updated_at FROM presets WHERE name = ?`, name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%w: preset %q", ErrNotFound, name)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	return p, nil
}

// ListPresets returns every preset ordered by name.
func (s *Store) ListPresets(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, params, created_at, updated_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	presets := []Preset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// DeletePreset removes the preset name. Its recorded solutions are kept.
func (s *Store) DeletePreset(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: preset %q", ErrNotFound, name)
	}
	return nil
}

// RecordSolution appends a solved operating point to the history.
func (s *Store) RecordSolution(ctx context.Context, preset string, p parameters.Parameters, r entity.ModeResult) (Solution, error) {
	sol := Solution{
		ID:        uuid.NewString(),
		Preset:    preset,
		Params:    p,
		Result:    r,
		CreatedAt: s.now(),
	}
	params, err := json.Marshal(p)
	if err != nil {
		return Solution{}, fmt.Errorf("failed to encode parameters: %w", err)
	}
	result, err := json.Marshal(r)
	if err != nil {
		return Solution{}, fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO solutions (id, preset, params, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		sol.ID, preset, string(params), string(result), sol.CreatedAt.UnixNano())
	if err != nil {
		return Solution{}, fmt.Errorf("failed to record solution: %w", err)
	}
	return sol, nil
}

// Solutions returns up to limit recorded solutions, newest first. An empty
// preset matches every solution; limit <= 0 means no limit.
func (s *Store) Solutions(ctx context.Context, preset string, limit int) ([]Solution, error) {
	query := `SELECT id, preset, params, result, created_at FROM solutions`
	var args []any
	if preset != "" {
		query += ` WHERE preset = ?`
		args = append(args, preset)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}
	defer rows.Close()

	solutions := []Solution{}
	for rows.Next() {
		var (
			sol            Solution
			params, result string
			created        int64
		)
		if err := rows.Scan(&sol.ID, &sol.Preset, &params, &result, &created); err != nil {
			return nil, fmt.Errorf("failed to read solution: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &sol.Params); err != nil {
			return nil, fmt.Errorf("failed to decode parameters of %s: %w", sol.ID, err)
		}
		if err := json.Unmarshal([]byte(result), &sol.Result); err != nil {
			return nil, fmt.Errorf("failed to decode result of %s: %w", sol.ID, err)
		}
		sol.CreatedAt = time.Unix(0, created)
		solutions = append(solutions, sol)
	}
	return solutions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (Preset, error) {
	var (
		p                Preset
		params           string
		created, updated int64
	)
	if err := row.Scan(&p.Name, &params, &created, &updated); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal([]byte(params), &p.Params); err != nil {
		return Preset{}, fmt.Errorf("failed to decode parameters: %w", err)
	}
	p.CreatedAt = time.Unix(0, created)
	p.UpdatedAt = time.Unix(0, updated)
	return p, nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
