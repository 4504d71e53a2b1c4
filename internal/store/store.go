// Package store persists generated scenarios and evaluation attempts
// in sqlite, and serves the aggregate progress rollups built on top of
// them.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

//go:embed schema.sql
var schemaFS embed.FS

// Store wraps DB access.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the sqlite database at path and applies the
// schema. Use ":memory:" for tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite writes serialize anyway; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// StoredScenario is one persisted scenario row; Payload is the full
// scenario JSON.
type StoredScenario struct {
	ScenarioID string
	CreatedAt  time.Time
	Payload    []byte
}

// SaveScenario inserts the scenario under its id.
func (s *Store) SaveScenario(ctx context.Context, id string, createdAt time.Time, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (scenario_id, created_at, payload) VALUES (?, ?, ?)`,
		id, createdAt.UTC(), raw)
	return err
}

// GetScenario looks up one scenario by id.
func (s *Store) GetScenario(ctx context.Context, id string) (*StoredScenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT scenario_id, created_at, payload FROM scenarios WHERE scenario_id = ?`, id)
	var out StoredScenario
	if err := row.Scan(&out.ScenarioID, &out.CreatedAt, &out.Payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Attempt is one persisted evaluation attempt. The rollup columns are
// denormalized from the scenario so progress queries never need to
// decode payloads.
type Attempt struct {
	AttemptID    string
	ScenarioID   string
	CreatedAt    time.Time
	HeroPosition string
	Street       string
	NodeType     string
	EVLossBB     float64
	Verdict      string
	FreeResponse string
	Decision     []byte
	Result       []byte
}

// SaveAttempt inserts the attempt row.
func (s *Store) SaveAttempt(ctx context.Context, a *Attempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts
		   (attempt_id, scenario_id, created_at, hero_position, street, node_type, ev_loss_bb, verdict, free_response, decision, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.AttemptID, a.ScenarioID, a.CreatedAt.UTC(), a.HeroPosition, a.Street, a.NodeType,
		a.EVLossBB, a.Verdict, a.FreeResponse, a.Decision, a.Result)
	return err
}

// GetAttempt looks up one attempt by id.
func (s *Store) GetAttempt(ctx context.Context, id string) (*Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT attempt_id, scenario_id, created_at, hero_position, street, node_type, ev_loss_bb, verdict, free_response, decision, result
		   FROM attempts WHERE attempt_id = ?`, id)
	var out Attempt
	err := row.Scan(&out.AttemptID, &out.ScenarioID, &out.CreatedAt, &out.HeroPosition,
		&out.Street, &out.NodeType, &out.EVLossBB, &out.Verdict, &out.FreeResponse, &out.Decision, &out.Result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// ProgressBucket is one rollup row of stored attempts.
type ProgressBucket struct {
	Key         string  `json:"key"`
	Attempts    int     `json:"attempts"`
	AvgEVLossBB float64 `json:"avg_ev_loss_bb"`
	LeakCount   int     `json:"leak_count"`
	LeakRate    float64 `json:"leak_rate"`
	TotalLossBB float64 `json:"total_ev_loss_bb"`
}

// Progress aggregates attempts grouped by the given dimension, one of
// "hero_position", "street", or "node_type".
func (s *Store) Progress(ctx context.Context, dimension string) ([]ProgressBucket, error) {
	var column string
	switch dimension {
	case "hero_position", "position":
		column = "hero_position"
	case "street":
		column = "street"
	case "node_type":
		column = "node_type"
	default:
		return nil, errors.New("unknown progress dimension")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+column+`,
		        COUNT(*),
		        AVG(ev_loss_bb),
		        SUM(CASE WHEN verdict IN ('Leak', 'Major Leak') THEN 1 ELSE 0 END),
		        SUM(ev_loss_bb)
		   FROM attempts
		  GROUP BY `+column+`
		  ORDER BY `+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProgressBucket
	for rows.Next() {
		var b ProgressBucket
		if err := rows.Scan(&b.Key, &b.Attempts, &b.AvgEVLossBB, &b.LeakCount, &b.TotalLossBB); err != nil {
			return nil, err
		}
		if b.Attempts > 0 {
			b.LeakRate = float64(b.LeakCount) / float64(b.Attempts)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// RecentAttempts lists the newest attempts, newest first.
func (s *Store) RecentAttempts(ctx context.Context, limit int) ([]*Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT attempt_id, scenario_id, created_at, hero_position, street, node_type, ev_loss_bb, verdict, free_response, decision, result
		   FROM attempts ORDER BY created_at DESC, attempt_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Attempt
	for rows.Next() {
		var a Attempt
		err := rows.Scan(&a.AttemptID, &a.ScenarioID, &a.CreatedAt, &a.HeroPosition,
			&a.Street, &a.NodeType, &a.EVLossBB, &a.Verdict, &a.FreeResponse, &a.Decision, &a.Result)
		if err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
