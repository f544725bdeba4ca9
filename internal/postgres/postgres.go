// Package postgres stores cockpit snapshots as JSONB documents in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fitz/cockpit/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	driverName = "pgx"
	// DefaultDSN is used when no DSN is configured.
	DefaultDSN = "postgres://localhost/cockpit?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Open connects to PostgreSQL and makes sure the cockpits table exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(driverName, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS cockpits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		document JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure cockpits table: %w", err)
	}
	return nil
}

// SnapshotStore keeps one JSONB document per cockpit.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore wraps a database opened with Open.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save inserts or replaces the document of c.
func (s *SnapshotStore) Save(ctx context.Context, c *models.Cockpit) error {
	doc, err := encode(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cockpits (id, name, document)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			document = EXCLUDED.document,
			updated_at = now()
	`, c.ID, c.Name, doc)
	if err != nil {
		return fmt.Errorf("save cockpit %s: %w", c.ID, err)
	}
	return nil
}

// Load returns the cockpit with the given id, or nil when none is stored.
func (s *SnapshotStore) Load(ctx context.Context, id string) (*models.Cockpit, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM cockpits WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cockpit %s: %w", id, err)
	}
	return decode(id, doc)
}

// Summary describes a stored cockpit without its tree.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List returns every stored cockpit, most recently updated first.
func (s *SnapshotStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, updated_at FROM cockpits ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list cockpits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cockpit: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a stored cockpit. Deleting a missing id is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cockpits WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cockpit %s: %w", id, err)
	}
	return nil
}

func encode(c *models.Cockpit) ([]byte, error) {
	if c == nil || c.ID == "" {
		return nil, errors.New("cockpit id is required")
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode cockpit %s: %w", c.ID, err)
	}
	return doc, nil
}

func decode(id string, doc []byte) (*models.Cockpit, error) {
	var c models.Cockpit
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decode cockpit %s: %w", id, err)
	}
	return &c, nil
}
