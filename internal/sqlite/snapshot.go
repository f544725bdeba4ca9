package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fitz/cockpit/internal/models"
)

// Summary describes a stored cockpit without its tree.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SnapshotStore keeps one JSON document per cockpit.
type SnapshotStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSnapshotStore wraps a migrated database.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db, now: time.Now}
}

// Save inserts or replaces the document of c.
func (s *SnapshotStore) Save(ctx context.Context, c *models.Cockpit) error {
	if c == nil || c.ID == "" {
		return errors.New("cockpit id is required")
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cockpit %s: %w", c.ID, err)
	}

	now := s.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cockpits (id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, c.ID, c.Name, string(doc), now, now)
	if err != nil {
		return fmt.Errorf("save cockpit %s: %w", c.ID, err)
	}
	return nil
}

// Load returns the cockpit with the given id, or nil when none is stored.
func (s *SnapshotStore) Load(ctx context.Context, id string) (*models.Cockpit, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT document FROM cockpits WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cockpit %s: %w", id, err)
	}

	var c models.Cockpit
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, fmt.Errorf("decode cockpit %s: %w", id, err)
	}
	return &c, nil
}

// List returns every stored cockpit, most recently updated first.
func (s *SnapshotStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, updated_at FROM cockpits ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list cockpits: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &updated); err != nil {
			return nil, fmt.Errorf("scan cockpit: %w", err)
		}
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a stored cockpit. Deleting a missing id is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cockpits WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete cockpit %s: %w", id, err)
	}
	return nil
}
