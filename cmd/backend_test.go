package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fitz/cockpit/internal/config"
	"github.com/fitz/cockpit/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRepo struct {
	stored  map[string]*models.Cockpit
	loadErr error
}

func (f *fakeRepo) Load(ctx context.Context, id string) (*models.Cockpit, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.stored[id], nil
}

func (f *fakeRepo) Save(ctx context.Context, c *models.Cockpit) error {
	f.stored[c.ID] = c
	return nil
}

func testConfig(backend string) *config.Config {
	return &config.Config{
		Backend:     backend,
		CockpitID:   "plant",
		CockpitName: "Plant",
		LogLevel:    "info",
	}
}

func TestOpenStore_NewCockpit(t *testing.T) {
	s, err := openStore(context.Background(), testConfig(config.BackendMemory), nil, discardLogger())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	c := s.Cockpit()
	if c.ID != "plant" || c.Name != "Plant" {
		t.Errorf("cockpit: got id=%q name=%q, want plant Plant", c.ID, c.Name)
	}
}

func TestOpenStore_LoadsExisting(t *testing.T) {
	repo := &fakeRepo{stored: map[string]*models.Cockpit{
		"plant": {ID: "plant", Name: "Saved", Domains: []*models.Domain{{ID: "d1", Name: "Domain A"}}},
	}}
	s, err := openStore(context.Background(), testConfig(config.BackendSQLite), repo, discardLogger())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	c := s.Cockpit()
	if c.Name != "Saved" || len(c.Domains) != 1 {
		t.Errorf("cockpit: got name=%q domains=%d, want Saved 1", c.Name, len(c.Domains))
	}
}

func TestOpenStore_Errors(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRepo{loadErr: boom}
	if _, err := openStore(context.Background(), testConfig(config.BackendSQLite), repo, discardLogger()); !errors.Is(err, boom) {
		t.Errorf("load error: got %v, want %v", err, boom)
	}

	cfg := testConfig(config.BackendMemory)
	cfg.StatusRanking = "ok,ok"
	if _, err := openStore(context.Background(), cfg, nil, discardLogger()); err == nil {
		t.Error("expected error for invalid ranking")
	}
}

func TestOpenBackend_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.BackendSQLite)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "cockpit.db")

	be, err := openBackend(ctx, cfg, discardLogger(), false)
	if err != nil {
		t.Fatalf("openBackend: %v", err)
	}
	s, err := openStore(ctx, cfg, be.repo, discardLogger())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	if _, err := s.CreateDomain("Domain A", ""); err != nil {
		t.Fatalf("CreateDomain: %v", err)
	}
	if err := be.repo.Save(ctx, s.Cockpit()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	be.close()

	be, err = openBackend(ctx, cfg, discardLogger(), false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer be.close()
	s, err = openStore(ctx, cfg, be.repo, discardLogger())
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	if c := s.Cockpit(); len(c.Domains) != 1 || c.Domains[0].Name != "Domain A" {
		t.Errorf("reloaded cockpit: got %+v", c.Domains)
	}
}

func TestOpenBackend_Memory(t *testing.T) {
	be, err := openBackend(context.Background(), testConfig(config.BackendMemory), discardLogger(), false)
	if err != nil {
		t.Fatalf("openBackend: %v", err)
	}
	defer be.close()
	if be.repo != nil {
		t.Errorf("memory backend should have no repository, got %T", be.repo)
	}
}

func TestOrDash(t *testing.T) {
	if got := orDash(""); got != "-" {
		t.Errorf("empty: got %q, want -", got)
	}
	if got := orDash("g1"); got != "g1" {
		t.Errorf("set: got %q, want g1", got)
	}
}
