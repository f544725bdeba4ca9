package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fitz/cockpit/internal/metrics"
	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/tree"
)

// Saver persists the whole cockpit after a successful mutation.
type Saver interface {
	Save(ctx context.Context, c *models.Cockpit) error
}

// Handler provides the dependencies needed by tool handlers.
type Handler struct {
	Store  *tree.Store
	Saver  Saver
	Logger *slog.Logger
	// Metrics is optional.
	Metrics *metrics.Metrics

	// mu serializes tool calls; the store is a single-writer structure.
	mu sync.Mutex
}

// NewHandler creates a new Handler with the given dependencies. A nil saver
// keeps the cockpit in memory only.
func NewHandler(store *tree.Store, saver Saver, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:  store,
		Saver:  saver,
		Logger: logger,
	}
}

// read runs fn while holding the handler lock.
func (h *Handler) read(tool string, fn func() error) error {
	start := time.Now()
	h.mu.Lock()
	defer h.mu.Unlock()

	err := fn()
	h.Metrics.ObserveTool(tool, start, err)
	if err != nil {
		h.Logger.Error(tool+" failed", "error", err)
	}
	return err
}

// errUnchanged lets a mutate callback report that it left the cockpit as is.
var errUnchanged = errors.New("unchanged")

// mutate runs fn under the handler lock and persists the cockpit if fn
// succeeded. When fn or the save fails, the store is rolled back to its state
// before the call. A callback returning errUnchanged succeeds without a save.
func (h *Handler) mutate(ctx context.Context, tool string, fn func() error) (err error) {
	start := time.Now()
	h.mu.Lock()
	defer h.mu.Unlock()
	defer func() { h.Metrics.ObserveTool(tool, start, err) }()

	before := h.Store.Cockpit()
	if err := fn(); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		h.Store.Restore(before)
		h.Logger.Error(tool+" failed", "error", err)
		return err
	}
	if h.Saver == nil {
		return nil
	}
	err = h.Saver.Save(ctx, h.Store.Cockpit())
	h.Metrics.ObserveSave(err)
	if err != nil {
		h.Store.Restore(before)
		h.Logger.Error(tool+" failed", "stage", "save", "error", err)
		return fmt.Errorf("failed to save cockpit: %w", err)
	}
	return nil
}

// DeleteOutput is shared by the delete tools.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ChangeOutput is shared by tools that only report what they touched.
type ChangeOutput struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
}
