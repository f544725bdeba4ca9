// Package tree owns a cockpit's entity hierarchy and keeps it consistent.
//
// The Store is the single writer of a cockpit. Every mutation runs to
// completion, linked-group propagation included, before it returns; composite
// mutations are applied to a working copy and swapped in only when they
// succeed. Callers sharing a Store across goroutines must serialize access.
package tree

import (
	"log/slog"

	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/status"
	"github.com/google/uuid"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for link and propagation events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPolicy sets the severity policy used by EffectiveStatus.
func WithPolicy(p status.Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithSyncName makes name part of the synchronized field set.
func WithSyncName(enabled bool) Option {
	return func(s *Store) { s.syncName = enabled }
}

// WithIDGenerator replaces the uuid generator. Generated ids must be unique.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

type state struct {
	cockpit *models.Cockpit
	idx     *index
}

// Store is the canonical owner of one cockpit.
type Store struct {
	st       *state
	logger   *slog.Logger
	policy   status.Policy
	syncName bool
	newID    func() string
}

// New takes ownership of c, repairs it with models.Normalize and indexes it.
// A nil cockpit starts an empty one.
func New(c *models.Cockpit, opts ...Option) *Store {
	s := &Store{
		logger: slog.Default(),
		policy: status.DefaultPolicy(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if c == nil {
		c = &models.Cockpit{}
	}
	models.Normalize(c, s.newID)
	s.st = &state{cockpit: c, idx: buildIndex(c)}
	return s
}

// atomically runs fn against a working copy of the state and commits it only
// when fn succeeds.
func (s *Store) atomically(fn func(st *state) error) error {
	work := &state{cockpit: models.CloneCockpit(s.st.cockpit)}
	work.idx = buildIndex(work.cockpit)
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Cockpit returns a deep copy of the current cockpit.
func (s *Store) Cockpit() *models.Cockpit {
	return models.CloneCockpit(s.st.cockpit)
}

// Restore replaces the current state with c, typically a snapshot taken
// earlier with Cockpit. The store takes ownership of c.
func (s *Store) Restore(c *models.Cockpit) {
	if c == nil {
		c = &models.Cockpit{}
	}
	models.Normalize(c, s.newID)
	s.st = &state{cockpit: c, idx: buildIndex(c)}
}

// ID returns the cockpit id.
func (s *Store) ID() string {
	return s.st.cockpit.ID
}

// Rename changes the cockpit name.
func (s *Store) Rename(name string) error {
	if err := validateName("cockpit", name); err != nil {
		return err
	}
	s.st.cockpit.Name = name
	return nil
}

// SetSetting stores a global cockpit setting. An empty value removes it.
func (s *Store) SetSetting(key, value string) error {
	if key == "" {
		return invalid("setting key must not be empty")
	}
	c := s.st.cockpit
	if value == "" {
		delete(c.Settings, key)
		return nil
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	c.Settings[key] = value
	return nil
}

// Element returns a copy of the element with the given id.
func (s *Store) Element(id string) (*models.Element, error) {
	ref, ok := s.st.idx.elements[id]
	if !ok {
		return nil, notFound("element", id)
	}
	return models.CloneElement(ref.element), nil
}

// SubElement returns a copy of the sub-element with the given id.
func (s *Store) SubElement(id string) (*models.SubElement, error) {
	ref, ok := s.st.idx.subElements[id]
	if !ok {
		return nil, notFound("sub-element", id)
	}
	se := *ref.subElement
	return &se, nil
}

// ElementGroup returns the ids of the other elements linked to id.
func (s *Store) ElementGroup(id string) ([]string, error) {
	ref, ok := s.st.idx.elements[id]
	if !ok {
		return nil, notFound("element", id)
	}
	return members(s.st.idx.elementGroups, ref.element.LinkedGroupID, id), nil
}

// SubElementGroup returns the ids of the other sub-elements linked to id.
func (s *Store) SubElementGroup(id string) ([]string, error) {
	ref, ok := s.st.idx.subElements[id]
	if !ok {
		return nil, notFound("sub-element", id)
	}
	return members(s.st.idx.subElementGroups, ref.subElement.LinkedGroupID, id), nil
}
