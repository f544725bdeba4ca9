package tree

import (
	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/status"
)

// EffectiveStatus resolves the displayed status of an element, folding in the
// sub-elements of its linked peers when it inherits. Unknown ids resolve to ok.
func (s *Store) EffectiveStatus(elementID string) models.Status {
	ref, ok := s.st.idx.elements[elementID]
	if !ok {
		return models.StatusOK
	}
	return s.policy.Effective(ref.element, s.st.idx.elementPeers(ref.element))
}

// EffectiveColor is the palette color of EffectiveStatus.
func (s *Store) EffectiveColor(elementID string) string {
	return status.Color(s.EffectiveStatus(elementID))
}

// Policy returns the severity policy the store aggregates with.
func (s *Store) Policy() status.Policy {
	return s.policy
}
