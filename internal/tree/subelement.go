package tree

import (
	"slices"

	"github.com/fitz/cockpit/internal/models"
)

// CreateSubElement appends a new independent sub-element with status ok.
func (s *Store) CreateSubElement(subCategoryID, name string) (*models.SubElement, error) {
	ref, ok := s.st.idx.subCategories[subCategoryID]
	if !ok {
		return nil, notFound("sub-category", subCategoryID)
	}
	if err := validateName("sub-element", name); err != nil {
		return nil, err
	}
	se := s.insertSubElement(s.st, ref, name)
	out := *se
	return &out, nil
}

func (s *Store) insertSubElement(st *state, ref subCategoryRef, name string) *models.SubElement {
	se := &models.SubElement{
		ID:     s.newID(),
		Name:   name,
		Status: models.StatusOK,
	}
	ref.subCategory.SubElements = append(ref.subCategory.SubElements, se)
	st.idx.addSubElement(ref, se)
	return se
}

// UpdateSubElement applies a partial update to one sub-element, then writes
// the synchronized fields of the patch to the rest of its linked group.
func (s *Store) UpdateSubElement(id string, patch models.SubElementPatch) error {
	ref, ok := s.st.idx.subElements[id]
	if !ok {
		return notFound("sub-element", id)
	}
	if patch.Name != nil {
		if err := validateName("sub-element", *patch.Name); err != nil {
			return err
		}
	}
	if patch.Status != nil && !models.IsValidStatus(string(*patch.Status)) {
		return invalid("invalid status %q", *patch.Status)
	}

	se := ref.subElement
	applySubElementPatch(se, patch)

	shared := s.syncedSubElementFields(patch)
	peers := s.st.idx.subElementPeers(se)
	if shared.IsEmpty() || len(peers) == 0 {
		return nil
	}
	for _, peer := range peers {
		applySubElementPatch(peer, shared)
	}
	s.logger.Debug("propagated sub-element update", "id", id, "group", se.LinkedGroupID, "peers", len(peers))
	return nil
}

func applySubElementPatch(se *models.SubElement, p models.SubElementPatch) {
	if p.Name != nil {
		se.Name = *p.Name
	}
	if p.Status != nil {
		se.Status = *p.Status
	}
	if p.Icon != nil {
		se.Icon = *p.Icon
	}
	if p.Value != nil {
		se.Value = *p.Value
	}
	if p.Unit != nil {
		se.Unit = *p.Unit
	}
}

// DeleteSubElement removes a sub-element. Linked peers are untouched.
func (s *Store) DeleteSubElement(id string) error {
	ref, ok := s.st.idx.subElements[id]
	if !ok {
		return notFound("sub-element", id)
	}
	sc := ref.subCategory
	sc.SubElements = slices.DeleteFunc(sc.SubElements, func(x *models.SubElement) bool { return x == ref.subElement })
	s.st.idx.removeSubElement(ref.subElement)
	return nil
}
