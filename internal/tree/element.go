package tree

import (
	"slices"

	"github.com/fitz/cockpit/internal/models"
)

// CreateElement appends a new independent element with status ok to a
// category. Use BeginCreateElement to offer linking to same-name elements.
func (s *Store) CreateElement(categoryID, name string) (*models.Element, error) {
	ref, ok := s.st.idx.categories[categoryID]
	if !ok {
		return nil, notFound("category", categoryID)
	}
	if err := validateName("element", name); err != nil {
		return nil, err
	}
	el := s.insertElement(s.st, ref, name)
	return models.CloneElement(el), nil
}

func (s *Store) insertElement(st *state, ref categoryRef, name string) *models.Element {
	el := &models.Element{
		ID:            s.newID(),
		Name:          name,
		Status:        models.Explicit(models.StatusOK),
		SubCategories: []*models.SubCategory{},
	}
	ref.category.Elements = append(ref.category.Elements, el)
	st.idx.addElement(ref.domain, ref.category, el)
	return el
}

// UpdateElement applies a partial update to one element, then writes the
// synchronized fields of the patch to every other element of its linked group.
func (s *Store) UpdateElement(id string, patch models.ElementPatch) error {
	ref, ok := s.st.idx.elements[id]
	if !ok {
		return notFound("element", id)
	}
	el := ref.element
	if err := s.validateElementPatch(el, patch); err != nil {
		return err
	}

	peers := s.st.idx.elementPeers(el)
	shared := s.syncedElementFields(patch)
	if shared.Status != nil && shared.Status.IsInherited() {
		for _, peer := range peers {
			if !peer.HasSubCategories() {
				return invalidState("linked element %s has no sub-category to inherit from", peer.ID)
			}
		}
	}

	applyElementPatch(el, patch)
	if shared.IsEmpty() || len(peers) == 0 {
		return nil
	}
	for _, peer := range peers {
		applyElementPatch(peer, shared)
	}
	s.logger.Debug("propagated element update", "id", id, "group", el.LinkedGroupID, "peers", len(peers))
	return nil
}

func (s *Store) validateElementPatch(el *models.Element, patch models.ElementPatch) error {
	if patch.Name != nil {
		if err := validateName("element", *patch.Name); err != nil {
			return err
		}
	}
	if patch.Status != nil {
		if st, ok := patch.Status.Explicit(); ok && !models.IsValidStatus(string(st)) {
			return invalid("invalid status %q", st)
		}
		if patch.Status.IsInherited() && !el.HasSubCategories() {
			return invalidState("element %s has no sub-category to inherit from", el.ID)
		}
	}
	if patch.ZoneID != nil && *patch.ZoneID != "" && s.st.cockpit.ZoneByID(*patch.ZoneID) == nil {
		return notFound("zone", *patch.ZoneID)
	}
	return nil
}

func applyElementPatch(el *models.Element, p models.ElementPatch) {
	if p.Name != nil {
		el.Name = *p.Name
	}
	if p.Status != nil {
		el.Status = *p.Status
	}
	if p.Icon != nil {
		el.Icon = *p.Icon
	}
	if p.Icon2 != nil {
		el.Icon2 = *p.Icon2
	}
	if p.Icon3 != nil {
		el.Icon3 = *p.Icon3
	}
	if p.Value != nil {
		el.Value = *p.Value
	}
	if p.Unit != nil {
		el.Unit = *p.Unit
	}
	if p.ZoneID != nil {
		el.ZoneID = *p.ZoneID
	}
	if p.Position != nil {
		pos := *p.Position
		el.Position = &pos
	}
	if p.Size != nil {
		size := *p.Size
		el.Size = &size
	}
}

// DeleteElement removes an element and its sub-structure. Linked peers are
// left exactly as they are.
func (s *Store) DeleteElement(id string) error {
	ref, ok := s.st.idx.elements[id]
	if !ok {
		return notFound("element", id)
	}
	ref.category.Elements = slices.DeleteFunc(ref.category.Elements, func(x *models.Element) bool { return x == ref.element })
	s.st.idx.removeElement(ref.element)
	return nil
}
