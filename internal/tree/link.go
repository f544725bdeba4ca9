package tree

import (
	"slices"

	"github.com/fitz/cockpit/internal/models"
)

// Decision is the caller's answer when a new entity's name collides with
// existing ones. The zero value creates an independent entity.
type Decision struct {
	// PeerID is the entity to link with. Empty means independent.
	PeerID string `json:"peerId,omitempty"`
	// MergeSubStructure unions sub-categories and sub-elements by name in
	// both directions when linking elements.
	MergeSubStructure bool `json:"mergeSubStructure,omitempty"`
}

// Independent returns the decision that creates an unlinked entity.
func Independent() Decision { return Decision{} }

// LinkTo returns the decision that links the new entity with peerID.
func LinkTo(peerID string, merge bool) Decision {
	return Decision{PeerID: peerID, MergeSubStructure: merge}
}

// IsLink reports whether d links to a peer.
func (d Decision) IsLink() bool { return d.PeerID != "" }

// PendingElement is an element creation waiting for a link decision. Nothing
// is added to the tree until Resolve is called.
type PendingElement struct {
	store      *Store
	CategoryID string
	Name       string
	Matches    []ElementMatch
	Candidates []ElementCandidate
}

// NeedsDecision reports whether other elements already carry the name.
func (p *PendingElement) NeedsDecision() bool { return len(p.Matches) > 0 }

// Resolve creates the element according to d.
func (p *PendingElement) Resolve(d Decision) (*models.Element, error) {
	return p.store.CreateElementLinked(p.CategoryID, p.Name, d)
}

// PendingSubElement is the sub-element counterpart of PendingElement.
type PendingSubElement struct {
	store         *Store
	SubCategoryID string
	Name          string
	Matches       []SubElementMatch
	Candidates    []SubElementCandidate
}

// NeedsDecision reports whether other sub-elements already carry the name.
func (p *PendingSubElement) NeedsDecision() bool { return len(p.Matches) > 0 }

// Resolve creates the sub-element according to d. MergeSubStructure is ignored.
func (p *PendingSubElement) Resolve(d Decision) (*models.SubElement, error) {
	return p.store.CreateSubElementLinked(p.SubCategoryID, p.Name, d)
}

// BeginCreateElement validates a creation and collects the same-name
// elements the new one could be linked with.
func (s *Store) BeginCreateElement(categoryID, name string) (*PendingElement, error) {
	if _, ok := s.st.idx.categories[categoryID]; !ok {
		return nil, notFound("category", categoryID)
	}
	if err := validateName("element", name); err != nil {
		return nil, err
	}
	matches := s.FindElementsByName(name)
	return &PendingElement{
		store:      s,
		CategoryID: categoryID,
		Name:       name,
		Matches:    matches,
		Candidates: s.GroupElementMatches(matches),
	}, nil
}

// BeginCreateSubElement is BeginCreateElement for sub-elements.
func (s *Store) BeginCreateSubElement(subCategoryID, name string) (*PendingSubElement, error) {
	if _, ok := s.st.idx.subCategories[subCategoryID]; !ok {
		return nil, notFound("sub-category", subCategoryID)
	}
	if err := validateName("sub-element", name); err != nil {
		return nil, err
	}
	matches := s.FindSubElementsByName(name)
	return &PendingSubElement{
		store:         s,
		SubCategoryID: subCategoryID,
		Name:          name,
		Matches:       matches,
		Candidates:    s.GroupSubElementMatches(matches),
	}, nil
}

// CreateElementLinked creates an element and, when d names a peer, links it
// into the peer's group in the same step.
func (s *Store) CreateElementLinked(categoryID, name string, d Decision) (*models.Element, error) {
	if !d.IsLink() {
		return s.CreateElement(categoryID, name)
	}

	var out *models.Element
	err := s.atomically(func(st *state) error {
		ref, ok := st.idx.categories[categoryID]
		if !ok {
			return notFound("category", categoryID)
		}
		if err := validateName("element", name); err != nil {
			return err
		}
		peer, ok := st.idx.elements[d.PeerID]
		if !ok {
			return notFound("element", d.PeerID)
		}
		el := s.insertElement(st, ref, name)
		if err := s.joinElement(st, el, peer.element, d.MergeSubStructure); err != nil {
			return err
		}
		out = models.CloneElement(el)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created linked element", "id", out.ID, "peer", d.PeerID, "group", out.LinkedGroupID)
	return out, nil
}

// CreateSubElementLinked creates a sub-element and, when d names a peer,
// links it into the peer's group in the same step.
func (s *Store) CreateSubElementLinked(subCategoryID, name string, d Decision) (*models.SubElement, error) {
	if !d.IsLink() {
		return s.CreateSubElement(subCategoryID, name)
	}

	var out models.SubElement
	err := s.atomically(func(st *state) error {
		ref, ok := st.idx.subCategories[subCategoryID]
		if !ok {
			return notFound("sub-category", subCategoryID)
		}
		if err := validateName("sub-element", name); err != nil {
			return err
		}
		peer, ok := st.idx.subElements[d.PeerID]
		if !ok {
			return notFound("sub-element", d.PeerID)
		}
		se := s.insertSubElement(st, ref, name)
		s.joinSubElement(st, se, peer.subElement)
		out = *se
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created linked sub-element", "id", out.ID, "peer", d.PeerID, "group", out.LinkedGroupID)
	return &out, nil
}

// LinkElements puts an existing element into peerID's group. The element
// adopts the peer's synchronized values; if it was in another group, that
// whole group moves over with it.
func (s *Store) LinkElements(elementID, peerID string, merge bool) error {
	if elementID == peerID {
		return invalid("cannot link element %s to itself", elementID)
	}
	err := s.atomically(func(st *state) error {
		ref, ok := st.idx.elements[elementID]
		if !ok {
			return notFound("element", elementID)
		}
		peer, ok := st.idx.elements[peerID]
		if !ok {
			return notFound("element", peerID)
		}
		return s.joinElement(st, ref.element, peer.element, merge)
	})
	if err != nil {
		return err
	}
	s.logger.Debug("linked elements", "id", elementID, "peer", peerID, "merge", merge)
	return nil
}

// LinkSubElements puts an existing sub-element into peerID's group.
func (s *Store) LinkSubElements(subElementID, peerID string) error {
	if subElementID == peerID {
		return invalid("cannot link sub-element %s to itself", subElementID)
	}
	err := s.atomically(func(st *state) error {
		ref, ok := st.idx.subElements[subElementID]
		if !ok {
			return notFound("sub-element", subElementID)
		}
		peer, ok := st.idx.subElements[peerID]
		if !ok {
			return notFound("sub-element", peerID)
		}
		s.joinSubElement(st, ref.subElement, peer.subElement)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("linked sub-elements", "id", subElementID, "peer", peerID)
	return nil
}

// UnlinkElement takes an element out of its group. The remaining members keep
// their group id.
func (s *Store) UnlinkElement(id string) error {
	ref, ok := s.st.idx.elements[id]
	if !ok {
		return notFound("element", id)
	}
	s.st.idx.setElementGroup(ref.element, "")
	return nil
}

// UnlinkSubElement takes a sub-element out of its group.
func (s *Store) UnlinkSubElement(id string) error {
	ref, ok := s.st.idx.subElements[id]
	if !ok {
		return notFound("sub-element", id)
	}
	s.st.idx.setSubElementGroup(ref.subElement, "")
	return nil
}

// DuplicateElementLinked copies an element with its whole sub-structure under
// fresh ids and links the copy with the source. A copy into the source's own
// category lands right after the source.
func (s *Store) DuplicateElementLinked(elementID, targetCategoryID string) (*models.Element, error) {
	var out *models.Element
	err := s.atomically(func(st *state) error {
		src, ok := st.idx.elements[elementID]
		if !ok {
			return notFound("element", elementID)
		}
		target, ok := st.idx.categories[targetCategoryID]
		if !ok {
			return notFound("category", targetCategoryID)
		}

		if src.element.LinkedGroupID == "" {
			st.idx.setElementGroup(src.element, s.newID())
		}
		cp := s.freshCopy(src.element)

		list := target.category.Elements
		at := len(list)
		if target.category == src.category {
			at = slices.Index(list, src.element) + 1
		}
		target.category.Elements = slices.Insert(list, at, cp)
		st.idx.addElement(target.domain, target.category, cp)
		out = models.CloneElement(cp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("duplicated element", "source", elementID, "id", out.ID, "group", out.LinkedGroupID)
	return out, nil
}

// freshCopy deep-copies e, minting new ids for the element and everything
// below it. Sub-element links are not carried over.
func (s *Store) freshCopy(e *models.Element) *models.Element {
	cp := models.CloneElement(e)
	cp.ID = s.newID()
	for _, sc := range cp.SubCategories {
		sc.ID = s.newID()
		for _, se := range sc.SubElements {
			se.ID = s.newID()
			se.LinkedGroupID = ""
		}
	}
	return cp
}

// joinElement moves el (and any group it already belongs to) into peer's
// group, minting a group id for peer when it has none.
func (s *Store) joinElement(st *state, el, peer *models.Element, merge bool) error {
	if merge {
		s.copyMissing(st, el, peer)
		s.copyMissing(st, peer, el)
	}

	joining := []*models.Element{el}
	if old := el.LinkedGroupID; old != "" && old != peer.LinkedGroupID {
		for _, id := range members(st.idx.elementGroups, old, el.ID) {
			joining = append(joining, st.idx.elements[id].element)
		}
	}
	if peer.Status.IsInherited() {
		for _, e := range joining {
			if !e.HasSubCategories() {
				return invalidState("element %s has no sub-category to inherit from", e.ID)
			}
		}
	}

	gid := peer.LinkedGroupID
	if gid == "" {
		gid = s.newID()
		st.idx.setElementGroup(peer, gid)
	}
	for _, e := range joining {
		st.idx.setElementGroup(e, gid)
		s.adoptElement(e, peer)
	}
	return nil
}

func (s *Store) joinSubElement(st *state, se, peer *models.SubElement) {
	joining := []*models.SubElement{se}
	if old := se.LinkedGroupID; old != "" && old != peer.LinkedGroupID {
		for _, id := range members(st.idx.subElementGroups, old, se.ID) {
			joining = append(joining, st.idx.subElements[id].subElement)
		}
	}

	gid := peer.LinkedGroupID
	if gid == "" {
		gid = s.newID()
		st.idx.setSubElementGroup(peer, gid)
	}
	for _, x := range joining {
		st.idx.setSubElementGroup(x, gid)
		s.adoptSubElement(x, peer)
	}
}

// copyMissing adds to dst every sub-category and sub-element of src that dst
// lacks by name. Copies get fresh ids and no links.
func (s *Store) copyMissing(st *state, dst, src *models.Element) {
	dstRef := st.idx.elements[dst.ID]
	for _, sc := range src.SubCategories {
		into := dst.SubCategoryByName(sc.Name)
		if into == nil {
			into = &models.SubCategory{
				ID:          s.newID(),
				Name:        sc.Name,
				Icon:        sc.Icon,
				SubElements: []*models.SubElement{},
			}
			dst.SubCategories = append(dst.SubCategories, into)
			st.idx.addSubCategory(dstRef, into)
		}
		intoRef := st.idx.subCategories[into.ID]
		for _, se := range sc.SubElements {
			if into.SubElementByName(se.Name) != nil {
				continue
			}
			cp := *se
			cp.ID = s.newID()
			cp.LinkedGroupID = ""
			into.SubElements = append(into.SubElements, &cp)
			st.idx.addSubElement(intoRef, &cp)
		}
	}
}
