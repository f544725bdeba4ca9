package tree

import (
	"sort"

	"github.com/fitz/cockpit/internal/models"
)

type categoryRef struct {
	domain   *models.Domain
	category *models.Category
}

type elementRef struct {
	domain   *models.Domain
	category *models.Category
	element  *models.Element
}

type subCategoryRef struct {
	elementRef
	subCategory *models.SubCategory
}

type subElementRef struct {
	subCategoryRef
	subElement *models.SubElement
}

// index locates every entity of a cockpit by id and keeps the explicit
// linked-group membership for both linkable kinds.
type index struct {
	domains       map[string]*models.Domain
	categories    map[string]categoryRef
	elements      map[string]elementRef
	subCategories map[string]subCategoryRef
	subElements   map[string]subElementRef

	elementGroups    map[string]map[string]bool
	subElementGroups map[string]map[string]bool
}

func buildIndex(c *models.Cockpit) *index {
	ix := &index{
		domains:          make(map[string]*models.Domain),
		categories:       make(map[string]categoryRef),
		elements:         make(map[string]elementRef),
		subCategories:    make(map[string]subCategoryRef),
		subElements:      make(map[string]subElementRef),
		elementGroups:    make(map[string]map[string]bool),
		subElementGroups: make(map[string]map[string]bool),
	}
	for _, d := range c.Domains {
		ix.addDomain(d)
	}
	return ix
}

func (ix *index) addDomain(d *models.Domain) {
	ix.domains[d.ID] = d
	for _, c := range d.Categories {
		ix.addCategory(d, c)
	}
}

func (ix *index) addCategory(d *models.Domain, c *models.Category) {
	ix.categories[c.ID] = categoryRef{domain: d, category: c}
	for _, e := range c.Elements {
		ix.addElement(d, c, e)
	}
}

func (ix *index) addElement(d *models.Domain, c *models.Category, e *models.Element) {
	ref := elementRef{domain: d, category: c, element: e}
	ix.elements[e.ID] = ref
	join(ix.elementGroups, e.LinkedGroupID, e.ID)
	for _, sc := range e.SubCategories {
		ix.addSubCategory(ref, sc)
	}
}

func (ix *index) addSubCategory(parent elementRef, sc *models.SubCategory) {
	ref := subCategoryRef{elementRef: parent, subCategory: sc}
	ix.subCategories[sc.ID] = ref
	for _, se := range sc.SubElements {
		ix.addSubElement(ref, se)
	}
}

func (ix *index) addSubElement(parent subCategoryRef, se *models.SubElement) {
	ix.subElements[se.ID] = subElementRef{subCategoryRef: parent, subElement: se}
	join(ix.subElementGroups, se.LinkedGroupID, se.ID)
}

func (ix *index) removeDomain(d *models.Domain) {
	for _, c := range d.Categories {
		ix.removeCategory(c)
	}
	delete(ix.domains, d.ID)
}

func (ix *index) removeCategory(c *models.Category) {
	for _, e := range c.Elements {
		ix.removeElement(e)
	}
	delete(ix.categories, c.ID)
}

func (ix *index) removeElement(e *models.Element) {
	for _, sc := range e.SubCategories {
		ix.removeSubCategory(sc)
	}
	leave(ix.elementGroups, e.LinkedGroupID, e.ID)
	delete(ix.elements, e.ID)
}

func (ix *index) removeSubCategory(sc *models.SubCategory) {
	for _, se := range sc.SubElements {
		ix.removeSubElement(se)
	}
	delete(ix.subCategories, sc.ID)
}

func (ix *index) removeSubElement(se *models.SubElement) {
	leave(ix.subElementGroups, se.LinkedGroupID, se.ID)
	delete(ix.subElements, se.ID)
}

// setElementGroup moves an element to another group, keeping the index in step.
func (ix *index) setElementGroup(e *models.Element, groupID string) {
	leave(ix.elementGroups, e.LinkedGroupID, e.ID)
	e.LinkedGroupID = groupID
	join(ix.elementGroups, groupID, e.ID)
}

func (ix *index) setSubElementGroup(se *models.SubElement, groupID string) {
	leave(ix.subElementGroups, se.LinkedGroupID, se.ID)
	se.LinkedGroupID = groupID
	join(ix.subElementGroups, groupID, se.ID)
}

// elementPeers returns the other live members of e's group, ordered by id.
func (ix *index) elementPeers(e *models.Element) []*models.Element {
	var peers []*models.Element
	for _, id := range members(ix.elementGroups, e.LinkedGroupID, e.ID) {
		if ref, ok := ix.elements[id]; ok {
			peers = append(peers, ref.element)
		}
	}
	return peers
}

func (ix *index) subElementPeers(se *models.SubElement) []*models.SubElement {
	var peers []*models.SubElement
	for _, id := range members(ix.subElementGroups, se.LinkedGroupID, se.ID) {
		if ref, ok := ix.subElements[id]; ok {
			peers = append(peers, ref.subElement)
		}
	}
	return peers
}

func join(groups map[string]map[string]bool, groupID, id string) {
	if groupID == "" {
		return
	}
	set, ok := groups[groupID]
	if !ok {
		set = make(map[string]bool)
		groups[groupID] = set
	}
	set[id] = true
}

func leave(groups map[string]map[string]bool, groupID, id string) {
	if groupID == "" {
		return
	}
	set, ok := groups[groupID]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(groups, groupID)
	}
}

func members(groups map[string]map[string]bool, groupID, exclude string) []string {
	if groupID == "" {
		return nil
	}
	ids := make([]string, 0, len(groups[groupID]))
	for id := range groups[groupID] {
		if id != exclude {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
