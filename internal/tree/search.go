package tree

import (
	"strings"

	"github.com/fitz/cockpit/internal/models"
)

const pathSeparator = " > "

// ElementMatch is an element found by name.
type ElementMatch struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Path          string           `json:"path"`
	CategoryID    string           `json:"categoryId"`
	LinkedGroupID string           `json:"linkedGroupId,omitempty"`
	Status        models.OwnStatus `json:"status"`
}

// SubElementMatch is a sub-element found by name.
type SubElementMatch struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Path          string        `json:"path"`
	SubCategoryID string        `json:"subCategoryId"`
	ElementID     string        `json:"elementId"`
	LinkedGroupID string        `json:"linkedGroupId,omitempty"`
	Status        models.Status `json:"status"`
}

// ElementCandidate is one link target offered to the user: either a whole
// linked group or a single unlinked element.
type ElementCandidate struct {
	ElementMatch
	GroupSize int            `json:"groupSize"`
	Members   []ElementMatch `json:"members"`
}

// SubElementCandidate is the sub-element counterpart of ElementCandidate.
type SubElementCandidate struct {
	SubElementMatch
	GroupSize int               `json:"groupSize"`
	Members   []SubElementMatch `json:"members"`
}

// FindElementsByName returns every element whose name equals name exactly,
// in tree order.
func (s *Store) FindElementsByName(name string) []ElementMatch {
	var out []ElementMatch
	for _, d := range s.st.cockpit.Domains {
		for _, c := range d.Categories {
			for _, e := range c.Elements {
				if e.Name != name {
					continue
				}
				out = append(out, ElementMatch{
					ID:            e.ID,
					Name:          e.Name,
					Path:          joinPath(d.Name, c.Name),
					CategoryID:    c.ID,
					LinkedGroupID: e.LinkedGroupID,
					Status:        e.Status,
				})
			}
		}
	}
	return out
}

// FindSubElementsByName returns every sub-element whose name equals name
// exactly, in tree order.
func (s *Store) FindSubElementsByName(name string) []SubElementMatch {
	var out []SubElementMatch
	for _, d := range s.st.cockpit.Domains {
		for _, c := range d.Categories {
			for _, e := range c.Elements {
				for _, sc := range e.SubCategories {
					for _, se := range sc.SubElements {
						if se.Name != name {
							continue
						}
						out = append(out, SubElementMatch{
							ID:            se.ID,
							Name:          se.Name,
							Path:          joinPath(d.Name, c.Name, e.Name, sc.Name),
							SubCategoryID: sc.ID,
							ElementID:     e.ID,
							LinkedGroupID: se.LinkedGroupID,
							Status:        se.Status,
						})
					}
				}
			}
		}
	}
	return out
}

// GroupElementMatches folds matches that share a linked group into a single
// candidate represented by its first match. GroupSize counts every live member
// of the group, matching or not.
func (s *Store) GroupElementMatches(matches []ElementMatch) []ElementCandidate {
	var out []ElementCandidate
	pos := make(map[string]int)
	for _, m := range matches {
		if m.LinkedGroupID == "" {
			out = append(out, ElementCandidate{ElementMatch: m, GroupSize: 1, Members: []ElementMatch{m}})
			continue
		}
		if i, ok := pos[m.LinkedGroupID]; ok {
			out[i].Members = append(out[i].Members, m)
			continue
		}
		pos[m.LinkedGroupID] = len(out)
		out = append(out, ElementCandidate{
			ElementMatch: m,
			GroupSize:    max(1, len(s.st.idx.elementGroups[m.LinkedGroupID])),
			Members:      []ElementMatch{m},
		})
	}
	return out
}

// GroupSubElementMatches is GroupElementMatches for sub-elements.
func (s *Store) GroupSubElementMatches(matches []SubElementMatch) []SubElementCandidate {
	var out []SubElementCandidate
	pos := make(map[string]int)
	for _, m := range matches {
		if m.LinkedGroupID == "" {
			out = append(out, SubElementCandidate{SubElementMatch: m, GroupSize: 1, Members: []SubElementMatch{m}})
			continue
		}
		if i, ok := pos[m.LinkedGroupID]; ok {
			out[i].Members = append(out[i].Members, m)
			continue
		}
		pos[m.LinkedGroupID] = len(out)
		out = append(out, SubElementCandidate{
			SubElementMatch: m,
			GroupSize:       max(1, len(s.st.idx.subElementGroups[m.LinkedGroupID])),
			Members:         []SubElementMatch{m},
		})
	}
	return out
}

func joinPath(parts ...string) string {
	return strings.Join(parts, pathSeparator)
}
