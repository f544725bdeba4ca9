package tools

import (
	"github.com/fitz/cockpit/internal/models"
	"github.com/fitz/cockpit/internal/tree"
)

// Views are the wire shapes returned by tools. Statuses travel as plain
// strings so the generated output schemas stay simple.

// CockpitView is a full cockpit tree.
type CockpitView struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Domains  []DomainView      `json:"domains"`
	Zones    []ZoneView        `json:"zones"`
	Settings map[string]string `json:"settings,omitempty"`
}

// DomainView is a domain with its categories.
type DomainView struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	TemplateType string         `json:"template_type"`
	Categories   []CategoryView `json:"categories"`
}

// CategoryView is a category with its elements.
type CategoryView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Orientation string        `json:"orientation"`
	Elements    []ElementView `json:"elements"`
}

// ElementView is an element with its own and its effective status.
type ElementView struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Status          string            `json:"status"`
	EffectiveStatus string            `json:"effective_status"`
	Color           string            `json:"color"`
	LinkedGroupID   string            `json:"linked_group_id,omitempty"`
	Icon            string            `json:"icon,omitempty"`
	Icon2           string            `json:"icon2,omitempty"`
	Icon3           string            `json:"icon3,omitempty"`
	Value           string            `json:"value,omitempty"`
	Unit            string            `json:"unit,omitempty"`
	Zone            string            `json:"zone,omitempty"`
	X               *float64          `json:"x,omitempty"`
	Y               *float64          `json:"y,omitempty"`
	Width           *float64          `json:"width,omitempty"`
	Height          *float64          `json:"height,omitempty"`
	SubCategories   []SubCategoryView `json:"sub_categories"`
}

// SubCategoryView is a sub-category with its sub-elements.
type SubCategoryView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Icon        string           `json:"icon,omitempty"`
	SubElements []SubElementView `json:"sub_elements"`
}

// SubElementView is a leaf of the tree.
type SubElementView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	LinkedGroupID string `json:"linked_group_id,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Value         string `json:"value,omitempty"`
	Unit          string `json:"unit,omitempty"`
}

// ZoneView is a zone tag.
type ZoneView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ElementMatchView is an element found by name.
type ElementMatchView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	CategoryID    string `json:"category_id"`
	LinkedGroupID string `json:"linked_group_id,omitempty"`
	Status        string `json:"status"`
}

// SubElementMatchView is a sub-element found by name.
type SubElementMatchView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	SubCategoryID string `json:"sub_category_id"`
	ElementID     string `json:"element_id"`
	LinkedGroupID string `json:"linked_group_id,omitempty"`
	Status        string `json:"status"`
}

// ElementCandidateView is a link target offered when a name collides.
type ElementCandidateView struct {
	Element   ElementMatchView   `json:"element"`
	GroupSize int                `json:"group_size"`
	Members   []ElementMatchView `json:"members,omitempty"`
}

// SubElementCandidateView is the sub-element counterpart of ElementCandidateView.
type SubElementCandidateView struct {
	SubElement SubElementMatchView   `json:"sub_element"`
	GroupSize  int                   `json:"group_size"`
	Members    []SubElementMatchView `json:"members,omitempty"`
}

func cockpitView(s *tree.Store, c *models.Cockpit) CockpitView {
	v := CockpitView{
		ID:       c.ID,
		Name:     c.Name,
		Domains:  make([]DomainView, 0, len(c.Domains)),
		Zones:    make([]ZoneView, 0, len(c.Zones)),
		Settings: c.Settings,
	}
	for _, d := range c.Domains {
		v.Domains = append(v.Domains, domainView(s, d))
	}
	for _, z := range c.Zones {
		v.Zones = append(v.Zones, ZoneView{ID: z.ID, Name: z.Name})
	}
	return v
}

func domainView(s *tree.Store, d *models.Domain) DomainView {
	v := DomainView{
		ID:           d.ID,
		Name:         d.Name,
		TemplateType: d.TemplateType,
		Categories:   make([]CategoryView, 0, len(d.Categories)),
	}
	for _, c := range d.Categories {
		v.Categories = append(v.Categories, categoryView(s, c))
	}
	return v
}

func categoryView(s *tree.Store, c *models.Category) CategoryView {
	v := CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Orientation: string(c.Orientation),
		Elements:    make([]ElementView, 0, len(c.Elements)),
	}
	for _, e := range c.Elements {
		v.Elements = append(v.Elements, elementView(s, e))
	}
	return v
}

func elementView(s *tree.Store, e *models.Element) ElementView {
	v := ElementView{
		ID:              e.ID,
		Name:            e.Name,
		Status:          e.Status.String(),
		EffectiveStatus: string(s.EffectiveStatus(e.ID)),
		Color:           s.EffectiveColor(e.ID),
		LinkedGroupID:   e.LinkedGroupID,
		Icon:            e.Icon,
		Icon2:           e.Icon2,
		Icon3:           e.Icon3,
		Value:           e.Value,
		Unit:            e.Unit,
		Zone:            e.ZoneID,
		SubCategories:   make([]SubCategoryView, 0, len(e.SubCategories)),
	}
	if e.Position != nil {
		v.X, v.Y = &e.Position.X, &e.Position.Y
	}
	if e.Size != nil {
		v.Width, v.Height = &e.Size.Width, &e.Size.Height
	}
	for _, sc := range e.SubCategories {
		v.SubCategories = append(v.SubCategories, subCategoryView(sc))
	}
	return v
}

func subCategoryView(sc *models.SubCategory) SubCategoryView {
	v := SubCategoryView{
		ID:          sc.ID,
		Name:        sc.Name,
		Icon:        sc.Icon,
		SubElements: make([]SubElementView, 0, len(sc.SubElements)),
	}
	for _, se := range sc.SubElements {
		v.SubElements = append(v.SubElements, subElementView(se))
	}
	return v
}

func subElementView(se *models.SubElement) SubElementView {
	return SubElementView{
		ID:            se.ID,
		Name:          se.Name,
		Status:        string(se.Status),
		LinkedGroupID: se.LinkedGroupID,
		Icon:          se.Icon,
		Value:         se.Value,
		Unit:          se.Unit,
	}
}

func elementMatchView(m tree.ElementMatch) ElementMatchView {
	return ElementMatchView{
		ID:            m.ID,
		Name:          m.Name,
		Path:          m.Path,
		CategoryID:    m.CategoryID,
		LinkedGroupID: m.LinkedGroupID,
		Status:        m.Status.String(),
	}
}

func subElementMatchView(m tree.SubElementMatch) SubElementMatchView {
	return SubElementMatchView{
		ID:            m.ID,
		Name:          m.Name,
		Path:          m.Path,
		SubCategoryID: m.SubCategoryID,
		ElementID:     m.ElementID,
		LinkedGroupID: m.LinkedGroupID,
		Status:        string(m.Status),
	}
}

func elementMatchViews(ms []tree.ElementMatch) []ElementMatchView {
	out := make([]ElementMatchView, 0, len(ms))
	for _, m := range ms {
		out = append(out, elementMatchView(m))
	}
	return out
}

func subElementMatchViews(ms []tree.SubElementMatch) []SubElementMatchView {
	out := make([]SubElementMatchView, 0, len(ms))
	for _, m := range ms {
		out = append(out, subElementMatchView(m))
	}
	return out
}

func elementCandidateViews(cs []tree.ElementCandidate) []ElementCandidateView {
	out := make([]ElementCandidateView, 0, len(cs))
	for _, c := range cs {
		out = append(out, ElementCandidateView{
			Element:   elementMatchView(c.ElementMatch),
			GroupSize: c.GroupSize,
			Members:   elementMatchViews(c.Members),
		})
	}
	return out
}

func subElementCandidateViews(cs []tree.SubElementCandidate) []SubElementCandidateView {
	out := make([]SubElementCandidateView, 0, len(cs))
	for _, c := range cs {
		out = append(out, SubElementCandidateView{
			SubElement: subElementMatchView(c.SubElementMatch),
			GroupSize:  c.GroupSize,
			Members:    subElementMatchViews(c.Members),
		})
	}
	return out
}
