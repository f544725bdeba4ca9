package models

// Orientation defines how a category lays out its elements
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// IsValidOrientation checks if a string is a valid Orientation
func IsValidOrientation(s string) bool {
	return s == string(OrientationHorizontal) || s == string(OrientationVertical)
}

// Default domain template kinds. Renderers may define others.
const (
	TemplateStandard   = "standard"
	TemplateMap        = "map"
	TemplateBackground = "background"
)

// Cockpit is the root of a status board.
type Cockpit struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Domains  []*Domain         `json:"domains"`
	Zones    []*Zone           `json:"zones"`
	Settings map[string]string `json:"settings,omitempty"`
}

// Domain is a top-level section of a cockpit.
type Domain struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	TemplateType string      `json:"templateType"`
	Categories   []*Category `json:"categories"`
}

// Category groups elements along an orientation.
type Category struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Orientation Orientation `json:"orientation"`
	Elements    []*Element  `json:"elements"`
}

// Position places an element on free-placement templates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size sizes an element on free-placement templates.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Element is a monitored item inside a category.
type Element struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        OwnStatus      `json:"status"`
	LinkedGroupID string         `json:"linkedGroupId,omitempty"`
	Icon          string         `json:"icon,omitempty"`
	Icon2         string         `json:"icon2,omitempty"`
	Icon3         string         `json:"icon3,omitempty"`
	Value         string         `json:"value,omitempty"`
	Unit          string         `json:"unit,omitempty"`
	ZoneID        string         `json:"zone,omitempty"`
	Position      *Position      `json:"position,omitempty"`
	Size          *Size          `json:"size,omitempty"`
	SubCategories []*SubCategory `json:"subCategories"`
}

// SubCategory groups sub-elements inside an element.
type SubCategory struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon,omitempty"`
	SubElements []*SubElement `json:"subElements"`
}

// SubElement is the leaf of the hierarchy.
type SubElement struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        Status `json:"status"`
	LinkedGroupID string `json:"linkedGroupId,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Value         string `json:"value,omitempty"`
	Unit          string `json:"unit,omitempty"`
}

// HasSubCategories reports whether the element owns at least one sub-category.
func (e *Element) HasSubCategories() bool {
	return e != nil && len(e.SubCategories) > 0
}

// SubCategoryByName returns the first sub-category with the given name.
func (e *Element) SubCategoryByName(name string) *SubCategory {
	for _, sc := range e.SubCategories {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}

// SubElementByName returns the first sub-element with the given name.
func (sc *SubCategory) SubElementByName(name string) *SubElement {
	for _, se := range sc.SubElements {
		if se.Name == name {
			return se
		}
	}
	return nil
}
