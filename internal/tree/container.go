package tree

import (
	"slices"

	"github.com/fitz/cockpit/internal/models"
)

// CreateDomain appends a new domain. An empty template means the standard one.
func (s *Store) CreateDomain(name, templateType string) (*models.Domain, error) {
	if err := validateName("domain", name); err != nil {
		return nil, err
	}
	if templateType == "" {
		templateType = models.TemplateStandard
	}

	d := &models.Domain{
		ID:           s.newID(),
		Name:         name,
		TemplateType: templateType,
		Categories:   []*models.Category{},
	}
	s.st.cockpit.Domains = append(s.st.cockpit.Domains, d)
	s.st.idx.addDomain(d)
	return models.CloneDomain(d), nil
}

// UpdateDomain applies a partial update to a domain.
func (s *Store) UpdateDomain(id string, patch models.DomainPatch) error {
	d, ok := s.st.idx.domains[id]
	if !ok {
		return notFound("domain", id)
	}
	if patch.Name != nil {
		if err := validateName("domain", *patch.Name); err != nil {
			return err
		}
	}

	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.TemplateType != nil && *patch.TemplateType != "" {
		d.TemplateType = *patch.TemplateType
	}
	return nil
}

// DeleteDomain removes a domain and everything it owns. Elements linked to
// elements of the domain keep their group id.
func (s *Store) DeleteDomain(id string) error {
	d, ok := s.st.idx.domains[id]
	if !ok {
		return notFound("domain", id)
	}
	s.st.cockpit.Domains = slices.DeleteFunc(s.st.cockpit.Domains, func(x *models.Domain) bool { return x == d })
	s.st.idx.removeDomain(d)
	return nil
}

// CreateCategory appends a new category to a domain. An empty orientation
// means horizontal.
func (s *Store) CreateCategory(domainID, name string, orientation models.Orientation) (*models.Category, error) {
	d, ok := s.st.idx.domains[domainID]
	if !ok {
		return nil, notFound("domain", domainID)
	}
	if err := validateName("category", name); err != nil {
		return nil, err
	}
	if orientation == "" {
		orientation = models.OrientationHorizontal
	}
	if !models.IsValidOrientation(string(orientation)) {
		return nil, invalid("invalid orientation %q", orientation)
	}

	c := &models.Category{
		ID:          s.newID(),
		Name:        name,
		Orientation: orientation,
		Elements:    []*models.Element{},
	}
	d.Categories = append(d.Categories, c)
	s.st.idx.addCategory(d, c)
	return models.CloneCategory(c), nil
}

// Category returns a copy of the category with the given id.
func (s *Store) Category(id string) (*models.Category, error) {
	ref, ok := s.st.idx.categories[id]
	if !ok {
		return nil, notFound("category", id)
	}
	return models.CloneCategory(ref.category), nil
}

// UpdateCategory applies a partial update to a category.
func (s *Store) UpdateCategory(id string, patch models.CategoryPatch) error {
	ref, ok := s.st.idx.categories[id]
	if !ok {
		return notFound("category", id)
	}
	if patch.Name != nil {
		if err := validateName("category", *patch.Name); err != nil {
			return err
		}
	}
	if patch.Orientation != nil && !models.IsValidOrientation(string(*patch.Orientation)) {
		return invalid("invalid orientation %q", *patch.Orientation)
	}

	if patch.Name != nil {
		ref.category.Name = *patch.Name
	}
	if patch.Orientation != nil {
		ref.category.Orientation = *patch.Orientation
	}
	return nil
}

// DeleteCategory removes a category and its elements.
func (s *Store) DeleteCategory(id string) error {
	ref, ok := s.st.idx.categories[id]
	if !ok {
		return notFound("category", id)
	}
	ref.domain.Categories = slices.DeleteFunc(ref.domain.Categories, func(x *models.Category) bool { return x == ref.category })
	s.st.idx.removeCategory(ref.category)
	return nil
}

// CreateSubCategory appends a new sub-category to an element.
func (s *Store) CreateSubCategory(elementID, name string) (*models.SubCategory, error) {
	ref, ok := s.st.idx.elements[elementID]
	if !ok {
		return nil, notFound("element", elementID)
	}
	if err := validateName("sub-category", name); err != nil {
		return nil, err
	}

	sc := &models.SubCategory{
		ID:          s.newID(),
		Name:        name,
		SubElements: []*models.SubElement{},
	}
	ref.element.SubCategories = append(ref.element.SubCategories, sc)
	s.st.idx.addSubCategory(ref, sc)
	return models.CloneSubCategory(sc), nil
}

// SubCategory returns a copy of the sub-category with the given id.
func (s *Store) SubCategory(id string) (*models.SubCategory, error) {
	ref, ok := s.st.idx.subCategories[id]
	if !ok {
		return nil, notFound("sub-category", id)
	}
	return models.CloneSubCategory(ref.subCategory), nil
}

// UpdateSubCategory applies a partial update to a sub-category.
func (s *Store) UpdateSubCategory(id string, patch models.SubCategoryPatch) error {
	ref, ok := s.st.idx.subCategories[id]
	if !ok {
		return notFound("sub-category", id)
	}
	if patch.Name != nil {
		if err := validateName("sub-category", *patch.Name); err != nil {
			return err
		}
		ref.subCategory.Name = *patch.Name
	}
	if patch.Icon != nil {
		ref.subCategory.Icon = *patch.Icon
	}
	return nil
}

// DeleteSubCategory removes a sub-category and its sub-elements. The last
// sub-category of an element with an inherited status cannot be removed.
func (s *Store) DeleteSubCategory(id string) error {
	ref, ok := s.st.idx.subCategories[id]
	if !ok {
		return notFound("sub-category", id)
	}
	el := ref.element
	if el.Status.IsInherited() && len(el.SubCategories) == 1 {
		return invalidState("element %s inherits its status and would have no sub-category left", el.ID)
	}

	el.SubCategories = slices.DeleteFunc(el.SubCategories, func(x *models.SubCategory) bool { return x == ref.subCategory })
	s.st.idx.removeSubCategory(ref.subCategory)
	return nil
}

// AddZone appends a zone tag to the cockpit.
func (s *Store) AddZone(name string) (*models.Zone, error) {
	if err := validateName("zone", name); err != nil {
		return nil, err
	}
	z := &models.Zone{ID: s.newID(), Name: name}
	s.st.cockpit.Zones = append(s.st.cockpit.Zones, z)
	zc := *z
	return &zc, nil
}

// DeleteZone removes a zone and clears it from every element tagged with it.
func (s *Store) DeleteZone(id string) error {
	c := s.st.cockpit
	if c.ZoneByID(id) == nil {
		return notFound("zone", id)
	}
	c.Zones = slices.DeleteFunc(c.Zones, func(z *models.Zone) bool { return z.ID == id })
	for _, ref := range s.st.idx.elements {
		if ref.element.ZoneID == id {
			ref.element.ZoneID = ""
		}
	}
	return nil
}
