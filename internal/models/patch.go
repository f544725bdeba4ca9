package models

// ElementPatch is a partial update of an element. Nil fields are left untouched.
type ElementPatch struct {
	Name     *string
	Status   *OwnStatus
	Icon     *string
	Icon2    *string
	Icon3    *string
	Value    *string
	Unit     *string
	ZoneID   *string
	Position *Position
	Size     *Size
}

// IsEmpty reports whether the patch changes nothing.
func (p ElementPatch) IsEmpty() bool {
	return p.Name == nil && p.Status == nil && p.Icon == nil && p.Icon2 == nil &&
		p.Icon3 == nil && p.Value == nil && p.Unit == nil && p.ZoneID == nil &&
		p.Position == nil && p.Size == nil
}

// SubElementPatch is a partial update of a sub-element.
type SubElementPatch struct {
	Name   *string
	Status *Status
	Icon   *string
	Value  *string
	Unit   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SubElementPatch) IsEmpty() bool {
	return p.Name == nil && p.Status == nil && p.Icon == nil && p.Value == nil && p.Unit == nil
}

// DomainPatch is a partial update of a domain.
type DomainPatch struct {
	Name         *string
	TemplateType *string
}

// CategoryPatch is a partial update of a category.
type CategoryPatch struct {
	Name        *string
	Orientation *Orientation
}

// SubCategoryPatch is a partial update of a sub-category.
type SubCategoryPatch struct {
	Name *string
	Icon *string
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
