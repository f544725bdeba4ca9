package tree

import (
	"slices"

	"github.com/fitz/cockpit/internal/models"
)

// MoveElement removes an element from one category and appends it to another.
// Moving to the same category is a no-op.
func (s *Store) MoveElement(elementID, fromCategoryID, toCategoryID string) error {
	from, ok := s.st.idx.categories[fromCategoryID]
	if !ok {
		return notFound("category", fromCategoryID)
	}
	to, ok := s.st.idx.categories[toCategoryID]
	if !ok {
		return notFound("category", toCategoryID)
	}
	i := slices.IndexFunc(from.category.Elements, func(e *models.Element) bool { return e.ID == elementID })
	if i < 0 {
		return notFound("element", elementID)
	}
	if fromCategoryID == toCategoryID {
		return nil
	}

	el := from.category.Elements[i]
	from.category.Elements = slices.Delete(from.category.Elements, i, i+1)
	to.category.Elements = append(to.category.Elements, el)

	// Re-index so that the element's subtree points at its new parents.
	s.st.idx.removeElement(el)
	s.st.idx.addElement(to.domain, to.category, el)
	return nil
}

// MoveSubElement removes a sub-element from one sub-category and appends it
// to another. Moving to the same sub-category is a no-op.
func (s *Store) MoveSubElement(subElementID, fromSubCategoryID, toSubCategoryID string) error {
	from, ok := s.st.idx.subCategories[fromSubCategoryID]
	if !ok {
		return notFound("sub-category", fromSubCategoryID)
	}
	to, ok := s.st.idx.subCategories[toSubCategoryID]
	if !ok {
		return notFound("sub-category", toSubCategoryID)
	}
	i := slices.IndexFunc(from.subCategory.SubElements, func(se *models.SubElement) bool { return se.ID == subElementID })
	if i < 0 {
		return notFound("sub-element", subElementID)
	}
	if fromSubCategoryID == toSubCategoryID {
		return nil
	}

	se := from.subCategory.SubElements[i]
	from.subCategory.SubElements = slices.Delete(from.subCategory.SubElements, i, i+1)
	to.subCategory.SubElements = append(to.subCategory.SubElements, se)
	s.st.idx.removeSubElement(se)
	s.st.idx.addSubElement(to, se)
	return nil
}

// ReorderElement moves an element to targetIndex within its category.
func (s *Store) ReorderElement(elementID, categoryID string, targetIndex int) error {
	ref, ok := s.st.idx.categories[categoryID]
	if !ok {
		return notFound("category", categoryID)
	}
	list, err := reorder(ref.category.Elements, func(e *models.Element) bool { return e.ID == elementID }, targetIndex)
	if err != nil {
		return notFound("element", elementID)
	}
	ref.category.Elements = list
	return nil
}

// ReorderSubElement moves a sub-element to targetIndex within its sub-category.
func (s *Store) ReorderSubElement(subElementID, subCategoryID string, targetIndex int) error {
	ref, ok := s.st.idx.subCategories[subCategoryID]
	if !ok {
		return notFound("sub-category", subCategoryID)
	}
	list, err := reorder(ref.subCategory.SubElements, func(se *models.SubElement) bool { return se.ID == subElementID }, targetIndex)
	if err != nil {
		return notFound("sub-element", subElementID)
	}
	ref.subCategory.SubElements = list
	return nil
}

// reorder removes the matching item and re-inserts it at target, clamped to
// the bounds of the shortened list.
func reorder[T any](list []T, match func(T) bool, target int) ([]T, error) {
	i := slices.IndexFunc(list, match)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := list[i]
	list = slices.Delete(list, i, i+1)
	target = max(0, min(target, len(list)))
	return slices.Insert(list, target, item), nil
}

// Point is a pointer position in the caller's coordinate space.
type Point struct {
	X float64
	Y float64
}

// Rect is the bounding box of a drop target.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DropIndex turns a drag-and-drop gesture into the index to pass to
// ReorderElement or ReorderSubElement. A pointer before the midpoint of the
// target (on the axis of the orientation) drops before it, anything else
// after it. The result accounts for the dragged item leaving the list first.
func DropIndex(orientation models.Orientation, dragIndex, targetIndex int, pointer Point, target Rect) int {
	pos, mid := pointer.X, target.X+target.Width/2
	if orientation == models.OrientationVertical {
		pos, mid = pointer.Y, target.Y+target.Height/2
	}

	idx := targetIndex
	if pos >= mid {
		idx++
	}
	if dragIndex < idx {
		idx--
	}
	return idx
}
