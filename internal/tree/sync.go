package tree

import "github.com/fitz/cockpit/internal/models"

// syncedElementFields keeps only the fields of p that linked elements share.
func (s *Store) syncedElementFields(p models.ElementPatch) models.ElementPatch {
	out := models.ElementPatch{
		Status: p.Status,
		Icon:   p.Icon,
		Icon2:  p.Icon2,
		Icon3:  p.Icon3,
		Value:  p.Value,
		Unit:   p.Unit,
	}
	if s.syncName {
		out.Name = p.Name
	}
	return out
}

func (s *Store) syncedSubElementFields(p models.SubElementPatch) models.SubElementPatch {
	out := models.SubElementPatch{
		Status: p.Status,
		Icon:   p.Icon,
		Value:  p.Value,
		Unit:   p.Unit,
	}
	if s.syncName {
		out.Name = p.Name
	}
	return out
}

// adoptElement copies the synchronized values of src onto dst.
func (s *Store) adoptElement(dst, src *models.Element) {
	dst.Status = src.Status
	dst.Icon = src.Icon
	dst.Icon2 = src.Icon2
	dst.Icon3 = src.Icon3
	dst.Value = src.Value
	dst.Unit = src.Unit
	if s.syncName {
		dst.Name = src.Name
	}
}

func (s *Store) adoptSubElement(dst, src *models.SubElement) {
	dst.Status = src.Status
	dst.Icon = src.Icon
	dst.Value = src.Value
	dst.Unit = src.Unit
	if s.syncName {
		dst.Name = src.Name
	}
}
