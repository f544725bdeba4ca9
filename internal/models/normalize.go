package models

// Normalize repairs a cockpit loaded from storage in place: missing
// collections become empty, missing statuses become ok, missing orientations
// become horizontal, an inherited element without sub-categories becomes ok,
// and entities without an id (or reusing an id already
// seen for their kind) receive a fresh one from newID.
func Normalize(c *Cockpit, newID func() string) {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Domains == nil {
		c.Domains = []*Domain{}
	}
	if c.Zones == nil {
		c.Zones = []*Zone{}
	}

	seen := map[string]map[string]bool{
		"zone": {}, "domain": {}, "category": {}, "element": {}, "subcategory": {}, "subelement": {},
	}
	ensureID := func(kind string, id *string) {
		if *id == "" || seen[kind][*id] {
			*id = newID()
		}
		seen[kind][*id] = true
	}

	c.Zones = compact(c.Zones)
	for _, z := range c.Zones {
		ensureID("zone", &z.ID)
	}

	c.Domains = compact(c.Domains)
	for _, d := range c.Domains {
		ensureID("domain", &d.ID)
		if d.TemplateType == "" {
			d.TemplateType = TemplateStandard
		}
		d.Categories = compact(d.Categories)
		for _, cat := range d.Categories {
			ensureID("category", &cat.ID)
			if !IsValidOrientation(string(cat.Orientation)) {
				cat.Orientation = OrientationHorizontal
			}
			cat.Elements = compact(cat.Elements)
			for _, e := range cat.Elements {
				ensureID("element", &e.ID)
				e.SubCategories = compact(e.SubCategories)
				if e.Status.IsInherited() && len(e.SubCategories) == 0 {
					e.Status = Explicit(StatusOK)
				}
				for _, sc := range e.SubCategories {
					ensureID("subcategory", &sc.ID)
					sc.SubElements = compact(sc.SubElements)
					for _, se := range sc.SubElements {
						ensureID("subelement", &se.ID)
						if !IsValidStatus(string(se.Status)) {
							se.Status = StatusOK
						}
					}
				}
			}
		}
	}
}

// compact drops nil entries and turns a nil slice into an empty one.
func compact[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
