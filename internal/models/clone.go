package models

// CloneCockpit returns a deep copy of c.
func CloneCockpit(c *Cockpit) *Cockpit {
	if c == nil {
		return nil
	}
	out := &Cockpit{
		ID:      c.ID,
		Name:    c.Name,
		Domains: make([]*Domain, 0, len(c.Domains)),
		Zones:   make([]*Zone, 0, len(c.Zones)),
	}
	for _, d := range c.Domains {
		out.Domains = append(out.Domains, CloneDomain(d))
	}
	for _, z := range c.Zones {
		zc := *z
		out.Zones = append(out.Zones, &zc)
	}
	if c.Settings != nil {
		out.Settings = make(map[string]string, len(c.Settings))
		for k, v := range c.Settings {
			out.Settings[k] = v
		}
	}
	return out
}

// CloneDomain returns a deep copy of d.
func CloneDomain(d *Domain) *Domain {
	out := *d
	out.Categories = make([]*Category, 0, len(d.Categories))
	for _, c := range d.Categories {
		out.Categories = append(out.Categories, CloneCategory(c))
	}
	return &out
}

// CloneCategory returns a deep copy of c.
func CloneCategory(c *Category) *Category {
	out := *c
	out.Elements = make([]*Element, 0, len(c.Elements))
	for _, e := range c.Elements {
		out.Elements = append(out.Elements, CloneElement(e))
	}
	return &out
}

// CloneElement returns a deep copy of e, ids included.
func CloneElement(e *Element) *Element {
	out := *e
	if e.Position != nil {
		p := *e.Position
		out.Position = &p
	}
	if e.Size != nil {
		s := *e.Size
		out.Size = &s
	}
	out.SubCategories = make([]*SubCategory, 0, len(e.SubCategories))
	for _, sc := range e.SubCategories {
		out.SubCategories = append(out.SubCategories, CloneSubCategory(sc))
	}
	return &out
}

// CloneSubCategory returns a deep copy of sc.
func CloneSubCategory(sc *SubCategory) *SubCategory {
	out := *sc
	out.SubElements = make([]*SubElement, 0, len(sc.SubElements))
	for _, se := range sc.SubElements {
		sec := *se
		out.SubElements = append(out.SubElements, &sec)
	}
	return &out
}
