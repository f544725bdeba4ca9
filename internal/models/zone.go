package models

// Zone is a flat tag that elements of a cockpit can be assigned to.
// Zones carry no hierarchy of their own.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ZoneByID returns the zone with the given id, or nil.
func (c *Cockpit) ZoneByID(id string) *Zone {
	for _, z := range c.Zones {
		if z.ID == id {
			return z
		}
	}
	return nil
}
