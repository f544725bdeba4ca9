package models

import (
	"encoding/json"
	"fmt"
	"testing"
)

func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func TestNormalize_MissingCollections(t *testing.T) {
	var c Cockpit
	data := `{"id":"c1","name":"Plant","domains":[{"id":"d1","name":"A","categories":[{"id":"k1","name":"Pumps","elements":[{"id":"e1","name":"Pump 1"}]}]}]}`
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	Normalize(&c, sequence())

	if c.Zones == nil {
		t.Error("Zones should be empty, not nil")
	}
	d := c.Domains[0]
	if d.TemplateType != TemplateStandard {
		t.Errorf("TemplateType: got %q, want %q", d.TemplateType, TemplateStandard)
	}
	cat := d.Categories[0]
	if cat.Orientation != OrientationHorizontal {
		t.Errorf("Orientation: got %q, want horizontal", cat.Orientation)
	}
	el := cat.Elements[0]
	if el.SubCategories == nil {
		t.Error("SubCategories should be empty, not nil")
	}
	if s, _ := el.Status.Explicit(); s != StatusOK {
		t.Errorf("Status: got %s, want ok", s)
	}
}

func TestNormalize_RepairsIDs(t *testing.T) {
	c := &Cockpit{
		Domains: []*Domain{
			{ID: "d1", Categories: []*Category{
				{ID: "k1", Elements: []*Element{{ID: "e1"}, {ID: "e1"}, {}}},
			}},
			nil,
		},
	}

	Normalize(c, sequence())

	if c.ID == "" {
		t.Error("cockpit id should be minted")
	}
	if len(c.Domains) != 1 {
		t.Fatalf("nil domains should be dropped: got %d", len(c.Domains))
	}
	ids := map[string]bool{}
	for _, e := range c.Domains[0].Categories[0].Elements {
		if e.ID == "" || ids[e.ID] {
			t.Errorf("element id %q is empty or duplicated", e.ID)
		}
		ids[e.ID] = true
	}
	if c.Domains[0].Categories[0].Elements[0].ID != "e1" {
		t.Error("first holder of an id should keep it")
	}
}

func TestCloneCockpit_IsDeep(t *testing.T) {
	c := &Cockpit{
		ID: "c1",
		Domains: []*Domain{{ID: "d1", Categories: []*Category{{ID: "k1", Elements: []*Element{{
			ID:       "e1",
			Position: &Position{X: 1, Y: 2},
			SubCategories: []*SubCategory{{ID: "s1", SubElements: []*SubElement{
				{ID: "x1", Status: StatusMineur},
			}}},
		}}}}}},
		Settings: map[string]string{"theme": "dark"},
	}

	cp := CloneCockpit(c)
	cp.Domains[0].Categories[0].Elements[0].Position.X = 99
	cp.Domains[0].Categories[0].Elements[0].SubCategories[0].SubElements[0].Status = StatusFatal
	cp.Settings["theme"] = "light"

	orig := c.Domains[0].Categories[0].Elements[0]
	if orig.Position.X != 1 {
		t.Errorf("Position.X leaked into original: got %v", orig.Position.X)
	}
	if orig.SubCategories[0].SubElements[0].Status != StatusMineur {
		t.Error("sub-element status leaked into original")
	}
	if c.Settings["theme"] != "dark" {
		t.Error("settings leaked into original")
	}
}

func TestNormalize_InheritedWithoutSubCategories(t *testing.T) {
	var c Cockpit
	data := `{"id":"c1","domains":[{"id":"d1","categories":[{"id":"k1","elements":[
		{"id":"e1","status":"herite"},
		{"id":"e2","status":"herite","subCategories":[{"id":"s1","name":"Temp"}]},
		{"id":"e3","status":"herite","subCategories":[null]}
	]}]}]}`
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	Normalize(&c, sequence())

	tests := []struct {
		id            string
		wantInherited bool
	}{
		{"e1", false},
		{"e2", true},
		{"e3", false},
	}
	for i, tt := range tests {
		el := c.Domains[0].Categories[0].Elements[i]
		if el.ID != tt.id {
			t.Fatalf("element %d: got %s, want %s", i, el.ID, tt.id)
		}
		if got := el.Status.IsInherited(); got != tt.wantInherited {
			t.Errorf("%s inherited: got %v, want %v", tt.id, got, tt.wantInherited)
		}
		if !tt.wantInherited {
			if s, _ := el.Status.Explicit(); s != StatusOK {
				t.Errorf("%s status: got %s, want ok", tt.id, s)
			}
		}
	}
}
