package neo4j

import (
	"reflect"
	"testing"

	"github.com/fitz/cockpit/internal/models"
)

func sampleCockpit() *models.Cockpit {
	return &models.Cockpit{
		ID:       "c1",
		Name:     "Plant",
		Settings: map[string]string{"theme": "dark"},
		Zones:    []*models.Zone{{ID: "z1", Name: "North"}, {ID: "z2", Name: "South"}},
		Domains: []*models.Domain{
			{ID: "d1", Name: "Domain A", TemplateType: models.TemplateStandard, Categories: []*models.Category{
				{ID: "k1", Name: "Pumps", Orientation: models.OrientationHorizontal, Elements: []*models.Element{
					{
						ID: "e1", Name: "Pump 1", Status: models.Inherited(), LinkedGroupID: "g1",
						Icon: "pump", Value: "42", Unit: "bar", ZoneID: "z1",
						Position: &models.Position{X: 1.5, Y: 2},
						Size:     &models.Size{Width: 10, Height: 20},
						SubCategories: []*models.SubCategory{
							{ID: "s1", Name: "Temp", Icon: "thermo", SubElements: []*models.SubElement{
								{ID: "x1", Name: "Sensor1", Status: models.StatusMineur, LinkedGroupID: "h1"},
								{ID: "x2", Name: "Sensor2", Status: models.StatusOK},
							}},
						},
					},
					{ID: "e2", Name: "Pump 2", Status: models.Explicit(models.StatusCritique), SubCategories: []*models.SubCategory{}},
				}},
				{ID: "k2", Name: "Tanks", Orientation: models.OrientationVertical, Elements: []*models.Element{}},
			}},
			{ID: "d2", Name: "Domain B", TemplateType: models.TemplateMap, Categories: []*models.Category{}},
		},
	}
}

func TestFlatten_Rows(t *testing.T) {
	rows := flatten(sampleCockpit())

	counts := map[string]int{
		"Zone": 2, "Domain": 2, "Category": 2, "Element": 2, "SubCategory": 1, "SubElement": 2,
	}
	for label, want := range counts {
		if got := len(rows[label]); got != want {
			t.Errorf("%s rows: got %d, want %d", label, got, want)
		}
	}

	e := rows["Element"][0]
	if e.Parent != "k1" || e.Position != 0 {
		t.Errorf("element row: got parent=%s position=%d", e.Parent, e.Position)
	}
	if e.Props["status"] != "herite" {
		t.Errorf("status prop: got %v, want herite", e.Props["status"])
	}
	if _, ok := rows["Element"][1].Props["x"]; ok {
		t.Error("an element without position should not carry x")
	}
}

func TestFlattenAssemble_RoundTrip(t *testing.T) {
	want := sampleCockpit()
	rows := flatten(want)
	root := map[string]any{"id": want.ID, "name": want.Name, "settings": settingsToJSON(want.Settings)}

	got := assemble(root, rows)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestAssemble_OrdersByPosition(t *testing.T) {
	rows := map[string][]row{
		"Domain": {
			{Parent: "c1", Position: 1, Props: map[string]any{"id": "d2", "name": "Second"}},
			{Parent: "c1", Position: 0, Props: map[string]any{"id": "d1", "name": "First"}},
		},
		"Category": {
			{Parent: "missing", Position: 0, Props: map[string]any{"id": "k9"}},
		},
	}

	c := assemble(map[string]any{"id": "c1"}, rows)

	if len(c.Domains) != 2 || c.Domains[0].ID != "d1" || c.Domains[1].ID != "d2" {
		t.Fatalf("Domains: got %+v, want d1 then d2", c.Domains)
	}
	for _, d := range c.Domains {
		if len(d.Categories) != 0 {
			t.Errorf("orphan category attached to %s", d.ID)
		}
	}
}

func TestPropsToElement_ToleratesMissingProperties(t *testing.T) {
	e := propsToElement(map[string]any{"id": "e1", "status": "bogus", "width": int64(3)})

	if e.Name != "" || e.LinkedGroupID != "" {
		t.Errorf("unexpected values: %+v", e)
	}
	if st, ok := e.Status.Explicit(); !ok || st != models.StatusOK {
		t.Errorf("Status: got %v, want ok", e.Status)
	}
	if e.Position != nil {
		t.Error("Position should stay nil")
	}
	if e.Size == nil || e.Size.Width != 3 {
		t.Errorf("Size: got %+v, want width 3", e.Size)
	}
	if e.SubCategories == nil {
		t.Error("SubCategories should be empty, not nil")
	}

	se := propsToSubElement(map[string]any{"id": "x1", "status": "loud"})
	if se.Status != models.StatusOK {
		t.Errorf("sub-element Status: got %s, want ok", se.Status)
	}
}

func TestSettingsJSON(t *testing.T) {
	if got := settingsToJSON(nil); got != "" {
		t.Errorf("settingsToJSON(nil) = %q, want empty", got)
	}
	if got := jsonToSettings("not json"); got != nil {
		t.Errorf("jsonToSettings(invalid) = %v, want nil", got)
	}
	m := jsonToSettings(settingsToJSON(map[string]string{"a": "b"}))
	if m["a"] != "b" {
		t.Errorf("round trip: got %v", m)
	}
}
