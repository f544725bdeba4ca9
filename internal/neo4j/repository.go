package neo4j

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fitz/cockpit/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// level is one tier of the cockpit graph: nodes with label hang off a parent
// node through rel, ordered by the relationship's position property.
type level struct {
	label  string
	parent string
	rel    string
}

var levels = []level{
	{label: "Domain", parent: "Cockpit", rel: "HAS_DOMAIN"},
	{label: "Category", parent: "Domain", rel: "HAS_CATEGORY"},
	{label: "Element", parent: "Category", rel: "HAS_ELEMENT"},
	{label: "SubCategory", parent: "Element", rel: "HAS_SUBCATEGORY"},
	{label: "SubElement", parent: "SubCategory", rel: "HAS_SUBELEMENT"},
	{label: "Zone", parent: "Cockpit", rel: "HAS_ZONE"},
}

func indexName(label string) string {
	return strings.ToLower(label)
}

// row is one child node with its parent id and position.
type row struct {
	Parent   string
	Position int
	Props    map[string]any
}

// CockpitRepository persists whole cockpits as graphs. Every node carries the
// id of its cockpit in cockpitId so several cockpits can share a database.
type CockpitRepository struct {
	client *Client
}

// NewCockpitRepository creates a new cockpit repository
func NewCockpitRepository(client *Client) *CockpitRepository {
	return &CockpitRepository{client: client}
}

// Save replaces the stored graph of c in one write transaction
func (r *CockpitRepository) Save(ctx context.Context, c *models.Cockpit) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("cockpit id is required")
	}
	session := r.client.Session(ctx)
	defer session.Close(ctx)

	rows := flatten(c)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, `
MATCH (n {cockpitId: $id})
WHERE NOT n:Cockpit
DETACH DELETE n
`, map[string]any{"id": c.ID}); err != nil {
			return nil, fmt.Errorf("failed to clear cockpit: %w", err)
		}

		if _, err := tx.Run(ctx, `
MERGE (c:Cockpit {id: $id})
SET c.cockpitId = $id, c.name = $name, c.settings = $settings
`, map[string]any{
			"id":       c.ID,
			"name":     c.Name,
			"settings": settingsToJSON(c.Settings),
		}); err != nil {
			return nil, fmt.Errorf("failed to write cockpit: %w", err)
		}

		for _, l := range levels {
			params := rowParams(rows[l.label])
			if len(params) == 0 {
				continue
			}
			cypher := fmt.Sprintf(`
UNWIND $rows AS row
MATCH (p:%s {cockpitId: $cockpit, id: row.parent})
CREATE (p)-[:%s {position: row.position}]->(n:%s)
SET n = row.props, n.cockpitId = $cockpit
`, l.parent, l.rel, l.label)
			if _, err := tx.Run(ctx, cypher, map[string]any{"rows": params, "cockpit": c.ID}); err != nil {
				return nil, fmt.Errorf("failed to write %s nodes: %w", l.label, err)
			}
		}
		return nil, nil
	})
	return err
}

// Load reads a cockpit back, or returns nil when it is not stored
func (r *CockpitRepository) Load(ctx context.Context, id string) (*models.Cockpit, error) {
	session := r.client.Session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (c:Cockpit {id: $id}) RETURN c`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to load cockpit: %w", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("result iteration error: %w", err)
		}
		return nil, nil // Not found
	}
	node, _ := result.Record().Get("c")
	root := node.(neo4j.Node).Props

	rows := make(map[string][]row)
	for _, l := range levels {
		cypher := fmt.Sprintf(`
MATCH (p:%s {cockpitId: $id})-[r:%s]->(n:%s {cockpitId: $id})
RETURN p.id AS parent, r.position AS position, n
ORDER BY parent, position
`, l.parent, l.rel, l.label)
		res, err := session.Run(ctx, cypher, map[string]any{"id": id})
		if err != nil {
			return nil, fmt.Errorf("failed to load %s nodes: %w", l.label, err)
		}
		for res.Next(ctx) {
			record := res.Record()
			parent, _ := record.Get("parent")
			position, _ := record.Get("position")
			n, _ := record.Get("n")
			rows[l.label] = append(rows[l.label], row{
				Parent:   asString(parent),
				Position: asInt(position),
				Props:    n.(neo4j.Node).Props,
			})
		}
		if err := res.Err(); err != nil {
			return nil, fmt.Errorf("result iteration error: %w", err)
		}
	}

	return assemble(root, rows), nil
}

// Delete removes a cockpit and all its nodes
func (r *CockpitRepository) Delete(ctx context.Context, id string) error {
	session := r.client.Session(ctx)
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
MATCH (n {cockpitId: $id})
DETACH DELETE n
`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// List returns the ids and names of the stored cockpits
func (r *CockpitRepository) List(ctx context.Context) ([]models.Cockpit, error) {
	session := r.client.Session(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `MATCH (c:Cockpit) RETURN c.id AS id, c.name AS name ORDER BY name, id`, nil)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}
	var out []models.Cockpit
	for result.Next(ctx) {
		record := result.Record()
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		out = append(out, models.Cockpit{ID: asString(id), Name: asString(name)})
	}
	return out, result.Err()
}

func rowParams(rows []row) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, rw := range rows {
		out = append(out, map[string]any{
			"parent":   rw.Parent,
			"position": rw.Position,
			"props":    rw.Props,
		})
	}
	return out
}

// flatten turns a cockpit tree into per-label rows
func flatten(c *models.Cockpit) map[string][]row {
	rows := make(map[string][]row)
	add := func(label, parent string, pos int, props map[string]any) {
		rows[label] = append(rows[label], row{Parent: parent, Position: pos, Props: props})
	}

	for i, z := range c.Zones {
		add("Zone", c.ID, i, map[string]any{"id": z.ID, "name": z.Name})
	}
	for i, d := range c.Domains {
		add("Domain", c.ID, i, map[string]any{
			"id":           d.ID,
			"name":         d.Name,
			"templateType": d.TemplateType,
		})
		for j, k := range d.Categories {
			add("Category", d.ID, j, map[string]any{
				"id":          k.ID,
				"name":        k.Name,
				"orientation": string(k.Orientation),
			})
			for n, e := range k.Elements {
				add("Element", k.ID, n, elementToProps(e))
				for m, sc := range e.SubCategories {
					add("SubCategory", e.ID, m, map[string]any{
						"id":   sc.ID,
						"name": sc.Name,
						"icon": sc.Icon,
					})
					for p, se := range sc.SubElements {
						add("SubElement", sc.ID, p, subElementToProps(se))
					}
				}
			}
		}
	}
	return rows
}

// assemble rebuilds a cockpit from its root properties and child rows. Rows
// whose parent is missing are dropped.
func assemble(root map[string]any, rows map[string][]row) *models.Cockpit {
	c := &models.Cockpit{
		ID:       getString(root, "id"),
		Name:     getString(root, "name"),
		Settings: jsonToSettings(getString(root, "settings")),
		Domains:  []*models.Domain{},
		Zones:    []*models.Zone{},
	}

	for _, rw := range ordered(rows["Zone"]) {
		c.Zones = append(c.Zones, &models.Zone{ID: getString(rw.Props, "id"), Name: getString(rw.Props, "name")})
	}

	domains := make(map[string]*models.Domain)
	for _, rw := range ordered(rows["Domain"]) {
		d := &models.Domain{
			ID:           getString(rw.Props, "id"),
			Name:         getString(rw.Props, "name"),
			TemplateType: getString(rw.Props, "templateType"),
			Categories:   []*models.Category{},
		}
		domains[d.ID] = d
		c.Domains = append(c.Domains, d)
	}

	categories := make(map[string]*models.Category)
	for _, rw := range ordered(rows["Category"]) {
		d, ok := domains[rw.Parent]
		if !ok {
			continue
		}
		k := &models.Category{
			ID:          getString(rw.Props, "id"),
			Name:        getString(rw.Props, "name"),
			Orientation: models.Orientation(getString(rw.Props, "orientation")),
			Elements:    []*models.Element{},
		}
		categories[k.ID] = k
		d.Categories = append(d.Categories, k)
	}

	elements := make(map[string]*models.Element)
	for _, rw := range ordered(rows["Element"]) {
		k, ok := categories[rw.Parent]
		if !ok {
			continue
		}
		e := propsToElement(rw.Props)
		elements[e.ID] = e
		k.Elements = append(k.Elements, e)
	}

	subCategories := make(map[string]*models.SubCategory)
	for _, rw := range ordered(rows["SubCategory"]) {
		e, ok := elements[rw.Parent]
		if !ok {
			continue
		}
		sc := &models.SubCategory{
			ID:          getString(rw.Props, "id"),
			Name:        getString(rw.Props, "name"),
			Icon:        getString(rw.Props, "icon"),
			SubElements: []*models.SubElement{},
		}
		subCategories[sc.ID] = sc
		e.SubCategories = append(e.SubCategories, sc)
	}

	for _, rw := range ordered(rows["SubElement"]) {
		sc, ok := subCategories[rw.Parent]
		if !ok {
			continue
		}
		sc.SubElements = append(sc.SubElements, propsToSubElement(rw.Props))
	}
	return c
}

// ordered sorts rows by parent then position, keeping the input order for ties
func ordered(rows []row) []row {
	out := append([]row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Parent != out[j].Parent {
			return out[i].Parent < out[j].Parent
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func elementToProps(e *models.Element) map[string]any {
	props := map[string]any{
		"id":            e.ID,
		"name":          e.Name,
		"status":        e.Status.String(),
		"linkedGroupId": e.LinkedGroupID,
		"icon":          e.Icon,
		"icon2":         e.Icon2,
		"icon3":         e.Icon3,
		"value":         e.Value,
		"unit":          e.Unit,
		"zone":          e.ZoneID,
	}
	if e.Position != nil {
		props["x"] = e.Position.X
		props["y"] = e.Position.Y
	}
	if e.Size != nil {
		props["width"] = e.Size.Width
		props["height"] = e.Size.Height
	}
	return props
}

func propsToElement(props map[string]any) *models.Element {
	status, err := models.ParseOwnStatus(getString(props, "status"))
	if err != nil {
		status = models.Explicit(models.StatusOK)
	}
	e := &models.Element{
		ID:            getString(props, "id"),
		Name:          getString(props, "name"),
		Status:        status,
		LinkedGroupID: getString(props, "linkedGroupId"),
		Icon:          getString(props, "icon"),
		Icon2:         getString(props, "icon2"),
		Icon3:         getString(props, "icon3"),
		Value:         getString(props, "value"),
		Unit:          getString(props, "unit"),
		ZoneID:        getString(props, "zone"),
		SubCategories: []*models.SubCategory{},
	}
	if x, ok := getFloat(props, "x"); ok {
		y, _ := getFloat(props, "y")
		e.Position = &models.Position{X: x, Y: y}
	}
	if w, ok := getFloat(props, "width"); ok {
		h, _ := getFloat(props, "height")
		e.Size = &models.Size{Width: w, Height: h}
	}
	return e
}

func subElementToProps(se *models.SubElement) map[string]any {
	return map[string]any{
		"id":            se.ID,
		"name":          se.Name,
		"status":        string(se.Status),
		"linkedGroupId": se.LinkedGroupID,
		"icon":          se.Icon,
		"value":         se.Value,
		"unit":          se.Unit,
	}
}

func propsToSubElement(props map[string]any) *models.SubElement {
	status := models.Status(getString(props, "status"))
	if !models.IsValidStatus(string(status)) {
		status = models.StatusOK
	}
	return &models.SubElement{
		ID:            getString(props, "id"),
		Name:          getString(props, "name"),
		Status:        status,
		LinkedGroupID: getString(props, "linkedGroupId"),
		Icon:          getString(props, "icon"),
		Value:         getString(props, "value"),
		Unit:          getString(props, "unit"),
	}
}

func getString(props map[string]any, key string) string {
	return asString(props[key])
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func getFloat(props map[string]any, key string) (float64, bool) {
	switch n := props[key].(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func settingsToJSON(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

func jsonToSettings(s string) map[string]string {
	if s == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}
