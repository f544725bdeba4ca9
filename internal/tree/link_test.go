package tree

import (
	"errors"
	"testing"

	"github.com/fitz/cockpit/internal/models"
)

func subElementNames(e *models.Element, subCategory string) []string {
	sc := e.SubCategoryByName(subCategory)
	if sc == nil {
		return nil
	}
	names := make([]string, 0, len(sc.SubElements))
	for _, se := range sc.SubElements {
		names = append(names, se.Name)
	}
	return names
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

func TestBeginCreateElement_Pump1(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	pumps := mustCategory(t, s, d.ID, "Pumps")
	utilities := mustCategory(t, s, d.ID, "Utilities")
	first := mustElement(t, s, pumps.ID, "Pump 1")

	pending, err := s.BeginCreateElement(utilities.ID, "Pump 1")
	if err != nil {
		t.Fatalf("BeginCreateElement: %v", err)
	}
	if !pending.NeedsDecision() {
		t.Fatal("a same-name element exists, a decision should be needed")
	}
	if len(pending.Matches) != 1 {
		t.Fatalf("Matches: got %d, want 1", len(pending.Matches))
	}
	m := pending.Matches[0]
	if m.ID != first.ID {
		t.Errorf("match ID: got %s, want %s", m.ID, first.ID)
	}
	if m.Path != "Domain A > Pumps" {
		t.Errorf("match Path: got %q, want %q", m.Path, "Domain A > Pumps")
	}
	if got := elementIDs(t, s, utilities.ID); len(got) != 0 {
		t.Errorf("nothing should be created before Resolve, got %v", got)
	}

	second, err := pending.Resolve(LinkTo(m.ID, false))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	a := mustGet(t, s, first.ID)
	if a.LinkedGroupID == "" || a.LinkedGroupID != second.LinkedGroupID {
		t.Errorf("group ids: got %q and %q, want equal and non-empty", a.LinkedGroupID, second.LinkedGroupID)
	}
}

func TestBeginCreateElement_Independent(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	first := mustElement(t, s, c.ID, "Pump 1")

	pending, err := s.BeginCreateElement(c.ID, "Pump 1")
	if err != nil {
		t.Fatalf("BeginCreateElement: %v", err)
	}
	e, err := pending.Resolve(Independent())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if e.LinkedGroupID != "" || mustGet(t, s, first.ID).LinkedGroupID != "" {
		t.Error("independent creation must not link anything")
	}
	if e.ID == first.ID {
		t.Error("ids should differ")
	}
}

func TestBeginCreateElement_NoMatches(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	mustElement(t, s, c.ID, "Pump 1")

	pending, err := s.BeginCreateElement(c.ID, "pump 1")
	if err != nil {
		t.Fatalf("BeginCreateElement: %v", err)
	}
	if pending.NeedsDecision() {
		t.Errorf("matching is case-sensitive, got %v", pending.Matches)
	}
	if _, err := s.BeginCreateElement("nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown category: got %v, want ErrNotFound", err)
	}
}

func TestCreateElementLinked_VanishedPeer(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	first := mustElement(t, s, c.ID, "Pump 1")

	pending, err := s.BeginCreateElement(c.ID, "Pump 1")
	if err != nil {
		t.Fatalf("BeginCreateElement: %v", err)
	}
	if err := s.DeleteElement(first.ID); err != nil {
		t.Fatalf("DeleteElement: %v", err)
	}

	if _, err := pending.Resolve(LinkTo(first.ID, false)); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
	if got := elementIDs(t, s, c.ID); len(got) != 0 {
		t.Errorf("failed link must not leave an element behind, got %v", got)
	}
}

func TestCreateElementLinked_AdoptsPeerValues(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	first := mustElement(t, s, c.ID, "Pump 1")
	err := s.UpdateElement(first.ID, models.ElementPatch{
		Status: models.Ptr(models.Explicit(models.StatusMineur)),
		Value:  models.Ptr("12"),
		Icon2:  models.Ptr("drop"),
	})
	if err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}

	e, err := s.CreateElementLinked(c.ID, "Pump 1", LinkTo(first.ID, false))
	if err != nil {
		t.Fatalf("CreateElementLinked: %v", err)
	}
	if st, _ := e.Status.Explicit(); st != models.StatusMineur {
		t.Errorf("Status: got %s, want mineur", st)
	}
	if e.Value != "12" || e.Icon2 != "drop" {
		t.Errorf("fields: got value=%q icon2=%q", e.Value, e.Icon2)
	}
}

func TestLinkElements_Merge(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	a := mustElement(t, s, c.ID, "Pump 1")
	b := mustElement(t, s, c.ID, "Pump 1")
	temp := mustSubCategory(t, s, a.ID, "Temp")
	sensor := mustSubElement(t, s, temp.ID, "Sensor1")

	if err := s.LinkElements(b.ID, a.ID, true); err != nil {
		t.Fatalf("LinkElements: %v", err)
	}

	for _, id := range []string{a.ID, b.ID} {
		e := mustGet(t, s, id)
		if names := subElementNames(e, "Temp"); !contains(names, "Sensor1") {
			t.Errorf("%s Temp: got %v, want Sensor1", id, names)
		}
	}
	copied := mustGet(t, s, b.ID).SubCategories[0]
	if copied.ID == temp.ID || copied.SubElements[0].ID == sensor.ID {
		t.Error("merged copies should get fresh ids")
	}
	if copied.SubElements[0].LinkedGroupID != "" {
		t.Error("merged copies should not be linked")
	}
}

func TestLinkElements_MergeBothWays(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	a := mustElement(t, s, c.ID, "Pump 1")
	b := mustElement(t, s, c.ID, "Pump 1")
	mustSubElement(t, s, mustSubCategory(t, s, a.ID, "Temp").ID, "Sensor1")
	mustSubElement(t, s, mustSubCategory(t, s, b.ID, "Temp").ID, "Sensor2")
	mustSubCategory(t, s, b.ID, "Pressure")

	if err := s.LinkElements(a.ID, b.ID, true); err != nil {
		t.Fatalf("LinkElements: %v", err)
	}

	for _, id := range []string{a.ID, b.ID} {
		e := mustGet(t, s, id)
		names := subElementNames(e, "Temp")
		if len(names) != 2 || !contains(names, "Sensor1") || !contains(names, "Sensor2") {
			t.Errorf("%s Temp: got %v, want Sensor1 and Sensor2", id, names)
		}
		if e.SubCategoryByName("Pressure") == nil {
			t.Errorf("%s should have Pressure", id)
		}
		if len(e.SubCategories) != 2 {
			t.Errorf("%s SubCategories: got %d, want 2", id, len(e.SubCategories))
		}
	}
}

func TestLinkElements_RekeysJoinerGroup(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	a := mustElement(t, s, c.ID, "Pump 1")
	b, err := s.CreateElementLinked(c.ID, "Pump 1", LinkTo(a.ID, false))
	if err != nil {
		t.Fatalf("CreateElementLinked: %v", err)
	}
	x := mustElement(t, s, c.ID, "Pump 1")
	if err := s.UpdateElement(x.ID, models.ElementPatch{Unit: models.Ptr("rpm")}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}

	if err := s.LinkElements(a.ID, x.ID, false); err != nil {
		t.Fatalf("LinkElements: %v", err)
	}

	gid := mustGet(t, s, x.ID).LinkedGroupID
	for _, id := range []string{a.ID, b.ID} {
		e := mustGet(t, s, id)
		if e.LinkedGroupID != gid {
			t.Errorf("%s LinkedGroupID: got %q, want %q", id, e.LinkedGroupID, gid)
		}
		if e.Unit != "rpm" {
			t.Errorf("%s Unit: got %q, want rpm", id, e.Unit)
		}
	}
	peers, _ := s.ElementGroup(x.ID)
	if len(peers) != 2 {
		t.Errorf("peers: got %v, want 2", peers)
	}
}

func TestLinkElements_InheritedPeerNeedsSubCategories(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	a := mustElement(t, s, c.ID, "Pump 1")
	b := mustElement(t, s, c.ID, "Pump 1")
	mustSubCategory(t, s, a.ID, "Temp")
	if err := s.UpdateElement(a.ID, models.ElementPatch{Status: models.Ptr(models.Inherited())}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}

	if err := s.LinkElements(b.ID, a.ID, false); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("got %v, want ErrInvalidState", err)
	}
	if mustGet(t, s, a.ID).LinkedGroupID != "" || mustGet(t, s, b.ID).LinkedGroupID != "" {
		t.Error("failed link must leave both elements unlinked")
	}

	// Merging brings the sub-category over, so the link succeeds.
	if err := s.LinkElements(b.ID, a.ID, true); err != nil {
		t.Fatalf("LinkElements with merge: %v", err)
	}
	if !mustGet(t, s, b.ID).Status.IsInherited() {
		t.Error("joiner should adopt the inherited status")
	}
}

func TestLinkElements_Errors(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	a := mustElement(t, s, c.ID, "Pump 1")

	if err := s.LinkElements(a.ID, a.ID, false); !errors.Is(err, ErrValidation) {
		t.Errorf("self link: got %v, want ErrValidation", err)
	}
	if err := s.LinkElements(a.ID, "nope", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown peer: got %v, want ErrNotFound", err)
	}
	if err := s.LinkSubElements("nope", "other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown sub-element: got %v, want ErrNotFound", err)
	}
}

func TestUnlinkElement(t *testing.T) {
	s, ids := linkedTrio(t)

	if err := s.UnlinkElement(ids[2]); err != nil {
		t.Fatalf("UnlinkElement: %v", err)
	}
	if err := s.UpdateElement(ids[0], models.ElementPatch{Value: models.Ptr("5")}); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}

	if got := mustGet(t, s, ids[1]).Value; got != "5" {
		t.Errorf("linked peer Value: got %q, want 5", got)
	}
	unlinked := mustGet(t, s, ids[2])
	if unlinked.Value != "" || unlinked.LinkedGroupID != "" {
		t.Errorf("unlinked element: got %+v", unlinked)
	}
}

func TestLinkSubElements(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	e := mustElement(t, s, c.ID, "Pump 1")
	sc := mustSubCategory(t, s, e.ID, "Temp")
	a := mustSubElement(t, s, sc.ID, "Sensor1")
	b := mustSubElement(t, s, sc.ID, "Sensor1")
	if err := s.UpdateSubElement(a.ID, models.SubElementPatch{Status: models.Ptr(models.StatusFatal)}); err != nil {
		t.Fatalf("UpdateSubElement: %v", err)
	}

	if err := s.LinkSubElements(b.ID, a.ID); err != nil {
		t.Fatalf("LinkSubElements: %v", err)
	}
	got, _ := s.SubElement(b.ID)
	if got.Status != models.StatusFatal {
		t.Errorf("Status: got %s, want fatal", got.Status)
	}
	peers, _ := s.SubElementGroup(a.ID)
	if !equalIDs(peers, []string{b.ID}) {
		t.Errorf("peers: got %v, want [%s]", peers, b.ID)
	}

	if err := s.UnlinkSubElement(b.ID); err != nil {
		t.Fatalf("UnlinkSubElement: %v", err)
	}
	if peers, _ := s.SubElementGroup(a.ID); len(peers) != 0 {
		t.Errorf("peers after unlink: got %v, want none", peers)
	}
}

func TestDuplicateElementLinked(t *testing.T) {
	s := newStore()
	d := mustDomain(t, s, "Domain A")
	c := mustCategory(t, s, d.ID, "Pumps")
	other := mustCategory(t, s, d.ID, "Spares")
	a := mustElement(t, s, c.ID, "Pump 1")
	b := mustElement(t, s, c.ID, "Pump 2")
	sc := mustSubCategory(t, s, a.ID, "Temp")
	se := mustSubElement(t, s, sc.ID, "Sensor1")

	dup, err := s.DuplicateElementLinked(a.ID, c.ID)
	if err != nil {
		t.Fatalf("DuplicateElementLinked: %v", err)
	}
	if got := elementIDs(t, s, c.ID); !equalIDs(got, []string{a.ID, dup.ID, b.ID}) {
		t.Errorf("order: got %v, want [%s %s %s]", got, a.ID, dup.ID, b.ID)
	}
	if dup.ID == a.ID || dup.SubCategories[0].ID == sc.ID || dup.SubCategories[0].SubElements[0].ID == se.ID {
		t.Error("duplicate should get fresh ids throughout")
	}
	if src := mustGet(t, s, a.ID); src.LinkedGroupID == "" || src.LinkedGroupID != dup.LinkedGroupID {
		t.Errorf("group ids: got %q and %q", src.LinkedGroupID, dup.LinkedGroupID)
	}

	elsewhere, err := s.DuplicateElementLinked(a.ID, other.ID)
	if err != nil {
		t.Fatalf("DuplicateElementLinked: %v", err)
	}
	if got := elementIDs(t, s, other.ID); !equalIDs(got, []string{elsewhere.ID}) {
		t.Errorf("other category: got %v", got)
	}
	if peers, _ := s.ElementGroup(a.ID); len(peers) != 2 {
		t.Errorf("peers: got %v, want 2", peers)
	}

	if _, err := s.DuplicateElementLinked(a.ID, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown category: got %v, want ErrNotFound", err)
	}
}
