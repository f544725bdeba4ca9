// Package status computes effective statuses of cockpit elements.
//
// Nothing here mutates or caches stored data, so every function is safe to
// call on each render.
package status

import (
	"fmt"
	"strings"

	"github.com/fitz/cockpit/internal/models"
)

// Policy decides which of several statuses is the worst.
type Policy struct {
	// Ranking lists statuses from most to least severe.
	Ranking []models.Status
	// Sole is reported only when it is the only status present. Mixed with
	// anything else it counts as ok.
	Sole models.Status
}

// DefaultPolicy ranks fatal > critique > mineur > information > ok and reports
// deconnecte only when nothing else is known.
func DefaultPolicy() Policy {
	return Policy{
		Ranking: []models.Status{
			models.StatusFatal,
			models.StatusCritique,
			models.StatusMineur,
			models.StatusInformation,
			models.StatusOK,
		},
		Sole: models.StatusDeconnecte,
	}
}

// ParsePolicy builds a policy from a comma-separated ranking, most severe
// first. An empty string yields DefaultPolicy. The sole status stays deconnecte
// unless the ranking lists it explicitly, in which case it is ranked like any
// other status.
func ParsePolicy(ranking string) (Policy, error) {
	ranking = strings.TrimSpace(ranking)
	if ranking == "" {
		return DefaultPolicy(), nil
	}

	p := Policy{Sole: models.StatusDeconnecte}
	seen := make(map[models.Status]bool)
	for _, part := range strings.Split(ranking, ",") {
		s := models.Status(strings.TrimSpace(part))
		if !models.IsValidStatus(string(s)) {
			return Policy{}, fmt.Errorf("invalid status in ranking: %q", s)
		}
		if seen[s] {
			return Policy{}, fmt.Errorf("duplicate status in ranking: %q", s)
		}
		seen[s] = true
		if s == p.Sole {
			p.Sole = ""
		}
		p.Ranking = append(p.Ranking, s)
	}
	if !seen[models.StatusOK] {
		return Policy{}, fmt.Errorf("ranking must include %q", models.StatusOK)
	}
	return p, nil
}

func (p Policy) rank(s models.Status) (int, bool) {
	for i, r := range p.Ranking {
		if r == s {
			return i, true
		}
	}
	return 0, false
}

// Worst folds statuses to the single most severe one. It returns ok for an
// empty set and never fails: unknown values count as ok.
func (p Policy) Worst(statuses []models.Status) models.Status {
	if len(statuses) == 0 {
		return models.StatusOK
	}

	best := -1
	onlySole := p.Sole != ""
	for _, s := range statuses {
		if s != p.Sole {
			onlySole = false
		}
		i, ok := p.rank(s)
		if !ok {
			continue
		}
		if best == -1 || i < best {
			best = i
		}
	}

	if onlySole {
		return p.Sole
	}
	if best == -1 {
		return models.StatusOK
	}
	return p.Ranking[best]
}

// Effective returns the status an element displays. An explicit own status is
// returned as is. An inherited status is the worst status among the
// sub-elements of the element and of each linked peer; with nothing to
// collect it is ok.
func (p Policy) Effective(el *models.Element, peers []*models.Element) models.Status {
	if el == nil {
		return models.StatusOK
	}
	if s, ok := el.Status.Explicit(); ok {
		return s
	}

	collected := collect(nil, el)
	for _, peer := range peers {
		if peer == nil || peer == el {
			continue
		}
		collected = collect(collected, peer)
	}
	return p.Worst(collected)
}

func collect(dst []models.Status, el *models.Element) []models.Status {
	for _, sc := range el.SubCategories {
		if sc == nil {
			continue
		}
		for _, se := range sc.SubElements {
			if se == nil {
				continue
			}
			dst = append(dst, se.Status)
		}
	}
	return dst
}
