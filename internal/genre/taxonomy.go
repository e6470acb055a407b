// Package genre classifies campaigns by music genre: title heuristics first, then a per-artist
// cache, then a budgeted web search.
package genre

import "strings"

// Genre is one entry of the fixed taxonomy.
type Genre struct {
	ID   string
	Name string
}

var (
	HipHop       = Genre{ID: "hip-hop-rap", Name: "Hip-Hop/Rap"}
	Pop          = Genre{ID: "pop", Name: "Pop"}
	Electronic   = Genre{ID: "electronic-edm", Name: "Electronic/EDM"}
	RnB          = Genre{ID: "rnb-soul", Name: "R&B/Soul"}
	Rock         = Genre{ID: "rock", Name: "Rock"}
	Country      = Genre{ID: "country", Name: "Country"}
	Latin        = Genre{ID: "latin", Name: "Latin"}
	KPop         = Genre{ID: "k-pop", Name: "K-Pop"}
	Afrobeats    = Genre{ID: "afrobeats", Name: "Afrobeats"}
	Indie        = Genre{ID: "indie-alternative", Name: "Indie/Alternative"}
	Jazz         = Genre{ID: "jazz", Name: "Jazz"}
	Classical    = Genre{ID: "classical", Name: "Classical"}
	Metal        = Genre{ID: "metal", Name: "Metal"}
	Reggae       = Genre{ID: "reggae", Name: "Reggae"}
	Unclassified = Genre{ID: "unclassified", Name: "Unclassified"}
)

// Taxonomy lists the classifiable genres in tie-break order.
var Taxonomy = []Genre{
	HipHop, Pop, Electronic, RnB, Rock, Country, Latin, KPop, Afrobeats, Indie, Jazz, Classical, Metal, Reggae,
}

// Lookup resolves a genre by display name or id, case-insensitively.
func Lookup(nameOrID string) (Genre, bool) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return Genre{}, false
	}
	for _, g := range Taxonomy {
		if strings.ToLower(g.Name) == key || g.ID == key {
			return g, true
		}
	}
	if key == Unclassified.ID {
		return Unclassified, true
	}
	return Genre{}, false
}

// Level is the three-step confidence scale.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelMedium:
		return "medium"
	case LevelLow:
		return "low"
	default:
		return "none"
	}
}

// Confidence maps a level onto [0,1].
func (l Level) Confidence() float64 {
	switch l {
	case LevelHigh:
		return 0.9
	case LevelMedium:
		return 0.7
	case LevelLow:
		return 0.5
	default:
		return 0
	}
}
