package genre

import (
	"fmt"
	"regexp"

	"creatorcore/internal/search"
)

type weightedTerm struct {
	re     *regexp.Regexp
	weight float64
}

// Search-result vocabulary per genre. Weights favour unambiguous genre names over adjacent slang.
var searchVocabulary = map[Genre]map[string]float64{
	HipHop:     {"hip hop": 2, "hip-hop": 2, "rapper": 2, "rap": 1, "trap": 1, "drill": 1},
	Pop:        {"pop singer": 2, "pop star": 2, "pop": 1, "singer-songwriter": 1},
	Electronic: {"edm": 2, "electronic": 2, "dj": 1, "producer": 1, "house": 1, "techno": 2, "dubstep": 2, "trance": 2, "drum and bass": 2},
	RnB:        {"r&b": 2, "rnb": 2, "soul": 1, "neo-soul": 2},
	Rock:       {"rock band": 2, "rock": 1, "punk": 1, "guitarist": 1},
	Country:    {"country music": 2, "country singer": 2, "country": 1, "nashville": 1},
	Latin:      {"reggaeton": 2, "latin": 1, "latino": 1, "corridos": 2, "bachata": 2, "salsa": 1},
	KPop:       {"k-pop": 3, "kpop": 3, "korean": 1, "idol": 1},
	Afrobeats:  {"afrobeats": 3, "afrobeat": 2, "amapiano": 2, "nigerian": 1},
	Indie:      {"indie": 2, "alternative": 1, "shoegaze": 2, "lo-fi": 1},
	Jazz:       {"jazz": 2, "saxophonist": 1, "bebop": 2},
	Classical:  {"classical": 2, "composer": 1, "orchestra": 1, "pianist": 1, "violinist": 1},
	Metal:      {"metal": 2, "metalcore": 2, "heavy metal": 2, "deathcore": 2},
	Reggae:     {"reggae": 2, "dancehall": 2, "dub": 1},
}

var scoring = buildScoring()

func buildScoring() map[Genre][]weightedTerm {
	out := make(map[Genre][]weightedTerm, len(searchVocabulary))
	for g, terms := range searchVocabulary {
		for term, w := range terms {
			out[g] = append(out[g], weightedTerm{re: termPattern(term), weight: w})
		}
	}
	return out
}

// Score is the outcome of scoring search snippets.
type Score struct {
	Genre    Genre
	Level    Level
	Top      float64
	RunnerUp float64
}

func (s Score) Found() bool {
	return s.Level != LevelNone
}

func (s Score) Evidence() string {
	return fmt.Sprintf("score=%.1f runner_up=%.1f", s.Top, s.RunnerUp)
}

// ScoreResults counts weighted vocabulary hits across all result text and tiers the winner.
func ScoreResults(results []search.Result) Score {
	totals := make(map[Genre]float64, len(Taxonomy))
	for _, r := range results {
		text := r.Text()
		for g, terms := range scoring {
			for _, t := range terms {
				if n := len(t.re.FindAllStringIndex(text, -1)); n > 0 {
					totals[g] += float64(n) * t.weight
				}
			}
		}
	}
	return tier(totals)
}

// tier applies the confidence thresholds: >=4 and at least double the runner-up is high, >=2 is
// medium, anything positive is low.
func tier(totals map[Genre]float64) Score {
	var s Score
	for _, g := range Taxonomy {
		v := totals[g]
		switch {
		case v > s.Top:
			s.RunnerUp = s.Top
			s.Top = v
			s.Genre = g
		case v > s.RunnerUp:
			s.RunnerUp = v
		}
	}

	switch {
	case s.Top >= 4 && s.Top >= 2*s.RunnerUp:
		s.Level = LevelHigh
	case s.Top >= 2:
		s.Level = LevelMedium
	case s.Top > 0:
		s.Level = LevelLow
	default:
		s.Genre = Unclassified
	}
	return s
}
