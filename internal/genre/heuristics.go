package genre

import (
	"regexp"
	"strings"
)

type rule struct {
	genre    Genre
	level    Level
	term     string
	re       *regexp.Regexp
	anchored bool
}

// ambiguousArtists are artist names that are also everyday words. They only match when they
// are the artist half of the title.
var ambiguousArtists = map[string]struct{}{
	"future": {}, "twice": {}, "usher": {}, "tems": {}, "rema": {}, "feid": {}, "seventeen": {},
}

// Artist names match at high confidence, explicit genre names at medium, sub-genre slang at low.
var dictionary = map[Genre]map[Level][]string{
	HipHop: {
		LevelHigh:   {"drake", "kendrick lamar", "travis scott", "lil baby", "future", "21 savage", "nicki minaj", "cardi b", "megan thee stallion", "j. cole", "lil uzi vert", "playboi carti"},
		LevelMedium: {"hip hop", "hip-hop", "hiphop", "rap", "rapper"},
		LevelLow:    {"trap", "drill", "freestyle", "cypher", "bars"},
	},
	Pop: {
		LevelHigh:   {"taylor swift", "dua lipa", "ariana grande", "olivia rodrigo", "sabrina carpenter", "billie eilish", "harry styles", "ed sheeran", "charli xcx"},
		LevelMedium: {"pop"},
		LevelLow:    {"dance pop", "synthpop"},
	},
	Electronic: {
		LevelHigh:   {"calvin harris", "david guetta", "skrillex", "fred again", "tiesto", "martin garrix", "deadmau5", "marshmello", "diplo", "peggy gou"},
		LevelMedium: {"edm", "electronic", "techno", "house music", "dubstep", "drum and bass", "trance"},
		LevelLow:    {"rave", "dnb", "tech house", "deep house"},
	},
	RnB: {
		LevelHigh:   {"sza", "the weeknd", "brent faiyaz", "summer walker", "daniel caesar", "h.e.r.", "usher", "victoria monet"},
		LevelMedium: {"r&b", "rnb", "soul", "neo-soul"},
		LevelLow:    {"slow jam", "quiet storm"},
	},
	Rock: {
		LevelHigh:   {"foo fighters", "arctic monkeys", "the rolling stones", "green day", "imagine dragons", "red hot chili peppers"},
		LevelMedium: {"rock", "rock band", "punk"},
		LevelLow:    {"garage", "grunge", "guitar riff"},
	},
	Country: {
		LevelHigh:   {"morgan wallen", "luke combs", "zach bryan", "kacey musgraves", "chris stapleton", "lainey wilson", "jelly roll"},
		LevelMedium: {"country", "country music", "nashville"},
		LevelLow:    {"honky tonk", "bluegrass", "americana"},
	},
	Latin: {
		LevelHigh:   {"bad bunny", "karol g", "peso pluma", "j balvin", "feid", "rauw alejandro", "shakira"},
		LevelMedium: {"reggaeton", "latin", "latino", "corridos", "bachata", "salsa"},
		LevelLow:    {"cumbia", "dembow", "perreo"},
	},
	KPop: {
		LevelHigh:   {"bts", "blackpink", "newjeans", "stray kids", "twice", "seventeen", "le sserafim", "aespa"},
		LevelMedium: {"k-pop", "kpop"},
		LevelLow:    {"idol group", "comeback stage"},
	},
	Afrobeats: {
		LevelHigh:   {"burna boy", "wizkid", "tems", "rema", "davido", "tyla", "asake"},
		LevelMedium: {"afrobeats", "afrobeat", "amapiano", "afropop"},
		LevelLow:    {"naija", "afro fusion"},
	},
	Indie: {
		LevelHigh:   {"phoebe bridgers", "boygenius", "mitski", "tame impala", "the 1975", "clairo", "beabadoobee"},
		LevelMedium: {"indie", "alternative", "alt rock", "shoegaze"},
		LevelLow:    {"lo-fi", "bedroom pop", "dream pop"},
	},
	Jazz: {
		LevelHigh:   {"kamasi washington", "norah jones", "laufey", "robert glasper"},
		LevelMedium: {"jazz", "bebop", "swing"},
		LevelLow:    {"big band", "saxophone"},
	},
	Classical: {
		LevelHigh:   {"yo-yo ma", "lang lang", "hilary hahn", "max richter"},
		LevelMedium: {"classical", "orchestra", "symphony", "concerto", "opera"},
		LevelLow:    {"string quartet", "piano sonata"},
	},
	Metal: {
		LevelHigh:   {"metallica", "slipknot", "bring me the horizon", "gojira", "iron maiden", "sleep token"},
		LevelMedium: {"metal", "heavy metal", "metalcore", "deathcore"},
		LevelLow:    {"breakdown", "moshpit", "mosh pit"},
	},
	Reggae: {
		LevelHigh:   {"bob marley", "damian marley", "chronixx", "koffee", "shenseea"},
		LevelMedium: {"reggae", "dancehall", "dub"},
		LevelLow:    {"riddim", "roots rock"},
	},
}

var rules = buildRules()

func buildRules() []rule {
	var out []rule
	for _, g := range Taxonomy {
		for _, level := range []Level{LevelHigh, LevelMedium, LevelLow} {
			for _, term := range dictionary[g][level] {
				_, anchored := ambiguousArtists[term]
				out = append(out, rule{genre: g, level: level, term: term, re: termPattern(term), anchored: anchored})
			}
		}
	}
	return out
}

// termPattern matches term as a whole phrase; word boundaries are emulated so terms ending in
// punctuation ("h.e.r.", "r&b") still anchor.
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(term) + `($|[^\p{L}\p{N}])`)
}

// Heuristic is a dictionary hit on a title.
type Heuristic struct {
	Genre Genre
	Level Level
	Term  string
}

// MatchTitle returns the strongest dictionary hit in title. Ties on level go to the longer term
// ("k-pop" over "pop"), then to taxonomy order.
func MatchTitle(title string) (Heuristic, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Heuristic{}, false
	}
	artist, hasArtist := ExtractArtist(title)

	var best Heuristic
	found := false
	for _, r := range rules {
		target := title
		if r.anchored {
			if !hasArtist {
				continue
			}
			target = artist
		}
		if !r.re.MatchString(target) {
			continue
		}
		if !found || r.level > best.Level || (r.level == best.Level && len(r.term) > len(best.Term)) {
			best = Heuristic{Genre: r.genre, Level: r.level, Term: r.term}
			found = true
		}
	}
	return best, found
}
