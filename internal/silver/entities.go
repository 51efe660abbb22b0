package silver

import (
	"regexp"
	"sort"
	"strings"
)

// Entity extraction caps at this many names per class; anything beyond it
// is noise at news-snippet length.
const maxEntities = 10

// knownLocations is the reference list used to tell places apart from
// people (countries and major cities, Portuguese and English spellings).
var knownLocations = map[string]struct{}{
	// Countries
	"portugal": {}, "brasil": {}, "brazil": {}, "espanha": {}, "spain": {},
	"franca": {}, "frança": {}, "france": {}, "alemanha": {}, "germany": {},
	"italia": {}, "itália": {}, "italy": {}, "reino unido": {},
	"united kingdom": {}, "estados unidos": {}, "united states": {},
	"eua": {}, "usa": {}, "china": {}, "russia": {}, "japao": {},
	"japão": {}, "japan": {}, "india": {}, "australia": {}, "canada": {},
	"mexico": {}, "argentina": {}, "ucrania": {}, "ucrânia": {},
	"ukraine": {}, "israel": {}, "palestina": {}, "palestine": {}, "gaza": {},
	// Cities
	"lisboa": {}, "lisbon": {}, "porto": {}, "braga": {}, "coimbra": {},
	"faro": {}, "funchal": {}, "madrid": {}, "barcelona": {}, "paris": {},
	"londres": {}, "london": {}, "berlim": {}, "berlin": {}, "roma": {},
	"rome": {}, "nova york": {}, "new york": {}, "washington": {},
	"los angeles": {}, "sao paulo": {}, "são paulo": {},
	"rio de janeiro": {}, "brasilia": {}, "brasília": {},
	"buenos aires": {}, "caracas": {}, "moscovo": {}, "moscow": {},
	"pequim": {}, "beijing": {}, "toquio": {}, "tóquio": {}, "tokyo": {},
}

// personExpr matches spans of 2-4 capitalized words, allowing the
// Portuguese name connectors (da, de, do, dos, das, e) between them.
var personExpr = regexp.MustCompile(
	`[A-ZÁÀÂÃÉÈÊÍÏÓÔÕÚÇ][a-záàâãéèêíïóôõöúçñ]+` +
		`(?: (?:(?:da|de|do|dos|das|e) )?[A-ZÁÀÂÃÉÈÊÍÏÓÔÕÚÇ][a-záàâãéèêíïóôõöúçñ]+){1,3}`)

var locationExprs = buildLocationExprs()

func buildLocationExprs() []*regexp.Regexp {
	names := make([]string, 0, len(knownLocations))
	for name := range knownLocations {
		names = append(names, name)
	}
	sort.Strings(names)

	exprs := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		exprs = append(exprs, regexp.MustCompile(
			`(?i)(?:^|[^\p{L}])(`+regexp.QuoteMeta(name)+`)(?:$|[^\p{L}])`))
	}
	return exprs
}

// Entities holds the extracted names, each list sorted and deduplicated.
type Entities struct {
	Persons   []string
	Locations []string
}

// ExtractEntities finds capitalized multi-token spans and classifies them
// against the reference location list; spans that match neither pattern are
// discarded, never invented. Results are sorted for determinism.
func ExtractEntities(text string) Entities {
	entities := Entities{Persons: []string{}, Locations: []string{}}
	if text == "" {
		return entities
	}

	persons := map[string]struct{}{}
	for _, span := range personExpr.FindAllString(text, -1) {
		if _, isLocation := knownLocations[strings.ToLower(span)]; isLocation {
			continue
		}
		persons[span] = struct{}{}
	}

	locations := map[string]struct{}{}
	for _, expr := range locationExprs {
		if m := expr.FindStringSubmatch(text); m != nil {
			locations[m[1]] = struct{}{}
		}
	}

	entities.Persons = sortedCapped(persons)
	entities.Locations = sortedCapped(locations)
	return entities
}

func sortedCapped(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	if len(out) > maxEntities {
		out = out[:maxEntities]
	}
	return out
}
