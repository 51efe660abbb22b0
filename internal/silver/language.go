package silver

import "sort"

// LanguageUnknown is returned whenever detection cannot commit to a code.
const LanguageUnknown = "unknown"

// Text below this length is too short to classify; guessing on it produces
// more noise than value.
const minLanguageChars = 20

// A detection needs at least this many marker hits, and strictly more than
// the runner-up language, before it is trusted.
const minMarkerHits = 2

// languageMarkers lists high-frequency function words that discriminate
// between the languages the corpus actually contains.
var languageMarkers = map[string][]string{
	"en": {"the", "and", "with", "that", "this", "from", "have", "will",
		"about", "which", "their", "been", "were", "into"},
	"pt": {"que", "não", "nao", "uma", "para", "mais", "como", "dos", "das",
		"foi", "são", "sao", "também", "tambem", "já", "isso", "ainda"},
	"es": {"los", "las", "una", "pero", "con", "según", "segun", "está",
		"esta", "muy", "donde", "porque", "hay", "sido"},
	"fr": {"les", "des", "une", "pour", "dans", "est", "pas", "sur", "avec",
		"qui", "par", "aux", "cette", "sont"},
	"de": {"der", "die", "das", "und", "nicht", "mit", "für", "fur", "von",
		"ist", "auf", "ein", "eine", "werden"},
}

// DetectLanguage classifies cleaned text by counting marker-word hits per
// language. Short or ambiguous input returns "unknown" rather than a guess.
func DetectLanguage(text string) string {
	if len(text) < minLanguageChars {
		return LanguageUnknown
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return LanguageUnknown
	}

	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	langs := make([]string, 0, len(languageMarkers))
	for lang := range languageMarkers {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	best, second := "", 0
	bestScore := 0
	for _, lang := range langs {
		score := 0
		for _, marker := range languageMarkers[lang] {
			score += counts[marker]
		}
		switch {
		case score > bestScore:
			second = bestScore
			best, bestScore = lang, score
		case score > second:
			second = score
		}
	}

	if bestScore < minMarkerHits || bestScore == second {
		return LanguageUnknown
	}
	return best
}
