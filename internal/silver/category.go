package silver

import "strings"

// CategoryDefault is assigned when no raw category maps into the
// canonical vocabulary.
const CategoryDefault = "general"

// categoryVocabulary maps raw source categories onto the canonical set
// {technology, business, sports, politics, entertainment, health, general}.
var categoryVocabulary = map[string]string{
	"technology": "technology",
	"tech":       "technology",
	"science":    "technology",
	"ai":         "technology",

	"business": "business",
	"economy":  "business",
	"finance":  "business",
	"money":    "business",

	"sports":   "sports",
	"sport":    "sports",
	"football": "sports",

	"politics": "politics",
	"world":    "politics",

	"entertainment": "entertainment",
	"lifestyle":     "entertainment",
	"culture":       "entertainment",

	"health": "health",

	"top":      "general",
	"breaking": "general",
	"news":     "general",
}

// NormalizeCategory picks the primary category: the first raw entry that
// the canonical vocabulary recognises, defaulting to "general".
func NormalizeCategory(categories []string) string {
	for _, raw := range categories {
		if canonical, ok := categoryVocabulary[strings.ToLower(strings.TrimSpace(raw))]; ok {
			return canonical
		}
	}
	return CategoryDefault
}
