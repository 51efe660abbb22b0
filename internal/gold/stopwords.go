package gold

// Stopword sets for trending-topic filtering, per detected language. The
// combined set is used for records whose language is anything else (or
// unknown), so mixed corpora never leak function words into the ranking.

var stopwordsPT = wordSet(
	"o", "a", "os", "as", "um", "uma", "uns", "umas", "de", "da", "do",
	"das", "dos", "em", "na", "no", "nas", "nos", "por", "para", "com",
	"sem", "sob", "sobre", "e", "ou", "mas", "que", "se", "como", "mais",
	"menos", "muito", "pouco", "este", "esta", "estes", "estas", "esse",
	"essa", "esses", "essas", "aquele", "aquela", "aqueles", "aquelas",
	"isto", "isso", "aquilo", "eu", "tu", "ele", "ela", "vos", "eles",
	"elas", "meu", "teu", "seu", "ser", "estar", "ter", "haver", "fazer",
	"ir", "vir", "ver", "dar", "poder", "foi", "foram", "vai", "vao",
	"tem", "sao", "ja", "ainda", "so", "quando", "onde", "porque",
	"quanto", "qual", "quais", "quem", "apos", "antes", "depois",
	"durante", "entre", "ate", "desde", "contra",
)

var stopwordsEN = wordSet(
	"the", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of",
	"with", "by", "from", "as", "is", "was", "are", "were", "been", "be",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "this", "that", "these", "those", "it", "its", "he", "she",
	"they", "we", "you", "my", "your", "his", "her", "their", "our",
	"who", "what", "which", "when", "where", "why", "how", "all", "each",
	"every", "both", "few", "more", "most", "other", "some", "such", "no",
	"not", "only", "same", "so", "than", "too", "very", "just", "also",
	"now", "new", "first", "last", "long", "great", "after", "before",
	"between", "under", "over", "through", "during",
)

var stopwordsAll = union(stopwordsPT, stopwordsEN)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func union(sets ...map[string]struct{}) map[string]struct{} {
	out := map[string]struct{}{}
	for _, set := range sets {
		for w := range set {
			out[w] = struct{}{}
		}
	}
	return out
}

// stopwordsFor picks the stopword set for a record's detected language,
// falling back to the combined set.
func stopwordsFor(language string) map[string]struct{} {
	switch language {
	case "pt":
		return stopwordsPT
	case "en":
		return stopwordsEN
	default:
		return stopwordsAll
	}
}
