package silver

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	controlChars  = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

var punctReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`,
	"‘", "'", "’", "'", "‚", "'",
	"–", "-", "—", "-",
	"…", "...",
)

// cleaner strips markup and normalises whitespace and typographic
// punctuation. Cleaning never fails: input that defeats the sanitiser is
// returned trimmed but otherwise unchanged.
type cleaner struct {
	policy *bluemonday.Policy
}

func newCleaner() *cleaner {
	return &cleaner{policy: bluemonday.StrictPolicy()}
}

// Clean removes tags, decodes entities and collapses whitespace.
func (c *cleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	stripped := html.UnescapeString(c.policy.Sanitize(text))
	stripped = punctReplacer.Replace(stripped)
	stripped = controlChars.ReplaceAllString(stripped, "")
	stripped = multiSpaces.ReplaceAllString(stripped, " ")
	stripped = multiNewlines.ReplaceAllString(stripped, "\n\n")

	return strings.TrimSpace(stripped)
}
