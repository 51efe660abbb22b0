// Package bronze turns the loosely-typed records handed over by the fetch
// collaborator into canonical typed rows. Validation happens here so the
// store only ever sees records with a usable identity.
package bronze

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"newslake/internal/store"
)

// ErrMissingID marks a raw record without an identity field. Such records
// are rejected and logged; they never abort a batch.
var ErrMissingID = errors.New("record has no identity field")

// NormalizeArticle converts one raw key-value record into a bronze Article.
// Optional fields default to empty; only the identity field is required.
func NormalizeArticle(raw map[string]any, endpoint string, loadedAt time.Time) (store.Article, error) {
	id := stringField(raw, "article_id", "id")
	if id == "" {
		return store.Article{}, fmt.Errorf("article from %s: %w", endpoint, ErrMissingID)
	}

	return store.Article{
		ID:             id,
		Title:          stringField(raw, "title"),
		Description:    stringField(raw, "description"),
		Content:        stringField(raw, "content"),
		SourceID:       stringField(raw, "source_id"),
		SourceName:     stringField(raw, "source_name"),
		SourceURL:      stringField(raw, "source_url"),
		Creator:        stringField(raw, "creator"),
		PublishedAt:    stringField(raw, "pubDate", "published_at"),
		Categories:     sliceField(raw, "category", "categories"),
		Country:        stringField(raw, "country"),
		Language:       stringField(raw, "language"),
		Link:           stringField(raw, "link"),
		ImageURL:       stringField(raw, "image_url"),
		OriginEndpoint: endpoint,
		LoadedAt:       loadedAt.UTC(),
	}, nil
}

// NormalizePage converts one raw key-value record into a bronze Page.
func NormalizePage(raw map[string]any, mode store.ScrapeMode, loadedAt time.Time) (store.Page, error) {
	id := stringField(raw, "page_id", "pageid", "id")
	if id == "" {
		return store.Page{}, fmt.Errorf("page (%s): %w", mode, ErrMissingID)
	}

	scrapedAt := loadedAt.UTC()
	if raw := stringField(raw, "scraped_at"); raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			scrapedAt = t.UTC()
		}
	}

	return store.Page{
		ID:         id,
		Title:      stringField(raw, "title"),
		Summary:    stringField(raw, "summary", "extract"),
		URL:        stringField(raw, "url", "link"),
		ScrapeMode: mode,
		ScrapedAt:  scrapedAt,
		LoadedAt:   loadedAt.UTC(),
	}, nil
}

// stringField returns the first present key coerced to a trimmed string.
// Non-string scalars are formatted; nulls and missing keys yield "".
func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
		case bool:
			return fmt.Sprintf("%t", t)
		}
	}
	return ""
}

// sliceField tolerates the three shapes sources use for category lists:
// a JSON array, a pre-typed string slice, or a comma-separated string.
func sliceField(raw map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case []string:
			return cleanSlice(t)
		case []any:
			items := make([]string, 0, len(t))
			for _, item := range t {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
			if out := cleanSlice(items); len(out) > 0 {
				return out
			}
		case string:
			if out := cleanSlice(strings.Split(t, ",")); len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func cleanSlice(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
