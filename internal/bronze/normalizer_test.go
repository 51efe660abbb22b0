package bronze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newslake/internal/store"
)

var loadedAt = time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)

func TestNormalizeArticle(t *testing.T) {
	raw := map[string]any{
		"article_id":  "abc123",
		"title":       "  Headline  ",
		"description": "Some description",
		"source_id":   "publico",
		"pubDate":     "2026-08-20 10:30:00",
		"category":    []any{"tech", "ai"},
		"language":    "portuguese",
	}

	a, err := NormalizeArticle(raw, "latest", loadedAt)
	require.NoError(t, err)

	assert.Equal(t, "abc123", a.ID)
	assert.Equal(t, "Headline", a.Title)
	assert.Equal(t, "2026-08-20 10:30:00", a.PublishedAt, "source timestamp kept verbatim")
	assert.Equal(t, []string{"tech", "ai"}, a.Categories)
	assert.Equal(t, "latest", a.OriginEndpoint)
	assert.Equal(t, loadedAt, a.LoadedAt)
}

func TestNormalizeArticleMissingID(t *testing.T) {
	for name, raw := range map[string]map[string]any{
		"absent": {"title": "no identity"},
		"null":   {"article_id": nil, "title": "null identity"},
		"blank":  {"article_id": "   ", "title": "blank identity"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeArticle(raw, "latest", loadedAt)
			require.ErrorIs(t, err, ErrMissingID)
		})
	}
}

func TestNormalizeArticleFallbackKeys(t *testing.T) {
	raw := map[string]any{
		"id":           "fallback-1",
		"published_at": "2026-08-19T08:00:00Z",
		"categories":   "business, economy",
	}

	a, err := NormalizeArticle(raw, "archive", loadedAt)
	require.NoError(t, err)

	assert.Equal(t, "fallback-1", a.ID)
	assert.Equal(t, "2026-08-19T08:00:00Z", a.PublishedAt)
	assert.Equal(t, []string{"business", "economy"}, a.Categories, "comma string splits")
}

func TestNormalizeArticleMissingOptionalFields(t *testing.T) {
	a, err := NormalizeArticle(map[string]any{"article_id": "bare"}, "latest", loadedAt)
	require.NoError(t, err)

	assert.Equal(t, "bare", a.ID)
	assert.Empty(t, a.Title)
	assert.Empty(t, a.PublishedAt)
	assert.Nil(t, a.Categories)
}

func TestNormalizePage(t *testing.T) {
	raw := map[string]any{
		"pageid":     float64(12345),
		"title":      "Lisbon",
		"extract":    "Lisbon is the capital of Portugal.",
		"url":        "https://en.wikipedia.org/wiki/Lisbon",
		"scraped_at": "2026-08-21T07:45:00Z",
	}

	p, err := NormalizePage(raw, store.ScrapeModeTopic, loadedAt)
	require.NoError(t, err)

	assert.Equal(t, "12345", p.ID, "numeric id coerced to string")
	assert.Equal(t, "Lisbon is the capital of Portugal.", p.Summary)
	assert.Equal(t, store.ScrapeModeTopic, p.ScrapeMode)
	assert.Equal(t, time.Date(2026, 8, 21, 7, 45, 0, 0, time.UTC), p.ScrapedAt)
}

func TestNormalizePageDefaultsScrapedAt(t *testing.T) {
	p, err := NormalizePage(map[string]any{
		"page_id":    "p9",
		"scraped_at": "not a timestamp",
	}, store.ScrapeModeRandom, loadedAt)
	require.NoError(t, err)
	assert.Equal(t, loadedAt, p.ScrapedAt)

	_, err = NormalizePage(map[string]any{"title": "anonymous"}, store.ScrapeModeRandom, loadedAt)
	require.ErrorIs(t, err, ErrMissingID)
}
