// Package silver derives the enriched representation of bronze records:
// cleaned text, sentiment, entities, language, category and a normalised
// publication date. Every sub-step degrades to a documented default instead
// of failing, so an enrichment pass never drops a record.
package silver

import (
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"newslake/internal/store"
)

// Enricher turns bronze articles into silver records.
type Enricher struct {
	cleaner *cleaner
	log     *slog.Logger
}

// NewEnricher builds an enricher; logger may be nil.
func NewEnricher(log *slog.Logger) *Enricher {
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		cleaner: newCleaner(),
		log:     log,
	}
}

// Enrich produces the silver record for one bronze article. It cannot fail:
// fields that resist enrichment fall back to their defaults (polarity 0 /
// neutral, empty entity lists, "unknown" language, "general" category, nil
// published date).
func (e *Enricher) Enrich(a store.Article, now time.Time) store.SilverArticle {
	titleClean := e.cleaner.Clean(a.Title)
	descriptionClean := e.cleaner.Clean(a.Description)
	contentClean := e.cleaner.Clean(a.Content)

	nlpText := joinNonEmpty(titleClean, descriptionClean, contentClean)

	sentiment := AnalyzeSentiment(nlpText)
	entities := ExtractEntities(nlpText)
	language := DetectLanguage(nlpText)
	category := NormalizeCategory(a.Categories)

	publishedDate := parsePublishedDate(a.PublishedAt)
	if publishedDate == nil && a.PublishedAt != "" {
		e.log.Debug("unparsable publication date, keeping record with null date",
			"article", a.ID, "published_at", a.PublishedAt)
	}

	return store.SilverArticle{
		ID:                a.ID,
		TitleClean:        titleClean,
		DescriptionClean:  descriptionClean,
		SentimentPolarity: sentiment.Polarity,
		SentimentLabel:    sentiment.Label,
		EntitiesPersons:   entities.Persons,
		EntitiesLocations: entities.Locations,
		LanguageDetected:  language,
		CategoryPrimary:   category,
		PublishedDate:     publishedDate,
		WordCount:         len(strings.Fields(nlpText)),
		SourceID:          a.SourceID,
		SourceName:        a.SourceName,
		LoadedAt:          a.LoadedAt,
		EnrichedAt:        now.UTC(),
	}
}

// parsePublishedDate normalises the source timestamp to a calendar date.
// Unparsable input yields nil; the record is kept.
func parsePublishedDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
