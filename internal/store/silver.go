package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const dayFormat = "2006-01-02"

// PendingArticles returns bronze articles that have no silver counterpart
// yet, ordered by id. Re-running enrichment only ever sees this set, which
// is what makes the silver stage an idempotent skip for everything else.
func (s *Store) PendingArticles(ctx context.Context) ([]Article, error) {
	query, args, err := sq.
		Select("a.id", "a.title", "a.description", "a.content",
			"a.source_id", "a.source_name", "a.source_url", "a.creator",
			"a.published_at", "a.categories", "a.country", "a.language",
			"a.link", "a.image_url", "a.origin_endpoint", "a.loaded_at").
		From("articles a").
		LeftJoin("silver_articles s ON a.id = s.id").
		Where("s.id IS NULL").
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		var categoriesJSON string

		err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Content,
			&a.SourceID, &a.SourceName, &a.SourceURL, &a.Creator,
			&a.PublishedAt, &categoriesJSON, &a.Country, &a.Language,
			&a.Link, &a.ImageURL, &a.OriginEndpoint, &a.LoadedAt)
		if err != nil {
			return nil, fmt.Errorf("scan pending article: %w", err)
		}

		json.Unmarshal([]byte(categoriesJSON), &a.Categories)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// InsertSilver writes a batch of enriched records in one transaction.
// Callers only pass records for ids absent from the silver table; the
// primary key backstops that invariant.
func (s *Store) InsertSilver(ctx context.Context, records []SilverArticle) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin silver batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO silver_articles (id, title_clean, description_clean,
			sentiment_polarity, sentiment_label,
			entities_persons, entities_locations,
			language_detected, category_primary, published_date, word_count,
			source_id, source_name, loaded_at, enriched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare silver insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		personsJSON, _ := json.Marshal(r.EntitiesPersons)
		locationsJSON, _ := json.Marshal(r.EntitiesLocations)

		var pubDate any
		if r.PublishedDate != nil {
			pubDate = r.PublishedDate.Format(dayFormat)
		}

		_, err := stmt.ExecContext(ctx,
			r.ID, r.TitleClean, r.DescriptionClean,
			r.SentimentPolarity, string(r.SentimentLabel),
			string(personsJSON), string(locationsJSON),
			r.LanguageDetected, r.CategoryPrimary, pubDate, r.WordCount,
			r.SourceID, r.SourceName, r.LoadedAt, r.EnrichedAt)
		if err != nil {
			return fmt.Errorf("insert silver record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit silver batch: %w", err)
	}
	return nil
}

// SilverArticles reads the full silver table, ordered by id.
func (s *Store) SilverArticles(ctx context.Context) ([]SilverArticle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title_clean, description_clean,
			sentiment_polarity, sentiment_label,
			entities_persons, entities_locations,
			language_detected, category_primary, published_date, word_count,
			source_id, source_name, loaded_at, enriched_at
		FROM silver_articles
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query silver articles: %w", err)
	}
	defer rows.Close()

	var records []SilverArticle
	for rows.Next() {
		var r SilverArticle
		var label string
		var personsJSON, locationsJSON string
		var pubDate sql.NullString

		err := rows.Scan(
			&r.ID, &r.TitleClean, &r.DescriptionClean,
			&r.SentimentPolarity, &label,
			&personsJSON, &locationsJSON,
			&r.LanguageDetected, &r.CategoryPrimary, &pubDate, &r.WordCount,
			&r.SourceID, &r.SourceName, &r.LoadedAt, &r.EnrichedAt)
		if err != nil {
			return nil, fmt.Errorf("scan silver record: %w", err)
		}

		r.SentimentLabel = SentimentLabel(label)
		json.Unmarshal([]byte(personsJSON), &r.EntitiesPersons)
		json.Unmarshal([]byte(locationsJSON), &r.EntitiesLocations)
		if pubDate.Valid {
			if d, err := time.Parse(dayFormat, pubDate.String); err == nil {
				r.PublishedDate = &d
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SilverCount returns the number of silver records.
func (s *Store) SilverCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM silver_articles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count silver articles: %w", err)
	}
	return n, nil
}
