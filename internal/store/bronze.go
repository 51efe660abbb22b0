package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// WriteCounts reports the outcome of a bronze batch write.
type WriteCounts struct {
	Inserted int
	Skipped  int
}

// Add folds another batch result into the receiver.
func (w *WriteCounts) Add(other WriteCounts) {
	w.Inserted += other.Inserted
	w.Skipped += other.Skipped
}

// InsertArticles writes a batch of articles with insert-or-ignore semantics:
// a row whose id already exists is counted as skipped and left untouched.
// The whole batch runs in one transaction; on failure nothing from this
// batch is committed and the call is safe to retry.
func (s *Store) InsertArticles(ctx context.Context, articles []Article) (WriteCounts, error) {
	var counts WriteCounts
	if len(articles) == 0 {
		return counts, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin bronze batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO articles (id, title, description, content,
			source_id, source_name, source_url, creator, published_at,
			categories, country, language, link, image_url,
			origin_endpoint, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return WriteCounts{}, fmt.Errorf("prepare article insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		categoriesJSON, _ := json.Marshal(a.Categories)

		res, err := stmt.ExecContext(ctx,
			a.ID, a.Title, a.Description, a.Content,
			a.SourceID, a.SourceName, a.SourceURL, a.Creator, a.PublishedAt,
			string(categoriesJSON), a.Country, a.Language, a.Link, a.ImageURL,
			a.OriginEndpoint, a.LoadedAt)
		if err != nil {
			return WriteCounts{}, fmt.Errorf("insert article %s: %w", a.ID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return WriteCounts{}, fmt.Errorf("insert article %s: %w", a.ID, err)
		}
		if n > 0 {
			counts.Inserted++
		} else {
			counts.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return WriteCounts{}, fmt.Errorf("commit bronze batch: %w", err)
	}
	return counts, nil
}

// InsertPages writes a batch of wiki pages with the same insert-or-ignore
// contract as InsertArticles.
func (s *Store) InsertPages(ctx context.Context, pages []Page) (WriteCounts, error) {
	var counts WriteCounts
	if len(pages) == 0 {
		return counts, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin bronze batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO pages (id, title, summary, url, scrape_mode, scraped_at, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return WriteCounts{}, fmt.Errorf("prepare page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		res, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Summary, p.URL, string(p.ScrapeMode), p.ScrapedAt, p.LoadedAt)
		if err != nil {
			return WriteCounts{}, fmt.Errorf("insert page %s: %w", p.ID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return WriteCounts{}, fmt.Errorf("insert page %s: %w", p.ID, err)
		}
		if n > 0 {
			counts.Inserted++
		} else {
			counts.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return WriteCounts{}, fmt.Errorf("commit bronze batch: %w", err)
	}
	return counts, nil
}

// ArticleCount returns the number of bronze articles.
func (s *Store) ArticleCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// PageCount returns the number of bronze pages.
func (s *Store) PageCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
