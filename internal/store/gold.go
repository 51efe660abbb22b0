package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// ErrIncompleteAggregates rejects a gold commit that is missing one or more
// of the five views. Prior gold state remains authoritative in that case.
var ErrIncompleteAggregates = errors.New("gold aggregate commit requires all five views")

// GoldRowCounts maps view name to the number of rows written for it.
type GoldRowCounts map[string]int

// ReplaceAggregates swaps the five gold views for a freshly computed
// generation in a single transaction: readers observe either the previous
// generation or the new one, never a mix. Empty views are allowed; nil views
// mean the aggregation did not complete and the commit is refused.
func (s *Store) ReplaceAggregates(ctx context.Context, views GoldViews) (GoldRowCounts, error) {
	if views.DailySummary == nil || views.SourceStats == nil ||
		views.TrendingTopics == nil || views.SentimentTimeline == nil ||
		views.CategoryMatrix == nil {
		return nil, ErrIncompleteAggregates
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin gold replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"gold_daily_summary", "gold_source_stats", "gold_trending_topics",
		"gold_sentiment_timeline", "gold_category_matrix",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	daily := sq.Insert("gold_daily_summary").
		Columns("day", "article_count", "avg_sentiment", "source_count")
	for _, r := range views.DailySummary {
		daily = daily.Values(r.Day, r.ArticleCount, r.AvgSentiment, r.SourceCount)
	}

	sources := sq.Insert("gold_source_stats").
		Columns("source_id", "article_count", "avg_sentiment", "category_count")
	for _, r := range views.SourceStats {
		sources = sources.Values(r.SourceID, r.ArticleCount, r.AvgSentiment, r.CategoryCount)
	}

	trending := sq.Insert("gold_trending_topics").
		Columns("token", "frequency", "rank")
	for _, r := range views.TrendingTopics {
		trending = trending.Values(r.Token, r.Frequency, r.Rank)
	}

	timeline := sq.Insert("gold_sentiment_timeline").
		Columns("day", "avg_sentiment", "article_count")
	for _, r := range views.SentimentTimeline {
		timeline = timeline.Values(r.Day, r.AvgSentiment, r.ArticleCount)
	}

	matrix := sq.Insert("gold_category_matrix").
		Columns("category", "sentiment_label", "article_count")
	for _, r := range views.CategoryMatrix {
		matrix = matrix.Values(r.Category, string(r.SentimentLabel), r.ArticleCount)
	}

	inserts := []struct {
		name    string
		builder sq.InsertBuilder
		rows    int
	}{
		{"daily_summary", daily, len(views.DailySummary)},
		{"source_stats", sources, len(views.SourceStats)},
		{"trending_topics", trending, len(views.TrendingTopics)},
		{"sentiment_timeline", timeline, len(views.SentimentTimeline)},
		{"category_matrix", matrix, len(views.CategoryMatrix)},
	}

	counts := make(GoldRowCounts, len(inserts))
	for _, ins := range inserts {
		counts[ins.name] = ins.rows
		if ins.rows == 0 {
			continue
		}
		query, args, err := ins.builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build %s insert: %w", ins.name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("write %s: %w", ins.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit gold replace: %w", err)
	}
	return counts, nil
}

// DailySummary reads the daily summary view ordered by day.
func (s *Store) DailySummary(ctx context.Context) ([]DailySummaryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, article_count, avg_sentiment, source_count
		FROM gold_daily_summary ORDER BY day
	`)
	if err != nil {
		return nil, fmt.Errorf("query daily summary: %w", err)
	}
	defer rows.Close()

	var out []DailySummaryRow
	for rows.Next() {
		var r DailySummaryRow
		if err := rows.Scan(&r.Day, &r.ArticleCount, &r.AvgSentiment, &r.SourceCount); err != nil {
			return nil, fmt.Errorf("scan daily summary: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SourceStats reads the per-source stats view ordered by source id.
func (s *Store) SourceStats(ctx context.Context) ([]SourceStatsRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_id, article_count, avg_sentiment, category_count
		FROM gold_source_stats ORDER BY source_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query source stats: %w", err)
	}
	defer rows.Close()

	var out []SourceStatsRow
	for rows.Next() {
		var r SourceStatsRow
		if err := rows.Scan(&r.SourceID, &r.ArticleCount, &r.AvgSentiment, &r.CategoryCount); err != nil {
			return nil, fmt.Errorf("scan source stats: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TrendingTopics reads the trending topics view in rank order.
func (s *Store) TrendingTopics(ctx context.Context) ([]TrendingTopicRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, frequency, rank
		FROM gold_trending_topics ORDER BY rank
	`)
	if err != nil {
		return nil, fmt.Errorf("query trending topics: %w", err)
	}
	defer rows.Close()

	var out []TrendingTopicRow
	for rows.Next() {
		var r TrendingTopicRow
		if err := rows.Scan(&r.Token, &r.Frequency, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan trending topic: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SentimentTimeline reads the sentiment timeline view in chronological order.
func (s *Store) SentimentTimeline(ctx context.Context) ([]SentimentTimelineRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, avg_sentiment, article_count
		FROM gold_sentiment_timeline ORDER BY day
	`)
	if err != nil {
		return nil, fmt.Errorf("query sentiment timeline: %w", err)
	}
	defer rows.Close()

	var out []SentimentTimelineRow
	for rows.Next() {
		var r SentimentTimelineRow
		if err := rows.Scan(&r.Day, &r.AvgSentiment, &r.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan sentiment timeline: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CategoryMatrix reads the category-by-sentiment matrix ordered by
// category then label.
func (s *Store) CategoryMatrix(ctx context.Context) ([]CategoryMatrixRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, sentiment_label, article_count
		FROM gold_category_matrix ORDER BY category, sentiment_label
	`)
	if err != nil {
		return nil, fmt.Errorf("query category matrix: %w", err)
	}
	defer rows.Close()

	var out []CategoryMatrixRow
	for rows.Next() {
		var r CategoryMatrixRow
		var label string
		if err := rows.Scan(&r.Category, &label, &r.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan category matrix: %w", err)
		}
		r.SentimentLabel = SentimentLabel(label)
		out = append(out, r)
	}
	return out, rows.Err()
}
