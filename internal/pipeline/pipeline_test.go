package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newslake/internal/store"
)

func setupPipeline(t *testing.T) (*Pipeline, *store.Store, string) {
	t.Helper()
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	inbox := filepath.Join(dir, "inbox")
	require.NoError(t, os.MkdirAll(inbox, 0700))

	return New(st, inbox, nil), st, inbox
}

func writeInbox(t *testing.T, inbox, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(inbox, name), []byte(content), 0600))
}

const articlesBatch = `[
	{
		"article_id": "a1",
		"title": "Great success for the economy",
		"description": "Strong growth reported across the sector, officials said.",
		"source_id": "src-1",
		"source_name": "Source One",
		"pubDate": "2026-08-20 10:00:00",
		"category": ["business"]
	},
	{
		"article_id": "a2",
		"title": "Crisis deepens after the worst week",
		"description": "The decline continued and losses mounted for the group.",
		"source_id": "src-2",
		"source_name": "Source Two",
		"pubDate": "2026-08-20 15:00:00",
		"category": ["economy"]
	},
	{
		"title": "no identity, must be rejected"
	}
]`

const pagesBatch = `[
	{"pageid": 42, "title": "Lisbon", "extract": "Lisbon is the capital of Portugal."}
]`

func TestRunFullPass(t *testing.T) {
	p, st, inbox := setupPipeline(t)
	ctx := context.Background()

	writeInbox(t, inbox, "newsdata_latest_20260821.json", articlesBatch)
	writeInbox(t, inbox, "wiki_topic_20260821.json", pagesBatch)

	report, err := p.Run(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.ArticlesInserted)
	assert.Zero(t, report.ArticlesSkipped)
	assert.Equal(t, 1, report.PagesInserted)
	assert.Equal(t, 1, report.Rejected)
	assert.Equal(t, 2, report.Enriched)
	assert.Zero(t, report.EnrichSkipped)

	// Pages stay bronze-only: the silver table holds articles alone.
	n, err := st.SilverCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	daily, err := st.DailySummary(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "2026-08-20", daily[0].Day)
	assert.Equal(t, 2, daily[0].ArticleCount)
	assert.Equal(t, 2, daily[0].SourceCount)

	matrix, err := st.CategoryMatrix(ctx)
	require.NoError(t, err)
	require.Len(t, matrix, 2, "one positive and one negative business cell")
	assert.Equal(t, "business", matrix[0].Category)
	assert.Equal(t, store.SentimentNegative, matrix[0].SentimentLabel)
	assert.Equal(t, store.SentimentPositive, matrix[1].SentimentLabel)

	assert.Equal(t, 1, report.GoldRows["daily_summary"])
	assert.Equal(t, 2, report.GoldRows["source_stats"])
}

func TestRunIsIdempotent(t *testing.T) {
	p, st, inbox := setupPipeline(t)
	ctx := context.Background()

	writeInbox(t, inbox, "newsdata_latest_20260821.json", articlesBatch)

	first, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, first.ArticlesInserted)

	firstSilver, err := st.SilverArticles(ctx)
	require.NoError(t, err)

	// Same inbox again: everything counts as skipped and the database
	// state is unchanged.
	second, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.ArticlesInserted)
	assert.Equal(t, 2, second.ArticlesSkipped)
	assert.Zero(t, second.Enriched)
	assert.Equal(t, 2, second.EnrichSkipped)
	assert.Equal(t, 1, second.Rejected, "the malformed record is rejected again")

	secondSilver, err := st.SilverArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstSilver, secondSilver, "enrichment is never redone")

	assert.Equal(t, first.GoldRows, second.GoldRows)
}

func TestRunEmptyInbox(t *testing.T) {
	p, st, _ := setupPipeline(t)
	ctx := context.Background()

	report, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Zero(t, report.ArticlesInserted)
	assert.Zero(t, report.Enriched)
	for _, n := range report.GoldRows {
		assert.Zero(t, n)
	}

	// Gold replace still ran; the views are just empty.
	daily, err := st.DailySummary(ctx)
	require.NoError(t, err)
	assert.Empty(t, daily)
}

func TestRunGrowsAcrossBatches(t *testing.T) {
	p, st, inbox := setupPipeline(t)
	ctx := context.Background()

	writeInbox(t, inbox, "newsdata_latest_20260821.json", articlesBatch)
	_, err := p.Run(ctx)
	require.NoError(t, err)

	// A later drop shares one id with the first batch.
	writeInbox(t, inbox, "newsdata_latest_20260822.json", `[
		{"article_id": "a2", "title": "already known"},
		{"article_id": "a4", "title": "Breakthrough hope for the recovery effort this year",
		 "source_id": "src-1", "pubDate": "2026-08-21 09:00:00"}
	]`)

	report, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ArticlesInserted)
	assert.Equal(t, 3, report.ArticlesSkipped, "two from the old batch, one duplicate id")
	assert.Equal(t, 1, report.Enriched)
	assert.Equal(t, 2, report.EnrichSkipped)

	daily, err := st.DailySummary(ctx)
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2026-08-21", daily[1].Day)
}
