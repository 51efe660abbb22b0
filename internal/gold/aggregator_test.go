package gold

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newslake/internal/store"
)

func day(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func sampleRecords() []store.SilverArticle {
	return []store.SilverArticle{
		{
			ID: "a1", SourceID: "src-1",
			TitleClean:        "Election results announced",
			DescriptionClean:  "Turnout was high across the country",
			SentimentPolarity: 0.4, SentimentLabel: store.SentimentPositive,
			CategoryPrimary: "politics", LanguageDetected: "en",
			PublishedDate: day("2026-08-20"),
		},
		{
			ID: "a2", SourceID: "src-1",
			TitleClean:        "Election recount demanded",
			DescriptionClean:  "Opposition claims irregularities",
			SentimentPolarity: -0.2, SentimentLabel: store.SentimentNegative,
			CategoryPrimary: "politics", LanguageDetected: "en",
			PublishedDate: day("2026-08-20"),
		},
		{
			ID: "a3", SourceID: "src-2",
			TitleClean:        "Transfer window closes quietly",
			DescriptionClean:  "Clubs made few signings",
			SentimentPolarity: 0.0, SentimentLabel: store.SentimentNeutral,
			CategoryPrimary: "sports", LanguageDetected: "en",
			LoadedAt: time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuildDailySummary(t *testing.T) {
	views := Build(sampleRecords())

	require.Len(t, views.DailySummary, 2)

	first := views.DailySummary[0]
	assert.Equal(t, "2026-08-20", first.Day)
	assert.Equal(t, 2, first.ArticleCount)
	assert.InDelta(t, 0.1, first.AvgSentiment, 0.0001)
	assert.Equal(t, 1, first.SourceCount)

	// No publication date: the record aggregates under its ingestion day.
	second := views.DailySummary[1]
	assert.Equal(t, "2026-08-21", second.Day)
	assert.Equal(t, 1, second.ArticleCount)

	total := 0
	for _, row := range views.DailySummary {
		total += row.ArticleCount
	}
	assert.Equal(t, len(sampleRecords()), total, "every record lands on exactly one day")
}

func TestBuildSourceStats(t *testing.T) {
	views := Build(sampleRecords())

	require.Len(t, views.SourceStats, 2)
	assert.Equal(t, "src-1", views.SourceStats[0].SourceID)
	assert.Equal(t, 2, views.SourceStats[0].ArticleCount)
	assert.InDelta(t, 0.1, views.SourceStats[0].AvgSentiment, 0.0001)
	assert.Equal(t, 1, views.SourceStats[0].CategoryCount)

	assert.Equal(t, "src-2", views.SourceStats[1].SourceID)
	assert.Equal(t, 1, views.SourceStats[1].ArticleCount)
}

func TestBuildTrendingTopics(t *testing.T) {
	views := Build(sampleRecords())

	require.NotEmpty(t, views.TrendingTopics)
	top := views.TrendingTopics[0]
	assert.Equal(t, "election", top.Token, "appears in two records")
	assert.Equal(t, 2, top.Frequency)
	assert.Equal(t, 1, top.Rank)

	for i, row := range views.TrendingTopics {
		assert.Equal(t, i+1, row.Rank)
		assert.NotContains(t, []string{"the", "was", "and"}, row.Token, "stopwords filtered")
	}
	assert.LessOrEqual(t, len(views.TrendingTopics), 20)
}

func TestTrendingTopicsDocumentFrequency(t *testing.T) {
	// Repeating a token inside one record must not inflate its count.
	records := []store.SilverArticle{
		{ID: "a1", TitleClean: "budget budget budget", LanguageDetected: "en",
			LoadedAt: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", TitleClean: "budget approved", LanguageDetected: "en",
			LoadedAt: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)},
	}

	views := Build(records)
	require.NotEmpty(t, views.TrendingTopics)
	assert.Equal(t, "budget", views.TrendingTopics[0].Token)
	assert.Equal(t, 2, views.TrendingTopics[0].Frequency)
}

func TestTrendingTopicsDeterministicTieBreak(t *testing.T) {
	records := []store.SilverArticle{
		{ID: "a1", TitleClean: "zebra apple", LanguageDetected: "en",
			LoadedAt: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)},
	}

	for i := 0; i < 5; i++ {
		views := Build(records)
		require.Len(t, views.TrendingTopics, 2)
		assert.Equal(t, "apple", views.TrendingTopics[0].Token, "ties break lexicographically")
		assert.Equal(t, "zebra", views.TrendingTopics[1].Token)
	}
}

func TestDailySummaryAveragesOneDay(t *testing.T) {
	records := []store.SilverArticle{
		{ID: "a1", SourceID: "s1", SentimentPolarity: 0.4, PublishedDate: day("2026-08-20")},
		{ID: "a2", SourceID: "s2", SentimentPolarity: -0.2, PublishedDate: day("2026-08-20")},
		{ID: "a3", SourceID: "s3", SentimentPolarity: 0.0, PublishedDate: day("2026-08-20")},
	}

	views := Build(records)

	require.Len(t, views.DailySummary, 1)
	row := views.DailySummary[0]
	assert.Equal(t, 3, row.ArticleCount)
	assert.InDelta(t, 0.0667, row.AvgSentiment, 0.0001)
	assert.Equal(t, 3, row.SourceCount)
}

func TestBuildSentimentTimeline(t *testing.T) {
	views := Build(sampleRecords())

	require.Len(t, views.SentimentTimeline, 2)
	assert.Equal(t, "2026-08-20", views.SentimentTimeline[0].Day)
	assert.InDelta(t, 0.1, views.SentimentTimeline[0].AvgSentiment, 0.0001)
	assert.Equal(t, 2, views.SentimentTimeline[0].ArticleCount)
}

func TestBuildCategoryMatrix(t *testing.T) {
	views := Build(sampleRecords())

	require.Len(t, views.CategoryMatrix, 3)

	for _, row := range views.CategoryMatrix {
		assert.Positive(t, row.ArticleCount, "zero cells are never materialised")
	}

	assert.Equal(t, store.CategoryMatrixRow{
		Category: "politics", SentimentLabel: store.SentimentNegative, ArticleCount: 1,
	}, views.CategoryMatrix[0])
	assert.Equal(t, "sports", views.CategoryMatrix[2].Category)
}

func TestBuildEmptyInput(t *testing.T) {
	views := Build(nil)

	// Empty but non-nil: the persistence layer treats nil views as an
	// incomplete aggregation.
	assert.NotNil(t, views.DailySummary)
	assert.NotNil(t, views.SourceStats)
	assert.NotNil(t, views.TrendingTopics)
	assert.NotNil(t, views.SentimentTimeline)
	assert.NotNil(t, views.CategoryMatrix)
	assert.Empty(t, views.DailySummary)
}
