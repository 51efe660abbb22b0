// Package gold computes the five business views as a pure function over the
// full silver table. Views carry no identity of their own and are meant to
// be replaced wholesale on every run; the deliberate trade is recompute time
// for freedom from incremental-aggregation drift.
package gold

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"newslake/internal/store"
)

// maxTrendingTopics bounds the trending view to the head of the ranking.
const maxTrendingTopics = 20

// minTokenLength drops tokens too short to name a topic.
const minTokenLength = 3

// Build derives all five gold views from the silver records. Output is
// fully deterministic: identical input produces identical rows in identical
// order, with frequency ties broken lexicographically.
func Build(records []store.SilverArticle) store.GoldViews {
	return store.GoldViews{
		DailySummary:      buildDailySummary(records),
		SourceStats:       buildSourceStats(records),
		TrendingTopics:    buildTrendingTopics(records),
		SentimentTimeline: buildSentimentTimeline(records),
		CategoryMatrix:    buildCategoryMatrix(records),
	}
}

func buildDailySummary(records []store.SilverArticle) []store.DailySummaryRow {
	type acc struct {
		count   int
		sum     float64
		sources map[string]struct{}
	}

	days := map[string]*acc{}
	for _, r := range records {
		day := r.Day()
		a, ok := days[day]
		if !ok {
			a = &acc{sources: map[string]struct{}{}}
			days[day] = a
		}
		a.count++
		a.sum += r.SentimentPolarity
		if r.SourceID != "" {
			a.sources[r.SourceID] = struct{}{}
		}
	}

	rows := make([]store.DailySummaryRow, 0, len(days))
	for day, a := range days {
		rows = append(rows, store.DailySummaryRow{
			Day:          day,
			ArticleCount: a.count,
			AvgSentiment: round4(a.sum / float64(a.count)),
			SourceCount:  len(a.sources),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return rows
}

func buildSourceStats(records []store.SilverArticle) []store.SourceStatsRow {
	type acc struct {
		count      int
		sum        float64
		categories map[string]struct{}
	}

	sources := map[string]*acc{}
	for _, r := range records {
		a, ok := sources[r.SourceID]
		if !ok {
			a = &acc{categories: map[string]struct{}{}}
			sources[r.SourceID] = a
		}
		a.count++
		a.sum += r.SentimentPolarity
		if r.CategoryPrimary != "" {
			a.categories[r.CategoryPrimary] = struct{}{}
		}
	}

	rows := make([]store.SourceStatsRow, 0, len(sources))
	for id, a := range sources {
		rows = append(rows, store.SourceStatsRow{
			SourceID:      id,
			ArticleCount:  a.count,
			AvgSentiment:  round4(a.sum / float64(a.count)),
			CategoryCount: len(a.categories),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SourceID < rows[j].SourceID })
	return rows
}

func buildTrendingTopics(records []store.SilverArticle) []store.TrendingTopicRow {
	// Document frequency: a token counts once per record however often it
	// repeats inside it.
	frequencies := map[string]int{}
	for _, r := range records {
		stopwords := stopwordsFor(r.LanguageDetected)
		for token := range recordTokens(r, stopwords) {
			frequencies[token]++
		}
	}

	rows := make([]store.TrendingTopicRow, 0, len(frequencies))
	for token, freq := range frequencies {
		rows = append(rows, store.TrendingTopicRow{Token: token, Frequency: freq})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Frequency != rows[j].Frequency {
			return rows[i].Frequency > rows[j].Frequency
		}
		return rows[i].Token < rows[j].Token
	})

	if len(rows) > maxTrendingTopics {
		rows = rows[:maxTrendingTopics]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func buildSentimentTimeline(records []store.SilverArticle) []store.SentimentTimelineRow {
	type acc struct {
		count int
		sum   float64
	}

	days := map[string]*acc{}
	for _, r := range records {
		day := r.Day()
		a, ok := days[day]
		if !ok {
			a = &acc{}
			days[day] = a
		}
		a.count++
		a.sum += r.SentimentPolarity
	}

	rows := make([]store.SentimentTimelineRow, 0, len(days))
	for day, a := range days {
		rows = append(rows, store.SentimentTimelineRow{
			Day:          day,
			AvgSentiment: round4(a.sum / float64(a.count)),
			ArticleCount: a.count,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return rows
}

func buildCategoryMatrix(records []store.SilverArticle) []store.CategoryMatrixRow {
	type cell struct {
		category string
		label    store.SentimentLabel
	}

	counts := map[cell]int{}
	for _, r := range records {
		counts[cell{r.CategoryPrimary, r.SentimentLabel}]++
	}

	rows := make([]store.CategoryMatrixRow, 0, len(counts))
	for c, n := range counts {
		rows = append(rows, store.CategoryMatrixRow{
			Category:       c.category,
			SentimentLabel: c.label,
			ArticleCount:   n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].SentimentLabel < rows[j].SentimentLabel
	})
	return rows
}

// recordTokens extracts the distinct significant tokens of one record's
// cleaned title and description.
func recordTokens(r store.SilverArticle, stopwords map[string]struct{}) map[string]struct{} {
	text := strings.ToLower(r.TitleClean + " " + r.DescriptionClean)
	fields := strings.FieldsFunc(text, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})

	tokens := map[string]struct{}{}
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLength {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
