package store

import "time"

// ScrapeMode says how a wiki page was selected for scraping.
type ScrapeMode string

const (
	ScrapeModeTopic  ScrapeMode = "topic"
	ScrapeModeRandom ScrapeMode = "random"
	ScrapeModeManual ScrapeMode = "manual-url"
)

// SentimentLabel classifies a polarity score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Article is a bronze news record as delivered by the fetch collaborator.
// PublishedAt keeps the source's own timestamp format; parsing happens in
// the silver stage.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Content        string    `json:"content"`
	SourceID       string    `json:"source_id"`
	SourceName     string    `json:"source_name"`
	SourceURL      string    `json:"source_url"`
	Creator        string    `json:"creator"`
	PublishedAt    string    `json:"published_at"`
	Categories     []string  `json:"categories"`
	Country        string    `json:"country"`
	Language       string    `json:"language"`
	Link           string    `json:"link"`
	ImageURL       string    `json:"image_url"`
	OriginEndpoint string    `json:"origin_endpoint"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// Page is a bronze encyclopedia record.
type Page struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	URL        string     `json:"url"`
	ScrapeMode ScrapeMode `json:"scrape_mode"`
	ScrapedAt  time.Time  `json:"scraped_at"`
	LoadedAt   time.Time  `json:"loaded_at"`
}

// SilverArticle is the enriched counterpart of a bronze Article, keyed by
// the same id. SourceID, SourceName and LoadedAt are denormalised so the
// gold stage can aggregate from the silver table alone.
type SilverArticle struct {
	ID                string         `json:"id"`
	TitleClean        string         `json:"title_clean"`
	DescriptionClean  string         `json:"description_clean"`
	SentimentPolarity float64        `json:"sentiment_polarity"`
	SentimentLabel    SentimentLabel `json:"sentiment_label"`
	EntitiesPersons   []string       `json:"entities_persons"`
	EntitiesLocations []string       `json:"entities_locations"`
	LanguageDetected  string         `json:"language_detected"`
	CategoryPrimary   string         `json:"category_primary"`
	PublishedDate     *time.Time     `json:"published_date"`
	WordCount         int            `json:"word_count"`
	SourceID          string         `json:"source_id"`
	SourceName        string         `json:"source_name"`
	LoadedAt          time.Time      `json:"loaded_at"`
	EnrichedAt        time.Time      `json:"enriched_at"`
}

// Day returns the calendar day this record aggregates under: the parsed
// publication date when available, otherwise the ingestion date.
func (s SilverArticle) Day() string {
	if s.PublishedDate != nil {
		return s.PublishedDate.Format("2006-01-02")
	}
	return s.LoadedAt.Format("2006-01-02")
}

// DailySummaryRow is one day of the daily summary view.
type DailySummaryRow struct {
	Day          string  `json:"day"`
	ArticleCount int     `json:"article_count"`
	AvgSentiment float64 `json:"avg_sentiment"`
	SourceCount  int     `json:"source_count"`
}

// SourceStatsRow is one source of the per-source stats view.
type SourceStatsRow struct {
	SourceID      string  `json:"source_id"`
	ArticleCount  int     `json:"article_count"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	CategoryCount int     `json:"category_count"`
}

// TrendingTopicRow is one ranked token of the trending topics view.
type TrendingTopicRow struct {
	Token     string `json:"token"`
	Frequency int    `json:"frequency"`
	Rank      int    `json:"rank"`
}

// SentimentTimelineRow is one day of the sentiment timeline view.
type SentimentTimelineRow struct {
	Day          string  `json:"day"`
	AvgSentiment float64 `json:"avg_sentiment"`
	ArticleCount int     `json:"article_count"`
}

// CategoryMatrixRow counts one (category, sentiment) cell; zero cells are
// never materialised.
type CategoryMatrixRow struct {
	Category       string         `json:"category"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	ArticleCount   int            `json:"article_count"`
}

// GoldViews bundles the five aggregate views. They are committed as a unit:
// either all five replace the previous generation or none do.
type GoldViews struct {
	DailySummary      []DailySummaryRow
	SourceStats       []SourceStatsRow
	TrendingTopics    []TrendingTopicRow
	SentimentTimeline []SentimentTimelineRow
	CategoryMatrix    []CategoryMatrixRow
}
