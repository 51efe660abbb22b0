// Package pipeline orchestrates one full bronze -> silver -> gold pass over
// whatever the inbox currently holds. A run is idempotent: feeding it the
// same inbox twice leaves the database in the same state and the second
// report shows everything as skipped.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"newslake/internal/bronze"
	"newslake/internal/gold"
	"newslake/internal/ingest"
	"newslake/internal/silver"
	"newslake/internal/store"
)

// Report summarises one run.
type Report struct {
	RunID            string
	ArticlesInserted int
	ArticlesSkipped  int
	PagesInserted    int
	PagesSkipped     int
	Rejected         int
	Enriched         int
	EnrichSkipped    int
	GoldRows         store.GoldRowCounts
	Duration         time.Duration
}

// Pipeline wires the stages together over one store.
type Pipeline struct {
	store    *store.Store
	enricher *silver.Enricher
	inbox    string
	log      *slog.Logger
}

// New builds a pipeline reading batches from inbox; logger may be nil.
func New(st *store.Store, inbox string, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		store:    st,
		enricher: silver.NewEnricher(log),
		inbox:    inbox,
		log:      log,
	}
}

// Run executes one full pass: load inbox batches, normalize and persist
// bronze, enrich pending records into silver, then rebuild the gold views
// from the complete silver table.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	report := Report{RunID: uuid.NewString()}
	log := p.log.With("run", report.RunID)
	log.Info("pipeline run starting", "inbox", p.inbox)

	if err := p.runBronze(ctx, log, &report); err != nil {
		return report, err
	}
	if err := p.runSilver(ctx, log, &report); err != nil {
		return report, err
	}
	if err := p.runGold(ctx, log, &report); err != nil {
		return report, err
	}

	report.Duration = time.Since(start)
	log.Info("pipeline run finished",
		"articles_inserted", report.ArticlesInserted,
		"articles_skipped", report.ArticlesSkipped,
		"pages_inserted", report.PagesInserted,
		"pages_skipped", report.PagesSkipped,
		"rejected", report.Rejected,
		"enriched", report.Enriched,
		"enrich_skipped", report.EnrichSkipped,
		"duration", report.Duration)
	return report, nil
}

func (p *Pipeline) runBronze(ctx context.Context, log *slog.Logger, report *Report) error {
	batches, err := ingest.LoadBatches(p.inbox)
	if err != nil {
		return fmt.Errorf("bronze stage: %w", err)
	}

	loadedAt := time.Now().UTC()
	for _, batch := range batches {
		switch batch.Kind {
		case ingest.KindPage:
			var pages []store.Page
			for _, item := range batch.Items {
				page, err := bronze.NormalizePage(item, batch.Mode, loadedAt)
				if errors.Is(err, bronze.ErrMissingID) {
					report.Rejected++
					log.Warn("rejecting page without id", "batch", batch.File)
					continue
				}
				if err != nil {
					return fmt.Errorf("bronze stage: batch %s: %w", batch.File, err)
				}
				pages = append(pages, page)
			}
			counts, err := p.store.InsertPages(ctx, pages)
			if err != nil {
				return fmt.Errorf("bronze stage: batch %s: %w", batch.File, err)
			}
			report.PagesInserted += counts.Inserted
			report.PagesSkipped += counts.Skipped

		default:
			var articles []store.Article
			for _, item := range batch.Items {
				article, err := bronze.NormalizeArticle(item, batch.Endpoint, loadedAt)
				if errors.Is(err, bronze.ErrMissingID) {
					report.Rejected++
					log.Warn("rejecting article without id", "batch", batch.File)
					continue
				}
				if err != nil {
					return fmt.Errorf("bronze stage: batch %s: %w", batch.File, err)
				}
				articles = append(articles, article)
			}
			counts, err := p.store.InsertArticles(ctx, articles)
			if err != nil {
				return fmt.Errorf("bronze stage: batch %s: %w", batch.File, err)
			}
			report.ArticlesInserted += counts.Inserted
			report.ArticlesSkipped += counts.Skipped
		}
	}

	log.Info("bronze stage done",
		"batches", len(batches),
		"articles_inserted", report.ArticlesInserted,
		"articles_skipped", report.ArticlesSkipped,
		"pages_inserted", report.PagesInserted,
		"pages_skipped", report.PagesSkipped,
		"rejected", report.Rejected)
	return nil
}

func (p *Pipeline) runSilver(ctx context.Context, log *slog.Logger, report *Report) error {
	total, err := p.store.ArticleCount(ctx)
	if err != nil {
		return fmt.Errorf("silver stage: %w", err)
	}

	pending, err := p.store.PendingArticles(ctx)
	if err != nil {
		return fmt.Errorf("silver stage: %w", err)
	}
	report.EnrichSkipped = total - len(pending)

	if len(pending) > 0 {
		now := time.Now().UTC()
		records := make([]store.SilverArticle, 0, len(pending))
		for _, article := range pending {
			records = append(records, p.enricher.Enrich(article, now))
		}
		if err := p.store.InsertSilver(ctx, records); err != nil {
			return fmt.Errorf("silver stage: %w", err)
		}
		report.Enriched = len(records)
	}

	log.Info("silver stage done",
		"enriched", report.Enriched, "skipped", report.EnrichSkipped)
	return nil
}

func (p *Pipeline) runGold(ctx context.Context, log *slog.Logger, report *Report) error {
	records, err := p.store.SilverArticles(ctx)
	if err != nil {
		return fmt.Errorf("gold stage: %w", err)
	}

	views := gold.Build(records)
	counts, err := p.store.ReplaceAggregates(ctx, views)
	if err != nil {
		return fmt.Errorf("gold stage: %w", err)
	}
	report.GoldRows = counts

	log.Info("gold stage done", "silver_records", len(records),
		"daily_summary", counts["daily_summary"],
		"source_stats", counts["source_stats"],
		"trending_topics", counts["trending_topics"],
		"sentiment_timeline", counts["sentiment_timeline"],
		"category_matrix", counts["category_matrix"])
	return nil
}
