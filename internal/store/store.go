package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store handles all database operations
type Store struct {
	db   *sql.DB
	path string
}

// Open creates a Store backed by a SQLite file, creating the schema on
// first use. WAL mode keeps readers usable while a batch transaction runs.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT,
		description TEXT,
		content TEXT,
		source_id TEXT,
		source_name TEXT,
		source_url TEXT,
		creator TEXT,
		published_at TEXT,
		categories TEXT,
		country TEXT,
		language TEXT,
		link TEXT,
		image_url TEXT,
		origin_endpoint TEXT,
		loaded_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		title TEXT,
		summary TEXT,
		url TEXT,
		scrape_mode TEXT,
		scraped_at DATETIME,
		loaded_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS silver_articles (
		id TEXT PRIMARY KEY REFERENCES articles(id),
		title_clean TEXT,
		description_clean TEXT,
		sentiment_polarity REAL NOT NULL,
		sentiment_label TEXT NOT NULL,
		entities_persons TEXT,
		entities_locations TEXT,
		language_detected TEXT,
		category_primary TEXT,
		published_date TEXT,
		word_count INTEGER NOT NULL,
		source_id TEXT,
		source_name TEXT,
		loaded_at DATETIME NOT NULL,
		enriched_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gold_daily_summary (
		day TEXT NOT NULL,
		article_count INTEGER NOT NULL,
		avg_sentiment REAL NOT NULL,
		source_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gold_source_stats (
		source_id TEXT NOT NULL,
		article_count INTEGER NOT NULL,
		avg_sentiment REAL NOT NULL,
		category_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gold_trending_topics (
		token TEXT NOT NULL,
		frequency INTEGER NOT NULL,
		rank INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gold_sentiment_timeline (
		day TEXT NOT NULL,
		avg_sentiment REAL NOT NULL,
		article_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS gold_category_matrix (
		category TEXT NOT NULL,
		sentiment_label TEXT NOT NULL,
		article_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_articles_loaded_at ON articles(loaded_at);
	CREATE INDEX IF NOT EXISTS idx_silver_source ON silver_articles(source_id);
	CREATE INDEX IF NOT EXISTS idx_silver_category ON silver_articles(category_primary);
	CREATE INDEX IF NOT EXISTS idx_silver_pub_date ON silver_articles(published_date);
	`

	_, err := s.db.Exec(schema)
	return err
}
