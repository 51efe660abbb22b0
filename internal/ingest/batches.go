// Package ingest reads the raw batch files dropped into the inbox by the
// fetch collaborator. Each *.json file holds one batch: an array of raw
// key-value records. File names carry provenance: newsdata_<endpoint>_*.json
// for news articles, wiki_<mode>_*.json for encyclopedia pages.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"newslake/internal/store"
)

// Kind distinguishes the two bronze variants a batch can carry.
type Kind string

const (
	KindArticle Kind = "article"
	KindPage    Kind = "page"
)

// Batch is one raw input file, decoded but not yet normalized.
type Batch struct {
	File     string
	Kind     Kind
	Endpoint string           // articles: which query produced the batch
	Mode     store.ScrapeMode // pages: how they were selected
	Items    []map[string]any
}

var (
	newsdataExpr = regexp.MustCompile(`^newsdata_(.+?)_`)
	wikiExpr     = regexp.MustCompile(`^wiki_(topic|random|manual-url)_`)
)

// LoadBatches reads every *.json file in dir, sorted by name so repeated
// runs see batches in the same order. A missing inbox is not an error;
// there is simply nothing new to ingest.
func LoadBatches(dir string) ([]Batch, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading inbox %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	batches := make([]Batch, 0, len(names))
	for _, name := range names {
		batch, err := loadBatch(dir, name)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

func loadBatch(dir, name string) (Batch, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return Batch{}, fmt.Errorf("reading batch %s: %w", name, err)
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return Batch{}, fmt.Errorf("decoding batch %s: %w", name, err)
	}

	batch := Batch{File: name, Items: items}
	if m := wikiExpr.FindStringSubmatch(name); m != nil {
		batch.Kind = KindPage
		batch.Mode = store.ScrapeMode(m[1])
		return batch, nil
	}

	batch.Kind = KindArticle
	if m := newsdataExpr.FindStringSubmatch(name); m != nil {
		batch.Endpoint = m[1]
	} else {
		batch.Endpoint = "unknown"
	}
	return batch, nil
}
