package store

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// textDocument is what gets indexed and scored: just the id and the
// collection's one text field (Game.name, AlternativeName.name, ...).
// Text search is case-insensitive because the English analyzer lower-cases
// tokens (it also stems them). It does not fold accents: "é" and "e" are
// different letters to the index.
type textDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TextIndex is a Bleve-backed full-text index over one collection's name
// field, returning case-insensitive (but not accent-insensitive),
// score-ranked matches. Score is the store's built-in relevance score, retained
// verbatim and never recomputed by callers.
type TextIndex struct {
	index bleve.Index
	path  string
	log   *slog.Logger
	mu    sync.RWMutex
}

// newTextIndex opens the index at path, or creates it if absent. An
// index that fails to open (corruption, partial write) is removed and
// rebuilt rather than failing the process to boot.
func newTextIndex(path string, logger *slog.Logger) (*TextIndex, error) {
	var index bleve.Index
	var err error

	if _, statErr := os.Stat(path); statErr == nil {
		index, err = bleve.Open(path)
		if err != nil {
			if logger != nil {
				logger.Warn("text index failed to open, recreating", "path", path, "error", err)
			}
			if rmErr := os.RemoveAll(path); rmErr != nil {
				return nil, fmt.Errorf("remove corrupted text index: %w", rmErr)
			}
			index = nil
		}
	}

	if index == nil {
		index, err = bleve.New(path, buildTextIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create text index: %w", err)
		}
	}

	return &TextIndex{index: index, path: path, log: logger}, nil
}

func buildTextIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = en.AnalyzerName
	nameField.Store = false
	doc.AddFieldMappingsAt("name", nameField)

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = false
	idField.Index = false
	doc.AddFieldMappingsAt("id", idField)

	im.AddDocumentMapping("_default", doc)
	return im
}

func (t *TextIndex) index1(id, name string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.Index(id, textDocument{ID: id, Name: name})
}

func (t *TextIndex) indexBatch(docs map[string]string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	const batchSize = 500
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}

	for i := 0; i < len(ids); i += batchSize {
		end := min(i+batchSize, len(ids))
		batch := t.index.NewBatch()
		for _, id := range ids[i:end] {
			if err := batch.Index(id, textDocument{ID: id, Name: docs[id]}); err != nil {
				return fmt.Errorf("batch index %s: %w", id, err)
			}
		}
		if err := t.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

func (t *TextIndex) delete(id string) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.index.Delete(id)
}

// search runs a text query, returning ids in score-descending order.
func (t *TextIndex) search(term string, limit int) ([]scoredID, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	q := bleve.NewMatchQuery(term)
	q.SetField("name")

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.SortBy([]string{"-_score"})

	result, err := t.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}

	hits := make([]scoredID, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, scoredID{ID: hit.ID, Score: hit.Score})
	}
	return hits, nil
}

// rebuild drops and recreates the index from scratch. Used by
// DropCollection's "recreate indexes" step.
func (t *TextIndex) rebuild() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.index.Close(); err != nil {
		return fmt.Errorf("close text index: %w", err)
	}
	if err := os.RemoveAll(t.path); err != nil {
		return fmt.Errorf("remove text index: %w", err)
	}
	index, err := bleve.New(t.path, buildTextIndexMapping())
	if err != nil {
		return fmt.Errorf("recreate text index: %w", err)
	}
	t.index = index
	return nil
}

func (t *TextIndex) close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index.Close()
}

// scoredID pairs a document id with its raw text-search relevance score.
type scoredID struct {
	ID    string
	Score float64
}
