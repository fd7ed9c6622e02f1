// Package store implements the thin document-store adapter (C2): a
// Badger-backed per-entity keyspace fronted by a Bleve text index, chosen
// over a literal Mongo client because no example repo in this codebase's
// ancestry imports one — see SPEC_FULL.md, "Document-store substitution".
package store

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a single Badger database instance shared by every
// Collection; collections carve out disjoint keyspaces within it by
// prefix, so one Store backs the whole mirror.
type Store struct {
	db       *badger.DB
	dataPath string
	logger   *slog.Logger
}

// New opens (or creates) the Badger database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("opened catalog store", "path", path)
	}

	return &Store{db: db, dataPath: path, logger: logger}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing catalog store")
	}
	return s.db.Close()
}

// textIndexDir returns the on-disk directory for a named collection's
// Bleve index, rooted alongside the Badger keyspace.
func (s *Store) textIndexDir(name string) string {
	return filepath.Join(s.dataPath, "search", name+".bleve")
}
