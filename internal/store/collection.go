package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
)

// Identifiable is implemented by every mirrored entity: a stable unsigned
// 64-bit id assigned by the upstream, the key upsert is always keyed by.
type Identifiable interface {
	GetID() uint64
}

// Scored pairs a mirrored entity with the text index's relevance score for
// the query that produced it. Modeled as a view type rather than a
// mutable field on the entity itself.
type Scored[T any] struct {
	Score float64
	Item  *T
}

// AscendingIndex is a single-field secondary index allowing point lookup
// by a non-id field (e.g. AlternativeName.game, ExternalGame.game).
type AscendingIndex[T any] struct {
	Name  string
	Value func(*T) string
}

// CompositeIndex is a multi-field equality index, e.g. ExternalGame's
// (uid, category) composite used by the external-store shortcut.
type CompositeIndex[T any] struct {
	Name  string
	Value func(*T) string
}

// IndexSpec describes the secondary indexes a Collection maintains beyond
// its primary id index (§9 Design Notes: "a value-typed Collection<T>
// parameterized by an IndexSpec descriptor").
type IndexSpec[T any] struct {
	Ascending []AscendingIndex[T]
	Composite *CompositeIndex[T]
	// TextValue, when non-nil, extracts the text-indexed field (the
	// entity's "name") and enables TextSearch on this collection.
	TextValue func(*T) string
}

// Collection is a generic per-entity-class mirror over the Store's Badger
// keyspace: the concrete realization of C2's "per-entity collection"
// contract, parameterized by T and an IndexSpec.
type Collection[T Identifiable] struct {
	store      *Store
	prefix     string
	spec       IndexSpec[T]
	textIndex  *TextIndex
	generation atomic.Uint64
}

// NewCollection opens a named collection, e.g. "games", whose keys are
// stored under the prefix "IGDB_col_<name>:". If spec
// names a text field, a Bleve index is opened (or created) alongside it.
func NewCollection[T Identifiable](s *Store, name string, spec IndexSpec[T]) (*Collection[T], error) {
	c := &Collection[T]{
		store:  s,
		prefix: "IGDB_col_" + name + ":",
		spec:   spec,
	}

	if spec.TextValue != nil {
		ti, err := newTextIndex(s.textIndexDir(name), s.logger)
		if err != nil {
			return nil, fmt.Errorf("open text index for %s: %w", name, err)
		}
		c.textIndex = ti
	}

	return c, nil
}

// Generation returns the monotonic counter bumped on every completed
// CloneCollection — purely observational, does not gate reads or writes
// (§9 Design Notes, "webhook delta vs clone race").
func (c *Collection[T]) Generation() uint64 {
	return c.generation.Load()
}

func idKey(prefix string, id uint64) []byte {
	return []byte(prefix + strconv.FormatUint(id, 10))
}

// GetItem fetches a single entity by id. id == 0 and an unknown id both
// yield (nil, nil); only I/O or marshaling failures are errors.
func (c *Collection[T]) GetItem(ctx context.Context, id uint64) (*T, error) {
	if id == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entity T
	err := c.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(c.prefix, id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return &entity, nil
}

// GetItems fetches a set of entities by id in a single round trip. An
// empty ids slice yields (nil, nil); ids with no matching entity are
// simply omitted from the result.
func (c *Collection[T]) GetItems(ctx context.Context, ids []uint64) ([]*T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*T, 0, len(ids))
	err := c.store.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if id == 0 {
				continue
			}
			item, err := txn.Get(idKey(c.prefix, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var entity T
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entity)
			}); err != nil {
				return err
			}
			results = append(results, &entity)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results, nil
}

// GetByAscending looks up a single entity by a named AscendingIndex value.
// Returns (nil, nil) on no match.
func (c *Collection[T]) GetByAscending(ctx context.Context, indexName, value string) (*T, error) {
	return c.getByIndexKey(ctx, c.prefix+"idx:"+indexName+":"+value)
}

// GetByComposite looks up a single entity by the collection's composite
// index value (built the same way Add computes it for CompositeIndex.Value).
func (c *Collection[T]) GetByComposite(ctx context.Context, value string) (*T, error) {
	if c.spec.Composite == nil {
		return nil, fmt.Errorf("collection has no composite index")
	}
	return c.getByIndexKey(ctx, c.prefix+"idx:"+c.spec.Composite.Name+":"+value)
}

func (c *Collection[T]) getByIndexKey(ctx context.Context, key string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var id uint64
	err := c.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, perr := strconv.ParseUint(string(val), 10, 64)
			if perr != nil {
				return perr
			}
			id = parsed
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index lookup: %w", err)
	}
	return c.GetItem(ctx, id)
}

// Add bulk-upserts items by id: a single Badger transaction replaces or
// inserts each item's primary key, its secondary index entries, and its
// text-index document (if the collection has one).
func (c *Collection[T]) Add(ctx context.Context, items []*T) error {
	if len(items) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	textDocs := make(map[string]string, len(items))

	err := c.store.db.Update(func(txn *badger.Txn) error {
		for _, item := range items {
			id := (*item).GetID()
			key := idKey(c.prefix, id)

			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("marshal item %d: %w", id, err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set item %d: %w", id, err)
			}

			for _, idx := range c.spec.Ascending {
				idxKey := []byte(c.prefix + "idx:" + idx.Name + ":" + idx.Value(item))
				if err := txn.Set(idxKey, []byte(strconv.FormatUint(id, 10))); err != nil {
					return fmt.Errorf("set ascending index %s for %d: %w", idx.Name, id, err)
				}
			}
			if c.spec.Composite != nil {
				idxKey := []byte(c.prefix + "idx:" + c.spec.Composite.Name + ":" + c.spec.Composite.Value(item))
				if err := txn.Set(idxKey, []byte(strconv.FormatUint(id, 10))); err != nil {
					return fmt.Errorf("set composite index for %d: %w", id, err)
				}
			}

			if c.spec.TextValue != nil {
				textDocs[strconv.FormatUint(id, 10)] = c.spec.TextValue(item)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("add items: %w", err)
	}

	if c.textIndex != nil && len(textDocs) > 0 {
		if err := c.textIndex.indexBatch(textDocs); err != nil {
			return fmt.Errorf("index items: %w", err)
		}
	}

	return nil
}

// Delete removes a single entity by id, along with its secondary index
// entries and text-index document.
func (c *Collection[T]) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := idKey(c.prefix, id)

	err := c.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var entity T
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		}); err != nil {
			return err
		}

		for _, idx := range c.spec.Ascending {
			idxKey := []byte(c.prefix + "idx:" + idx.Name + ":" + idx.Value(&entity))
			if err := txn.Delete(idxKey); err != nil {
				return fmt.Errorf("delete ascending index %s: %w", idx.Name, err)
			}
		}
		if c.spec.Composite != nil {
			idxKey := []byte(c.prefix + "idx:" + c.spec.Composite.Name + ":" + c.spec.Composite.Value(&entity))
			if err := txn.Delete(idxKey); err != nil {
				return fmt.Errorf("delete composite index: %w", err)
			}
		}

		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	if c.textIndex != nil {
		if err := c.textIndex.delete(strconv.FormatUint(id, 10)); err != nil {
			return fmt.Errorf("delete text index entry %d: %w", id, err)
		}
	}
	return nil
}

// DropCollection removes every key in the collection's keyspace and
// recreates its text index, synchronously, before returning — so a
// concurrent reader never observes a collection stripped of its indexes
// (§5, "Clone vs serve").
func (c *Collection[T]) DropCollection(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.store.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
			keys = append(keys, append([]byte(nil), it.Item().Key()...))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}

	if c.textIndex != nil {
		if err := c.textIndex.rebuild(); err != nil {
			return fmt.Errorf("rebuild text index: %w", err)
		}
	}
	return nil
}

// BumpGeneration increments the collection's generation counter. Called
// by CloneCollection (internal/mirror) once a clone completes cleanly.
func (c *Collection[T]) BumpGeneration() uint64 {
	return c.generation.Add(1)
}

// TextSearch runs a case-insensitive text query (accented letters are not
// folded to their unaccented forms) against the collection's name field, returning up to limit hits in
// score-descending order, each paired with the entity it resolved to.
// Hits whose entity no longer resolves (dangling by the time of lookup)
// are silently dropped.
func (c *Collection[T]) TextSearch(ctx context.Context, term string, limit int) ([]Scored[T], error) {
	if c.textIndex == nil {
		return nil, fmt.Errorf("collection has no text index")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits, err := c.textIndex.search(term, limit)
	if err != nil {
		return nil, err
	}

	results := make([]Scored[T], 0, len(hits))
	for _, h := range hits {
		id, err := strconv.ParseUint(h.ID, 10, 64)
		if err != nil {
			continue
		}
		item, err := c.GetItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		results = append(results, Scored[T]{Score: h.Score, Item: item})
	}
	return results, nil
}

// Close releases the collection's text index resources, if any.
func (c *Collection[T]) Close() error {
	if c.textIndex == nil {
		return nil
	}
	return c.textIndex.close()
}
