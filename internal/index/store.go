// Package index implements the Index Store: an in-memory full-text index
// over symbol records, backed by github.com/blevesearch/bleve/v2. It
// supports delete-by-file-identity, bulk insert, and the boolean term-query
// algebra the resolver composes its candidate queries from. Nothing here
// knows about AST kinds, scope stacks, or the LSP — it only ever sees
// internal/symbol.Record values and internal/index.Query combinators.
package index

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

// Store is the Index Store described in spec.md §4.2. Purge and Add stage
// changes; Commit is what makes them visible to Search, so a purge+insert
// pair for one file is one logical transaction from a caller's perspective.
//
// Store has its own mutex so it is safe to use standalone, but in this
// repository it is always called from behind the Engine's single exclusive
// lock (spec.md §5) — the two never contend in practice.
type Store struct {
	mu sync.Mutex

	idx bleve.Index

	records map[string]symbol.Record
	byFile  map[symbol.FileID]map[string]struct{}

	batch      *bleve.Batch
	purged     map[symbol.FileID]struct{}
	stagedAdds map[string]symbol.Record
	seq        uint64
}

// New builds an empty, memory-only Index Store. There is no disk-backed
// variant — spec.md §4.2 is explicit that durability is not required and
// "in-memory is the specification."
func New() (*Store, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("index: new: %w", err)
	}
	return &Store{
		idx:        idx,
		records:    make(map[string]symbol.Record),
		byFile:     make(map[symbol.FileID]map[string]struct{}),
		batch:      idx.NewBatch(),
		purged:     make(map[symbol.FileID]struct{}),
		stagedAdds: make(map[string]symbol.Record),
	}, nil
}

// Close releases the underlying bleve index's resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idx.Close(); err != nil {
		return fmt.Errorf("index: close: %w", err)
	}
	return nil
}

// Purge stages deletion of every already-committed record with the given
// file_id; records staged by Add in the same transaction are kept. The
// deletion is not visible to Search until Commit runs.
func (s *Store) Purge(fileID symbol.FileID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purged[fileID] = struct{}{}
	for id := range s.byFile[fileID] {
		s.batch.Delete(id)
		delete(s.stagedAdds, id)
	}
}

// Add stages a record for insertion. Not visible to Search until Commit.
func (s *Store) Add(rec symbol.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := fmt.Sprintf("%s-%d", hex.EncodeToString(rec.FileID[:]), s.seq)
	s.batch.Index(id, toDocument(rec))
	s.stagedAdds[id] = rec
}

// Commit flushes staged purges and adds into the index and makes them
// visible to subsequent Search calls.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.idx.Batch(s.batch); err != nil {
		return fmt.Errorf("index: commit: batch: %w", err)
	}

	for fileID := range s.purged {
		for id := range s.byFile[fileID] {
			delete(s.records, id)
		}
		delete(s.byFile, fileID)
	}
	for id, rec := range s.stagedAdds {
		s.records[id] = rec
		if s.byFile[rec.FileID] == nil {
			s.byFile[rec.FileID] = make(map[string]struct{})
		}
		s.byFile[rec.FileID][id] = struct{}{}
	}

	s.batch = s.idx.NewBatch()
	s.purged = make(map[symbol.FileID]struct{})
	s.stagedAdds = make(map[string]symbol.Record)
	return nil
}

// Search executes q against the committed index state and returns up to
// topK matching records. An empty result is not an error — per spec.md
// §4.3.4, a query that finds nothing (cursor in whitespace, unresolved
// node-type mapping) degrades to an empty list.
func (s *Store) Search(q *Query, topK int) ([]symbol.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := bleve.NewSearchRequestOptions(q.build(), topK, 0, false)
	result, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}

	records := make([]symbol.Record, 0, len(result.Hits))
	for _, hit := range result.Hits {
		rec, ok := s.records[hit.ID]
		if !ok {
			// Can only happen if a Search races a concurrent Commit despite
			// the lock above, which shouldn't occur; skip defensively
			// rather than return a zero-value record.
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func toDocument(rec symbol.Record) document {
	return document{
		FileID:        hex.EncodeToString(rec.FileID[:]),
		FilePathParts: rec.FilePathParts,
		Category:      string(rec.Category),
		Scope:         rec.Scope,
		Name:          rec.Name,
		NodeType:      string(rec.NodeType),
		Line:          rec.Line,
		StartColumn:   rec.StartColumn,
		EndColumn:     rec.EndColumn,
		Columns:       rec.Columns,
	}
}

// FileIDTerm renders a file_id the way it's stored in the index, for
// building a MUST(file_id = ...) clause.
func FileIDTerm(id symbol.FileID) string {
	return hex.EncodeToString(id[:])
}
