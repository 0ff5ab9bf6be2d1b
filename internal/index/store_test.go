package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

func fileID(b byte) symbol.FileID {
	var id symbol.FileID
	id[0] = b
	return id
}

func rec(fid symbol.FileID, category symbol.Category, name string, nodeType symbol.NodeType, line, start, end int, scope ...string) symbol.Record {
	columns := make([]int, 0, end-start+1)
	for c := start; c <= end; c++ {
		columns = append(columns, c)
	}
	return symbol.Record{
		FileID:        fid,
		FilePathParts: []string{"lib", "a.rb"},
		Category:      category,
		Scope:         scope,
		Name:          name,
		NodeType:      nodeType,
		Line:          line,
		StartColumn:   start,
		EndColumn:     end,
		Columns:       columns,
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_AddCommitSearch_MustClauses(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "x", symbol.NodeTypeLvasgn, 0, 0, 1))
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().
		Must(FieldFileID, FileIDTerm(fid)).
		MustInt(FieldLine, 0).
		MustInt(FieldColumns, 1), 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "x", hits[0].Name)
}

func TestStore_SearchNotVisibleBeforeCommit(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)
	s.Add(rec(fid, symbol.CategoryAssignment, "x", symbol.NodeTypeLvasgn, 0, 0, 1))

	hits, err := s.Search(NewQuery().Must(FieldFileID, FileIDTerm(fid)), 10)
	require.NoError(t, err)
	assert.Empty(t, hits, "uncommitted adds must not be visible to Search")
}

func TestStore_PurgeRemovesOnlyMatchingFile(t *testing.T) {
	s := newTestStore(t)
	fidA, fidB := fileID(1), fileID(2)

	s.Add(rec(fidA, symbol.CategoryUsage, "x", symbol.NodeTypeLvar, 0, 0, 1))
	s.Add(rec(fidB, symbol.CategoryUsage, "y", symbol.NodeTypeLvar, 0, 0, 1))
	require.NoError(t, s.Commit())

	s.Purge(fidA)
	require.NoError(t, s.Commit())

	hitsA, err := s.Search(NewQuery().Must(FieldFileID, FileIDTerm(fidA)), 10)
	require.NoError(t, err)
	assert.Empty(t, hitsA, "P2: no record from the purged file should remain")

	hitsB, err := s.Search(NewQuery().Must(FieldFileID, FileIDTerm(fidB)), 10)
	require.NoError(t, err)
	assert.Len(t, hitsB, 1)
}

func TestStore_PurgeThenAddIsOneTransaction(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "old", symbol.NodeTypeLvasgn, 0, 0, 3))
	require.NoError(t, s.Commit())

	s.Purge(fid)
	s.Add(rec(fid, symbol.CategoryAssignment, "new", symbol.NodeTypeLvasgn, 0, 0, 3))
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().Must(FieldFileID, FileIDTerm(fid)), 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "new", hits[0].Name)
}

func TestStore_MultiValuedScopeMatchesIfAnyValueEquals(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "limit", symbol.NodeTypeLvasgn, 4, 2, 7, "Greeter", "hello"))
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().
		Must(FieldName, "limit").
		Must(FieldScope, "hello"), 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestStore_MustOnEveryScopeNameEnforcesFullChain(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "limit", symbol.NodeTypeLvasgn, 4, 2, 7, "Greeter", "hello"))
	require.NoError(t, s.Commit())

	// Requiring a scope name that was never pushed must exclude the hit
	// (P5: Lvar resolution requires the full chain, not a subset).
	hits, err := s.Search(NewQuery().
		Must(FieldName, "limit").
		Must(FieldScope, "hello").
		Must(FieldScope, "Unrelated"), 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStore_ShouldScopeIsOptionalWhenMustClausesPresent(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "VERSION", symbol.NodeTypeCasgn, 0, 0, 7))
	require.NoError(t, s.Commit())

	// SHOULD(scope = "AnythingAtAll") must not exclude a hit whose scope
	// doesn't contain it, as long as the required clauses match.
	hits, err := s.Search(NewQuery().
		Must(FieldCategory, string(symbol.CategoryAssignment)).
		Must(FieldName, "VERSION").
		Should(FieldScope, "AnythingAtAll"), 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestStore_MustOneOfMatchesAnyAllowedNodeType(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "Animal", symbol.NodeTypeClass, 0, 6, 12))
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().
		Must(FieldCategory, string(symbol.CategoryAssignment)).
		Must(FieldName, "Animal").
		MustOneOf(FieldNodeType, string(symbol.NodeTypeCasgn), string(symbol.NodeTypeClass), string(symbol.NodeTypeModule)), 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestStore_MustOneOfWithNoAllowedTypesMatchesNothing(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryAssignment, "Animal", symbol.NodeTypeClass, 0, 6, 12))
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().
		Must(FieldName, "Animal").
		MustOneOf(FieldNodeType), 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStore_MustNotExcludesMatchingValue(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	s.Add(rec(fid, symbol.CategoryUsage, "x", symbol.NodeTypeLvar, 1, 5, 6))
	s.Add(rec(fid, symbol.CategoryAssignment, "x", symbol.NodeTypeLvasgn, 0, 0, 1))
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().
		Must(FieldName, "x").
		MustNot(FieldCategory, string(symbol.CategoryUsage)), 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, symbol.CategoryAssignment, hits[0].Category)
}

func TestStore_TopKLimitsResultCount(t *testing.T) {
	s := newTestStore(t)
	fid := fileID(1)

	for i := 0; i < 5; i++ {
		s.Add(rec(fid, symbol.CategoryUsage, "x", symbol.NodeTypeLvar, i, 0, 1))
	}
	require.NoError(t, s.Commit())

	hits, err := s.Search(NewQuery().Must(FieldName, "x"), 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}
