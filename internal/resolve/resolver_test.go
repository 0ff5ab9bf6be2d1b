package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GMGilson/fuzzy-ruby-server/internal/ast"
	"github.com/GMGilson/fuzzy-ruby-server/internal/extract"
	"github.com/GMGilson/fuzzy-ruby-server/internal/fileid"
	"github.com/GMGilson/fuzzy-ruby-server/internal/index"
	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

type indexedFile struct {
	id symbol.FileID
}

func indexFile(t *testing.T, store *index.Store, path string, root *astTestNode) indexedFile {
	t.Helper()
	id := fileid.Of(path)
	records := extract.Extract(root.toNode(), id, fileid.PathParts(path))
	store.Purge(id)
	for _, rec := range records {
		store.Add(rec)
	}
	require.NoError(t, store.Commit())
	return indexedFile{id: id}
}

func newTestResolver(t *testing.T) (*Resolver, *index.Store) {
	t.Helper()
	store, err := index.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store), store
}

// Scenario 1 (spec §8): `x = 1\nputs x`.
func TestResolver_Scenario1_GotoDefinitionAndHighlight(t *testing.T) {
	resolver, store := newTestResolver(t)

	assignment := leaf(ast.KindLvasgn, "x", 0, 0, 1)
	usage := leaf(ast.KindLvar, "x", 1, 5, 6)
	root := seq(assignment, usage)

	f := indexFile(t, store, "a.rb", root)

	locs, err := resolver.GotoDefinition(f.id, 1, 5)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 0, locs[0].Line)
	assert.Equal(t, 0, locs[0].StartColumn)
	assert.Equal(t, 1, locs[0].EndColumn)

	ranges, err := resolver.DocumentHighlight(f.id, 1, 5)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	var write, read *HighlightedRange
	for i := range ranges {
		switch ranges[i].Kind {
		case HighlightWrite:
			write = &ranges[i]
		case HighlightRead:
			read = &ranges[i]
		}
	}
	require.NotNil(t, write)
	require.NotNil(t, read)
	assert.Equal(t, 0, write.Line)
	assert.Equal(t, 0, write.StartColumn)
	assert.Equal(t, 1, write.EndColumn)
	assert.Equal(t, 1, read.Line)
	assert.Equal(t, 5, read.StartColumn)
	assert.Equal(t, 6, read.EndColumn)
}

// Scenario 4 (spec §8): a file with a parse error indexes to zero records;
// goto-definition against it is empty, not an error.
func TestResolver_Scenario4_UnparseableFileYieldsEmptyResult(t *testing.T) {
	resolver, store := newTestResolver(t)
	id := fileid.Of("broken.rb")
	store.Purge(id)
	for _, rec := range extract.Extract(nil, id, fileid.PathParts("broken.rb")) {
		store.Add(rec)
	}
	require.NoError(t, store.Commit())

	locs, err := resolver.GotoDefinition(id, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

// Scenario 5 (spec §8): `def f(a, b); a + b; end`. Cursor on the `a` inside
// the body resolves to the parameter; highlight reports WRITE at the param
// and READ at the body use.
func TestResolver_Scenario5_ParamAndBodyUse(t *testing.T) {
	resolver, store := newTestResolver(t)

	argA := leaf(ast.KindArg, "a", 0, 6, 7)
	argB := leaf(ast.KindArg, "b", 0, 9, 10)
	bodyUse := leaf(ast.KindLvar, "a", 0, 13, 14)
	def := defNode("f", 0, 0, 23, argA, argB, bodyUse)

	f := indexFile(t, store, "f.rb", def)

	locs, err := resolver.GotoDefinition(f.id, 0, 13)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, 6, locs[0].StartColumn)
	assert.Equal(t, 7, locs[0].EndColumn)

	ranges, err := resolver.DocumentHighlight(f.id, 0, 13)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
}

// Scenario 3 (spec §8): cross-file reference. `u` defines `class Animal;
// end`, `v` references `Animal.new`. Goto-definition from the usage in v
// returns the class-name range in u.
func TestResolver_Scenario3_CrossFileConstReference(t *testing.T) {
	resolver, store := newTestResolver(t)

	classNode := leaf(ast.KindClass, "Animal", 0, 6, 12)
	_ = indexFile(t, store, "u.rb", seq(classNode))

	constUsage := leaf(ast.KindConst, "Animal", 0, 0, 6)
	vFile := indexFile(t, store, "v.rb", seq(constUsage))

	locs, err := resolver.GotoDefinition(vFile.id, 0, 2)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, []string{"u.rb"}, locs[0].FilePathParts)
}

func TestResolver_NoMatchingAssignmentYieldsEmpty(t *testing.T) {
	resolver, store := newTestResolver(t)
	usage := leaf(ast.KindLvar, "x", 0, 0, 1)
	f := indexFile(t, store, "a.rb", seq(usage))

	// No assignment for "x" exists at all; the candidate query legitimately
	// returns zero hits without the table lookup failing.
	locs, err := resolver.GotoDefinition(f.id, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, locs)
}

func TestResolver_CursorInWhitespaceYieldsEmpty(t *testing.T) {
	resolver, store := newTestResolver(t)
	usage := leaf(ast.KindLvar, "x", 0, 0, 1)
	f := indexFile(t, store, "a.rb", seq(usage))

	locs, err := resolver.GotoDefinition(f.id, 5, 5)
	require.NoError(t, err)
	assert.Empty(t, locs)
}
