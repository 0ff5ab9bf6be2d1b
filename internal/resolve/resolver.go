// Package resolve implements the Resolver: given a cursor position, locate
// the symbol record underneath it, then synthesize and run the candidate
// query spec.md §4.3 describes for go-to-definition or document-highlight.
// It depends only on internal/index's query algebra and internal/symbol's
// record shape — never on a parser, a transport, or a concrete file system.
package resolve

import (
	"fmt"

	"github.com/GMGilson/fuzzy-ruby-server/internal/index"
	"github.com/GMGilson/fuzzy-ruby-server/internal/symbol"
)

// Default top-k result caps, per spec.md §4.3.2/§4.3.3. Overridable via
// WithTopKDefinition/WithTopKHighlight.
const (
	DefaultTopKDefinition = 50
	DefaultTopKHighlight  = 100
)

// Location is a resolved source range, with the path reconstructed from the
// hit record's file_path_parts rather than carried separately.
type Location struct {
	FilePathParts []string
	Line          int
	StartColumn   int
	EndColumn     int
}

// HighlightKind tags a document-highlight range as a binding (WRITE) or a
// reference (READ), per spec.md §4.3.3 step 4.
type HighlightKind string

const (
	HighlightWrite HighlightKind = "WRITE"
	HighlightRead  HighlightKind = "READ"
)

// HighlightedRange is one result of DocumentHighlight.
type HighlightedRange struct {
	Location
	Kind HighlightKind
}

// Resolver runs the locate-then-candidate algorithm against an Index Store.
type Resolver struct {
	store                 *index.Store
	gotoDefinitionTopK    int
	documentHighlightTopK int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTopKDefinition overrides the go-to-definition result cap.
func WithTopKDefinition(topK int) Option {
	return func(r *Resolver) { r.gotoDefinitionTopK = topK }
}

// WithTopKHighlight overrides the document-highlight result cap.
func WithTopKHighlight(topK int) Option {
	return func(r *Resolver) { r.documentHighlightTopK = topK }
}

// New builds a Resolver over store. The Resolver does not own store's
// lifecycle — the caller (the Engine) does.
func New(store *index.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:                 store,
		gotoDefinitionTopK:    DefaultTopKDefinition,
		documentHighlightTopK: DefaultTopKHighlight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GotoDefinition implements spec.md §4.3.2: locate the usage under the
// cursor, look up its allowed assignment types, and return every matching
// binding site. An empty, nil-error result means "nothing to jump to," not
// a failure — per spec.md §4.3.4 and §7, that is not an error condition.
func (r *Resolver) GotoDefinition(fileID symbol.FileID, line, column int) ([]Location, error) {
	usageCategory := symbol.CategoryUsage
	located, ok, err := r.locate(fileID, line, column, &usageCategory)
	if err != nil {
		return nil, fmt.Errorf("resolve: goto definition: locate: %w", err)
	}
	if !ok {
		return nil, nil
	}

	allowed, ok := usageToAssignment[located.NodeType]
	if !ok {
		return nil, nil
	}

	q := index.NewQuery().
		Must(index.FieldCategory, string(symbol.CategoryAssignment)).
		Must(index.FieldName, located.Name).
		MustOneOf(index.FieldNodeType, nodeTypeStrings(allowed)...)
	applyScopeFilter(q, located)

	hits, err := r.store.Search(q, r.gotoDefinitionTopK)
	if err != nil {
		return nil, fmt.Errorf("resolve: goto definition: search: %w", err)
	}

	locations := make([]Location, 0, len(hits))
	for _, hit := range hits {
		locations = append(locations, toLocation(hit))
	}
	return locations, nil
}

// DocumentHighlight implements spec.md §4.3.3: locate the record under the
// cursor regardless of category, collect the candidate node-type set from
// both resolution tables, and return every same-name hit in the same file,
// tagged READ or WRITE.
func (r *Resolver) DocumentHighlight(fileID symbol.FileID, line, column int) ([]HighlightedRange, error) {
	located, ok, err := r.locate(fileID, line, column, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve: document highlight: locate: %w", err)
	}
	if !ok {
		return nil, nil
	}

	candidates := []symbol.NodeType{located.NodeType}
	candidates = append(candidates, usageToAssignment[located.NodeType]...)
	candidates = append(candidates, assignmentToUsage[located.NodeType]...)

	q := index.NewQuery().
		Must(index.FieldFileID, index.FileIDTerm(fileID)).
		Must(index.FieldName, located.Name).
		MustOneOf(index.FieldNodeType, nodeTypeStrings(candidates)...)
	applyScopeFilter(q, located)

	hits, err := r.store.Search(q, r.documentHighlightTopK)
	if err != nil {
		return nil, fmt.Errorf("resolve: document highlight: search: %w", err)
	}

	ranges := make([]HighlightedRange, 0, len(hits))
	for _, hit := range hits {
		kind := HighlightRead
		if hit.Category == symbol.CategoryAssignment {
			kind = HighlightWrite
		}
		ranges = append(ranges, HighlightedRange{Location: toLocation(hit), Kind: kind})
	}
	return ranges, nil
}

// locate implements spec.md §4.3.1. categoryFilter is nil for the
// document-highlight path, which accepts either side of a binding/reference
// pair as the located record.
func (r *Resolver) locate(fileID symbol.FileID, line, column int, categoryFilter *symbol.Category) (symbol.Record, bool, error) {
	q := index.NewQuery().
		Must(index.FieldFileID, index.FileIDTerm(fileID)).
		MustInt(index.FieldLine, line).
		MustInt(index.FieldColumns, column)
	if categoryFilter != nil {
		q.Must(index.FieldCategory, string(*categoryFilter))
	}

	hits, err := r.store.Search(q, 1)
	if err != nil {
		return symbol.Record{}, false, err
	}
	if len(hits) == 0 {
		return symbol.Record{}, false, nil
	}
	return hits[0], true, nil
}

// applyScopeFilter implements the Lvar-vs-other-usage-type asymmetry shared
// by 4.3.2 step 3 and 4.3.3 step 3: local variables must match the full
// enclosing scope chain (MUST per scope name), while every other identifier
// category treats scope only as a relevance hint (SHOULD per scope name).
func applyScopeFilter(q *index.Query, located symbol.Record) {
	for _, s := range located.Scope {
		if located.NodeType == symbol.NodeTypeLvar {
			q.Must(index.FieldScope, s)
		} else {
			q.Should(index.FieldScope, s)
		}
	}
}

func toLocation(rec symbol.Record) Location {
	return Location{
		FilePathParts: rec.FilePathParts,
		Line:          rec.Line,
		StartColumn:   rec.StartColumn,
		EndColumn:     rec.EndColumn,
	}
}
