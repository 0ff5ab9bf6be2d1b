package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names of the indexed document, shared between the mapping, the
// record-to-document translation, and internal/resolve's query building.
const (
	FieldFileID        = "file_id"
	FieldFilePathParts = "file_path_parts"
	FieldCategory      = "category"
	FieldScope         = "scope"
	FieldName          = "name"
	FieldNodeType      = "node_type"
	FieldLine          = "line"
	FieldStartColumn   = "start_column"
	FieldEndColumn     = "end_column"
	FieldColumns       = "columns"
)

// buildIndexMapping gives every field of a symbol record the field type
// spec.md's data model calls for: "keyword (exact)" fields get the keyword
// analyzer (no tokenization, no stemming, no case-folding — token equality
// only), and integer fields get bleve's numeric type. Multi-valued fields
// (file_path_parts, scope, columns) need no special handling beyond that:
// a Go slice value assigned to one of these document fields is indexed as
// one posting per element, which is exactly the "matches if any value
// equals the term" semantics spec.md §4.2 requires.
func buildIndexMapping() mapping.IndexMapping {
	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	keywordField.Store = true
	keywordField.IncludeInAll = false

	numericField := bleve.NewNumericFieldMapping()
	numericField.Store = true
	numericField.IncludeInAll = false

	record := bleve.NewDocumentMapping()
	record.AddFieldMappingsAt(FieldFileID, keywordField)
	record.AddFieldMappingsAt(FieldFilePathParts, keywordField)
	record.AddFieldMappingsAt(FieldCategory, keywordField)
	record.AddFieldMappingsAt(FieldScope, keywordField)
	record.AddFieldMappingsAt(FieldName, keywordField)
	record.AddFieldMappingsAt(FieldNodeType, keywordField)
	record.AddFieldMappingsAt(FieldLine, numericField)
	record.AddFieldMappingsAt(FieldStartColumn, numericField)
	record.AddFieldMappingsAt(FieldEndColumn, numericField)
	record.AddFieldMappingsAt(FieldColumns, numericField)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = record
	im.DefaultAnalyzer = keyword.Name
	return im
}

// document is the shape bleve indexes. Field names are also used directly
// as JSON-ish paths by AddFieldMappingsAt above, so the json tags here are
// load-bearing, not cosmetic.
type document struct {
	FileID        string   `json:"file_id"`
	FilePathParts []string `json:"file_path_parts"`
	Category      string   `json:"category"`
	Scope         []string `json:"scope"`
	Name          string   `json:"name"`
	NodeType      string   `json:"node_type"`
	Line          int      `json:"line"`
	StartColumn   int      `json:"start_column"`
	EndColumn     int      `json:"end_column"`
	Columns       []int    `json:"columns"`
}
