package fuzzyruby

import "github.com/GMGilson/fuzzy-ruby-server/internal/resolve"

// Public type aliases for the resolve package's result types, so callers
// never need to import internal/resolve directly.

type Location = resolve.Location
type HighlightedRange = resolve.HighlightedRange
type HighlightKind = resolve.HighlightKind

const (
	HighlightWrite = resolve.HighlightWrite
	HighlightRead  = resolve.HighlightRead
)
