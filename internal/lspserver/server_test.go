package lspserver

import (
	"testing"

	"go.lsp.dev/protocol"

	"github.com/stretchr/testify/assert"

	fuzzyruby "github.com/GMGilson/fuzzy-ruby-server"
)

func TestLastChangeText_ReturnsFinalElement(t *testing.T) {
	changes := []protocol.TextDocumentContentChangeEvent{
		{Text: "stale"},
		{Text: "current"},
	}
	assert.Equal(t, "current", lastChangeText(changes))
}

func TestLastChangeText_EmptyYieldsEmptyString(t *testing.T) {
	assert.Equal(t, "", lastChangeText(nil))
}

func TestToProtocolRange_TranslatesLineAndColumns(t *testing.T) {
	loc := fuzzyruby.Location{Line: 3, StartColumn: 4, EndColumn: 9}
	r := toProtocolRange(loc)
	assert.Equal(t, uint32(3), r.Start.Line)
	assert.Equal(t, uint32(4), r.Start.Character)
	assert.Equal(t, uint32(3), r.End.Line)
	assert.Equal(t, uint32(9), r.End.Character)
}

func TestServer_LocationURI_JoinsWorkspaceRoot(t *testing.T) {
	s := &Server{workspaceRoot: "/work"}
	uri := s.locationURI([]string{"lib", "animal.rb"})
	assert.Contains(t, string(uri), "lib/animal.rb")
}

func TestServer_LocationURI_NoWorkspaceRootUsesRelativePath(t *testing.T) {
	s := &Server{}
	uri := s.locationURI([]string{"animal.rb"})
	assert.Contains(t, string(uri), "animal.rb")
}

func TestToProtocolHighlights_TagsWriteAndRead(t *testing.T) {
	ranges := []fuzzyruby.HighlightedRange{
		{Location: fuzzyruby.Location{Line: 0, StartColumn: 0, EndColumn: 1}, Kind: fuzzyruby.HighlightWrite},
		{Location: fuzzyruby.Location{Line: 1, StartColumn: 5, EndColumn: 6}, Kind: fuzzyruby.HighlightRead},
	}
	out := toProtocolHighlights(ranges)
	assert.Len(t, out, 2)
	assert.Equal(t, protocol.DocumentHighlightKindWrite, out[0].Kind)
	assert.Equal(t, protocol.DocumentHighlightKindRead, out[1].Kind)
}

func TestToProtocolLocations_EmptyInputYieldsEmptyNotNilSlice(t *testing.T) {
	s := New(nil, nil)
	out := s.toProtocolLocations(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
