// Package symbol defines the indexed unit of this system: the symbol
// record, its two categories, and the closed node-type taxonomy the
// extractor and resolver both speak. Nothing here touches a parser, an
// index engine, or a file system — it is the shared vocabulary between
// internal/extract (which produces records) and internal/index /
// internal/resolve (which store and query them).
package symbol

// Category distinguishes a binding site from a reference to one.
type Category string

const (
	CategoryAssignment Category = "assignment"
	CategoryUsage      Category = "usage"
)

// NodeType is the closed enum of syntactic constructs a record can describe.
// This is the subset of the full AST taxonomy (internal/ast.Kind) that is
// ever capable of producing a record; compound/control-flow kinds never
// appear here because the extractor never emits a record for them.
type NodeType string

const (
	NodeTypeAlias     NodeType = "Alias"
	NodeTypeArg       NodeType = "Arg"
	NodeTypeCasgn     NodeType = "Casgn"
	NodeTypeClass     NodeType = "Class"
	NodeTypeConst     NodeType = "Const"
	NodeTypeCSend     NodeType = "CSend"
	NodeTypeCvar      NodeType = "Cvar"
	NodeTypeCvasgn    NodeType = "Cvasgn"
	NodeTypeDef       NodeType = "Def"
	NodeTypeDefs      NodeType = "Defs"
	NodeTypeGvar      NodeType = "Gvar"
	NodeTypeGvasgn    NodeType = "Gvasgn"
	NodeTypeIvar      NodeType = "Ivar"
	NodeTypeIvasgn    NodeType = "Ivasgn"
	NodeTypeKwarg     NodeType = "Kwarg"
	NodeTypeKwoptarg  NodeType = "Kwoptarg"
	NodeTypeKwrestarg NodeType = "Kwrestarg"
	NodeTypeLvar      NodeType = "Lvar"
	NodeTypeLvasgn    NodeType = "Lvasgn"
	NodeTypeMatchVar  NodeType = "MatchVar"
	NodeTypeModule    NodeType = "Module"
	NodeTypeOptarg    NodeType = "Optarg"
	NodeTypeRestarg   NodeType = "Restarg"
	NodeTypeSend      NodeType = "Send"
	NodeTypeShadowarg NodeType = "Shadowarg"
	NodeTypeSuper     NodeType = "Super"
	NodeTypeZSuper    NodeType = "ZSuper"
)

// Record is the unit of storage in the Index Store: one identifier
// occurrence (binding or reference) together with enough positional and
// lexical context to resolve editor queries against it.
//
// Invariants (enforced by internal/extract, not by this type):
//   - StartColumn <= EndColumn.
//   - Columns holds exactly every integer in [StartColumn, EndColumn],
//     inclusive of both ends — one element past EndColumn's ordinary
//     half-open convention, so a cursor sitting immediately after the last
//     character of the token still hits the record.
type Record struct {
	FileID         FileID
	FilePathParts  []string
	Category       Category
	Scope          []string
	Name           string
	NodeType       NodeType
	Line           int
	StartColumn    int
	EndColumn      int
	Columns        []int
}

// FileID is a content-independent digest of a workspace-relative path. See
// internal/fileid for how it's computed.
type FileID [32]byte

// IsZero reports whether id is the zero value (never a real digest, used as
// a sentinel for "no file").
func (id FileID) IsZero() bool {
	return id == FileID{}
}
