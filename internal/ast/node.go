// Package ast defines the closed node contract the extractor walks. It is
// deliberately parser-agnostic: a concrete front end (internal/rubyparse)
// builds trees of these nodes from real source text, but nothing in this
// package or in internal/extract reads a byte of source or touches a disk.
package ast

// Kind is the closed set of node tags the source-tongue grammar produces.
// The string value doubles as the record's node_type token, so it must stay
// in sync with the taxonomy in internal/symbol.
type Kind string

// Kinds the extractor assigns a category and emits a record for.
const (
	KindAlias    Kind = "Alias"
	KindArg      Kind = "Arg"
	KindCasgn    Kind = "Casgn"
	KindClass    Kind = "Class"
	KindConst    Kind = "Const"
	KindCSend    Kind = "CSend"
	KindCvar     Kind = "Cvar"
	KindCvasgn   Kind = "Cvasgn"
	KindDef      Kind = "Def"
	KindDefs     Kind = "Defs"
	KindGvar     Kind = "Gvar"
	KindGvasgn   Kind = "Gvasgn"
	KindIvar     Kind = "Ivar"
	KindIvasgn   Kind = "Ivasgn"
	KindKwarg    Kind = "Kwarg"
	KindKwoptarg Kind = "Kwoptarg"
	KindKwrestarg Kind = "Kwrestarg"
	KindLvar     Kind = "Lvar"
	KindLvasgn   Kind = "Lvasgn"
	KindMatchVar Kind = "MatchVar"
	KindModule   Kind = "Module"
	KindOptarg   Kind = "Optarg"
	KindRestarg  Kind = "Restarg"
	KindSend     Kind = "Send"
	KindShadowarg Kind = "Shadowarg"
	KindSuper    Kind = "Super"
	KindZSuper   Kind = "ZSuper"

	// KindSym never produces a record on its own; it is inspected by the
	// Alias handler to decide whether the alias target/source names a
	// literal symbol, per spec.
	KindSym Kind = "Sym"
)

// Compound and structural kinds. None of these carry a name or produce a
// record; the extractor recurses into their children and nothing else.
// Kept as named constants (rather than an open string) so a parser adapter
// can't silently typo a kind the extractor is meant to recognize structurally.
const (
	KindAnd                  Kind = "And"
	KindAndAsgn              Kind = "AndAsgn"
	KindArgs                 Kind = "Args"
	KindArray                Kind = "Array"
	KindArrayPattern         Kind = "ArrayPattern"
	KindArrayPatternWithTail Kind = "ArrayPatternWithTail"
	KindBegin                Kind = "Begin"
	KindBlock                Kind = "Block"
	KindBlockPass            Kind = "BlockPass"
	KindBreak                Kind = "Break"
	KindCase                 Kind = "Case"
	KindCaseMatch            Kind = "CaseMatch"
	KindConstPattern         Kind = "ConstPattern"
	KindDefined              Kind = "Defined"
	KindDstr                 Kind = "Dstr"
	KindDsym                 Kind = "Dsym"
	KindEFlipFlop            Kind = "EFlipFlop"
	KindEnsure               Kind = "Ensure"
	KindErange               Kind = "Erange"
	KindFindPattern          Kind = "FindPattern"
	KindFor                  Kind = "For"
	KindHash                 Kind = "Hash"
	KindHashPattern          Kind = "HashPattern"
	KindHeredoc              Kind = "Heredoc"
	KindIf                   Kind = "If"
	KindIfGuard              Kind = "IfGuard"
	KindIFlipFlop            Kind = "IFlipFlop"
	KindIfMod                Kind = "IfMod"
	KindIfTernary            Kind = "IfTernary"
	KindIndex                Kind = "Index"
	KindIndexAsgn            Kind = "IndexAsgn"
	KindInPattern             Kind = "InPattern"
	KindIrange               Kind = "Irange"
	KindKwargs               Kind = "Kwargs"
	KindKwBegin              Kind = "KwBegin"
	KindKwsplat              Kind = "Kwsplat"
	KindMasgn                Kind = "Masgn"
	KindMatchAlt             Kind = "MatchAlt"
	KindMatchAs              Kind = "MatchAs"
	KindMatchCurrentLine     Kind = "MatchCurrentLine"
	KindMatchPattern         Kind = "MatchPattern"
	KindMatchPatternP        Kind = "MatchPatternP"
	KindMatchRest            Kind = "MatchRest"
	KindMatchWithLvasgn      Kind = "MatchWithLvasgn"
	KindMlhs                 Kind = "Mlhs"
	KindNext                 Kind = "Next"
	KindNumblock             Kind = "Numblock"
	KindOpAsgn               Kind = "OpAsgn"
	KindOr                   Kind = "Or"
	KindOrAsgn               Kind = "OrAsgn"
	KindPair                 Kind = "Pair"
	KindPin                  Kind = "Pin"
	KindPostexe              Kind = "Postexe"
	KindPreexe               Kind = "Preexe"
	KindProcarg0             Kind = "Procarg0"
	KindRegexp               Kind = "Regexp"
	KindRescue               Kind = "Rescue"
	KindRescueBody           Kind = "RescueBody"
	KindReturn               Kind = "Return"
	KindSClass               Kind = "SClass"
	KindSplat                Kind = "Splat"
	KindUndef                Kind = "Undef"
	KindUnlessGuard          Kind = "UnlessGuard"
	KindUntil                Kind = "Until"
	KindUntilPost            Kind = "UntilPost"
	KindWhen                 Kind = "When"
	KindWhile                Kind = "While"
	KindWhilePost            Kind = "WhilePost"
	KindXHeredoc             Kind = "XHeredoc"
	KindXstr                 Kind = "Xstr"
	KindYield                Kind = "Yield"
)

// Kinds the grammar produces but the extractor has nothing to say about
// beyond the default "recurse into children" rule: literals, self/nil/true/
// false, back-references, and a handful of constructs with no identifier
// content. Listed explicitly (rather than left as arbitrary strings) so the
// taxonomy documents exactly which kinds were considered and intentionally
// left unhandled, mirroring the commented-out match arms in the original
// implementation.
const (
	KindBackRef        Kind = "BackRef"
	KindBlockarg       Kind = "Blockarg"
	KindCbase          Kind = "Cbase"
	KindComplex        Kind = "Complex"
	KindEmptyElse      Kind = "EmptyElse"
	KindEncoding       Kind = "Encoding"
	KindFalse          Kind = "False"
	KindFile           Kind = "File"
	KindFloat          Kind = "Float"
	KindForwardArg     Kind = "ForwardArg"
	KindForwardedArgs  Kind = "ForwardedArgs"
	KindInt            Kind = "Int"
	KindKwnilarg       Kind = "Kwnilarg"
	KindLambda         Kind = "Lambda"
	KindLine           Kind = "Line"
	KindMatchNilPattern Kind = "MatchNilPattern"
	KindNil            Kind = "Nil"
	KindNthRef         Kind = "NthRef"
	KindRational       Kind = "Rational"
	KindRedo           Kind = "Redo"
	KindRegOpt         Kind = "RegOpt"
	KindRetry          Kind = "Retry"
	KindSelf           Kind = "Self"
	KindStr            Kind = "Str"
	KindTrue           Kind = "True"
)

// Span is a source range: a 0-based line and a 0-based half-open byte-column
// interval [StartColumn, EndColumn). EndColumn follows ordinary parser
// convention (one past the last column of the token) rather than the
// inclusive convention used by the record's multi-valued columns field —
// internal/extract is responsible for that translation.
type Span struct {
	Line        int
	StartColumn int
	EndColumn   int
}

// Node is one node of a parsed source-tongue AST. A concrete parser front
// end builds these; internal/extract only ever reads them.
//
// Not every field applies to every Kind:
//   - Name carries the identifier/selector/symbol text for name-bearing
//     kinds (bindings, constants, variable reads, alias operands, send
//     selectors, Sym literals). Empty otherwise.
//   - NameSpan, when set, is a span narrower than Span identifying just the
//     name/selector token (used by Class/Module/Def/Defs/Casgn and by
//     Send/CSend, where Span would otherwise cover the whole call). A nil
//     NameSpan on a Send/CSend node means "no selector" per spec, and the
//     node emits nothing.
//   - Children holds exactly the sub-nodes that still need visiting once
//     this node's own handling (record emission, scope push/pop) is done.
//     A parser adapter decides what belongs there per Kind; the extractor
//     visits all of them after its Kind-specific work, except for the
//     parameter/MatchVar bindings, the variable reads, Alias and ZSuper,
//     whose children it does not visit.
type Node struct {
	Kind     Kind
	Name     string
	Span     Span
	NameSpan *Span
	Children []*Node
}
