package resolve

import "github.com/GMGilson/fuzzy-ruby-server/internal/symbol"

// usageToAssignment is the closed usage→assignment node-type table from
// spec.md §6: for a located usage of a given node type, the set of
// assignment node types that may define it. A usage type absent from this
// map (there is none — every usage NodeType has an entry, even if its
// candidate query would still come up empty) yields no candidates.
var usageToAssignment = map[symbol.NodeType][]symbol.NodeType{
	symbol.NodeTypeAlias: {symbol.NodeTypeAlias, symbol.NodeTypeDef, symbol.NodeTypeDefs},
	symbol.NodeTypeConst: {symbol.NodeTypeCasgn, symbol.NodeTypeClass, symbol.NodeTypeModule},
	symbol.NodeTypeCSend: {symbol.NodeTypeAlias, symbol.NodeTypeDef, symbol.NodeTypeDefs},
	symbol.NodeTypeCvar:  {symbol.NodeTypeCvasgn},
	symbol.NodeTypeGvar:  {symbol.NodeTypeGvasgn},
	symbol.NodeTypeIvar:  {symbol.NodeTypeIvasgn},
	symbol.NodeTypeLvar: {
		symbol.NodeTypeArg, symbol.NodeTypeKwarg, symbol.NodeTypeKwoptarg,
		symbol.NodeTypeKwrestarg, symbol.NodeTypeLvasgn, symbol.NodeTypeMatchVar,
		symbol.NodeTypeOptarg, symbol.NodeTypeRestarg, symbol.NodeTypeShadowarg,
	},
	symbol.NodeTypeSend:   {symbol.NodeTypeAlias, symbol.NodeTypeDef, symbol.NodeTypeDefs},
	symbol.NodeTypeSuper:  {symbol.NodeTypeAlias, symbol.NodeTypeDef, symbol.NodeTypeDefs},
	symbol.NodeTypeZSuper: {symbol.NodeTypeAlias, symbol.NodeTypeDef, symbol.NodeTypeDefs},
}

// assignmentToUsage is the closed assignment→usage node-type table from
// spec.md §6, consulted only by document highlight (§4.3.3 step 1): for a
// located assignment of a given node type, the set of usage node types that
// reference it.
var assignmentToUsage = map[symbol.NodeType][]symbol.NodeType{
	symbol.NodeTypeAlias:  {symbol.NodeTypeAlias, symbol.NodeTypeCSend, symbol.NodeTypeSend, symbol.NodeTypeSuper, symbol.NodeTypeZSuper},
	symbol.NodeTypeArg:    {symbol.NodeTypeLvar},
	symbol.NodeTypeCasgn:  {symbol.NodeTypeConst},
	symbol.NodeTypeClass:  {symbol.NodeTypeConst},
	symbol.NodeTypeCvasgn: {symbol.NodeTypeCvar},
	symbol.NodeTypeDef:    {symbol.NodeTypeAlias, symbol.NodeTypeCSend, symbol.NodeTypeSend, symbol.NodeTypeSuper, symbol.NodeTypeZSuper},
	symbol.NodeTypeDefs:   {symbol.NodeTypeAlias, symbol.NodeTypeCSend, symbol.NodeTypeSend, symbol.NodeTypeSuper, symbol.NodeTypeZSuper},
	symbol.NodeTypeGvasgn:    {symbol.NodeTypeGvar},
	symbol.NodeTypeIvasgn:    {symbol.NodeTypeIvar},
	symbol.NodeTypeKwarg:     {symbol.NodeTypeLvar},
	symbol.NodeTypeKwoptarg:  {symbol.NodeTypeLvar},
	symbol.NodeTypeKwrestarg: {symbol.NodeTypeLvar},
	symbol.NodeTypeLvasgn:    {symbol.NodeTypeLvar},
	symbol.NodeTypeMatchVar:  {symbol.NodeTypeLvar},
	symbol.NodeTypeOptarg:    {symbol.NodeTypeLvar},
	symbol.NodeTypeRestarg:   {symbol.NodeTypeLvar},
	symbol.NodeTypeShadowarg: {symbol.NodeTypeLvar},
	symbol.NodeTypeModule:    {symbol.NodeTypeConst},
}

func nodeTypeStrings(types []symbol.NodeType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
