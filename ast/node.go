package ast

// NodeKind is the closed enum of node kinds. Each value names exactly
// one payload arena; each Context.CreateXxx method stores it beside
// that arena's id in the node, never to branch on behavior.
type NodeKind uint8

const (
	// statements
	KindAssignStatement NodeKind = iota
	KindAttributeStatement
	KindUseStatement
	KindExpressionStatement

	// expressions without block
	KindLiteral
	KindPath
	KindUnaryOp
	KindBinaryOp
	KindGrouped
	KindArray
	KindTuple
	KindIndex
	KindConstruct
	KindFunctionCall
	KindMethodCall
	KindFunctionMacroCall
	KindMethodMacroCall
	KindFieldAccess
	KindAwait
	KindContinue
	KindBreak
	KindRange
	KindReturn

	// expressions with block
	KindBlock
	KindConstBlock
	KindUnsafe
	KindFast
	KindIf
	KindLoop
	KindWhile
	KindFor
	KindMatch
	KindClosure

	// declarations
	KindFunction
	KindStruct
	KindEnumeration
	KindTrait
	KindImplementation
	KindUnion
	KindModule
	KindRedirect
)

var nodeKindNames = [...]string{
	KindAssignStatement: "AssignStatement", KindAttributeStatement: "AttributeStatement",
	KindUseStatement: "UseStatement", KindExpressionStatement: "ExpressionStatement",
	KindLiteral: "Literal", KindPath: "Path", KindUnaryOp: "UnaryOp", KindBinaryOp: "BinaryOp",
	KindGrouped: "Grouped", KindArray: "Array", KindTuple: "Tuple", KindIndex: "Index",
	KindConstruct: "Construct", KindFunctionCall: "FunctionCall", KindMethodCall: "MethodCall",
	KindFunctionMacroCall: "FunctionMacroCall", KindMethodMacroCall: "MethodMacroCall",
	KindFieldAccess: "FieldAccess", KindAwait: "Await", KindContinue: "Continue",
	KindBreak: "Break", KindRange: "Range", KindReturn: "Return",
	KindBlock: "Block", KindConstBlock: "ConstBlock", KindUnsafe: "Unsafe", KindFast: "Fast",
	KindIf: "If", KindLoop: "Loop", KindWhile: "While", KindFor: "For", KindMatch: "Match",
	KindClosure: "Closure",
	KindFunction: "Function", KindStruct: "Struct", KindEnumeration: "Enumeration",
	KindTrait: "Trait", KindImplementation: "Implementation", KindUnion: "Union",
	KindModule: "Module", KindRedirect: "Redirect",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is the uniform record every arena entry wraps: a kind tag plus
// the id of that kind's payload. Node itself carries no other state —
// everything about a node lives in its payload.
type Node struct {
	Kind      NodeKind
	PayloadID uint32 // re-typed to the correct PayloadID[T] by the accessor the caller chooses
}
