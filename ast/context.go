package ast

import "github.com/vellum-lang/vellum/intern"

// alloc, access, allocRange, and rangeSlice are the only operations
// any arena needs; every Context accessor method below is a one-line
// call into one of these four against the field for its payload type.
func alloc[T any](a *arena[T], v T) PayloadID[T] { return PayloadID[T](a.alloc(v)) }

func access[T any](a *arena[T], id PayloadID[T]) T { return a.get(uint32(id)) }

func allocRange[T any](a *arena[T], vs []T) PayloadRange[T] {
	begin, size := a.allocRange(vs)
	return PayloadRange[T]{Begin: PayloadID[T](begin), Size: size}
}

func rangeSlice[T any](a *arena[T], r PayloadRange[T]) []T {
	return a.slice(uint32(r.Begin), r.Size)
}

// Context owns one arena per payload type plus the Node arena and two
// side-table arenas (nodeRefs, stringRefs) that back NodeRange and
// PayloadRange[intern.StringID] values. It is created per compilation
// unit and dropped as a whole when the tree is no longer needed —
// there is no per-node free.
type Context struct {
	nodes      *arena[Node]
	nodeRefs   *arena[NodeID]
	stringRefs *arena[intern.StringID]

	assignStatement      *arena[AssignStatementPayload]
	attrUse              *arena[AttrUse]
	attributeStatement   *arena[AttributeStatementPayload]
	useStatement         *arena[UseStatementPayload]
	expressionStatement  *arena[ExpressionStatementPayload]
	literal              *arena[LiteralPayload]
	path                 *arena[PathPayload]
	unaryOp              *arena[UnaryOpPayload]
	binaryOp             *arena[BinaryOpPayload]
	grouped              *arena[GroupedPayload]
	array                *arena[ArrayPayload]
	tuple                *arena[TuplePayload]
	index                *arena[IndexPayload]
	fieldInit            *arena[FieldInit]
	construct            *arena[ConstructPayload]
	functionCall         *arena[FunctionCallPayload]
	methodCall           *arena[MethodCallPayload]
	functionMacroCall    *arena[FunctionMacroCallPayload]
	methodMacroCall      *arena[MethodMacroCallPayload]
	fieldAccess          *arena[FieldAccessPayload]
	await_               *arena[AwaitPayload]
	continue_            *arena[ContinuePayload]
	break_               *arena[BreakPayload]
	range_               *arena[RangePayload]
	return_              *arena[ReturnPayload]
	block                *arena[BlockPayload]
	constBlock           *arena[ConstBlockPayload]
	unsafe_              *arena[UnsafePayload]
	fast                 *arena[FastPayload]
	ifBranch             *arena[IfBranch]
	if_                  *arena[IfPayload]
	loop_                *arena[LoopPayload]
	while_               *arena[WhilePayload]
	for_                 *arena[ForPayload]
	matchArm             *arena[MatchArm]
	match_               *arena[MatchPayload]
	capture              *arena[Capture]
	param                *arena[Param]
	closure              *arena[ClosurePayload]
	function             *arena[FunctionPayload]
	field                *arena[Field]
	struct_              *arena[StructPayload]
	enumVariant          *arena[EnumVariant]
	enumeration          *arena[EnumerationPayload]
	trait_               *arena[TraitPayload]
	implementation       *arena[ImplementationPayload]
	union_               *arena[UnionPayload]
	module_              *arena[ModulePayload]
	redirect_            *arena[RedirectPayload]
}

// NewContext creates an empty AstContext, ready to have tokens parsed
// into it.
func NewContext() *Context {
	return &Context{
		nodes:      newArena[Node](),
		nodeRefs:   newArena[NodeID](),
		stringRefs: newArena[intern.StringID](),

		assignStatement:     newArena[AssignStatementPayload](),
		attrUse:             newArena[AttrUse](),
		attributeStatement:  newArena[AttributeStatementPayload](),
		useStatement:        newArena[UseStatementPayload](),
		expressionStatement: newArena[ExpressionStatementPayload](),
		literal:             newArena[LiteralPayload](),
		path:                newArena[PathPayload](),
		unaryOp:             newArena[UnaryOpPayload](),
		binaryOp:            newArena[BinaryOpPayload](),
		grouped:             newArena[GroupedPayload](),
		array:               newArena[ArrayPayload](),
		tuple:               newArena[TuplePayload](),
		index:               newArena[IndexPayload](),
		fieldInit:           newArena[FieldInit](),
		construct:           newArena[ConstructPayload](),
		functionCall:        newArena[FunctionCallPayload](),
		methodCall:          newArena[MethodCallPayload](),
		functionMacroCall:   newArena[FunctionMacroCallPayload](),
		methodMacroCall:     newArena[MethodMacroCallPayload](),
		fieldAccess:         newArena[FieldAccessPayload](),
		await_:              newArena[AwaitPayload](),
		continue_:           newArena[ContinuePayload](),
		break_:              newArena[BreakPayload](),
		range_:              newArena[RangePayload](),
		return_:             newArena[ReturnPayload](),
		block:               newArena[BlockPayload](),
		constBlock:          newArena[ConstBlockPayload](),
		unsafe_:             newArena[UnsafePayload](),
		fast:                newArena[FastPayload](),
		ifBranch:            newArena[IfBranch](),
		if_:                 newArena[IfPayload](),
		loop_:               newArena[LoopPayload](),
		while_:              newArena[WhilePayload](),
		for_:                newArena[ForPayload](),
		matchArm:            newArena[MatchArm](),
		match_:              newArena[MatchPayload](),
		capture:             newArena[Capture](),
		param:               newArena[Param](),
		closure:             newArena[ClosurePayload](),
		function:            newArena[FunctionPayload](),
		field:               newArena[Field](),
		struct_:             newArena[StructPayload](),
		enumVariant:         newArena[EnumVariant](),
		enumeration:         newArena[EnumerationPayload](),
		trait_:              newArena[TraitPayload](),
		implementation:      newArena[ImplementationPayload](),
		union_:              newArena[UnionPayload](),
		module_:             newArena[ModulePayload](),
		redirect_:           newArena[RedirectPayload](),
	}
}

func (c *Context) allocNode(kind NodeKind, payloadID uint32) NodeID {
	return NodeID(c.nodes.alloc(Node{Kind: kind, PayloadID: payloadID}))
}

// Node returns the Node record for id.
func (c *Context) Node(id NodeID) Node { return c.nodes.get(uint32(id)) }

// NodeCount reports how many nodes have been allocated, i.e. the next
// NodeID that Create will return.
func (c *Context) NodeCount() int { return c.nodes.len() }

// AllocNodeRange stores a slice of child NodeIds (e.g. a block's
// statements, a call's arguments) in the side table and returns the
// range addressing it.
func (c *Context) AllocNodeRange(ids []NodeID) NodeRange {
	begin, size := c.nodeRefs.allocRange(ids)
	return NodeRange{Begin: NodeID(begin), Size: size}
}

// NodeRangeSlice recovers the NodeIds a NodeRange addresses.
func (c *Context) NodeRangeSlice(r NodeRange) []NodeID {
	return c.nodeRefs.slice(uint32(r.Begin), r.Size)
}

// AllocStringRange stores a path's interned segments in the side table.
func (c *Context) AllocStringRange(ids []intern.StringID) PayloadRange[intern.StringID] {
	return allocRange(c.stringRefs, ids)
}

// StringRangeSlice recovers the interned segments a range addresses.
func (c *Context) StringRangeSlice(r PayloadRange[intern.StringID]) []intern.StringID {
	return rangeSlice(c.stringRefs, r)
}

// --- statements ---

func (c *Context) CreateAssignStatement(p AssignStatementPayload) NodeID {
	return c.allocNode(KindAssignStatement, uint32(alloc(c.assignStatement, p)))
}
func (c *Context) AssignStatement(n NodeID) AssignStatementPayload {
	return access(c.assignStatement, PayloadID[AssignStatementPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocAttrUses(vs []AttrUse) PayloadRange[AttrUse] { return allocRange(c.attrUse, vs) }
func (c *Context) AttrUses(r PayloadRange[AttrUse]) []AttrUse      { return rangeSlice(c.attrUse, r) }

func (c *Context) CreateAttributeStatement(p AttributeStatementPayload) NodeID {
	return c.allocNode(KindAttributeStatement, uint32(alloc(c.attributeStatement, p)))
}
func (c *Context) AttributeStatement(n NodeID) AttributeStatementPayload {
	return access(c.attributeStatement, PayloadID[AttributeStatementPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateUseStatement(p UseStatementPayload) NodeID {
	return c.allocNode(KindUseStatement, uint32(alloc(c.useStatement, p)))
}
func (c *Context) UseStatement(n NodeID) UseStatementPayload {
	return access(c.useStatement, PayloadID[UseStatementPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateExpressionStatement(p ExpressionStatementPayload) NodeID {
	return c.allocNode(KindExpressionStatement, uint32(alloc(c.expressionStatement, p)))
}
func (c *Context) ExpressionStatement(n NodeID) ExpressionStatementPayload {
	return access(c.expressionStatement, PayloadID[ExpressionStatementPayload](c.Node(n).PayloadID))
}

// --- expressions without block ---

func (c *Context) CreateLiteral(p LiteralPayload) NodeID {
	return c.allocNode(KindLiteral, uint32(alloc(c.literal, p)))
}
func (c *Context) Literal(n NodeID) LiteralPayload {
	return access(c.literal, PayloadID[LiteralPayload](c.Node(n).PayloadID))
}

func (c *Context) CreatePath(p PathPayload) NodeID {
	return c.allocNode(KindPath, uint32(alloc(c.path, p)))
}
func (c *Context) Path(n NodeID) PathPayload {
	return access(c.path, PayloadID[PathPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateUnaryOp(p UnaryOpPayload) NodeID {
	return c.allocNode(KindUnaryOp, uint32(alloc(c.unaryOp, p)))
}
func (c *Context) UnaryOp(n NodeID) UnaryOpPayload {
	return access(c.unaryOp, PayloadID[UnaryOpPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateBinaryOp(p BinaryOpPayload) NodeID {
	return c.allocNode(KindBinaryOp, uint32(alloc(c.binaryOp, p)))
}
func (c *Context) BinaryOp(n NodeID) BinaryOpPayload {
	return access(c.binaryOp, PayloadID[BinaryOpPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateGrouped(p GroupedPayload) NodeID {
	return c.allocNode(KindGrouped, uint32(alloc(c.grouped, p)))
}
func (c *Context) Grouped(n NodeID) GroupedPayload {
	return access(c.grouped, PayloadID[GroupedPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateArray(p ArrayPayload) NodeID {
	return c.allocNode(KindArray, uint32(alloc(c.array, p)))
}
func (c *Context) Array(n NodeID) ArrayPayload {
	return access(c.array, PayloadID[ArrayPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateTuple(p TuplePayload) NodeID {
	return c.allocNode(KindTuple, uint32(alloc(c.tuple, p)))
}
func (c *Context) Tuple(n NodeID) TuplePayload {
	return access(c.tuple, PayloadID[TuplePayload](c.Node(n).PayloadID))
}

func (c *Context) CreateIndex(p IndexPayload) NodeID {
	return c.allocNode(KindIndex, uint32(alloc(c.index, p)))
}
func (c *Context) Index(n NodeID) IndexPayload {
	return access(c.index, PayloadID[IndexPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocFieldInits(vs []FieldInit) PayloadRange[FieldInit] {
	return allocRange(c.fieldInit, vs)
}
func (c *Context) FieldInits(r PayloadRange[FieldInit]) []FieldInit {
	return rangeSlice(c.fieldInit, r)
}

func (c *Context) CreateConstruct(p ConstructPayload) NodeID {
	return c.allocNode(KindConstruct, uint32(alloc(c.construct, p)))
}
func (c *Context) Construct(n NodeID) ConstructPayload {
	return access(c.construct, PayloadID[ConstructPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateFunctionCall(p FunctionCallPayload) NodeID {
	return c.allocNode(KindFunctionCall, uint32(alloc(c.functionCall, p)))
}
func (c *Context) FunctionCall(n NodeID) FunctionCallPayload {
	return access(c.functionCall, PayloadID[FunctionCallPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateMethodCall(p MethodCallPayload) NodeID {
	return c.allocNode(KindMethodCall, uint32(alloc(c.methodCall, p)))
}
func (c *Context) MethodCall(n NodeID) MethodCallPayload {
	return access(c.methodCall, PayloadID[MethodCallPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateFunctionMacroCall(p FunctionMacroCallPayload) NodeID {
	return c.allocNode(KindFunctionMacroCall, uint32(alloc(c.functionMacroCall, p)))
}
func (c *Context) FunctionMacroCall(n NodeID) FunctionMacroCallPayload {
	return access(c.functionMacroCall, PayloadID[FunctionMacroCallPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateMethodMacroCall(p MethodMacroCallPayload) NodeID {
	return c.allocNode(KindMethodMacroCall, uint32(alloc(c.methodMacroCall, p)))
}
func (c *Context) MethodMacroCall(n NodeID) MethodMacroCallPayload {
	return access(c.methodMacroCall, PayloadID[MethodMacroCallPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateFieldAccess(p FieldAccessPayload) NodeID {
	return c.allocNode(KindFieldAccess, uint32(alloc(c.fieldAccess, p)))
}
func (c *Context) FieldAccess(n NodeID) FieldAccessPayload {
	return access(c.fieldAccess, PayloadID[FieldAccessPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateAwait(p AwaitPayload) NodeID {
	return c.allocNode(KindAwait, uint32(alloc(c.await_, p)))
}
func (c *Context) Await(n NodeID) AwaitPayload {
	return access(c.await_, PayloadID[AwaitPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateContinue(p ContinuePayload) NodeID {
	return c.allocNode(KindContinue, uint32(alloc(c.continue_, p)))
}
func (c *Context) Continue(n NodeID) ContinuePayload {
	return access(c.continue_, PayloadID[ContinuePayload](c.Node(n).PayloadID))
}

func (c *Context) CreateBreak(p BreakPayload) NodeID {
	return c.allocNode(KindBreak, uint32(alloc(c.break_, p)))
}
func (c *Context) Break(n NodeID) BreakPayload {
	return access(c.break_, PayloadID[BreakPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateRange(p RangePayload) NodeID {
	return c.allocNode(KindRange, uint32(alloc(c.range_, p)))
}
func (c *Context) Range(n NodeID) RangePayload {
	return access(c.range_, PayloadID[RangePayload](c.Node(n).PayloadID))
}

func (c *Context) CreateReturn(p ReturnPayload) NodeID {
	return c.allocNode(KindReturn, uint32(alloc(c.return_, p)))
}
func (c *Context) Return(n NodeID) ReturnPayload {
	return access(c.return_, PayloadID[ReturnPayload](c.Node(n).PayloadID))
}

// --- expressions with block ---

func (c *Context) AllocBlock(p BlockPayload) PayloadID[BlockPayload] { return alloc(c.block, p) }
func (c *Context) BlockByID(id PayloadID[BlockPayload]) BlockPayload { return access(c.block, id) }

func (c *Context) CreateBlock(p BlockPayload) NodeID {
	return c.allocNode(KindBlock, uint32(alloc(c.block, p)))
}
func (c *Context) Block(n NodeID) BlockPayload {
	return access(c.block, PayloadID[BlockPayload](c.Node(n).PayloadID))
}

// CreateBlockNode wraps an already-allocated block payload (as stored
// inside an If/While/For/Loop/Closure payload) in its own KindBlock
// node, without allocating a second payload entry. Used when a block
// that was parsed as the body of one of those constructs is also
// referenced directly as a value (e.g. the bare block-expression case).
func (c *Context) CreateBlockNode(id PayloadID[BlockPayload]) NodeID {
	return c.allocNode(KindBlock, uint32(id))
}

func (c *Context) CreateConstBlock(p ConstBlockPayload) NodeID {
	return c.allocNode(KindConstBlock, uint32(alloc(c.constBlock, p)))
}
func (c *Context) ConstBlock(n NodeID) ConstBlockPayload {
	return access(c.constBlock, PayloadID[ConstBlockPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateUnsafe(p UnsafePayload) NodeID {
	return c.allocNode(KindUnsafe, uint32(alloc(c.unsafe_, p)))
}
func (c *Context) Unsafe(n NodeID) UnsafePayload {
	return access(c.unsafe_, PayloadID[UnsafePayload](c.Node(n).PayloadID))
}

func (c *Context) CreateFast(p FastPayload) NodeID {
	return c.allocNode(KindFast, uint32(alloc(c.fast, p)))
}
func (c *Context) Fast(n NodeID) FastPayload {
	return access(c.fast, PayloadID[FastPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocIfBranches(vs []IfBranch) PayloadRange[IfBranch] { return allocRange(c.ifBranch, vs) }
func (c *Context) IfBranches(r PayloadRange[IfBranch]) []IfBranch      { return rangeSlice(c.ifBranch, r) }

func (c *Context) CreateIf(p IfPayload) NodeID {
	return c.allocNode(KindIf, uint32(alloc(c.if_, p)))
}
func (c *Context) If(n NodeID) IfPayload {
	return access(c.if_, PayloadID[IfPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateLoop(p LoopPayload) NodeID {
	return c.allocNode(KindLoop, uint32(alloc(c.loop_, p)))
}
func (c *Context) Loop(n NodeID) LoopPayload {
	return access(c.loop_, PayloadID[LoopPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateWhile(p WhilePayload) NodeID {
	return c.allocNode(KindWhile, uint32(alloc(c.while_, p)))
}
func (c *Context) While(n NodeID) WhilePayload {
	return access(c.while_, PayloadID[WhilePayload](c.Node(n).PayloadID))
}

func (c *Context) CreateFor(p ForPayload) NodeID {
	return c.allocNode(KindFor, uint32(alloc(c.for_, p)))
}
func (c *Context) For(n NodeID) ForPayload {
	return access(c.for_, PayloadID[ForPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocMatchArms(vs []MatchArm) PayloadRange[MatchArm] { return allocRange(c.matchArm, vs) }
func (c *Context) MatchArms(r PayloadRange[MatchArm]) []MatchArm      { return rangeSlice(c.matchArm, r) }

func (c *Context) CreateMatch(p MatchPayload) NodeID {
	return c.allocNode(KindMatch, uint32(alloc(c.match_, p)))
}
func (c *Context) Match(n NodeID) MatchPayload {
	return access(c.match_, PayloadID[MatchPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocCaptures(vs []Capture) PayloadRange[Capture] { return allocRange(c.capture, vs) }
func (c *Context) Captures(r PayloadRange[Capture]) []Capture      { return rangeSlice(c.capture, r) }

func (c *Context) AllocParams(vs []Param) PayloadRange[Param] { return allocRange(c.param, vs) }
func (c *Context) Params(r PayloadRange[Param]) []Param      { return rangeSlice(c.param, r) }

func (c *Context) CreateClosure(p ClosurePayload) NodeID {
	return c.allocNode(KindClosure, uint32(alloc(c.closure, p)))
}
func (c *Context) Closure(n NodeID) ClosurePayload {
	return access(c.closure, PayloadID[ClosurePayload](c.Node(n).PayloadID))
}

// --- declarations ---

func (c *Context) CreateFunction(p FunctionPayload) NodeID {
	return c.allocNode(KindFunction, uint32(alloc(c.function, p)))
}
func (c *Context) Function(n NodeID) FunctionPayload {
	return access(c.function, PayloadID[FunctionPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocFields(vs []Field) PayloadRange[Field] { return allocRange(c.field, vs) }
func (c *Context) Fields(r PayloadRange[Field]) []Field      { return rangeSlice(c.field, r) }

func (c *Context) CreateStruct(p StructPayload) NodeID {
	return c.allocNode(KindStruct, uint32(alloc(c.struct_, p)))
}
func (c *Context) Struct(n NodeID) StructPayload {
	return access(c.struct_, PayloadID[StructPayload](c.Node(n).PayloadID))
}

func (c *Context) AllocEnumVariants(vs []EnumVariant) PayloadRange[EnumVariant] {
	return allocRange(c.enumVariant, vs)
}
func (c *Context) EnumVariants(r PayloadRange[EnumVariant]) []EnumVariant {
	return rangeSlice(c.enumVariant, r)
}

func (c *Context) CreateEnumeration(p EnumerationPayload) NodeID {
	return c.allocNode(KindEnumeration, uint32(alloc(c.enumeration, p)))
}
func (c *Context) Enumeration(n NodeID) EnumerationPayload {
	return access(c.enumeration, PayloadID[EnumerationPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateTrait(p TraitPayload) NodeID {
	return c.allocNode(KindTrait, uint32(alloc(c.trait_, p)))
}
func (c *Context) Trait(n NodeID) TraitPayload {
	return access(c.trait_, PayloadID[TraitPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateImplementation(p ImplementationPayload) NodeID {
	return c.allocNode(KindImplementation, uint32(alloc(c.implementation, p)))
}
func (c *Context) Implementation(n NodeID) ImplementationPayload {
	return access(c.implementation, PayloadID[ImplementationPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateUnion(p UnionPayload) NodeID {
	return c.allocNode(KindUnion, uint32(alloc(c.union_, p)))
}
func (c *Context) Union(n NodeID) UnionPayload {
	return access(c.union_, PayloadID[UnionPayload](c.Node(n).PayloadID))
}

func (c *Context) CreateModule(p ModulePayload) NodeID {
	return c.allocNode(KindModule, uint32(alloc(c.module_, p)))
}
func (c *Context) Module(n NodeID) ModulePayload {
	return access(c.module_, PayloadID[ModulePayload](c.Node(n).PayloadID))
}

func (c *Context) CreateRedirect(p RedirectPayload) NodeID {
	return c.allocNode(KindRedirect, uint32(alloc(c.redirect_, p)))
}
func (c *Context) Redirect(n NodeID) RedirectPayload {
	return access(c.redirect_, PayloadID[RedirectPayload](c.Node(n).PayloadID))
}
