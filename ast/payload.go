package ast

import (
	"github.com/vellum-lang/vellum/intern"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// --- statements ---

type AssignStatementPayload struct {
	Target       NodeID
	DeclaredType NodeID // InvalidNodeID if no ": type" annotation
	Op           token.Kind
	Value        NodeID
	Attrs        StorageAttributes
}

type AttrUse struct {
	Name intern.StringID
	Args NodeRange
}

type AttributeStatementPayload struct {
	Attrs PayloadRange[AttrUse]
}

type UseStatementPayload struct {
	// Each element is a KindPath node; "use a::b" has one, "use
	// {a::b, c::d}" has one per braced entry.
	Paths NodeRange
}

type ExpressionStatementPayload struct {
	Expr         NodeID
	HasSemicolon bool
}

// --- expressions without block ---

type LiteralPayload struct {
	Kind        token.Kind
	LexemeRange source.Range
}

type PathPayload struct {
	Segments PayloadRange[intern.StringID]
	Absolute bool
}

type UnaryOpPayload struct {
	Op      token.Kind
	Operand NodeID
	Postfix bool
}

type BinaryOpPayload struct {
	Op  token.Kind
	Lhs NodeID
	Rhs NodeID
}

type GroupedPayload struct {
	Inner NodeID
}

type ArrayPayload struct {
	Elements NodeRange
	Repeat   NodeID // InvalidNodeID unless this is the "[value; count]" form
}

type TuplePayload struct {
	Elements NodeRange
}

type IndexPayload struct {
	Target NodeID
	Index  NodeID
}

type FieldInit struct {
	Name  intern.StringID
	Value NodeID
}

type ConstructPayload struct {
	Target NodeID
	Fields PayloadRange[FieldInit]
}

type FunctionCallPayload struct {
	Callee NodeID
	Args   NodeRange
}

type MethodCallPayload struct {
	Receiver NodeID
	Name     intern.StringID
	Args     NodeRange
}

type FunctionMacroCallPayload struct {
	Callee NodeID
	Args   NodeRange
}

type MethodMacroCallPayload struct {
	Receiver NodeID
	Name     intern.StringID
	Args     NodeRange
}

type FieldAccessPayload struct {
	Target NodeID
	Name   intern.StringID
}

type AwaitPayload struct {
	Target NodeID
}

type ContinuePayload struct{}

type BreakPayload struct {
	Value NodeID // InvalidNodeID if bare "break"
}

// RangeKind distinguishes the three range-literal spellings.
type RangeKind uint8

const (
	RangeExclusive RangeKind = iota // a..b
	RangeInclusive                  // a..=b
	RangeUntil                      // a..<b
)

type RangePayload struct {
	Kind  RangeKind
	Start NodeID // InvalidNodeID if omitted
	End   NodeID // InvalidNodeID if omitted
}

type ReturnPayload struct {
	Value NodeID // InvalidNodeID if bare "return"
}

// --- expressions with block ---

type BlockPayload struct {
	Statements NodeRange
}

type ConstBlockPayload struct {
	Body PayloadID[BlockPayload]
}

type UnsafePayload struct {
	Body PayloadID[BlockPayload]
}

type FastPayload struct {
	Body PayloadID[BlockPayload]
}

// IfBranch pairs a condition with its block; the trailing unconditional
// "else" is represented by a branch whose Condition is InvalidNodeID.
type IfBranch struct {
	Condition NodeID
	Block     PayloadID[BlockPayload]
}

type IfPayload struct {
	Branches PayloadRange[IfBranch]
}

type LoopPayload struct {
	Body PayloadID[BlockPayload]
}

type WhilePayload struct {
	Condition NodeID
	Body      PayloadID[BlockPayload]
}

type ForPayload struct {
	Iterator intern.StringID
	Range    NodeID
	Body     PayloadID[BlockPayload]
}

type MatchArm struct {
	Pattern NodeID
	Guard   NodeID // InvalidNodeID if no "if" guard
	Body    NodeID
}

type MatchPayload struct {
	Scrutinee NodeID
	Arms      PayloadRange[MatchArm]
}

type Capture struct {
	Name  intern.StringID
	ByRef bool
}

type Param struct {
	Name intern.StringID
	Type NodeID // path/type expression; InvalidNodeID if untyped
}

type ClosurePayload struct {
	Captures PayloadRange[Capture]
	Params   PayloadRange[Param]
	Body     PayloadID[BlockPayload]
}

// --- declarations ---

type FunctionPayload struct {
	Name       intern.StringID
	Params     PayloadRange[Param]
	ReturnType NodeID // InvalidNodeID if omitted
	Body       PayloadID[BlockPayload]
	Attrs      StorageAttributes
}

type Field struct {
	Name  intern.StringID
	Type  NodeID
	Attrs StorageAttributes
}

type StructPayload struct {
	Name   intern.StringID
	Fields PayloadRange[Field]
	Attrs  StorageAttributes
}

// EnumVariantKind tags which of the four variant shapes a variant uses.
type EnumVariantKind uint8

const (
	EnumVariantEmpty EnumVariantKind = iota
	EnumVariantInteger
	EnumVariantStructLike
	EnumVariantTupleLike
)

type EnumVariant struct {
	Name         intern.StringID
	Kind         EnumVariantKind
	Fields       PayloadRange[Field] // struct-like variants
	TupleTypes   NodeRange           // tuple-like variants
	Discriminant NodeID              // integer variants; InvalidNodeID otherwise
}

type EnumerationPayload struct {
	Name     intern.StringID
	Variants PayloadRange[EnumVariant]
	Attrs    StorageAttributes
}

type TraitPayload struct {
	Name      intern.StringID
	Functions NodeRange // KindFunction declarations (signatures, possibly with default bodies)
	Attrs     StorageAttributes
}

type ImplementationPayload struct {
	Trait     NodeID // KindPath; InvalidNodeID for an inherent impl
	Target    NodeID
	Functions NodeRange
	Attrs     StorageAttributes
}

type UnionPayload struct {
	Name   intern.StringID
	Fields PayloadRange[Field]
	Attrs  StorageAttributes
}

type ModulePayload struct {
	Name  intern.StringID
	Items NodeRange
	Attrs StorageAttributes
}

type RedirectPayload struct {
	Name   intern.StringID
	Target NodeID
	Attrs  StorageAttributes
}
