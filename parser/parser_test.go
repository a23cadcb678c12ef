package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/intern"
	"github.com/vellum-lang/vellum/lexer"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// parseSource lexes and parses src fully, returning the parsed
// top-level items, the tree they were built into, and the diagnostic
// collector, in the same style a caller like cmd/vellumfront drives
// the pipeline.
func parseSource(t *testing.T, src string, opts ...Option) ([]ast.NodeID, *ast.Context, *diag.Collector) {
	t.Helper()
	file := source.NewFileRef(1, "test.vl", []byte(src))
	collector := diag.NewCollector()
	toks := lexer.All(lexer.New(file, collector))
	ts := NewTokenStream(file, toks)
	tree := ast.NewContext()
	p := New(ts, tree, intern.New(), collector, opts...)
	items := p.ParseAll()
	return items, tree, collector
}

func TestPrecedenceMultiplicationBindsTighterThanAddition(t *testing.T) {
	// a := 1 + 2 * 3  =>  BinaryOp(+, 1, BinaryOp(*, 2, 3))
	items, tree, collector := parseSource(t, "a := 1 + 2 * 3;")
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	assign := tree.AssignStatement(items[0])
	add := tree.BinaryOp(assign.Value)
	assert.Equal(t, token.Plus, add.Op)

	lhsLit := tree.Literal(add.Lhs)
	assert.Equal(t, token.LiteralDecimal, lhsLit.Kind)

	mul := tree.BinaryOp(add.Rhs)
	assert.Equal(t, token.Star, mul.Op)
	assert.Equal(t, token.LiteralDecimal, tree.Literal(mul.Lhs).Kind)
	assert.Equal(t, token.LiteralDecimal, tree.Literal(mul.Rhs).Kind)
}

func TestAssignmentIsRightAssociativeAsExpression(t *testing.T) {
	// "a = b = 1;" matches the statement-level "ident assign-op expr ;"
	// shape for its outer "a =", so it parses as one AssignStatement;
	// the right-hand side "b = 1" is parsed via parseExpression, where
	// "=" is just another right-associative level-15 binary operator,
	// producing a nested BinaryOp rather than a second AssignStatement.
	items, tree, collector := parseSource(t, "a = b = 1;")
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	assign := tree.AssignStatement(items[0])
	assert.Equal(t, token.Eq, assign.Op)
	assert.False(t, assign.DeclaredType.IsValid())

	inner := tree.BinaryOp(assign.Value)
	assert.Equal(t, token.Eq, inner.Op)
	assert.Equal(t, token.LiteralDecimal, tree.Literal(inner.Rhs).Kind)
}

func TestLogicalOperatorsBindLooserThanComparison(t *testing.T) {
	// a := 1 < 2 && 3 > 4  =>  BinaryOp(&&, BinaryOp(<, 1, 2), BinaryOp(>, 3, 4))
	items, tree, collector := parseSource(t, "a := 1 < 2 && 3 > 4;")
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	assign := tree.AssignStatement(items[0])
	and := tree.BinaryOp(assign.Value)
	assert.Equal(t, token.AmpAmp, and.Op)

	lt := tree.BinaryOp(and.Lhs)
	assert.Equal(t, token.Lt, lt.Op)
	gt := tree.BinaryOp(and.Rhs)
	assert.Equal(t, token.Gt, gt.Op)
}

func TestIfElseIfElseChain(t *testing.T) {
	items, tree, collector := parseSource(t, `
		if a { 1; } else if b { 2; } else { 3; }
	`)
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	exprStmt := tree.ExpressionStatement(items[0])
	ifExpr := tree.If(exprStmt.Expr)
	branches := tree.IfBranches(ifExpr.Branches)
	require.Len(t, branches, 3)

	assert.True(t, branches[0].Condition.IsValid())
	assert.True(t, branches[1].Condition.IsValid())
	// The trailing unconditional else has no condition.
	assert.False(t, branches[2].Condition.IsValid())
}

func TestFunctionDeclarationWithParamsAndReturnType(t *testing.T) {
	items, tree, collector := parseSource(t, `
		fn add(a: i32, b: i32) -> i32 {
			return a + b;
		}
	`)
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	assert.Equal(t, ast.KindFunction, tree.Node(items[0]).Kind)
	fn := tree.Function(items[0])
	assert.True(t, fn.ReturnType.IsValid())
	assert.True(t, fn.Body.IsValid())

	params := tree.Params(fn.Params)
	require.Len(t, params, 2)
	assert.True(t, params[0].Type.IsValid())
	assert.True(t, params[1].Type.IsValid())

	body := tree.BlockByID(fn.Body)
	stmts := tree.NodeRangeSlice(body.Statements)
	require.Len(t, stmts, 1)
	// "return a + b;" is a return-expression wrapped in the usual
	// expression-statement shape, not a dedicated statement kind.
	assert.Equal(t, ast.KindExpressionStatement, tree.Node(stmts[0]).Kind)
	exprStmt := tree.ExpressionStatement(stmts[0])
	assert.Equal(t, ast.KindReturn, tree.Node(exprStmt.Expr).Kind)
}

func TestFunctionSignatureOnlyHasInvalidBody(t *testing.T) {
	items, tree, collector := parseSource(t, "fn declared_only(x: i32) -> i32;")
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	fn := tree.Function(items[0])
	assert.False(t, fn.Body.IsValid())
}

func TestStorageAttributeConflictReported(t *testing.T) {
	_, _, collector := parseSource(t, "mut const x := 1;")
	require.NotEmpty(t, collector.Diagnostics)
	found := false
	for _, d := range collector.Diagnostics {
		if d.ID == diag.ConflictingStorageAttributes {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUnsafeBlockKeptAsExpressionNotModifier(t *testing.T) {
	items, tree, collector := parseSource(t, "unsafe { 1; }")
	require.Empty(t, collector.Diagnostics)
	require.Len(t, items, 1)

	exprStmt := tree.ExpressionStatement(items[0])
	assert.Equal(t, ast.KindUnsafe, tree.Node(exprStmt.Expr).Kind)
}

func TestRecoveryContinuesPastUnexpectedToken(t *testing.T) {
	// A stray ')' at top level can't start any declaration/statement;
	// the parser should report it, synchronize past it, and still
	// recover the well-formed declaration that follows.
	items, _, collector := parseSource(t, ")\nfn ok() {}\n")

	foundUnexpected := false
	for _, d := range collector.Diagnostics {
		if d.ID == diag.UnexpectedToken {
			foundUnexpected = true
		}
	}
	assert.True(t, foundUnexpected)
	require.Len(t, items, 1)
}

func TestStrictModeStopsAtFirstError(t *testing.T) {
	items, _, collector := parseSource(t, ")\nfn ok() {}\n", Strict())
	assert.NotEmpty(t, collector.Diagnostics)
	assert.Empty(t, items)
}

func TestPostfixUseOfPrefixOnlyOperatorReported(t *testing.T) {
	// "!" and "~" are prefix-only; using them after an operand is an
	// unambiguous misuse (unlike "+"/"-", which double as binary
	// operators and must not trigger this diagnostic).
	_, _, collector := parseSource(t, `
		fn f() {
			a!;
		}
	`)

	found := false
	for _, d := range collector.Diagnostics {
		if d.ID == diag.CannotBePostfixOperator {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBinaryPlusAfterOperandIsNotReportedAsPostfixMisuse(t *testing.T) {
	items, _, collector := parseSource(t, "a := 1 + 2;")
	require.Len(t, items, 1)
	for _, d := range collector.Diagnostics {
		assert.NotEqual(t, diag.CannotBePostfixOperator, d.ID)
	}
}
