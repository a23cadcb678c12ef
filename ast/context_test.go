package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/intern"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

func TestCreateLiteralRoundTrips(t *testing.T) {
	tree := NewContext()
	id := tree.CreateLiteral(LiteralPayload{Kind: token.LiteralDecimal, LexemeRange: source.Range{Start: 0, End: 3}})

	require.True(t, id.IsValid())
	assert.Equal(t, KindLiteral, tree.Node(id).Kind)
	got := tree.Literal(id)
	assert.Equal(t, token.LiteralDecimal, got.Kind)
	assert.Equal(t, source.Range{Start: 0, End: 3}, got.LexemeRange)
}

func TestCreateBinaryOpRoundTrips(t *testing.T) {
	tree := NewContext()
	lhs := tree.CreateLiteral(LiteralPayload{Kind: token.LiteralDecimal})
	rhs := tree.CreateLiteral(LiteralPayload{Kind: token.LiteralDecimal})
	op := tree.CreateBinaryOp(BinaryOpPayload{Op: token.Plus, Lhs: lhs, Rhs: rhs})

	assert.Equal(t, KindBinaryOp, tree.Node(op).Kind)
	got := tree.BinaryOp(op)
	assert.Equal(t, token.Plus, got.Op)
	assert.Equal(t, lhs, got.Lhs)
	assert.Equal(t, rhs, got.Rhs)
}

func TestNodeIDsAreDenseAndIncreasing(t *testing.T) {
	tree := NewContext()
	a := tree.CreateLiteral(LiteralPayload{})
	b := tree.CreateLiteral(LiteralPayload{})
	c := tree.CreateLiteral(LiteralPayload{})

	assert.Equal(t, NodeID(0), a)
	assert.Equal(t, NodeID(1), b)
	assert.Equal(t, NodeID(2), c)
	assert.Equal(t, 3, tree.NodeCount())
}

func TestInvalidNodeIDIsNotValid(t *testing.T) {
	assert.False(t, InvalidNodeID.IsValid())
	assert.True(t, NodeID(0).IsValid())
}

func TestInvalidPayloadIDIsNotValid(t *testing.T) {
	assert.False(t, InvalidPayloadID[LiteralPayload]().IsValid())
}

func TestPayloadIDsOfDifferentTypesAreIndependentSequences(t *testing.T) {
	tree := NewContext()
	litID := alloc(tree.literal, LiteralPayload{Kind: token.LiteralDecimal})
	pathID := alloc(tree.path, PathPayload{})

	// Both arenas start fresh at 0; a PayloadID[LiteralPayload] and a
	// PayloadID[PathPayload] sharing the same numeric value is expected
	// and harmless, since the generic parameter keeps them from being
	// passed to the wrong accessor.
	assert.Equal(t, PayloadID[LiteralPayload](0), litID)
	assert.Equal(t, PayloadID[PathPayload](0), pathID)
}

func TestNodeRangeRoundTrips(t *testing.T) {
	tree := NewContext()
	a := tree.CreateLiteral(LiteralPayload{})
	b := tree.CreateLiteral(LiteralPayload{})
	r := tree.AllocNodeRange([]NodeID{a, b})

	assert.Equal(t, uint32(2), r.Size)
	assert.Equal(t, []NodeID{a, b}, tree.NodeRangeSlice(r))
}

func TestStringRangeRoundTrips(t *testing.T) {
	tree := NewContext()
	r := tree.AllocStringRange([]intern.StringID{1, 2, 3})
	assert.Equal(t, []intern.StringID{1, 2, 3}, tree.StringRangeSlice(r))
}

func TestCreateBlockNodeSharesPayloadWithoutReallocating(t *testing.T) {
	tree := NewContext()
	stmt := tree.CreateLiteral(LiteralPayload{})
	blockID := tree.AllocBlock(BlockPayload{Statements: tree.AllocNodeRange([]NodeID{stmt})})

	// Simulate an If payload referencing the block by PayloadID, then a
	// bare block-expression statement wrapping the same payload in its
	// own node, as CreateBlockNode's doc comment describes.
	ifNode := tree.CreateIf(IfPayload{Branches: tree.AllocIfBranches([]IfBranch{{Condition: InvalidNodeID, Block: blockID}})})
	blockNode := tree.CreateBlockNode(blockID)

	assert.Equal(t, KindIf, tree.Node(ifNode).Kind)
	assert.Equal(t, KindBlock, tree.Node(blockNode).Kind)
	assert.Equal(t, tree.Block(blockNode).Statements, tree.BlockByID(blockID).Statements)
}

func TestStorageAttributesConflicts(t *testing.T) {
	cases := []struct {
		name   string
		attrs  StorageAttributes
		expect bool
	}{
		{"mutable alone", AttrMutable, false},
		{"constant alone", AttrConstant, false},
		{"mutable and constant", AttrMutable | AttrConstant, true},
		{"static alone", AttrStatic, false},
		{"thread_local with static", AttrThreadLocal | AttrStatic, false},
		{"thread_local without static", AttrThreadLocal, true},
		{"unrelated combination", AttrPublic | AttrAsync | AttrUnsafe, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.attrs.Conflicts())
		})
	}
}

func TestStorageAttributesHas(t *testing.T) {
	attrs := AttrPublic | AttrAsync
	assert.True(t, attrs.Has(AttrPublic))
	assert.True(t, attrs.Has(AttrPublic|AttrAsync))
	assert.False(t, attrs.Has(AttrMutable))
}

func TestNodeKindStringUnknownForOutOfRange(t *testing.T) {
	assert.Equal(t, "Unknown", NodeKind(255).String())
	assert.Equal(t, "Literal", KindLiteral.String())
}

func TestParamRangeRoundTripsStructurally(t *testing.T) {
	tree := NewContext()
	want := []Param{
		{Name: intern.StringID(1), Type: tree.CreateLiteral(LiteralPayload{})},
		{Name: intern.StringID(2), Type: InvalidNodeID},
	}
	r := tree.AllocParams(want)
	got := tree.Params(r)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Params round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldRangeRoundTripsStructurally(t *testing.T) {
	tree := NewContext()
	typ := tree.CreateLiteral(LiteralPayload{})
	want := []Field{
		{Name: intern.StringID(5), Type: typ, Attrs: AttrPublic},
		{Name: intern.StringID(6), Type: typ, Attrs: 0},
	}
	r := tree.AllocFields(want)
	got := tree.Fields(r)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fields round trip mismatch (-want +got):\n%s", diff)
	}
}
