package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vellum-lang/vellum/source"
)

func TestIsPrimitiveType(t *testing.T) {
	assert.True(t, KwI32.IsPrimitiveType())
	assert.True(t, KwStr.IsPrimitiveType())
	assert.False(t, Identifier.IsPrimitiveType())
	assert.False(t, KwIf.IsPrimitiveType())
}

func TestIsLiteral(t *testing.T) {
	assert.True(t, LiteralDecimal.IsLiteral())
	assert.True(t, LiteralCharacter.IsLiteral())
	assert.False(t, KwTrue.IsLiteral())
	assert.False(t, Identifier.IsLiteral())
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, KwI32.IsKeyword())
	assert.True(t, KwIf.IsKeyword())
	assert.True(t, KwFalse.IsKeyword())
	assert.False(t, Identifier.IsKeyword())
	assert.False(t, Plus.IsKeyword())
}

func TestIsTrivia(t *testing.T) {
	assert.True(t, Whitespace.IsTrivia())
	assert.True(t, Newline.IsTrivia())
	assert.True(t, InlineComment.IsTrivia())
	assert.True(t, DocComment.IsTrivia())
	assert.False(t, Identifier.IsTrivia())
	assert.False(t, Error.IsTrivia())
}

func TestKeywordTableCoversEveryKeywordSpelling(t *testing.T) {
	for spelling, kind := range Keywords {
		assert.Equal(t, spelling, kind.String(), "keyword %q should stringify back to its own spelling", spelling)
	}
}

func TestKindStringUnknownForUnnamedKind(t *testing.T) {
	assert.Equal(t, "Unknown", Kind(60000).String())
}

func TestTokenLexemeRecoversSourceText(t *testing.T) {
	src := []byte("let foo = 1")
	tok := Token{Kind: Identifier, Range: source.Range{Start: 4, End: 7}}
	assert.Equal(t, "foo", string(tok.Lexeme(src)))
}

func TestIsEmptyRange(t *testing.T) {
	empty := Token{Range: source.Range{Start: 3, End: 3}}
	nonEmpty := Token{Range: source.Range{Start: 3, End: 4}}
	assert.True(t, empty.IsEmptyRange())
	assert.False(t, nonEmpty.IsEmptyRange())
}
