package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

func lexAll(t *testing.T, src string, opts ...Option) ([]token.Token, *diag.Collector) {
	t.Helper()
	file := source.NewFileRef(1, "test.vl", []byte(src))
	collector := diag.NewCollector()
	l := New(file, collector, opts...)
	return All(l), collector
}

// kinds strips Eof off the end and returns the rest, since every test
// below cares about the tokens preceding it, not the sentinel itself.
func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == token.Eof {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func TestEmptySourceYieldsOnlyEof(t *testing.T) {
	toks, collector := lexAll(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Eof, toks[0].Kind)
	assert.Empty(t, collector.Diagnostics)
}

func TestDecimalInteger(t *testing.T) {
	toks, collector := lexAll(t, "1234")
	require.Equal(t, []token.Kind{token.LiteralDecimal}, kinds(toks))
	assert.Empty(t, collector.Diagnostics)
}

func TestFloatWithFraction(t *testing.T) {
	toks, _ := lexAll(t, "1.5")
	require.Len(t, kinds(toks), 1)
	assert.Equal(t, token.LiteralFloat, toks[0].Kind)
}

func TestFloatWithExponent(t *testing.T) {
	toks, _ := lexAll(t, "1e10")
	require.Len(t, kinds(toks), 1)
	assert.Equal(t, token.LiteralFloat, toks[0].Kind)
}

func TestFloatWithSignedExponent(t *testing.T) {
	toks, _ := lexAll(t, "1.5e-10")
	require.Len(t, kinds(toks), 1)
	assert.Equal(t, token.LiteralFloat, toks[0].Kind)
}

func TestRangeDoesNotSwallowIntoFloat(t *testing.T) {
	// "1..5" must lex as Decimal, DotDot, Decimal rather than being
	// misread as a malformed float: '.' only starts a fraction when
	// followed directly by a digit, and here it is followed by '.'.
	toks, collector := lexAll(t, "1..5")
	require.Equal(t, []token.Kind{token.LiteralDecimal, token.DotDot, token.LiteralDecimal}, kinds(toks))
	assert.Empty(t, collector.Diagnostics)
}

func TestDotDotEqAndDotDotLt(t *testing.T) {
	toks, _ := lexAll(t, "1..=5 1..<5")
	ks := kinds(toks)
	assert.Contains(t, ks, token.DotDotEq)
	assert.Contains(t, ks, token.DotDotLt)
}

func TestRadixLiterals(t *testing.T) {
	toks, collector := lexAll(t, "0b101 0o17 0xFF")
	ks := kinds(toks)
	require.Equal(t, []token.Kind{token.LiteralBinary, token.Whitespace, token.LiteralOctal, token.Whitespace, token.LiteralHex}, ks)
	assert.Empty(t, collector.Diagnostics)
}

func TestRadixLiteralMissingDigitsReported(t *testing.T) {
	_, collector := lexAll(t, "0x")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidNumericLiteral, collector.Diagnostics[0].ID)
}

func TestNumericSeparators(t *testing.T) {
	toks, collector := lexAll(t, "1_000_000")
	require.Equal(t, []token.Kind{token.LiteralDecimal}, kinds(toks))
	assert.Empty(t, collector.Diagnostics)
}

func TestNumericSeparatorAtEdgeReported(t *testing.T) {
	// A lone trailing "_" isn't even consumed into the number (it needs
	// a following digit or "_" to be swallowed by the digit run), so it
	// is the doubled-separator case that actually lands the run's last
	// consumed byte on "_".
	_, collector := lexAll(t, "1__")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidNumericLiteral, collector.Diagnostics[0].ID)
}

func TestDoubledSeparatorInsideDigitRunReported(t *testing.T) {
	toks, collector := lexAll(t, "1__2")
	require.Equal(t, []token.Kind{token.LiteralDecimal}, kinds(toks))
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidNumericLiteral, collector.Diagnostics[0].ID)
}

func TestStringLiteral(t *testing.T) {
	toks, collector := lexAll(t, `"hello, world"`)
	require.Equal(t, []token.Kind{token.LiteralString}, kinds(toks))
	assert.Empty(t, collector.Diagnostics)
	assert.Equal(t, `"hello, world"`, string(toks[0].Range.Slice([]byte(`"hello, world"`))))
}

func TestStringLiteralEscapes(t *testing.T) {
	_, collector := lexAll(t, `"a\nb\t\x41A\U00000041\101"`)
	assert.Empty(t, collector.Diagnostics)
}

func TestStringLiteralInvalidHexEscape(t *testing.T) {
	_, collector := lexAll(t, `"\x4"`)
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidHexEscape, collector.Diagnostics[0].ID)
}

func TestStringLiteralInvalidUnicodeEscape(t *testing.T) {
	_, collector := lexAll(t, `"\u12"`)
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidUnicodeEscape, collector.Diagnostics[0].ID)
}

func TestStringLiteralUnknownEscape(t *testing.T) {
	_, collector := lexAll(t, `"\q"`)
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidCharacterEscape, collector.Diagnostics[0].ID)
}

func TestUnterminatedStringAtNewline(t *testing.T) {
	// The first string stops at the newline; the closing quote after
	// "def" then opens a second string that runs to Eof.
	_, collector := lexAll(t, "\"abc\ndef\"")
	require.Len(t, collector.Diagnostics, 2)
	assert.Equal(t, diag.UnterminatedStringLiteral, collector.Diagnostics[0].ID)
	assert.Equal(t, diag.UnterminatedStringLiteral, collector.Diagnostics[1].ID)
}

func TestUnterminatedStringAtEof(t *testing.T) {
	_, collector := lexAll(t, `"abc`)
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.UnterminatedStringLiteral, collector.Diagnostics[0].ID)
}

func TestCharLiteral(t *testing.T) {
	toks, collector := lexAll(t, "'a'")
	require.Equal(t, []token.Kind{token.LiteralCharacter}, kinds(toks))
	assert.Empty(t, collector.Diagnostics)
}

func TestEmptyCharLiteralReported(t *testing.T) {
	_, collector := lexAll(t, "''")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.EmptyCharacterLiteral, collector.Diagnostics[0].ID)
}

func TestMultiCharLiteralReported(t *testing.T) {
	_, collector := lexAll(t, "'ab'")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.MultiCharacterLiteral, collector.Diagnostics[0].ID)
}

func TestCharLiteralSingleEscapeIsNotMulti(t *testing.T) {
	_, collector := lexAll(t, `'\n'`)
	assert.Empty(t, collector.Diagnostics)
}

func TestUnterminatedCharLiteral(t *testing.T) {
	_, collector := lexAll(t, "'a")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.UnterminatedCharacterLiteral, collector.Diagnostics[0].ID)
}

func TestIdentifierAndKeyword(t *testing.T) {
	toks, _ := lexAll(t, "fn foo")
	ks := kinds(toks)
	assert.Equal(t, token.KwFn, ks[0])
	assert.Equal(t, token.Whitespace, ks[1])
	assert.Equal(t, token.Identifier, ks[2])
}

func TestIdentifierWithUnderscorePrefix(t *testing.T) {
	toks, _ := lexAll(t, "_private")
	require.Equal(t, []token.Kind{token.Identifier}, kinds(toks))
}

func TestLineComment(t *testing.T) {
	toks, _ := lexAll(t, "// plain comment\n")
	ks := kinds(toks)
	assert.Equal(t, token.InlineComment, ks[0])
	assert.Equal(t, token.Newline, ks[1])
}

func TestDocComment(t *testing.T) {
	toks, _ := lexAll(t, "//@ documented\n")
	ks := kinds(toks)
	assert.Equal(t, token.DocComment, ks[0])
}

func TestDocCommentDisabledOption(t *testing.T) {
	toks, _ := lexAll(t, "//@ documented\n", WithDocComments(false))
	ks := kinds(toks)
	assert.Equal(t, token.InlineComment, ks[0])
}

func TestBlockCommentNesting(t *testing.T) {
	_, collector := lexAll(t, "/* outer /* inner */ still outer */")
	assert.Empty(t, collector.Diagnostics)
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, collector := lexAll(t, "/* never closed")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.UnterminatedBlockComment, collector.Diagnostics[0].ID)
}

func TestOperatorLongestMatch(t *testing.T) {
	toks, collector := lexAll(t, "<=> <<= >>= << >> <= >= ->")
	ks := kinds(toks)
	assert.Empty(t, collector.Diagnostics)
	var filtered []token.Kind
	for _, k := range ks {
		if k != token.Whitespace {
			filtered = append(filtered, k)
		}
	}
	assert.Equal(t, []token.Kind{
		token.Spaceship, token.ShlEq, token.ShrEq, token.Shl, token.Shr, token.LtEq, token.GtEq, token.Arrow,
	}, filtered)
}

func TestOperatorCompoundAssign(t *testing.T) {
	toks, _ := lexAll(t, "+= -= *= /= %= &= |= ^=")
	var filtered []token.Kind
	for _, k := range kinds(toks) {
		if k != token.Whitespace {
			filtered = append(filtered, k)
		}
	}
	assert.Equal(t, []token.Kind{
		token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq,
		token.PercentEq, token.AmpEq, token.PipeEq, token.CaretEq,
	}, filtered)
}

func TestIncrementDecrement(t *testing.T) {
	toks, _ := lexAll(t, "++ --")
	var filtered []token.Kind
	for _, k := range kinds(toks) {
		if k != token.Whitespace {
			filtered = append(filtered, k)
		}
	}
	assert.Equal(t, []token.Kind{token.PlusPlus, token.MinusMinus}, filtered)
}

func TestUnrecognizedCharacterRecovers(t *testing.T) {
	toks, collector := lexAll(t, "a ` b")
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.UnrecognizedCharacter, collector.Diagnostics[0].ID)

	ks := kinds(toks)
	// Scanning continues past the bad byte and still reaches both
	// identifiers either side of it.
	assert.Contains(t, ks, token.Error)
	assert.Contains(t, ks, token.Identifier)
}

func TestInvalidUTF8AtConstructionYieldsImmediateEof(t *testing.T) {
	file := source.NewFileRef(1, "bad.vl", []byte{'a', 0xff, 'b'})
	collector := diag.NewCollector()
	l := New(file, collector)

	toks := All(l)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Eof, toks[0].Kind)
	require.Len(t, collector.Diagnostics, 1)
	assert.Equal(t, diag.InvalidUTF8, collector.Diagnostics[0].ID)
}

func TestNextPastEofKeepsReturningEof(t *testing.T) {
	file := source.NewFileRef(1, "test.vl", []byte("a"))
	collector := diag.NewCollector()
	l := New(file, collector)

	toks := []token.Kind{l.Next().Kind, l.Next().Kind}
	assert.Equal(t, []token.Kind{token.Identifier, token.Eof}, toks)
	assert.Equal(t, token.Eof, l.Next().Kind)
	assert.Equal(t, token.Eof, l.Next().Kind)
}

func TestNewlineToken(t *testing.T) {
	toks, _ := lexAll(t, "a\nb")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{token.Identifier, token.Newline, token.Identifier}, ks)
}

func TestWhitespaceRun(t *testing.T) {
	toks, _ := lexAll(t, "a   b")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{token.Identifier, token.Whitespace, token.Identifier}, ks)
}

func TestCarriageReturnNewlineEmitsSingleNewline(t *testing.T) {
	toks, _ := lexAll(t, "a\r\nb")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{token.Identifier, token.Newline, token.Identifier}, ks)

	nl := toks[1]
	assert.Equal(t, token.Newline, nl.Kind)
	assert.Equal(t, uint32(2), nl.LengthBytes)
}

func TestLoneCarriageReturnEmitsNewline(t *testing.T) {
	toks, _ := lexAll(t, "a\rb")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{token.Identifier, token.Newline, token.Identifier}, ks)

	nl := toks[1]
	assert.Equal(t, token.Newline, nl.Kind)
	assert.Equal(t, uint32(1), nl.LengthBytes)
}
