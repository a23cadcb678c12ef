package lexer

import (
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// scanString consumes a double-quoted string literal, recognizing
// every escape form the character-literal scanner does. It stops at an
// unescaped closing quote, an unescaped newline, or Eof — the latter
// two reporting UnterminatedStringLiteral.
func (l *Lexer) scanString(start int, startLoc source.Location) token.Token {
	l.s.Advance() // opening '"'
	for {
		if l.s.EOF() {
			l.report(diag.UnterminatedStringLiteral, source.Range{Start: start, End: l.s.Position()}, "unterminated string literal")
			break
		}
		r := l.s.Peek(0)
		if r == '"' {
			l.s.Advance()
			break
		}
		if r == '\n' {
			l.report(diag.UnterminatedStringLiteral, source.Range{Start: start, End: l.s.Position()}, "unterminated string literal")
			break
		}
		if r == '\\' {
			l.scanEscape(start)
			continue
		}
		l.s.Advance()
	}
	return l.finish(token.LiteralString, start, startLoc)
}

// scanChar consumes a single-quoted character literal, reporting
// EmptyCharacterLiteral for '' and MultiCharacterLiteral when more
// than one codepoint (post-escape) sits between the quotes.
func (l *Lexer) scanChar(start int, startLoc source.Location) token.Token {
	l.s.Advance() // opening '\''

	if l.s.Peek(0) == '\'' {
		l.s.Advance()
		l.report(diag.EmptyCharacterLiteral, source.Range{Start: start, End: l.s.Position()}, "empty character literal")
		return l.finish(token.LiteralCharacter, start, startLoc)
	}

	codepoints := 0
	for {
		if l.s.EOF() {
			l.report(diag.UnterminatedCharacterLiteral, source.Range{Start: start, End: l.s.Position()}, "unterminated character literal")
			break
		}
		r := l.s.Peek(0)
		if r == '\'' {
			l.s.Advance()
			break
		}
		if r == '\n' {
			l.report(diag.UnterminatedCharacterLiteral, source.Range{Start: start, End: l.s.Position()}, "unterminated character literal")
			break
		}
		if r == '\\' {
			l.scanEscape(start)
		} else {
			l.s.Advance()
		}
		codepoints++
	}

	if codepoints > 1 {
		l.report(diag.MultiCharacterLiteral, source.Range{Start: start, End: l.s.Position()}, "character literal must contain exactly one codepoint")
	}
	return l.finish(token.LiteralCharacter, start, startLoc)
}

// scanEscape consumes one backslash escape sequence: a simple one-byte
// form (\n \t \r \\ \' \"), \xHH, \uHHHH, \UHHHHHHHH, or an octal
// \ooo (one to three octal digits, so \0 is the one-digit case). literalStart is the opening quote
// position, used only to anchor the diagnostic range.
func (l *Lexer) scanEscape(literalStart int) {
	escStart := l.s.Position()
	l.s.Advance() // '\\'

	switch l.s.Peek(0) {
	case 'n', 't', 'r', '\\', '\'', '"':
		l.s.Advance()
		return
	case 'x':
		l.s.Advance()
		l.expectHexDigits(escStart, 2, diag.InvalidHexEscape)
		return
	case 'u':
		l.s.Advance()
		l.expectHexDigits(escStart, 4, diag.InvalidUnicodeEscape)
		return
	case 'U':
		l.s.Advance()
		l.expectHexDigits(escStart, 8, diag.InvalidUnicodeEscape)
		return
	}

	if isOctDigit(l.s.Peek(0)) {
		n := 0
		for n < 3 && isOctDigit(l.s.Peek(0)) {
			l.s.Advance()
			n++
		}
		return
	}

	// Unknown escape letter: consume it so scanning still makes
	// progress, but flag it distinctly from a malformed hex/unicode
	// escape (those report their own specific diagnostic id).
	if !l.s.EOF() {
		l.s.Advance()
	}
	l.report(diag.InvalidCharacterEscape, source.Range{Start: escStart, End: l.s.Position()}, "invalid escape sequence")
}

func (l *Lexer) expectHexDigits(escStart, want int, id diag.ID) {
	got := 0
	for got < want && isHexDigit(l.s.Peek(0)) {
		l.s.Advance()
		got++
	}
	if got != want {
		l.report(id, source.Range{Start: escStart, End: l.s.Position()}, "escape sequence requires exact hex digit count")
	}
}
