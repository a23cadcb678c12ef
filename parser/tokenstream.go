// Package parser turns a token.Token stream into a Vellum ast.Context
// tree, via precedence-climbing expression parsing and recursive-
// descent statement/declaration parsing.
package parser

import (
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// TokenStream is a random-access cursor over a pre-lexed token slice.
// The parser never re-invokes the lexer mid-parse — Vellum lexes a
// file fully before parsing it, so the parser's lookahead is just
// slice indexing.
type TokenStream struct {
	tokens []token.Token
	file   source.FileRef
	pos    int
}

// NewTokenStream wraps a fully-drained token slice (as produced by
// lexer.All) for a given file. The slice must end with an Eof token.
func NewTokenStream(file source.FileRef, tokens []token.Token) *TokenStream {
	return &TokenStream{tokens: tokens, file: file}
}

// File returns the file this stream's tokens came from.
func (ts *TokenStream) File() source.FileRef { return ts.file }

// Size reports the number of tokens in the stream, including Eof.
func (ts *TokenStream) Size() int { return len(ts.tokens) }

// Position returns the index of the token Next would return.
func (ts *TokenStream) Position() int { return ts.pos }

// EOF reports whether the cursor sits on the Eof token.
func (ts *TokenStream) EOF() bool { return ts.at(ts.pos).Kind == token.Eof }

func (ts *TokenStream) at(i int) token.Token {
	if i < 0 || i >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1] // Eof
	}
	return ts.tokens[i]
}

// Peek returns the token offset tokens ahead of the
// cursor without consuming it. Peek(0) is the current token.
func (ts *TokenStream) Peek(offset int) token.Token { return ts.at(ts.pos + offset) }

// PeekAt is an alias for Peek kept for symmetry with Utf8Stream's
// peek/peek_at naming; both read relative to the current cursor.
func (ts *TokenStream) PeekAt(n int) token.Token { return ts.Peek(n) }

// Next returns the current token and advances the cursor. Calling Next
// again after Eof keeps returning Eof without moving the cursor past
// the end of the slice.
func (ts *TokenStream) Next() token.Token {
	t := ts.at(ts.pos)
	if t.Kind != token.Eof {
		ts.pos++
	}
	return t
}

// NextNonWhitespace advances past any run of trivia tokens and returns
// the first non-trivia token, consuming it.
func (ts *TokenStream) NextNonWhitespace() token.Token {
	for ts.at(ts.pos).Kind.IsTrivia() {
		ts.pos++
	}
	return ts.Next()
}

// skipTrivia advances the cursor past a trivia run without consuming
// the token that follows it.
func (ts *TokenStream) skipTrivia() {
	for ts.at(ts.pos).Kind.IsTrivia() {
		ts.pos++
	}
}

// Rewind restores the cursor to a previously observed Position(). The
// caller must not pass a position beyond Size().
func (ts *TokenStream) Rewind(position int) { ts.pos = position }
