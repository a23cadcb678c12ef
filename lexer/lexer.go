// Package lexer turns a validated UTF-8 source buffer into a flat
// stream of token.Token values. It never aborts on malformed input:
// every failure mode reports a diag.Diagnostic and resumes scanning,
// so a single pass always reaches Eof.
package lexer

import (
	"github.com/nukilabs/unicodeid"

	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
	"github.com/vellum-lang/vellum/ustream"
)

// Config holds the knobs Option functions mutate. New starts from a
// Config with both fields true, not from the zero value.
type Config struct {
	emitTrivia   bool // kept true; trivia is always produced, Option can't turn it off today
	docCommentOn bool
}

// Option configures a Lexer at construction time. The functional-
// options shape keeps the zero-option call (New(file, sink)) the
// common case while leaving room to grow without breaking callers.
type Option func(*Config)

// WithDocComments toggles whether "//@" comments are classified as
// DocComment instead of InlineComment. Enabled by default.
func WithDocComments(enabled bool) Option {
	return func(c *Config) { c.docCommentOn = enabled }
}

// Lexer scans one file's bytes into tokens on demand. It holds no
// lookahead beyond what ustream.Stream buffers internally, so callers
// needing lookahead (the parser) wrap it in a TokenStream instead of
// calling Next repeatedly themselves.
type Lexer struct {
	file source.FileRef
	src  []byte
	s    *ustream.Stream
	sink diag.Sink
	cfg  Config

	invalid bool
}

// New creates a Lexer over file's bytes. If the buffer fails UTF-8
// validation, New reports a single diag.InvalidUTF8 diagnostic and the
// Lexer immediately yields Eof on every subsequent Next call.
func New(file source.FileRef, sink diag.Sink, opts ...Option) *Lexer {
	cfg := Config{emitTrivia: true, docCommentOn: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Lexer{file: file, src: file.Source(), sink: sink, cfg: cfg, s: ustream.New()}
	if off, ok := l.s.Init(l.src); !ok {
		l.invalid = true
		l.report(diag.InvalidUTF8, source.Range{Start: off, End: off + 1}, "invalid UTF-8 sequence")
	}
	return l
}

func (l *Lexer) loc() source.Location {
	return source.Location{Line: l.s.Line(), Column: l.s.Column(), FileID: l.file.FileID()}
}

func (l *Lexer) here() token.Token {
	pos := l.s.Position()
	return token.Token{Range: source.Range{Start: pos, End: pos}, Start: l.loc()}
}

func (l *Lexer) report(id diag.ID, rng source.Range, msg string) {
	l.sink.Report(diag.Diagnostic{
		Severity:     diag.SeverityError,
		ID:           id,
		FileID:       l.file.FileID(),
		Range:        rng,
		PrimaryLabel: msg,
	})
}

// All drains the Lexer into a slice, for callers that want the whole
// token stream up front (tests, a one-shot CLI) rather than streaming.
func All(l *Lexer) []token.Token {
	var out []token.Token
	for {
		t := l.Next()
		out = append(out, t)
		if t.Kind == token.Eof {
			return out
		}
	}
}

// Next scans and returns the next token, including trivia (whitespace,
// newlines, comments). Calling Next past Eof keeps returning Eof.
func (l *Lexer) Next() token.Token {
	if l.invalid {
		// The stream refuses position queries after failed validation.
		return token.Token{Kind: token.Eof, Start: source.Location{Line: 1, Column: 1, FileID: l.file.FileID()}}
	}
	if l.s.EOF() {
		return l.eofToken()
	}

	start := l.s.Position()
	startLoc := l.loc()
	r := l.s.Peek(0)

	switch {
	case r == ' ' || r == '\t':
		return l.scanHorizontalSpace(start, startLoc)
	case r == '\r':
		l.s.Advance()
		if l.s.Peek(0) == '\n' {
			l.s.Advance()
		}
		return l.finish(token.Newline, start, startLoc)
	case r == '\n':
		l.s.Advance()
		return l.finish(token.Newline, start, startLoc)
	case r == '/' && l.s.Peek(1) == '/':
		return l.scanLineComment(start, startLoc)
	case r == '/' && l.s.Peek(1) == '*':
		return l.scanBlockComment(start, startLoc)
	case isDigit(r):
		return l.scanNumber(start, startLoc)
	case r == '"':
		return l.scanString(start, startLoc)
	case r == '\'':
		return l.scanChar(start, startLoc)
	case isIdentStart(r):
		return l.scanIdentifier(start, startLoc)
	default:
		if t, ok := l.scanOperator(start, startLoc); ok {
			return t
		}
		l.s.Advance()
		l.report(diag.UnrecognizedCharacter, source.Range{Start: start, End: l.s.Position()}, "unrecognized character")
		return l.finish(token.Error, start, startLoc)
	}
}

func (l *Lexer) eofToken() token.Token {
	t := l.here()
	t.Kind = token.Eof
	return t
}

func (l *Lexer) finish(kind token.Kind, start int, startLoc source.Location) token.Token {
	end := l.s.Position()
	return token.Token{
		Kind:        kind,
		Range:       source.Range{Start: start, End: end},
		Start:       startLoc,
		LengthBytes: uint32(end - start),
	}
}

func (l *Lexer) scanHorizontalSpace(start int, startLoc source.Location) token.Token {
	for {
		r := l.s.Peek(0)
		if r != ' ' && r != '\t' {
			break
		}
		l.s.Advance()
	}
	return l.finish(token.Whitespace, start, startLoc)
}

func (l *Lexer) scanLineComment(start int, startLoc source.Location) token.Token {
	l.s.Advance() // '/'
	l.s.Advance() // '/'
	doc := l.cfg.docCommentOn && l.s.Peek(0) == '@'
	for {
		r := l.s.Peek(0)
		if r == 0 && l.s.EOF() {
			break
		}
		if r == '\n' {
			break
		}
		l.s.Advance()
	}
	kind := token.InlineComment
	if doc {
		kind = token.DocComment
	}
	return l.finish(kind, start, startLoc)
}

func (l *Lexer) scanBlockComment(start int, startLoc source.Location) token.Token {
	l.s.Advance() // '/'
	l.s.Advance() // '*'
	depth := 1
	for depth > 0 {
		if l.s.EOF() {
			l.report(diag.UnterminatedBlockComment, source.Range{Start: start, End: l.s.Position()}, "unterminated block comment")
			break
		}
		r := l.s.Peek(0)
		if r == '*' && l.s.Peek(1) == '/' {
			l.s.Advance()
			l.s.Advance()
			depth--
			continue
		}
		if r == '/' && l.s.Peek(1) == '*' {
			l.s.Advance()
			l.s.Advance()
			depth++
			continue
		}
		l.s.Advance()
	}
	return l.finish(token.BlockComment, start, startLoc)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicodeid.IsXIDStart(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicodeid.IsXIDContinue(r)
}
