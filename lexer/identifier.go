package lexer

import (
	"github.com/vellum-lang/vellum/internal/keyword"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// scanIdentifier consumes an XID_Start/XID_Continue run and classifies
// it against the keyword table, falling back to Identifier on a miss.
func (l *Lexer) scanIdentifier(start int, startLoc source.Location) token.Token {
	l.s.Advance() // the XID_Start / '_' codepoint already matched by the caller
	for {
		r := l.s.Peek(0)
		if !isIdentContinue(r) {
			break
		}
		l.s.Advance()
	}

	end := l.s.Position()
	lexeme := l.src[start:end]

	kind := token.Identifier
	if k, ok := keyword.Lookup(lexeme); ok {
		kind = k
	}
	return l.finish(kind, start, startLoc)
}
