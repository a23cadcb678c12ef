package lexer

import (
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// scanOperator performs longest-match recognition of every operator
// and punctuator spelling, dispatching on the first byte. It reports
// !ok for any codepoint that starts no known spelling, leaving the
// caller to treat it as an unrecognized character.
func (l *Lexer) scanOperator(start int, startLoc source.Location) (token.Token, bool) {
	r := l.s.Peek(0)
	n1 := l.s.Peek(1)
	n2 := l.s.Peek(2)

	adv := func(count int, kind token.Kind) (token.Token, bool) {
		for i := 0; i < count; i++ {
			l.s.Advance()
		}
		return l.finish(kind, start, startLoc), true
	}

	switch r {
	case '+':
		if n1 == '+' {
			return adv(2, token.PlusPlus)
		}
		if n1 == '=' {
			return adv(2, token.PlusEq)
		}
		return adv(1, token.Plus)
	case '-':
		if n1 == '>' {
			return adv(2, token.Arrow)
		}
		if n1 == '-' {
			return adv(2, token.MinusMinus)
		}
		if n1 == '=' {
			return adv(2, token.MinusEq)
		}
		return adv(1, token.Minus)
	case '*':
		if n1 == '*' {
			return adv(2, token.StarStar)
		}
		if n1 == '=' {
			return adv(2, token.StarEq)
		}
		return adv(1, token.Star)
	case '/':
		if n1 == '=' {
			return adv(2, token.SlashEq)
		}
		return adv(1, token.Slash)
	case '%':
		if n1 == '=' {
			return adv(2, token.PercentEq)
		}
		return adv(1, token.Percent)
	case '=':
		if n1 == '=' {
			return adv(2, token.EqEq)
		}
		return adv(1, token.Eq)
	case '!':
		if n1 == '=' {
			return adv(2, token.BangEq)
		}
		return adv(1, token.Bang)
	case '<':
		if n1 == '=' && n2 == '>' {
			return adv(3, token.Spaceship)
		}
		if n1 == '<' && n2 == '=' {
			return adv(3, token.ShlEq)
		}
		if n1 == '=' {
			return adv(2, token.LtEq)
		}
		if n1 == '<' {
			return adv(2, token.Shl)
		}
		return adv(1, token.Lt)
	case '>':
		if n1 == '>' && n2 == '=' {
			return adv(3, token.ShrEq)
		}
		if n1 == '=' {
			return adv(2, token.GtEq)
		}
		if n1 == '>' {
			return adv(2, token.Shr)
		}
		return adv(1, token.Gt)
	case '&':
		if n1 == '&' {
			return adv(2, token.AmpAmp)
		}
		if n1 == '=' {
			return adv(2, token.AmpEq)
		}
		return adv(1, token.Amp)
	case '|':
		if n1 == '|' {
			return adv(2, token.PipePipe)
		}
		if n1 == '=' {
			return adv(2, token.PipeEq)
		}
		return adv(1, token.Pipe)
	case '^':
		if n1 == '=' {
			return adv(2, token.CaretEq)
		}
		return adv(1, token.Caret)
	case '~':
		return adv(1, token.Tilde)
	case ':':
		if n1 == ':' {
			return adv(2, token.ColonColon)
		}
		if n1 == '=' {
			return adv(2, token.ColonEq)
		}
		return adv(1, token.Colon)
	case '.':
		if n1 == '.' && n2 == '=' {
			return adv(3, token.DotDotEq)
		}
		if n1 == '.' && n2 == '<' {
			return adv(3, token.DotDotLt)
		}
		if n1 == '.' {
			return adv(2, token.DotDot)
		}
		return adv(1, token.Dot)
	case '(':
		return adv(1, token.LParen)
	case ')':
		return adv(1, token.RParen)
	case '{':
		return adv(1, token.LBrace)
	case '}':
		return adv(1, token.RBrace)
	case '[':
		return adv(1, token.LBracket)
	case ']':
		return adv(1, token.RBracket)
	case ',':
		return adv(1, token.Comma)
	case ';':
		return adv(1, token.Semicolon)
	case '@':
		return adv(1, token.At)
	case '#':
		return adv(1, token.Hash)
	case '$':
		return adv(1, token.Dollar)
	case '?':
		return adv(1, token.Question)
	}
	return token.Token{}, false
}
