package lexer

import (
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func isOctDigit(r rune) bool { return r >= '0' && r <= '7' }

// scanNumber dispatches on a 0[bxo] prefix to a radix literal, else
// scans a decimal integer that may widen into a float via a fractional
// part and/or an exponent. Underscores are accepted as digit
// separators anywhere between two digits of the same run; a doubled
// separator, or one directly after a radix prefix, is reported but does
// not abort the scan — the literal is still consumed as one token. A
// single separator not followed by a digit ends the literal and is not
// part of it.
func (l *Lexer) scanNumber(start int, startLoc source.Location) token.Token {
	if l.s.Peek(0) == '0' {
		switch l.s.Peek(1) {
		case 'b', 'B':
			return l.scanRadixLiteral(start, startLoc, token.LiteralBinary, isBinDigit)
		case 'o', 'O':
			return l.scanRadixLiteral(start, startLoc, token.LiteralOctal, isOctDigit)
		case 'x', 'X':
			return l.scanRadixLiteral(start, startLoc, token.LiteralHex, isHexDigit)
		}
	}

	kind := token.LiteralDecimal
	l.consumeDigitRun(isDigit)

	if l.s.Peek(0) == '.' && isDigit(l.s.Peek(1)) {
		kind = token.LiteralFloat
		l.s.Advance() // '.'
		l.consumeDigitRun(isDigit)
	}

	if r := l.s.Peek(0); r == 'e' || r == 'E' {
		ahead := 1
		if n := l.s.Peek(ahead); n == '+' || n == '-' {
			ahead++
		}
		if isDigit(l.s.Peek(ahead)) {
			kind = token.LiteralFloat
			l.s.Advance() // e/E
			if n := l.s.Peek(0); n == '+' || n == '-' {
				l.s.Advance()
			}
			l.consumeDigitRun(isDigit)
		}
	}

	end := l.s.Position()
	// A trailing separator (e.g. "1_") is never consumed into the run by
	// consumeDigitRun in the first place, so only a doubled trailing
	// separator (e.g. "1__") can land here with the run's last consumed
	// byte being '_'; consumeDigitRun itself reports any separator
	// doubled up internally (e.g. "1__2").
	if l.src[end-1] == '_' {
		l.report(diag.InvalidNumericLiteral, source.Range{Start: start, End: end}, "numeric literal separator must sit between two digits")
	}
	return l.finish(kind, start, startLoc)
}

// scanRadixLiteral consumes a "0" + prefix-letter + digit run literal
// (binary/octal/hex), reporting InvalidNumericLiteral if no digit of
// the expected radix follows the prefix, or if a separator directly
// follows the prefix.
func (l *Lexer) scanRadixLiteral(start int, startLoc source.Location, kind token.Kind, isDigitOfRadix func(rune) bool) token.Token {
	l.s.Advance() // '0'
	l.s.Advance() // prefix letter
	leadingSep := l.s.Peek(0) == '_'
	digits := l.consumeDigitRun(isDigitOfRadix)
	if digits == 0 {
		end := l.s.Position()
		l.report(diag.InvalidNumericLiteral, source.Range{Start: start, End: end}, "expected at least one digit after numeric prefix")
	} else if leadingSep {
		l.report(diag.InvalidNumericLiteral, source.Range{Start: start + 2, End: start + 3}, "numeric literal separator must sit between two digits")
	}
	return l.finish(kind, start, startLoc)
}

// consumeDigitRun consumes zero or more digits matching isDigitOfRadix,
// interleaved with '_' separators, and reports how many actual digits
// (not separators) it consumed. A separator immediately following
// another separator (e.g. "1__2") is reported as it's consumed, since
// it never sits between two digits as spec.md's separator rule
// requires.
func (l *Lexer) consumeDigitRun(isDigitOfRadix func(rune) bool) int {
	count := 0
	prevWasSep := false
	for {
		r := l.s.Peek(0)
		if isDigitOfRadix(r) {
			l.s.Advance()
			count++
			prevWasSep = false
			continue
		}
		if r == '_' && (isDigitOfRadix(l.s.Peek(1)) || l.s.Peek(1) == '_') {
			if prevWasSep {
				pos := l.s.Position()
				l.report(diag.InvalidNumericLiteral, source.Range{Start: pos, End: pos + 1}, "numeric literal separator must sit between two digits")
			}
			l.s.Advance()
			prevWasSep = true
			continue
		}
		break
	}
	return count
}
