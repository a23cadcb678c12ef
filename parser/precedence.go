package parser

import "github.com/vellum-lang/vellum/token"

// level, rightAssoc describes one entry of the 15-level precedence
// table; smaller level numbers bind tighter. Right-associative levels
// recurse into their right-hand operand with the operator's own level
// as minPrecedence; left-associative levels recurse one level tighter
// (level-1).
// Levels 1 (postfix) and 2 (prefix unary) are handled outside this
// table, directly in parseUnaryExpression/parsePostfixChain.
type opInfo struct {
	level      int
	rightAssoc bool
}

var binaryOps = map[token.Kind]opInfo{
	token.StarStar: {3, true},

	token.Star: {4, false}, token.Slash: {4, false}, token.Percent: {4, false},

	token.Plus: {5, false}, token.Minus: {5, false},

	token.Shl: {6, false}, token.Shr: {6, false},

	token.Spaceship: {7, false},

	token.Lt: {8, false}, token.LtEq: {8, false}, token.Gt: {8, false}, token.GtEq: {8, false},

	token.EqEq: {9, false}, token.BangEq: {9, false},

	token.Amp: {10, false},

	token.Caret: {11, false},

	token.Pipe: {12, false},

	token.AmpAmp: {13, false},

	token.PipePipe: {14, false},

	token.Eq: {15, true}, token.ColonEq: {15, true}, token.PlusEq: {15, true},
	token.MinusEq: {15, true}, token.StarEq: {15, true}, token.SlashEq: {15, true},
	token.PercentEq: {15, true}, token.AmpEq: {15, true}, token.PipeEq: {15, true},
	token.CaretEq: {15, true}, token.ShlEq: {15, true}, token.ShrEq: {15, true},
}

// looseStart is the minPrecedence parseBinaryExpression is first
// called with: the loosest (largest) level in the table, so every
// operator is eligible at the top of an expression.
const looseStart = 15

var prefixOps = map[token.Kind]bool{
	token.PlusPlus: true, token.MinusMinus: true, token.Bang: true,
	token.Tilde: true, token.Plus: true, token.Minus: true,
}

var postfixOnlyOps = map[token.Kind]bool{
	token.PlusPlus: true, token.MinusMinus: true,
}

func isExprStart(k token.Kind) bool {
	switch {
	case k.IsLiteral(), k == token.KwTrue, k == token.KwFalse:
		return true
	}
	switch k {
	case token.Identifier, token.ColonColon, token.LParen, token.LBracket, token.LBrace,
		token.KwIf, token.KwWhile, token.KwFor, token.KwLoop, token.KwMatch,
		token.KwUnsafe, token.KwFast, token.KwConst, token.KwReturn, token.KwBreak,
		token.KwContinue, token.DotDot, token.DotDotEq, token.DotDotLt:
		return true
	}
	return prefixOps[k]
}
