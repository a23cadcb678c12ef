// Package token defines the closed set of lexical tokens Vellum's
// lexer produces and the compact Token record the parser consumes.
// Lexeme text is never stored inside a Token — it is recovered on
// demand from a file's source bytes via the Token's Range.
package token

import "github.com/vellum-lang/vellum/source"

// Kind is a closed enum of lexical token kinds. Its member order is
// load-bearing: PrimitiveType and Literal each occupy one contiguous
// run so IsPrimitiveType/IsLiteral classify in O(1) with a single
// two-sided bounds check instead of a switch.
type Kind uint16

const (
	Eof Kind = iota

	Identifier

	// --- primitive type keywords (contiguous: IsPrimitiveType) ---
	KwI8
	KwI16
	KwI32
	KwI64
	KwU8
	KwU16
	KwU32
	KwU64
	KwF32
	KwF64
	KwBool
	KwChar
	KwStr
	primitiveTypeEnd // sentinel, not a real kind

	// control-flow keywords
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwLoop
	KwMatch
	KwReturn
	KwBreak
	KwContinue
	KwAwait

	// declaration keywords
	KwFn
	KwStruct
	KwEnum
	KwTrait
	KwImpl
	KwUnion
	KwModule
	KwUse
	KwRedirect

	// modifier / visibility keywords
	KwMut
	KwConst
	KwExtern
	KwStatic
	KwThreadLocal
	KwPub
	KwAsync
	KwUnsafe
	KwFast

	KwThis
	KwAs

	// boolean literal keywords
	KwTrue
	KwFalse

	// --- literal categories (contiguous: IsLiteral) ---
	LiteralDecimal
	LiteralBinary
	LiteralOctal
	LiteralHex
	LiteralFloat
	LiteralString
	LiteralCharacter
	literalEnd // sentinel, not a real kind

	// arithmetic / comparison / logical / bitwise operators
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar
	Eq
	EqEq
	Bang
	BangEq
	Lt
	LtEq
	Gt
	GtEq
	Spaceship // <=>
	AmpAmp
	PipePipe
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	PlusPlus
	MinusMinus

	// compound-assign + declaration-assign
	ColonEq
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	ShlEq
	ShrEq

	// misc operators
	Arrow   // ->
	DotDot  // ..
	DotDotEq
	DotDotLt

	// punctuators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	ColonColon
	Dot
	At
	Hash
	Dollar
	Question

	// trivia
	Whitespace
	Newline
	InlineComment
	BlockComment
	DocComment

	// Error marks a lexeme the lexer could not classify as anything
	// else (an unrecognized character). The
	// lexer always also reports a diag.Diagnostic alongside it; Error
	// tokens exist so the parser has something to advance past during
	// recovery instead of the scan simply stopping.
	Error
)

// IsPrimitiveType reports whether k is one of the primitive type
// keywords (i8..str).
func (k Kind) IsPrimitiveType() bool { return k > Identifier && k < primitiveTypeEnd }

// IsLiteral reports whether k is one of the literal categories.
func (k Kind) IsLiteral() bool { return k > KwFalse && k < literalEnd }

// IsKeyword reports whether k is any reserved word, including the
// primitive type and boolean keywords.
func (k Kind) IsKeyword() bool { return k.IsPrimitiveType() || (k >= KwIf && k <= KwFalse) }

// IsTrivia reports whether k is whitespace, a newline, or a comment —
// tokens the parser's TokenStream skips via NextNonWhitespace.
func (k Kind) IsTrivia() bool { return k >= Whitespace && k <= DocComment }

var kindNames = map[Kind]string{
	Eof:              "Eof",
	Identifier:       "Identifier",
	KwI8:             "i8", KwI16: "i16", KwI32: "i32", KwI64: "i64",
	KwU8: "u8", KwU16: "u16", KwU32: "u32", KwU64: "u64",
	KwF32: "f32", KwF64: "f64", KwBool: "bool", KwChar: "char", KwStr: "str",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwFor: "for", KwIn: "in",
	KwLoop: "loop", KwMatch: "match", KwReturn: "return", KwBreak: "break",
	KwContinue: "continue", KwAwait: "await",
	KwFn: "fn", KwStruct: "struct", KwEnum: "enum", KwTrait: "trait",
	KwImpl: "impl", KwUnion: "union", KwModule: "module", KwUse: "use",
	KwRedirect: "redirect",
	KwMut:      "mut", KwConst: "const", KwExtern: "extern", KwStatic: "static",
	KwThreadLocal: "thread_local", KwPub: "pub", KwAsync: "async",
	KwUnsafe: "unsafe", KwFast: "fast",
	KwThis: "this", KwAs: "as", KwTrue: "true", KwFalse: "false",
	LiteralDecimal: "LiteralDecimal", LiteralBinary: "LiteralBinary",
	LiteralOctal: "LiteralOctal", LiteralHex: "LiteralHex",
	LiteralFloat: "LiteralFloat", LiteralString: "LiteralString",
	LiteralCharacter: "LiteralCharacter",
	Plus:             "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	StarStar: "**", Eq: "=", EqEq: "==", Bang: "!", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", Spaceship: "<=>",
	AmpAmp: "&&", PipePipe: "||", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Shl: "<<", Shr: ">>", PlusPlus: "++", MinusMinus: "--",
	ColonEq: ":=", PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=",
	PercentEq: "%=", AmpEq: "&=", PipeEq: "|=", CaretEq: "^=",
	ShlEq: "<<=", ShrEq: ">>=",
	Arrow: "->", DotDot: "..", DotDotEq: "..=", DotDotLt: "..<",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Semicolon: ";",
	Colon: ":", ColonColon: "::", Dot: ".", At: "@", Hash: "#",
	Dollar: "$", Question: "?",
	Whitespace: "Whitespace", Newline: "Newline",
	InlineComment: "InlineComment", BlockComment: "BlockComment",
	DocComment: "DocComment", Error: "Error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Keywords is the authoritative spelling table: identifier lexeme to
// the Kind it denotes. internal/keyword builds its perfect-hash table
// from exactly this map, and its short-lexeme bypass switch is
// hand-expanded from it too — both must stay in lockstep with this
// list, which is why it lives here rather than being duplicated.
var Keywords = map[string]Kind{
	"i8": KwI8, "i16": KwI16, "i32": KwI32, "i64": KwI64,
	"u8": KwU8, "u16": KwU16, "u32": KwU32, "u64": KwU64,
	"f32": KwF32, "f64": KwF64, "bool": KwBool, "char": KwChar, "str": KwStr,
	"if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor, "in": KwIn,
	"loop": KwLoop, "match": KwMatch, "return": KwReturn, "break": KwBreak,
	"continue": KwContinue, "await": KwAwait,
	"fn": KwFn, "struct": KwStruct, "enum": KwEnum, "trait": KwTrait,
	"impl": KwImpl, "union": KwUnion, "module": KwModule, "use": KwUse,
	"redirect": KwRedirect,
	"mut":      KwMut, "const": KwConst, "extern": KwExtern, "static": KwStatic,
	"thread_local": KwThreadLocal, "pub": KwPub, "async": KwAsync,
	"unsafe": KwUnsafe, "fast": KwFast,
	"this": KwThis, "as": KwAs, "true": KwTrue, "false": KwFalse,
}

// Token is a small, uniform record: kind, byte range within its file,
// start location, and byte length. It never carries lexeme text.
type Token struct {
	Kind        Kind
	Range       source.Range
	Start       source.Location
	LengthBytes uint32
}

// IsEmptyRange reports whether the token carries no lexeme (of the
// tokens the lexer produces, only Eof is zero-width).
func (t Token) IsEmptyRange() bool { return t.Range.Start == t.Range.End }

// Lexeme recovers the token's source text from its file's buffer.
func (t Token) Lexeme(src []byte) []byte { return t.Range.Slice(src) }
