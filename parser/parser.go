package parser

import (
	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/intern"
	"github.com/vellum-lang/vellum/source"
	"github.com/vellum-lang/vellum/token"
)

// Config holds the knobs Option functions mutate.
type Config struct {
	strict bool
}

// Option configures a Parser at construction time.
type Option func(*Config)

// Strict puts the parser into strict mode: the first syntax error
// aborts ParseAll instead of synchronizing and continuing. Recovery
// mode (collect every error, synchronize, keep going) is the default.
func Strict() Option { return func(c *Config) { c.strict = true } }

// Parser drives recursive-descent statement/declaration parsing and
// precedence-climbing expression parsing over a TokenStream, building
// the result into an ast.Context.
type Parser struct {
	ts       *TokenStream
	tree     *ast.Context
	interner intern.Interner
	sink     diag.Sink
	file     source.FileRef
	cfg      Config

	hadError bool

	// inCondition is true while parsing an if/while/for condition or a
	// match scrutinee expression, where a trailing "{" starts the construct's body
	// block rather than a struct-construct literal.
	inCondition bool
}

// New creates a Parser over tokens already produced for file. tree may
// be a fresh ast.Context or one shared across files in a build (nodes
// from different files simply interleave in the same arenas — nothing
// about AstContext is per-file).
func New(ts *TokenStream, tree *ast.Context, interner intern.Interner, sink diag.Sink, opts ...Option) *Parser {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{ts: ts, tree: tree, interner: interner, sink: sink, file: ts.File(), cfg: cfg}
}

// Tree returns the ast.Context the parser is building into.
func (p *Parser) Tree() *ast.Context { return p.tree }

// HadError reports whether any diagnostic was reported during parsing.
func (p *Parser) HadError() bool { return p.hadError }

// ParseAll parses every top-level declaration and statement in the
// file, returning their NodeIds in source order. In recovery mode
// (the default) a malformed top-level item is skipped via synchronize
// and parsing continues; in strict mode the first error stops parsing
// immediately, returning whatever was parsed up to that point.
func (p *Parser) ParseAll() []ast.NodeID {
	var items []ast.NodeID
	for {
		p.ts.skipTrivia()
		if p.peek().Kind == token.Eof {
			break
		}
		n, ok := p.parseTopLevel()
		if ok {
			items = append(items, n)
			continue
		}
		if p.cfg.strict {
			break
		}
		p.synchronize()
	}
	return items
}

// --- lookahead helpers ---
//
// Grammar decisions are always made against non-trivia tokens; peek
// walks forward from the cursor skipping trivia without consuming
// anything, and advance consumes through (and including) the next
// non-trivia token. Trivia tokens themselves are never individually
// inspected by grammar code — only NextNonWhitespace-style consumption
// ever crosses them.

func (p *Parser) peekN(n int) token.Token {
	idx := p.ts.pos
	seen := -1
	for {
		t := p.ts.at(idx)
		if !t.Kind.IsTrivia() {
			seen++
			if seen == n {
				return t
			}
		}
		if t.Kind == token.Eof {
			return t
		}
		idx++
	}
}

func (p *Parser) peek() token.Token    { return p.peekN(0) }
func (p *Parser) peekAt(n int) token.Token { return p.peekN(n) }

func (p *Parser) advance() token.Token { return p.ts.NextNonWhitespace() }

func (p *Parser) lexeme(t token.Token) []byte { return t.Lexeme(p.file.Source()) }

func (p *Parser) intern(t token.Token) intern.StringID { return p.interner.Intern(p.lexeme(t)) }

func (p *Parser) report(id diag.ID, rng source.Range, msg string) {
	p.hadError = true
	p.sink.Report(diag.Diagnostic{
		Severity:     diag.SeverityError,
		ID:           id,
		FileID:       p.file.FileID(),
		Range:        rng,
		PrimaryLabel: msg,
	})
}

// expect consumes the current token if it matches kind, else reports
// ExpectedButFound and returns the offending token unconsumed.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.peek().Kind == kind {
		return p.advance(), true
	}
	t := p.peek()
	p.report(diag.ExpectedButFound, t.Range, "expected "+kind.String()+", found "+t.Kind.String())
	return t, false
}

// errorUnexpected reports the current token as unexpected in its
// current grammar position without consuming it.
func (p *Parser) errorUnexpected(context string) {
	t := p.peek()
	p.report(diag.UnexpectedToken, t.Range, "unexpected "+t.Kind.String()+" in "+context)
}

// synchronize discards tokens until a safe resumption point: a ';'
// boundary (consumed), Eof, or the start of a declaration/statement
// keyword (left unconsumed so the next ParseAll iteration dispatches
// on it normally).
func (p *Parser) synchronize() {
	for {
		switch p.peek().Kind {
		case token.Eof:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.KwFn, token.KwStruct, token.KwEnum, token.KwTrait, token.KwImpl,
			token.KwUnion, token.KwModule, token.KwIf, token.KwWhile, token.KwFor,
			token.KwLoop, token.KwMatch, token.KwMut, token.KwPub, token.KwReturn:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseTopLevel() (ast.NodeID, bool) {
	attrs := p.parseStorageAttributes()

	switch p.peek().Kind {
	case token.KwFn:
		return p.parseFunction(attrs)
	case token.KwStruct:
		return p.parseStruct(attrs)
	case token.KwEnum:
		return p.parseEnumeration(attrs)
	case token.KwTrait:
		return p.parseTrait(attrs)
	case token.KwImpl:
		return p.parseImplementation(attrs)
	case token.KwUnion:
		return p.parseUnion(attrs)
	case token.KwModule:
		return p.parseModule(attrs)
	case token.KwUse:
		return p.parseUseStatement()
	case token.KwRedirect:
		return p.parseRedirect(attrs)
	case token.Hash:
		return p.parseAttributeStatement()
	default:
		return p.parseStatement(attrs)
	}
}

var storageAttrKinds = map[token.Kind]ast.StorageAttributes{
	token.KwMut:          ast.AttrMutable,
	token.KwConst:        ast.AttrConstant,
	token.KwExtern:       ast.AttrExtern,
	token.KwStatic:       ast.AttrStatic,
	token.KwThreadLocal:  ast.AttrThreadLocal,
	token.KwPub:          ast.AttrPublic,
	token.KwAsync:        ast.AttrAsync,
	token.KwUnsafe:       ast.AttrUnsafe,
	token.KwFast:         ast.AttrFast,
}

// parseStorageAttributes consumes a run of modifier/visibility
// keywords and folds them into one bitset, diagnosing any mutually
// inconsistent combination (invariant I4) once the whole run is read.
func (p *Parser) parseStorageAttributes() ast.StorageAttributes {
	start := p.peek().Range
	var attrs ast.StorageAttributes
	for {
		k := p.peek().Kind
		bit, ok := storageAttrKinds[k]
		if !ok {
			break
		}
		// "unsafe"/"fast" double as block-expression keywords
		// (unsafe { ... }, fast { ... } used as a value). Only
		// treat them as modifiers when not immediately starting
		// such a block, so "unsafe { ... }" as a statement still
		// reaches parsePrimary's block-expression dispatch.
		if (k == token.KwUnsafe || k == token.KwFast) && p.peekAt(1).Kind == token.LBrace {
			break
		}
		p.advance()
		attrs |= bit
	}
	if attrs.Conflicts() {
		p.report(diag.ConflictingStorageAttributes, start, "conflicting storage attributes")
	}
	return attrs
}
