package parser

import (
	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/token"
)

// parseFunction parses "fn" name "(" params ")" ("->" type)? block.
// A bare signature (body replaced by ";", as inside a trait) uses
// ast.InvalidPayloadID[ast.BlockPayload] for Body.
func (p *Parser) parseFunction(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'fn'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)

	params, ok := p.parseParamList()
	if !ok {
		return ast.NodeID(0), false
	}

	returnType := ast.InvalidNodeID
	if p.peek().Kind == token.Arrow {
		p.advance()
		returnType = p.parseType()
	}

	body := ast.InvalidPayloadID[ast.BlockPayload]()
	if p.peek().Kind == token.Semicolon {
		p.advance()
	} else {
		b, ok := p.parseBlockPayload()
		if !ok {
			return ast.NodeID(0), false
		}
		body = b
	}

	return p.tree.CreateFunction(ast.FunctionPayload{
		Name: name, Params: p.tree.AllocParams(params), ReturnType: returnType, Body: body, Attrs: attrs,
	}), true
}

// parseFieldList parses "{" (attrs? name ":" type ","?)* "}", shared by
// struct and union declarations.
func (p *Parser) parseFieldList() ([]ast.Field, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return nil, false
	}
	var fields []ast.Field
	for p.peek().Kind != token.RBrace {
		fattrs := p.parseStorageAttributes()
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			return nil, false
		}
		name := p.intern(nameTok)
		if _, ok := p.expect(token.Colon); !ok {
			return nil, false
		}
		typ := p.parseType()
		fields = append(fields, ast.Field{Name: name, Type: typ, Attrs: fattrs})
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return nil, false
	}
	return fields, true
}

func (p *Parser) parseStruct(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'struct'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)
	fields, ok := p.parseFieldList()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateStruct(ast.StructPayload{Name: name, Fields: p.tree.AllocFields(fields), Attrs: attrs}), true
}

func (p *Parser) parseUnion(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'union'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)
	fields, ok := p.parseFieldList()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateUnion(ast.UnionPayload{Name: name, Fields: p.tree.AllocFields(fields), Attrs: attrs}), true
}

// parseEnumeration parses "enum" name "{" variant ("," variant)* "}",
// dispatching each variant to one of the four EnumVariantKind shapes
// by lookahead on the token following its name.
func (p *Parser) parseEnumeration(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'enum'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)

	if _, ok := p.expect(token.LBrace); !ok {
		return ast.NodeID(0), false
	}

	var variants []ast.EnumVariant
	for p.peek().Kind != token.RBrace {
		vNameTok, ok := p.expect(token.Identifier)
		if !ok {
			return ast.NodeID(0), false
		}
		vName := p.intern(vNameTok)

		variant := ast.EnumVariant{Name: vName, Kind: ast.EnumVariantEmpty, Discriminant: ast.InvalidNodeID}

		switch p.peek().Kind {
		case token.Eq:
			p.advance()
			disc, ok := p.parseBinaryExpression(looseStart)
			if !ok {
				return ast.NodeID(0), false
			}
			variant.Kind = ast.EnumVariantInteger
			variant.Discriminant = disc

		case token.LBrace:
			fields, ok := p.parseFieldList()
			if !ok {
				return ast.NodeID(0), false
			}
			variant.Kind = ast.EnumVariantStructLike
			variant.Fields = p.tree.AllocFields(fields)

		case token.LParen:
			p.advance()
			var types []ast.NodeID
			for p.peek().Kind != token.RParen {
				types = append(types, p.parseType())
				if p.peek().Kind == token.Comma {
					p.advance()
					continue
				}
				break
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NodeID(0), false
			}
			variant.Kind = ast.EnumVariantTupleLike
			variant.TupleTypes = p.tree.AllocNodeRange(types)
		}

		variants = append(variants, variant)
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace); !ok {
		return ast.NodeID(0), false
	}

	return p.tree.CreateEnumeration(ast.EnumerationPayload{
		Name: name, Variants: p.tree.AllocEnumVariants(variants), Attrs: attrs,
	}), true
}

// parseTrait parses "trait" name "{" fn-decl* "}"; each member is a
// KindFunction node, with or without a body.
func (p *Parser) parseTrait(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'trait'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)

	fns, ok := p.parseFunctionBlock()
	if !ok {
		return ast.NodeID(0), false
	}

	return p.tree.CreateTrait(ast.TraitPayload{Name: name, Functions: p.tree.AllocNodeRange(fns), Attrs: attrs}), true
}

// parseImplementation parses "impl" (trait "for")? target "{" fn-def*
// "}". The "trait for" prefix is detected by lookahead: a path
// immediately followed by "for" is the trait being implemented.
func (p *Parser) parseImplementation(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'impl'

	trait := ast.InvalidNodeID
	firstTarget := p.parseType()
	if p.peek().Kind == token.KwFor {
		p.advance()
		trait = firstTarget
		firstTarget = p.parseType()
	}

	fns, ok := p.parseFunctionBlock()
	if !ok {
		return ast.NodeID(0), false
	}

	return p.tree.CreateImplementation(ast.ImplementationPayload{
		Trait: trait, Target: firstTarget, Functions: p.tree.AllocNodeRange(fns), Attrs: attrs,
	}), true
}

// parseFunctionBlock parses "{" fn* "}" where each member is a
// storage-attributed "fn" declaration, shared by trait and impl bodies.
func (p *Parser) parseFunctionBlock() ([]ast.NodeID, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return nil, false
	}
	var fns []ast.NodeID
	for p.peek().Kind != token.RBrace && p.peek().Kind != token.Eof {
		mattrs := p.parseStorageAttributes()
		if p.peek().Kind != token.KwFn {
			p.errorUnexpected("trait/impl body")
			return nil, false
		}
		fn, ok := p.parseFunction(mattrs)
		if !ok {
			return nil, false
		}
		fns = append(fns, fn)
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return nil, false
	}
	return fns, true
}

// parseModule parses "module" name "{" item* "}", reusing the
// top-level item dispatch for its body.
func (p *Parser) parseModule(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'module'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)

	if _, ok := p.expect(token.LBrace); !ok {
		return ast.NodeID(0), false
	}
	var items []ast.NodeID
	for p.peek().Kind != token.RBrace && p.peek().Kind != token.Eof {
		n, ok := p.parseTopLevel()
		if !ok {
			if p.cfg.strict {
				return ast.NodeID(0), false
			}
			p.synchronize()
			continue
		}
		items = append(items, n)
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.NodeID(0), false
	}

	return p.tree.CreateModule(ast.ModulePayload{Name: name, Items: p.tree.AllocNodeRange(items), Attrs: attrs}), true
}

// parseRedirect parses "redirect" name "->" target ";".
func (p *Parser) parseRedirect(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	p.advance() // 'redirect'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	name := p.intern(nameTok)
	if _, ok := p.expect(token.Arrow); !ok {
		return ast.NodeID(0), false
	}
	target, ok := p.parsePathExpr()
	if !ok {
		return ast.NodeID(0), false
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateRedirect(ast.RedirectPayload{Name: name, Target: target, Attrs: attrs}), true
}
