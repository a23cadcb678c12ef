package parser

import (
	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/intern"
	"github.com/vellum-lang/vellum/token"
)

var assignOps = map[token.Kind]bool{
	token.ColonEq: true, token.Eq: true, token.PlusEq: true, token.MinusEq: true,
	token.StarEq: true, token.SlashEq: true, token.PercentEq: true, token.AmpEq: true,
	token.PipeEq: true, token.CaretEq: true, token.ShlEq: true, token.ShrEq: true,
}

// looksLikeAssignTarget reports whether the upcoming tokens match the
// "ident (':' type)? assign-op" shape the statement grammar reserves
// for variable declaration/assignment, as opposed to an expression
// statement that merely starts with an identifier (a bare call, a
// path used as a value, ...).
func (p *Parser) looksLikeAssignTarget() bool {
	if p.peek().Kind != token.Identifier {
		return false
	}
	next := p.peekAt(1).Kind
	if next == token.Colon || assignOps[next] {
		return true
	}
	return false
}

func (p *Parser) parseStatement(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	if p.looksLikeAssignTarget() {
		return p.parseAssignStatement(attrs)
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseAssignStatement(attrs ast.StorageAttributes) (ast.NodeID, bool) {
	nameTok := p.advance()
	name := p.intern(nameTok)
	segs := p.tree.AllocStringRange([]intern.StringID{name})
	target := p.tree.CreatePath(ast.PathPayload{Segments: segs})

	declaredType := ast.InvalidNodeID
	if p.peek().Kind == token.Colon {
		p.advance()
		declaredType = p.parseType()
	}

	opTok := p.peek()
	if !assignOps[opTok.Kind] {
		p.report(diag.InvalidAssignmentOperator, opTok.Range, "expected assignment operator")
		return ast.NodeID(0), false
	}
	p.advance()

	value, ok := p.parseExpression()
	if !ok {
		return ast.NodeID(0), false
	}

	if _, ok := p.expect(token.Semicolon); !ok {
		return ast.NodeID(0), false
	}

	node := p.tree.CreateAssignStatement(ast.AssignStatementPayload{
		Target: target, DeclaredType: declaredType, Op: opTok.Kind, Value: value, Attrs: attrs,
	})
	return node, true
}

func (p *Parser) parseExpressionStatement() (ast.NodeID, bool) {
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NodeID(0), false
	}
	hasSemi := false
	if p.peek().Kind == token.Semicolon {
		p.advance()
		hasSemi = true
	}
	node := p.tree.CreateExpressionStatement(ast.ExpressionStatementPayload{Expr: expr, HasSemicolon: hasSemi})
	return node, true
}

// parseUseStatement handles both "use path;" and
// "use { path, path, ... };".
func (p *Parser) parseUseStatement() (ast.NodeID, bool) {
	p.advance() // 'use'

	var paths []ast.NodeID
	if p.peek().Kind == token.LBrace {
		p.advance()
		for {
			pathNode, ok := p.parsePathExpr()
			if !ok {
				return ast.NodeID(0), false
			}
			paths = append(paths, pathNode)
			if p.peek().Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(token.RBrace); !ok {
			return ast.NodeID(0), false
		}
	} else {
		pathNode, ok := p.parsePathExpr()
		if !ok {
			return ast.NodeID(0), false
		}
		paths = append(paths, pathNode)
	}

	if _, ok := p.expect(token.Semicolon); !ok {
		return ast.NodeID(0), false
	}

	rng := p.tree.AllocNodeRange(paths)
	return p.tree.CreateUseStatement(ast.UseStatementPayload{Paths: rng}), true
}

// parseAttributeStatement handles "#[attr, attr(args), ...]".
func (p *Parser) parseAttributeStatement() (ast.NodeID, bool) {
	p.advance() // '#'
	if _, ok := p.expect(token.LBracket); !ok {
		return ast.NodeID(0), false
	}

	var uses []ast.AttrUse
	for {
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			return ast.NodeID(0), false
		}
		name := p.intern(nameTok)

		var args []ast.NodeID
		if p.peek().Kind == token.LParen {
			p.advance()
			for p.peek().Kind != token.RParen {
				arg, ok := p.parseExpression()
				if !ok {
					return ast.NodeID(0), false
				}
				args = append(args, arg)
				if p.peek().Kind == token.Comma {
					p.advance()
					continue
				}
				break
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NodeID(0), false
			}
		}

		uses = append(uses, ast.AttrUse{Name: name, Args: p.tree.AllocNodeRange(args)})
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBracket); !ok {
		return ast.NodeID(0), false
	}

	return p.tree.CreateAttributeStatement(ast.AttributeStatementPayload{Attrs: p.tree.AllocAttrUses(uses)}), true
}

// parsePathExpr consumes an optionally-absolute "::"-separated path
// and produces a KindPath node.
func (p *Parser) parsePathExpr() (ast.NodeID, bool) {
	absolute := false
	if p.peek().Kind == token.ColonColon {
		p.advance()
		absolute = true
	}

	firstTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	segs := []intern.StringID{p.intern(firstTok)}

	for p.peek().Kind == token.ColonColon {
		p.advance()
		segTok, ok := p.expect(token.Identifier)
		if !ok {
			return ast.NodeID(0), false
		}
		segs = append(segs, p.intern(segTok))
	}

	rng := p.tree.AllocStringRange(segs)
	return p.tree.CreatePath(ast.PathPayload{Segments: rng, Absolute: absolute}), true
}

// parseType parses a type reference: either a primitive type keyword
// or a general path. Vellum's closed NodeKind set has no distinct type
// node — types are represented as Path nodes, same as value paths.
func (p *Parser) parseType() ast.NodeID {
	if p.peek().Kind.IsPrimitiveType() {
		tok := p.advance()
		seg := p.intern(tok)
		rng := p.tree.AllocStringRange([]intern.StringID{seg})
		return p.tree.CreatePath(ast.PathPayload{Segments: rng})
	}
	n, ok := p.parsePathExpr()
	if !ok {
		return ast.InvalidNodeID
	}
	return n
}
