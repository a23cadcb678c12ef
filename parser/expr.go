package parser

import (
	"github.com/vellum-lang/vellum/ast"
	"github.com/vellum-lang/vellum/diag"
	"github.com/vellum-lang/vellum/token"
)

// parseExpression is the single entry point for expression grammar. It
// first checks for a leading range operator (".." "..=" "..<" with no
// start operand), then defers to the binary-expression climb, then
// checks for a trailing range operator — ranges sit outside the 15
// level precedence table and are layered on top of it.
func (p *Parser) parseExpression() (ast.NodeID, bool) {
	if rk, ok := rangeOpKind(p.peek().Kind); ok {
		p.advance()
		end := ast.InvalidNodeID
		if isExprStart(p.peek().Kind) {
			e, ok := p.parseBinaryExpression(looseStart)
			if !ok {
				return e, false
			}
			end = e
		}
		return p.tree.CreateRange(ast.RangePayload{Kind: rk, Start: ast.InvalidNodeID, End: end}), true
	}

	lhs, ok := p.parseBinaryExpression(looseStart)
	if !ok {
		return lhs, false
	}

	if rk, ok := rangeOpKind(p.peek().Kind); ok {
		p.advance()
		end := ast.InvalidNodeID
		if isExprStart(p.peek().Kind) {
			e, ok := p.parseBinaryExpression(looseStart)
			if !ok {
				return e, false
			}
			end = e
		}
		return p.tree.CreateRange(ast.RangePayload{Kind: rk, Start: lhs, End: end}), true
	}

	return lhs, true
}

func rangeOpKind(k token.Kind) (ast.RangeKind, bool) {
	switch k {
	case token.DotDot:
		return ast.RangeExclusive, true
	case token.DotDotEq:
		return ast.RangeInclusive, true
	case token.DotDotLt:
		return ast.RangeUntil, true
	}
	return 0, false
}

// parseBinaryExpression is the precedence-climbing core: parse one
// unary expression, then repeatedly consume an operator whose level is
// tight enough to bind at minPrecedence, recursing into its right-hand
// side at the level dictated by that operator's associativity.
func (p *Parser) parseBinaryExpression(minPrecedence int) (ast.NodeID, bool) {
	lhs, ok := p.parseUnaryExpression()
	if !ok {
		return lhs, false
	}

	for {
		info, isOp := binaryOps[p.peek().Kind]
		if !isOp || info.level > minPrecedence {
			return lhs, true
		}
		opTok := p.advance()

		nextMin := info.level - 1
		if info.rightAssoc {
			nextMin = info.level
		}
		rhs, ok := p.parseBinaryExpression(nextMin)
		if !ok {
			return lhs, false
		}
		lhs = p.tree.CreateBinaryOp(ast.BinaryOpPayload{Op: opTok.Kind, Lhs: lhs, Rhs: rhs})
	}
}

// parseUnaryExpression handles level-2 prefix unary operators, which
// form a right-associative stack wrapped around the level-1 postfix
// chain and its primary.
func (p *Parser) parseUnaryExpression() (ast.NodeID, bool) {
	if prefixOps[p.peek().Kind] {
		opTok := p.advance()
		operand, ok := p.parseUnaryExpression()
		if !ok {
			return operand, false
		}
		return p.tree.CreateUnaryOp(ast.UnaryOpPayload{Op: opTok.Kind, Operand: operand, Postfix: false}), true
	}
	return p.parsePostfixExpression()
}

func (p *Parser) parsePostfixExpression() (ast.NodeID, bool) {
	primary, ok := p.parsePrimary()
	if !ok {
		return primary, false
	}
	return p.parsePostfixChain(primary, !p.inCondition)
}

// parsePostfixChain implements level 1: postfix ++/--, call, index,
// field/method access, macro call, "->await", and (when allowConstruct)
// a trailing struct-construct brace.
func (p *Parser) parsePostfixChain(primary ast.NodeID, allowConstruct bool) (ast.NodeID, bool) {
	for {
		switch p.peek().Kind {
		case token.PlusPlus, token.MinusMinus:
			opTok := p.advance()
			primary = p.tree.CreateUnaryOp(ast.UnaryOpPayload{Op: opTok.Kind, Operand: primary, Postfix: true})

		case token.LParen:
			args, ok := p.parseArgList()
			if !ok {
				return primary, false
			}
			primary = p.tree.CreateFunctionCall(ast.FunctionCallPayload{Callee: primary, Args: args})

		case token.Hash:
			if p.peekAt(1).Kind != token.LParen {
				return primary, true
			}
			p.advance()
			args, ok := p.parseArgList()
			if !ok {
				return primary, false
			}
			primary = p.tree.CreateFunctionMacroCall(ast.FunctionMacroCallPayload{Callee: primary, Args: args})

		case token.LBracket:
			p.advance()
			idx, ok := p.parseExpression()
			if !ok {
				return primary, false
			}
			if _, ok := p.expect(token.RBracket); !ok {
				return primary, false
			}
			primary = p.tree.CreateIndex(ast.IndexPayload{Target: primary, Index: idx})

		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Identifier)
			if !ok {
				return primary, false
			}
			name := p.intern(nameTok)
			switch {
			case p.peek().Kind == token.LParen:
				args, ok := p.parseArgList()
				if !ok {
					return primary, false
				}
				primary = p.tree.CreateMethodCall(ast.MethodCallPayload{Receiver: primary, Name: name, Args: args})
			case p.peek().Kind == token.Hash && p.peekAt(1).Kind == token.LParen:
				p.advance()
				args, ok := p.parseArgList()
				if !ok {
					return primary, false
				}
				primary = p.tree.CreateMethodMacroCall(ast.MethodMacroCallPayload{Receiver: primary, Name: name, Args: args})
			default:
				primary = p.tree.CreateFieldAccess(ast.FieldAccessPayload{Target: primary, Name: name})
			}

		case token.Arrow:
			if p.peekAt(1).Kind != token.KwAwait {
				return primary, true
			}
			p.advance()
			p.advance()
			primary = p.tree.CreateAwait(ast.AwaitPayload{Target: primary})

		case token.LBrace:
			if !allowConstruct {
				return primary, true
			}
			node, ok := p.parseConstructTail(primary)
			if !ok {
				return primary, false
			}
			primary = node

		case token.Bang, token.Tilde:
			// Unlike Plus/Minus, these never double as binary operators, so
			// seeing one here is unambiguously a prefix-only operator used in
			// postfix position rather than the start of the next expression.
			opTok := p.advance()
			p.report(diag.CannotBePostfixOperator, opTok.Range, "operator "+opTok.Kind.String()+" cannot be used as a postfix operator")

		default:
			return primary, true
		}
	}
}

func (p *Parser) parseArgList() (ast.NodeRange, bool) {
	p.advance() // '(' or the '(' following '#'
	var args []ast.NodeID
	for p.peek().Kind != token.RParen {
		arg, ok := p.parseExpression()
		if !ok {
			return ast.NodeRange{}, false
		}
		args = append(args, arg)
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen); !ok {
		return ast.NodeRange{}, false
	}
	return p.tree.AllocNodeRange(args), true
}

func (p *Parser) parseConstructTail(target ast.NodeID) (ast.NodeID, bool) {
	p.advance() // '{'
	var fields []ast.FieldInit
	for p.peek().Kind != token.RBrace {
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			return ast.NodeID(0), false
		}
		name := p.intern(nameTok)
		if _, ok := p.expect(token.Colon); !ok {
			return ast.NodeID(0), false
		}
		val, ok := p.parseExpression()
		if !ok {
			return ast.NodeID(0), false
		}
		fields = append(fields, ast.FieldInit{Name: name, Value: val})
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateConstruct(ast.ConstructPayload{Target: target, Fields: p.tree.AllocFieldInits(fields)}), true
}

// parseCondition parses an expression with struct-construct brace
// disambiguation suppressed, per the primary-dispatch rule that "{"
// after a path is a Construct expression only outside if/while/for
// conditions.
func (p *Parser) parseCondition() (ast.NodeID, bool) {
	prev := p.inCondition
	p.inCondition = true
	expr, ok := p.parseExpression()
	p.inCondition = prev
	return expr, ok
}

func (p *Parser) parsePrimary() (ast.NodeID, bool) {
	t := p.peek()

	switch {
	case t.Kind.IsLiteral() || t.Kind == token.KwTrue || t.Kind == token.KwFalse:
		p.advance()
		return p.tree.CreateLiteral(ast.LiteralPayload{Kind: t.Kind, LexemeRange: t.Range}), true
	}

	switch t.Kind {
	case token.LBracket:
		if offset, ok := p.findMatchingDepth(token.LBracket, token.RBracket); ok && p.peekN(offset).Kind == token.LParen {
			return p.parseClosure(true)
		}
		return p.parseArrayLiteral()

	case token.LParen:
		if offset, ok := p.findMatchingDepth(token.LParen, token.RParen); ok && p.peekN(offset).Kind == token.LBrace {
			return p.parseClosure(false)
		}
		return p.parseGroupedOrTuple()

	case token.Identifier, token.ColonColon:
		return p.parsePathExpr()

	case token.LBrace:
		return p.parseBlockExpr()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwWhile:
		return p.parseWhileExpr()
	case token.KwFor:
		return p.parseForExpr()
	case token.KwLoop:
		return p.parseLoopExpr()
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwUnsafe:
		return p.parseUnsafeExpr()
	case token.KwFast:
		return p.parseFastExpr()
	case token.KwConst:
		return p.parseConstBlockExpr()
	case token.KwReturn:
		return p.parseReturnExpr()
	case token.KwBreak:
		return p.parseBreakExpr()
	case token.KwContinue:
		p.advance()
		return p.tree.CreateContinue(ast.ContinuePayload{}), true
	}

	p.errorUnexpected("expression")
	return ast.NodeID(0), false
}

// findMatchingDepth assumes p.peek() is openKind and scans forward
// (without consuming) for the matching closeKind, returning the
// non-trivia-token offset of the token immediately after it.
func (p *Parser) findMatchingDepth(openKind, closeKind token.Kind) (afterClose int, ok bool) {
	depth := 0
	k := 0
	for {
		t := p.peekN(k)
		if t.Kind == token.Eof {
			return 0, false
		}
		switch t.Kind {
		case openKind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return k + 1, true
			}
		}
		k++
	}
}

func (p *Parser) parseGroupedOrTuple() (ast.NodeID, bool) {
	p.advance() // '('
	if p.peek().Kind == token.RParen {
		p.advance()
		return p.tree.CreateTuple(ast.TuplePayload{Elements: p.tree.AllocNodeRange(nil)}), true
	}

	first, ok := p.parseExpression()
	if !ok {
		return first, false
	}

	if p.peek().Kind != token.Comma {
		if _, ok := p.expect(token.RParen); !ok {
			return ast.NodeID(0), false
		}
		return p.tree.CreateGrouped(ast.GroupedPayload{Inner: first}), true
	}

	elems := []ast.NodeID{first}
	for p.peek().Kind == token.Comma {
		p.advance()
		if p.peek().Kind == token.RParen {
			break
		}
		n, ok := p.parseExpression()
		if !ok {
			return ast.NodeID(0), false
		}
		elems = append(elems, n)
	}
	if _, ok := p.expect(token.RParen); !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateTuple(ast.TuplePayload{Elements: p.tree.AllocNodeRange(elems)}), true
}

func (p *Parser) parseArrayLiteral() (ast.NodeID, bool) {
	p.advance() // '['
	var elems []ast.NodeID
	repeat := ast.InvalidNodeID

	if p.peek().Kind != token.RBracket {
		first, ok := p.parseExpression()
		if !ok {
			return ast.NodeID(0), false
		}
		elems = append(elems, first)

		if p.peek().Kind == token.Semicolon {
			p.advance()
			count, ok := p.parseExpression()
			if !ok {
				return ast.NodeID(0), false
			}
			repeat = count
		} else {
			for p.peek().Kind == token.Comma {
				p.advance()
				if p.peek().Kind == token.RBracket {
					break
				}
				n, ok := p.parseExpression()
				if !ok {
					return ast.NodeID(0), false
				}
				elems = append(elems, n)
			}
		}
	}

	if _, ok := p.expect(token.RBracket); !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateArray(ast.ArrayPayload{Elements: p.tree.AllocNodeRange(elems), Repeat: repeat}), true
}

func (p *Parser) parseClosure(hasCaptures bool) (ast.NodeID, bool) {
	var captures []ast.Capture
	if hasCaptures {
		p.advance() // '['
		for p.peek().Kind != token.RBracket {
			byRef := false
			if p.peek().Kind == token.Amp {
				p.advance()
				byRef = true
			}
			nameTok, ok := p.expect(token.Identifier)
			if !ok {
				return ast.NodeID(0), false
			}
			captures = append(captures, ast.Capture{Name: p.intern(nameTok), ByRef: byRef})
			if p.peek().Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(token.RBracket); !ok {
			return ast.NodeID(0), false
		}
	}

	params, ok := p.parseParamList()
	if !ok {
		return ast.NodeID(0), false
	}

	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}

	return p.tree.CreateClosure(ast.ClosurePayload{
		Captures: p.tree.AllocCaptures(captures),
		Params:   p.tree.AllocParams(params),
		Body:     body,
	}), true
}

// parseParamList parses "(" (ident (":" type)? ("," ...)*)? ")" and
// returns the raw Param slice; callers store it into whichever
// PayloadRange[Param] their declaration kind needs.
func (p *Parser) parseParamList() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	var params []ast.Param
	for p.peek().Kind != token.RParen {
		attrs := p.parseStorageAttributes() // "mut" on a by-value param, etc.
		_ = attrs
		nameTok, ok := p.expect(token.Identifier)
		if !ok {
			return nil, false
		}
		typ := ast.InvalidNodeID
		if p.peek().Kind == token.Colon {
			p.advance()
			typ = p.parseType()
		}
		params = append(params, ast.Param{Name: p.intern(nameTok), Type: typ})
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseBlockPayload() (ast.PayloadID[ast.BlockPayload], bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return ast.PayloadID[ast.BlockPayload](0), false
	}
	var stmts []ast.NodeID
	for p.peek().Kind != token.RBrace && p.peek().Kind != token.Eof {
		n, ok := p.parseTopLevel()
		if !ok {
			if p.cfg.strict {
				return ast.PayloadID[ast.BlockPayload](0), false
			}
			p.synchronize()
			continue
		}
		stmts = append(stmts, n)
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.PayloadID[ast.BlockPayload](0), false
	}
	return p.tree.AllocBlock(ast.BlockPayload{Statements: p.tree.AllocNodeRange(stmts)}), true
}

func (p *Parser) parseBlockExpr() (ast.NodeID, bool) {
	id, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateBlockNode(id), true
}

func (p *Parser) parseIfExpr() (ast.NodeID, bool) {
	var branches []ast.IfBranch
	for {
		p.advance() // 'if'
		cond, ok := p.parseCondition()
		if !ok {
			return ast.NodeID(0), false
		}
		block, ok := p.parseBlockPayload()
		if !ok {
			return ast.NodeID(0), false
		}
		branches = append(branches, ast.IfBranch{Condition: cond, Block: block})

		if p.peek().Kind != token.KwElse {
			break
		}
		p.advance()
		if p.peek().Kind == token.KwIf {
			continue
		}
		block, ok = p.parseBlockPayload()
		if !ok {
			return ast.NodeID(0), false
		}
		branches = append(branches, ast.IfBranch{Condition: ast.InvalidNodeID, Block: block})
		break
	}
	return p.tree.CreateIf(ast.IfPayload{Branches: p.tree.AllocIfBranches(branches)}), true
}

func (p *Parser) parseWhileExpr() (ast.NodeID, bool) {
	p.advance()
	cond, ok := p.parseCondition()
	if !ok {
		return ast.NodeID(0), false
	}
	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateWhile(ast.WhilePayload{Condition: cond, Body: body}), true
}

func (p *Parser) parseForExpr() (ast.NodeID, bool) {
	p.advance() // 'for'
	nameTok, ok := p.expect(token.Identifier)
	if !ok {
		return ast.NodeID(0), false
	}
	iterName := p.intern(nameTok)
	if _, ok := p.expect(token.Colon); !ok {
		return ast.NodeID(0), false
	}
	rangeExpr, ok := p.parseCondition()
	if !ok {
		return ast.NodeID(0), false
	}
	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateFor(ast.ForPayload{Iterator: iterName, Range: rangeExpr, Body: body}), true
}

func (p *Parser) parseLoopExpr() (ast.NodeID, bool) {
	p.advance()
	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateLoop(ast.LoopPayload{Body: body}), true
}

func (p *Parser) parseUnsafeExpr() (ast.NodeID, bool) {
	p.advance()
	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateUnsafe(ast.UnsafePayload{Body: body}), true
}

func (p *Parser) parseFastExpr() (ast.NodeID, bool) {
	p.advance()
	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateFast(ast.FastPayload{Body: body}), true
}

func (p *Parser) parseConstBlockExpr() (ast.NodeID, bool) {
	p.advance()
	body, ok := p.parseBlockPayload()
	if !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateConstBlock(ast.ConstBlockPayload{Body: body}), true
}

// parseMatchExpr parses "match" scrutinee "{" (pattern ("if" guard)?
// "->" body ","?)* "}". Vellum reuses "->" (rather than inventing a
// distinct fat-arrow token) as the pattern/body separator, matching
// how the same token already introduces a function's return type.
func (p *Parser) parseMatchExpr() (ast.NodeID, bool) {
	p.advance() // 'match'
	scrutinee, ok := p.parseCondition()
	if !ok {
		return ast.NodeID(0), false
	}
	if _, ok := p.expect(token.LBrace); !ok {
		return ast.NodeID(0), false
	}

	var arms []ast.MatchArm
	for p.peek().Kind != token.RBrace && p.peek().Kind != token.Eof {
		pattern, ok := p.parseBinaryExpression(looseStart)
		if !ok {
			return ast.NodeID(0), false
		}
		guard := ast.InvalidNodeID
		if p.peek().Kind == token.KwIf {
			p.advance()
			g, ok := p.parseBinaryExpression(looseStart)
			if !ok {
				return ast.NodeID(0), false
			}
			guard = g
		}
		if _, ok := p.expect(token.Arrow); !ok {
			return ast.NodeID(0), false
		}
		body, ok := p.parseExpression()
		if !ok {
			return ast.NodeID(0), false
		}
		arms = append(arms, ast.MatchArm{Pattern: pattern, Guard: guard, Body: body})
		if p.peek().Kind == token.Comma {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return ast.NodeID(0), false
	}
	return p.tree.CreateMatch(ast.MatchPayload{Scrutinee: scrutinee, Arms: p.tree.AllocMatchArms(arms)}), true
}

func (p *Parser) parseReturnExpr() (ast.NodeID, bool) {
	p.advance()
	val := ast.InvalidNodeID
	if p.peek().Kind != token.Semicolon && isExprStart(p.peek().Kind) {
		v, ok := p.parseExpression()
		if !ok {
			return ast.NodeID(0), false
		}
		val = v
	}
	return p.tree.CreateReturn(ast.ReturnPayload{Value: val}), true
}

func (p *Parser) parseBreakExpr() (ast.NodeID, bool) {
	p.advance()
	val := ast.InvalidNodeID
	if p.peek().Kind != token.Semicolon && isExprStart(p.peek().Kind) {
		v, ok := p.parseExpression()
		if !ok {
			return ast.NodeID(0), false
		}
		val = v
	}
	return p.tree.CreateBreak(ast.BreakPayload{Value: val}), true
}
