package parser

import (
	"rono/pkg/ast"
	"rono/pkg/token"
)

func (p *Parser) parseBlock() *ast.Block {
	pos := p.cur().Pos
	p.expect(token.LBrace)
	blk := &ast.Block{}
	blk.Pos_ = pos
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		before := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		if p.pos == before {
			// guard against infinite loops on unconsumed malformed input
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return blk
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.KwVar, token.KwLet:
		return p.parseVarDecl()
	case token.KwList:
		return p.parseListDecl()
	case token.KwArray:
		return p.parseArrayDecl()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwRet:
		return p.parseReturn()
	case token.KwBreak:
		pos := p.advance().Pos
		p.skipOptSemi()
		return &ast.Break{StmtBase: ast.NewStmtBase(pos)}
	case token.KwContinue:
		pos := p.advance().Pos
		p.skipOptSemi()
		return &ast.Continue{StmtBase: ast.NewStmtBase(pos)}
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return nil
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement handles an expression statement or an assignment,
// distinguished by whether '=' follows the parsed lvalue candidate.
func (p *Parser) parseSimpleStatement() ast.Stmt {
	pos := p.cur().Pos
	expr := p.parseExpression()
	if p.match(token.Assign) {
		value := p.parseExpression()
		p.skipOptSemi()
		return &ast.Assign{StmtBase: ast.NewStmtBase(pos), Target: expr, Value: value}
	}
	p.skipOptSemi()
	return &ast.ExprStmt{StmtBase: ast.NewStmtBase(pos), X: expr}
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.cur().Pos
	mutable := p.cur().Kind == token.KwVar
	p.advance()
	name := p.expectIdent()
	var declType ast.Type
	if p.match(token.Colon) {
		declType = p.parseType()
	}
	var value ast.Expr
	if p.match(token.Assign) {
		value = p.parseExpression()
	}
	p.skipOptSemi()
	return &ast.VarDecl{StmtBase: ast.NewStmtBase(pos), Name: name, Type: declType, Value: value, Mutable: mutable}
}

func (p *Parser) parseListDecl() *ast.ListDecl {
	pos := p.cur().Pos
	p.expect(token.KwList)
	name := p.expectIdent()
	p.expect(token.Colon)
	declType := p.parseType()
	listType, ok := declType.(ast.ListType)
	if !ok {
		p.errorf(pos, "list declaration requires a T[] type, found %s", declType)
	}
	decl := &ast.ListDecl{StmtBase: ast.NewStmtBase(pos), Name: name, ElemType: listType.Elem}
	if p.match(token.Assign) {
		decl.Elements = p.parseBracketedExprList()
	}
	p.skipOptSemi()
	return decl
}

func (p *Parser) parseArrayDecl() *ast.ArrayDecl {
	pos := p.cur().Pos
	p.expect(token.KwArray)
	name := p.expectIdent()
	p.expect(token.Colon)
	declType := p.parseType()
	arrType, ok := declType.(ast.ArrayType)
	if !ok {
		p.errorf(pos, "array declaration requires a T[N] type, found %s", declType)
	}
	decl := &ast.ArrayDecl{StmtBase: ast.NewStmtBase(pos), Name: name, ElemType: arrType.Elem, Size: arrType.Size}
	if p.match(token.Assign) {
		decl.Elements = p.parseBracketedExprList()
	}
	p.skipOptSemi()
	return decl
}

// parseBracketedExprList parses `[ e1, e2, ... ]`.
func (p *Parser) parseBracketedExprList() []ast.Expr {
	p.expect(token.LBracket)
	var elems []ast.Expr
	for !p.check(token.RBracket) && !p.check(token.EOF) {
		elems = append(elems, p.parseExpression())
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return elems
}

func (p *Parser) parseIf() *ast.If {
	pos := p.cur().Pos
	p.expect(token.KwIf)
	cond := p.parseConditionExpr()
	then := p.parseBlock()
	n := &ast.If{StmtBase: ast.NewStmtBase(pos), Cond: cond, Then: then}
	if p.match(token.KwElse) {
		if p.check(token.KwIf) {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlock()
		}
	}
	return n
}

func (p *Parser) parseWhile() *ast.While {
	pos := p.cur().Pos
	p.expect(token.KwWhile)
	cond := p.parseConditionExpr()
	body := p.parseBlock()
	return &ast.While{StmtBase: ast.NewStmtBase(pos), Cond: cond, Body: body}
}

// parseConditionExpr parses an expression in a position directly followed
// by a block, suppressing `Ident {` from being read as a constructor
// literal so the opening brace is unambiguously the block's.
func (p *Parser) parseConditionExpr() ast.Expr {
	prev := p.noCompositeLit
	p.noCompositeLit = true
	e := p.parseExpression()
	p.noCompositeLit = prev
	return e
}

func (p *Parser) parseFor() *ast.For {
	pos := p.cur().Pos
	p.expect(token.KwFor)
	p.expect(token.LParen)
	n := &ast.For{StmtBase: ast.NewStmtBase(pos)}
	if !p.check(token.Semicolon) {
		n.Init = p.parseForAssign(true)
	}
	p.expect(token.Semicolon)
	if !p.check(token.Semicolon) {
		n.Cond = p.parseExpression()
	}
	p.expect(token.Semicolon)
	if !p.check(token.RParen) {
		n.Step = p.parseForAssign(false)
	}
	p.expect(token.RParen)
	n.Body = p.parseBlock()
	return n
}

// parseForAssign parses one for-header clause: an explicit `name = expr`,
// or a bare expression accepted as sugar for `name = name <op> rhs` when it
// is a binary expression whose left operand is a plain identifier.
func (p *Parser) parseForAssign(isInit bool) *ast.Assign {
	pos := p.cur().Pos
	if p.check(token.Ident) && p.peekAt(1).Kind == token.Assign {
		name := p.advance()
		p.advance() // '='
		value := p.parseExpression()
		return &ast.Assign{
			StmtBase:        ast.NewStmtBase(pos),
			Target:          &ast.Ident{Name: name.Lexeme},
			Value:           value,
			ImplicitDeclare: isInit,
		}
	}
	expr := p.parseExpression()
	if bin, ok := expr.(*ast.BinaryExpr); ok {
		if id, ok2 := bin.Left.(*ast.Ident); ok2 {
			return &ast.Assign{StmtBase: ast.NewStmtBase(pos), Target: id, Value: expr}
		}
	}
	p.errorf(pos, "malformed for-header clause")
	return &ast.Assign{StmtBase: ast.NewStmtBase(pos), Target: &ast.Ident{Name: "_"}, Value: expr}
}

func (p *Parser) parseSwitch() *ast.Switch {
	pos := p.cur().Pos
	p.expect(token.KwSwitch)
	subject := p.parseConditionExpr()
	sw := &ast.Switch{StmtBase: ast.NewStmtBase(pos), Subject: subject}
	p.expect(token.LBrace)
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		switch p.cur().Kind {
		case token.KwCase:
			p.advance()
			var values []ast.Expr
			values = append(values, p.parseExpression())
			for p.match(token.Comma) {
				values = append(values, p.parseExpression())
			}
			body := p.parseBlock()
			sw.Cases = append(sw.Cases, ast.SwitchCase{Values: values, Body: body})
		case token.KwDefault:
			p.advance()
			body := p.parseBlock()
			sw.Cases = append(sw.Cases, ast.SwitchCase{Body: body, IsDefault: true})
		default:
			p.errorf(p.cur().Pos, "expected case or default, found %s", p.cur().Kind)
			p.synchronize()
		}
	}
	p.expect(token.RBrace)
	return sw
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.cur().Pos
	p.expect(token.KwRet)
	ret := &ast.Return{StmtBase: ast.NewStmtBase(pos)}
	if !p.check(token.Semicolon) && !p.check(token.RBrace) {
		ret.Value = p.parseExpression()
	}
	p.skipOptSemi()
	return ret
}
