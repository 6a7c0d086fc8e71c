package parser

import (
	"strconv"
	"strings"

	"rono/pkg/ast"
	"rono/pkg/diag"
	"rono/pkg/lexer"
	"rono/pkg/token"
)

// parseExpression is the entry point for the full precedence ladder
// described in spec.md §4.2 (lowest to highest): || ; && ; == != ;
// < <= > >= ; + - ; * / % ; unary ! - & * ; postfix chain.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.check(token.Or) {
		pos := p.advance().Pos
		right := p.parseAnd()
		left = &ast.BinaryExpr{ExprBase: ast.NewExprBase(pos), Op: token.Or, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.check(token.And) {
		pos := p.advance().Pos
		right := p.parseEquality()
		left = &ast.BinaryExpr{ExprBase: ast.NewExprBase(pos), Op: token.And, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.check(token.Eq) || p.check(token.NotEq) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{ExprBase: ast.NewExprBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.check(token.Lt) || p.check(token.LtEq) || p.check(token.Gt) || p.check(token.GtEq) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{ExprBase: ast.NewExprBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{ExprBase: ast.NewExprBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.check(token.Star) || p.check(token.Slash) || p.check(token.Percent) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{ExprBase: ast.NewExprBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.Not, token.Minus:
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{ExprBase: ast.NewExprBase(op.Pos), Op: op.Kind, Operand: operand}
	case token.Amp:
		pos := p.advance().Pos
		operand := p.parseUnary()
		return &ast.AddrOf{ExprBase: ast.NewExprBase(pos), Operand: operand}
	case token.Star:
		pos := p.advance().Pos
		operand := p.parseUnary()
		return &ast.Deref{ExprBase: ast.NewExprBase(pos), Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by any number of
// `.field`, `[index]`, `(args)` segments, left-associatively (spec.md §4.6
// "Postfix chains").
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.Dot:
			p.advance()
			fieldTok := p.expect(token.Ident)
			expr = &ast.FieldAccess{ExprBase: ast.NewExprBase(fieldTok.Pos), Object: expr, Field: fieldTok.Lexeme}
		case token.LBracket:
			pos := p.advance().Pos
			idx := p.parseExpression()
			p.expect(token.RBracket)
			expr = &ast.IndexExpr{ExprBase: ast.NewExprBase(pos), Object: expr, Index: idx}
		case token.LParen:
			pos := p.advance().Pos
			var args []ast.Expr
			for !p.check(token.RParen) && !p.check(token.EOF) {
				args = append(args, p.parseExpression())
				if !p.match(token.Comma) {
					break
				}
			}
			p.expect(token.RParen)
			expr = &ast.CallExpr{ExprBase: ast.NewExprBase(pos), Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.Int:
		p.advance()
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.errorf(tok.Pos, "malformed integer literal %q", tok.Lexeme)
		}
		return &ast.IntLit{ExprBase: ast.NewExprBase(tok.Pos), Value: v}
	case token.Float:
		p.advance()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.errorf(tok.Pos, "malformed float literal %q", tok.Lexeme)
		}
		return &ast.FloatLit{ExprBase: ast.NewExprBase(tok.Pos), Value: v}
	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(tok.Pos), Value: true}
	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{ExprBase: ast.NewExprBase(tok.Pos), Value: false}
	case token.KwNil:
		p.advance()
		return &ast.NilLit{ExprBase: ast.NewExprBase(tok.Pos)}
	case token.KwSelf:
		p.advance()
		return &ast.SelfExpr{ExprBase: ast.NewExprBase(tok.Pos)}
	case token.String:
		p.advance()
		return p.parseInterpolatedString(tok)
	case token.LParen:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RParen)
		return inner
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseMapLit()
	case token.Ident:
		p.advance()
		if !p.noCompositeLit && p.check(token.LBrace) {
			return p.parseConstructorLit(tok)
		}
		return &ast.Ident{ExprBase: ast.NewExprBase(tok.Pos), Name: tok.Lexeme}
	default:
		p.errorf(tok.Pos, "unexpected %s in expression", tok.Kind)
		p.advance()
		return &ast.NilLit{ExprBase: ast.NewExprBase(tok.Pos)}
	}
}

func (p *Parser) parseArrayLit() *ast.ArrayLit {
	pos := p.cur().Pos
	elems := p.parseBracketedExprList()
	return &ast.ArrayLit{ExprBase: ast.NewExprBase(pos), Elements: elems}
}

func (p *Parser) parseMapLit() *ast.MapLit {
	pos := p.cur().Pos
	p.expect(token.LBrace)
	lit := &ast.MapLit{ExprBase: ast.NewExprBase(pos)}
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		key := p.parseExpression()
		p.expect(token.Colon)
		value := p.parseExpression()
		lit.Entries = append(lit.Entries, ast.MapEntryExpr{Key: key, Value: value})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return lit
}

func (p *Parser) parseConstructorLit(typeTok token.Token) *ast.ConstructorLit {
	p.expect(token.LBrace)
	lit := &ast.ConstructorLit{ExprBase: ast.NewExprBase(typeTok.Pos), TypeName: typeTok.Lexeme}
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		fname := p.expectIdent()
		p.expect(token.Assign)
		value := p.parseExpression()
		lit.Fields = append(lit.Fields, ast.ConstructorField{Name: fname, Value: value})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return lit
}

// parseInterpolatedString splits a string token's raw lexeme into literal
// and `{expr}` segments, parsing each expression segment with a fresh
// sub-parser over its own token stream (spec.md §4.3). An unmatched `{` is
// a parse error; the lexer leaves braces verbatim specifically so this
// split happens here, at expression-build time.
func (p *Parser) parseInterpolatedString(tok token.Token) *ast.StrLit {
	lit := &ast.StrLit{ExprBase: ast.NewExprBase(tok.Pos)}
	src := tok.Lexeme
	var text strings.Builder
	i := 0
	for i < len(src) {
		ch := src[i]
		if ch == '{' {
			if text.Len() > 0 {
				lit.Segments = append(lit.Segments, ast.StringSegment{Text: text.String()})
				text.Reset()
			}
			depth := 1
			j := i + 1
			for j < len(src) && depth > 0 {
				if src[j] == '{' {
					depth++
				} else if src[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if depth != 0 {
				p.errorf(tok.Pos, "unterminated interpolation in string literal")
				break
			}
			exprSrc := src[i+1 : j]
			expr, subErrs := parseInterpolationExpr(p.file, exprSrc)
			for _, e := range subErrs {
				p.errs = append(p.errs, diag.New(diag.Parse, p.file, tok.Pos.Line, tok.Pos.Col,
					"in string interpolation: %s", e.Message))
			}
			lit.Segments = append(lit.Segments, ast.StringSegment{IsExpr: true, Expr: expr})
			i = j + 1
			continue
		}
		if ch == '}' {
			p.errorf(tok.Pos, "unmatched '}' in string literal")
			i++
			continue
		}
		text.WriteByte(ch)
		i++
	}
	if text.Len() > 0 {
		lit.Segments = append(lit.Segments, ast.StringSegment{Text: text.String()})
	}
	return lit
}

// parseInterpolationExpr lexes and parses a single `{...}` interpolation
// body as a standalone expression, sharing the same grammar used for
// top-level code (spec.md §4.3: "parsed using the same expression
// grammar").
func parseInterpolationExpr(file, exprSrc string) (ast.Expr, []*diag.Error) {
	toks, lexErrs := lexer.Tokenize(file, exprSrc)
	sp := New(file, toks)
	sp.errs = lexErrs
	expr := sp.parseExpression()
	return expr, sp.errs
}
