// Package parser implements a hand-written, single-pass, recursive-descent
// parser over the token stream produced by pkg/lexer. It follows the same
// token-cursor idiom used across the reference lexers/parsers this module
// learns from: a flat token slice, a cursor, and accumulated diagnostics
// rather than panics, so a caller can report every syntax error found in
// one pass instead of stopping at the first.
package parser

import (
	"strconv"

	"rono/pkg/ast"
	"rono/pkg/diag"
	"rono/pkg/lexer"
	"rono/pkg/token"
)

// Parser consumes a token slice and builds an *ast.Program.
type Parser struct {
	file string
	toks []token.Token
	pos  int

	// noCompositeLit suppresses `Ident {` being parsed as a constructor
	// literal while parsing an if/while condition, mirroring how other
	// brace-bodied languages disambiguate the same construct.
	noCompositeLit bool

	errs []*diag.Error
}

// New creates a Parser over an already-lexed token stream.
func New(file string, toks []token.Token) *Parser {
	return &Parser{file: file, toks: toks}
}

// Parse lexes and parses src in one call, returning the diagnostics from
// both phases together (lexer errors first).
func Parse(file, src string) (*ast.Program, []*diag.Error) {
	toks, lexErrs := lexer.Tokenize(file, src)
	p := New(file, toks)
	p.errs = append(p.errs, lexErrs...)
	prog := p.parseProgram()
	return prog, p.errs
}

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs = append(p.errs, diag.New(diag.Parse, p.file, pos.Line, pos.Col, format, args...))
}

// expect consumes a token of kind k or records a diagnostic and returns the
// current token without advancing, so callers can keep building partial AST
// nodes around the error.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorf(p.cur().Pos, "expected %s, found %s", k, p.cur().Kind)
	return p.cur()
}

// expectIdent consumes an identifier and returns its lexeme.
func (p *Parser) expectIdent() string {
	t := p.expect(token.Ident)
	return t.Lexeme
}

// skipOptSemi consumes a trailing statement separator if present; Rono
// statements are not semicolon-mandatory at the lexer level, so the parser
// treats ';' as optional punctuation rather than required.
func (p *Parser) skipOptSemi() {
	for p.match(token.Semicolon) {
	}
}

// synchronize advances past tokens until a likely statement/item boundary,
// so one malformed construct doesn't cascade into dozens of errors.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.KwChif, token.KwFn, token.KwFnFor, token.KwStruct, token.KwImport:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.check(token.EOF) {
		switch p.cur().Kind {
		case token.KwImport:
			prog.Imports = append(prog.Imports, p.parseImport())
		case token.KwStruct:
			prog.Structs = append(prog.Structs, p.parseStructDecl())
		case token.KwFnFor:
			prog.Impls = append(prog.Impls, p.parseImplBlock())
		case token.KwFn:
			prog.Fns = append(prog.Fns, p.parseFnDecl())
		case token.KwChif:
			if prog.Chif != nil {
				p.errorf(p.cur().Pos, "multiple chif entry points in one module")
			}
			prog.Chif = p.parseChifDecl()
		default:
			p.errorf(p.cur().Pos, "unexpected %s at top level", p.cur().Kind)
			p.synchronize()
		}
	}
	return prog
}

func (p *Parser) parseImport() *ast.Import {
	pos := p.cur().Pos
	p.expect(token.KwImport)
	pathTok := p.expect(token.String)
	imp := &ast.Import{Path: pathTok.Lexeme, Pos_: pos}
	if p.match(token.KwAs) {
		imp.Alias = p.expectIdent()
		imp.HasAlias = true
	}
	p.skipOptSemi()
	return imp
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.cur().Pos
	p.expect(token.KwStruct)
	name := p.expectIdent()
	decl := &ast.StructDecl{Name: name, Pos_: pos}
	p.expect(token.LBrace)
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		fname := p.expectIdent()
		p.expect(token.Colon)
		ftype := p.parseType()
		decl.Fields = append(decl.Fields, ast.FieldDecl{Name: fname, Type: ftype})
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return decl
}

func (p *Parser) parseImplBlock() *ast.ImplBlock {
	pos := p.cur().Pos
	p.expect(token.KwFnFor)
	typeName := p.expectIdent()
	block := &ast.ImplBlock{TypeName: typeName, Pos_: pos}
	p.expect(token.LBrace)
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		if !p.check(token.KwFn) {
			p.errorf(p.cur().Pos, "expected fn inside fn_for block, found %s", p.cur().Kind)
			p.synchronize()
			continue
		}
		block.Methods = append(block.Methods, p.parseFnDecl())
	}
	p.expect(token.RBrace)
	return block
}

func (p *Parser) parseFnDecl() *ast.FnDecl {
	pos := p.cur().Pos
	p.expect(token.KwFn)
	name := p.expectIdent()
	fn := &ast.FnDecl{Name: name, Pos_: pos}
	p.expect(token.LParen)
	for !p.check(token.RParen) && !p.check(token.EOF) {
		if p.check(token.KwSelf) {
			p.advance()
			fn.Params = append(fn.Params, ast.Param{Name: "self", IsSelf: true})
		} else {
			pname := p.expectIdent()
			p.expect(token.Colon)
			ptype := p.parseType()
			fn.Params = append(fn.Params, ast.Param{Name: pname, Type: ptype})
		}
		if !p.match(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	if !p.check(token.LBrace) {
		fn.ReturnType = p.parseType()
	}
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseChifDecl() *ast.ChifDecl {
	pos := p.cur().Pos
	p.expect(token.KwChif)
	// the bare word "main" lexes as an ordinary identifier
	if p.check(token.Ident) && p.cur().Lexeme != "main" {
		p.errorf(p.cur().Pos, "entry point must be named main, found %q", p.cur().Lexeme)
	}
	p.expect(token.Ident)
	p.expect(token.LParen)
	p.expect(token.RParen)
	return &ast.ChifDecl{Body: p.parseBlock(), Pos_: pos}
}

// parseType parses the purely syntactic type grammar, including the
// trailing `[]`/`[N]` suffix that turns a base type into a ListType or
// ArrayType (spec.md §3 "AST" Types).
func (p *Parser) parseType() ast.Type {
	var base ast.Type
	switch p.cur().Kind {
	case token.KwInt:
		p.advance()
		base = ast.IntType{}
	case token.KwFloat:
		p.advance()
		base = ast.FloatType{}
	case token.KwBool:
		p.advance()
		base = ast.BoolType{}
	case token.KwStr:
		p.advance()
		base = ast.StrType{}
	case token.KwNil:
		p.advance()
		base = ast.NilType{}
	case token.KwPointer:
		p.advance()
		base = ast.PointerType{}
	case token.KwMap:
		p.advance()
		p.expect(token.LBracket)
		key := p.parseType()
		p.expect(token.Colon)
		val := p.parseType()
		p.expect(token.RBracket)
		base = ast.MapType{Key: key, Value: val}
	case token.Ident:
		base = ast.NamedType{Name: p.advance().Lexeme}
	default:
		p.errorf(p.cur().Pos, "expected type, found %s", p.cur().Kind)
		p.advance()
		return ast.NilType{}
	}

	if p.check(token.LBracket) {
		p.advance()
		if p.check(token.RBracket) {
			p.advance()
			return ast.ListType{Elem: base}
		}
		sizeTok := p.expect(token.Int)
		p.expect(token.RBracket)
		size, err := strconv.Atoi(sizeTok.Lexeme)
		if err != nil {
			p.errorf(sizeTok.Pos, "invalid array size %q", sizeTok.Lexeme)
		}
		return ast.ArrayType{Elem: base, Size: size}
	}
	return base
}
