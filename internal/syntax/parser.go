package syntax

import (
	"fmt"
	"strconv"

	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/pattern"
)

// ParseError is a single parse error, matching the teacher's
// one-struct-per-phase convention.
type ParseError struct {
	Pos     model.Position
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parser parses tine source into a single model.Expr (spec §6's "program
// := expr").
type Parser struct {
	filename string
	tokens   []model.Token
	pos      int
	errors   []ParseError
}

// NewParser lexes source and constructs a Parser over its tokens.
func NewParser(source, filename string) *Parser {
	lexer := NewLexer(source, filename)
	tokens, lexErrs := lexer.Tokenize()
	p := &Parser{filename: filename, tokens: tokens}
	for _, e := range lexErrs {
		p.errors = append(p.errors, ParseError{Pos: e.Pos, Message: e.Message})
	}
	return p
}

// Parse consumes the whole token stream and returns the single expression
// it represents.
func (p *Parser) Parse() (model.Expr, []ParseError) {
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	expr := p.parseExpr()
	if !p.check(model.TK_EOF) {
		p.addError(fmt.Sprintf("unexpected trailing token %s", p.current().Kind))
	}
	return expr, p.errors
}

func (p *Parser) current() model.Token { return p.tokens[p.pos] }

func (p *Parser) advance() model.Token {
	tok := p.current()
	if tok.Kind != model.TK_EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind model.TokenKind) bool { return p.current().Kind == kind }

func (p *Parser) match(kind model.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind model.TokenKind) model.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.addError(fmt.Sprintf("expected %s, got %s", kind, p.current().Kind))
	return p.current()
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, ParseError{Pos: p.current().Pos, Message: msg})
}

// parseExpr is the entry point for any expression: let and fun extend as
// far right as possible, so they are tried before falling into the binary
// operator / application grammar.
func (p *Parser) parseExpr() model.Expr {
	switch p.current().Kind {
	case model.TK_Let:
		return p.parseLet()
	case model.TK_Fun:
		return p.parseFun()
	default:
		return p.parseBinary(precLowest)
	}
}

func (p *Parser) parseLet() model.Expr {
	start := p.expect(model.TK_Let).Pos
	pat := p.parsePattern()
	p.expect(model.TK_Walrus)
	value := p.parseExpr()
	p.expect(model.TK_In)
	body := p.parseExpr()
	return &model.LetIn{
		Pattern:  pat,
		Value:    value,
		Body:     body,
		StartPos: start,
		EndPos:   body.End(),
	}
}

func (p *Parser) parseFun() model.Expr {
	start := p.expect(model.TK_Fun).Pos
	p.expect(model.TK_PathSep)
	paths := []*model.Path{p.parsePath()}
	for p.match(model.TK_PathSep) {
		paths = append(paths, p.parsePath())
	}
	end := start
	if n := len(paths); n > 0 {
		end = paths[n-1].End()
	}
	return &model.FunDef{Paths: paths, StartPos: start, EndPos: end}
}

func (p *Parser) parsePath() *model.Path {
	start := p.current().Pos
	var inputs []pattern.Pattern
	for p.startsPattern() {
		inputs = append(inputs, p.parsePattern())
	}
	p.expect(model.TK_Arrow)
	body := p.parseExpr()
	return &model.Path{
		Input:    inputs,
		Output:   nil,
		Body:     body,
		StartPos: start,
		EndPos:   body.End(),
	}
}

// parseBinary implements left-associative precedence climbing over tine's
// seven binary operators, each desugaring to a Call of the built-in of the
// same name (spec.md §4.F's registered set).
func (p *Parser) parseBinary(minPrec int) model.Expr {
	left := p.parseApplication()
	for isBinaryOperator(p.current().Kind) && precedenceOf(p.current().Kind) > minPrec {
		op := p.advance()
		right := p.parseBinary(precedenceOf(op.Kind))
		left = &model.Call{
			Callee: &model.Var{Name: operatorName(op.Kind), StartPos: op.Pos, EndPos: op.Pos},
			Args:   []model.Expr{left, right},
			EndPos: right.End(),
		}
	}
	return left
}

// parseApplication implements spec §6's "application := atom atom*":
// juxtaposition is n-ary function call.
func (p *Parser) parseApplication() model.Expr {
	callee := p.parseAtom()
	var args []model.Expr
	for p.startsAtom() {
		args = append(args, p.parseAtom())
	}
	if len(args) == 0 {
		return callee
	}
	return &model.Call{Callee: callee, Args: args, EndPos: args[len(args)-1].End()}
}

func (p *Parser) startsAtom() bool {
	switch p.current().Kind {
	case model.TK_Identifier, model.TK_IntLit, model.TK_True, model.TK_False, model.TK_LParen:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAtom() model.Expr {
	tok := p.current()
	switch tok.Kind {
	case model.TK_IntLit:
		p.advance()
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.addError(fmt.Sprintf("invalid integer literal %q", tok.Literal))
		}
		return &model.IntLit{Value: n, StartPos: tok.Pos, EndPos: tok.Pos}
	case model.TK_True:
		p.advance()
		return &model.BoolLit{Value: true, StartPos: tok.Pos, EndPos: tok.Pos}
	case model.TK_False:
		p.advance()
		return &model.BoolLit{Value: false, StartPos: tok.Pos, EndPos: tok.Pos}
	case model.TK_Identifier:
		p.advance()
		return &model.Var{Name: tok.Literal, StartPos: tok.Pos, EndPos: tok.Pos}
	case model.TK_LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(model.TK_RParen)
		return inner
	default:
		p.addError(fmt.Sprintf("unexpected token %s", tok.Kind))
		p.advance()
		return &model.IntLit{Value: 0, StartPos: tok.Pos, EndPos: tok.Pos}
	}
}
