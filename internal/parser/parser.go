// Package parser implements the Picto parser: a recursive-descent
// statement parser with Pratt-style precedence climbing for expressions.
// It consumes the lexer's token stream and produces the raw parse tree of
// package ast; no semantic checking happens here.
package parser

import (
	"strconv"

	"github.com/picto-lang/picto/internal/ast"
	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/lexer"
	"github.com/picto-lang/picto/internal/position"
)

// Operator precedence levels, lowest first. Power is right-associative.
const (
	precLowest   = iota
	precCoalesce // ??
	precOr       // ||
	precAnd      // &&
	precEquality // == !=
	precCompare  // < <= > >=
	precAdditive // + -
	precFactor   // * /
	precPower    // **
	precUnary    // -x !x
)

var precedences = map[lexer.TokenType]int{
	lexer.TokenCoalesce: precCoalesce,
	lexer.TokenOr:       precOr,
	lexer.TokenAnd:      precAnd,
	lexer.TokenEq:       precEquality,
	lexer.TokenNe:       precEquality,
	lexer.TokenLt:       precCompare,
	lexer.TokenLe:       precCompare,
	lexer.TokenGt:       precCompare,
	lexer.TokenGe:       precCompare,
	lexer.TokenPlus:     precAdditive,
	lexer.TokenMinus:    precAdditive,
	lexer.TokenMul:      precFactor,
	lexer.TokenDiv:      precFactor,
	lexer.TokenPower:    precPower,
}

// Parser turns a token stream into a parse tree.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse tokenizes and parses a complete source file.
func Parse(filename, source string) (*ast.Program, error) {
	l := lexer.New(filename, source)
	tokens := l.Tokenize()
	if err := l.Err(); err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) accept(tt lexer.TokenType) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.at(tt) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorf("expected %s, found %s", tt, p.cur())
}

func (p *Parser) errorf(format string, args ...any) error {
	return errors.New(errors.SyntaxError, p.cur().Pos, format, args...)
}

func (p *Parser) skipNewlines() {
	for p.at(lexer.TokenNewline) {
		p.advance()
	}
}

func spanFrom(start position.Position, end lexer.Token) position.Span {
	return position.Span{Start: start, End: end.Pos}
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	start := p.cur().Pos
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.at(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
	return &ast.Program{Span: spanFrom(start, p.cur()), Statements: stmts}, nil
}

// endOfStatement requires a statement terminator: newline, EOF, or a
// closing brace left for the enclosing block to consume.
func (p *Parser) endOfStatement() error {
	switch p.cur().Type {
	case lexer.TokenNewline:
		p.advance()
		return nil
	case lexer.TokenEOF, lexer.TokenRBrace:
		return nil
	}
	return p.errorf("expected end of statement, found %s", p.cur())
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case lexer.TokenVar, lexer.TokenConst:
		return p.parseVarDecl()
	case lexer.TokenFunc:
		return p.parseFuncDecl()
	case lexer.TokenClass:
		return p.parseClassDecl()
	case lexer.TokenStruct:
		return p.parseStructDecl()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenBreak:
		tok := p.advance()
		return &ast.Break{Span: spanFrom(tok.Pos, tok)}, nil
	case lexer.TokenPrint:
		return p.parsePrint()
	}
	return p.parseSimpleStatement()
}

func (p *Parser) parseVarDecl() (ast.Statement, error) {
	kw := p.advance()
	mutable := kw.Type == lexer.TokenVar
	name, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	var typeAnn ast.TypeNode
	if p.accept(lexer.TokenColon) {
		typeAnn, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}
	init, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.VarDecl{
		Span:    spanFrom(kw.Pos, p.cur()),
		Name:    name.Literal,
		Mutable: mutable,
		Type:    typeAnn,
		Init:    init,
	}, nil
}

func (p *Parser) parseFuncDecl() (ast.Statement, error) {
	kw := p.advance()
	name, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.at(lexer.TokenRParen) {
		if len(params) > 0 {
			if _, err := p.expect(lexer.TokenComma); err != nil {
				return nil, err
			}
		}
		pname, err := p.expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		ptype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{
			Span: spanFrom(pname.Pos, p.cur()),
			Name: pname.Literal,
			Type: ptype,
		})
	}
	p.advance() // )
	var returnType ast.TypeNode
	if p.accept(lexer.TokenColon) {
		returnType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{
		Span:       spanFrom(kw.Pos, p.cur()),
		Name:       name.Literal,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}, nil
}

func (p *Parser) parseClassDecl() (ast.Statement, error) {
	kw := p.advance()
	name, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{Span: spanFrom(kw.Pos, p.cur()), Name: name.Literal, Body: body}, nil
}

func (p *Parser) parseStructDecl() (ast.Statement, error) {
	kw := p.advance()
	name, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var fields []ast.Field
	p.skipNewlines()
	for !p.at(lexer.TokenRBrace) {
		if len(fields) > 0 {
			if !p.accept(lexer.TokenComma) {
				break
			}
			p.skipNewlines()
			if p.at(lexer.TokenRBrace) {
				break
			}
		}
		fname, err := p.expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		ftype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{
			Span: spanFrom(fname.Pos, p.cur()),
			Name: fname.Literal,
			Type: ftype,
		})
		p.skipNewlines()
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Span: spanFrom(kw.Pos, p.cur()), Name: name.Literal, Fields: fields}, nil
}

// parseIf parses a ❓ statement. Consecutive ❗❓ clauses right-fold into
// nested alternates; a trailing ❗ block becomes the last link's Else.
func (p *Parser) parseIf() (*ast.If, error) {
	kw := p.advance()
	test, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	consequent, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Span: spanFrom(kw.Pos, p.cur()), Test: test, Consequent: consequent}
	if p.at(lexer.TokenElse) {
		if p.peek().Type == lexer.TokenIf {
			p.advance() // ❗
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.ElseIf = elseIf
		} else {
			p.advance() // ❗
			alt, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Else = alt
		}
	}
	return node, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	kw := p.advance()
	test, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Span: spanFrom(kw.Pos, p.cur()), Test: test, Body: body}, nil
}

// parseFor parses both loop forms. After `in`, a range operator after the
// first expression selects the numeric-range form; otherwise the
// expression is the collection of a for-each.
func (p *Parser) parseFor() (ast.Statement, error) {
	kw := p.advance()
	first, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	iterators := []string{first.Literal}
	for p.accept(lexer.TokenComma) {
		next, err := p.expect(lexer.TokenIdentifier)
		if err != nil {
			return nil, err
		}
		iterators = append(iterators, next.Literal)
	}
	if _, err := p.expect(lexer.TokenIn); err != nil {
		return nil, err
	}
	low, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.at(lexer.TokenClosedRange) || p.at(lexer.TokenHalfRange) {
		op := "..."
		if p.advance().Type == lexer.TokenHalfRange {
			op = "..<"
		}
		if len(iterators) != 1 {
			return nil, p.errorf("a range loop takes exactly one iterator")
		}
		high, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ForRange{
			Span:     spanFrom(kw.Pos, p.cur()),
			Iterator: iterators[0],
			Low:      low,
			Op:       op,
			High:     high,
			Body:     body,
		}, nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForEach{
		Span:       spanFrom(kw.Pos, p.cur()),
		Iterators:  iterators,
		Collection: low,
		Body:       body,
	}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	kw := p.advance()
	node := &ast.Return{Span: spanFrom(kw.Pos, p.cur())}
	switch p.cur().Type {
	case lexer.TokenNewline, lexer.TokenEOF, lexer.TokenRBrace:
		return node, nil
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	node.Value = value
	return node, nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	kw := p.advance()
	var values []ast.Expression
	for {
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if !p.accept(lexer.TokenComma) {
			break
		}
	}
	return &ast.Print{Span: spanFrom(kw.Pos, p.cur()), Values: values}, nil
}

// parseSimpleStatement parses assignments, compound assignments,
// increment/decrement, and call statements: everything that starts with
// an expression.
func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	start := p.cur().Pos
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	switch p.cur().Type {
	case lexer.TokenAssign:
		p.advance()
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Span: spanFrom(start, p.cur()), Target: expr, Value: value}, nil
	case lexer.TokenPlusAssign:
		p.advance()
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		return &ast.AddAssign{Span: spanFrom(start, p.cur()), Target: expr, Value: value}, nil
	case lexer.TokenIncrement:
		p.advance()
		return &ast.Increment{Span: spanFrom(start, p.cur()), Target: expr}, nil
	case lexer.TokenDecrement:
		p.advance()
		return &ast.Decrement{Span: spanFrom(start, p.cur()), Target: expr}, nil
	}
	if _, ok := expr.(*ast.Call); !ok {
		return nil, errors.New(errors.SyntaxError, start, "expression statements must be calls")
	}
	return &ast.ExprStatement{Span: spanFrom(start, p.cur()), Expr: expr}, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	stmts := []ast.Statement{}
	p.skipNewlines()
	for !p.at(lexer.TokenRBrace) && !p.at(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ===== Expressions =====

func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := precedences[p.cur().Type]
		if !ok || prec <= minPrec {
			return left, nil
		}
		op := p.advance()
		// Power is right-associative; everything else binds left.
		nextMin := prec
		if op.Type == lexer.TokenPower {
			nextMin = prec - 1
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Span:  left.GetSpan().Union(right.GetSpan()),
			Op:    op.Type.String(),
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.at(lexer.TokenMinus) || p.at(lexer.TokenNot) {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{
			Span:    position.Span{Start: op.Pos, End: operand.GetSpan().End},
			Op:      op.Type.String(),
			Operand: operand,
		}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case lexer.TokenLParen:
			p.advance()
			var args []ast.Expression
			for !p.at(lexer.TokenRParen) {
				if len(args) > 0 {
					if _, err := p.expect(lexer.TokenComma); err != nil {
						return nil, err
					}
				}
				arg, err := p.parseExpression(precLowest)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			end, _ := p.expect(lexer.TokenRParen)
			expr = &ast.Call{
				Span:   position.Span{Start: expr.GetSpan().Start, End: end.Pos},
				Callee: expr,
				Args:   args,
			}
		case lexer.TokenDot, lexer.TokenOptChain:
			op := "."
			if p.advance().Type == lexer.TokenOptChain {
				op = "?."
			}
			field, err := p.expect(lexer.TokenIdentifier)
			if err != nil {
				return nil, err
			}
			expr = &ast.Member{
				Span:   position.Span{Start: expr.GetSpan().Start, End: field.Pos},
				Object: expr,
				Op:     op,
				Field:  field.Literal,
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	span := position.Span{Start: tok.Pos, End: tok.Pos}
	switch tok.Type {
	case lexer.TokenInt:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.IntLit{Span: span, Value: v, Raw: tok.Literal}, nil
	case lexer.TokenFloat:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid float literal %q", tok.Literal)
		}
		return &ast.FloatLit{Span: span, Value: v, Raw: tok.Literal}, nil
	case lexer.TokenString:
		p.advance()
		return &ast.StringLit{Span: span, Value: tok.Literal}, nil
	case lexer.TokenTrue, lexer.TokenFalse:
		p.advance()
		return &ast.BoolLit{Span: span, Value: tok.Type == lexer.TokenTrue}, nil
	case lexer.TokenNone:
		p.advance()
		return &ast.NoneLit{Span: span}, nil
	case lexer.TokenIdentifier:
		p.advance()
		return &ast.Identifier{Span: span, Name: tok.Literal}, nil
	case lexer.TokenLParen:
		return p.parseParenOrTuple()
	case lexer.TokenLBracket:
		return p.parseArrayLit()
	case lexer.TokenLBrace:
		return p.parseDictLit()
	}
	return nil, p.errorf("unexpected %s in expression", tok)
}

// parseParenOrTuple parses (expr) as grouping and (e1, e2, ...) as a tuple.
func (p *Parser) parseParenOrTuple() (ast.Expression, error) {
	open := p.advance()
	first, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenComma) {
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return first, nil
	}
	elements := []ast.Expression{first}
	for p.accept(lexer.TokenComma) {
		el, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	end, err := p.expect(lexer.TokenRParen)
	if err != nil {
		return nil, err
	}
	return &ast.TupleLit{
		Span:     position.Span{Start: open.Pos, End: end.Pos},
		Elements: elements,
	}, nil
}

func (p *Parser) parseArrayLit() (ast.Expression, error) {
	open := p.advance()
	var elements []ast.Expression
	for !p.at(lexer.TokenRBracket) {
		if len(elements) > 0 {
			if _, err := p.expect(lexer.TokenComma); err != nil {
				return nil, err
			}
		}
		el, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	end, err := p.expect(lexer.TokenRBracket)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLit{
		Span:     position.Span{Start: open.Pos, End: end.Pos},
		Elements: elements,
	}, nil
}

func (p *Parser) parseDictLit() (ast.Expression, error) {
	open := p.advance()
	var keys, values []ast.Expression
	for !p.at(lexer.TokenRBrace) {
		if len(keys) > 0 {
			if _, err := p.expect(lexer.TokenComma); err != nil {
				return nil, err
			}
		}
		k, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	end, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	return &ast.DictLit{
		Span:   position.Span{Start: open.Pos, End: end.Pos},
		Keys:   keys,
		Values: values,
	}, nil
}

// ===== Type annotations =====

func (p *Parser) parseType() (ast.TypeNode, error) {
	base, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.TokenQuestion) {
		q := p.advance()
		base = &ast.OptionalType{
			Span: position.Span{Start: base.GetSpan().Start, End: q.Pos},
			Base: base,
		}
	}
	return base, nil
}

func (p *Parser) parseBaseType() (ast.TypeNode, error) {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenIdentifier:
		p.advance()
		return &ast.NamedType{Span: position.Span{Start: tok.Pos, End: tok.Pos}, Name: tok.Literal}, nil
	case lexer.TokenLBracket:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.TokenRBracket)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Span: position.Span{Start: tok.Pos, End: end.Pos}, Element: elem}, nil
	case lexer.TokenLBrace:
		p.advance()
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.TokenRBrace)
		if err != nil {
			return nil, err
		}
		return &ast.DictType{Span: position.Span{Start: tok.Pos, End: end.Pos}, Key: key, Value: value}, nil
	case lexer.TokenLParen:
		p.advance()
		var params []ast.TypeNode
		for !p.at(lexer.TokenRParen) {
			if len(params) > 0 {
				if _, err := p.expect(lexer.TokenComma); err != nil {
					return nil, err
				}
			}
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenArrow); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.FuncType{
			Span:   position.Span{Start: tok.Pos, End: p.cur().Pos},
			Params: params,
			Return: ret,
		}, nil
	}
	return nil, p.errorf("expected a type, found %s", tok)
}
