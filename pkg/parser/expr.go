package parser

import (
	"github.com/raymyers/ralph-cst/pkg/cst"
	"github.com/raymyers/ralph-cst/pkg/token"
)

// Operator tables for the left-associative binary levels
var (
	orOps       = map[token.Kind]cst.BinaryOp{token.KindOr: cst.OpOr}
	andOps      = map[token.Kind]cst.BinaryOp{token.KindAnd: cst.OpAnd}
	equalityOps = map[token.Kind]cst.BinaryOp{token.KindEq: cst.OpEq}
	relOps      = map[token.Kind]cst.BinaryOp{
		token.KindLt: cst.OpLt,
		token.KindGt: cst.OpGt,
		token.KindLe: cst.OpLe,
		token.KindGe: cst.OpGe,
	}
	addOps = map[token.Kind]cst.BinaryOp{token.KindPlus: cst.OpAdd, token.KindMinus: cst.OpSub}
	mulOps = map[token.Kind]cst.BinaryOp{
		token.KindStar:    cst.OpMul,
		token.KindSlash:   cst.OpDiv,
		token.KindPercent: cst.OpMod,
	}
	unaryOps = map[token.Kind]cst.UnaryOp{
		token.KindPlus:  cst.OpPlus,
		token.KindMinus: cst.OpNeg,
		token.KindNot:   cst.OpNot,
	}
)

func (p *Parser) parseExpr() (cst.Expr, error) {
	return p.parseAssignExpr()
}

// parseAssignExpr handles '=', a '+=' token, and the two-token '+' '='
// spelling of '+='. Assignment associates to the right.
func (p *Parser) parseAssignExpr() (cst.Expr, error) {
	p.trace("AssignExpr")
	left, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}

	var op cst.AssignOp
	switch {
	case p.checkKind(token.KindAssign, 0):
		p.advance()
		op = cst.OpAssign
	case p.checkKind(token.KindPlusAssign, 0):
		p.advance()
		op = cst.OpAddAssign
	case p.checkKind(token.KindPlus, 0) && p.checkKind(token.KindAssign, 1):
		p.advance()
		p.advance()
		op = cst.OpAddAssign
	default:
		return left, nil
	}

	right, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	return &cst.AssignExpr{Op: op, Lhs: left, Rhs: right}, nil
}

func (p *Parser) parseOrExpr() (cst.Expr, error) {
	return p.parseBinary("OrExpr", orOps, p.parseAndExpr)
}

func (p *Parser) parseAndExpr() (cst.Expr, error) {
	return p.parseBinary("AndExpr", andOps, p.parseEqualityExpr)
}

func (p *Parser) parseEqualityExpr() (cst.Expr, error) {
	return p.parseBinary("EqExpr", equalityOps, p.parseRelExpr)
}

func (p *Parser) parseRelExpr() (cst.Expr, error) {
	return p.parseBinary("RelExpr", relOps, p.parseAddExpr)
}

func (p *Parser) parseAddExpr() (cst.Expr, error) {
	return p.parseBinary("AddExpr", addOps, p.parseMulExpr)
}

func (p *Parser) parseMulExpr() (cst.Expr, error) {
	return p.parseBinary("MulExpr", mulOps, p.parseUnaryExpr)
}

// parseBinary folds operand (op operand)* to the left. A '+' directly
// followed by '=' belongs to assignment and ends the chain.
func (p *Parser) parseBinary(rule string, ops map[token.Kind]cst.BinaryOp, next func() (cst.Expr, error)) (cst.Expr, error) {
	p.trace(rule)
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.peek(0).Kind]
		if !ok || (op == cst.OpAdd && p.checkKind(token.KindAssign, 1)) {
			return left, nil
		}
		p.advance()

		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &cst.BinaryExpr{Op: op, X: left, Y: right}
	}
}

func (p *Parser) parseUnaryExpr() (cst.Expr, error) {
	if op, ok := unaryOps[p.peek(0).Kind]; ok {
		p.trace("UnaryExpr")
		p.advance()
		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return &cst.UnaryExpr{Op: op, X: x}, nil
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr applies [i], (args), .field and ++ left to right
func (p *Parser) parsePostfixExpr() (cst.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.matchKind(token.KindLBracket):
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectKind(token.KindRBracket); err != nil {
				return nil, err
			}
			x = &cst.ArrayAccess{X: x, Index: index}

		case p.matchKind(token.KindLParen):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &cst.FuncCall{Fun: x, Args: args}

		case p.matchKind(token.KindDot):
			field, err := p.expectCategory(token.CategoryIdentifier)
			if err != nil {
				return nil, err
			}
			x = &cst.FieldAccess{X: x, Field: field.Lexeme}

		case p.matchKind(token.KindIncrement):
			x = &cst.PostInc{X: x}

		default:
			return x, nil
		}
	}
}

// parseArgs parses call arguments after '(' through the closing ')'
func (p *Parser) parseArgs() (*cst.Args, error) {
	args := &cst.Args{}
	if !p.checkKind(token.KindRParen, 0) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args.List = append(args.List, arg)
			if !p.matchKind(token.KindComma) {
				break
			}
		}
	}
	if _, err := p.expectKind(token.KindRParen); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (cst.Expr, error) {
	p.trace("Primary")
	if p.matchKind(token.KindLParen) {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(token.KindRParen); err != nil {
			return nil, err
		}
		return x, nil
	}

	switch p.peek(0).Category {
	case token.CategoryIdentifier:
		return &cst.Ident{Name: p.advance().Lexeme}, nil
	case token.CategoryNumber:
		return &cst.NumberLit{Text: p.advance().Lexeme}, nil
	case token.CategoryCharConstant:
		return &cst.CharLit{Text: p.advance().Lexeme}, nil
	case token.CategoryString:
		return &cst.StringLit{Text: p.advance().Lexeme}, nil
	}

	return nil, p.errorf(UnexpectedPrimary, "expression")
}
