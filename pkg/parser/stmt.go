package parser

import (
	"github.com/raymyers/ralph-cst/pkg/cst"
	"github.com/raymyers/ralph-cst/pkg/token"
)

// asStmt widens a rule result to cst.Stmt without producing a typed nil
func asStmt[T cst.Stmt](s T, err error) (cst.Stmt, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseCompoundStmt() (*cst.CompoundStmt, error) {
	p.trace("CompoundStmt")
	if _, err := p.expectKind(token.KindLBrace); err != nil {
		return nil, err
	}
	list, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindRBrace); err != nil {
		return nil, err
	}
	return &cst.CompoundStmt{List: list}, nil
}

func (p *Parser) parseStmtList() (*cst.StmtList, error) {
	list := &cst.StmtList{}
	for !p.checkKind(token.KindRBrace, 0) && !p.checkCategory(token.CategoryEOF, 0) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		list.Stmts = append(list.Stmts, s)
	}
	return list, nil
}

// parseStmt dispatches on the leading token. Type keywords are tested
// before falling back to an expression statement.
func (p *Parser) parseStmt() (cst.Stmt, error) {
	p.trace("Stmt")
	switch k := p.peek(0).Kind; {
	case k == token.KindIf:
		return asStmt(p.parseIfStmt())
	case k == token.KindFor:
		return asStmt(p.parseForStmt())
	case k == token.KindReturn:
		return asStmt(p.parseReturnStmt())
	case k == token.KindLBrace:
		return asStmt(p.parseCompoundStmt())
	case k.StartsType():
		return asStmt(p.parseDeclStmt(true))
	}
	return asStmt(p.parseExprStmt())
}

func (p *Parser) parseIfStmt() (*cst.IfStmt, error) {
	p.trace("IfStmt")
	if _, err := p.expectKind(token.KindIf); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindLParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindRParen); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	s := &cst.IfStmt{Cond: cond, Then: then}
	if p.matchKind(token.KindElse) {
		body, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		s.Else = &cst.Else{Body: body}
	}
	return s, nil
}

func (p *Parser) parseForStmt() (*cst.ForStmt, error) {
	p.trace("ForStmt")
	if _, err := p.expectKind(token.KindFor); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindLParen); err != nil {
		return nil, err
	}

	s := &cst.ForStmt{}
	if !p.checkKind(token.KindSemicolon, 0) {
		if p.peek(0).Kind.StartsType() {
			decl, err := p.parseDeclStmt(false)
			if err != nil {
				return nil, err
			}
			s.Init = decl
		} else {
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			s.Init = &cst.ForInitExpr{X: x}
		}
	}
	if _, err := p.expectKind(token.KindSemicolon); err != nil {
		return nil, err
	}

	if !p.checkKind(token.KindSemicolon, 0) {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		s.Cond = cond
	}
	if _, err := p.expectKind(token.KindSemicolon); err != nil {
		return nil, err
	}

	if !p.checkKind(token.KindRParen, 0) {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		s.Iter = &cst.ForIterExpr{X: x}
	}
	if _, err := p.expectKind(token.KindRParen); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	s.Body = body
	return s, nil
}

func (p *Parser) parseReturnStmt() (*cst.ReturnStmt, error) {
	p.trace("ReturnStmt")
	if _, err := p.expectKind(token.KindReturn); err != nil {
		return nil, err
	}

	s := &cst.ReturnStmt{}
	if !p.checkKind(token.KindSemicolon, 0) {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		s.Result = x
	}

	if _, err := p.expectKind(token.KindSemicolon); err != nil {
		return nil, err
	}
	return s, nil
}

// parseDeclStmt parses int *x[3] = e, y; withSemi is false inside a for
// header, where the loop owns the ';'.
func (p *Parser) parseDeclStmt(withSemi bool) (*cst.DeclStmt, error) {
	p.trace("DeclStmt")
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	s := &cst.DeclStmt{Type: typ}

	for {
		d, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		s.Declarators = append(s.Declarators, d)
		if !p.matchKind(token.KindComma) {
			break
		}
	}

	if withSemi {
		if _, err := p.expectKind(token.KindSemicolon); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *Parser) parseDeclarator() (*cst.Declarator, error) {
	d := &cst.Declarator{}
	for p.matchKind(token.KindStar) {
		d.Pointers++
	}

	id, err := p.expectCategory(token.CategoryIdentifier)
	if err != nil {
		return nil, err
	}
	d.Name = id.Lexeme

	if d.Array, err = p.parseArraySuffixOpt(); err != nil {
		return nil, err
	}

	if p.matchKind(token.KindAssign) {
		if d.Init, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (p *Parser) parseExprStmt() (*cst.ExprStmt, error) {
	p.trace("ExprStmt")
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindSemicolon); err != nil {
		return nil, err
	}
	return &cst.ExprStmt{X: x}, nil
}
