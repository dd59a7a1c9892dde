// Package parser implements a recursive descent parser for the C subset.
//
// The parser reads an EOF-terminated token slice through a cursor that
// only moves forward and never reads past the sentinel. Every grammar
// rule either returns a complete node or the first *SyntaxError; there is
// no recovery and no partial tree.
package parser

import (
	"go.uber.org/zap"

	"github.com/raymyers/ralph-cst/pkg/cst"
	"github.com/raymyers/ralph-cst/pkg/token"
)

// Parser parses a token slice into a concrete syntax tree.
// A Parser is single-use and not safe for concurrent use.
type Parser struct {
	tokens []token.Token
	pos    int
	file   string
	log    *zap.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger enables debug tracing of rule entry
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithFile sets the file name reported in syntax errors
func WithFile(name string) Option {
	return func(p *Parser) {
		p.file = name
	}
}

// New creates a new Parser for the given tokens. Comment and preprocessor
// tokens must already be filtered out. The EOF sentinel is added when the
// slice does not end with one.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: token.Terminate(tokens),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pos returns the index of the next unconsumed token
func (p *Parser) Pos() int {
	return p.pos
}

// ParseProgram parses external declarations until EOF
func (p *Parser) ParseProgram() (*cst.Program, error) {
	p.trace("Program")
	prog := &cst.Program{}
	for !p.checkCategory(token.CategoryEOF, 0) {
		decl, err := p.parseExternalDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	p.log.Debug("parsed program",
		zap.String("file", p.file),
		zap.Int("decls", len(prog.Decls)),
		zap.Int("tokens", p.pos))
	return prog, nil
}

// Token cursor

func (p *Parser) peek(offset int) token.Token {
	index := p.pos + offset
	if index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[index]
}

// advance consumes the current token; the cursor stops at the sentinel
func (p *Parser) advance() token.Token {
	tok := p.peek(0)
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) checkKind(k token.Kind, offset int) bool {
	return p.peek(offset).Kind == k
}

func (p *Parser) checkCategory(c token.Category, offset int) bool {
	return p.peek(offset).Category == c
}

func (p *Parser) matchKind(k token.Kind) bool {
	if p.checkKind(k, 0) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectKind(k token.Kind) (token.Token, error) {
	if !p.checkKind(k, 0) {
		return token.Token{}, p.errorf(UnexpectedLexeme, k.String())
	}
	return p.advance(), nil
}

func (p *Parser) expectCategory(c token.Category) (token.Token, error) {
	if !p.checkCategory(c, 0) {
		return token.Token{}, p.errorf(UnexpectedCategory, c.String())
	}
	return p.advance(), nil
}

func (p *Parser) trace(rule string) {
	if ce := p.log.Check(zap.DebugLevel, "enter rule"); ce != nil {
		tok := p.peek(0)
		ce.Write(
			zap.String("rule", rule),
			zap.Int("pos", p.pos),
			zap.String("lexeme", tok.Lexeme),
			zap.Int("line", tok.Line))
	}
}

// Declarations

func (p *Parser) parseExternalDecl() (cst.Decl, error) {
	p.trace("ExternalDecl")
	if p.checkKind(token.KindStruct, 0) &&
		p.checkCategory(token.CategoryIdentifier, 1) &&
		p.checkKind(token.KindLBrace, 2) {
		s, err := p.parseStructDecl()
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	if !p.peek(0).Kind.StartsType() {
		return nil, p.errorf(InvalidDeclaration, "struct or function declaration")
	}

	f, err := p.parseFunctionDecl()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (p *Parser) parseStructDecl() (*cst.StructDecl, error) {
	p.trace("StructDecl")
	if _, err := p.expectKind(token.KindStruct); err != nil {
		return nil, err
	}
	name, err := p.expectCategory(token.CategoryIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindLBrace); err != nil {
		return nil, err
	}

	members := &cst.StructMemberList{}
	for !p.checkKind(token.KindRBrace, 0) {
		m, err := p.parseDeclStmt(true)
		if err != nil {
			return nil, err
		}
		members.Members = append(members.Members, m)
	}

	if _, err := p.expectKind(token.KindRBrace); err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindSemicolon); err != nil {
		return nil, err
	}
	return &cst.StructDecl{Name: name.Lexeme, Members: members}, nil
}

func (p *Parser) parseFunctionDecl() (*cst.FunctionDecl, error) {
	p.trace("FunctionDecl")
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expectCategory(token.CategoryIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindLParen); err != nil {
		return nil, err
	}
	params, err := p.parseParamListOpt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(token.KindRParen); err != nil {
		return nil, err
	}
	body, err := p.parseCompoundStmt()
	if err != nil {
		return nil, err
	}
	return &cst.FunctionDecl{Type: typ, Name: name.Lexeme, Params: params, Body: body}, nil
}

// parseTypeSpec is the only place type syntax is recognized
func (p *Parser) parseTypeSpec() (*cst.TypeSpec, error) {
	p.trace("TypeSpec")
	spec := &cst.TypeSpec{}
	if p.matchKind(token.KindConst) {
		spec.Const = true
	}

	if p.matchKind(token.KindStruct) {
		id, err := p.expectCategory(token.CategoryIdentifier)
		if err != nil {
			return nil, err
		}
		spec.Type = &cst.StructType{Name: id.Lexeme}
		return spec, nil
	}

	if p.peek(0).Kind.IsTypeKeyword() {
		spec.Type = &cst.BaseType{Kind: p.advance().Kind}
		return spec, nil
	}

	return nil, p.errorf(InvalidType, "type specifier")
}

func (p *Parser) parseParamListOpt() (*cst.ParamList, error) {
	if p.checkKind(token.KindRParen, 0) {
		return &cst.ParamList{}, nil
	}
	return p.parseParamList()
}

func (p *Parser) parseParamList() (*cst.ParamList, error) {
	p.trace("ParamList")
	list := &cst.ParamList{}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		list.Params = append(list.Params, param)
		if !p.matchKind(token.KindComma) {
			return list, nil
		}
	}
}

func (p *Parser) parseParam() (*cst.Param, error) {
	p.trace("Param")
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	param := &cst.Param{Type: typ}
	for p.matchKind(token.KindStar) {
		param.Pointers++
	}

	id, err := p.expectCategory(token.CategoryIdentifier)
	if err != nil {
		return nil, err
	}
	param.Name = id.Lexeme

	if param.Array, err = p.parseArraySuffixOpt(); err != nil {
		return nil, err
	}
	return param, nil
}

// parseArraySuffixOpt parses an optional [ NUMBER? ] and returns nil when
// no '[' follows.
func (p *Parser) parseArraySuffixOpt() (*cst.ArraySuffix, error) {
	if !p.matchKind(token.KindLBracket) {
		return nil, nil
	}
	suffix := &cst.ArraySuffix{}
	if p.checkCategory(token.CategoryNumber, 0) {
		suffix.Size = &cst.NumberLit{Text: p.advance().Lexeme}
	}
	if _, err := p.expectKind(token.KindRBracket); err != nil {
		return nil, err
	}
	return suffix, nil
}
