package parser

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/raymyers/ralph-cst/pkg/cst"
	"github.com/raymyers/ralph-cst/pkg/lexer"
	"github.com/raymyers/ralph-cst/pkg/token"
	"gopkg.in/yaml.v3"
)

// TreeSpec is a successful parse case from parse.yaml
type TreeSpec struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	Tree  string `yaml:"tree"`
}

// ErrorSpec is a failing parse case from parse.yaml
type ErrorSpec struct {
	Name    string `yaml:"name"`
	Input   string `yaml:"input"`
	Kind    string `yaml:"kind"`
	Line    int    `yaml:"line"`
	Message string `yaml:"message"`
}

// TestFile represents the parse.yaml file structure
type TestFile struct {
	Tests  []TreeSpec  `yaml:"tests"`
	Errors []ErrorSpec `yaml:"errors"`
}

func loadTestFile(t *testing.T) TestFile {
	t.Helper()
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("failed to read parse.yaml: %v", err)
	}

	var testFile TestFile
	if err := yaml.Unmarshal(data, &testFile); err != nil {
		t.Fatalf("failed to parse parse.yaml: %v", err)
	}
	return testFile
}

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := lexer.New(input).Tokenize()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	return token.Filter(toks)
}

func parseSource(t *testing.T, input string) (*cst.Program, error) {
	t.Helper()
	return New(tokenize(t, input)).ParseProgram()
}

func TestParseYAML(t *testing.T) {
	testFile := loadTestFile(t)
	if len(testFile.Tests) == 0 {
		t.Fatal("parse.yaml has no tests")
	}

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			prog, err := parseSource(t, tc.Input)
			if err != nil {
				t.Fatalf("parser error: %v", err)
			}
			if got := cst.String(prog); got != tc.Tree {
				t.Errorf("tree mismatch\nexpected:\n%s\ngot:\n%s", tc.Tree, got)
			}
		})
	}
}

func TestParseErrorsYAML(t *testing.T) {
	testFile := loadTestFile(t)
	if len(testFile.Errors) == 0 {
		t.Fatal("parse.yaml has no error cases")
	}

	for _, tc := range testFile.Errors {
		t.Run(tc.Name, func(t *testing.T) {
			prog, err := parseSource(t, tc.Input)
			if err == nil {
				t.Fatalf("expected error, got tree:\n%s", cst.String(prog))
			}
			if prog != nil {
				t.Errorf("expected no tree on error, got %v", prog)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected errors.Is(err, ErrSyntax), got %v", err)
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if syntaxErr.Kind.String() != tc.Kind {
				t.Errorf("Kind: expected %q, got %q", tc.Kind, syntaxErr.Kind)
			}
			if syntaxErr.Line != tc.Line {
				t.Errorf("Line: expected %d, got %d", tc.Line, syntaxErr.Line)
			}
			if err.Error() != tc.Message {
				t.Errorf("Message: expected %q, got %q", tc.Message, err.Error())
			}
		})
	}
}

// tokens builds a token slice from space-separated lexemes, classifying
// each the way a tokenizer would.
func tokens(src string) []token.Token {
	var out []token.Token
	for _, lex := range strings.Fields(src) {
		var cat token.Category
		switch {
		case lex[0] >= '0' && lex[0] <= '9':
			cat = token.CategoryNumber
		case lex[0] == '"':
			cat = token.CategoryString
		case lex[0] == '\'':
			cat = token.CategoryCharConstant
		case token.LookupKind(lex) != token.KindNone && (lex[0] < 'a' || lex[0] > 'z'):
			cat = token.CategoryDelimiter
		case token.LookupKind(lex) != token.KindNone:
			cat = token.CategoryKeyword
		default:
			cat = token.CategoryIdentifier
		}
		out = append(out, token.New(cat, lex, 1))
	}
	return out
}

func parseExprString(t *testing.T, src string) cst.Expr {
	t.Helper()
	p := New(tokens(src))
	x, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parseExpr(%q): %v", src, err)
	}
	return x
}

func TestLeftAssociativity(t *testing.T) {
	x := parseExprString(t, "a - b - c")

	outer, ok := x.(*cst.BinaryExpr)
	if !ok || outer.Op != cst.OpSub {
		t.Fatalf("expected outer '-', got %s", x.Symbol())
	}
	inner, ok := outer.X.(*cst.BinaryExpr)
	if !ok || inner.Op != cst.OpSub {
		t.Fatalf("expected left child a - b, got %s", outer.X.Symbol())
	}
	if inner.X.Symbol() != "ID(a)" || inner.Y.Symbol() != "ID(b)" {
		t.Errorf("inner operands: got %s, %s", inner.X.Symbol(), inner.Y.Symbol())
	}
	if outer.Y.Symbol() != "ID(c)" {
		t.Errorf("expected right child c, got %s", outer.Y.Symbol())
	}
}

func TestAssignmentRightAssociativity(t *testing.T) {
	x := parseExprString(t, "a = b = c")

	outer, ok := x.(*cst.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %s", x.Symbol())
	}
	if outer.Lhs.Symbol() != "ID(a)" {
		t.Errorf("expected left a, got %s", outer.Lhs.Symbol())
	}
	inner, ok := outer.Rhs.(*cst.AssignExpr)
	if !ok {
		t.Fatalf("expected right b = c, got %s", outer.Rhs.Symbol())
	}
	if inner.Lhs.Symbol() != "ID(b)" || inner.Rhs.Symbol() != "ID(c)" {
		t.Errorf("inner operands: got %s, %s", inner.Lhs.Symbol(), inner.Rhs.Symbol())
	}
}

func TestPlusAssignDisambiguation(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		symbol string
		op     string
	}{
		{"addition", "a + b", "AddExpr", "+"},
		{"two-token plus assign", "a + = b", "AssignExpr", "+="},
		{"single-token plus assign", "a += b", "AssignExpr", "+="},
		{"plus assign with sum", "a + = b + c", "AssignExpr", "+="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tokens(tt.src))
			x, err := p.parseExpr()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if x.Symbol() != tt.symbol {
				t.Fatalf("expected %s, got %s", tt.symbol, x.Symbol())
			}
			if op := x.Children()[1].Symbol(); op != tt.op {
				t.Errorf("expected operator %q, got %q", tt.op, op)
			}
			if !p.peek(0).IsEOF() {
				t.Errorf("expected all tokens consumed, next is %q", p.peek(0).Lexeme)
			}
		})
	}
}

func TestStructVersusFunction(t *testing.T) {
	prog, err := New(tokens("struct Point { int x ; int y ; } ;")).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := prog.Decls[0].(*cst.StructDecl)
	if !ok {
		t.Fatalf("expected StructDecl, got %s", prog.Decls[0].Symbol())
	}
	if len(s.Members.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(s.Members.Members))
	}

	prog, err = New(tokens("struct Point make ( ) { return p ; }")).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := prog.Decls[0].(*cst.FunctionDecl)
	if !ok {
		t.Fatalf("expected FunctionDecl, got %s", prog.Decls[0].Symbol())
	}
	if st, ok := f.Type.Type.(*cst.StructType); !ok || st.Name != "Point" {
		t.Errorf("expected return type struct Point, got %s", f.Type.Type.Symbol())
	}
}

func TestEpsilonParamList(t *testing.T) {
	prog, err := New(tokens("int f ( ) { } int g ( int a ) { }")).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := prog.Decls[0].(*cst.FunctionDecl).Params
	if empty == nil || !empty.IsEmpty() || empty.Symbol() != "ParamList(ε)" {
		t.Errorf("expected epsilon ParamList, got %v", empty)
	}
	one := prog.Decls[1].(*cst.FunctionDecl).Params
	if one.IsEmpty() || one.Symbol() != "ParamList" || len(one.Params) != 1 {
		t.Errorf("expected one-parameter ParamList, got %s with %d params", one.Symbol(), len(one.Params))
	}
}

func TestMissingSemicolonStopsParse(t *testing.T) {
	toks := []token.Token{
		token.New(token.CategoryKeyword, "int", 4),
		token.New(token.CategoryIdentifier, "x", 4),
		token.New(token.CategoryOperator, "=", 4),
		token.New(token.CategoryNumber, "1", 4),
		token.New(token.CategoryDelimiter, "}", 5),
	}
	p := New(toks, WithFile("main.c"))
	_, err := p.parseStmt()

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Line != 5 || syntaxErr.Expected != ";" || syntaxErr.Found.Lexeme != "}" {
		t.Errorf("unexpected error detail: %+v", syntaxErr)
	}
	want := "main.c: syntax error at line 5: expected ';' but got '}'"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestPeekClampsToSentinel(t *testing.T) {
	p := New(tokens("x"))
	if len(p.tokens) != 2 || !p.tokens[1].IsEOF() {
		t.Fatalf("expected synthesized EOF sentinel, got %v", p.tokens)
	}
	if !p.peek(5).IsEOF() {
		t.Errorf("peek past end should return EOF, got %v", p.peek(5))
	}

	p.advance()
	p.advance()
	p.advance()
	if p.Pos() != 1 {
		t.Errorf("cursor should stop at the sentinel, got pos %d", p.Pos())
	}
}

func TestEmptyInput(t *testing.T) {
	prog, err := New(nil).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Decls) != 0 {
		t.Errorf("expected no declarations, got %d", len(prog.Decls))
	}
}

func TestCursorConsumesExactSpan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		rule func(p *Parser) error
		want int
	}{
		{"type spec", "const struct P x", func(p *Parser) error { _, err := p.parseTypeSpec(); return err }, 3},
		{"declaration in for header", "int i = 0 ; i", func(p *Parser) error { _, err := p.parseDeclStmt(false); return err }, 4},
		{"declaration statement", "int i = 0 ; i", func(p *Parser) error { _, err := p.parseDeclStmt(true); return err }, 5},
		{"bare return", "return ; x", func(p *Parser) error { _, err := p.parseReturnStmt(); return err }, 2},
		{"expression stops at plus assign", "a + b + = c", func(p *Parser) error { _, err := p.parseAddExpr(); return err }, 3},
		{"postfix chain", "a . b [ 0 ] ( ) ++ ;", func(p *Parser) error { _, err := p.parsePostfixExpr(); return err }, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tokens(tt.src))
			before := p.Pos()
			if err := tt.rule(p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Pos() < before {
				t.Fatalf("cursor moved backward: %d -> %d", before, p.Pos())
			}
			if p.Pos()-before != tt.want {
				t.Errorf("expected %d tokens consumed, got %d", tt.want, p.Pos()-before)
			}
		})
	}
}

func TestLeavesReconstructValues(t *testing.T) {
	src := `int f ( int a ) { if ( a < 2 ) return "x" ; else return g ( a , 'c' ) [ 1 ] ; }`
	prog, err := New(tokens(src)).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, leaf := range cst.Leaves(prog) {
		got = append(got, leaf.Symbol())
	}
	want := []string{
		"BaseType(int)", "FuncName(f)", "BaseType(int)", "ParamName(a)",
		"ID(a)", "<", "NUM(2)", `STR("x")`,
		"ID(g)", "ID(a)", "CHAR('c')", "NUM(1)",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("leaves mismatch\nexpected: %v\ngot:      %v", want, got)
	}
}
