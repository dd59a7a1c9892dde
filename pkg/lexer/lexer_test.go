package lexer

import (
	"testing"

	"github.com/raymyers/ralph-cst/pkg/token"
)

func TestNextToken(t *testing.T) {
	input := `int main() { return 42; }`

	tests := []struct {
		expectedCategory token.Category
		expectedLexeme   string
	}{
		{token.CategoryKeyword, "int"},
		{token.CategoryIdentifier, "main"},
		{token.CategoryDelimiter, "("},
		{token.CategoryDelimiter, ")"},
		{token.CategoryDelimiter, "{"},
		{token.CategoryKeyword, "return"},
		{token.CategoryNumber, "42"},
		{token.CategoryDelimiter, ";"},
		{token.CategoryDelimiter, "}"},
		{token.CategoryEOF, "EOF"},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Category != tt.expectedCategory {
			t.Fatalf("tests[%d] - category wrong. expected=%q, got=%q",
				i, tt.expectedCategory, tok.Category)
		}

		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! ++ += ->`

	tests := []struct {
		expectedLexeme string
		expectedKind   token.Kind
	}{
		{"+", token.KindPlus},
		{"-", token.KindMinus},
		{"*", token.KindStar},
		{"/", token.KindSlash},
		{"%", token.KindPercent},
		{"=", token.KindAssign},
		{"==", token.KindEq},
		{"!=", token.KindNone},
		{"<", token.KindLt},
		{"<=", token.KindLe},
		{">", token.KindGt},
		{">=", token.KindGe},
		{"&&", token.KindAnd},
		{"||", token.KindOr},
		{"!", token.KindNot},
		{"++", token.KindIncrement},
		{"+=", token.KindPlusAssign},
		{"->", token.KindNone},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Category != token.CategoryOperator {
			t.Fatalf("tests[%d] - category wrong. expected=OPERATOR, got=%q", i, tok.Category)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q",
				i, tt.expectedLexeme, tok.Lexeme)
		}
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v",
				i, tt.expectedKind, tok.Kind)
		}
	}
}

func TestLiteralsAndComments(t *testing.T) {
	input := "#include <stdio.h>\n" +
		"// line comment\n" +
		"char c = 'a'; /* block\ncomment */ float f = 3.14;\n" +
		`char *s = "hi \"there\"";`

	toks, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		cat  token.Category
		lex  string
		line int
	}{
		{token.CategoryPreprocessor, "#include <stdio.h>", 1},
		{token.CategoryComment, "// line comment", 2},
		{token.CategoryKeyword, "char", 3},
		{token.CategoryIdentifier, "c", 3},
		{token.CategoryOperator, "=", 3},
		{token.CategoryCharConstant, "'a'", 3},
		{token.CategoryDelimiter, ";", 3},
		{token.CategoryComment, "/* block\ncomment */", 3},
		{token.CategoryKeyword, "float", 4},
		{token.CategoryIdentifier, "f", 4},
		{token.CategoryOperator, "=", 4},
		{token.CategoryNumber, "3.14", 4},
		{token.CategoryDelimiter, ";", 4},
		{token.CategoryKeyword, "char", 5},
		{token.CategoryOperator, "*", 5},
		{token.CategoryIdentifier, "s", 5},
		{token.CategoryOperator, "=", 5},
		{token.CategoryString, `"hi \"there\""`, 5},
		{token.CategoryDelimiter, ";", 5},
		{token.CategoryEOF, "EOF", -1},
	}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Category != w.cat || toks[i].Lexeme != w.lex || toks[i].Line != w.line {
			t.Errorf("tokens[%d]: expected %s %q line %d, got %s %q line %d",
				i, w.cat, w.lex, w.line, toks[i].Category, toks[i].Lexeme, toks[i].Line)
		}
	}
}

func TestFieldAccessIsNotFloat(t *testing.T) {
	toks, err := New("p.x").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 4 || toks[1].Kind != token.KindDot {
		t.Fatalf("expected p . x EOF, got %v", toks)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"illegal character", "int x = @;"},
		{"unterminated string", `char *s = "abc`},
		{"unterminated char", "char c = 'a"},
		{"unterminated comment", "/* never closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.input).Tokenize(); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}
