package parser

import (
	"errors"
	"fmt"

	"github.com/raymyers/ralph-cst/pkg/token"
)

// ErrSyntax matches every *SyntaxError via errors.Is
var ErrSyntax = errors.New("syntax error")

// ErrorKind classifies syntax errors
type ErrorKind int

const (
	UnexpectedLexeme   ErrorKind = iota // a mandatory literal is missing
	UnexpectedCategory                  // the token has the wrong category
	InvalidType                         // no type specifier starts here
	UnexpectedPrimary                   // no expression starts here
	InvalidDeclaration                  // no external declaration starts here
)

func (k ErrorKind) String() string {
	names := []string{"unexpected lexeme", "unexpected category", "invalid type", "unexpected primary", "invalid declaration"}
	if int(k) < len(names) {
		return names[k]
	}
	return "syntax error"
}

// SyntaxError describes the first syntax error of a parse
type SyntaxError struct {
	Kind     ErrorKind
	File     string // empty when unknown
	Line     int
	Expected string // lexeme, category, or construct that was required
	Found    token.Token
}

func (e *SyntaxError) Error() string {
	prefix := fmt.Sprintf("syntax error at line %d", e.Line)
	if e.File != "" {
		prefix = fmt.Sprintf("%s: %s", e.File, prefix)
	}

	switch e.Kind {
	case UnexpectedLexeme:
		return fmt.Sprintf("%s: expected '%s' but got '%s'", prefix, e.Expected, e.Found.Lexeme)
	case UnexpectedCategory:
		return fmt.Sprintf("%s: expected category %s but got %s (%s)", prefix, e.Expected, e.Found.Category, e.Found.Lexeme)
	case InvalidType:
		return fmt.Sprintf("%s: invalid type '%s'", prefix, e.Found.Lexeme)
	case UnexpectedPrimary:
		return fmt.Sprintf("%s: unexpected token in primary position '%s'", prefix, e.Found.Lexeme)
	case InvalidDeclaration:
		return fmt.Sprintf("%s: expected %s but got '%s'", prefix, e.Expected, e.Found.Lexeme)
	}
	return prefix
}

// Is reports whether target is ErrSyntax
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (p *Parser) errorf(kind ErrorKind, expected string) *SyntaxError {
	tok := p.peek(0)
	return &SyntaxError{
		Kind:     kind,
		File:     p.file,
		Line:     tok.Line,
		Expected: expected,
		Found:    tok,
	}
}
