// Package diag formats syntax errors for terminal output
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/raymyers/ralph-cst/pkg/parser"
)

// Options configures diagnostic formatting
type Options struct {
	NoColor bool
	// ForceColor emits color even when the output is not a terminal.
	// NoColor takes precedence.
	ForceColor bool
	// Source is the input text; when set, the offending line is quoted
	Source string
}

// Format renders err. Syntax errors get a header, the offending source
// line when available, and an expected/found summary; other errors are
// rendered as a single line.
//
// Example output:
//
//	error: main.c: syntax error at line 2: expected ';' but got '}'
//	   2 |   int x = 1 }
//	     = expected ';', found '}'
func Format(err error, opts Options) string {
	var b strings.Builder

	headerColor := color.New(color.FgRed, color.Bold)
	bodyColor := color.New(color.FgCyan)
	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	} else if opts.ForceColor {
		headerColor.EnableColor()
		bodyColor.EnableColor()
	}

	headerColor.Fprint(&b, "error: ")
	fmt.Fprintln(&b, err.Error())

	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return b.String()
	}

	if text, ok := sourceLine(opts.Source, syntaxErr.Line); ok {
		bodyColor.Fprintf(&b, "%4d | ", syntaxErr.Line)
		fmt.Fprintln(&b, text)
	}

	bodyColor.Fprint(&b, "     = ")
	fmt.Fprintln(&b, summary(syntaxErr))
	return b.String()
}

func summary(e *parser.SyntaxError) string {
	switch e.Kind {
	case parser.UnexpectedLexeme:
		return fmt.Sprintf("expected '%s', found '%s'", e.Expected, e.Found.Lexeme)
	case parser.UnexpectedCategory:
		return fmt.Sprintf("expected %s, found %s '%s'", e.Expected, e.Found.Category, e.Found.Lexeme)
	case parser.InvalidType:
		return fmt.Sprintf("expected a type specifier, found '%s'", e.Found.Lexeme)
	case parser.UnexpectedPrimary:
		return fmt.Sprintf("expected an expression, found '%s'", e.Found.Lexeme)
	case parser.InvalidDeclaration:
		return fmt.Sprintf("expected %s, found '%s'", e.Expected, e.Found.Lexeme)
	}
	return e.Kind.String()
}

// sourceLine returns the 1-based line of src, if present
func sourceLine(src string, line int) (string, bool) {
	if src == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}
