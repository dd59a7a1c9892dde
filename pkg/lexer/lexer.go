// Package lexer tokenizes C-subset source into classified tokens
package lexer

import (
	"fmt"
	"unicode"

	"github.com/raymyers/ralph-cst/pkg/token"
)

// keywords lists the words classified as KEYWORD rather than IDENTIFIER
var keywords = map[string]bool{
	"int": true, "char": true, "float": true, "double": true, "void": true,
	"size_t": true, "struct": true, "union": true, "enum": true, "const": true,
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"return": true, "break": true, "continue": true, "switch": true,
	"case": true, "default": true, "typedef": true, "sizeof": true,
	"static": true, "extern": true, "unsigned": true, "signed": true,
	"short": true, "long": true,
}

// twoCharOps are operators scanned greedily before their one-char prefixes
var twoCharOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
	"++": true, "--": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"->": true,
}

// Lexer tokenizes C source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// Tokenize scans the whole input. Comments and preprocessor lines are
// returned as COMMENT and PREPROCESSOR tokens; the result always ends
// with the EOF sentinel.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.IsEOF() {
			return toks, nil
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	line := l.line
	if l.atEOF() {
		return token.EOF(), nil
	}

	switch {
	case l.ch == '#':
		return token.New(token.CategoryPreprocessor, l.readLine(), line), nil
	case l.ch == '/' && l.peekChar() == '/':
		return token.New(token.CategoryComment, l.readLine(), line), nil
	case l.ch == '/' && l.peekChar() == '*':
		text, err := l.readBlockComment()
		if err != nil {
			return token.Token{}, err
		}
		return token.New(token.CategoryComment, text, line), nil
	case l.ch == '"':
		text, err := l.readQuoted('"')
		if err != nil {
			return token.Token{}, err
		}
		return token.New(token.CategoryString, text, line), nil
	case l.ch == '\'':
		text, err := l.readQuoted('\'')
		if err != nil {
			return token.Token{}, err
		}
		return token.New(token.CategoryCharConstant, text, line), nil
	case isLetter(l.ch):
		ident := l.readIdentifier()
		if keywords[ident] {
			return token.New(token.CategoryKeyword, ident, line), nil
		}
		return token.New(token.CategoryIdentifier, ident, line), nil
	case isDigit(l.ch):
		return token.New(token.CategoryNumber, l.readNumber(), line), nil
	}

	if op := string([]byte{l.ch, l.peekChar()}); twoCharOps[op] {
		l.readChar()
		l.readChar()
		return token.New(token.CategoryOperator, op, line), nil
	}

	ch := l.ch
	l.readChar()
	switch ch {
	case '(', ')', '{', '}', '[', ']', ';', ',', '.':
		return token.New(token.CategoryDelimiter, string(ch), line), nil
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '?', ':':
		return token.New(token.CategoryOperator, string(ch), line), nil
	}
	return token.Token{}, fmt.Errorf("line %d: unexpected character %q", line, ch)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v' {
		l.readChar()
	}
}

// readLine consumes up to (not including) the end of the current line
func (l *Lexer) readLine() string {
	pos := l.pos
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	end := l.pos
	if end > len(l.input) {
		end = len(l.input)
	}
	if end > pos && l.input[end-1] == '\r' {
		end--
	}
	return l.input[pos:end]
}

func (l *Lexer) readBlockComment() (string, error) {
	line := l.line
	pos := l.pos
	l.readChar() // consume /
	l.readChar() // consume *
	for {
		if l.atEOF() {
			return "", fmt.Errorf("line %d: unterminated comment", line)
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume *
			l.readChar() // consume /
			return l.input[pos:l.pos], nil
		}
		l.readChar()
	}
}

// readQuoted reads a string or char literal, keeping the quotes and
// escape sequences in the lexeme.
func (l *Lexer) readQuoted(quote byte) (string, error) {
	line := l.line
	pos := l.pos
	l.readChar() // consume opening quote
	for l.ch != quote {
		if l.atEOF() || l.ch == '\n' {
			return "", fmt.Errorf("line %d: unterminated literal", line)
		}
		if l.ch == '\\' {
			l.readChar() // skip escape char
			if l.atEOF() {
				return "", fmt.Errorf("line %d: unterminated literal", line)
			}
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return l.input[pos:l.pos], nil
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber reads decimal integers and simple floats such as 3.14
func (l *Lexer) readNumber() string {
	pos := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[pos:l.pos]
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
