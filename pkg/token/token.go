// Package token defines the classified tokens consumed by the parser
package token

// Category is the lexical class of a token
type Category int

const (
	CategoryOther Category = iota
	CategoryEOF
	CategoryIdentifier   // foo, main
	CategoryKeyword      // int, if, struct
	CategoryNumber       // 42, 3.14
	CategoryCharConstant // 'a'
	CategoryString       // "hello"
	CategoryOperator     // + == &&
	CategoryDelimiter    // ( ) { } ; ,
	CategoryPreprocessor // #include <stdio.h>
	CategoryComment      // /* ... */
)

var categoryNames = map[Category]string{
	CategoryOther:        "OTHER",
	CategoryEOF:          "EOF",
	CategoryIdentifier:   "IDENTIFIER",
	CategoryKeyword:      "KEYWORD",
	CategoryNumber:       "NUMBER",
	CategoryCharConstant: "CHAR_CONSTANT",
	CategoryString:       "STRING",
	CategoryOperator:     "OPERATOR",
	CategoryDelimiter:    "DELIMITER",
	CategoryPreprocessor: "PREPROCESSOR",
	CategoryComment:      "COMMENT",
}

var categoryByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for c, name := range categoryNames {
		m[name] = c
	}
	return m
}()

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupCategory returns the category for a tag such as "IDENTIFIER".
// Unrecognized tags map to CategoryOther.
func LookupCategory(tag string) Category {
	if c, ok := categoryByName[tag]; ok {
		return c
	}
	return CategoryOther
}

// IsLiteral reports whether tokens of this category carry a value
// rather than a fixed lexeme.
func (c Category) IsLiteral() bool {
	return c == CategoryNumber || c == CategoryCharConstant || c == CategoryString
}

// Kind identifies the fixed lexemes the grammar dispatches on
type Kind int

const (
	KindNone Kind = iota

	// Keywords
	KindInt    // int
	KindChar   // char
	KindFloat  // float
	KindVoid   // void
	KindSizeT  // size_t
	KindStruct // struct
	KindConst  // const
	KindIf     // if
	KindElse   // else
	KindFor    // for
	KindReturn // return

	// Operators
	KindAssign     // =
	KindPlusAssign // +=
	KindPlus       // +
	KindMinus      // -
	KindStar       // *
	KindSlash      // /
	KindPercent    // %
	KindNot        // !
	KindLt         // <
	KindGt         // >
	KindLe         // <=
	KindGe         // >=
	KindEq         // ==
	KindAnd        // &&
	KindOr         // ||
	KindIncrement  // ++

	// Delimiters
	KindLParen    // (
	KindRParen    // )
	KindLBrace    // {
	KindRBrace    // }
	KindLBracket  // [
	KindRBracket  // ]
	KindSemicolon // ;
	KindComma     // ,
	KindDot       // .
)

var kindNames = map[Kind]string{
	KindNone:       "",
	KindInt:        "int",
	KindChar:       "char",
	KindFloat:      "float",
	KindVoid:       "void",
	KindSizeT:      "size_t",
	KindStruct:     "struct",
	KindConst:      "const",
	KindIf:         "if",
	KindElse:       "else",
	KindFor:        "for",
	KindReturn:     "return",
	KindAssign:     "=",
	KindPlusAssign: "+=",
	KindPlus:       "+",
	KindMinus:      "-",
	KindStar:       "*",
	KindSlash:      "/",
	KindPercent:    "%",
	KindNot:        "!",
	KindLt:         "<",
	KindGt:         ">",
	KindLe:         "<=",
	KindGe:         ">=",
	KindEq:         "==",
	KindAnd:        "&&",
	KindOr:         "||",
	KindIncrement:  "++",
	KindLParen:     "(",
	KindRParen:     ")",
	KindLBrace:     "{",
	KindRBrace:     "}",
	KindLBracket:   "[",
	KindRBracket:   "]",
	KindSemicolon:  ";",
	KindComma:      ",",
	KindDot:        ".",
}

// lexemes maps fixed lexeme text to its kind
var lexemes = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, text := range kindNames {
		if k != KindNone {
			m[text] = k
		}
	}
	return m
}()

// String returns the lexeme text of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// LookupKind returns the kind for a fixed lexeme, or KindNone
func LookupKind(lexeme string) Kind {
	return lexemes[lexeme]
}

// IsTypeKeyword reports whether the kind is one of the base type keywords
func (k Kind) IsTypeKeyword() bool {
	switch k {
	case KindInt, KindChar, KindFloat, KindVoid, KindSizeT:
		return true
	}
	return false
}

// StartsType reports whether a token of this kind can begin a type specifier
func (k Kind) StartsType() bool {
	return k.IsTypeKeyword() || k == KindStruct || k == KindConst
}

// Token represents a classified lexical token
type Token struct {
	Category Category
	Lexeme   string
	Line     int
	Kind     Kind
}

// New creates a token and classifies its lexeme. Literal and EOF tokens
// never carry a fixed kind, so a string literal spelled "+" stays a literal.
func New(cat Category, lexeme string, line int) Token {
	tok := Token{Category: cat, Lexeme: lexeme, Line: line}
	if !cat.IsLiteral() && cat != CategoryEOF {
		tok.Kind = LookupKind(lexeme)
	}
	return tok
}

// EOF returns the sentinel token terminating every sequence
func EOF() Token {
	return Token{Category: CategoryEOF, Lexeme: "EOF", Line: -1}
}

// IsEOF reports whether the token is the end-of-input sentinel
func (t Token) IsEOF() bool {
	return t.Category == CategoryEOF
}

// Filter drops preprocessor and comment tokens, which the parser
// does not skip on its own.
func Filter(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Category == CategoryPreprocessor || t.Category == CategoryComment {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Terminate returns toks ending with exactly one EOF sentinel.
// Tokens after the first EOF are dropped.
func Terminate(toks []Token) []Token {
	for i, t := range toks {
		if t.IsEOF() {
			return toks[:i+1]
		}
	}
	out := make([]Token, len(toks), len(toks)+1)
	copy(out, toks)
	return append(out, EOF())
}
