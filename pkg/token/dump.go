package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned for a "Line" record that cannot be decoded
var ErrMalformedRecord = errors.New("malformed token record")

const recordPrefix = "Line "

// ReadTokens decodes a token dump. Each token is one record of the form
//
//	Line 3 : IDENTIFIER -> count
//
// Lines not starting with "Line " are ignored and reading stops at the
// first EOF record (line -1). Preprocessor and comment tokens are dropped
// and the EOF sentinel is appended.
func ReadTokens(r io.Reader) ([]Token, error) {
	var toks []Token
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimRight(sc.Text(), "\r")
		if !strings.HasPrefix(text, recordPrefix) {
			continue
		}
		tok, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		if tok.Category == CategoryEOF {
			break
		}
		toks = append(toks, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading tokens: %w", err)
	}
	return append(Filter(toks), EOF()), nil
}

func parseRecord(text string) (Token, error) {
	rest := strings.TrimLeft(text[len(recordPrefix):], " \t")

	digits := strings.TrimPrefix(rest, "-")
	end := strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(digits)
	}
	if end == 0 {
		return Token{}, fmt.Errorf("%w: missing line number in %q", ErrMalformedRecord, text)
	}
	end += len(rest) - len(digits)
	line, err := strconv.Atoi(rest[:end])
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	rest = strings.TrimLeft(rest[end:], " \t")
	if !strings.HasPrefix(rest, ":") {
		return Token{}, fmt.Errorf("%w: missing ':' in %q", ErrMalformedRecord, text)
	}
	rest = strings.TrimLeft(rest[1:], " \t")

	arrow := strings.Index(rest, "->")
	if arrow < 0 {
		return Token{}, fmt.Errorf("%w: missing '->' in %q", ErrMalformedRecord, text)
	}
	tag := strings.TrimSpace(rest[:arrow])
	if tag == "" {
		return Token{}, fmt.Errorf("%w: missing category in %q", ErrMalformedRecord, text)
	}
	lexeme := strings.TrimPrefix(rest[arrow+2:], " ")

	return New(LookupCategory(tag), lexeme, line), nil
}

// WriteTokens encodes toks in the format read by ReadTokens.
// The EOF sentinel is not written.
func WriteTokens(w io.Writer, toks []Token) error {
	bw := bufio.NewWriter(w)
	for _, t := range toks {
		if t.IsEOF() {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s%d : %s -> %s\n", recordPrefix, t.Line, t.Category, t.Lexeme); err != nil {
			return err
		}
	}
	return bw.Flush()
}
