package loaders

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenInt
	tokenDouble
	tokenLBrace
	tokenRBrace
	tokenLParen
	tokenRParen
	tokenColon
	tokenComma
	tokenSemicolon
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenString:
		return "string"
	case tokenInt:
		return "integer"
	case tokenDouble:
		return "number"
	case tokenLBrace:
		return `"{"`
	case tokenRBrace:
		return `"}"`
	case tokenLParen:
		return `"("`
	case tokenRParen:
		return `")"`
	case tokenColon:
		return `":"`
	case tokenComma:
		return `","`
	case tokenSemicolon:
		return `";"`
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

var punctuation = map[rune]tokenKind{
	'{': tokenLBrace, '}': tokenRBrace,
	'(': tokenLParen, ')': tokenRParen,
	':': tokenColon, ',': tokenComma, ';': tokenSemicolon,
}

type token struct {
	kind  tokenKind
	text  string
	start int // Byte offsets into the source, end exclusive
	end   int
}

// lexer splits scene source into tokens, skipping whitespace and // or # comments
type lexer struct {
	source string
	pos    int
}

func (l *lexer) peekRune(offset int) rune {
	if l.pos+offset >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+offset:])
	return r
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.source) {
		r, size := utf8.DecodeRuneInString(l.source[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += size
		case r == '#' || (r == '/' && l.peekRune(1) == '/'):
			for l.pos < len(l.source) && l.source[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

// next returns the next token or a located error for invalid input
func (l *lexer) next() (token, *ParseError) {
	l.skipSpaceAndComments()
	start := l.pos
	if start >= len(l.source) {
		return token{kind: tokenEOF, start: start, end: start}, nil
	}

	r, size := utf8.DecodeRuneInString(l.source[start:])
	if kind, ok := punctuation[r]; ok {
		l.pos += size
		return l.token(kind, start), nil
	}

	switch {
	case r == '"':
		return l.lexString(start)
	case r == '-' || r == '+' || r == '.' || unicode.IsDigit(r):
		return l.lexNumber(start)
	case r == '_' || unicode.IsLetter(r):
		for l.pos < len(l.source) {
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.pos += size
		}
		return l.token(tokenIdent, start), nil
	default:
		return token{}, newParseError(l.source, start, start+size, "Invalid token")
	}
}

func (l *lexer) token(kind tokenKind, start int) token {
	return token{kind: kind, text: l.source[start:l.pos], start: start, end: l.pos}
}

func (l *lexer) lexString(start int) (token, *ParseError) {
	l.pos++ // opening quote
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case '"':
			l.pos++
			return l.token(tokenString, start), nil
		case '\n':
			return token{}, newParseError(l.source, start, l.pos, "Unterminated string")
		}
		l.pos++
	}
	return token{}, newParseError(l.source, start, l.pos, "Unterminated string")
}

func (l *lexer) lexNumber(start int) (token, *ParseError) {
	if c := l.source[l.pos]; c == '-' || c == '+' {
		l.pos++
	}

	digits := l.skipDigits()
	kind := tokenInt
	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		kind = tokenDouble
		l.pos++
		digits += l.skipDigits()
	}
	if digits == 0 {
		return token{}, newParseError(l.source, start, l.pos+1, "Invalid token")
	}

	if l.pos < len(l.source) && (l.source[l.pos] == 'e' || l.source[l.pos] == 'E') {
		kind = tokenDouble
		l.pos++
		if l.pos < len(l.source) && (l.source[l.pos] == '-' || l.source[l.pos] == '+') {
			l.pos++
		}
		if l.skipDigits() == 0 {
			return token{}, newParseError(l.source, start, l.pos, "Invalid number exponent")
		}
	}

	return l.token(kind, start), nil
}

func (l *lexer) skipDigits() int {
	n := 0
	for l.pos < len(l.source) && l.source[l.pos] >= '0' && l.source[l.pos] <= '9' {
		l.pos++
		n++
	}
	return n
}
