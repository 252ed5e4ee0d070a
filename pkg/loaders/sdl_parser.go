package loaders

import (
	"fmt"
	"strconv"
	"strings"
)

type litKind int

const (
	litString litKind = iota
	litInt
	litDouble
	litTuple
	litObject
)

// literal is a parsed value with its source span
type literal struct {
	kind    litKind
	str     string  // Unquoted contents for litString
	integer int64   // litInt
	double  float64 // litDouble
	items   []*literal
	fields  []field
	start   int
	end     int
}

type ident struct {
	name  string
	start int
	end   int
}

type field struct {
	key   ident
	value *literal
}

// sceneEntry is one top-level `Name { key: value, ... }` block
type sceneEntry struct {
	name   ident
	fields []field
}

// sdlParser is a recursive descent parser over the lexer's token stream.
// Syntax errors stop parsing; semantic checks happen afterwards.
type sdlParser struct {
	lex *lexer
	tok token
}

func parseSceneEntries(source string) ([]sceneEntry, *ParseError) {
	p := &sdlParser{lex: &lexer{source: source}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var entries []sceneEntry
	for p.tok.kind != tokenEOF {
		entry, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		if p.tok.kind == tokenSemicolon {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}

func (p *sdlParser) advance() *ParseError {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *sdlParser) unexpected(expected ...tokenKind) *ParseError {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}

	if p.tok.kind == tokenEOF {
		return newParseError(p.lex.source, p.tok.start, -1,
			"Unexpected EOF. Expected one of [ %s ]", strings.Join(names, ", "))
	}
	return newParseError(p.lex.source, p.tok.start, p.tok.end,
		"Unrecognized token '%s'. Expected one of [ %s ]", p.tok.text, strings.Join(names, ", "))
}

func (p *sdlParser) expect(kind tokenKind) (token, *ParseError) {
	if p.tok.kind != kind {
		return token{}, p.unexpected(kind)
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *sdlParser) parseEntry() (sceneEntry, *ParseError) {
	nameTok, err := p.expect(tokenIdent)
	if err != nil {
		return sceneEntry{}, err
	}

	fields, _, err := p.parseFields()
	if err != nil {
		return sceneEntry{}, err
	}

	return sceneEntry{
		name:   ident{name: nameTok.text, start: nameTok.start, end: nameTok.end},
		fields: fields,
	}, nil
}

// parseFields parses `{ key: value, ... }` and returns the fields and the closing offset
func (p *sdlParser) parseFields() ([]field, int, *ParseError) {
	if _, err := p.expect(tokenLBrace); err != nil {
		return nil, 0, err
	}

	var fields []field
	for p.tok.kind != tokenRBrace {
		keyTok, err := p.expect(tokenIdent)
		if err != nil {
			if p.tok.kind != tokenIdent {
				err = p.unexpected(tokenIdent, tokenRBrace)
			}
			return nil, 0, err
		}
		if _, err := p.expect(tokenColon); err != nil {
			return nil, 0, err
		}
		value, err := p.parseLiteral()
		if err != nil {
			return nil, 0, err
		}
		fields = append(fields, field{
			key:   ident{name: keyTok.text, start: keyTok.start, end: keyTok.end},
			value: value,
		})

		if p.tok.kind != tokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, 0, err
		}
	}

	closing, err := p.expect(tokenRBrace)
	if err != nil {
		if p.tok.kind != tokenRBrace {
			err = p.unexpected(tokenComma, tokenRBrace)
		}
		return nil, 0, err
	}
	return fields, closing.end, nil
}

func (p *sdlParser) parseLiteral() (*literal, *ParseError) {
	tok := p.tok
	switch tok.kind {
	case tokenString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &literal{kind: litString, str: tok.text[1 : len(tok.text)-1], start: tok.start, end: tok.end}, nil

	case tokenInt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, newParseError(p.lex.source, tok.start, tok.end, "Integer '%s' out of range", tok.text)
		}
		return &literal{kind: litInt, integer: v, start: tok.start, end: tok.end}, nil

	case tokenDouble:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, newParseError(p.lex.source, tok.start, tok.end, "Number '%s' out of range", tok.text)
		}
		return &literal{kind: litDouble, double: v, start: tok.start, end: tok.end}, nil

	case tokenLParen:
		return p.parseTuple()

	case tokenLBrace:
		fields, end, err := p.parseFields()
		if err != nil {
			return nil, err
		}
		return &literal{kind: litObject, fields: fields, start: tok.start, end: end}, nil

	default:
		return nil, p.unexpected(tokenString, tokenInt, tokenDouble, tokenLParen, tokenLBrace)
	}
}

func (p *sdlParser) parseTuple() (*literal, *ParseError) {
	open, err := p.expect(tokenLParen)
	if err != nil {
		return nil, err
	}

	lit := &literal{kind: litTuple, start: open.start}
	for p.tok.kind != tokenRParen {
		item, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		lit.items = append(lit.items, item)

		if p.tok.kind != tokenComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	closing, err := p.expect(tokenRParen)
	if err != nil {
		if p.tok.kind != tokenRParen {
			err = p.unexpected(tokenComma, tokenRParen)
		}
		return nil, err
	}
	lit.end = closing.end
	return lit, nil
}

// typeString describes a literal's type the way error messages show it
func (l *literal) typeString() string {
	switch l.kind {
	case litString:
		return typeStr
	case litInt:
		return typeInt
	case litDouble:
		return typeDouble
	case litTuple:
		parts := make([]string, len(l.items))
		for i, item := range l.items {
			parts[i] = item.typeString()
		}
		return "( " + strings.Join(parts, ", ") + " )"
	default:
		parts := make([]string, len(l.fields))
		for i, f := range l.fields {
			parts[i] = fmt.Sprintf("%s: %s", f.key.name, f.value.typeString())
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}
}

const (
	typeStr    = "Str"
	typeDouble = "f64"
	typeInt    = "int"
	typeU32    = "u32"
	typeU8     = "u8"
	typeVec3   = "( f64, f64, f64 )"
	typeColor  = "( u8, u8, u8 )"
	typeObject = "{}"
)
