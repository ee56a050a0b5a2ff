package lexer

import (
	"iter"
	"math"
)

// Scanner performs lexical analysis on rv source.
// It is pull-based: every call to Next yields exactly one token. A Scanner
// holds mutable cursor state and must not be shared between scan sessions.
type Scanner struct {
	source    []byte
	start     int // offset of the token being recognized
	cursor    int // offset of the next unconsumed byte
	line      int
	lineStart int // offset of the first byte of the current line
}

// maxSourceLen is the largest buffer whose offsets fit in a Token.
var maxSourceLen uint64 = math.MaxUint32

// NewScanner creates a new scanner for the given source.
// A nil source scans as an empty buffer. A source longer than 4 GiB - 1
// bytes yields a single MsgSourceTooLarge error token followed by EOF.
func NewScanner(source []byte) *Scanner {
	s := &Scanner{}
	s.Reset(source)
	return s
}

// Reset re-initializes the scanner with new source for pool reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.start = 0
	s.cursor = 0
	s.line = 1
	s.lineStart = 0
}

// Source returns the buffer being scanned.
func (s *Scanner) Source() []byte {
	return s.source
}

// Line returns the current 1-based line number.
func (s *Scanner) Line() int {
	return s.line
}

// Next returns the next token from the source. After the end of input is
// reached it keeps returning EOF.
func (s *Scanner) Next() Token {
	if uint64(len(s.source)) > maxSourceLen {
		s.source = s.source[:0]
		return Token{Kind: KindError, Line: 1, Column: 1, Msg: MsgSourceTooLarge}
	}

	s.skipWhitespace()
	s.start = s.cursor

	if s.isAtEnd() {
		return s.makeToken(KindEOF)
	}

	switch s.advance() {
	case ';':
		return s.makeToken(KindSemicolon)
	case ',':
		return s.makeToken(KindComma)
	case ':':
		return s.makeToken(KindColon)
	case '(':
		return s.makeToken(KindLParen)
	case ')':
		return s.makeToken(KindRParen)
	case '[':
		return s.makeToken(KindLBracket)
	case ']':
		return s.makeToken(KindRBracket)
	case '{':
		return s.makeToken(KindLBrace)
	case '}':
		return s.makeToken(KindRBrace)
	case '^':
		return s.makeToken(KindBitXor)
	case '~':
		return s.makeToken(KindBitNot)
	case '!':
		return s.makeToken(s.choose('=', KindBangEqual, KindBang))
	case '=':
		return s.makeToken(s.choose('=', KindEqualEqual, KindEqual))
	case '.':
		return s.makeToken(s.choose('.', KindDotDot, KindDot))
	case '&':
		return s.makeToken(s.choose('&', KindAnd, KindBitAnd))
	case '|':
		return s.makeToken(s.choose('|', KindOr, KindBitOr))
	case '<':
		return s.makeToken(s.choose('<', KindLeftShift, KindLess))
	case '>':
		return s.makeToken(s.choose('>', KindRightShift, KindGreater))
	case '+':
		return s.makeToken(s.choose('=', KindPlusEqual, KindPlus))
	case '-':
		return s.makeToken(s.choose('=', KindMinusEqual, KindMinus))
	case '*':
		return s.makeToken(s.choose('=', KindStarEqual, KindStar))
	case '/':
		return s.makeToken(s.choose('=', KindSlashEqual, KindSlash))
	case '%':
		return s.makeToken(s.choose('=', KindPercentEqual, KindPercent))
	case 'i':
		return s.scanTypeKeyword(signedWidths)
	case 'u':
		return s.scanTypeKeyword(unsignedWidths)
	case 'f':
		return s.scanTypeKeyword(floatWidths)
	}

	return s.errorToken(MsgUnexpectedChar)
}

// All yields tokens until and including the first EOF.
func (s *Scanner) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := s.Next()
			if !yield(tok) || tok.Kind == KindEOF {
				return
			}
		}
	}
}

// Tokenize scans src to completion with a pooled scanner. The returned
// slice always ends with the EOF token.
func Tokenize(src []byte) []Token {
	s := GetScanner(src)
	defer PutScanner(s)

	tokens := make([]Token, 0, min(len(src)/8+1, 1024))
	for tok := range s.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

type typeWidth struct {
	suffix string
	kind   Kind
}

// The first suffix byte is unique within each table.
var (
	signedWidths = []typeWidth{
		{"8", KindI8}, {"16", KindI16}, {"32", KindI32}, {"64", KindI64},
	}
	unsignedWidths = []typeWidth{
		{"8", KindU8}, {"16", KindU16}, {"32", KindU32}, {"64", KindU64},
	}
	floatWidths = []typeWidth{
		{"32", KindF32}, {"64", KindF64},
	}
)

// scanTypeKeyword matches the width suffix after a type prefix letter.
// Suffix bytes are consumed only while they continue a known width.
func (s *Scanner) scanTypeKeyword(widths []typeWidth) Token {
	for _, w := range widths {
		if s.peek() != w.suffix[0] {
			continue
		}
		for i := 0; i < len(w.suffix); i++ {
			if s.peek() != w.suffix[i] {
				return s.errorToken(MsgInvalidWidth)
			}
			s.cursor++
		}
		return s.makeToken(w.kind)
	}
	return s.errorToken(MsgUnexpectedChar)
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		switch s.source[s.cursor] {
		case ' ', '\t', '\r':
			s.cursor++
		case '\n':
			s.line++
			s.cursor++
			s.lineStart = s.cursor
		case '/':
			if s.peekNext() != '/' {
				return
			}
			s.skipComment()
		default:
			return
		}
	}
}

// skipComment stops before the terminating newline so line accounting
// stays in skipWhitespace.
func (s *Scanner) skipComment() {
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.cursor >= len(s.source)
}

func (s *Scanner) advance() byte {
	ch := s.source[s.cursor]
	s.cursor++
	return ch
}

func (s *Scanner) peek() byte {
	if s.cursor >= len(s.source) {
		return 0
	}
	return s.source[s.cursor]
}

func (s *Scanner) peekNext() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

// choose consumes expected if it is next and returns the matching kind.
func (s *Scanner) choose(expected byte, two, one Kind) Kind {
	if s.cursor < len(s.source) && s.source[s.cursor] == expected {
		s.cursor++
		return two
	}
	return one
}

func (s *Scanner) makeToken(kind Kind) Token {
	return Token{
		Kind:   kind,
		Offset: uint32(s.start),
		Length: uint32(s.cursor - s.start),
		Line:   uint32(s.line),
		Column: uint32(s.start - s.lineStart + 1),
	}
}

func (s *Scanner) errorToken(msg string) Token {
	tok := s.makeToken(KindError)
	tok.Msg = msg
	return tok
}
