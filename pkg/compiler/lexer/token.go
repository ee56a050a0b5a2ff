package lexer

import "strconv"

// Kind represents the type of token identified by the scanner.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError

	// Punctuation
	KindSemicolon // ;
	KindComma     // ,
	KindColon     // :
	KindLParen    // (
	KindRParen    // )
	KindLBracket  // [
	KindRBracket  // ]
	KindLBrace    // {
	KindRBrace    // }

	// One or two character operators
	KindBang         // !
	KindBangEqual    // !=
	KindEqual        // =
	KindEqualEqual   // ==
	KindDot          // .
	KindDotDot       // ..
	KindBitAnd       // &
	KindAnd          // &&
	KindBitOr        // |
	KindOr           // ||
	KindBitXor       // ^
	KindBitNot       // ~
	KindLess         // <
	KindLeftShift    // <<
	KindGreater      // >
	KindRightShift   // >>
	KindPlus         // +
	KindPlusEqual    // +=
	KindMinus        // -
	KindMinusEqual   // -=
	KindStar         // *
	KindStarEqual    // *=
	KindSlash        // /
	KindSlashEqual   // /=
	KindPercent      // %
	KindPercentEqual // %=

	// Numeric type keywords
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64

	kindCount
)

var kindNames = [kindCount]string{
	KindEOF:          "EOF",
	KindError:        "ERROR",
	KindSemicolon:    ";",
	KindComma:        ",",
	KindColon:        ":",
	KindLParen:       "(",
	KindRParen:       ")",
	KindLBracket:     "[",
	KindRBracket:     "]",
	KindLBrace:       "{",
	KindRBrace:       "}",
	KindBang:         "!",
	KindBangEqual:    "!=",
	KindEqual:        "=",
	KindEqualEqual:   "==",
	KindDot:          ".",
	KindDotDot:       "..",
	KindBitAnd:       "&",
	KindAnd:          "&&",
	KindBitOr:        "|",
	KindOr:           "||",
	KindBitXor:       "^",
	KindBitNot:       "~",
	KindLess:         "<",
	KindLeftShift:    "<<",
	KindGreater:      ">",
	KindRightShift:   ">>",
	KindPlus:         "+",
	KindPlusEqual:    "+=",
	KindMinus:        "-",
	KindMinusEqual:   "-=",
	KindStar:         "*",
	KindStarEqual:    "*=",
	KindSlash:        "/",
	KindSlashEqual:   "/=",
	KindPercent:      "%",
	KindPercentEqual: "%=",
	KindI8:           "i8",
	KindI16:          "i16",
	KindI32:          "i32",
	KindI64:          "i64",
	KindU8:           "u8",
	KindU16:          "u16",
	KindU32:          "u32",
	KindU64:          "u64",
	KindF32:          "f32",
	KindF64:          "f64",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsTypeKeyword reports whether k is one of the fixed-width numeric types.
func (k Kind) IsTypeKeyword() bool {
	return k >= KindI8 && k <= KindF64
}

// Diagnostic messages carried by error tokens.
const (
	MsgUnexpectedChar = "Unexpected character."
	MsgInvalidWidth   = "Invalid numeric type width."
	MsgSourceTooLarge = "Source too large."
)

// Token represents a lexical unit pointing back to the source.
// Offset and Length address the lexeme inside the scanned buffer; the
// token never owns a copy of it. Error tokens additionally carry a static
// message in Msg while Offset/Length still locate the offending bytes.
type Token struct {
	Kind   Kind
	Offset uint32
	Length uint32
	Line   uint32
	Column uint32
	Msg    string
}

// IsError reports whether the token is a lexical error marker.
func (t Token) IsError() bool {
	return t.Kind == KindError
}

// Bytes returns the lexeme as a slice of src without copying.
func (t Token) Bytes(src []byte) []byte {
	end := int(t.Offset + t.Length)
	if end > len(src) || int(t.Offset) > end {
		return nil
	}
	return src[t.Offset:end]
}

// Text returns the diagnostic message for error tokens and the lexeme for
// everything else.
func (t Token) Text(src []byte) string {
	if t.Kind == KindError {
		return t.Msg
	}
	return string(t.Bytes(src))
}
