package diag

import (
	"sync"

	"github.com/agenthands/rvlex/pkg/compiler/lexer"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Lexer diagnostic codes.
const (
	CodeUnexpectedChar = "L0001"
	CodeInvalidWidth   = "L0002"
	CodeSourceTooLarge = "L0003"
)

// Diagnostic is a located message produced while scanning a file.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Path     string
	Line     int
	Column   int
	Length   int
	Help     string
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: message}
}

// WithCode sets the error code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithHelp sets a suggestion for fixing the error
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// At sets the location of the diagnostic
func (d *Diagnostic) At(path string, line, column, length int) *Diagnostic {
	d.Path = path
	d.Line = line
	d.Column = column
	d.Length = length
	return d
}

// FromToken converts an error token into a diagnostic. It returns nil for
// any other kind of token.
func FromToken(path string, tok lexer.Token) *Diagnostic {
	if !tok.IsError() {
		return nil
	}

	d := NewError(tok.Msg).At(path, int(tok.Line), int(tok.Column), int(tok.Length))
	switch tok.Msg {
	case lexer.MsgInvalidWidth:
		return d.WithCode(CodeInvalidWidth).
			WithHelp("valid widths are i8 i16 i32 i64 u8 u16 u32 u64 f32 f64")
	case lexer.MsgSourceTooLarge:
		return d.WithCode(CodeSourceTooLarge).
			WithHelp("split the input into files smaller than 4 GiB")
	default:
		return d.WithCode(CodeUnexpectedChar).
			WithHelp("remove or replace this character")
	}
}

// FromTokens collects a diagnostic for every error token.
func FromTokens(path string, tokens []lexer.Token) []*Diagnostic {
	var out []*Diagnostic
	for _, tok := range tokens {
		if d := FromToken(path, tok); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Bag collects diagnostics from concurrent scan sessions.
type Bag struct {
	mu          sync.Mutex
	diagnostics []*Diagnostic
	errorCount  int
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(ds ...*Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, d := range ds {
		b.diagnostics = append(b.diagnostics, d)
		if d.Severity == Error {
			b.errorCount++
		}
	}
}

func (b *Bag) HasErrors() bool {
	return b.ErrorCount() > 0
}

func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// Diagnostics returns a snapshot of the collected diagnostics.
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	return out
}
