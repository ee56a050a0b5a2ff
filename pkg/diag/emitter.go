package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Emitter renders diagnostics with a source snippet and caret underline:
//
//	error[L0001]: Unexpected character.
//	  --> main.rv:1:5
//	   |
//	 1 | i32 @
//	   |     ^
//	   = help: remove or replace this character
type Emitter struct {
	w     io.Writer
	color bool

	errorStyle lipgloss.Style
	gutter     lipgloss.Style
	caret      lipgloss.Style
	help       lipgloss.Style
}

func NewEmitter(w io.Writer, color bool) *Emitter {
	r := lipgloss.NewRenderer(w)
	return &Emitter{
		w:          w,
		color:      color,
		errorStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		gutter:     r.NewStyle().Foreground(lipgloss.Color("12")),
		caret:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		help:       r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

func (e *Emitter) paint(style lipgloss.Style, s string) string {
	if !e.color {
		return s
	}
	return style.Render(s)
}

// Emit writes d. lines holds the file content split by line and may be nil
// when no snippet is available.
func (e *Emitter) Emit(d *Diagnostic, lines []string) {
	header := d.Severity.String()
	if d.Code != "" {
		header += "[" + d.Code + "]"
	}
	fmt.Fprintf(e.w, "%s: %s\n", e.paint(e.errorStyle, header), d.Message)

	lineNo := strconv.Itoa(d.Line)
	pad := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(e.w, "%s%s %s:%d:%d\n", pad, e.paint(e.gutter, "-->"), d.Path, d.Line, d.Column)

	if d.Line >= 1 && d.Line <= len(lines) {
		text := lines[d.Line-1]
		bar := e.paint(e.gutter, "|")
		fmt.Fprintf(e.w, "%s %s\n", pad, bar)
		fmt.Fprintf(e.w, "%s %s %s\n", e.paint(e.gutter, lineNo), bar, text)
		fmt.Fprintf(e.w, "%s %s %s%s\n", pad, bar, indentFor(text, d.Column), e.paint(e.caret, strings.Repeat("^", max(d.Length, 1))))
	}

	if d.Help != "" {
		fmt.Fprintf(e.w, "%s %s %s\n", pad, e.paint(e.gutter, "="), e.paint(e.help, "help: "+d.Help))
	}
}

// Summary writes the closing line for a scan run.
func (e *Emitter) Summary(b *Bag) {
	if errs := b.ErrorCount(); errs > 0 {
		fmt.Fprintf(e.w, "\nScan failed with %d error(s)\n", errs)
	}
}

// indentFor reproduces tabs from text so the caret lines up under column.
func indentFor(text string, column int) string {
	var b strings.Builder
	for i := 0; i < column-1; i++ {
		if i < len(text) && text[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
