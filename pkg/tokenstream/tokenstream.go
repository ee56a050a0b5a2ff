// Package tokenstream serializes scanned token streams for inspection and
// storage.
package tokenstream

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/agenthands/rvlex/pkg/compiler/lexer"
)

var ErrUnknownFormat = errors.New("tokenstream: unknown format")

type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatBSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatBSON:
		return "bson"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "bson":
		return FormatBSON, nil
	}
	return 0, errors.Wrap(ErrUnknownFormat, s)
}

// Record is a self-contained copy of a token, detached from its source.
type Record struct {
	Kind   string `json:"kind" bson:"kind"`
	Text   string `json:"text" bson:"text"`
	Offset uint32 `json:"offset" bson:"offset"`
	Length uint32 `json:"length" bson:"length"`
	Line   uint32 `json:"line" bson:"line"`
	Column uint32 `json:"column" bson:"column"`
}

type Document struct {
	Path   string   `json:"path" bson:"path"`
	Tokens []Record `json:"tokens" bson:"tokens"`
	Errors int      `json:"errors" bson:"errors"`
}

func NewDocument(path string, src []byte, tokens []lexer.Token) *Document {
	doc := &Document{Path: path, Tokens: make([]Record, 0, len(tokens))}
	for _, tok := range tokens {
		if tok.IsError() {
			doc.Errors++
		}
		doc.Tokens = append(doc.Tokens, Record{
			Kind:   tok.Kind.String(),
			Text:   tok.Text(src),
			Offset: tok.Offset,
			Length: tok.Length,
			Line:   tok.Line,
			Column: tok.Column,
		})
	}
	return doc
}

// Encode writes doc to w in format f, optionally zstd-compressed.
func Encode(w io.Writer, doc *Document, f Format, compress bool) (err error) {
	if compress {
		enc, zerr := zstd.NewWriter(w)
		if zerr != nil {
			return errors.Wrap(zerr, "tokenstream: zstd writer")
		}
		defer func() {
			if cerr := enc.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "tokenstream: zstd close")
			}
		}()
		w = enc
	}

	switch f {
	case FormatText:
		return WriteListing(w, doc, false)
	case FormatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return errors.Wrap(e.Encode(doc), "tokenstream: json encode")
	case FormatBSON:
		data, merr := bson.Marshal(doc)
		if merr != nil {
			return errors.Wrap(merr, "tokenstream: bson marshal")
		}
		_, werr := w.Write(data)
		return errors.Wrap(werr, "tokenstream: write")
	}
	return errors.Wrap(ErrUnknownFormat, f.String())
}

// WriteListing prints one line per token in the debug layout
// "line | Type: kind | 'text'". Error tokens are highlighted when color is set.
func WriteListing(w io.Writer, doc *Document, color bool) error {
	r := lipgloss.NewRenderer(w)
	errStyle := r.NewStyle().Foreground(lipgloss.Color("9"))
	kwStyle := r.NewStyle().Foreground(lipgloss.Color("13"))

	for _, rec := range doc.Tokens {
		line := fmt.Sprintf("%4d | Type: %-6s | '%s'", rec.Line, rec.Kind, rec.Text)
		if color {
			switch {
			case rec.Kind == lexer.KindError.String():
				line = errStyle.Render(line)
			case isTypeKeyword(rec.Kind):
				line = kwStyle.Render(line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.Wrap(err, "tokenstream: write")
		}
	}
	return nil
}

func isTypeKeyword(kind string) bool {
	for k := lexer.KindI8; k <= lexer.KindF64; k++ {
		if k.String() == kind {
			return true
		}
	}
	return false
}
