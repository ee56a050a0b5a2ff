package lexer_test

import (
	"bytes"
	"testing"

	"github.com/agenthands/rvlex/pkg/compiler/lexer"
)

func FuzzScanner(f *testing.F) {
	f.Add([]byte("i64 == ; // comment\n:"))
	f.Add([]byte("u1 f6 i3 @ <<= >>= ..."))
	f.Add([]byte("//"))
	f.Add([]byte{0, '\n', 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		s := lexer.GetScanner(data)
		defer lexer.PutScanner(s)

		var line uint32 = 1
		end := uint32(0)
		// Every non-EOF token consumes at least one byte.
		for i := 0; i <= len(data); i++ {
			tok := s.Next()
			if tok.Line < line {
				t.Fatalf("line went backwards: %d after %d", tok.Line, line)
			}
			line = tok.Line
			if tok.Offset < end || tok.Offset+tok.Length > uint32(len(data)) {
				t.Fatalf("token %v out of bounds [%d, %d)", tok, end, len(data))
			}
			end = tok.Offset + tok.Length

			if tok.Kind == lexer.KindEOF {
				if tok.Length != 0 || tok.Offset != uint32(len(data)) {
					t.Fatalf("bad EOF token %v", tok)
				}
				if want := uint32(1 + bytes.Count(data, []byte{'\n'})); tok.Line != want {
					t.Fatalf("EOF line %d, want %d", tok.Line, want)
				}
				return
			}
			if tok.Length == 0 {
				t.Fatalf("empty non-EOF token %v", tok)
			}
		}
		t.Fatalf("scanner did not terminate on %q", data)
	})
}

func BenchmarkScanner(b *testing.B) {
	src := bytes.Repeat([]byte("i64 == u8; // note\n{ f32 += f64 } [ a ] <<= >> %= @\n"), 256)
	s := lexer.NewScanner(src)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		s.Reset(src)
		for s.Next().Kind != lexer.KindEOF {
		}
	}
}
