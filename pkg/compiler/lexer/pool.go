package lexer

import "sync"

var scannerPool = sync.Pool{
	New: func() any {
		return NewScanner(nil)
	},
}

// GetScanner returns a pooled scanner bound to source. The caller owns it
// exclusively until it is handed back with PutScanner.
func GetScanner(source []byte) *Scanner {
	s := scannerPool.Get().(*Scanner)
	s.Reset(source)
	return s
}

// PutScanner returns s to the pool. The scanner drops its reference to the
// caller's source so the buffer can be collected.
func PutScanner(s *Scanner) {
	s.Reset(nil)
	scannerPool.Put(s)
}
