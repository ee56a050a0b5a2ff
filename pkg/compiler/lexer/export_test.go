package lexer

// SetMaxSourceLen lowers the source size limit for a test.
func SetMaxSourceLen(n uint64) (restore func()) {
	old := maxSourceLen
	maxSourceLen = n
	return func() { maxSourceLen = old }
}
