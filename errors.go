package xexpr

import "fmt"

// ParseError is a lexical, syntactic, or structural failure raised while
// parsing a single expression. Pos is the rune offset of the offending input
// for lexical errors and the offset of the offending token otherwise. The
// first error aborts the whole parse; no partial tree is returned.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

func errPos(pos int, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
