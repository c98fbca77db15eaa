package parser

import (
	"fmt"

	"github.com/chisellabs/chisel/pkg/token"
)

// ParseError represents a parsing error with file and position information.
// It is fatal: the caller gets no tree and no comments.
type ParseError struct {
	Path    string // may be empty
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: parse error at line %d, column %d: %s", e.Path, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages.
const (
	errUnexpectedToken    = "unexpected token %s, expected %s"
	errUnterminatedString = "unterminated string literal"
	errInvalidNumber      = "invalid number literal %q"
	errInvalidPattern     = "invalid assignment pattern (want identifier or tuple of identifiers)"
)
