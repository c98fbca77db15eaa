// Package token defines the lexical tokens of chisel script and the
// position and comment value types shared by the parser and printer.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int

//nolint:revive // token names follow lexer conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	NEWLINE // statement separator

	// Literals
	IDENT  // identifier
	INT    // 123
	FLOAT  // 45.67
	STRING // "hello"

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	EQ     // ==
	NE     // !=
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	ASSIGN // =
	COMMA  // ,
	LPAREN // (
	RPAREN // )
	LBRACK // [
	RBRACK // ]
	AT     // @

	// Keywords
	AND
	OR
	TRUE
	FALSE
	NIL
	DO
	END
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE",
	IDENT:   "IDENT",
	INT:     "INT",
	FLOAT:   "FLOAT",
	STRING:  "STRING",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	EQ:      "==",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	ASSIGN:  "=",
	COMMA:   ",",
	LPAREN:  "(",
	RPAREN:  ")",
	LBRACK:  "[",
	RBRACK:  "]",
	AT:      "@",
	AND:     "and",
	OR:      "or",
	TRUE:    "true",
	FALSE:   "false",
	NIL:     "nil",
	DO:      "do",
	END:     "end",
}

// String returns the name or literal spelling of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps keyword spellings to their token types.
var keywords = map[string]TokenType{
	"and":   AND,
	"or":    OR,
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,
	"do":    DO,
	"end":   END,
}

// LookupIdent returns the keyword token for an identifier spelling,
// or IDENT if it is not a keyword.
func LookupIdent(name string) TokenType {
	if t, ok := keywords[name]; ok {
		return t
	}
	return IDENT
}

// Token is a lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String returns a debug form of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}
