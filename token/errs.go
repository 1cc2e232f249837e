package token

import "fmt"

// SyntaxError is the common error shape raised by every tokenizer and
// recursive-descent parser in this module: a message plus the position
// where it was detected.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

func Expected(c *Cursor, what string) error {
	return &SyntaxError{Pos: c.Pos, Msg: "expected " + what}
}

func Unexpected(c *Cursor, what string) error {
	return &SyntaxError{Pos: c.Pos, Msg: "unexpected " + what}
}
