package sexpr

import "github.com/rixed/dessser/token"

// Quote and Unquote delegate to token's quoting primitives, already
// shared with the schema and expression-IR parsers (package token's
// own doc comment notes this reference codec is where the "FIXME:
// doesn't escape embedded quotes" issue from the original dessser is
// resolved).
func Quote(v string) string { return token.QuoteString(v) }

func Unquote(src string) (string, error) {
	c := token.NewCursor([]byte(src))
	s, err := token.ScanQuotedString(c)
	if err != nil {
		return "", err
	}
	return s, nil
}

// nullLiteral is the four-byte sequence §6 reserves for a nullable
// value's null marker.
const nullLiteral = "null"

const (
	trueByte  = 'T'
	falseByte = 'F'
)
