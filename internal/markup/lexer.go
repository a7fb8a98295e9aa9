package markup

import (
	"bytes"
	"fmt"
)

// Kind classifies a token.
type Kind int

const (
	TokenOther Kind = iota
	TokenCode
	TokenFront
	TokenBack
	TokenLast
)

func (k Kind) String() string {
	switch k {
	case TokenCode:
		return "code"
	case TokenFront:
		return "front"
	case TokenBack:
		return "back"
	case TokenLast:
		return "last"
	default:
		return "other"
	}
}

// IsSeparator returns if the kind delimits a card or the end of a deck.
func (k Kind) IsSeparator() bool {
	return k == TokenFront || k == TokenBack || k == TokenLast
}

// Token is a typed substring of a deck.
type Token struct {
	Kind Kind
	Text []byte
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// How many bytes of input to include in a LexError.
const lexErrorContext = 16

// The order matters: TokenLast is a prefix of TokenFront.
var patterns = []struct {
	kind Kind
	text []byte
}{
	{TokenCode, []byte("\n```")},
	{TokenFront, []byte("\n\n---\n\n")},
	{TokenBack, []byte("\n\n%\n\n")},
	{TokenLast, []byte("\n\n---\n")},
}

var fence = []byte("```")

// LexError reports a position where no token could be matched.
type LexError struct {
	Offset  int
	Context []byte
}

func (e *LexError) Error() string {
	return fmt.Sprintf("couldn't match any token (offset %d, context: %q)", e.Offset, e.Context)
}

// Lex splits the deck text into tokens.
// Tokens are dense: concatenating their texts gives back the input.
func Lex(text []byte) ([]Token, error) {
	// Tokens are slices of our own copy, never of the caller's buffer
	text = bytes.Clone(text)

	var tokens []Token
	lineStart := true
	for offset := 0; offset < len(text); {
		token, ok := matchToken(text[offset:], lineStart)
		if !ok {
			end := min(offset+lexErrorContext, len(text))
			return nil, &LexError{
				Offset:  offset,
				Context: text[offset:end],
			}
		}
		tokens = append(tokens, token)
		offset += len(token.Text)
		// All separators end with a newline
		lineStart = token.Kind.IsSeparator()
	}
	return tokens, nil
}

func matchToken(rest []byte, lineStart bool) (Token, bool) {
	// A fence opening a line right after a separator (or at the very
	// beginning) has no newline of its own left to anchor on.
	if lineStart && bytes.HasPrefix(rest, fence) {
		return Token{Kind: TokenCode, Text: rest[:len(fence)]}, true
	}
	for _, pattern := range patterns {
		if bytes.HasPrefix(rest, pattern.text) {
			return Token{Kind: pattern.kind, Text: rest[:len(pattern.text)]}, true
		}
	}
	if len(rest) > 0 {
		return Token{Kind: TokenOther, Text: rest[:1]}, true
	}
	return Token{}, false
}
