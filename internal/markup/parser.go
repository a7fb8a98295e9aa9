package markup

import (
	"bytes"
	"fmt"
)

// Stage identifies which construct failed to parse.
type Stage int

const (
	StageUnterminatedCodeFence Stage = iota + 1
	StageMissingBackSeparator
	StageMissingTrailingMarker
)

func (s Stage) String() string {
	switch s {
	case StageUnterminatedCodeFence:
		return "unterminated code fence"
	case StageMissingBackSeparator:
		return "missing back separator"
	case StageMissingTrailingMarker:
		return "missing trailing marker"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ParseError reports why a deck cannot be parsed.
// Index is the position of the token where the failing construct started.
type ParseError struct {
	Stage Stage
	Index int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid deck: %s (token %d)", e.Stage, e.Index)
}

// Is matches errors of the same stage whatever the index.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Stage == e.Stage
}

var (
	ErrUnterminatedCodeFence = &ParseError{Stage: StageUnterminatedCodeFence}
	ErrMissingBackSeparator  = &ParseError{Stage: StageMissingBackSeparator}
	ErrMissingTrailingMarker = &ParseError{Stage: StageMissingTrailingMarker}
)

// Deck is the syntax tree of a whole deck document.
type Deck struct {
	Preamble *Preamble
	Cards    []*Card
	Last     Token
}

// Preamble is the text before the first card.
type Preamble struct {
	Text []byte
}

// Card is a front/back pair with the separators introducing each side.
type Card struct {
	FrontMarker Token
	Front       []byte
	BackMarker  Token
	Back        []byte
}

// Parse lexes and parses a deck document.
func Parse(text []byte) (*Deck, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}
	deck, _, err := ParseDeck(tokens, 0)
	return deck, err
}

// ParseDeck parses a deck starting at the token index.
// It returns the deck and the index of the first token after the trailing marker.
// On failure, the returned index is the start index.
func ParseDeck(tokens []Token, index int) (*Deck, int, error) {
	preamble, next, err := parsePreamble(tokens, index)
	if err != nil {
		return nil, index, err
	}

	var cards []*Card
	var last *Token
	for next < len(tokens) {
		card, after, err := parseCard(tokens, next)
		if err != nil {
			return nil, index, err
		}
		cards = append(cards, card)
		next = after

		if next < len(tokens) && tokens[next].Kind == TokenLast {
			last = &tokens[next]
			next++
			break
		}
	}
	if last == nil {
		return nil, index, &ParseError{Stage: StageMissingTrailingMarker, Index: next}
	}

	return &Deck{
		Preamble: preamble,
		Cards:    cards,
		Last:     *last,
	}, next, nil
}

// parseCode consumes a fenced block including both fences.
func parseCode(tokens []Token, index int) ([]byte, int, error) {
	if tokens[index].Kind != TokenCode {
		panic(fmt.Sprintf("parseCode: expected a code token at %d, got %s", index, tokens[index]))
	}

	var text bytes.Buffer
	text.Write(tokens[index].Text)
	for next := index + 1; next < len(tokens); next++ {
		text.Write(tokens[next].Text)
		if tokens[next].Kind == TokenCode {
			return text.Bytes(), next + 1, nil
		}
	}
	return nil, index, &ParseError{Stage: StageUnterminatedCodeFence, Index: index}
}

// accumulate appends token texts until stop returns true (the stopping token is not consumed)
// or the stream ends. Fenced blocks are consumed as a whole so that the separators
// they contain are never considered.
func accumulate(tokens []Token, index int, stop func(Kind) bool) ([]byte, int, error) {
	var text bytes.Buffer
	next := index
	for next < len(tokens) {
		token := tokens[next]
		if stop(token.Kind) {
			break
		}
		if token.Kind == TokenCode {
			code, after, err := parseCode(tokens, next)
			if err != nil {
				return nil, index, err
			}
			text.Write(code)
			next = after
			continue
		}
		text.Write(token.Text)
		next++
	}
	return text.Bytes(), next, nil
}

func parsePreamble(tokens []Token, index int) (*Preamble, int, error) {
	text, next, err := accumulate(tokens, index, func(k Kind) bool {
		return k == TokenFront
	})
	if err != nil {
		return nil, index, err
	}
	return &Preamble{Text: text}, next, nil
}

func parseCard(tokens []Token, index int) (*Card, int, error) {
	frontMarker := tokens[index]
	if frontMarker.Kind != TokenFront {
		panic(fmt.Sprintf("parseCard: expected a front separator at %d, got %s", index, frontMarker))
	}

	front, next, err := accumulate(tokens, index+1, func(k Kind) bool {
		return k == TokenBack
	})
	if err != nil {
		return nil, index, err
	}
	if next >= len(tokens) {
		return nil, index, &ParseError{Stage: StageMissingBackSeparator, Index: index}
	}
	backMarker := tokens[next]

	back, next, err := accumulate(tokens, next+1, func(k Kind) bool {
		return k == TokenFront || k == TokenLast
	})
	if err != nil {
		return nil, index, err
	}

	return &Card{
		FrontMarker: frontMarker,
		Front:       front,
		BackMarker:  backMarker,
		Back:        back,
	}, next, nil
}
