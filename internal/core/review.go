package core

import (
	"fmt"
	"time"

	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/cellularmitosis/retainn/pkg/oid"
)

// Answer is the outcome of a card review.
type Answer string

const (
	AnswerRecall Answer = "recall"
	AnswerForget Answer = "forget"
	AnswerSkip   Answer = "skip"
)

// ParseAnswer validates an answer received from the user.
func ParseAnswer(value string) (Answer, error) {
	switch Answer(value) {
	case AnswerRecall, AnswerForget, AnswerSkip:
		return Answer(value), nil
	}
	return "", fmt.Errorf("invalid answer %q (expected %s, %s or %s)", value, AnswerRecall, AnswerForget, AnswerSkip)
}

// NextCard returns the best card to review, or nil when every card
// has already been seen since the start of the session.
//
// Cards with the lowest score come first. On ties, the card not seen
// for the longest time wins, never-seen cards first.
func NextCard(sessionStart time.Time) (*Card, error) {
	return QueryCard(CurrentDB().Client(), `
		WHERE card.last_seen_at = '' OR card.last_seen_at < ?
		ORDER BY card.score ASC, card.last_seen_at ASC, card.oid ASC
		LIMIT 1`, timeToSQL(sessionStart))
}

// Recall records a successful review.
// A card recalled after being forgotten starts again at 1.
func Recall(card *Card) error {
	if card.Score < 1 {
		card.Score = 1
	} else {
		card.Score++
	}
	return markSeen(card)
}

// Forget records a failed review.
// A card forgotten after being recalled starts again at -1.
func Forget(card *Card) error {
	if card.Score > 1 {
		card.Score = -1
	} else {
		card.Score--
	}
	return markSeen(card)
}

// Skip postpones a card to the next session without changing its score.
func Skip(card *Card) error {
	return markSeen(card)
}

// Review applies an answer to the card with the given OID.
func Review(cardOID oid.OID, answer Answer) (*Card, error) {
	card, err := LoadCardByOID(cardOID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("unknown card %s", cardOID)
	}
	switch answer {
	case AnswerRecall:
		err = Recall(card)
	case AnswerForget:
		err = Forget(card)
	case AnswerSkip:
		err = Skip(card)
	default:
		err = fmt.Errorf("invalid answer %q", answer)
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

func markSeen(card *Card) error {
	card.LastSeenAt = clock.Now()
	return card.SaveReview()
}
