package core

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cellularmitosis/retainn/internal/markup"
	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/cellularmitosis/retainn/pkg/oid"
)

// Maximum number of fingerprints per DELETE statement (SQLite limits the number of parameters)
const maxDeleteBatch = 500

type Card struct {
	OID oid.OID `yaml:"oid"`

	DeckOID oid.OID `yaml:"deck_oid"`

	// Title of the deck (denormalized field)
	DeckTitle string `yaml:"-"`

	Fingerprint Fingerprint `yaml:"fingerprint"`

	// Positive when recently recalled, negative when recently forgotten
	Score int `yaml:"score"`

	// Zero when never reviewed
	LastSeenAt time.Time `yaml:"last_seen_at,omitempty"`

	Front string `yaml:"front"`
	Back  string `yaml:"back"`

	CreatedAt time.Time `yaml:"created_at"`
}

// NewCard creates a never-seen card from a parsed card.
func NewCard(deckOID oid.OID, parsed *markup.Card) *Card {
	return &Card{
		OID:         oid.New(),
		DeckOID:     deckOID,
		Fingerprint: CardFingerprint(parsed.Front, parsed.Back),
		Front:       string(parsed.Front),
		Back:        string(parsed.Back),
		CreatedAt:   clock.Now(),
	}
}

func (c Card) String() string {
	return fmt.Sprintf("card %s (score: %d)", c.OID.Short(), c.Score)
}

/* Database Management */

func (c *Card) Insert() error {
	CurrentLogger().Debugf("Creating card %s...", c.Fingerprint)
	query := `
		INSERT INTO card(
			oid,
			deck_oid,
			fingerprint,
			score,
			last_seen_at,
			front,
			back,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
		`
	_, err := CurrentDB().Client().Exec(query,
		c.OID,
		c.DeckOID,
		c.Fingerprint,
		c.Score,
		timeToSQL(c.LastSeenAt),
		c.Front,
		c.Back,
		timeToSQL(c.CreatedAt),
	)
	return err
}

// SaveReview persists the review history. The content of a card never changes.
func (c *Card) SaveReview() error {
	CurrentLogger().Debugf("Reviewing card %s (score: %d)...", c.OID, c.Score)
	query := `
		UPDATE card
		SET score = ?, last_seen_at = ?
		WHERE oid = ?;`
	_, err := CurrentDB().Client().Exec(query,
		c.Score,
		timeToSQL(c.LastSeenAt),
		c.OID,
	)
	return err
}

// CountCards returns the total number of cards.
func CountCards() (int, error) {
	var count int
	if err := CurrentDB().Client().QueryRow(`SELECT count(*) FROM card`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountCardsByDeckOID returns the number of cards of a single deck.
func CountCardsByDeckOID(deckOID oid.OID) (int, error) {
	var count int
	if err := CurrentDB().Client().QueryRow(`SELECT count(*) FROM card WHERE deck_oid = ?`, deckOID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func LoadCardByOID(oid oid.OID) (*Card, error) {
	return QueryCard(CurrentDB().Client(), "WHERE card.oid = ?", oid)
}

func FindCardByFingerprint(deckOID oid.OID, fingerprint Fingerprint) (*Card, error) {
	return QueryCard(CurrentDB().Client(), "WHERE card.deck_oid = ? AND card.fingerprint = ?", deckOID, fingerprint)
}

// FindCardsByDeckOID returns the cards of a deck in insertion order.
func FindCardsByDeckOID(deckOID oid.OID) ([]*Card, error) {
	return QueryCards(CurrentDB().Client(), "WHERE card.deck_oid = ? ORDER BY card.rowid", deckOID)
}

/* Synchronization */

// ExistingFingerprints returns the fingerprints of the stored cards of a deck.
func (db *DB) ExistingFingerprints(deckOID oid.OID) (FingerprintSet, error) {
	rows, err := db.Client().Query(`SELECT fingerprint FROM card WHERE deck_oid = ?;`, deckOID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := NewFingerprintSet()
	for rows.Next() {
		var fingerprint string
		if err := rows.Scan(&fingerprint); err != nil {
			return nil, err
		}
		result.Add(Fingerprint(fingerprint))
	}
	return result, rows.Err()
}

// ApplyDiff deletes and inserts cards of a deck atomically.
// Cards present on both sides are not touched.
func (db *DB) ApplyDiff(deckOID oid.OID, diff *Diff) error {
	if diff.Empty() {
		return nil
	}
	return db.WithTransaction(func() error {
		toDelete := diff.ToDelete.Sorted()
		for start := 0; start < len(toDelete); start += maxDeleteBatch {
			end := min(start+maxDeleteBatch, len(toDelete))
			batch := toDelete[start:end]
			args := make([]any, 0, len(batch)+1)
			args = append(args, deckOID)
			for _, fingerprint := range batch {
				args = append(args, fingerprint)
			}
			query := fmt.Sprintf(`DELETE FROM card WHERE deck_oid = ? AND fingerprint IN (%s);`, placeholders(len(batch)))
			if _, err := db.Client().Exec(query, args...); err != nil {
				return fmt.Errorf("unable to delete cards: %w", err)
			}
		}
		for _, parsed := range diff.ToInsert {
			card := NewCard(deckOID, parsed)
			if err := card.Insert(); err != nil {
				return fmt.Errorf("unable to insert card: %w", err)
			}
		}
		CurrentLogger().Infof("Deck %s: %s", deckOID.Short(), diff)
		return nil
	})
}

/* SQL Helpers */

const cardColumns = `
			card.oid,
			card.deck_oid,
			deck.title,
			card.fingerprint,
			card.score,
			card.last_seen_at,
			card.front,
			card.back,
			card.created_at`

func QueryCard(db SQLClient, whereClause string, args ...any) (*Card, error) {
	var c Card
	var lastSeenAt string
	var createdAt string

	// Query for a value based on a single row.
	if err := db.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM card
		JOIN deck ON deck.oid = card.deck_oid
		%s;`, cardColumns, whereClause), args...).
		Scan(
			&c.OID,
			&c.DeckOID,
			&c.DeckTitle,
			&c.Fingerprint,
			&c.Score,
			&lastSeenAt,
			&c.Front,
			&c.Back,
			&createdAt,
		); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	c.LastSeenAt = timeFromSQL(lastSeenAt)
	c.CreatedAt = timeFromSQL(createdAt)

	return &c, nil
}

func QueryCards(db SQLClient, whereClause string, args ...any) ([]*Card, error) {
	var cards []*Card

	rows, err := db.Query(fmt.Sprintf(`
		SELECT %s
		FROM card
		JOIN deck ON deck.oid = card.deck_oid
		%s;`, cardColumns, whereClause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c Card
		var lastSeenAt string
		var createdAt string

		err = rows.Scan(
			&c.OID,
			&c.DeckOID,
			&c.DeckTitle,
			&c.Fingerprint,
			&c.Score,
			&lastSeenAt,
			&c.Front,
			&c.Back,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		c.LastSeenAt = timeFromSQL(lastSeenAt)
		c.CreatedAt = timeFromSQL(createdAt)
		cards = append(cards, &c)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return cards, err
}
