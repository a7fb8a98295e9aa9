package core

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cellularmitosis/retainn/internal/markup"
	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/cellularmitosis/retainn/pkg/oid"
	"github.com/cellularmitosis/retainn/pkg/text"
	"github.com/gosimple/slug"
)

var (
	ErrDeckNotFound  = errors.New("deck not found")
	ErrAmbiguousDeck = errors.New("more than one deck matches")
)

type Deck struct {
	OID oid.OID `yaml:"oid"`

	// Where the deck is fetched from
	URL string `yaml:"url"`

	// Short name to reference the deck from the command line
	Slug string `yaml:"slug"`

	// Extracted from the first heading of the preamble
	Title string `yaml:"title"`

	// Text before the first card
	Preamble string `yaml:"preamble"`

	// Raw content as last fetched
	Body string `yaml:"-"`

	// md5 of the body
	Hash string `yaml:"hash"`

	// Opaque version returned by the source
	ETag string `yaml:"etag,omitempty"`

	// Timestamps to track changes
	LastFetchedAt time.Time `yaml:"last_fetched_at"`
	CreatedAt     time.Time `yaml:"created_at"`
	UpdatedAt     time.Time `yaml:"updated_at"`

	Cards []*Card `yaml:"cards,omitempty"` // Lazy-loaded

	new bool
}

// NewDeck creates a deck from its freshly parsed content.
func NewDeck(deckURL string, content []byte, parsed *markup.Deck, etag string) *Deck {
	d := &Deck{
		OID:       oid.New(),
		URL:       deckURL,
		CreatedAt: clock.Now(),
		new:       true,
	}
	d.refresh(content, parsed, etag)
	return d
}

func (d *Deck) refresh(content []byte, parsed *markup.Deck, etag string) {
	title, _ := markup.ExtractTitle(parsed.Preamble.Text)
	d.Title = title
	d.Slug = deckSlug(title, d.URL)
	d.Preamble = string(parsed.Preamble.Text)
	d.Body = string(content)
	d.Hash = DeckFingerprint(content)
	d.ETag = etag
	d.LastFetchedAt = clock.Now()
	d.UpdatedAt = clock.Now()
}

// deckSlug derives a slug from the title, or from the URL when the deck has no title.
func deckSlug(title, deckURL string) string {
	if !text.IsBlank(title) {
		return slug.Make(title)
	}
	name := deckURL
	if u, err := url.Parse(deckURL); err == nil && u.Path != "" {
		name = u.Path
	}
	return slug.Make(text.TrimExtension(path.Base(name)))
}

// DisplayName returns the title or the URL when the deck has no title.
func (d *Deck) DisplayName() string {
	if d.Title == "" {
		return d.URL
	}
	return d.Title
}

func (d Deck) String() string {
	return fmt.Sprintf("deck %q [%s]", d.DisplayName(), d.OID)
}

func (d *Deck) ToYAML() (string, error) {
	return ToBeautifulYAML(d)
}

// LoadCards populates the cards of the deck.
func (d *Deck) LoadCards() error {
	cards, err := FindCardsByDeckOID(d.OID)
	if err != nil {
		return err
	}
	d.Cards = cards
	return nil
}

/* Database Management */

func (d *Deck) Save() error {
	var err error
	if d.new {
		err = d.Insert()
	} else {
		err = d.Update()
	}
	if err != nil {
		return err
	}
	d.new = false
	return nil
}

func (d *Deck) Insert() error {
	CurrentLogger().Debugf("Creating deck %s...", d.URL)
	query := `
		INSERT INTO deck(
			oid,
			url,
			slug,
			title,
			preamble,
			body,
			hash,
			etag,
			last_fetched_at,
			created_at,
			updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
		`
	_, err := CurrentDB().Client().Exec(query,
		d.OID,
		d.URL,
		d.Slug,
		d.Title,
		d.Preamble,
		d.Body,
		d.Hash,
		d.ETag,
		timeToSQL(d.LastFetchedAt),
		timeToSQL(d.CreatedAt),
		timeToSQL(d.UpdatedAt),
	)
	return err
}

func (d *Deck) Update() error {
	CurrentLogger().Debugf("Updating deck %s...", d.URL)
	query := `
		UPDATE deck
		SET
			slug = ?,
			title = ?,
			preamble = ?,
			body = ?,
			hash = ?,
			etag = ?,
			last_fetched_at = ?,
			updated_at = ?
		WHERE oid = ?;
		`
	_, err := CurrentDB().Client().Exec(query,
		d.Slug,
		d.Title,
		d.Preamble,
		d.Body,
		d.Hash,
		d.ETag,
		timeToSQL(d.LastFetchedAt),
		timeToSQL(d.UpdatedAt),
		d.OID,
	)
	return err
}

// Touch records a fetch that brought no change.
func (d *Deck) Touch(etag string) error {
	CurrentLogger().Debugf("Checking deck %s...", d.URL)
	d.LastFetchedAt = clock.Now()
	if etag != "" {
		d.ETag = etag
	}
	query := `
		UPDATE deck
		SET last_fetched_at = ?, etag = ?
		WHERE oid = ?;`
	_, err := CurrentDB().Client().Exec(query,
		timeToSQL(d.LastFetchedAt),
		d.ETag,
		d.OID,
	)
	return err
}

// Delete removes the deck and its cards.
func (d *Deck) Delete() error {
	CurrentLogger().Debugf("Deleting deck %s...", d.URL)
	return CurrentDB().WithTransaction(func() error {
		if _, err := CurrentDB().Client().Exec(`DELETE FROM card WHERE deck_oid = ?;`, d.OID); err != nil {
			return err
		}
		_, err := CurrentDB().Client().Exec(`DELETE FROM deck WHERE oid = ?;`, d.OID)
		return err
	})
}

// CountDecks returns the total number of decks.
func CountDecks() (int, error) {
	var count int
	if err := CurrentDB().Client().QueryRow(`SELECT count(*) FROM deck`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func LoadDeckByOID(oid oid.OID) (*Deck, error) {
	return QueryDeck(CurrentDB().Client(), "WHERE oid = ?", oid)
}

func FindDeckByURL(url string) (*Deck, error) {
	return QueryDeck(CurrentDB().Client(), "WHERE url = ?", url)
}

func FindDecksBySlug(slug string) ([]*Deck, error) {
	return QueryDecks(CurrentDB().Client(), "WHERE slug = ? ORDER BY url", slug)
}

// FindDecks returns all decks sorted by title.
func FindDecks() ([]*Deck, error) {
	return QueryDecks(CurrentDB().Client(), "ORDER BY title, url")
}

// ResolveDeck finds a deck from an OID (or a unique OID prefix), a slug or an URL.
func ResolveDeck(ref string) (*Deck, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrDeckNotFound
	}

	deck, err := FindDeckByURL(ref)
	if err != nil {
		return nil, err
	}
	if deck != nil {
		return deck, nil
	}

	decks, err := FindDecksBySlug(ref)
	if err != nil {
		return nil, err
	}
	if len(decks) == 0 {
		decks, err = QueryDecks(CurrentDB().Client(), "WHERE oid LIKE ?", ref+"%")
		if err != nil {
			return nil, err
		}
	}
	switch len(decks) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, ref)
	case 1:
		return decks[0], nil
	default:
		return nil, fmt.Errorf("%w %q (use the deck URL instead)", ErrAmbiguousDeck, ref)
	}
}

/* SQL Helpers */

func QueryDeck(db SQLClient, whereClause string, args ...any) (*Deck, error) {
	var d Deck
	var lastFetchedAt string
	var createdAt string
	var updatedAt string

	// Query for a value based on a single row.
	if err := db.QueryRow(fmt.Sprintf(`
		SELECT
			oid,
			url,
			slug,
			title,
			preamble,
			body,
			hash,
			etag,
			last_fetched_at,
			created_at,
			updated_at
		FROM deck
		%s;`, whereClause), args...).
		Scan(
			&d.OID,
			&d.URL,
			&d.Slug,
			&d.Title,
			&d.Preamble,
			&d.Body,
			&d.Hash,
			&d.ETag,
			&lastFetchedAt,
			&createdAt,
			&updatedAt,
		); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	d.LastFetchedAt = timeFromSQL(lastFetchedAt)
	d.CreatedAt = timeFromSQL(createdAt)
	d.UpdatedAt = timeFromSQL(updatedAt)

	return &d, nil
}

func QueryDecks(db SQLClient, whereClause string, args ...any) ([]*Deck, error) {
	var decks []*Deck

	rows, err := db.Query(fmt.Sprintf(`
		SELECT
			oid,
			url,
			slug,
			title,
			preamble,
			body,
			hash,
			etag,
			last_fetched_at,
			created_at,
			updated_at
		FROM deck
		%s;`, whereClause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d Deck
		var lastFetchedAt string
		var createdAt string
		var updatedAt string

		err = rows.Scan(
			&d.OID,
			&d.URL,
			&d.Slug,
			&d.Title,
			&d.Preamble,
			&d.Body,
			&d.Hash,
			&d.ETag,
			&lastFetchedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		d.LastFetchedAt = timeFromSQL(lastFetchedAt)
		d.CreatedAt = timeFromSQL(createdAt)
		d.UpdatedAt = timeFromSQL(updatedAt)
		decks = append(decks, &d)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return decks, err
}
