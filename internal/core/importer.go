package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cellularmitosis/retainn/internal/markup"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"golang.org/x/sync/errgroup"
)

// UpdateResult reports what an update changed.
type UpdateResult struct {
	Deck *Deck
	// Nil when the deck was skipped
	Diff *Diff
	// The remote deck was unchanged
	Skipped bool
	// Set when the deck could not be updated
	Err error
}

// DeckDiff compares a stored deck with its remote version.
type DeckDiff struct {
	Deck *Deck
	// Unified diff between the stored text and the remote text
	Patch string
	// Changes an update would apply to the stored cards
	Diff *Diff
}

// NormalizeURL converts local paths to absolute paths so that
// decks can be updated from any working directory.
func NormalizeURL(deckURL string) (string, error) {
	deckURL = strings.TrimSpace(deckURL)
	if deckURL == "" {
		return "", errors.New("missing deck URL")
	}
	u, err := url.Parse(deckURL)
	if err != nil {
		return "", fmt.Errorf("invalid deck URL %q: %w", deckURL, err)
	}
	if u.Scheme != "" {
		return deckURL, nil
	}
	return filepath.Abs(deckURL)
}

// ImportDeck fetches a new deck and stores all its cards.
// Importing an already imported deck updates it instead, keeping the review history.
func ImportDeck(ctx context.Context, deckURL string) (*Deck, error) {
	deckURL, err := NormalizeURL(deckURL)
	if err != nil {
		return nil, err
	}

	existingDeck, err := FindDeckByURL(deckURL)
	if err != nil {
		return nil, err
	}
	if existingDeck != nil {
		CurrentLogger().Infof("Deck %s already imported, updating it", deckURL)
		result, err := UpdateDeck(ctx, existingDeck)
		if err != nil {
			return nil, err
		}
		return result.Deck, nil
	}

	fetched, err := Fetch(ctx, deckURL, "")
	if err != nil {
		return nil, fmt.Errorf("unable to fetch deck %s: %w", deckURL, err)
	}
	return ImportDeckContent(deckURL, fetched.Content, fetched.ETag)
}

// ImportDeckContent stores a deck already fetched.
// Nothing is written when the content cannot be parsed.
func ImportDeckContent(deckURL string, content []byte, etag string) (*Deck, error) {
	parsed, err := markup.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("unable to import deck %s: %w", deckURL, err)
	}

	deck := NewDeck(deckURL, content, parsed, etag)
	err = CurrentDB().WithTransaction(func() error {
		if err := deck.Save(); err != nil {
			return err
		}
		return CurrentDB().ApplyDiff(deck.OID, Synchronize(NewFingerprintSet(), parsed.Cards))
	})
	if err != nil {
		return nil, fmt.Errorf("unable to save deck %s: %w", deckURL, err)
	}
	CurrentLogger().Infof("Imported %s", deck)
	return deck, nil
}

// pendingUpdate is a fetched and parsed deck waiting to be saved.
type pendingUpdate struct {
	deck    *Deck
	fetched *FetchResult
	// Nil when the deck is unchanged
	parsed *markup.Deck
}

// prepareUpdate fetches and parses a deck without touching the database.
func prepareUpdate(ctx context.Context, deck *Deck) (*pendingUpdate, error) {
	fetched, err := Fetch(ctx, deck.URL, deck.ETag)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch deck %s: %w", deck.URL, err)
	}
	update := &pendingUpdate{
		deck:    deck,
		fetched: fetched,
	}
	if fetched.NotModified || DeckFingerprint(fetched.Content) == deck.Hash {
		return update, nil
	}
	parsed, err := markup.Parse(fetched.Content)
	if err != nil {
		return nil, fmt.Errorf("unable to update deck %s: %w", deck.URL, err)
	}
	update.parsed = parsed
	return update, nil
}

// apply saves the deck and synchronizes its cards in a single transaction.
func (u *pendingUpdate) apply() (*UpdateResult, error) {
	deck := u.deck
	if u.parsed == nil {
		CurrentLogger().Debugf("Deck %s unchanged", deck.URL)
		if err := deck.Touch(u.fetched.ETag); err != nil {
			return nil, err
		}
		return &UpdateResult{Deck: deck, Skipped: true}, nil
	}

	var diff *Diff
	err := CurrentDB().WithTransaction(func() error {
		existing, err := CurrentDB().ExistingFingerprints(deck.OID)
		if err != nil {
			return err
		}
		diff = Synchronize(existing, u.parsed.Cards)
		deck.refresh(u.fetched.Content, u.parsed, u.fetched.ETag)
		if err := deck.Save(); err != nil {
			return err
		}
		return CurrentDB().ApplyDiff(deck.OID, diff)
	})
	if err != nil {
		return nil, fmt.Errorf("unable to save deck %s: %w", deck.URL, err)
	}
	return &UpdateResult{Deck: deck, Diff: diff}, nil
}

// UpdateDeck fetches the latest version of a deck and synchronizes its cards.
// Cards whose content did not change keep their score and last seen date.
func UpdateDeck(ctx context.Context, deck *Deck) (*UpdateResult, error) {
	update, err := prepareUpdate(ctx, deck)
	if err != nil {
		return nil, err
	}
	return update.apply()
}

type updateOptions struct {
	onUpdated func(done int, total int, result *UpdateResult)
}

// OnUpdated registers a callback invoked after each deck is updated or has failed.
func OnUpdated(fn func(done int, total int, result *UpdateResult)) func(*updateOptions) {
	return func(o *updateOptions) {
		o.onUpdated = fn
	}
}

// UpdateDecks updates several decks, fetching up to parallel decks at the same time.
// A failing deck does not prevent other decks from being updated.
// The results follow the order of decks and the returned error joins every failure.
func UpdateDecks(ctx context.Context, decks []*Deck, parallel int, options ...func(*updateOptions)) ([]*UpdateResult, error) {
	var opts updateOptions
	for _, option := range options {
		option(&opts)
	}
	if parallel <= 0 {
		parallel = CurrentConfig().ConfigFile.Parallelism()
	}

	updates := make([]*pendingUpdate, len(decks))
	fetchErrors := make([]error, len(decks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, deck := range decks {
		g.Go(func() error {
			// Errors are collected per deck to not cancel other fetches
			updates[i], fetchErrors[i] = prepareUpdate(gctx, deck)
			return nil
		})
	}
	_ = g.Wait()

	// SQLite supports a single writer
	results := make([]*UpdateResult, len(decks))
	var errs []error
	for i, deck := range decks {
		err := fetchErrors[i]
		var result *UpdateResult
		if err == nil {
			result, err = updates[i].apply()
		}
		if err != nil {
			CurrentLogger().Warnf("%v", err)
			errs = append(errs, err)
			result = &UpdateResult{Deck: deck, Err: err}
		}
		results[i] = result
		if opts.onUpdated != nil {
			opts.onUpdated(i+1, len(decks), result)
		}
	}
	return results, errors.Join(errs...)
}

// RemoveDeck deletes a deck and all its cards.
func RemoveDeck(ref string) (*Deck, error) {
	deck, err := ResolveDeck(ref)
	if err != nil {
		return nil, err
	}
	if err := deck.Delete(); err != nil {
		return nil, fmt.Errorf("unable to remove deck %s: %w", deck.URL, err)
	}
	CurrentLogger().Infof("Removed %s", deck)
	return deck, nil
}

// DiffDeck compares the stored deck with its remote version without saving anything.
func DiffDeck(ctx context.Context, deck *Deck) (*DeckDiff, error) {
	// Ignore the ETag to always retrieve the content
	fetched, err := Fetch(ctx, deck.URL, "")
	if err != nil {
		return nil, fmt.Errorf("unable to fetch deck %s: %w", deck.URL, err)
	}
	parsed, err := markup.Parse(fetched.Content)
	if err != nil {
		return nil, fmt.Errorf("invalid remote deck %s: %w", deck.URL, err)
	}
	existing, err := CurrentDB().ExistingFingerprints(deck.OID)
	if err != nil {
		return nil, err
	}

	result := &DeckDiff{
		Deck: deck,
		Diff: Synchronize(existing, parsed.Cards),
	}
	if deck.Body != string(fetched.Content) {
		result.Patch = godiffpatch.GeneratePatch(deck.Slug+".md", deck.Body, string(fetched.Content))
	}
	return result, nil
}
