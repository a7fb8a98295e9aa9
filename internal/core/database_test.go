package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction(t *testing.T) {
	SetUpFromTempDir(t)

	insert := func(url string) error {
		_, err := CurrentDB().Client().Exec(`
			INSERT INTO deck(oid, url, slug, title, preamble, body, hash, etag, last_fetched_at, created_at, updated_at)
			VALUES (?, ?, '', '', '', '', '', '', '', '', '')`, url, url)
		return err
	}

	t.Run("Commit", func(t *testing.T) {
		err := CurrentDB().WithTransaction(func() error {
			return insert("deck1")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, mustCountDecks(t))
	})

	t.Run("Rollback", func(t *testing.T) {
		errFailure := errors.New("failure")
		err := CurrentDB().WithTransaction(func() error {
			if err := insert("deck2"); err != nil {
				return err
			}
			return errFailure
		})
		assert.ErrorIs(t, err, errFailure)
		assert.Equal(t, 1, mustCountDecks(t))
	})

	t.Run("Nested", func(t *testing.T) {
		err := CurrentDB().WithTransaction(func() error {
			if err := insert("deck3"); err != nil {
				return err
			}
			return CurrentDB().WithTransaction(func() error {
				return insert("deck4")
			})
		})
		require.NoError(t, err)
		assert.Equal(t, 3, mustCountDecks(t))
	})
}

func TestTransactionErrors(t *testing.T) {
	SetUpFromTempDir(t)

	assert.Error(t, CurrentDB().CommitTransaction())
	assert.Error(t, CurrentDB().RollbackTransaction())

	require.NoError(t, CurrentDB().BeginTransaction())
	assert.Error(t, CurrentDB().BeginTransaction())
	require.NoError(t, CurrentDB().RollbackTransaction())
}

func TestCloseRollsBackTransaction(t *testing.T) {
	SetUpFromTempDir(t)

	require.NoError(t, CurrentDB().BeginTransaction())
	_, err := CurrentDB().Client().Exec(`
		INSERT INTO deck(oid, url, slug, title, preamble, body, hash, etag, last_fetched_at, created_at, updated_at)
		VALUES ('deck', 'deck', '', '', '', '', '', '', '', '', '')`)
	require.NoError(t, err)
	require.NoError(t, CurrentDB().Close())

	// The connection is reopened and the pending insert is gone
	assert.Equal(t, 0, mustCountDecks(t))
	require.NoError(t, CurrentDB().BeginTransaction())
	require.NoError(t, CurrentDB().RollbackTransaction())
}

func TestForeignKeys(t *testing.T) {
	SetUpFromTempDir(t)

	// Cards cannot reference a missing deck
	_, err := CurrentDB().Client().Exec(`
		INSERT INTO card(oid, deck_oid, fingerprint, front, back, created_at)
		VALUES ('card', 'missing', 'fingerprint', 'Q', 'A', '')`)
	assert.Error(t, err)
}
