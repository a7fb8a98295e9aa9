package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cellularmitosis/retainn/internal/testutil"
	"github.com/cellularmitosis/retainn/pkg/clock"
	"github.com/stretchr/testify/require"
)

// Reset forces singletons to be recreated. Useful between unit tests.
func Reset() {
	if dbSingleton != nil {
		dbSingleton.Close()
		dbSingleton = nil
	}
	configOnce.Reset()
	dbClientOnce.Reset()
	dbOnce.Reset()
	loggerOnce.Reset()
}

/* Fixtures */

// SetUpFromTempDir configures a temporary home directory.
func SetUpFromTempDir(t *testing.T) string {
	dirname := t.TempDir()
	configureDir(t, dirname)
	return dirname
}

// SetUpFromGoldenDeck configures a temporary home directory and returns the path of a copy of the golden deck.
func SetUpFromGoldenDeck(t *testing.T) string {
	return SetUpFromGoldenDeckNamed(t, t.Name()+".md")
}

// SetUpFromGoldenDeckNamed configures a temporary home directory and returns the path of a copy of the named golden deck.
func SetUpFromGoldenDeckNamed(t *testing.T, testname string) string {
	SetUpFromTempDir(t)
	return testutil.SetUpFromGoldenFileNamed(t, testname)
}

func configureDir(t *testing.T, dirname string) {
	err := os.WriteFile(filepath.Join(dirname, "config"), []byte(`
[core]
parallel=2

[http]
timeout="5s"
user_agent="retainn-test"
`), 0644)
	require.NoError(t, err)

	// Force the application to consider the temporary directory as the home
	t.Setenv("RETAINN_HOME", dirname)
	Reset()
	t.Cleanup(Reset)

	// Force debug level in tests to diagnose more easily
	CurrentLogger().SetVerboseLevel(VerboseDebug)
	CurrentLogger().Debugf("✨ Set up directory %q", dirname)
}

/* Reproducible Tests */

// FreezeNow wraps the clock API to register the cleanup function at the end of the test.
func FreezeNow(t *testing.T) time.Time {
	now := clock.Freeze().Now()
	t.Cleanup(clock.Unfreeze)
	return now
}

// FreezeAt wraps the clock API to register the cleanup function at the end of the test.
func FreezeAt(t *testing.T, point time.Time) time.Time {
	now := clock.FreezeAt(point).Now()
	t.Cleanup(clock.Unfreeze)
	return now
}

/* Test Helpers */

func mustCountDecks(t *testing.T) int {
	count, err := CountDecks()
	require.NoError(t, err)
	return count
}

func mustCountCards(t *testing.T) int {
	count, err := CountCards()
	require.NoError(t, err)
	return count
}
