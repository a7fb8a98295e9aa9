package markup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDeckToDisk writes the preamble and each side of every card
// to individual files inside the directory.
func WriteDeckToDisk(deck *Deck, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := map[string][]byte{
		"preamble.md": deck.Preamble.Text,
	}
	for i, card := range deck.Cards {
		files[fmt.Sprintf("%d-front.md", i)] = card.Front
		files[fmt.Sprintf("%d-back.md", i)] = card.Back
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, append(bytes.Clone(content), '\n'), 0644); err != nil {
			return fmt.Errorf("unable to write %s: %w", path, err)
		}
	}
	return nil
}
