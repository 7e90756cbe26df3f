package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"
)

// ParseCardSet decodes one card set document. Comments and trailing commas
// are accepted.
func ParseCardSet(data []byte) (CardSet, error) {
	var file CardSetFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return CardSet{}, fmt.Errorf("parsing card set: %w", err)
	}
	return file.CardSet, nil
}

func LoadCardSetFile(path string) (CardSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CardSet{}, err
	}
	set, err := ParseCardSet(data)
	if err != nil {
		return CardSet{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return set, nil
}

// cardSetFiles lists the card set documents in dataDir in name order.
func cardSetFiles(dataDir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.jsonc"} {
		matches, err := filepath.Glob(filepath.Join(dataDir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// LoadCardsFromDataDir loads every *.json and *.jsonc card set in dataDir.
func LoadCardsFromDataDir(dataDir string) (*Database, error) {
	files, err := cardSetFiles(dataDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no card set files found in %s", dataDir)
	}

	sets := make([]CardSet, 0, len(files))
	for _, f := range files {
		set, err := LoadCardSetFile(f)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return NewDatabase(sets...), nil
}
