package cards

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"github.com/youruser/artifactdeck/internal/util"
)

// cacheEncMode writes Core Deterministic CBOR so the same sets always
// produce the same cache bytes.
var cacheEncMode cbor.EncMode

func init() {
	var err error
	cacheEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cards: CBOR encoder initialization failed: " + err.Error())
	}
}

const cacheFormat = 1

type cacheFile struct {
	Format int       `cbor:"format"`
	Sets   []CardSet `cbor:"sets"`
}

// SaveCache writes the sets behind db to path as CBOR.
func SaveCache(path string, db *Database) error {
	data, err := cacheEncMode.Marshal(cacheFile{Format: cacheFormat, Sets: db.sets})
	if err != nil {
		return fmt.Errorf("encoding card cache: %w", err)
	}
	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadCache reads a database written by SaveCache.
func LoadCache(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file cacheFile
	if err := cbor.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding card cache %s: %w", path, err)
	}
	if file.Format != cacheFormat {
		return nil, fmt.Errorf("card cache %s has format %d, want %d", path, file.Format, cacheFormat)
	}
	return NewDatabase(file.Sets...), nil
}

// LoadDatabase loads the card sets in dataDir. When cachePath is set, a
// cache newer than every card set file is used instead of parsing, and a
// stale or missing cache is rewritten after parsing. Cache failures are
// logged and never fatal.
func LoadDatabase(dataDir, cachePath string, logger *slog.Logger) (*Database, error) {
	if cachePath == "" {
		return LoadCardsFromDataDir(dataDir)
	}

	if fresh, err := cacheFresh(dataDir, cachePath); err != nil {
		logger.Debug("card cache not usable", "path", cachePath, "error", err)
	} else if fresh {
		db, err := LoadCache(cachePath)
		if err == nil {
			logger.Info("loaded card cache", "path", cachePath, "cards", db.Len())
			return db, nil
		}
		logger.Warn("ignoring card cache", "path", cachePath, "error", err)
	}

	db, err := LoadCardsFromDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded card sets", "dir", dataDir, "sets", len(db.sets), "cards", db.Len())
	if err := SaveCache(cachePath, db); err != nil {
		logger.Warn("writing card cache failed", "path", cachePath, "error", err)
	}
	return db, nil
}

func cacheFresh(dataDir, cachePath string) (bool, error) {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false, err
	}
	files, err := cardSetFiles(dataDir)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		// Nothing to compare against; a cache alone is enough.
		return true, nil
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return false, err
		}
		if info.ModTime().After(cacheInfo.ModTime()) {
			return false, nil
		}
	}
	return true, nil
}
