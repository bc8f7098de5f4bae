// Package cache remembers which files were clean at their current content
// so unchanged files can be skipped on the next scan.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
)

const fileName = "litscancache.json"

// DB maps repo-relative paths to the content hash of their last clean scan.
// Rules is the registry fingerprint the entries were produced under.
type DB struct {
	Rules   string            `json:"rules"`
	Entries map[string]string `json:"entries"`
}

// Path returns where the cache for root is stored: inside .git when it
// exists so the file is never committed, otherwise a dotfile in root.
func Path(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, fileName)
	}
	return filepath.Join(root, "."+fileName)
}

// Load reads the cache for root. The returned DB always has a non-nil
// Entries map, even on error.
func Load(root string) (DB, error) {
	var db DB
	f, err := os.ReadFile(Path(root))
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

// LoadFor reads the cache and discards it when it was written under a
// different rule set.
func LoadFor(root, rules string) DB {
	db, err := Load(root)
	if err != nil || db.Rules != rules {
		return DB{Rules: rules, Entries: map[string]string{}}
	}
	return db
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(root), b, 0o644)
}

// Hash returns the xxhash of b as 16 lowercase hex digits.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
