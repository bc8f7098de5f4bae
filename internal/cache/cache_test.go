package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/litscan/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	db, err := Load(dir)
	assert.Error(t, err)
	require.NotNil(t, db.Entries)

	db.Rules = "r1"
	db.Entries["a.txt"] = "deadbeef"
	require.NoError(t, Save(dir, db))
	_, err = os.Stat(filepath.Join(dir, ".litscancache.json"))
	require.NoError(t, err)

	db2, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", db2.Entries["a.txt"])
	assert.Equal(t, "r1", db2.Rules)
}

func TestSave_NilEntries(t *testing.T) {
	assert.Error(t, Save(t.TempDir(), DB{}))
}

func TestPath_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	assert.Equal(t, filepath.Join(dir, ".git", "litscancache.json"), Path(dir))
}

func TestLoadFor_DropsStaleRules(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, DB{Rules: "old", Entries: map[string]string{"a": "1"}}))

	assert.Equal(t, "1", LoadFor(dir, "old").Entries["a"])
	fresh := LoadFor(dir, "new")
	assert.Empty(t, fresh.Entries)
	assert.Equal(t, "new", fresh.Rules)
}

func TestHash(t *testing.T) {
	assert.Equal(t, "0000000000000000", Hash(nil))
	h := Hash([]byte("hello"))
	assert.Len(t, h, 16)
	assert.Equal(t, h, Hash([]byte("hello")))
	assert.NotEqual(t, h, Hash([]byte("hello!")))
}

func TestResults_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := []types.Finding{{Path: "a.go", Line: 3, Match: "m", Detector: "jwt", Severity: types.SevMed}}
	require.NoError(t, SaveResults(dir, fs))
	got, err := LoadResults(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, fs, got.Findings)
	assert.Equal(t, dir, got.Root)
}
