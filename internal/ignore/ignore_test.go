package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "node_modules/\n*.pem\n# comment\n\nsecret.env\nfixtures/**/*.json\n!fixtures/keep.json\n"
	require.NoError(t, os.WriteFile(ig, []byte(content), 0o644))

	m, err := Load(ig)
	require.NoError(t, err)
	cases := map[string]bool{
		"node_modules/pkg/index.js": true,
		"web/node_modules/a.js":     true,
		"certs/key.pem":             true,
		"secret.env":                true,
		"fixtures/a/b.json":         true,
		"fixtures/keep.json":        false,
		"src/app.go":                false,
		"node_modules.txt":          false,
	}
	for p, want := range cases {
		assert.Equal(t, want, m.Match(p), p)
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
	assert.False(t, m.Match("anything"))
}
