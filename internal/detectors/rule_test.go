package detectors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/prefilter"
	"github.com/redactyl/litscan/internal/types"
)

func TestCompile_Builtin(t *testing.T) {
	reg, err := Default(nil)
	require.NoError(t, err)
	assert.Equal(t, len(Builtin()), reg.Len())
	assert.NotEmpty(t, reg.Fingerprint())

	for _, e := range reg.Entries() {
		assert.NotEqual(t, prefilter.KindAlways, e.Prefilter.Kind(), "%s has no usable literal", e.ID)
		assert.NotEqual(t, prefilter.KindNever, e.Prefilter.Kind(), e.ID)
	}
	e, ok := reg.Rule("github_token")
	require.True(t, ok)
	assert.Equal(t, prefilter.KindPrefix, e.Prefilter.Kind())
	assert.Equal(t, types.SevHigh, e.Severity)
}

func TestCompile_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{name: "empty id", rules: []Rule{{Pattern: `x`}}},
		{name: "empty pattern", rules: []Rule{{ID: "a"}}},
		{name: "bad regex", rules: []Rule{{ID: "a", Pattern: `(`}}},
		{name: "duplicate", rules: []Rule{{ID: "a", Pattern: `x`}, {ID: "a", Pattern: `y`}}},
		{name: "severity", rules: []Rule{{ID: "a", Pattern: `x`, Severity: "urgent"}}},
		{name: "confidence", rules: []Rule{{ID: "a", Pattern: `x`, Confidence: 1.5}}},
		{name: "group", rules: []Rule{{ID: "a", Pattern: `(x)`, Group: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.rules, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestCompile_Defaults(t *testing.T) {
	reg, err := Compile([]Rule{{ID: "x", Pattern: `xyz`, Severity: "HIGH"}}, nil)
	require.NoError(t, err)
	e, _ := reg.Rule("x")
	assert.Equal(t, types.SevHigh, e.Severity)
	assert.Equal(t, DefaultConfidence, e.Confidence)
	assert.True(t, e.Summary.IsExact())
}

func TestFingerprint_TracksLimits(t *testing.T) {
	a, err := Default(nil)
	require.NoError(t, err)
	b, err := Default(literal.NewBuilder().LimitClass(4))
	require.NoError(t, err)
	c, err := Default(nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Fingerprint(), c.Fingerprint())
}

func TestSelect(t *testing.T) {
	reg, err := Default(nil)
	require.NoError(t, err)

	only, err := reg.Select([]string{"github_token", "jwt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"github_token", "jwt"}, only.IDs())
	assert.NotEqual(t, reg.Fingerprint(), only.Fingerprint())

	without, err := reg.Select(nil, []string{"jwt"})
	require.NoError(t, err)
	assert.Equal(t, reg.Len()-1, without.Len())
	_, ok := without.Rule("jwt")
	assert.False(t, ok)

	same, err := reg.Select(nil, nil)
	require.NoError(t, err)
	assert.Same(t, reg, same)

	_, err = reg.Select([]string{"nope"}, nil)
	assert.ErrorContains(t, err, "nope")
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rules.yml")
	body := "rules:\n  - id: acme_token\n    pattern: 'acme_[a-z0-9]{32}'\n    severity: high\n    confidence: 0.9\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	rules, err := LoadRulesFile(p)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "acme_token", rules[0].ID)
	assert.Equal(t, types.SevHigh, rules[0].Severity)

	require.NoError(t, os.WriteFile(p, []byte("builtin: true\n"+body), 0o644))
	rules, err = LoadRulesFile(p)
	require.NoError(t, err)
	assert.Len(t, rules, len(Builtin())+1)

	require.NoError(t, os.WriteFile(p, []byte("rules: []\n"), 0o644))
	_, err = LoadRulesFile(p)
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = LoadRulesFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
