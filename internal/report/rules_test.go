package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/types"
)

func TestNewRuleDocs(t *testing.T) {
	reg, err := detectors.Compile([]detectors.Rule{
		{ID: "acme", Pattern: `acme_[0-9a-f]{8}`, Severity: types.SevHigh, Confidence: 0.9},
		{ID: "anything", Pattern: `[a-z]+`, Severity: types.SevLow},
	}, nil)
	require.NoError(t, err)

	docs := NewRuleDocs(reg)
	require.Len(t, docs, 2)
	assert.Equal(t, "acme", docs[0].ID)
	assert.Equal(t, "high", docs[0].Severity)
	assert.Equal(t, "prefix", docs[0].Prefilter.Kind)
	assert.Equal(t, []string{"acme_"}, docs[0].Prefilter.Literals)
	assert.Equal(t, "always", docs[1].Prefilter.Kind)
	assert.NotNil(t, docs[1].Prefilter.Literals)
	assert.Equal(t, detectors.DefaultConfidence, docs[1].Confidence)

	var buf bytes.Buffer
	require.NoError(t, PrintRules(&buf, docs, PrintOptions{NoColor: true}))
	out := buf.String()
	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, `"acme_"`)
	assert.Contains(t, out, "0.90")
	assert.Contains(t, out, "2 rules")
}
