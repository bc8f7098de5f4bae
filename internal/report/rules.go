package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/types"
)

// RuleDoc describes a compiled rule and its prefilter.
type RuleDoc struct {
	ID         string       `json:"id" yaml:"id"`
	Pattern    string       `json:"pattern" yaml:"pattern"`
	Severity   string       `json:"severity" yaml:"severity"`
	Confidence float64      `json:"confidence" yaml:"confidence"`
	Group      int          `json:"group,omitempty" yaml:"group,omitempty"`
	Prefilter  PrefilterDoc `json:"prefilter" yaml:"prefilter"`
}

// NewRuleDocs lists the registry's rules in declaration order.
func NewRuleDocs(reg *detectors.Registry) []RuleDoc {
	entries := reg.Entries()
	out := make([]RuleDoc, 0, len(entries))
	for _, e := range entries {
		out = append(out, RuleDoc{
			ID:         e.ID,
			Pattern:    e.Pattern,
			Severity:   string(e.Severity),
			Confidence: e.Confidence,
			Group:      e.Group,
			Prefilter: PrefilterDoc{
				Kind:     string(e.Prefilter.Kind()),
				Literals: nonNil(e.Prefilter.Literals()),
			},
		})
	}
	return out
}

// PrintRules renders rules as a table with their prefilter literals.
func PrintRules(w io.Writer, docs []RuleDoc, opts PrintOptions) error {
	table := tablewriter.NewWriter(w)
	table.Header("Rule", "Severity", "Confidence", "Prefilter", "Literals")
	for _, d := range docs {
		sev := d.Severity
		if !opts.NoColor {
			if st, ok := sevStyles[types.Severity(d.Severity)]; ok {
				sev = st.Render(sev)
			}
		}
		conf := strconv.FormatFloat(d.Confidence, 'f', 2, 64)
		if err := table.Append(d.ID, sev, conf, d.Prefilter.Kind, quoteAll(d.Prefilter.Literals)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d rules\n", len(docs))
	return nil
}
