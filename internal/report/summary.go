package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/prefilter"
)

// SetDoc is the serialized form of a literal set.
type SetDoc struct {
	Cut      bool     `json:"cut" yaml:"cut"`
	Literals []string `json:"literals" yaml:"literals"`
}

// PrefilterDoc describes the prefilter chosen for a summary.
type PrefilterDoc struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Literals []string `json:"literals" yaml:"literals"`
}

// SummaryDoc is the stable document shape for a pattern's literal summary.
// Exact is set for exact summaries; Prefix, Inner and Suffix otherwise.
type SummaryDoc struct {
	Pattern   string       `json:"pattern" yaml:"pattern"`
	Kind      string       `json:"kind" yaml:"kind"`
	Exact     *SetDoc      `json:"exact,omitempty" yaml:"exact,omitempty"`
	Prefix    *SetDoc      `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Inner     *SetDoc      `json:"inner,omitempty" yaml:"inner,omitempty"`
	Suffix    *SetDoc      `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Empty     bool         `json:"empty" yaml:"empty"`
	Prefilter PrefilterDoc `json:"prefilter" yaml:"prefilter"`
}

// NewSummaryDoc describes s, derived from pattern, and the prefilter built
// from it.
func NewSummaryDoc(pattern string, s literal.Summary, p *prefilter.Prefilter) SummaryDoc {
	doc := SummaryDoc{
		Pattern: pattern,
		Kind:    s.Kind().String(),
		Empty:   s.MatchesEmpty(),
	}
	if s.IsExact() {
		doc.Exact = setDoc(s.ExactSet())
	} else {
		doc.Prefix = setDoc(s.Prefix())
		doc.Inner = setDoc(s.Inner())
		doc.Suffix = setDoc(s.Suffix())
	}
	if p == nil {
		p = prefilter.New(s)
	}
	doc.Prefilter = PrefilterDoc{Kind: string(p.Kind()), Literals: nonNil(p.Literals())}
	return doc
}

func setDoc(s literal.Set) *SetDoc {
	return &SetDoc{Cut: s.IsCut(), Literals: nonNil(s.Strings())}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	cutStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PrintSummary renders each document as a position table followed by the
// chosen prefilter.
func PrintSummary(w io.Writer, docs []SummaryDoc, opts PrintOptions) error {
	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s  (%s, matches empty: %t)", doc.Pattern, doc.Kind, doc.Empty)
		if !opts.NoColor {
			title = titleStyle.Render(title)
		}
		fmt.Fprintln(w, title)

		table := tablewriter.NewWriter(w)
		table.Header("Position", "Cut", "Literals")
		rows := []struct {
			name string
			set  *SetDoc
		}{
			{"exact", doc.Exact},
			{"prefix", doc.Prefix},
			{"inner", doc.Inner},
			{"suffix", doc.Suffix},
		}
		for _, r := range rows {
			if r.set == nil {
				continue
			}
			lits := quoteAll(r.set.Literals)
			if r.set.Cut && !opts.NoColor {
				lits = cutStyle.Render(lits)
			}
			if err := table.Append(r.name, strconv.FormatBool(r.set.Cut), lits); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintf(w, "prefilter: %s %s\n", doc.Prefilter.Kind, quoteAll(doc.Prefilter.Literals))
	}
	return nil
}

func quoteAll(lits []string) string {
	if len(lits) == 0 {
		return "-"
	}
	q := make([]string, len(lits))
	for i, l := range lits {
		q[i] = strconv.Quote(l)
	}
	return strings.Join(q, " ")
}

// WriteSummaryJSON writes docs as an indented JSON array.
func WriteSummaryJSON(w io.Writer, docs []SummaryDoc) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// WriteSummaryYAML writes docs as a YAML sequence.
func WriteSummaryYAML(w io.Writer, docs []SummaryDoc) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}
