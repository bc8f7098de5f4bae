package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/redactyl/litscan/internal/report"
)

// SummaryDoc is the JSON shape written by WriteSummaries.
type SummaryDoc = report.SummaryDoc

// WriteSummaries derives the summary and prefilter of each pattern and
// writes them as an indented JSON array, the same document `litscan
// literals --json` prints.
func WriteSummaries(w io.Writer, opts Options, patterns ...string) error {
	docs := make([]SummaryDoc, 0, len(patterns))
	for _, p := range patterns {
		s, err := Literals(p, opts)
		if err != nil {
			return fmt.Errorf("parse %q: %w", p, err)
		}
		docs = append(docs, report.NewSummaryDoc(p, s, nil))
	}
	return report.WriteSummaryJSON(w, docs)
}

// ReadSummaries decodes a document written by WriteSummaries.
func ReadSummaries(r io.Reader) ([]SummaryDoc, error) {
	var docs []SummaryDoc
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode summaries: %w", err)
	}
	return docs, nil
}

// MarshalFindings writes findings as indented JSON in scan order; a nil
// slice is written as [].
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes the output of MarshalFindings or `litscan scan
// --json`.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	return fs, nil
}
