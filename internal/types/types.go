package types

import "strings"

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Rank orders severities from 1 (low) to 3 (high). Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SevLow:
		return 1
	case SevMed:
		return 2
	case SevHigh:
		return 3
	}
	return 0
}

// ParseSeverity accepts low, medium (or med) and high in any case.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SevLow, true
	case "medium", "med":
		return SevMed, true
	case "high":
		return SevHigh, true
	}
	return "", false
}

// Finding is a rule match at a path and line. Commit is set when the match
// came from history rather than the working tree.
type Finding struct {
	Path       string   `json:"path" yaml:"path"`
	Line       int      `json:"line" yaml:"line"`
	Column     int      `json:"column,omitempty" yaml:"column,omitempty"` // 1-based byte offset, 0 if unknown
	Match      string   `json:"match" yaml:"match"`
	Detector   string   `json:"detector" yaml:"detector"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
	Commit     string   `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// Key identifies a finding independent of its position in the file.
func (f Finding) Key() string {
	return f.Path + "|" + f.Detector + "|" + f.Match
}
