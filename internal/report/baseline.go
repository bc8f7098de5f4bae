package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/redactyl/litscan/internal/types"
)

// DefaultBaselineFile is read by scan and written by baseline.
const DefaultBaselineFile = "litscan.baseline.json"

type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline file. A corrupt file yields an empty
// baseline and an error.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[f.Key()] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[f.Key()] {
			out = append(out, f)
		}
	}
	return out
}

// ShouldFail reports whether any finding is at or above failOn. Unknown
// thresholds default to medium.
func ShouldFail(findings []types.Finding, failOn string) bool {
	th, ok := types.ParseSeverity(failOn)
	if !ok {
		th = types.SevMed
	}
	for _, f := range findings {
		if f.Severity.Rank() >= th.Rank() {
			return true
		}
	}
	return false
}
