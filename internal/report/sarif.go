package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/redactyl/litscan/internal/git"
	"github.com/redactyl/litscan/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	VCS        []sarifVCS     `json:"versionControlProvenance,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
	DefaultConfig    sarifConfig  `json:"defaultConfiguration"`
}

type sarifConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string         `json:"ruleId"`
	RuleIndex  int            `json:"ruleIndex"`
	Level      string         `json:"level"`
	Message    sarifMessage   `json:"message"`
	Locations  []sarifLoc     `json:"locations"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int          `json:"startLine"`
	StartColumn int          `json:"startColumn,omitempty"`
	Snippet     sarifMessage `json:"snippet"`
}

type sarifVCS struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
	Branch        string `json:"branch,omitempty"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// SARIFOptions carries run-level data for WriteSARIFWithOptions.
type SARIFOptions struct {
	Version string
	Meta    git.Meta
	Stats   map[string]int
}

// WriteSARIF writes findings as SARIF 2.1.0 to the provided writer.
func WriteSARIF(w io.Writer, findings []types.Finding) error {
	return WriteSARIFWithOptions(w, findings, SARIFOptions{})
}

// WriteSARIFWithOptions writes findings as SARIF 2.1.0 with tool version,
// repository provenance and scan statistics.
func WriteSARIFWithOptions(w io.Writer, findings []types.Finding, opts SARIFOptions) error {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           "litscan",
			Version:        version,
			InformationURI: "https://github.com/redactyl/litscan",
		}},
		Results: []sarifResult{},
	}

	// One rule per detector, in sorted order so ruleIndex is stable.
	sev := map[string]types.Severity{}
	for _, f := range findings {
		if cur, ok := sev[f.Detector]; !ok || f.Severity.Rank() > cur.Rank() {
			sev[f.Detector] = f.Severity
		}
	}
	ids := make([]string, 0, len(sev))
	for id := range sev {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	index := make(map[string]int, len(ids))
	run.Tool.Driver.Rules = make([]sarifRule, 0, len(ids))
	for i, id := range ids {
		index[id] = i
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
			ID:               id,
			ShortDescription: sarifMessage{Text: id + " detected"},
			DefaultConfig:    sarifConfig{Level: sevToLevel(sev[id])},
		})
	}

	for _, f := range findings {
		res := sarifResult{
			RuleID:    f.Detector,
			RuleIndex: index[f.Detector],
			Level:     sevToLevel(f.Severity),
			Message:   sarifMessage{Text: f.Detector + " detected"},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region: sarifRegion{
						StartLine:   f.Line,
						StartColumn: f.Column,
						Snippet:     sarifMessage{Text: maskValue(f.Match)},
					},
				},
			}},
			Properties: map[string]any{"confidence": f.Confidence},
		}
		if f.Commit != "" {
			res.Properties["commit"] = f.Commit
		}
		run.Results = append(run.Results, res)
	}

	if opts.Meta.Repo != "" {
		run.VCS = []sarifVCS{{
			RepositoryURI: opts.Meta.Repo,
			RevisionID:    opts.Meta.Commit,
			Branch:        opts.Meta.Branch,
		}}
	}
	if len(opts.Stats) > 0 {
		run.Properties = map[string]any{"scanStats": opts.Stats}
	}

	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
