package detectors

import (
	"bytes"
	"strings"

	"github.com/redactyl/litscan/internal/types"
)

// Stats reports how many rules the prefilters let through for one scan.
type Stats struct {
	RulesRun     int `json:"rules_run"`
	RulesSkipped int `json:"rules_skipped"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.RulesRun += o.RulesRun
	s.RulesSkipped += o.RulesSkipped
}

var markerPrefixes = []string{"litscan:", "litscan: ", "redactyl:", "redactyl: "}

func hasMarker(line, name string) bool {
	for _, p := range markerPrefixes {
		if strings.Contains(line, p+name) {
			return true
		}
	}
	return false
}

// IgnoresFile reports whether data carries a whole-file suppression marker.
func IgnoresFile(data []byte) bool {
	return bytes.Contains(data, []byte("litscan:ignore-file")) || bytes.Contains(data, []byte("redactyl:ignore-file"))
}

type line struct {
	no   int
	text string
}

// visibleLines drops lines inside ignore-start/ignore-end regions, lines
// following ignore-next-line, and the marker lines themselves.
func visibleLines(data []byte) []line {
	var out []line
	ignoreRegion, skipNext := false, false
	for i, t := range strings.Split(string(data), "\n") {
		t = strings.TrimSuffix(t, "\r")
		switch {
		case hasMarker(t, "ignore-start"):
			ignoreRegion = true
			continue
		case hasMarker(t, "ignore-end"):
			ignoreRegion = false
			continue
		case ignoreRegion:
			continue
		case hasMarker(t, "ignore-next-line"):
			skipNext = true
			continue
		case skipNext:
			skipNext = false
			continue
		}
		out = append(out, line{no: i + 1, text: t})
	}
	return out
}

// provider is the rule ID up to the first underscore, e.g. "github" for
// github_token. A single-line ignore marker applies to a rule only when the
// line also names its provider.
func provider(id string) string {
	if i := strings.IndexByte(id, '_'); i > 0 {
		return id[:i]
	}
	return id
}

// Scan runs every rule whose prefilter admits data and returns the
// deduplicated findings.
func (r *Registry) Scan(path string, data []byte) ([]types.Finding, Stats) {
	var (
		out   []types.Finding
		stats Stats
		lines []line
		text  = string(data)
	)
	for _, e := range r.entries {
		if !e.Prefilter.MatchString(text) {
			stats.RulesSkipped++
			continue
		}
		stats.RulesRun++
		if lines == nil {
			lines = visibleLines(data)
		}
		out = append(out, e.scanLines(path, lines)...)
	}
	return dedupe(out), stats
}

func (e *Entry) scanLines(path string, lines []line) []types.Finding {
	var out []types.Finding
	prov := provider(e.ID)
	for _, l := range lines {
		if !e.Prefilter.MatchString(l.text) {
			continue
		}
		if hasMarker(l.text, "ignore") && strings.Contains(strings.ToLower(l.text), prov) {
			continue
		}
		for _, loc := range e.re.FindAllStringSubmatchIndex(l.text, -1) {
			start, end := loc[2*e.Group], loc[2*e.Group+1]
			if start < 0 || start == end {
				continue
			}
			out = append(out, types.Finding{
				Path:       path,
				Line:       l.no,
				Column:     start + 1,
				Match:      l.text[start:end],
				Detector:   e.ID,
				Severity:   e.Severity,
				Confidence: e.Confidence,
			})
		}
	}
	return out
}

func dedupe(findings []types.Finding) []types.Finding {
	seen := make(map[string]bool)
	var result []types.Finding

	for _, f := range findings {
		key := f.Key()
		if !seen[key] {
			seen[key] = true
			result = append(result, f)
		}
	}
	return result
}
