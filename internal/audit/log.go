// Package audit keeps an append-only JSONL log of completed scans.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redactyl/litscan/internal/types"
)

// FileName is the log's name in the scan root. Inside a git repository the
// log lives under .git instead.
const FileName = ".litscan_audit.jsonl"

// topN bounds the findings summarized per record.
const topN = 10

// ScanRecord summarizes one scan. Matched values are never recorded.
type ScanRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	ScanID         string           `json:"scan_id"`
	Root           string           `json:"root"`
	TotalFindings  int              `json:"total_findings"`
	NewFindings    int              `json:"new_findings"`
	BaselinedCount int              `json:"baselined_count"`
	SeverityCounts map[string]int   `json:"severity_counts"`
	FilesScanned   int              `json:"files_scanned"`
	FilesCached    int              `json:"files_cached"`
	RulesRun       int              `json:"rules_run"`
	RulesSkipped   int              `json:"rules_skipped"`
	Duration       string           `json:"duration"`
	BaselineFile   string           `json:"baseline_file,omitempty"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
}

// FindingSummary locates a finding without its match.
type FindingSummary struct {
	Path     string `json:"path"`
	Detector string `json:"detector"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Commit   string `json:"commit,omitempty"`
}

// Stats are the engine counters copied into a record.
type Stats struct {
	FilesScanned int
	FilesCached  int
	RulesRun     int
	RulesSkipped int
	Duration     time.Duration
}

// Log appends scan records to a JSONL file.
type Log struct {
	path string
}

// New returns the log for root.
func New(root string) *Log {
	p := filepath.Join(root, FileName)
	if st, err := os.Stat(filepath.Join(root, ".git")); err == nil && st.IsDir() {
		p = filepath.Join(root, ".git", "litscan_audit.jsonl")
	}
	return &Log{path: p}
}

// Path returns the file backing the log.
func (l *Log) Path() string { return l.path }

// History returns the recorded scans, newest first. Undecodable lines are
// skipped.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var r ScanRecord
		if err := dec.Decode(&r); err != nil {
			break
		}
		records = append(records, r)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes r to the end of the log, assigning a scan ID if unset.
func (l *Log) Append(r ScanRecord) error {
	if r.ScanID == "" {
		r.ScanID = fmt.Sprintf("scan_%d", r.Timestamp.UnixNano())
	}
	// Owner-only: records name the files that held secrets.
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(r); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// NewRecord summarizes a scan of root. newFindings are those left after
// baseline filtering.
func NewRecord(root string, all, newFindings []types.Finding, st Stats, baselineFile string) ScanRecord {
	counts := make(map[string]int)
	for _, f := range all {
		counts[string(f.Severity)]++
	}
	top := make([]FindingSummary, 0, min(len(newFindings), topN))
	for _, f := range newFindings[:min(len(newFindings), topN)] {
		top = append(top, FindingSummary{
			Path:     f.Path,
			Detector: f.Detector,
			Severity: string(f.Severity),
			Line:     f.Line,
			Commit:   f.Commit,
		})
	}
	return ScanRecord{
		Timestamp:      time.Now().UTC(),
		Root:           root,
		TotalFindings:  len(all),
		NewFindings:    len(newFindings),
		BaselinedCount: len(all) - len(newFindings),
		SeverityCounts: counts,
		FilesScanned:   st.FilesScanned,
		FilesCached:    st.FilesCached,
		RulesRun:       st.RulesRun,
		RulesSkipped:   st.RulesSkipped,
		Duration:       st.Duration.String(),
		BaselineFile:   baselineFile,
		TopFindings:    top,
	}
}
