package engine

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/redactyl/litscan/internal/detectors"
	"github.com/redactyl/litscan/internal/git"
	"github.com/redactyl/litscan/internal/ignore"
)

// sniffLen is how much of a file is checked for NUL bytes.
const sniffLen = 8000

// Walk traverses the working tree and invokes handle for each eligible file
// with its slash-separated path relative to cfg.Root. It stops early when ctx
// is cancelled.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != cfg.Root && skipDir(cfg, ign, rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !selectPath(cfg, ign, rel, d) {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		if detectors.IgnoresFile(b) || looksBinary(b) || looksNonTextMIME(rel, b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// skipDir prunes .git always, the default directory excludes when enabled,
// and directories the ignore file covers.
func skipDir(cfg Config, ign ignore.Matcher, rel, name string) bool {
	if name == ".git" || (cfg.DefaultExcludes && isDefaultDirExcluded(name)) {
		return true
	}
	return ign.Match(rel + "/")
}

// selectPath applies the filters that need no file contents.
func selectPath(cfg Config, ign ignore.Matcher, rel string, d fs.DirEntry) bool {
	if !d.Type().IsRegular() || stateFiles[d.Name()] {
		return false
	}
	if !allowedByGlobs(rel, cfg) || ign.Match(rel) {
		return false
	}
	if info, _ := d.Info(); info != nil && cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
		return false
	}
	return !cfg.DefaultExcludes || !isDefaultFileExcluded(strings.ToLower(rel))
}

func looksBinary(b []byte) bool {
	n := min(len(b), sniffLen)
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content (e.g., images) in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

// CountTargets estimates the number of files to process based on cfg
// without reading working tree files.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	if cfg.HistoryCommits > 0 {
		entries, err := git.LastNCommits(cfg.Root, cfg.HistoryCommits)
		if err != nil {
			return 0, err
		}
		n := 0
		for _, e := range entries {
			for p, blob := range e.Files {
				if selectBlob(cfg, ign, p, blob) {
					n++
				}
			}
		}
		return n, nil
	}
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if p != cfg.Root && skipDir(cfg, ign, rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if selectPath(cfg, ign, rel, d) {
			count++
		}
		return nil
	})
	return count, err
}
