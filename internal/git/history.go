// Package git reads commits and repository metadata with go-git, so history
// scans do not depend on a git binary.
package git

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Entry is one commit and the contents of the files it added or modified.
type Entry struct {
	Hash  string
	Files map[string][]byte
}

// Meta describes the repository a scan ran in. Fields are empty when
// unknown.
type Meta struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

func open(root string) (*gogit.Repository, error) {
	if strings.ContainsRune(root, 0) {
		return nil, errors.New("invalid path: contains null byte")
	}
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", root, err)
	}
	return repo, nil
}

// RepoMetadata returns the origin remote, HEAD commit and branch of the
// repository containing root.
func RepoMetadata(root string) (Meta, error) {
	var m Meta
	repo, err := open(root)
	if err != nil {
		return m, err
	}
	if head, err := repo.Head(); err == nil {
		m.Commit = head.Hash().String()
		if head.Name().IsBranch() {
			m.Branch = head.Name().Short()
		}
	}
	if remote, err := repo.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
		m.Repo = shortRepo(remote.Config().URLs[0])
	}
	return m, nil
}

// shortRepo trims a remote URL to owner/name when it can.
func shortRepo(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".git")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.IndexByte(s, '/'); j >= 0 {
			return s[j+1:]
		}
		return s
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// LastNCommits walks back from HEAD and returns up to n commits with the
// blobs each one changed. Deleted files are not included.
func LastNCommits(root string, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	repo, err := open(root)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for len(entries) < n {
		c, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entries, err
		}
		files, err := changedFiles(c)
		if err != nil {
			return entries, fmt.Errorf("commit %s: %w", c.Hash, err)
		}
		entries = append(entries, Entry{Hash: c.Hash.String(), Files: files})
	}
	return entries, nil
}

func changedFiles(c *object.Commit) (map[string][]byte, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	files := map[string][]byte{}
	if c.NumParents() == 0 {
		err := tree.Files().ForEach(func(f *object.File) error {
			return addFile(files, f)
		})
		return files, err
	}
	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	ptree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(ptree, tree)
	if err != nil {
		return nil, err
	}
	for _, ch := range changes {
		if ch.To.Name == "" {
			continue
		}
		f, err := tree.File(ch.To.Name)
		if err != nil {
			continue
		}
		if err := addFile(files, f); err != nil {
			return nil, err
		}
	}
	return files, nil
}

func addFile(files map[string][]byte, f *object.File) error {
	s, err := f.Contents()
	if err != nil {
		return err
	}
	files[f.Name] = []byte(s)
	return nil
}
