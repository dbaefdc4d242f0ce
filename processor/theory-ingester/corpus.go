package theoryingester

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Corpus locates theory bundle files under one root directory. Include and
// exclude patterns are doublestar globs over slash-separated paths relative
// to the root.
type Corpus struct {
	root    string
	include []string
	exclude []string
}

// NewCorpus creates a corpus rooted at the given directory. The root is
// normalized to an absolute path so resolved bundle paths stay stable when
// the working directory changes.
func NewCorpus(root string, include, exclude []string) *Corpus {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Corpus{
		root:    root,
		include: include,
		exclude: exclude,
	}
}

// Root returns the absolute corpus root.
func (c *Corpus) Root() string {
	return c.root
}

// Resolve expands the include patterns to concrete bundle files, drops
// excluded ones and returns the absolute paths sorted. An empty corpus is
// not an error.
func (c *Corpus) Resolve() ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range c.include {
		absPattern := filepath.Join(c.root, filepath.FromSlash(pattern))
		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if seen[match] || c.excluded(c.Rel(match)) {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a slash-separated path relative to the root names
// a bundle file: matched by an include pattern and by no exclude pattern.
func (c *Corpus) Matches(relPath string) bool {
	included := false
	for _, pattern := range c.include {
		// Patterns are validated at config time, a bad one matches nothing.
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	return !c.excluded(relPath)
}

// Rel converts an absolute path to the slash-separated form the patterns
// match against.
func (c *Corpus) Rel(absPath string) string {
	rel, err := filepath.Rel(c.root, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}

func (c *Corpus) excluded(relPath string) bool {
	for _, pattern := range c.exclude {
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
