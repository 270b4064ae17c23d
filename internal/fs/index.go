package fs

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"
)

// Entry is one directory of a SizeIndex.
type Entry struct {
	Path string `json:"path" yaml:"path"`
	Size uint64 `json:"size" yaml:"size"`
}

// SizeIndex maps the full path of every directory, root included, to its
// aggregate size. Only Aggregate produces one, so holding a *SizeIndex
// means the sizes are final.
type SizeIndex struct {
	sizes map[string]uint64
}

func newSizeIndex() *SizeIndex {
	return &SizeIndex{sizes: make(map[string]uint64)}
}

func (idx *SizeIndex) put(path string, size uint64) {
	idx.sizes[path] = size
}

// Len returns the number of directories in the index.
func (idx *SizeIndex) Len() int {
	return len(idx.sizes)
}

// Size returns the aggregate size stored for path.
func (idx *SizeIndex) Size(path string) (uint64, bool) {
	size, ok := idx.sizes[path]
	return size, ok
}

// Used returns the aggregate size of the root.
func (idx *SizeIndex) Used() uint64 {
	return idx.sizes[RootPath]
}

// Entries returns all directories sorted by path.
func (idx *SizeIndex) Entries() []Entry {
	entries := make([]Entry, 0, len(idx.sizes))
	for path, size := range idx.sizes {
		entries = append(entries, Entry{Path: path, Size: size})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Select returns the sorted entries whose path matches at least one
// include pattern (all paths when include is empty) and no exclude
// pattern. Patterns are globs where '*' stops at '/' and '**' does not.
func (idx *SizeIndex) Select(include, exclude []string) ([]Entry, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range idx.Entries() {
		if len(inc) > 0 && !matchAny(inc, e.Path) {
			continue
		}
		if matchAny(exc, e.Path) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, NewError(OpSelect, pattern, fmt.Errorf("%w: bad pattern: %v", ErrInvalidQuery, err))
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
