package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirsize/internal/fs"
	"dirsize/internal/transcript"
)

const sample = `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, 23, res.Instructions)
	assert.True(t, res.Tree.Aggregated())
	assert.Equal(t, uint64(95437), fs.BoundedSum(res.Index, 100000))

	got, err := fs.SmallestAtLeast(res.Index, 70000000, 30000000)
	require.NoError(t, err)
	assert.Equal(t, fs.Entry{Path: "/d", Size: 24933642}, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadReaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "parse error", input: "$ cd /\n$ cd\n", target: transcript.ErrParse},
		{name: "navigation error", input: "$ cd ..\n", target: fs.ErrNavigation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LoadReader(strings.NewReader(tt.input))
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}
