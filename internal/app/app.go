// Package app wires the transcript parser, tree builder and aggregator
// into a single load step for the command line.
package app

import (
	"fmt"
	"io"
	"os"

	"dirsize/internal/fs"
	"dirsize/internal/logging"
	"dirsize/internal/transcript"
)

var (
	logger = logging.GetLogger().WithPrefix("app")
)

// StdinPath selects standard input as the transcript source.
const StdinPath = "-"

// Result is an aggregated tree ready for queries.
type Result struct {
	Source       string
	Instructions int
	Tree         *fs.Tree
	Index        *fs.SizeIndex
}

// Load reads the transcript at path ("-" for stdin) and runs it through
// parse, build and aggregate.
func Load(path string) (*Result, error) {
	var r io.Reader
	if path == StdinPath {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open transcript %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	res, err := LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	res.Source = path
	return res, nil
}

// LoadReader runs an in-memory or streamed transcript through the pipeline.
func LoadReader(r io.Reader) (*Result, error) {
	instrs, err := transcript.Parse(r)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed %d instructions", len(instrs))

	tree, err := fs.Build(instrs)
	if err != nil {
		return nil, err
	}

	tree, idx := fs.Aggregate(tree)
	logger.Info("Loaded %d directories, %d bytes used", idx.Len(), idx.Used())

	return &Result{
		Instructions: len(instrs),
		Tree:         tree,
		Index:        idx,
	}, nil
}

func displayName(path string) string {
	if path == StdinPath {
		return "stdin"
	}
	return path
}
