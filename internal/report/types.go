// Package report writes one-shot snapshots of a directory size index.
package report

import (
	"time"

	"dirsize/internal/fs"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is the exported form of a size index.
type Snapshot struct {
	// Unique identifier of this export
	ID string `json:"id" yaml:"id"`

	// Version for future compatibility
	Version int `json:"version" yaml:"version"`

	// Transcript the sizes were computed from
	Source string `json:"source" yaml:"source"`

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Aggregate size of the root directory
	Used uint64 `json:"used" yaml:"used"`

	// Every directory, sorted by path
	Directories []fs.Entry `json:"directories" yaml:"directories"`
}
