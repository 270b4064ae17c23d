package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"dirsize/internal/fs"
	"dirsize/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("report")
)

// Format selects the snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension: YAML for .yaml and
// .yml, JSON otherwise.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Writer writes snapshots to a single report file.
type Writer struct {
	path   string
	format Format
	now    func() time.Time
}

// NewWriter creates a writer for the given report path.
// It ensures the report directory exists and is writable.
func NewWriter(path string) (*Writer, error) {
	logger.Debug("Creating report writer with path: %s", path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve report path %s: %w", path, err)
	}
	logger.Debug("Resolved report path: %s", absPath)

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(absPath)
	if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", dir, mkdirErr)
	}

	// Open for writing once to verify we have write permissions
	f, writeErr := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE, 0644)
	if writeErr != nil {
		return nil, fmt.Errorf("failed to create report file %s: %w", absPath, writeErr)
	}
	f.Close()

	return &Writer{
		path:   absPath,
		format: FormatFor(absPath),
		now:    time.Now,
	}, nil
}

// Path returns the absolute report path.
func (w *Writer) Path() string {
	return w.path
}

// Write exports idx as a snapshot, then reads the file back to verify it.
func (w *Writer) Write(idx *fs.SizeIndex, source string) (*Snapshot, error) {
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Version:     SnapshotVersion,
		Source:      source,
		GeneratedAt: w.now().UTC().Truncate(time.Second),
		Used:        idx.Used(),
		Directories: idx.Entries(),
	}

	data, err := w.marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("refusing to write empty snapshot")
	}

	logger.Trace("Writing %d bytes of %s report data", len(data), w.format)
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}

	// Verify the write
	written, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to verify written report: %w", err)
	}
	var check Snapshot
	if err := w.unmarshal(written, &check); err != nil {
		return nil, fmt.Errorf("written report does not decode: %w", err)
	}
	if check.ID != snap.ID || len(check.Directories) != len(snap.Directories) {
		return nil, fmt.Errorf("written report does not match snapshot %s", snap.ID)
	}

	logger.Info("Wrote report %s (%d directories)", w.path, len(snap.Directories))
	return snap, nil
}

func (w *Writer) marshal(snap *Snapshot) ([]byte, error) {
	if w.format == FormatYAML {
		return yaml.Marshal(snap)
	}
	// Marshal with indentation for readability
	return json.MarshalIndent(snap, "", "  ")
}

func (w *Writer) unmarshal(data []byte, snap *Snapshot) error {
	if w.format == FormatYAML {
		return yaml.Unmarshal(data, snap)
	}
	return json.Unmarshal(data, snap)
}
