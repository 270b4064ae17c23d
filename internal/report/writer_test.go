package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"dirsize/internal/app"
	"dirsize/internal/fs"
)

const sample = "$ cd /\ndir a\n100 x\n$ cd a\n40 y\n"

func loadIndex(t *testing.T) *fs.SizeIndex {
	t.Helper()
	res, err := app.LoadReader(strings.NewReader(sample))
	require.NoError(t, err)
	return res.Index
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{path: "out.yaml", expected: FormatYAML},
		{path: "out.YML", expected: FormatYAML},
		{path: "out.json", expected: FormatJSON},
		{path: "out", expected: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFor(tt.path))
		})
	}
}

func TestWrite(t *testing.T) {
	idx := loadIndex(t)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, name := range []string{"report.json", "report.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			w, err := NewWriter(path)
			require.NoError(t, err)
			w.now = func() time.Time { return fixed }

			snap, err := w.Write(idx, "input.txt")
			require.NoError(t, err)
			assert.NotEmpty(t, snap.ID)
			assert.Equal(t, uint64(140), snap.Used)

			data, err := os.ReadFile(w.Path())
			require.NoError(t, err)

			var got Snapshot
			if FormatFor(name) == FormatYAML {
				require.NoError(t, yaml.Unmarshal(data, &got))
			} else {
				require.NoError(t, json.Unmarshal(data, &got))
			}

			assert.Equal(t, snap.ID, got.ID)
			assert.Equal(t, SnapshotVersion, got.Version)
			assert.Equal(t, "input.txt", got.Source)
			assert.True(t, fixed.Equal(got.GeneratedAt))
			assert.Equal(t, []fs.Entry{
				{Path: "/", Size: 140},
				{Path: "/a", Size: 40},
			}, got.Directories)
		})
	}
}

func TestWriteOverwritesPreviousReport(t *testing.T) {
	idx := loadIndex(t)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 4096)), 0644))

	w, err := NewWriter(path)
	require.NoError(t, err)
	first, err := w.Write(idx, "a")
	require.NoError(t, err)
	second, err := w.Write(idx, "b")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	var got Snapshot
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, second.ID, got.ID)
}
