package fs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestSelect(t *testing.T) {
	_, idx := aggregated(t, sampleTranscript)

	tests := []struct {
		name     string
		include  []string
		exclude  []string
		expected []string
	}{
		{name: "everything", expected: []string{"/", "/a", "/a/e", "/d"}},
		{name: "top level only", include: []string{"/?*"}, expected: []string{"/a", "/d"}},
		{name: "recursive", include: []string{"/a**"}, expected: []string{"/a", "/a/e"}},
		{name: "exclude subtree", exclude: []string{"/a/**"}, expected: []string{"/", "/a", "/d"}},
		{name: "include and exclude", include: []string{"/**"}, exclude: []string{"/d"}, expected: []string{"/", "/a", "/a/e"}},
		{name: "no match", include: []string{"/zzz"}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Select(tt.include, tt.exclude)
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, paths(got))
		})
	}
}

func TestSelectBadPattern(t *testing.T) {
	_, idx := aggregated(t, sampleTranscript)
	_, err := idx.Select([]string{"/[a"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}
