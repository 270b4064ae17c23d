package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
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

func writeTranscript(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	configPath, verbose, cfg = "", false, nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSumCmd(t *testing.T) {
	input := writeTranscript(t, sample)

	out, err := run(t, "sum", input)
	require.NoError(t, err)
	assert.Equal(t, "95437\n", out)

	out, err = run(t, "sum", input, "--threshold", "600")
	require.NoError(t, err)
	assert.Equal(t, "584\n", out)
}

func TestFreeCmd(t *testing.T) {
	input := writeTranscript(t, sample)

	out, err := run(t, "free", input)
	require.NoError(t, err)
	assert.Equal(t, "24933642\n", out)

	out, err = run(t, "free", input, "--path")
	require.NoError(t, err)
	assert.Equal(t, "24933642\t/d\n", out)

	_, err = run(t, "free", input, "--required", "100")
	assert.True(t, errors.Is(err, fs.ErrInvalidQuery))

	_, err = run(t, "free", input, "--capacity", "10")
	assert.True(t, errors.Is(err, fs.ErrNotFound))
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	input := writeTranscript(t, sample)

	_, err := run(t, "free", input, "--path")
	require.NoError(t, err)
	out, err := run(t, "free", input)
	require.NoError(t, err)
	assert.Equal(t, "24933642\n", out)

	_, err = run(t, "list", input, "--exclude", "/a**", "--exclude", "/d")
	require.NoError(t, err)
	out, err = run(t, "list", input, "--exclude", "/d")
	require.NoError(t, err)
	assert.Equal(t, "48381165\t/\n94853\t/a\n584\t/a/e\n", out)
}

func TestConfigFile(t *testing.T) {
	input := writeTranscript(t, sample)
	cfgPath := filepath.Join(t.TempDir(), "dirsize.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("query:\n  threshold: 1000\n"), 0644))

	out, err := run(t, "--config", cfgPath, "sum", input)
	require.NoError(t, err)
	assert.Equal(t, "584\n", out)
}

func TestListCmd(t *testing.T) {
	input := writeTranscript(t, sample)

	out, err := run(t, "list", input)
	require.NoError(t, err)
	assert.Equal(t, "48381165\t/\n94853\t/a\n584\t/a/e\n24933642\t/d\n", out)

	out, err = run(t, "list", input, "--exclude", "/a**")
	require.NoError(t, err)
	assert.Equal(t, "48381165\t/\n24933642\t/d\n", out)
}

func TestReportCmd(t *testing.T) {
	input := writeTranscript(t, sample)
	dest := filepath.Join(t.TempDir(), "out", "report.yaml")

	out, err := run(t, "report", input, "--out", dest)
	require.NoError(t, err)
	assert.Equal(t, dest+"\n", out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: /d")
	assert.Contains(t, string(data), "size: 24933642")
}

func TestTranscriptErrors(t *testing.T) {
	_, err := run(t, "sum", writeTranscript(t, "$ cd /\n$ cd\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, transcript.ErrParse))
	assert.Contains(t, err.Error(), "line 2")

	_, err = run(t, "sum", writeTranscript(t, "$ cd ..\n"))
	assert.True(t, errors.Is(err, fs.ErrNavigation))

	_, err = run(t, "sum", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
