package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirsize/internal/app"
	"dirsize/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list <transcript>",
	Short: "List every directory with its aggregate size",
	Long: `Prints "size<TAB>path" for every directory, sorted by path.

--include and --exclude take glob patterns matched against full paths such
as "/a/e". '*' does not cross '/', '**' does. Patterns from the config file
apply when no flag is given.

Example:
  dirsize list input.txt --include '/**' --exclude '/tmp/**'`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var reportCmd = &cobra.Command{
	Use:   "report <transcript>",
	Short: "Write the size of every directory to a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	listCmd.Flags().StringArray("include", nil, "Only list paths matching this glob (repeatable)")
	listCmd.Flags().StringArray("exclude", nil, "Skip paths matching this glob (repeatable)")

	reportCmd.Flags().StringP("out", "o", "", "Report file; .yaml/.yml for YAML, JSON otherwise")
	_ = reportCmd.MarkFlagRequired("out")
}

func stringArrayFlag(cmd *cobra.Command, name string, fallback []string) ([]string, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return cmd.Flags().GetStringArray(name)
}

func runList(cmd *cobra.Command, args []string) error {
	include, err := stringArrayFlag(cmd, "include", cfg.List.Include)
	if err != nil {
		return err
	}
	exclude, err := stringArrayFlag(cmd, "exclude", cfg.List.Exclude)
	if err != nil {
		return err
	}

	res, err := app.Load(args[0])
	if err != nil {
		return err
	}

	entries, err := res.Index.Select(include, exclude)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", e.Size, e.Path)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	res, err := app.Load(args[0])
	if err != nil {
		return err
	}

	w, err := report.NewWriter(out)
	if err != nil {
		return err
	}
	if _, err := w.Write(res.Index, res.Source); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), w.Path())
	return nil
}
