package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirsize/internal/app"
	"dirsize/internal/fs"
)

var sumCmd = &cobra.Command{
	Use:   "sum <transcript>",
	Short: "Sum the sizes of all directories at or below a threshold",
	Long: `Prints the sum of the aggregate sizes of every directory whose own aggregate
size is at most --threshold. Nested directories are each counted.`,
	Args: cobra.ExactArgs(1),
	RunE: runSum,
}

var freeCmd = &cobra.Command{
	Use:   "free <transcript>",
	Short: "Find the smallest directory whose removal frees enough space",
	Long: `Given a disk of --capacity bytes on which --required bytes must be free,
prints the size of the smallest directory that would free enough space if
deleted. Fails when enough space is already free, or when no directory is
large enough.`,
	Args: cobra.ExactArgs(1),
	RunE: runFree,
}

func init() {
	sumCmd.Flags().Uint64("threshold", 0, "Largest directory size to include (default from config)")

	freeCmd.Flags().Uint64("capacity", 0, "Total disk capacity in bytes (default from config)")
	freeCmd.Flags().Uint64("required", 0, "Free space required in bytes (default from config)")
	freeCmd.Flags().Bool("path", false, "Print the directory path next to its size")
}

// uint64Flag returns the flag value when it was set, the fallback otherwise.
func uint64Flag(cmd *cobra.Command, name string, fallback uint64) (uint64, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	return cmd.Flags().GetUint64(name)
}

func runSum(cmd *cobra.Command, args []string) error {
	threshold, err := uint64Flag(cmd, "threshold", cfg.Query.Threshold)
	if err != nil {
		return err
	}

	res, err := app.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), fs.BoundedSum(res.Index, threshold))
	return nil
}

func runFree(cmd *cobra.Command, args []string) error {
	capacity, err := uint64Flag(cmd, "capacity", cfg.Disk.Capacity)
	if err != nil {
		return err
	}
	required, err := uint64Flag(cmd, "required", cfg.Disk.RequiredFree)
	if err != nil {
		return err
	}
	withPath, err := cmd.Flags().GetBool("path")
	if err != nil {
		return err
	}

	res, err := app.Load(args[0])
	if err != nil {
		return err
	}

	entry, err := fs.SmallestAtLeast(res.Index, capacity, required)
	if err != nil {
		return err
	}

	if withPath {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", entry.Size, entry.Path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), entry.Size)
	return nil
}
