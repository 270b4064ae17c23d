package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"dirsize/internal/app"
	"dirsize/internal/mount"
)

var mountCmd = &cobra.Command{
	Use:   "mount <transcript>",
	Short: "Serve the sized tree as a read-only FUSE filesystem",
	Long: `Mounts the rebuilt directory tree at --mountpoint. Every directory reports
its aggregate size and contains a read-only _SIZE file with that size.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runMount,
}

func init() {
	mountCmd.Flags().String("mountpoint", "", "Directory to mount the view on")
	mountCmd.Flags().Bool("allow-other", false, "Allow other users to access the mount")
	_ = mountCmd.MarkFlagRequired("mountpoint")
}

func runMount(cmd *cobra.Command, args []string) error {
	mountPoint, err := cmd.Flags().GetString("mountpoint")
	if err != nil {
		return err
	}
	allowOther := cfg.Mount.AllowOther
	if cmd.Flags().Changed("allow-other") {
		if allowOther, err = cmd.Flags().GetBool("allow-other"); err != nil {
			return err
		}
	}
	cleanMount := filepath.Clean(mountPoint)

	res, err := app.Load(args[0])
	if err != nil {
		return err
	}

	sfs, err := mount.New(res.Tree)
	if err != nil {
		return err
	}

	logger.Debug("Setting up signal handlers...")
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := sfs.Mount(cleanMount, mount.Options{AllowOther: allowOther}); err != nil {
		return err
	}
	logger.Info("Filesystem mounted at %s", cleanMount)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal %v", sig)
			if err := sfs.Unmount(cleanMount); err != nil {
				logger.Error("Unmount error: %v", err)
			}
		case <-done:
		}
	}()

	if err := sfs.Serve(); err != nil {
		return err
	}
	logger.Info("Clean shutdown complete")
	return nil
}
