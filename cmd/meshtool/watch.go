package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file...]",
	Short: "Print mesh information every time a file changes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&flags.Debounce, "debounce", "", "Delay before reloading a changed file (default from config)")
}

func reloadInfo(path string) {
	m, err := loadMesh(path, cfg.Load.Scale)
	if err != nil {
		slog.Error("reload failed", "file", path, "error", err)
		return
	}
	printInfo(path, m)
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return err
	}

	for _, path := range args {
		reloadInfo(path)
	}

	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch(args, reloadInfo); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %d file(s), press Ctrl+C to stop\n", len(args))
	fw.Run(ctx)
	return nil
}
