package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/nestcheck/pkg/console"
)

// debounceDelay groups bursts of writes (editors often write twice) into one re-check
const debounceDelay = 300 * time.Millisecond

// watchFiles calls run with the files that changed, debounced, until ctx is
// cancelled or the process receives SIGINT/SIGTERM. The parent directories
// are watched rather than the files so editors that replace files on save
// keep being tracked.
func watchFiles(ctx context.Context, files []string, verbose bool, out io.Writer, run func(changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]string, len(files))
	var dirs []string
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		targets[abs] = file
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	if len(files) == 1 {
		fmt.Fprintf(out, "Watching for file changes to %s...\n", files[0])
	} else {
		fmt.Fprintf(out, "Watching for file changes to %d files...\n", len(files))
	}
	if verbose {
		fmt.Fprintln(os.Stderr, console.FormatVerboseMessage("Press Ctrl+C to stop watching."))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		mu            sync.Mutex
		runMu         sync.Mutex
		pending       = make(map[string]struct{})
		debounceTimer *time.Timer
	)

	flush := func() {
		mu.Lock()
		changed := make([]string, 0, len(pending))
		for file := range pending {
			changed = append(changed, file)
		}
		pending = make(map[string]struct{})
		mu.Unlock()

		if len(changed) == 0 {
			return
		}
		slices.Sort(changed)

		runMu.Lock()
		defer runMu.Unlock()
		run(changed)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			file, tracked := targets[filepath.Clean(event.Name)]
			if !tracked {
				continue
			}

			if verbose {
				fmt.Fprintln(os.Stderr, console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", file, event.Op.String())))
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("%s was removed or renamed", file)))
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				mu.Lock()
				pending[file] = struct{}{}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, flush)
				mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if verbose {
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-ctx.Done():
			if verbose {
				fmt.Fprintln(os.Stderr, console.FormatVerboseMessage("Stopping watch mode..."))
			}
			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
			return nil
		}
	}
}
