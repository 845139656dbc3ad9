package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngx-extract/internal/cache"
	"github.com/mvp-joe/ngx-extract/internal/config"
	"github.com/mvp-joe/ngx-extract/internal/console"
	"github.com/mvp-joe/ngx-extract/internal/discovery"
	"github.com/mvp-joe/ngx-extract/internal/processor"
	"github.com/mvp-joe/ngx-extract/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-split component files whenever they change",
	Long: `Watch splits every component file under the given directories once, then
re-splits files as they change. Files whose content did not change are not
reported again.

Examples:
  ngx-extract watch src
`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nInterrupted! Stopping watcher...")
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return executeWatch(ctx, cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// executeWatch runs an initial split over dirs and then reports changes
// until ctx is cancelled.
func executeWatch(ctx context.Context, cfg *config.Config, dirs []string, stdout, stderr io.Writer) error {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	locator, err := newLocator(cfg.Processor.Locator)
	if err != nil {
		return err
	}

	splitter, err := processor.NewSplitter(cfg.SplitterOptions(locator, processor.NewLogNotifier(log.New(stderr, "", 0))))
	if err != nil {
		return fmt.Errorf("invalid processor configuration: %w", err)
	}

	disc, err := discovery.New(cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	results, err := cache.New(cfg.Watch.CacheSize)
	if err != nil {
		return err
	}
	defer results.Close()

	roots := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		roots = append(roots, abs)
	}

	ignored := func(path string) bool {
		for _, root := range roots {
			rel, err := filepath.Rel(root, path)
			if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
				continue
			}
			if disc.ShouldIgnore(filepath.ToSlash(rel)) {
				return true
			}
		}
		return false
	}

	// The initial pass and the watcher's flushes run on different goroutines.
	var handleMu sync.Mutex
	handle := func(files []string) {
		handleMu.Lock()
		defer handleMu.Unlock()
		for _, file := range files {
			reportChange(splitter, results, file, stdout, stderr)
		}
	}

	fw, err := watcher.NewFileWatcher(roots, watcher.Options{
		Match:    func(path string) bool { return splitter.Eligible(path) && !ignored(path) },
		SkipDir:  ignored,
		Debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	// Edits made during the initial pass are held back and reported once it ends.
	fw.Pause()
	if err := fw.Start(ctx, handle); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	initial, err := disc.ExpandMatching(roots, splitter.Eligible)
	if err != nil {
		return err
	}
	handle(initial)
	fw.Resume()

	fmt.Fprintln(stderr, console.FormatInfoMessage(fmt.Sprintf("Watching %d directories for component changes", len(roots))))
	<-ctx.Done()

	hits, misses := results.Stats()
	if verbose {
		log.Printf("Split cache: %d hits, %d misses", hits, misses)
	}
	return nil
}

// reportChange splits file if its content changed since it was last seen.
func reportChange(splitter *processor.Splitter, results *cache.SplitCache, file string, stdout, stderr io.Writer) {
	content, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		results.Forget(file)
		fmt.Fprintln(stdout, console.FormatWarningMessage(fmt.Sprintf("%s removed", console.ToRelativePath(file))))
		return
	}
	if err != nil {
		fmt.Fprintln(stderr, console.FormatErrorMessage(fmt.Sprintf("%s: %v", file, err)))
		return
	}

	text := string(content)
	if !results.Changed(file, text) {
		return
	}

	docs, err := results.Split(file, text, splitter.Split)
	if err != nil {
		fmt.Fprintln(stderr, console.FormatErrorMessage(fmt.Sprintf("%s: %v", console.ToRelativePath(file), err)))
		return
	}

	fmt.Fprintln(stdout, console.FormatSuccessMessage(fmt.Sprintf("%s: %d documents", console.ToRelativePath(file), len(docs))))
	for i, doc := range docs {
		fmt.Fprintln(stdout, console.FormatDocument(i, doc))
	}
}
