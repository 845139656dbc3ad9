package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngx-extract/internal/config"
	"github.com/mvp-joe/ngx-extract/internal/console"
	"github.com/mvp-joe/ngx-extract/internal/discovery"
	"github.com/mvp-joe/ngx-extract/internal/processor"
)

// ErrSplitFailed indicates at least one file could not be split.
var ErrSplitFailed = errors.New("split failed")

var (
	formatFlag string
	outDirFlag string
	jobsFlag   int
	quietFlag  bool
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split [paths...]",
	Short: "Split component files into virtual documents",
	Long: `Split reads TypeScript component files and emits the virtual documents
a lint engine should check: the original file, followed by its inline
template when one exists.

Directories are walked using paths.include and paths.ignore from the config.
Files named explicitly are always split; files with an unsupported suffix
pass through with a warning.

Examples:
  # Split every component under src/
  ngx-extract split src

  # Write extracted templates next to each other under out/
  ngx-extract split src --out out --quiet

  # Emit YAML instead of JSON
  ngx-extract split src/app/app.component.ts --format yaml
`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format: json, yaml or text (default from config)")
	splitCmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "write extracted templates under this directory")
	splitCmd.Flags().IntVarP(&jobsFlag, "jobs", "j", 0, "files split concurrently (default from config)")
	splitCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable the progress bar and summary")
}

// splitOptions are the per-run settings of the split command.
type splitOptions struct {
	Paths  []string
	Format string
	OutDir string
	Jobs   int
	Quiet  bool
}

// fileResult is the outcome of splitting one file.
type fileResult struct {
	Filename  string                      `json:"filename" yaml:"filename"`
	Documents []processor.VirtualDocument `json:"documents,omitempty" yaml:"documents,omitempty"`
	Error     string                      `json:"error,omitempty" yaml:"error,omitempty"`

	warnings []string
	err      error
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := splitOptions{
		Paths:  args,
		Format: cfg.Output.Format,
		OutDir: cfg.Output.Dir,
		Jobs:   cfg.Output.Jobs,
		Quiet:  quietFlag,
	}
	if cmd.Flags().Changed("format") {
		opts.Format = formatFlag
	}
	if cmd.Flags().Changed("out") {
		opts.OutDir = outDirFlag
	}
	if cmd.Flags().Changed("jobs") {
		opts.Jobs = jobsFlag
	}

	return executeSplit(cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// executeSplit splits every file named by opts.Paths and writes the results.
func executeSplit(cfg *config.Config, opts splitOptions, stdout, stderr io.Writer) error {
	switch opts.Format {
	case config.FormatJSON, config.FormatYAML, config.FormatText:
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidFormat, opts.Format)
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if len(opts.Paths) == 0 {
		opts.Paths = []string{"."}
	}

	locator, err := newLocator(cfg.Processor.Locator)
	if err != nil {
		return err
	}

	// Surface bad processor options once instead of per file.
	eligibility, err := processor.NewSplitter(cfg.SplitterOptions(locator, processor.Discard))
	if err != nil {
		return fmt.Errorf("invalid processor configuration: %w", err)
	}

	disc, err := discovery.New(cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	// Walked directories only yield component files; explicitly named files
	// still go through the splitter and get its passthrough warning.
	files, err := disc.ExpandMatching(opts.Paths, eligibility.Eligible)
	if err != nil {
		return err
	}

	progress := newSplitProgress(stderr, opts.Quiet)
	progress.OnStart(len(files))

	p := pool.NewWithResults[fileResult]().WithMaxGoroutines(opts.Jobs)
	for _, file := range files {
		file := file
		p.Go(func() fileResult {
			defer progress.OnFileProcessed()
			return splitFile(cfg, locator, file)
		})
	}
	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].Filename < results[j].Filename })

	notifier := processor.NewLogNotifier(log.New(stderr, "", 0))
	failed, templates := 0, 0
	for _, r := range results {
		for _, line := range r.warnings {
			notifier.Warn(line)
		}
		if r.err != nil {
			failed++
			fmt.Fprintln(stderr, console.FormatErrorMessage(fmt.Sprintf("%s: %v", r.Filename, r.err)))
			continue
		}
		templates += len(r.Documents) - 1

		if opts.OutDir != "" {
			if err := writeDocuments(opts.OutDir, r); err != nil {
				return err
			}
		}
	}

	progress.OnComplete(len(results), templates, failed)

	if err := writeResults(stdout, opts.Format, results); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrSplitFailed, failed, len(results))
	}
	return nil
}

// splitFile reads and splits one file. Notices are recorded per file so
// concurrent workers cannot interleave their lines.
func splitFile(cfg *config.Config, locator processor.Locator, filename string) fileResult {
	result := fileResult{Filename: filename}

	content, err := os.ReadFile(filename)
	if err != nil {
		result.err = fmt.Errorf("failed to read file: %w", err)
		result.Error = result.err.Error()
		return result
	}

	rec := &processor.Recorder{}
	splitter, err := processor.NewSplitter(cfg.SplitterOptions(locator, rec))
	if err != nil {
		result.err = err
		result.Error = err.Error()
		return result
	}

	docs, err := splitter.Split(string(content), filename)
	result.warnings = rec.Messages()
	if err != nil {
		result.err = err
		result.Error = err.Error()
		return result
	}

	result.Documents = docs
	return result
}

// writeResults renders results to w in the requested format.
func writeResults(w io.Writer, format string, results []fileResult) error {
	if results == nil {
		results = []fileResult{}
	}

	switch format {
	case config.FormatYAML:
		data, err := yaml.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		_, err = w.Write(data)
		return err

	case config.FormatText:
		for _, r := range results {
			if r.err != nil {
				continue
			}
			fmt.Fprintln(w, console.ToRelativePath(r.Filename))
			for i, doc := range r.Documents {
				fmt.Fprintln(w, console.FormatDocument(i, doc))
			}
		}
		return nil

	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
}

// writeDocuments writes the extracted documents of r below outDir, mirroring
// the source path: out/src/app/a.component.ts/inline-template.component.html.
func writeDocuments(outDir string, r fileResult) error {
	if len(r.Documents) < 2 {
		return nil
	}

	dir := filepath.Join(outDir, outputRelPath(r.Filename))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	extracted := r.Documents[1:]
	for i, doc := range extracted {
		name := doc.Filename
		if len(extracted) > 1 {
			name = fmt.Sprintf("%d-%s", i+1, doc.Filename)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc.Text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// outputRelPath maps a source path to a path that stays inside the output directory.
func outputRelPath(filename string) string {
	rel := filepath.ToSlash(filepath.Clean(console.ToRelativePath(filename)))
	rel = strings.TrimPrefix(rel, "/")
	for strings.HasPrefix(rel, "../") {
		rel = strings.TrimPrefix(rel, "../")
	}
	return filepath.FromSlash(rel)
}
