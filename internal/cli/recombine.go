package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/ngx-extract/internal/batch"
	"github.com/mvp-joe/ngx-extract/internal/console"
	"github.com/mvp-joe/ngx-extract/internal/processor"
)

var (
	filenameFlag  string
	prettyFlag    bool
	processorFlag string
)

// recombineCmd represents the recombine command
var recombineCmd = &cobra.Command{
	Use:   "recombine <batch-file>",
	Short: "Collapse per-document diagnostics onto the original file",
	Long: `Recombine reads the diagnostic lists a lint engine produced for each
virtual document (JSON or YAML, one list per document, in split order) and
prints the diagnostics that belong to the original file.

Use "-" to read the batch from stdin.

Examples:
  ngx-extract recombine results.json --filename src/app/app.component.ts
  eslint-runner | ngx-extract recombine - --filename app.component.ts --pretty
`,
	Args: cobra.ExactArgs(1),
	RunE: runRecombine,
}

func init() {
	rootCmd.AddCommand(recombineCmd)
	recombineCmd.Flags().StringVar(&filenameFlag, "filename", "", "original filename the batch belongs to")
	recombineCmd.Flags().BoolVar(&prettyFlag, "pretty", false, "print file:line:col lines instead of JSON")
	recombineCmd.Flags().StringVar(&processorFlag, "processor", processor.ExtractInlineHTML, "registered processor to recombine with")
}

// recombineOptions are the per-run settings of the recombine command.
type recombineOptions struct {
	Source    string
	Filename  string
	Pretty    bool
	Processor string
}

func runRecombine(cmd *cobra.Command, args []string) error {
	opts := recombineOptions{
		Source:    args[0],
		Filename:  filenameFlag,
		Pretty:    prettyFlag,
		Processor: processorFlag,
	}
	return executeRecombine(opts, cmd.InOrStdin(), cmd.OutOrStdout())
}

// executeRecombine decodes a batch and writes the original file's diagnostics.
func executeRecombine(opts recombineOptions, stdin io.Reader, stdout io.Writer) error {
	p, ok := processor.Lookup(opts.Processor)
	if !ok {
		return fmt.Errorf("unknown processor %q (available: %v)", opts.Processor, processor.Names())
	}

	var (
		data []byte
		err  error
	)
	if opts.Source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(opts.Source)
	}
	if err != nil {
		return fmt.Errorf("failed to read batch: %w", err)
	}

	b, err := batch.Decode(data)
	if err != nil {
		return err
	}

	if !opts.Pretty {
		records := b.Recombine(opts.Filename)
		if records == nil {
			records = []json.RawMessage{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	typed, err := b.Diagnostics()
	if err != nil {
		return err
	}

	diags := p.Postprocess(typed, opts.Filename)
	for _, d := range diags {
		fmt.Fprintln(stdout, console.FormatDiagnostic(opts.Filename, d))
	}
	if len(diags) == 0 {
		fmt.Fprintln(stdout, console.FormatSuccessMessage("no problems"))
	}
	return nil
}
