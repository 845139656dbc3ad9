package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// splitProgress reports per-file progress of a split run on stderr.
type splitProgress struct {
	quiet bool
	out   io.Writer
	bar   *progressbar.ProgressBar
	start time.Time
}

func newSplitProgress(out io.Writer, quiet bool) *splitProgress {
	return &splitProgress{
		quiet: quiet,
		out:   out,
		start: time.Now(),
	}
}

func (p *splitProgress) OnStart(totalFiles int) {
	if p.quiet || totalFiles == 0 {
		return
	}

	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("Splitting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.out)
		}),
	)
}

// OnFileProcessed is safe to call from pool workers; the bar serializes updates.
func (p *splitProgress) OnFileProcessed() {
	if p.quiet || p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *splitProgress) OnComplete(files, templates, failed int) {
	if p.quiet {
		return
	}
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
	fmt.Fprintf(p.out, "Split %d files: %d templates extracted, %d failed (%.1fs)\n",
		files, templates, failed, time.Since(p.start).Seconds())
}
