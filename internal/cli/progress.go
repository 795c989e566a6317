package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders assembly progress as a terminal progress bar.
type CLIProgressReporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func NewCLIProgressReporter(out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{out: out}
}

func (r *CLIProgressReporter) OnDiscoveryComplete(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription("Assembling"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)
}

func (r *CLIProgressReporter) OnFileDone(path string) {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

func (r *CLIProgressReporter) OnAssemblyComplete(outputPath string, files int, elapsed time.Duration) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintf(r.out, "✓ Assembled %d files into %s (%s)\n", files, outputPath, elapsed.Round(time.Millisecond))
}
