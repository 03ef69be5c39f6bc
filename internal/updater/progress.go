package updater

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Progress is the state of one download.
type Progress struct {
	Downloaded uint64
	Total      uint64
}

// Percent returns the completed share in the range 0-100.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(p.Downloaded * 100 / p.Total)
}

// ProgressFunc receives a Progress after every chunk written to disk.
type ProgressFunc func(Progress)

// ProgressBar draws download progress as a single status line that is
// redrawn whenever the percentage changes. It is also an io.Writer: text
// written through it first ends an unfinished status line, so log output
// never lands on the same line as the progress text.
type ProgressBar struct {
	w           io.Writer
	p           *message.Printer
	lastPercent int
	open        bool
}

// NewProgressBar returns a ProgressBar drawing on w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{
		w:           w,
		p:           message.NewPrinter(language.English),
		lastPercent: -1,
	}
}

// Report is a ProgressFunc.
func (b *ProgressBar) Report(pr Progress) {
	percent := pr.Percent()
	if percent == b.lastPercent {
		return
	}
	b.lastPercent = percent
	b.p.Fprintf(b.w, "\rDownloading... %d%% (%d / %d bytes)", percent, pr.Downloaded, pr.Total)
	b.open = true
	if pr.Downloaded == pr.Total {
		b.endLine()
	}
}

func (b *ProgressBar) Write(p []byte) (int, error) {
	b.endLine()
	return b.w.Write(p)
}

func (b *ProgressBar) endLine() {
	if b.open {
		fmt.Fprintln(b.w)
		b.open = false
	}
}

// TerminalProgress returns the Report func of a new ProgressBar on w.
func TerminalProgress(w io.Writer) ProgressFunc {
	return NewProgressBar(w).Report
}
