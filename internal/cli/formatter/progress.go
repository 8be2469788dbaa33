package formatter

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

const progressBarWidth = 30

// ProgressBar redraws a single status line as records are processed.
type ProgressBar struct {
	mu    sync.Mutex
	w     io.Writer
	label string
	bar   progress.Model
	drawn bool
}

// NewProgressBar creates a progress line on w prefixed with label.
func NewProgressBar(w io.Writer, label string) *ProgressBar {
	return &ProgressBar{
		w:     w,
		label: label,
		bar: progress.New(
			progress.WithGradient(string(ColorBlue), string(ColorGreen)),
			progress.WithWidth(progressBarWidth),
		),
	}
}

// Update redraws the line for done of total records, naming the last key.
// Its signature matches app.ProgressFunc.
func (p *ProgressBar) Update(done, total int, key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r\033[K  %s %s %s %s",
		Dim(p.label), RenderProgress(done, total, p.bar), Dim(fmt.Sprintf("%d/%d", done, total)), key)
	p.drawn = true
}

// Done clears the progress line.
func (p *ProgressBar) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprint(p.w, "\r\033[K")
		p.drawn = false
	}
}

// RenderProgress renders bar at done/total. A zero total renders as full.
func RenderProgress(done, total int, bar progress.Model) string {
	pct := 1.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	return bar.ViewAs(pct)
}
