package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ProgressReporter reports progress for long-running operations.
type ProgressReporter interface {
	Update(percent float64, stage string)
	Finish()
	Error(err error)
}

// SimpleProgress implements a text-based progress bar driven by percentage
// and a stage label, matching how simulation runs report progress.
type SimpleProgress struct {
	mu      sync.Mutex
	percent float64
	stage   string
	writer  io.Writer
}

// NewProgressReporter creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stdout.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stdout
	}
	return &SimpleProgress{writer: w}
}

// Update renders the bar at the given completion percentage and stage.
// Percentages outside 0..100 are clamped.
func (p *SimpleProgress) Update(percent float64, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	p.percent = percent
	p.stage = stage
	p.render()
}

// Finish completes the bar and moves to the next line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.percent = 100
	p.render()
	fmt.Fprintln(p.writer)
}

// Error reports an error during progress.
func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "\n✗ Error: %v\n", err)
}

func (p *SimpleProgress) render() {
	barWidth := 40
	filled := int(float64(barWidth) * p.percent / 100)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	stage := p.stage
	if stage != "" {
		stage = " " + stage
	}
	// Pad the tail so a shorter stage label overwrites the previous one.
	fmt.Fprintf(p.writer, "\r[%s] %5.1f%%%-24s", bar, p.percent, stage)
}
