package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/splice/internal/service"
)

const barWidth = 30

// progressBar redraws a single terminal line for each event.
type progressBar struct {
	w       io.Writer
	lastLen int
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w}
}

func (b *progressBar) Update(ev service.Event) {
	line := renderBar(ev.Progress, ev.Message)
	pad := ""
	if n := b.lastLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	_, _ = fmt.Fprintf(b.w, "\r%s%s", line, pad)
	b.lastLen = len(line)
}

func (b *progressBar) Finish() {
	if b.lastLen > 0 {
		_, _ = fmt.Fprintln(b.w)
		b.lastLen = 0
	}
}

func renderBar(progress float64, message string) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * barWidth)
	return fmt.Sprintf("[%s%s] %5.1f%% %s",
		strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), progress*100, message)
}
