package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/dirhound/internal/core"
	"github.com/fatih/color"
)

// progressPrinter redraws a single status line on a terminal
type progressPrinter struct {
	w         io.Writer
	lastPhase string
	gray      *color.Color
	accent    *color.Color
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{
		w:      w,
		gray:   color.New(color.FgHiBlack),
		accent: color.New(color.FgYellow),
	}
}

// Update implements core.ProgressCallback
func (p *progressPrinter) Update(phase string, current, total int, message string) {
	// Clear previous line if same phase
	if p.lastPhase == phase {
		fmt.Fprint(p.w, "\033[1A\033[K")
	}
	p.lastPhase = phase

	switch phase {
	case core.PhaseWalking:
		if total > 0 {
			fmt.Fprintf(p.w, "  %s   %s\n", p.gray.Sprint("Walking:"), message)
		} else {
			fmt.Fprintf(p.w, "  %s   %d entries\n", p.gray.Sprint("Walking:"), current)
		}
	case core.PhaseHashing:
		if total > 0 {
			fmt.Fprintf(p.w, "  %s   %s (%d/%d)\n", p.gray.Sprint("Hashing:"), p.accent.Sprint(progressBar(current, total, 30)), current, total)
		}
	case core.PhaseDone:
		fmt.Fprintf(p.w, "  %s\n", p.accent.Sprint("✓ "+message))
	}
}

func progressBar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := width * current / total
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
