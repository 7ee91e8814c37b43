package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the outlet ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Teal to blue, one shade per line
	lines := []struct{ text, color string }{
		{"              _   _      _   ", "#2dd4bf"},
		{"   ___  _   _| |_| | ___| |_ ", "#22d3ee"},
		{"  / _ \\| | | | __| |/ _ \\ __|", "#38bdf8"},
		{" | (_) | |_| | |_| |  __/ |_ ", "#60a5fa"},
		{"  \\___/ \\__,_|\\__|_|\\___|\\__|", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}

// Status formats a pass/fail marker followed by msg.
func Status(ok bool, msg string) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String("✔ ").Foreground(p.Color("#22c55e")).String() + msg
	}
	return termenv.String("✘ ").Foreground(p.Color("#ef4444")).Bold().String() + msg
}
