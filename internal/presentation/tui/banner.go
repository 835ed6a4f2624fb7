package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the aasedit ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _  __ _ ___  ___  __| (_) |_ ", "#38bdf8"},
		{"  / _` |/ _` / __|/ _ \\/ _` | | __|", "#22d3ee"},
		{" | (_| | (_| \\__ \\  __/ (_| | | |_ ", "#2dd4bf"},
		{"  \\__,_|\\__,_|___/\\___|\\__,_|_|\\__|", "#34d399"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
