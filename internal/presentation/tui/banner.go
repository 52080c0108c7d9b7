package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`              _                        _        `,
	`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `,
	`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`,
	` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`,
	`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`,
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w, out.String("  stepwise NFA, DFA and Turing machine simulator  v"+version).Faint())
	fmt.Fprintln(w)
}
