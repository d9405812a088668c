package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the startup banner for the interactive runner.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	title := termenv.String("surveyflow").Foreground(p.Color("#818cf8")).Bold()
	ver := termenv.String("v" + version).Foreground(p.Color("#a78bfa"))
	sub := termenv.String("conversational survey engine").Faint()

	fmt.Println()
	fmt.Printf("  %s %s\n", title, ver)
	fmt.Printf("  %s\n", sub)
	fmt.Println()
}

// Prompt returns a styled input prompt marker.
func Prompt() string {
	p := termenv.ColorProfile()
	return termenv.String("> ").Foreground(p.Color("#f472b6")).String()
}
