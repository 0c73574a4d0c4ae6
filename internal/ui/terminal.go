package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// GetTerminalWidth returns the current terminal width in columns.
// If the terminal width cannot be determined (non-TTY or error),
// returns a default of 80 columns.
func GetTerminalWidth() int {
	fd := int(os.Stdout.Fd())

	if !term.IsTerminal(fd) {
		return 80
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 80
	}

	return width
}

// IsInteractive reports whether stdin is attached to a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Rule returns a horizontal separator no wider than the terminal
func Rule(ch string) string {
	width := min(GetTerminalWidth(), 80)
	return RuleStyle.Render(strings.Repeat(ch, width))
}
