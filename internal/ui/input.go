package ui

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	inputMu sync.Mutex
	input   = bufio.NewReader(os.Stdin)
)

// SetInput replaces the reader prompts read from
func SetInput(r io.Reader) {
	inputMu.Lock()
	defer inputMu.Unlock()
	input = bufio.NewReader(r)
}

func readLine() (string, bool) {
	inputMu.Lock()
	defer inputMu.Unlock()
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// Confirm asks a yes/no question. An empty answer (or closed input) selects def.
func Confirm(prompt string, def bool) bool {
	suffix := " [y/N]: "
	if def {
		suffix = " [Y/n]: "
	}
	Printf("%s%s", prompt, suffix)

	answer, ok := readLine()
	if !ok {
		Print("")
		return def
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// Prompt asks for free text, returning def when the answer is empty
func Prompt(prompt string, def string) string {
	if def != "" {
		Printf("%s [%s]: ", prompt, def)
	} else {
		Printf("%s: ", prompt)
	}

	answer, ok := readLine()
	if !ok || answer == "" {
		return def
	}
	return answer
}
