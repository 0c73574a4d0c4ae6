package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"
)

// ErrNotInteractive is returned by Select when stdin is not a terminal
var ErrNotInteractive = errors.New("selection requires an interactive terminal")

func init() {
	// Force lipgloss to initialize and detect terminal before fuzzy finder starts
	// This prevents ANSI escape sequences from leaking into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// Select presents a fuzzy finder over items.
// Returns the selected index, or -1 if the user cancelled.
func Select[T any](items []T, label func(T) string, preview func(T) string) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}
	if !IsInteractive() {
		return -1, ErrNotInteractive
	}

	// Flush stdout/stderr before starting fuzzy finder to clear any ANSI sequences
	os.Stdout.Sync()
	os.Stderr.Sync()

	opts := []fuzzyfinder.Option{}
	if preview != nil {
		opts = append(opts, fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return preview(items[i])
		}))
	}

	idx, err := fuzzyfinder.Find(
		items,
		func(i int) string {
			return label(items[i])
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, nil
		}
		return -1, err
	}

	return idx, nil
}
