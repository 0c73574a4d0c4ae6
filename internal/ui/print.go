package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	outMu   sync.Mutex
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
	verbose bool
)

// SetOutput redirects the printers. Pass nil to keep the current writer.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetVerbose enables Debug output
func SetVerbose(v bool) {
	outMu.Lock()
	defer outMu.Unlock()
	verbose = v
}

// writeLine serializes printers so lines from concurrent workers never interleave
func writeLine(w func() io.Writer, line string) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(w(), line)
}

func out() io.Writer  { return stdout }
func errw() io.Writer { return stderr }

// Success prints a success message with a checkmark icon
func Success(msg string) {
	writeLine(out, SuccessStyle.Render("✓ "+msg))
}

// Successf prints a formatted success message with a checkmark icon
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}

// Error prints an error message with an X icon
func Error(msg string) {
	writeLine(errw, ErrorStyle.Render("✗ "+msg))
}

// Errorf prints a formatted error message with an X icon
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Warning prints a warning message with a warning icon
func Warning(msg string) {
	writeLine(out, WarningStyle.Render("⚠ "+msg))
}

// Warningf prints a formatted warning message with a warning icon
func Warningf(format string, args ...any) {
	Warning(fmt.Sprintf(format, args...))
}

// Info prints an info message with an info icon
func Info(msg string) {
	writeLine(out, InfoStyle.Render("ℹ "+msg))
}

// Infof prints a formatted info message with an info icon
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Debugf prints a dimmed message to stderr when verbose output is enabled
func Debugf(format string, args ...any) {
	outMu.Lock()
	enabled := verbose
	outMu.Unlock()
	if !enabled {
		return
	}
	writeLine(errw, DimStyle.Render(fmt.Sprintf(format, args...)))
}

// Print prints a plain message (no styling)
func Print(msg string) {
	writeLine(out, msg)
}

// Printf prints a formatted plain message (no styling)
func Printf(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(stdout, format, args...)
}

// Header prints a header (bold, colored, no background)
func Header(header string) {
	writeLine(out, HeaderStyle.Render(header))
}

// Dim returns dimmed/muted text
func Dim(text string) string {
	return DimStyle.Render(text)
}

// Bold returns bold text
func Bold(text string) string {
	return BoldStyle.Render(text)
}

// Link renders a URL in the link style
func Link(url string) string {
	return LinkStyle.Render(url)
}
