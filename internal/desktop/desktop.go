// Package desktop drives local applications: AppleScript, the clipboard and
// the browser.
package desktop

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Runner executes a command and returns an error that includes its stderr
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Desktop is the set of OS integrations. Every hook is replaceable in tests.
type Desktop struct {
	GOOS    string
	Run     Runner
	Copy    func(text string) error
	OpenURL func(url string) error
}

// New returns a Desktop wired to the real OS
func New() *Desktop {
	return &Desktop{
		GOOS:    runtime.GOOS,
		Run:     ExecRunner,
		Copy:    clipboard.WriteAll,
		OpenURL: browser.OpenURL,
	}
}

// IsMac reports whether AppleScript and `open -a` are available
func (d *Desktop) IsMac() bool {
	return d.GOOS == "darwin"
}

// RunAppleScript executes a script with osascript
func (d *Desktop) RunAppleScript(ctx context.Context, script string) error {
	if !d.IsMac() {
		return fmt.Errorf("AppleScript is only available on macOS (running on %s)", d.GOOS)
	}
	return d.Run(ctx, "osascript", "-e", script)
}

// OpenWith opens url in the named macOS application, falling back to the
// default browser elsewhere or when the application cannot be launched.
// The returned bool reports whether the fallback was used.
func (d *Desktop) OpenWith(ctx context.Context, app, url string) (bool, error) {
	if d.IsMac() && app != "" {
		if err := d.Run(ctx, "open", "-a", app, url); err == nil {
			return false, nil
		}
	}
	if err := d.OpenURL(url); err != nil {
		return true, fmt.Errorf("failed to open %s: %w", url, err)
	}
	return true, nil
}

// CopyToClipboard writes text to the system clipboard
func (d *Desktop) CopyToClipboard(text string) error {
	if err := d.Copy(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
