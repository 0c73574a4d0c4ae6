package desktop

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOS struct {
	commands [][]string
	runErr   error
	copied   []string
	opened   []string
}

func (f *fakeOS) desktop(goos string) *Desktop {
	return &Desktop{
		GOOS: goos,
		Run: func(_ context.Context, name string, args ...string) error {
			f.commands = append(f.commands, append([]string{name}, args...))
			return f.runErr
		},
		Copy: func(text string) error {
			f.copied = append(f.copied, text)
			return nil
		},
		OpenURL: func(url string) error {
			f.opened = append(f.opened, url)
			return nil
		},
	}
}

func TestOpenWith(t *testing.T) {
	tests := []struct {
		desc         string
		goos         string
		runErr       error
		wantFallback bool
		wantCommands int
	}{
		{desc: "MacApp", goos: "darwin", wantCommands: 1},
		{desc: "MacAppMissing", goos: "darwin", runErr: errors.New("Unable to find application"), wantFallback: true, wantCommands: 1},
		{desc: "Linux", goos: "linux", wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := &fakeOS{runErr: tt.runErr}
			d := f.desktop(tt.goos)

			fallback, err := d.OpenWith(context.Background(), "zoom.us", "https://zoom.us/j/1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFallback, fallback)
			assert.Len(t, f.commands, tt.wantCommands)
			if tt.wantCommands > 0 {
				assert.Equal(t, []string{"open", "-a", "zoom.us", "https://zoom.us/j/1"}, f.commands[0])
			}
			if tt.wantFallback {
				assert.Equal(t, []string{"https://zoom.us/j/1"}, f.opened)
			} else {
				assert.Empty(t, f.opened)
			}
		})
	}
}

func TestRunAppleScript(t *testing.T) {
	f := &fakeOS{}

	err := f.desktop("linux").RunAppleScript(context.Background(), "beep")
	assert.ErrorContains(t, err, "only available on macOS")
	assert.Empty(t, f.commands)

	require.NoError(t, f.desktop("darwin").RunAppleScript(context.Background(), "beep"))
	assert.Equal(t, [][]string{{"osascript", "-e", "beep"}}, f.commands)
}

func TestCopyToClipboard(t *testing.T) {
	f := &fakeOS{}
	require.NoError(t, f.desktop("linux").CopyToClipboard("hello"))
	assert.Equal(t, []string{"hello"}, f.copied)
}

func TestScripts(t *testing.T) {
	assert.Equal(t, `"say \"hi\" \\ bye"`, Quote(`say "hi" \ bye`))

	msg := SlackMessageScript("jdoe", `ship it "now"`)
	assert.Contains(t, msg, `keystroke "@jdoe"`)
	assert.Contains(t, msg, `keystroke "ship it \"now\""`)
	assert.True(t, strings.HasPrefix(msg, `tell application "Slack"`))

	ch := SlackChannelScript("data-platform")
	assert.Contains(t, ch, `keystroke "#data-platform"`)
}
