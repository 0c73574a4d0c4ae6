package zoom

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

const credentials = `zoom:
  daily:
    id: 123456789
    password: s3cret
  retro:
    id: "987654321"
`

type opener struct {
	runs   [][]string
	urls   []string
	runErr error
}

func (o *opener) desktop(goos string) *desktop.Desktop {
	return &desktop.Desktop{
		GOOS: goos,
		Run: func(_ context.Context, name string, args ...string) error {
			o.runs = append(o.runs, append([]string{name}, args...))
			return o.runErr
		},
		OpenURL: func(u string) error {
			o.urls = append(o.urls, u)
			return nil
		},
	}
}

func setup(t *testing.T) (*config.Store, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CredentialsFile), []byte(credentials), 0o600))
	store, err := config.Load(dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	ui.SetOutput(&buf, &buf)
	t.Cleanup(func() { ui.SetOutput(os.Stdout, os.Stderr) })
	return store, &buf
}

func TestMeetingURL(t *testing.T) {
	assert.Equal(t, "https://zoom.us/j/123?pwd=a+b", Meeting{ID: "123", Password: "a b"}.URL("https://zoom.us/j/"))
	assert.Equal(t, "https://zoom.us/j/123", Meeting{ID: "123"}.URL("https://zoom.us/j"))
}

func TestMeeting(t *testing.T) {
	testCases := []struct {
		desc        string
		cmd         MeetingCommand
		goos        string
		runErr      error
		expectError string
		verify      func(t *testing.T, o *opener, out string)
	}{
		{
			desc: "default meeting opens the zoom app on macOS",
			goos: "darwin",
			verify: func(t *testing.T, o *opener, out string) {
				assert.Equal(t, [][]string{{"open", "-a", "zoom.us", "https://zoom.us/j/123456789?pwd=s3cret"}}, o.runs)
				assert.Empty(t, o.urls)
				assert.Contains(t, out, "Joining daily meeting")
			},
		},
		{
			desc: "browser elsewhere",
			cmd:  MeetingCommand{Meeting: "retro"},
			goos: "linux",
			verify: func(t *testing.T, o *opener, out string) {
				assert.Empty(t, o.runs)
				assert.Equal(t, []string{"https://zoom.us/j/987654321"}, o.urls)
			},
		},
		{
			desc:   "browser when the app fails",
			goos:   "darwin",
			runErr: errors.New("app missing"),
			verify: func(t *testing.T, o *opener, out string) {
				assert.Len(t, o.urls, 1)
				assert.Contains(t, out, "Opened daily meeting in browser")
			},
		},
		{
			desc: "picker",
			cmd: MeetingCommand{Pick: true, Select: func(names []string) (int, error) {
				return 1, nil
			}},
			goos: "linux",
			verify: func(t *testing.T, o *opener, out string) {
				assert.Equal(t, []string{"https://zoom.us/j/987654321"}, o.urls)
			},
		},
		{
			desc:        "unknown meeting",
			cmd:         MeetingCommand{Meeting: "nope"},
			goos:        "linux",
			expectError: `meeting "nope" not found`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			store, out := setup(t)
			o := &opener{runErr: tc.runErr}
			cmd := tc.cmd
			cmd.Config = store
			cmd.Desktop = o.desktop(tc.goos)

			err := cmd.Run(t.Context())
			if tc.expectError != "" {
				assert.ErrorContains(t, err, tc.expectError)
				assert.ErrorIs(t, err, config.ErrMissingCredential)
				return
			}
			require.NoError(t, err)
			tc.verify(t, o, out.String())
		})
	}
}

func TestDaily(t *testing.T) {
	store, _ := setup(t)
	o := &opener{}

	cmd := DailyCommand{Config: store, Desktop: o.desktop("linux")}
	require.NoError(t, cmd.Run(t.Context()))

	assert.Equal(t, []string{"https://zoom.us/j/123456789?pwd=s3cret"}, o.urls)
}
