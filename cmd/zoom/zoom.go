package zoom

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hvanthou/hv/internal/config"
	"github.com/hvanthou/hv/internal/desktop"
	"github.com/hvanthou/hv/internal/ui"
)

// zoomApp is the macOS application meetings are opened in
const zoomApp = "zoom.us"

// Meeting is a zoom.<name> entry of credentials.yaml
type Meeting struct {
	ID       string `yaml:"id"`
	Password string `yaml:"password"`
}

// URL returns the join link under base
func (m Meeting) URL(base string) string {
	u := strings.TrimRight(base, "/") + "/" + url.PathEscape(m.ID)
	if m.Password != "" {
		u += "?pwd=" + url.QueryEscape(m.Password)
	}
	return u
}

// Command is the parent command for the Zoom subcommands
type Command struct {
	Config *config.Store
}

// Register registers the zoom command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Zoom meeting operations",
	}

	(&MeetingCommand{Config: c.Config}).Register(cmd)
	(&DailyCommand{Config: c.Config}).Register(cmd)

	parent.AddCommand(cmd)
}

// join opens the named meeting in the Zoom app, or the browser elsewhere
func join(ctx context.Context, store *config.Store, d *desktop.Desktop, name string) error {
	settings, err := store.Zoom()
	if err != nil {
		return err
	}

	var meeting Meeting
	if err := store.Credentials().Decode("zoom", name, &meeting); err != nil {
		return fmt.Errorf("meeting %q not found in credentials: %w", name, err)
	}
	if meeting.ID == "" {
		return config.Errorf("zoom."+name, "meeting has no id")
	}

	link := meeting.URL(settings.MeetingBaseURL)
	ui.Debugf("Opening %s", link)

	fallback, err := d.OpenWith(ctx, zoomApp, link)
	if err != nil {
		return err
	}
	if fallback {
		ui.Successf("Opened %s meeting in browser", name)
	} else {
		ui.Successf("Joining %s meeting", name)
	}
	return nil
}
