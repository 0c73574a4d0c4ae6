package desktop

import (
	"fmt"
	"strings"
)

// Quote renders s as an AppleScript string literal
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// SlackMessageScript opens a DM with user through the quick switcher and sends text
func SlackMessageScript(user, text string) string {
	return fmt.Sprintf(`tell application "Slack"
    activate
    tell application "System Events"
        keystroke "k" using command down
        delay 0.5
        keystroke %s
        delay 0.5
        key code 36
        delay 0.5
        keystroke %s
        delay 0.2
        keystroke return
    end tell
end tell`, Quote("@"+user), Quote(text))
}

// SlackChannelScript jumps to a channel through the quick switcher
func SlackChannelScript(channel string) string {
	return fmt.Sprintf(`tell application "Slack"
    activate
    tell application "System Events"
        keystroke "k" using command down
        delay 0.1
        keystroke %s
        delay 0.1
        key code 36
    end tell
end tell`, Quote("#"+channel))
}
