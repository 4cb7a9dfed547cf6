package desktop

import (
	"regexp"
	"strconv"
	"strings"
)

// WindowInfo is one top-level window as reported by the window manager.
type WindowInfo struct {
	ID      string
	Desktop int // -1 for windows shown on every desktop
	Host    string
	Title   string
}

// wmctrlLine matches `wmctrl -l` output: id, desktop, client host, title.
var wmctrlLine = regexp.MustCompile(`^(0x[0-9a-fA-F]+)\s+(-?\d+)\s+(\S+)\s?(.*)$`)

// ParseWmctrl parses the output of `wmctrl -l`. Lines that do not look like
// window records are skipped.
func ParseWmctrl(out string) []WindowInfo {
	var windows []WindowInfo
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		m := wmctrlLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		desktop, _ := strconv.Atoi(m[2])
		windows = append(windows, WindowInfo{
			ID:      strings.ToLower(m[1]),
			Desktop: desktop,
			Host:    m[3],
			Title:   m[4],
		})
	}
	return windows
}
