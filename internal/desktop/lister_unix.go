//go:build !windows && !darwin

package desktop

import (
	"context"
	"fmt"
	"strings"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

// WmctrlLister enumerates X11 top-level windows with wmctrl.
type WmctrlLister struct {
	Runner proc.Runner
}

// NewLister returns the platform's window lister.
func NewLister(runner proc.Runner) Lister {
	return &WmctrlLister{Runner: runner}
}

// List implements Lister.
func (l *WmctrlLister) List(ctx context.Context) ([]WindowInfo, error) {
	res, err := l.Runner.Run(ctx, "wmctrl", "-l")
	if err != nil {
		return nil, fmt.Errorf("desktop: list windows: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("desktop: wmctrl exited with status %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return ParseWmctrl(res.Stdout), nil
}
