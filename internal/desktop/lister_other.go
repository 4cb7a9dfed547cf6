//go:build windows || darwin

package desktop

import (
	"context"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

type unsupportedLister struct{}

// NewLister returns the platform's window lister. Window enumeration is only
// available on X11 desktops.
func NewLister(proc.Runner) Lister {
	return unsupportedLister{}
}

func (unsupportedLister) List(context.Context) ([]WindowInfo, error) {
	return nil, ErrUnsupported
}
