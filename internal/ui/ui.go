// Package ui shows import panels as Gio companion windows and provides the
// dispatcher that serializes watcher passes and panel submissions.
package ui

import (
	"os"

	"gioui.org/app"
)

// Main runs fn on its own goroutine and hands the main goroutine to Gio,
// which some platforms require for window handling. The process exits with
// fn's status once fn returns.
func Main(fn func() int) {
	go func() {
		os.Exit(fn())
	}()
	app.Main()
}
