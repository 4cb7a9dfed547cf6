package panel

import (
	"errors"
	"fmt"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/converter"
)

// ErrEmptyPartID is returned for blank panel input.
var ErrEmptyPartID = errors.New("panel: empty part number")

// Kind classifies the outcome of a submission.
type Kind int

const (
	KindSuccess Kind = iota
	KindInvalidInput
	KindResolve
	KindProcess
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInvalidInput:
		return "invalid_input"
	case KindResolve:
		return "not_found"
	case KindProcess:
		return "converter_failed"
	default:
		return "unexpected"
	}
}

// KindOf maps an Import error onto its kind.
func KindOf(err error) Kind {
	var exitErr *converter.ExitError
	switch {
	case err == nil:
		return KindSuccess
	case errors.Is(err, ErrEmptyPartID):
		return KindInvalidInput
	case errors.Is(err, converter.ErrNotFound):
		return KindResolve
	case errors.As(err, &exitErr):
		return KindProcess
	default:
		return KindUnexpected
	}
}

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notification is what the user sees after a submission.
type Notification struct {
	Kind    Kind
	Level   Level
	Title   string
	Message string
}

// Present turns the outcome of importing partID into user-facing text. It is
// the only place errors become messages.
func Present(partID string, err error) Notification {
	kind := KindOf(err)
	n := Notification{Kind: kind, Level: LevelError, Title: "Error"}

	switch kind {
	case KindSuccess:
		n.Level = LevelInfo
		n.Title = "Success"
		n.Message = fmt.Sprintf("Part %s imported successfully!", partID)
	case KindInvalidInput:
		n.Message = "Please enter a valid LCSC part number."
	case KindResolve:
		n.Message = "Error: 'easyeda2kicad' command not found.\n" +
			"Install it with 'pipx install easyeda2kicad' and make sure pipx's bin directory is on PATH."
	case KindProcess:
		var exitErr *converter.ExitError
		errors.As(err, &exitErr)
		n.Title = "Import Error"
		n.Message = "Failed to import part:\n" + exitErr.Stderr
	default:
		n.Message = fmt.Sprintf("Unexpected error: %v", err)
	}
	return n
}
