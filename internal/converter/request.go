// Package converter locates the external easyeda2kicad tool and runs it to
// import a part into the companion's library directory.
package converter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ExecutableName is the converter's command name.
const ExecutableName = "easyeda2kicad"

// LibraryName is the base name the converter gives the symbol library,
// footprint folder and 3D model folder inside the library directory.
const LibraryName = "easyeda2kicad"

// Request is a single conversion run.
type Request struct {
	ID         string
	PartID     string
	Executable string
	OutputDir  string
}

// NewRequest builds a request writing into libraryDir.
func NewRequest(partID, executable, libraryDir string) Request {
	return Request{
		ID:         uuid.NewString(),
		PartID:     partID,
		Executable: executable,
		OutputDir:  OutputPath(libraryDir),
	}
}

// OutputPath is the --output value for a library directory: the converter
// appends .kicad_sym, .pretty and .3dshapes to it.
func OutputPath(libraryDir string) string {
	return filepath.Join(libraryDir, LibraryName)
}

// Args are the converter flags for a full, overwriting import.
func (r Request) Args() []string {
	return []string{"--overwrite", "--full", "--lcsc_id=" + r.PartID, "--output", r.OutputDir}
}

func (r Request) String() string {
	return r.Executable + " " + strings.Join(r.Args(), " ")
}

// ExitError reports a converter run that exited non-zero.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("converter: exited with status %d", e.Code)
	}
	return fmt.Sprintf("converter: exited with status %d: %s", e.Code, e.Stderr)
}
