package watcher

import "strings"

// Class is the result of classifying a window title.
type Class int

const (
	ClassOther Class = iota
	ClassPCBEditor
	ClassSchematicEditor
)

func (c Class) String() string {
	switch c {
	case ClassPCBEditor:
		return "pcb-editor"
	case ClassSchematicEditor:
		return "schematic-editor"
	default:
		return "other"
	}
}

// pcbMarker excludes the board editor even when its title also names a
// schematic (e.g. a project called "schematic-tests").
const pcbMarker = "PCB Editor"

var schematicMarkers = []string{"Schematic Editor", "Eeschema"}

// Classify applies the title rules in order; the first match wins.
func Classify(title string) Class {
	if strings.Contains(title, pcbMarker) {
		return ClassPCBEditor
	}
	for _, marker := range schematicMarkers {
		if strings.Contains(title, marker) {
			return ClassSchematicEditor
		}
	}
	if strings.Contains(strings.ToLower(title), "schematic") {
		return ClassSchematicEditor
	}
	return ClassOther
}
