// Package libtable models KiCad library tables (sym-lib-table and
// fp-lib-table) and edits them the way KiCad writes them: one (lib ...)
// record per line inside a single top-level list.
package libtable

import (
	"strconv"
	"strings"
)

// Entry is one (lib ...) record.
type Entry struct {
	Name    string
	Type    string
	URI     string
	Options string
	Descr   string
}

// String renders the entry on a single line in KiCad's compact form:
// (lib (name NAME)(type TYPE)(uri URI)(options OPTS)(descr DESCR))
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString("(lib ")
	writeField(&b, "name", e.Name)
	writeField(&b, "type", e.Type)
	writeField(&b, "uri", e.URI)
	writeField(&b, "options", e.Options)
	writeField(&b, "descr", e.Descr)
	b.WriteString(")")
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteByte('(')
	b.WriteString(key)
	b.WriteByte(' ')
	b.WriteString(atom(value))
	b.WriteByte(')')
}

// atom quotes a value only when it cannot be written bare.
func atom(value string) string {
	if value == "" || strings.ContainsAny(value, " \t\r\n()\"\\") {
		return strconv.Quote(value)
	}
	return value
}
