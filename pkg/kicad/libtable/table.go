package libtable

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/pkg/kicad/sexpr"
)

// Kind is the keyword of a table's top-level list.
type Kind string

const (
	SymbolTable    Kind = "sym_lib_table"
	FootprintTable Kind = "fp_lib_table"
)

// File names KiCad uses for the global tables.
const (
	SymbolTableFile    = "sym-lib-table"
	FootprintTableFile = "fp-lib-table"
)

// ErrMalformed reports table text that is not one well-formed table list.
var ErrMalformed = errors.New("libtable: malformed library table")

// Table is the structural view of a library table file.
type Table struct {
	Kind    Kind
	Version int
	Entries []Entry
}

// Find returns the entry with the given name.
func (t *Table) Find(name string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Read parses a whole table.
func Read(r io.Reader) (*Table, error) {
	nodes, err := sexpr.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromNodes(nodes)
}

func fromNodes(nodes []sexpr.Sexp) (*Table, error) {
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: expected 1 top-level list, found %d", ErrMalformed, len(nodes))
	}
	root := nodes[0]

	t := &Table{Kind: Kind(sexpr.Key(root))}
	if t.Kind != SymbolTable && t.Kind != FootprintTable {
		return nil, fmt.Errorf("%w: unexpected root %q", ErrMalformed, t.Kind)
	}
	if v, ok := sexpr.FindNode(root, "version"); ok {
		if n, err := sexpr.GetInt(v, 1); err == nil {
			t.Version = n
		}
	}
	for _, lib := range sexpr.FindAllNodes(root, "lib") {
		var e Entry
		e.Name, _ = sexpr.FieldString(lib, "name")
		e.Type, _ = sexpr.FieldString(lib, "type")
		e.URI, _ = sexpr.FieldString(lib, "uri")
		e.Options, _ = sexpr.FieldString(lib, "options")
		e.Descr, _ = sexpr.FieldString(lib, "descr")
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}

// ParseString parses table text.
func ParseString(content string) (*Table, error) {
	return Read(strings.NewReader(content))
}

// Load reads and parses the table stored at path. A missing file is
// reported with the *fs.PathError from opening it.
func Load(path string) (*Table, error) {
	nodes, err := sexpr.ParseFile(path)
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}

	t, err := fromNodes(nodes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
