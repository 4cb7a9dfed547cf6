package libtable

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const symTable = `(sym_lib_table
  (version 7)
  (lib (name "Device")(type "KiCad")(uri "${KICAD8_SYMBOL_DIR}/Device.kicad_sym")(options "")(descr "Generic symbols"))
)
`

var easyedaSymbol = Entry{
	Name:  "easyeda2kicad",
	Type:  "KiCad",
	URI:   "${EASYEDA2KICAD}/easyeda2kicad.kicad_sym",
	Descr: "EasyEDA2KiCAD Symbol Library",
}

func TestEntryString(t *testing.T) {
	want := `(lib (name easyeda2kicad)(type KiCad)(uri ${EASYEDA2KICAD}/easyeda2kicad.kicad_sym)(options "")(descr "EasyEDA2KiCAD Symbol Library"))`
	if got := easyedaSymbol.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Entry
		wantErr bool
	}{
		{
			name: "bare atoms",
			line: easyedaSymbol.String(),
			want: easyedaSymbol,
		},
		{
			name: "quoted atoms with spaces between fields",
			line: `(lib (name "Device") (type "KiCad") (uri "${KICAD8_SYMBOL_DIR}/Device.kicad_sym") (options "") (descr "Generic symbols"))`,
			want: Entry{Name: "Device", Type: "KiCad", URI: "${KICAD8_SYMBOL_DIR}/Device.kicad_sym", Descr: "Generic symbols"},
		},
		{
			name: "flag without value",
			line: `(lib (name foo)(type KiCad)(uri /x/foo.pretty)(options "")(descr "")(disabled))`,
			want: Entry{Name: "foo", Type: "KiCad", URI: "/x/foo.pretty"},
		},
		{name: "not a lib record", line: `(version 7)`, wantErr: true},
		{name: "unbalanced", line: `(lib (name foo)`, wantErr: true},
		{name: "missing name", line: `(lib (type KiCad))`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEntry(%q) expected error, got %+v", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntry(%q) unexpected error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseEntry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	once, changed, err := Insert(symTable, easyedaSymbol)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !changed {
		t.Fatal("first Insert reported no change")
	}
	if !strings.HasSuffix(once, "  "+easyedaSymbol.String()+"\n)\n") {
		t.Errorf("entry not placed before closing delimiter:\n%s", once)
	}

	twice, changed, err := Insert(once, easyedaSymbol)
	if err != nil {
		t.Fatalf("second Insert: %v", err)
	}
	if changed || twice != once {
		t.Error("second Insert modified the table")
	}
	if n := strings.Count(twice, "(name easyeda2kicad)"); n != 1 {
		t.Errorf("entry appears %d times, want 1", n)
	}

	table, err := ParseString(twice)
	if err != nil {
		t.Fatalf("edited table does not parse: %v", err)
	}
	if table.Kind != SymbolTable || table.Version != 7 || len(table.Entries) != 2 {
		t.Errorf("table = %+v", table)
	}

	// An entry sharing its line with the table header is still found.
	oneLine := "(sym_lib_table (version 7) " + easyedaSymbol.String() + ")"
	same, changed, err := Insert(oneLine, easyedaSymbol)
	if err != nil {
		t.Fatalf("Insert on single-line table: %v", err)
	}
	if changed || same != oneLine {
		t.Errorf("single-line table modified:\n%s", same)
	}
}

func TestInsertClosingOnSameLine(t *testing.T) {
	content := "(fp_lib_table\n  (lib (name A)(type KiCad)(uri /a.pretty)(options \"\")(descr \"\")))"
	updated, changed, err := Insert(content, Entry{Name: "easyeda2kicad", Type: "KiCad", URI: "${EASYEDA2KICAD}/easyeda2kicad.pretty"})
	if err != nil || !changed {
		t.Fatalf("Insert = %v, %v", changed, err)
	}
	table, err := ParseString(updated)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, updated)
	}
	if _, ok := table.Find("A"); !ok {
		t.Error("existing entry lost")
	}
	if _, ok := table.Find("easyeda2kicad"); !ok {
		t.Error("new entry missing")
	}
}

func TestInsertRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"(sym_lib_table\n  (version 7)\n",
		"(sym_lib_table (lib (name x)) (extra\n)",
		"(something_else\n)",
	}
	for _, content := range tests {
		got, changed, err := Insert(content, easyedaSymbol)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Insert(%q) err = %v, want ErrMalformed", content, err)
		}
		if changed || got != content {
			t.Errorf("Insert(%q) modified malformed content", content)
		}
	}
}

func TestHasEntryMatchesByName(t *testing.T) {
	content := symTable + "  (lib (name easyeda2kicad)(type KiCad)(uri /other/path.kicad_sym)(options \"\")(descr \"x\"))\n"
	if !HasEntry(content, "easyeda2kicad") {
		t.Error("entry with a different uri was not recognised")
	}
	if HasEntry(symTable, "easyeda2kicad") {
		t.Error("false positive on table without the entry")
	}
	if !HasEntry("  (lib (name easyeda2kicad)(broken\n", "easyeda2kicad") {
		t.Error("damaged record should count as present")
	}
}

func TestRemoveLines(t *testing.T) {
	withEntry, _, err := Insert(symTable, easyedaSymbol)
	if err != nil {
		t.Fatal(err)
	}
	kept, removed := RemoveLines(withEntry, "easyeda2kicad.kicad_sym")
	if len(removed) != 1 {
		t.Fatalf("removed %d lines, want 1", len(removed))
	}
	if Describe(removed[0]) != "easyeda2kicad" {
		t.Errorf("Describe() = %q", Describe(removed[0]))
	}
	if strings.Contains(kept, "easyeda2kicad") {
		t.Errorf("marker still present:\n%s", kept)
	}
	if _, err := ParseString(kept); err != nil {
		t.Errorf("table no longer parses: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), SymbolTableFile)
	if err := os.WriteFile(path, []byte(symTable), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e, ok := table.Find("Device")
	if !ok || e.Descr != "Generic symbols" {
		t.Errorf("Find(Device) = %+v, %v", e, ok)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing")); !os.IsNotExist(err) {
		t.Errorf("Load(missing) err = %v, want not-exist", err)
	}

	broken := filepath.Join(t.TempDir(), FootprintTableFile)
	if err := os.WriteFile(broken, []byte("(fp_lib_table\n  (version 7)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(broken)
	if !errors.Is(err, ErrMalformed) || !strings.Contains(err.Error(), broken) {
		t.Errorf("Load(broken) err = %v, want ErrMalformed naming the file", err)
	}
}
