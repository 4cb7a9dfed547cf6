package libtable

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// entryLexer tokenizes a single library table line.
var entryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Atom", Pattern: `[^\s()"]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// entryNode is a (lib ...) record: a list of (key value...) fields.
// Example: (lib (name foo)(type KiCad)(uri ${X}/foo.pretty)(options "")(descr ""))
type entryNode struct {
	Fields []*fieldNode `LParen "lib" @@* RParen`
}

// fieldNode is one (key value...) pair. Flags such as (disabled) carry no value.
type fieldNode struct {
	Key    string   `LParen @Atom`
	Values []string `( @String | @Atom )* RParen`
}

var entryParser = participle.MustBuild[entryNode](
	participle.Lexer(entryLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// ParseEntry parses one (lib ...) record, typically a single table line.
func ParseEntry(line string) (Entry, error) {
	node, err := entryParser.ParseString("", line)
	if err != nil {
		return Entry{}, fmt.Errorf("libtable: parse entry: %w", err)
	}

	var e Entry
	for _, f := range node.Fields {
		var value string
		if len(f.Values) > 0 {
			value = f.Values[0]
		}
		switch f.Key {
		case "name":
			e.Name = value
		case "type":
			e.Type = value
		case "uri":
			e.URI = value
		case "options":
			e.Options = value
		case "descr":
			e.Descr = value
		}
	}
	if e.Name == "" {
		return Entry{}, fmt.Errorf("libtable: entry has no name")
	}
	return e, nil
}
