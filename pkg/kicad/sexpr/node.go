// Package sexpr reads the S-expression files KiCad keeps next to its
// configuration (sym-lib-table, fp-lib-table) and in its design files.
package sexpr

import (
	"strconv"
	"strings"
)

// Sexp is a node: either an atom (Symbol or String) or a List.
type Sexp interface {
	IsLeaf() bool
	String() string
}

// Symbol is a bare atom such as a keyword, number or unquoted URI.
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) String() string { return string(s) }

// String is an atom that was written in double quotes.
type String string

func (s String) IsLeaf() bool   { return true }
func (s String) String() string { return strconv.Quote(string(s)) }

// List is a parenthesised sequence of nodes.
type List struct {
	items []Sexp
	line  int
}

// NewList builds a list from the given nodes.
func NewList(items ...Sexp) *List {
	return &List{items: items}
}

func (l *List) IsLeaf() bool { return false }

// Items returns the list elements, keyword included.
func (l *List) Items() []Sexp { return l.items }

// Len returns the number of elements in the list
func (l *List) Len() int { return len(l.items) }

// Line is the line of the opening parenthesis, 0 for constructed lists.
func (l *List) Line() int { return l.line }

// Get returns the element at the given index
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	return l.items[index]
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, item := range l.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(item.String())
	}
	b.WriteByte(')')
	return b.String()
}

// AtomValue returns the text of an atom regardless of quoting.
func AtomValue(s Sexp) (string, bool) {
	switch v := s.(type) {
	case Symbol:
		return string(v), true
	case String:
		return string(v), true
	default:
		return "", false
	}
}
