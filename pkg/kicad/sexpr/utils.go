package sexpr

import (
	"fmt"
	"strconv"
)

// S-expression navigation helpers

// Key returns the leading keyword of a list, e.g. "lib" for (lib ...).
func Key(s Sexp) string {
	list, ok := s.(*List)
	if !ok || list.Len() == 0 {
		return ""
	}
	if sym, ok := list.Get(0).(Symbol); ok {
		return string(sym)
	}
	return ""
}

// FindNode returns the first child list whose keyword is key.
// Example: FindNode(lib, "uri") finds (uri ${X}/a.pretty) in (lib ...)
func FindNode(s Sexp, key string) (*List, bool) {
	list, ok := s.(*List)
	if !ok {
		return nil, false
	}
	for _, item := range list.Items() {
		if Key(item) == key {
			return item.(*List), true
		}
	}
	return nil, false
}

// FindAllNodes finds all child nodes with the given key
func FindAllNodes(s Sexp, key string) []*List {
	var results []*List
	list, ok := s.(*List)
	if !ok {
		return results
	}
	for _, item := range list.Items() {
		if Key(item) == key {
			results = append(results, item.(*List))
		}
	}
	return results
}

// GetString extracts an atom value at the given index in a list.
// Index 0 is the key, 1 is first value, etc.
func GetString(s Sexp, index int) (string, error) {
	list, ok := s.(*List)
	if !ok {
		return "", fmt.Errorf("expected list, got leaf")
	}
	if index < 0 || index >= list.Len() {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, list.Len())
	}
	value, ok := AtomValue(list.Get(index))
	if !ok {
		return "", fmt.Errorf("expected atom at index %d, got %T", index, list.Get(index))
	}
	return value, nil
}

// GetInt extracts an int value at the given index
func GetInt(s Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// FieldString returns the first value of the child node named key, so
// FieldString((lib (name foo)), "name") is "foo". A node without a value,
// such as (options), yields "".
func FieldString(s Sexp, key string) (string, bool) {
	node, ok := FindNode(s, key)
	if !ok {
		return "", false
	}
	if node.Len() < 2 {
		return "", true
	}
	value, err := GetString(node, 1)
	if err != nil {
		return "", false
	}
	return value, true
}
