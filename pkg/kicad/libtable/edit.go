package libtable

import (
	"fmt"
	"strings"
)

// HasEntry reports whether any line of the table text holds a (lib ...)
// record named name. Lines that mention (name NAME) but fail to parse count
// as present so a damaged record is never duplicated.
func HasEntry(content, name string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "(lib") {
			continue
		}
		e, err := ParseEntry(trimmed)
		if err == nil {
			if e.Name == name {
				return true
			}
			continue
		}
		if strings.Contains(trimmed, "(name "+name+")") || strings.Contains(trimmed, `(name "`+name+`")`) {
			return true
		}
	}
	return false
}

// Insert adds e as a new line just before the table's closing delimiter.
// It returns the content unchanged and false when an entry with the same name
// is already present. The edited text must still parse as one table.
func Insert(content string, e Entry) (string, bool, error) {
	if present(content, e.Name) {
		return content, false, nil
	}

	trimmed := strings.TrimRight(content, " \t\r\n")
	if !strings.HasSuffix(trimmed, ")") {
		return content, false, fmt.Errorf("%w: no closing delimiter", ErrMalformed)
	}
	body := strings.TrimRight(strings.TrimSuffix(trimmed, ")"), " \t\r\n")
	updated := body + "\n  " + e.String() + "\n)\n"

	t, err := ParseString(updated)
	if err != nil {
		return content, false, err
	}
	if _, ok := t.Find(e.Name); !ok {
		return content, false, fmt.Errorf("%w: inserted entry %q not found after edit", ErrMalformed, e.Name)
	}
	return updated, true, nil
}

// present looks the name up structurally and falls back to the line scan
// only when content is not a well-formed table.
func present(content, name string) bool {
	if t, err := ParseString(content); err == nil {
		_, ok := t.Find(name)
		return ok
	}
	return HasEntry(content, name)
}

// RemoveLines drops every line containing marker and returns the kept text
// together with the removed lines.
func RemoveLines(content, marker string) (string, []string) {
	var (
		kept    strings.Builder
		removed []string
	)
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		if strings.Contains(line, marker) {
			removed = append(removed, strings.TrimRight(line, "\r\n"))
			continue
		}
		kept.WriteString(line)
	}
	return kept.String(), removed
}

// Describe names a raw table line for reports: the entry name when the line
// parses, the trimmed line otherwise.
func Describe(line string) string {
	if e, err := ParseEntry(strings.TrimSpace(line)); err == nil {
		return e.Name
	}
	return strings.TrimSpace(line)
}
