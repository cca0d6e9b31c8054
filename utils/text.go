package utils

import "strings"

// CollapseWhitespace flattens text to a single line: every run of
// whitespace, newlines included, becomes one space, and leading/trailing
// whitespace is dropped.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
