package textsplit

import "strings"

// Indent prefixes every line of s, including the first, with prefix. A
// trailing newline does not receive a dangling prefix.
func Indent(s, prefix string) string {
	out := prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
	return strings.TrimSuffix(out, prefix)
}
