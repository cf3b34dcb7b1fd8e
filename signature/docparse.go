package signature

import (
	"regexp"
	"strings"
)

var paramPattern = regexp.MustCompile(`^ *:param ([a-zA-Z0-9_]*) *(.*?): *(.*)`)

// ParseDoc extracts the ":param name: text" entries from a documentation
// block, mapping each parameter name to its help text. Lines that do not
// match the pattern are ignored.
func ParseDoc(doc string) map[string]string {
	_, docs := parseDocOrdered(doc)
	return docs
}

// parseDocOrdered also reports the parameter names in the order their lines
// appear, which names func-mode parameters when no explicit list is given.
func parseDocOrdered(doc string) ([]string, map[string]string) {
	docs := make(map[string]string)
	var order []string
	for _, line := range strings.Split(doc, "\n") {
		m := paramPattern.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		if _, seen := docs[m[1]]; !seen {
			order = append(order, m[1])
		}
		docs[m[1]] = m[3]
	}
	return order, docs
}
