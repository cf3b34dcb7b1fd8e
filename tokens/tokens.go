package tokens

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/shlex"
)

// IsKey reports whether tok names an argument (--name, -n, --parent.child)
// rather than carrying a bare value. Negative numbers and dotted or
// comma-separated numerics are values, not keys.
func IsKey(tok string) bool {
	return strings.HasPrefix(tok, "-") && strings.TrimLeft(tok, "-.,0123456789") != ""
}

// Split tokenizes a single shell-style command line, honoring quoting and
// escaping.
func Split(line string) ([]string, error) {
	return shlex.Split(line)
}

// Promote rewrites leading bare tokens as --name=value pairs, binding them
// positionally to names in declaration order. Promotion stops at the first
// key token or when names run out; everything after passes through
// unmodified, so positionals may precede named flags but not follow them.
func Promote(argv []string, names []string) []string {
	out := slices.Clone(argv)
	for i, tok := range out {
		if i >= len(names) || IsKey(tok) {
			break
		}
		out[i] = fmt.Sprintf("--%s=%s", names[i], tok)
	}
	return out
}

// Route separates the tokens addressed to the named sub-argument from the
// rest. A key token prefixed --name. (or -short.) is stripped of the prefix
// and routed to sub; when the following token is not itself a key token it
// is that sub-argument's value and rides along. Relative order is preserved
// within both outputs.
func Route(argv []string, name, short string) (sub, rest []string) {
	fullPrefix := "--" + name + "."
	shortPrefix := ""
	if short != "" {
		shortPrefix = "-" + short + "."
	}
	lastWasSub := false
	for _, tok := range argv {
		switch {
		case IsKey(tok):
			switch {
			case strings.HasPrefix(tok, fullPrefix):
				sub = append(sub, "--"+tok[len(fullPrefix):])
				lastWasSub = true
			case shortPrefix != "" && strings.HasPrefix(tok, shortPrefix):
				sub = append(sub, "--"+tok[len(shortPrefix):])
				lastWasSub = true
			default:
				rest = append(rest, tok)
				lastWasSub = false
			}
		case lastWasSub:
			sub = append(sub, tok)
			lastWasSub = false
		default:
			rest = append(rest, tok)
		}
	}
	return sub, rest
}
