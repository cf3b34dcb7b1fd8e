package autoarg

import (
	"sort"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a registered name for
// the dispatcher to suggest it.
const maxSuggestDistance = 3

// Switch selects one of several registered callables by the first token and
// delegates the remaining tokens to that callable's parser. Entries may be
// ready *Parser values or bare callables, for which a parser is built on
// first dispatch and cached.
type Switch struct {
	entries map[string]any
	parsers map[string]*Parser
}

// NewSwitch builds a dispatcher over the named entries.
func NewSwitch(entries map[string]any) *Switch {
	return &Switch{entries: entries, parsers: make(map[string]*Parser, len(entries))}
}

// Call dispatches on the first token of args. An empty token list or an
// unknown name fails with a DispatchError listing the registered names.
func (s *Switch) Call(args any) (any, error) {
	argv, err := normalizeArgs(args)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, &DispatchError{Options: s.names()}
	}
	parser, err := s.parser(argv[0])
	if err != nil {
		return nil, err
	}
	return parser.Call(argv[1:])
}

func (s *Switch) parser(name string) (*Parser, error) {
	if p, ok := s.parsers[name]; ok {
		return p, nil
	}
	entry, ok := s.entries[name]
	if !ok {
		return nil, &DispatchError{Name: name, Options: s.names(), Suggestion: s.suggest(name)}
	}
	p, ok := entry.(*Parser)
	if !ok {
		var err error
		if p, err = New(entry); err != nil {
			return nil, err
		}
	}
	s.parsers[name] = p
	return p, nil
}

func (s *Switch) names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns the registered name closest to the unknown one, when close
// enough to look like a typo.
func (s *Switch) suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range s.names() {
		if d := levenshtein.Distance(name, candidate, nil); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
