package textsplit

import "fmt"

// StructureError reports malformed bracket nesting inside a composite value,
// either a closing bracket with no matching opener or one that does not
// match the innermost open bracket.
type StructureError struct {
	Text string
	Msg  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed brackets in %q: %s", e.Text, e.Msg)
}

var closerFor = map[byte]byte{'[': ']', '{': '}', '(': ')', '<': '>'}
var openerFor = map[byte]byte{']': '[', '}': '{', ')': '(', '>': '<'}

type splitConfig struct {
	stripBrackets bool
	maxSplits     int // negative means unlimited
}

// Option configures Bracketed.
type Option func(*splitConfig)

// WithStripBrackets removes an outer bracket pair from a segment when the
// pair encloses the whole segment, e.g. "(a,b)" becomes "a,b" but "x(a,b)"
// is left alone.
func WithStripBrackets() Option {
	return func(c *splitConfig) { c.stripBrackets = true }
}

// WithMaxSplits caps the number of delimiter-triggered splits. Once the cap
// is reached, remaining delimiters are kept literal in the final segment.
func WithMaxSplits(n int) Option {
	return func(c *splitConfig) { c.maxSplits = n }
}

// Bracketed splits text on delim, ignoring delimiters nested inside any of
// the bracket pairs [], {}, () and <>. The result always holds at least one
// (possibly empty) segment. It is a pure function of its input and returns a
// StructureError when brackets are unbalanced or mismatched.
func Bracketed(text string, delim byte, opts ...Option) ([]string, error) {
	cfg := splitConfig{maxSplits: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	var segments []string
	var stack []byte
	start := 0
	splits := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if _, isOpener := closerFor[c]; isOpener {
			stack = append(stack, c)
			continue
		}
		if opener, isCloser := openerFor[c]; isCloser {
			if len(stack) == 0 {
				return nil, &StructureError{Text: text, Msg: fmt.Sprintf("closing %q without a matching opener", string(c))}
			}
			if top := stack[len(stack)-1]; top != opener {
				return nil, &StructureError{Text: text, Msg: fmt.Sprintf("closing %q does not match opening %q", string(c), string(top))}
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if c == delim && len(stack) == 0 && (cfg.maxSplits < 0 || splits < cfg.maxSplits) {
			segments = append(segments, finishSegment(text[start:i], cfg.stripBrackets))
			splits++
			start = i + 1
		}
	}
	if len(stack) != 0 {
		return nil, &StructureError{Text: text, Msg: fmt.Sprintf("%d bracket(s) left unclosed", len(stack))}
	}
	segments = append(segments, finishSegment(text[start:], cfg.stripBrackets))
	return segments, nil
}

// finishSegment strips the outer bracket pair from seg, but only when the
// pair wraps the entire segment.
func finishSegment(seg string, strip bool) string {
	if !strip || len(seg) < 2 {
		return seg
	}
	closer, ok := closerFor[seg[0]]
	if !ok || seg[len(seg)-1] != closer {
		return seg
	}
	depth := 0
	for i := 0; i < len(seg); i++ {
		if _, isOpener := closerFor[seg[i]]; isOpener {
			depth++
		} else if _, isCloser := openerFor[seg[i]]; isCloser {
			depth--
			// The opening bracket closed before the end, so the pair does
			// not wrap the whole segment.
			if depth == 0 && i != len(seg)-1 {
				return seg
			}
		}
	}
	return seg[1 : len(seg)-1]
}
