package flagspace

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/braincorp/auto-argparser/convert"
	"github.com/braincorp/auto-argparser/tokens"
)

// Def is one flat flag definition: a long name, an optional short alias, and
// the converter that turns the flag's token into a typed value. Bool marks a
// zero-argument flag whose bare presence means true.
type Def struct {
	Name    string
	Short   string
	Help    string
	Default string // rendered default for the usage text, empty when required
	Bool    bool
	Convert convert.Func
}

// Space wraps the standard library flag primitive with converter-backed
// definitions, captured diagnostics, and a parse mode that sets unknown
// flags aside instead of failing on them.
type Space struct {
	fs     *flag.FlagSet
	desc   string
	buf    bytes.Buffer
	defs   []Def
	known  map[string]bool
	values map[string]any
}

// New creates an empty flag namespace for the named callable. description is
// printed at the top of the usage text.
func New(name, description string) *Space {
	s := &Space{
		desc:   description,
		known:  make(map[string]bool),
		values: make(map[string]any),
	}
	s.fs = flag.NewFlagSet(name, flag.ContinueOnError)
	s.fs.SetOutput(&s.buf)
	s.fs.Usage = s.writeUsage
	return s
}

// Define registers d and its short alias on the underlying flag set.
func (s *Space) Define(d Def) {
	handler := func(raw string) error {
		v, err := d.Convert(raw)
		if err != nil {
			return err
		}
		s.values[d.Name] = v
		return nil
	}
	register := func(alias string) {
		if d.Bool {
			s.fs.BoolFunc(alias, d.Help, handler)
		} else {
			s.fs.Func(alias, d.Help, handler)
		}
		s.known[alias] = true
	}
	register(d.Name)
	if d.Short != "" {
		register(d.Short)
	}
	s.defs = append(s.defs, d)
}

// Parse feeds argv to the flag primitive. With allowUnknown, key tokens that
// do not name a defined flag are set aside together with their values and
// returned as remaining rather than failing the parse; trailing bare tokens
// always end up in remaining. On --help/-h the primitive's flag.ErrHelp is
// returned after the usage text lands in Diagnostics.
func (s *Space) Parse(argv []string, allowUnknown bool) (remaining []string, err error) {
	input := argv
	if allowUnknown {
		input, remaining = s.splitUnknown(argv)
	}
	if err := s.fs.Parse(input); err != nil {
		return remaining, err
	}
	return append(remaining, s.fs.Args()...), nil
}

// Value returns the converted value for name and whether the flag was seen.
func (s *Space) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Diagnostics returns everything the flag primitive wrote: error text
// followed by usage, or just the usage text after a help request.
func (s *Space) Diagnostics() string { return s.buf.String() }

// splitUnknown walks argv separating tokens for undefined flags, keeping
// --help/-h with the known tokens so the primitive still handles them.
func (s *Space) splitUnknown(argv []string) (known, unknown []string) {
	pendingValue := false
	for _, tok := range argv {
		switch {
		case tokens.IsKey(tok):
			name := keyName(tok)
			if s.known[name] || name == "help" || name == "h" {
				known = append(known, tok)
				pendingValue = false
			} else {
				unknown = append(unknown, tok)
				pendingValue = !strings.Contains(tok, "=")
			}
		case pendingValue:
			unknown = append(unknown, tok)
			pendingValue = false
		default:
			known = append(known, tok)
		}
	}
	return known, unknown
}

func keyName(tok string) string {
	name := strings.TrimLeft(tok, "-")
	name, _, _ = strings.Cut(name, "=")
	return name
}

func (s *Space) writeUsage() {
	if s.desc != "" {
		fmt.Fprintf(&s.buf, "%s\n\n", s.desc)
	}
	fmt.Fprintf(&s.buf, "Usage of %s:\n", s.fs.Name())
	for _, d := range s.defs {
		names := "--" + d.Name
		if d.Short != "" {
			names = "-" + d.Short + ", " + names
		}
		if d.Bool {
			fmt.Fprintf(&s.buf, "  %s\n", names)
		} else {
			fmt.Fprintf(&s.buf, "  %s value\n", names)
		}
		detail := d.Help
		if d.Default != "" {
			if detail != "" {
				detail += " "
			}
			detail += "(default: " + d.Default + ")"
		}
		if detail != "" {
			fmt.Fprintf(&s.buf, "    \t%s\n", detail)
		}
	}
}
