package autoarg

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/braincorp/auto-argparser/convert"
	"github.com/braincorp/auto-argparser/internal/flagspace"
	"github.com/braincorp/auto-argparser/signature"
	"github.com/braincorp/auto-argparser/textsplit"
	"github.com/braincorp/auto-argparser/tokens"
	"github.com/braincorp/auto-argparser/typespec"
)

// ParsedCall is the outcome of parsing one token list: the keyword arguments
// destined for the callable and any tokens left unconsumed, available for
// downstream composition.
type ParsedCall struct {
	Kwargs    map[string]any
	Remaining []string
}

// ParseCall parses args — a single shell-style string or an already-split
// []string — into keyword arguments without invoking the callable. With
// allowRemaining, tokens the callable does not consume are returned in
// Remaining and logged as a warning; otherwise they fail the parse. A
// --help/-h token writes usage to the configured output and returns
// flag.ErrHelp.
func (p *Parser) ParseCall(args any, allowRemaining bool) (*ParsedCall, error) {
	argv, err := normalizeArgs(args)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Parsing command-line call.", "callable", p.sig.Name, "args", argv)

	argv = tokens.Promote(argv, p.sig.Names())

	// Route nested records into their own parsers before the flat namespace
	// ever sees their tokens.
	subResults := map[string]any{}
	direct := argv
	for i := range p.sig.Args {
		arg := &p.sig.Args[i]
		if !isRecordArg(arg) {
			continue
		}
		var sub []string
		sub, direct = tokens.Route(direct, arg.Name, arg.Short)
		child, err := p.child(arg)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("Routing sub-namespace.", "callable", p.sig.Name, "arg", arg.Name, "tokens", sub)
		v, err := child.Call(sub)
		if err != nil {
			return nil, fmt.Errorf("in nested argument %q: %w", arg.Name, err)
		}
		subResults[arg.Name] = v
	}

	space := flagspace.New(p.sig.Name, p.sig.Doc)
	for i := range p.sig.Args {
		arg := &p.sig.Args[i]
		if isRecordArg(arg) {
			continue
		}
		space.Define(p.flagDef(arg, argv))
	}

	remaining, perr := space.Parse(direct, allowRemaining)
	if perr != nil {
		if errors.Is(perr, flag.ErrHelp) {
			io.WriteString(p.output, space.Diagnostics())
			return nil, perr
		}
		if p.raiseDeep {
			return nil, perr
		}
		detail := textsplit.Indent(strings.TrimRight(space.Diagnostics(), "\n"), ".   ")
		return nil, &convert.ConversionError{
			Detail: fmt.Sprintf("error when feeding args %q to %s(...):\n%s\n.   Use WithRaiseDeep() to identify the source", strings.Join(argv, " "), p.sig.Name, detail),
			Err:    perr,
		}
	}

	kwargs := make(map[string]any, len(p.sig.Args))
	var missing []string
	for i := range p.sig.Args {
		arg := &p.sig.Args[i]
		if isRecordArg(arg) {
			continue
		}
		if v, ok := space.Value(arg.Name); ok {
			kwargs[arg.Name] = v
			continue
		}
		if signature.IsNoValue(arg.Default) {
			missing = append(missing, arg.Name)
			continue
		}
		kwargs[arg.Name] = arg.Default
	}
	if len(missing) > 0 {
		return nil, &convert.ConversionError{
			Detail: fmt.Sprintf("could not get a value for argument(s) %s of %s from %q; if a bare flag was meant, declare a bool type or default so it is not mistaken for a value-taking flag",
				strings.Join(missing, ", "), p.sig.Name, strings.Join(argv, " ")),
		}
	}
	// The no-value sentinel must never reach the callable.
	for k, v := range kwargs {
		if signature.IsNoValue(v) {
			delete(kwargs, k)
		}
	}
	for name, v := range subResults {
		kwargs[name] = v
	}

	if len(remaining) > 0 {
		if !allowRemaining {
			return nil, &convert.ConversionError{
				Detail: fmt.Sprintf("unrecognized arguments %q for %s", strings.Join(remaining, " "), p.sig.Name),
			}
		}
		p.logger.Warn("Arguments were not consumed.", "callable", p.sig.Name, "remaining", remaining)
	}
	return &ParsedCall{Kwargs: kwargs, Remaining: remaining}, nil
}

// flagDef builds the flat flag definition for one descriptor. When the
// resolved or guessed type is boolean and the flag appears bare in the input
// (final token, or followed by another flag), it registers as a zero-argument
// present-as-true flag instead of a value-consuming one.
func (p *Parser) flagDef(arg *signature.Arg, argv []string) flagspace.Def {
	t := arg.Type
	if t == nil && !signature.IsNoValue(arg.Default) && arg.Default != nil {
		if guessed, err := typespec.FromGo(reflect.TypeOf(arg.Default)); err == nil {
			t = guessed
		}
	}
	conv := arg.Converter
	if conv == nil {
		conv = convert.Resolve(t)
	}
	def := flagspace.Def{
		Name:    arg.Name,
		Short:   arg.Short,
		Help:    arg.Doc,
		Convert: conv,
	}
	if !signature.IsNoValue(arg.Default) {
		def.Default = fmt.Sprintf("%v", arg.Default)
	}
	if t != nil && t.Kind() == typespec.KindBool && appearsBare(argv, arg.Name, arg.Short) {
		def.Bool = true
	}
	return def
}

// appearsBare reports whether the named flag occurs in argv with no value
// attached: no "=" form, and either the final token or followed by another
// flag token.
func appearsBare(argv []string, name, short string) bool {
	for i, tok := range argv {
		if strings.Contains(tok, "=") || !strings.HasPrefix(tok, "-") {
			continue
		}
		trimmed := strings.TrimLeft(tok, "-")
		if trimmed != name && (short == "" || trimmed != short) {
			continue
		}
		if i == len(argv)-1 || strings.HasPrefix(argv[i+1], "-") {
			return true
		}
	}
	return false
}

func isRecordArg(arg *signature.Arg) bool {
	return arg.Type != nil && arg.Type.Kind() == typespec.KindRecord
}

func normalizeArgs(args any) ([]string, error) {
	switch v := args.(type) {
	case nil:
		return nil, nil
	case string:
		return tokens.Split(v)
	case []string:
		return append([]string(nil), v...), nil
	default:
		return nil, fmt.Errorf("args must be a string or a []string, got %T", args)
	}
}
