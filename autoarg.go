package autoarg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"time"

	"github.com/braincorp/auto-argparser/signature"
	"github.com/braincorp/auto-argparser/typespec"
)

type callMode int

const (
	modeFunc   callMode = iota // plain function, arguments passed positionally
	modeStruct                 // function taking a single input struct
	modeRecord                 // no function: construct the struct itself
)

// Parser derives a command-line interface for one callable. The argument
// descriptors are computed once at construction and reused read-only across
// calls; nested parsers for structured-record parameters are created lazily
// and held for the Parser's lifetime.
type Parser struct {
	sig        *signature.Signature
	fn         reflect.Value
	mode       callMode
	wantsCtx   bool
	inputIsPtr bool

	returnConv func(any) string
	reportW    io.Writer
	raiseDeep  bool
	logger     *slog.Logger
	output     io.Writer

	children map[string]*Parser
}

var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// New builds a Parser for fn. Three callable shapes are supported:
//
//   - a function whose single parameter (after an optional leading
//     context.Context) is a struct or pointer to struct: the struct's fields
//     are the arguments;
//   - any other function: arguments are its parameters, named via WithNames
//     or ":param" doc lines;
//   - a struct value or pointer: the "callable" is construction of that
//     struct, which is how nested record arguments are built.
func New(fn any, opts ...Option) (*Parser, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	for name, expr := range o.typeExprs {
		t, err := typespec.Parse(expr)
		if err != nil {
			return nil, &ConfigurationError{Callable: fmt.Sprintf("%T", fn), Msg: fmt.Sprintf("type expression for %s: %v", name, err)}
		}
		o.overrides.Types[name] = t
	}

	p := &Parser{
		returnConv: o.returnConv,
		reportW:    o.reportW,
		raiseDeep:  o.raiseDeep,
		logger:     o.logger,
		output:     o.output,
		children:   map[string]*Parser{},
	}

	rv := reflect.ValueOf(fn)
	switch rv.Kind() {
	case reflect.Func:
		rt := rv.Type()
		p.fn = rv
		p.wantsCtx = rt.NumIn() > 0 && rt.In(0) == ctxType
		params := rt.NumIn()
		first := 0
		if p.wantsCtx {
			params--
			first = 1
		}
		if params == 1 && isStructParam(rt.In(first)) && len(o.names) == 0 {
			p.mode = modeStruct
			in := rt.In(first)
			p.inputIsPtr = in.Kind() == reflect.Pointer
			if p.inputIsPtr {
				in = in.Elem()
			}
			sig, err := signature.ForStruct(reflect.New(in).Interface(), o.doc, o.overrides)
			if err != nil {
				return nil, err
			}
			p.sig = sig
			p.sig.Name = funcDisplayName(fn, sig.Name)
		} else {
			p.mode = modeFunc
			sig, err := signature.ForFunc(fn, o.doc, o.names, o.overrides)
			if err != nil {
				return nil, err
			}
			p.sig = sig
		}
	case reflect.Struct, reflect.Pointer:
		if rv.Kind() == reflect.Pointer && rv.Elem().Kind() != reflect.Struct {
			return nil, &ConfigurationError{Callable: fmt.Sprintf("%T", fn), Msg: "callable must be a function, a struct, or a pointer to a struct"}
		}
		p.mode = modeRecord
		sig, err := signature.ForStruct(fn, o.doc, o.overrides)
		if err != nil {
			return nil, err
		}
		p.sig = sig
	default:
		return nil, &ConfigurationError{Callable: fmt.Sprintf("%T", fn), Msg: "callable must be a function, a struct, or a pointer to a struct"}
	}

	p.logger.Debug("Built argument descriptors.", "callable", p.sig.Name, "params", len(p.sig.Args))
	return p, nil
}

// Must wraps New for parsers declared at program start; it panics on a
// configuration error.
func Must(p *Parser, err error) *Parser {
	if err != nil {
		panic(err)
	}
	return p
}

// Signature exposes the cached descriptor table, read-only.
func (p *Parser) Signature() *signature.Signature { return p.sig }

var timeType = reflect.TypeOf(time.Time{})

func isStructParam(rt reflect.Type) bool {
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Kind() == reflect.Struct && rt != timeType
}

// funcDisplayName prefers the function's own name for diagnostics, falling
// back to the input struct's type name for anonymous functions.
func funcDisplayName(fn any, fallback string) string {
	if name := signature.FuncName(fn); name != "" && name != "func1" {
		return name
	}
	return fallback
}

// child returns the nested parser for a structured-record argument, building
// it on first use.
func (p *Parser) child(arg *signature.Arg) (*Parser, error) {
	if c, ok := p.children[arg.Name]; ok {
		return c, nil
	}
	rt := arg.Type.GoType()
	if rt == nil {
		return nil, &ConfigurationError{Callable: p.sig.Name, Msg: fmt.Sprintf("nested argument %q has no backing struct type", arg.Name)}
	}
	childOpts := []Option{WithLogger(p.logger), WithOutput(p.output)}
	if p.raiseDeep {
		childOpts = append(childOpts, WithRaiseDeep())
	}
	c, err := New(reflect.New(rt).Interface(), childOpts...)
	if err != nil {
		return nil, err
	}
	p.children[arg.Name] = c
	return c, nil
}
