package signature

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/braincorp/auto-argparser/convert"
	"github.com/braincorp/auto-argparser/typespec"
)

type noValue struct{}

func (noValue) String() string { return "<no value>" }

// NoValue marks the absence of a declared default. It is distinct from an
// explicit nil default, which is a legitimate argument value. The sentinel
// never reaches the keyword arguments handed to a callable.
var NoValue any = noValue{}

// IsNoValue reports whether v is the no-value sentinel.
func IsNoValue(v any) bool {
	_, ok := v.(noValue)
	return ok
}

// ConfigurationError reports an invalid parser declaration: an override
// naming an unknown parameter, a malformed default, or an unsupported
// callable shape. It is always raised at construction time, never deferred
// to call time.
type ConfigurationError struct {
	Callable string
	Msg      string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid parser configuration for %s: %s", e.Callable, e.Msg)
}

// Arg describes one parameter of a callable.
type Arg struct {
	Name       string
	Type       *typespec.Type // nil when undeclared
	Default    any            // NoValue when the parameter is required
	Doc        string
	Short      string
	Converter  convert.Func // per-argument override, nil to resolve from Type
	FieldIndex []int        // reflect index into the input struct; nil in func mode
}

// Overrides carries externally supplied per-argument configuration. Every
// key must name an existing parameter unless the callable declares a
// catch-all field; violations fail at construction.
type Overrides struct {
	Defaults   map[string]any
	Converters map[string]convert.Func
	ShortNames map[string]string
	Types      map[string]*typespec.Type
}

// Signature is the ordered, typed, defaulted and documented parameter list
// of one callable, computed once per parser construction.
type Signature struct {
	Name     string
	Doc      string
	Args     []Arg
	CatchAll bool // a catch-all field relaxes override validation

	input reflect.Type // backing struct type; nil in func mode
}

// Input returns the backing input-struct type, or nil in func mode.
func (s *Signature) Input() reflect.Type { return s.input }

// Names returns the parameter names in declaration order.
func (s *Signature) Names() []string {
	names := make([]string, len(s.Args))
	for i, a := range s.Args {
		names[i] = a.Name
	}
	return names
}

// Lookup returns the descriptor for name, or nil.
func (s *Signature) Lookup(name string) *Arg {
	for i := range s.Args {
		if s.Args[i].Name == name {
			return &s.Args[i]
		}
	}
	return nil
}

// ForStruct builds a signature from an input-struct prototype. Exported
// fields become parameters in declaration order; names, docs, short names
// and defaults come from the `arg`, `help`, `short` and `default` tags, and
// per-parameter doc text may also come from ":param name: text" lines in
// doc. Field values set on the prototype act as defaults. A map[string]any
// field tagged `arg:",remain"` is a catch-all and disables override-name
// validation.
func ForStruct(prototype any, doc string, ov Overrides) (*Signature, error) {
	rv := reflect.ValueOf(prototype)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.New(rv.Type().Elem())
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, &ConfigurationError{Callable: fmt.Sprintf("%T", prototype), Msg: "input prototype must be a struct or a pointer to one"}
	}
	rt := rv.Type()
	sig := &Signature{Name: rt.Name(), Doc: doc, input: rt}
	docs := ParseDoc(doc)

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := typespec.FieldName(sf)
		if name == "" {
			continue
		}
		required, remain := argTagOptions(sf)
		if remain {
			if sf.Type != reflect.TypeOf(map[string]any(nil)) {
				return nil, &ConfigurationError{Callable: sig.Name, Msg: fmt.Sprintf("catch-all field %s must be a map[string]any", sf.Name)}
			}
			sig.CatchAll = true
			continue
		}
		t, err := typespec.FromGo(sf.Type)
		if err != nil {
			return nil, &ConfigurationError{Callable: sig.Name, Msg: err.Error()}
		}
		arg := Arg{
			Name:       name,
			Type:       t,
			Doc:        sf.Tag.Get("help"),
			Short:      sf.Tag.Get("short"),
			FieldIndex: sf.Index,
		}
		if arg.Doc == "" {
			arg.Doc = docs[name]
		}
		switch {
		case t.Kind() == typespec.KindRecord:
			// Nested records are built by their own parser, never from a
			// flat default.
			arg.Default = NoValue
		case required:
			arg.Default = NoValue
		default:
			arg.Default = rv.Field(i).Interface()
		}
		if tag, ok := sf.Tag.Lookup("default"); ok {
			v, err := convert.Value(tag, t)
			if err != nil {
				return nil, &ConfigurationError{Callable: sig.Name, Msg: fmt.Sprintf("default tag for %s: %v", name, err)}
			}
			arg.Default = v
		}
		sig.Args = append(sig.Args, arg)
	}
	if err := sig.apply(ov); err != nil {
		return nil, err
	}
	return sig, nil
}

var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()

// ForFunc builds a signature for a plain function. Parameter types come from
// the function's reflect signature; names come from the names argument or,
// when empty, from the ":param" lines of doc in declaration order. A leading
// context.Context parameter is implicit and excluded from the result.
// Defaults exist only through Overrides and must be right-aligned: a
// parameter with a default may not precede one without.
func ForFunc(fn any, doc string, names []string, ov Overrides) (*Signature, error) {
	rt := reflect.TypeOf(fn)
	if rt == nil || rt.Kind() != reflect.Func {
		return nil, &ConfigurationError{Callable: fmt.Sprintf("%T", fn), Msg: "callable must be a function"}
	}
	name := funcName(fn)
	if rt.IsVariadic() {
		return nil, &ConfigurationError{Callable: name, Msg: "variadic functions are not supported; take a slice parameter instead"}
	}
	params := make([]reflect.Type, 0, rt.NumIn())
	for i := 0; i < rt.NumIn(); i++ {
		if i == 0 && rt.In(0) == ctxType {
			continue // implicit first parameter
		}
		params = append(params, rt.In(i))
	}
	ordered, docs := parseDocOrdered(doc)
	if len(names) == 0 {
		names = ordered
	}
	if len(names) != len(params) {
		return nil, &ConfigurationError{Callable: name, Msg: fmt.Sprintf("have %d parameter name(s) for %d parameter(s); declare names with WithNames or :param doc lines", len(names), len(params))}
	}
	sig := &Signature{Name: name, Doc: doc}
	for i, pt := range params {
		t, err := typespec.FromGo(pt)
		if err != nil {
			return nil, &ConfigurationError{Callable: name, Msg: fmt.Sprintf("parameter %s: %v", names[i], err)}
		}
		sig.Args = append(sig.Args, Arg{Name: names[i], Type: t, Default: NoValue, Doc: docs[names[i]]})
	}
	if err := sig.apply(ov); err != nil {
		return nil, err
	}
	defaulted := false
	for _, a := range sig.Args {
		if a.Type != nil && a.Type.Kind() == typespec.KindRecord {
			continue
		}
		hasDefault := !IsNoValue(a.Default)
		if defaulted && !hasDefault {
			return nil, &ConfigurationError{Callable: name, Msg: fmt.Sprintf("parameter %s without a default follows parameters with defaults", a.Name)}
		}
		defaulted = defaulted || hasDefault
	}
	return sig, nil
}

// apply merges the externally supplied overrides into the descriptor table,
// validating that every override key names a real parameter unless a
// catch-all field exists.
func (s *Signature) apply(ov Overrides) error {
	var unknown []string
	for name, t := range ov.Types {
		arg := s.Lookup(name)
		if arg == nil {
			unknown = append(unknown, name)
			continue
		}
		wasRecord := arg.Type != nil && arg.Type.Kind() == typespec.KindRecord
		if wasRecord != (t.Kind() == typespec.KindRecord) {
			return &ConfigurationError{Callable: s.Name, Msg: fmt.Sprintf("type override for %s may not change whether it is a structured record", name)}
		}
		arg.Type = t
	}
	for name, v := range ov.Defaults {
		if arg := s.Lookup(name); arg != nil {
			arg.Default = v
		} else {
			unknown = append(unknown, name)
		}
	}
	for name, fn := range ov.Converters {
		if arg := s.Lookup(name); arg != nil {
			arg.Converter = fn
		} else {
			unknown = append(unknown, name)
		}
	}
	for name, short := range ov.ShortNames {
		if arg := s.Lookup(name); arg != nil {
			arg.Short = short
		} else {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 && !s.CatchAll {
		return &ConfigurationError{Callable: s.Name, Msg: fmt.Sprintf("override keys %v do not name parameters of %s", unknown, s.Name)}
	}
	return nil
}

// FuncName returns the bare name of a function value for diagnostics, with
// package path and method suffixes trimmed.
func FuncName(fn any) string {
	return funcName(fn)
}

func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	full := runtime.FuncForPC(pc).Name()
	if idx := strings.LastIndexByte(full, '/'); idx >= 0 {
		full = full[idx+1:]
	}
	if idx := strings.IndexByte(full, '.'); idx >= 0 {
		full = full[idx+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}

func argTagOptions(sf reflect.StructField) (required, remain bool) {
	tag, ok := sf.Tag.Lookup("arg")
	if !ok {
		return false, false
	}
	_, opts, _ := strings.Cut(tag, ",")
	for _, opt := range strings.Split(opts, ",") {
		switch opt {
		case "required":
			required = true
		case "remain":
			remain = true
		}
	}
	return required, remain
}
