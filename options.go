package autoarg

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/braincorp/auto-argparser/convert"
	"github.com/braincorp/auto-argparser/signature"
	"github.com/braincorp/auto-argparser/typespec"
)

type options struct {
	doc        string
	names      []string
	overrides  signature.Overrides
	typeExprs  map[string]string
	returnConv func(any) string
	reportW    io.Writer
	raiseDeep  bool
	logger     *slog.Logger
	output     io.Writer
}

func defaultOptions() options {
	return options{
		overrides: signature.Overrides{
			Defaults:   map[string]any{},
			Converters: map[string]convert.Func{},
			ShortNames: map[string]string{},
			Types:      map[string]*typespec.Type{},
		},
		typeExprs:  map[string]string{},
		returnConv: func(v any) string { return fmt.Sprint(v) },
		logger:     slog.Default(),
		output:     os.Stderr,
	}
}

// Option configures a Parser at construction time.
type Option func(*options)

// WithDoc attaches a documentation block to the callable. Lines of the form
// ":param name: text" become per-argument help text, and for plain functions
// without WithNames they also name the parameters in order.
func WithDoc(doc string) Option {
	return func(o *options) { o.doc = doc }
}

// WithNames declares the parameter names of a plain function, in declaration
// order.
func WithNames(names ...string) Option {
	return func(o *options) { o.names = names }
}

// WithDefault overrides the default value of one parameter.
func WithDefault(name string, value any) Option {
	return func(o *options) { o.overrides.Defaults[name] = value }
}

// WithConverter overrides the string-to-value converter of one parameter.
func WithConverter(name string, fn convert.Func) Option {
	return func(o *options) { o.overrides.Converters[name] = fn }
}

// WithShortName registers a single-dash alias for one parameter, e.g. "s"
// to accept -s alongside --start_average_at_first.
func WithShortName(name, short string) Option {
	return func(o *options) { o.overrides.ShortNames[name] = short }
}

// WithTypeExpr overrides the declared type of one parameter with a textual
// type expression such as "list(number)" or "map(string, int)".
func WithTypeExpr(name, expr string) Option {
	return func(o *options) { o.typeExprs[name] = expr }
}

// WithReport enables the post-call report: elapsed wall-clock time and the
// formatted return value are written to w after each successful call.
func WithReport(w io.Writer) Option {
	return func(o *options) { o.reportW = w }
}

// WithReturnConverter sets the formatter used to render return values in the
// call report.
func WithReturnConverter(fn func(any) string) Option {
	return func(o *options) { o.returnConv = fn }
}

// WithRaiseDeep passes the flag primitive's native errors through instead of
// wrapping them with captured diagnostics, which helps identify the source
// of a parse failure.
func WithRaiseDeep() Option {
	return func(o *options) { o.raiseDeep = true }
}

// WithLogger sets the logger used for stage tracing and the unconsumed-token
// warning. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOutput sets the destination for help text. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}
