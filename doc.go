// Package autoarg derives a command-line interface from a callable's
// signature: parameter names, types, defaults and doc text drive an argument
// parser with no hand-written flag declarations. Tokens may be passed
// positionally, as --name value / --name=value flags, as bare boolean flags,
// or dotted (--parent.child value) to populate nested structured arguments,
// and unconsumed tokens can be threaded between calls to compose pipelines.
//
//	type emaArgs struct {
//		Items []float64 `arg:"items,required" help:"the series to average"`
//		Decay float64   `default:"0.25"`
//	}
//
//	func ema(in *emaArgs) []float64 { ... }
//
//	p := autoarg.Must(autoarg.New(ema))
//	out, err := p.Call("--items 1,2,3 --decay 0.5")
//
// A Switch dispatches between several callables on the first token.
package autoarg
