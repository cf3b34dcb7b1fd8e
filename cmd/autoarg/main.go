// Command autoarg demonstrates signature-derived command-line parsing: a
// Switch dispatches between a few example callables whose flags all come
// from their input-struct signatures.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	autoarg "github.com/braincorp/auto-argparser"
)

func main() {
	// Use a minimal logger until run configures the real one.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		var dispatchErr *autoarg.DispatchError
		if errors.As(err, &dispatchErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run encapsulates the binary's logic for easier testing and error handling.
func run(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("autoarg", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, `autoarg - call example functions straight from their signatures.

Usage:
  autoarg [options] <add|mul|ema> [function args...]

Options:
`)
		fs.PrintDefaults()
	}
	logLevel := fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(strings.ToLower(*logLevel), strings.ToLower(*logFormat), os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if fs.NArg() == 0 {
		fs.Usage()
		return nil
	}

	sw := autoarg.NewSwitch(map[string]any{
		"add": autoarg.Must(autoarg.New(add, autoarg.WithLogger(logger), autoarg.WithOutput(out))),
		"mul": autoarg.Must(autoarg.New(mul, autoarg.WithLogger(logger), autoarg.WithOutput(out))),
		"ema": autoarg.Must(autoarg.New(exponentialMovingAverage,
			autoarg.WithLogger(logger),
			autoarg.WithOutput(out),
			autoarg.WithReport(out),
		)),
	})

	result, err := sw.Call(fs.Args())
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Fprintln(out, result)
	}
	return nil
}

// newLogger configures a slog.Logger without touching the global default, so
// tests can run isolated instances.
func newLogger(levelStr, formatStr string, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn' or 'error'", levelStr)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch formatStr {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", formatStr)
	}
}
