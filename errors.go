package autoarg

import (
	"fmt"
	"strings"

	"github.com/braincorp/auto-argparser/signature"
)

// ConfigurationError reports an invalid parser declaration at construction
// time. It is an alias so callers can match errors against this package
// alone.
type ConfigurationError = signature.ConfigurationError

// DispatchError reports a Switch invocation that named no callable or an
// unknown one. Options lists the registered names in sorted order.
type DispatchError struct {
	Name       string // the unknown name; empty when no name was given
	Options    []string
	Suggestion string
}

func (e *DispatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no callable name given; options: %s", strings.Join(e.Options, ", "))
	}
	msg := fmt.Sprintf("no callable named %q; options: %s", e.Name, strings.Join(e.Options, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}
