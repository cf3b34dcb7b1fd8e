package convert

import (
	"fmt"
	"strings"
)

// ConversionError reports a string that could not be converted to the type
// an argument requires. Value carries the offending token and Target the
// friendly name of the required type, when known.
type ConversionError struct {
	Value  string
	Target string
	Detail string
	Err    error
}

func (e *ConversionError) Error() string {
	var b strings.Builder
	if e.Value != "" || e.Target != "" {
		b.WriteString("cannot convert")
		if e.Value != "" {
			fmt.Fprintf(&b, " %q", e.Value)
		}
		if e.Target != "" {
			fmt.Fprintf(&b, " to %s", e.Target)
		}
		if e.Detail != "" {
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Detail)
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		fmt.Fprintf(&b, "%v", e.Err)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error { return e.Err }
