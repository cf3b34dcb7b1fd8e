package autoarg

import (
	"fmt"
	"strings"
	"time"
)

// Call parses args, invokes the callable with the resulting keyword
// arguments, and returns its result. Unconsumed tokens are an error; use
// CallWithRemaining to compose pipelines instead.
func (p *Parser) Call(args any) (any, error) {
	ret, _, err := p.call(args, false)
	return ret, err
}

// CallWithRemaining parses args in non-strict mode, invokes the callable and
// returns its result together with the unconsumed tokens, so the output of
// one call can feed the leftover arguments of the next.
func (p *Parser) CallWithRemaining(args any) (any, []string, error) {
	return p.call(args, true)
}

func (p *Parser) call(args any, allowRemaining bool) (any, []string, error) {
	parsed, err := p.ParseCall(args, allowRemaining)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	ret, err := p.invoke(parsed.Kwargs)
	if err != nil {
		return nil, nil, err
	}
	if p.reportW != nil {
		p.writeReport(displayArgs(args), time.Since(start), ret)
	}
	return ret, parsed.Remaining, nil
}

// writeReport renders the one-line call summary, switching to an indented
// block when the return value is long or spans lines.
func (p *Parser) writeReport(display string, elapsed time.Duration, ret any) {
	report := fmt.Sprintf("........\nCall to '%s %s' took %.2fs", p.sig.Name, display, elapsed.Seconds())
	if ret != nil {
		rendered := p.returnConv(ret)
		if strings.Contains(rendered, "\n") || len(rendered) > 80 {
			rendered = "\n-----\n" + strings.Trim(rendered, "\n")
		}
		report += " and returned " + rendered
	}
	fmt.Fprintln(p.reportW, report)
}

func displayArgs(args any) string {
	switch v := args.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	default:
		return fmt.Sprint(args)
	}
}
