package abnf

import (
	"fmt"
	"io"
)

// Trace wraps rule so that every attempt and its outcome are logged to w.
// Wrap the productions you care about:
//
//	uri := abnf.Trace(os.Stderr, uriRule)
//
// The wrapper delegates directly to rule and does not alter its semantics.
func Trace(w io.Writer, rule Rule) Rule {
	return &traceRule{w: w, rule: rule}
}

type traceRule struct {
	w    io.Writer
	rule Rule
}

func (t *traceRule) parse(input string, ctx *Context) error {
	fmt.Fprintf(t.w, "%s %q\n", t.rule, abbrev(input))
	err := t.rule.parse(input, ctx)
	if err != nil {
		fmt.Fprintf(t.w, "=> %s\n", err)
	} else {
		fmt.Fprintf(t.w, "=> %q, unparsed %q\n", ctx.Matched(), abbrev(ctx.unparsed()))
	}
	return err
}

func (t *traceRule) String() string { return t.rule.String() }
