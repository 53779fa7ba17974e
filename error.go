package abnf

import (
	"errors"
	"fmt"
)

// NoMatchError is the ordinary, recoverable outcome of a rule rejecting its
// input. It carries the rejecting rule and the exact unparsed suffix at the
// point of rejection; Alternatives, Optional and Repeat convert it into
// control flow, and it reaches the caller only when no recovery path remains.
type NoMatchError struct {
	// Rule is the rule that rejected the input.
	Rule Rule
	// Unparsed is the input remaining at the point of rejection.
	Unparsed string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match at %q (expected %s)", abbrev(e.Unparsed), e.Rule)
}

func noMatch(rule Rule, unparsed string) error {
	return &NoMatchError{Rule: rule, Unparsed: unparsed}
}

// IsNoMatch reports whether err is an ordinary match failure.
func IsNoMatch(err error) bool {
	var nm *NoMatchError
	return errors.As(err, &nm)
}

// GrammarError reports a malformed grammar: a construction-time defect such
// as a reserved capture name, or a runtime defect such as a zero-length match
// inside Repeat. These signal bugs in the grammar, not in the input, so the
// engine panics with a *GrammarError instead of returning it; recovery would
// silently mask the bug as a parse failure.
type GrammarError struct {
	Message string
	// Rule is the offending rule, when known.
	Rule Rule
}

func (e *GrammarError) Error() string {
	if e.Rule != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Rule)
	}
	return e.Message
}

func grammarPanic(rule Rule, format string, args ...any) {
	panic(&GrammarError{Message: fmt.Sprintf(format, args...), Rule: rule})
}

// abbrev keeps failure messages readable on long inputs.
func abbrev(s string) string {
	const limit = 40
	if len(s) > limit {
		return s[:limit] + "…"
	}
	return s
}
