package abnf

import (
	"strings"
)

// SequenceRule matches an ordered conjunction of rules.
type SequenceRule struct {
	rules []Rule
}

// Sequence returns a rule matching each of the given rules in order, each
// picking up where the previous one left off. The first child failure
// propagates unchanged.
func Sequence(rules ...Rule) *SequenceRule {
	return &SequenceRule{rules: rules}
}

// Sequence threads its children through the context it is given, mutating it
// in place. Isolation from speculative siblings is the responsibility of the
// enclosing chooser (Alternatives, Optional, Repeat, Assert), which always
// hands branches a private clone.
func (s *SequenceRule) parse(input string, ctx *Context) error {
	var text strings.Builder
	remainder := input
	for _, rule := range s.rules {
		if err := rule.parse(remainder, ctx); err != nil {
			return err
		}
		text.WriteString(ctx.Matched())
		remainder = ctx.unparsed()
	}
	ctx.setMatch(text.String(), nil, remainder)
	return nil
}

func (s *SequenceRule) String() string {
	parts := make([]string, len(s.rules))
	for i, rule := range s.rules {
		parts[i] = rule.String()
	}
	return "( " + strings.Join(parts, " ") + " )"
}

// AlternativesRule matches the first of several rules that succeeds, in
// declared order.
type AlternativesRule struct {
	rules []Rule
}

// Alternatives returns an ordered-choice rule: each alternative is tried in
// declared order against an isolated copy of the context, and the first
// success wins. Captures from failed branches never leak into the result.
func Alternatives(rules ...Rule) *AlternativesRule {
	return &AlternativesRule{rules: rules}
}

func (a *AlternativesRule) parse(input string, ctx *Context) error {
	for i, rule := range a.rules {
		branch := ctx.clone()
		if err := rule.parse(input, branch); err != nil {
			// Ordinary rejection; fatal defects panic past this loop.
			continue
		}
		if branch.unparsed() == input && i < len(a.rules)-1 {
			// A zero-length success here makes every later alternative
			// unreachable. That is a grammar bug, not a parse failure.
			grammarPanic(rule, "zero-length match shadows later alternatives")
		}
		ctx.merge(branch)
		return nil
	}
	return noMatch(a, input)
}

func (a *AlternativesRule) String() string {
	parts := make([]string, len(a.rules))
	for i, rule := range a.rules {
		parts[i] = rule.String()
	}
	return "( " + strings.Join(parts, " | ") + " )"
}

// ReferenceRule resolves to another rule at parse time, allowing recursive
// and forward-referential productions.
type ReferenceRule struct {
	name    string
	resolve func(*Context) Rule
}

// Reference returns a rule that calls resolve on every invocation and
// delegates to the returned rule. Results are never cached, so the resolver
// may select rules based on the current context.
func Reference(resolve func(*Context) Rule) *ReferenceRule {
	return &ReferenceRule{resolve: resolve}
}

func (r *ReferenceRule) parse(input string, ctx *Context) error {
	rule := r.resolve(ctx)
	if rule == nil {
		grammarPanic(r, "reference resolved to no rule")
	}
	return rule.parse(input, ctx)
}

func (r *ReferenceRule) String() string {
	if r.name != "" {
		return r.name
	}
	return "..."
}
