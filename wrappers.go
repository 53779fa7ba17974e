package abnf

import (
	"fmt"
	"strings"
)

// OptionalRule matches its inner rule zero or one time. It never fails.
type OptionalRule struct {
	rule Rule
	def  string
}

// Optional returns a rule that attempts rule once and, if it rejects,
// synthesizes a successful zero-length match instead.
func Optional(rule Rule) *OptionalRule {
	return &OptionalRule{rule: rule}
}

// Default returns a copy of the rule whose matched text is def when the
// inner rule does not match.
func (o *OptionalRule) Default(def string) *OptionalRule {
	out := *o
	out.def = def
	return &out
}

func (o *OptionalRule) parse(input string, ctx *Context) error {
	branch := ctx.clone()
	if err := o.rule.parse(input, branch); err != nil {
		ctx.setMatch(o.def, nil, input)
		return nil
	}
	ctx.merge(branch)
	return nil
}

func (o *OptionalRule) String() string {
	return fmt.Sprintf("[ %s ]", o.rule)
}

// RepeatRule matches its inner rule repeatedly, optionally separated by a
// delimiter rule.
type RepeatRule struct {
	rule      Rule
	delimited Rule
	min, max  int
}

// Repeat returns a rule matching rule zero or more times. The structured
// value of a successful match is the ordered list of each iteration's
// captured sub-context; wrap the enclosing Capture with Raw to capture the
// concatenated text instead.
func Repeat(rule Rule) *RepeatRule {
	return &RepeatRule{rule: rule, delimited: rule, min: 0, max: Unbounded}
}

// Delimiter returns a copy of the rule requiring d between iterations.
func (r *RepeatRule) Delimiter(d Rule) *RepeatRule {
	out := *r
	out.delimited = Sequence(d, r.rule)
	return &out
}

// Bounds returns a copy of the rule matching between min and max iterations.
// Pass Unbounded as max to remove the upper bound.
func (r *RepeatRule) Bounds(min, max int) *RepeatRule {
	out := *r
	out.min, out.max = min, max
	return &out
}

// Min returns a copy of the rule requiring at least n iterations.
func (r *RepeatRule) Min(n int) *RepeatRule { return r.Bounds(n, r.max) }

// Max returns a copy of the rule matching at most n iterations.
func (r *RepeatRule) Max(n int) *RepeatRule { return r.Bounds(r.min, n) }

// Exactly returns a copy of the rule matching exactly n iterations.
func (r *RepeatRule) Exactly(n int) *RepeatRule { return r.Bounds(n, n) }

func (r *RepeatRule) parse(input string, ctx *Context) error {
	var text strings.Builder
	items := []*Context{}
	remainder := input
	for {
		if r.max >= 0 && len(items) >= r.max {
			break
		}
		step := r.rule
		if len(items) > 0 {
			step = r.delimited
		}
		// Each iteration gets its own context so a failed trailing attempt
		// leaves no residue and each iteration's captures stay separate.
		iter := NewContext()
		if err := step.parse(remainder, iter); err != nil {
			break
		}
		if iter.unparsed() == remainder {
			// A zero-length iteration would repeat forever.
			grammarPanic(r, "zero-length match in repetition")
		}
		text.WriteString(iter.Matched())
		remainder = iter.unparsed()
		items = append(items, iter.clean())
		if remainder == "" {
			break
		}
	}
	if len(items) < r.min {
		return noMatch(r, input)
	}
	ctx.setMatch(text.String(), items, remainder)
	return nil
}

func (r *RepeatRule) String() string {
	return fmt.Sprintf("( %s )%s", r.rule, boundsSuffix(r.min, r.max))
}

// MappingRule is a Repeat whose iterations each capture a key and a value,
// collapsed into a single ordered map.
type MappingRule struct {
	repeat    *RepeatRule
	keyName   string
	valueName string
}

// Mapping returns a repetition of rule whose structured value is an ordered
// Context mapping each iteration's "key" capture to its "value" capture.
// On duplicate keys the later value wins but the key keeps the position of
// its first occurrence.
func Mapping(rule Rule) *MappingRule {
	return &MappingRule{repeat: Repeat(rule), keyName: "key", valueName: "value"}
}

// Names returns a copy of the rule using the given capture names for keys
// and values.
func (m *MappingRule) Names(keyName, valueName string) *MappingRule {
	out := *m
	out.keyName, out.valueName = keyName, valueName
	return &out
}

// Delimiter returns a copy of the rule requiring d between iterations.
func (m *MappingRule) Delimiter(d Rule) *MappingRule {
	out := *m
	out.repeat = m.repeat.Delimiter(d)
	return &out
}

// Bounds returns a copy of the rule matching between min and max iterations.
func (m *MappingRule) Bounds(min, max int) *MappingRule {
	out := *m
	out.repeat = m.repeat.Bounds(min, max)
	return &out
}

// Min returns a copy of the rule requiring at least n iterations.
func (m *MappingRule) Min(n int) *MappingRule { return m.Bounds(n, m.repeat.max) }

func (m *MappingRule) parse(input string, ctx *Context) error {
	if err := m.repeat.parse(input, ctx); err != nil {
		return err
	}
	items, _ := ctx.values[valueKey].([]*Context)
	table := NewContext()
	for _, item := range items {
		key, ok := item.Get(m.keyName)
		if !ok {
			grammarPanic(m, "mapping iteration did not capture %q", m.keyName)
		}
		name, ok := key.(string)
		if !ok {
			grammarPanic(m, "mapping key %q is not a string", m.keyName)
		}
		value, ok := item.Get(m.valueName)
		if !ok {
			grammarPanic(m, "mapping iteration did not capture %q", m.valueName)
		}
		table.Set(name, value)
	}
	ctx.Set(valueKey, table)
	return nil
}

func (m *MappingRule) String() string { return m.repeat.String() }

// TransformFunc rewrites a rule's capturable value.
type TransformFunc func(Value) Value

// CaptureRule binds the wrapped rule's value under a public name.
type CaptureRule struct {
	rule      Rule
	name      string
	transform TransformFunc
	raw       bool
}

// Capture returns a rule that matches rule and binds its value in the
// context under name. The bound value is the rule's structured value when it
// has one, otherwise its raw matched text. Names with the reserved prefix
// are rejected.
func Capture(rule Rule, name string) *CaptureRule {
	if strings.HasPrefix(name, reservedPrefix) {
		grammarPanic(nil, "capture name %q uses the reserved prefix %q", name, reservedPrefix)
	}
	return &CaptureRule{rule: rule, name: name}
}

// Raw returns a copy of the capture that binds the raw matched text even
// when the rule produced a structured value. This flattens a Repeat's
// list-of-contexts value into its concatenated text.
func (c *CaptureRule) Raw() *CaptureRule {
	out := *c
	out.raw = true
	return &out
}

// Apply returns a copy of the capture that passes the bound value through fn
// before binding it.
func (c *CaptureRule) Apply(fn TransformFunc) *CaptureRule {
	out := *c
	out.transform = fn
	return &out
}

func (c *CaptureRule) parse(input string, ctx *Context) error {
	if err := c.rule.parse(input, ctx); err != nil {
		return err
	}
	var v Value
	if c.raw {
		v = ctx.Matched()
	} else {
		v = ctx.Value()
	}
	if c.transform != nil {
		v = c.transform(v)
	}
	ctx.Set(c.name, v)
	return nil
}

func (c *CaptureRule) String() string {
	return fmt.Sprintf("%s:%s", c.name, c.rule)
}

// TransformRule rewrites the value of a successful match.
type TransformRule struct {
	rule Rule
	fn   TransformFunc
}

// Transform returns a rule that matches rule and replaces its value with
// fn(value). String results also replace the matched text, so the transformed
// form is what an enclosing Sequence concatenates; captures already bound by
// rule are unaffected.
func Transform(rule Rule, fn TransformFunc) *TransformRule {
	return &TransformRule{rule: rule, fn: fn}
}

func (t *TransformRule) parse(input string, ctx *Context) error {
	if err := t.rule.parse(input, ctx); err != nil {
		return err
	}
	v := t.fn(ctx.Value())
	if s, ok := v.(string); ok {
		ctx.setMatch(s, nil, ctx.unparsed())
	} else {
		ctx.Set(valueKey, v)
	}
	return nil
}

func (t *TransformRule) String() string { return t.rule.String() }

// Ignore returns a rule that matches rule but contributes no text to the
// overall match.
func Ignore(rule Rule) *TransformRule {
	return Transform(rule, func(Value) Value { return "" })
}

// CaseFold returns a rule that matches rule and case-folds its matched text.
func CaseFold(rule Rule) *TransformRule {
	return Transform(rule, func(v Value) Value {
		if s, ok := v.(string); ok {
			return fold(s)
		}
		return v
	})
}

// AssertRule gates a successful match on a semantic predicate.
type AssertRule struct {
	rule      Rule
	predicate func(*Context) bool
}

// Assert returns a rule that matches rule and then evaluates predicate over
// the resulting context. A false predicate converts the success into an
// ordinary failure at the original input position, leaving no captures
// behind.
func Assert(rule Rule, predicate func(*Context) bool) *AssertRule {
	return &AssertRule{rule: rule, predicate: predicate}
}

func (a *AssertRule) parse(input string, ctx *Context) error {
	branch := ctx.clone()
	if err := a.rule.parse(input, branch); err != nil {
		return err
	}
	if !a.predicate(branch) {
		return noMatch(a, input)
	}
	ctx.merge(branch)
	return nil
}

func (a *AssertRule) String() string { return a.rule.String() }

// FullMatchRule requires its inner rule to consume the entire input.
type FullMatchRule struct {
	rule Rule
}

// FullMatch returns a rule that matches rule and then fails unless no input
// remains unparsed.
func FullMatch(rule Rule) *FullMatchRule {
	return &FullMatchRule{rule: rule}
}

func (f *FullMatchRule) parse(input string, ctx *Context) error {
	if err := f.rule.parse(input, ctx); err != nil {
		return err
	}
	if rest := ctx.unparsed(); rest != "" {
		return noMatch(f, rest)
	}
	return nil
}

func (f *FullMatchRule) String() string { return f.rule.String() }
