package abnf

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
)

// A Rule matches a prefix of an input string. Rules are immutable once
// constructed: the combinator functions and the chainable methods on concrete
// rule types always return new values, so a grammar can be shared and reused
// across any number of parses, including concurrent ones.
//
// Rule is implemented only by types in this package; grammars are built by
// composing the provided constructors.
type Rule interface {
	fmt.Stringer

	// parse attempts to consume a prefix of input. On success it records the
	// matched text, any structured value and the unparsed remainder in ctx
	// and returns nil; on rejection it returns a *NoMatchError. Fatal grammar
	// defects panic with *GrammarError.
	parse(input string, ctx *Context) error
}

// Unbounded disables the upper bound of a Chars or Repeat rule.
const Unbounded = -1

// fold case-folds s for caseless comparison. cases.Caser is stateful, so a
// fresh one is used per call to keep rules safe for concurrent parses.
func fold(s string) string {
	return cases.Fold().String(s)
}

// LiteralRule matches one of a set of fixed strings, tried in declared order.
type LiteralRule struct {
	literals []string
	casefold bool
}

// Literal returns a rule matching any one of the given strings,
// case-insensitively. The matched text is the case-folded form.
func Literal(literals ...string) *LiteralRule {
	folded := make([]string, len(literals))
	for i, lit := range literals {
		folded[i] = fold(lit)
	}
	return &LiteralRule{literals: folded, casefold: true}
}

// LiteralCS returns a rule matching any one of the given strings exactly.
func LiteralCS(literals ...string) *LiteralRule {
	return &LiteralRule{literals: slices.Clone(literals)}
}

func (l *LiteralRule) parse(input string, ctx *Context) error {
	for _, lit := range l.literals {
		n := len(lit)
		if l.casefold {
			// Folding is length-unstable, so fold a bounded window of the
			// input rather than the whole of it.
			prefix := input
			if window := len(lit) * 4; window < len(input) {
				prefix = input[:window]
			}
			if !strings.HasPrefix(fold(prefix), lit) {
				continue
			}
			// Consume as many input characters as the literal has; folding
			// can change byte lengths but not (for our purposes) rune counts.
			n = 0
			for i := utf8.RuneCountInString(lit); i > 0; i-- {
				_, size := utf8.DecodeRuneInString(input[n:])
				n += size
			}
		} else if !strings.HasPrefix(input, lit) {
			continue
		}
		match := input[:n]
		if l.casefold {
			match = fold(match)
		}
		ctx.setMatch(match, nil, input[n:])
		return nil
	}
	return noMatch(l, input)
}

func (l *LiteralRule) String() string {
	quoted := make([]string, len(l.literals))
	for i, lit := range l.literals {
		quoted[i] = fmt.Sprintf("%q", lit)
	}
	return strings.Join(quoted, " | ")
}

// RegExpRule matches a regular expression anchored at the start of the input.
type RegExpRule struct {
	pattern string
	re      *regexp.Regexp
}

// RegExp returns a rule matching pattern at the start of the input. Every
// named group in the pattern becomes a public capture; group names with the
// reserved prefix are rejected.
func RegExp(pattern string) *RegExpRule {
	re := regexp.MustCompile(`\A(?:` + pattern + `)`)
	for _, name := range re.SubexpNames() {
		if strings.HasPrefix(name, reservedPrefix) {
			grammarPanic(nil, "regexp group name %q uses the reserved prefix %q", name, reservedPrefix)
		}
	}
	return &RegExpRule{pattern: pattern, re: re}
}

func (r *RegExpRule) parse(input string, ctx *Context) error {
	groups := r.re.FindStringSubmatch(input)
	if groups == nil {
		return noMatch(r, input)
	}
	for i, name := range r.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		ctx.Set(name, groups[i])
	}
	ctx.setMatch(groups[0], nil, input[len(groups[0]):])
	return nil
}

func (r *RegExpRule) String() string {
	return fmt.Sprintf("/%s/", r.pattern)
}

// CharsRule matches a bounded run of characters satisfying a set-membership
// predicate.
type CharsRule struct {
	allowed  *CharRange
	excluded *CharRange
	min, max int
}

// Chars returns a rule matching exactly one character from allowed. A nil
// range accepts any character. Use the bounds methods to match longer runs.
func Chars(allowed *CharRange) *CharsRule {
	return &CharsRule{allowed: allowed, min: 1, max: 1}
}

// AnyChar returns a rule matching exactly one arbitrary character.
func AnyChar() *CharsRule {
	return Chars(nil)
}

// Except returns a copy of the rule that additionally rejects characters in
// excluded.
func (c *CharsRule) Except(excluded *CharRange) *CharsRule {
	out := *c
	out.excluded = excluded
	return &out
}

// Bounds returns a copy of the rule matching between min and max characters.
// Pass Unbounded as max to remove the upper bound. Adjusting bounds never
// wraps a Chars rule in a Repeat: a longer character run is still a single
// Chars match.
func (c *CharsRule) Bounds(min, max int) *CharsRule {
	out := *c
	out.min, out.max = min, max
	return &out
}

// Exactly returns a copy of the rule matching exactly n characters.
func (c *CharsRule) Exactly(n int) *CharsRule { return c.Bounds(n, n) }

// AtLeast returns a copy of the rule matching n or more characters.
func (c *CharsRule) AtLeast(n int) *CharsRule { return c.Bounds(n, Unbounded) }

// AtMost returns a copy of the rule matching up to n characters.
func (c *CharsRule) AtMost(n int) *CharsRule { return c.Bounds(0, n) }

func (c *CharsRule) accepts(r rune) bool {
	if c.allowed != nil && !c.allowed.Contains(r) {
		return false
	}
	if c.excluded != nil && c.excluded.Contains(r) {
		return false
	}
	return true
}

func (c *CharsRule) parse(input string, ctx *Context) error {
	var n, count int
	for _, r := range input {
		if c.max >= 0 && count >= c.max {
			break
		}
		if !c.accepts(r) {
			break
		}
		count++
		n += utf8.RuneLen(r)
	}
	if count < c.min {
		return noMatch(c, input)
	}
	ctx.setMatch(input[:n], nil, input[n:])
	return nil
}

func (c *CharsRule) String() string {
	var class string
	switch {
	case c.allowed == nil && c.excluded == nil:
		class = "."
	case c.allowed == nil:
		class = fmt.Sprintf("[^%s]", c.excluded)
	case c.excluded == nil:
		class = fmt.Sprintf("[%s]", c.allowed)
	default:
		class = fmt.Sprintf("[%s^%s]", c.allowed, c.excluded)
	}
	return class + boundsSuffix(c.min, c.max)
}

func boundsSuffix(min, max int) string {
	switch {
	case min == 1 && max == 1:
		return ""
	case min == max:
		return fmt.Sprintf("{%d}", min)
	case max < 0:
		return fmt.Sprintf("{%d,}", min)
	default:
		return fmt.Sprintf("{%d,%d}", min, max)
	}
}
