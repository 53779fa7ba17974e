package abnf

// Parse runs rule against input and requires it to consume all of it. On
// success the returned Context holds the public captures in insertion order;
// on failure the error is a *NoMatchError identifying the rejecting rule and
// the unparsed remainder.
//
// Parse allocates a fresh Context per call, so a single rule tree may be
// used concurrently from multiple goroutines.
func Parse(rule Rule, input string) (*Context, error) {
	ctx := NewContext()
	if err := FullMatch(rule).parse(input, ctx); err != nil {
		return nil, err
	}
	return ctx.clean(), nil
}

// ParsePartial runs rule against input, accepting a match of any prefix. It
// returns the captures and the unparsed leftover.
func ParsePartial(rule Rule, input string) (*Context, string, error) {
	ctx := NewContext()
	if err := rule.parse(input, ctx); err != nil {
		return nil, "", err
	}
	leftover := ctx.unparsed()
	return ctx.clean(), leftover, nil
}

// RuleSet is a name-indexed collection of productions. Ref resolves through
// the set at parse time, so mutually recursive productions can reference each
// other before they are all defined:
//
//	g := abnf.RuleSet{}
//	g["value"] = abnf.Alternatives(number, g.Ref("array"))
//	g["array"] = abnf.Sequence(abnf.Literal("["), g.Ref("value"), abnf.Literal("]"))
type RuleSet map[string]Rule

// Ref returns a rule that resolves the named production on every invocation.
// Parsing a reference to an undefined production is a fatal grammar defect.
func (rs RuleSet) Ref(name string) Rule {
	return &ReferenceRule{
		name: name,
		resolve: func(*Context) Rule {
			rule, ok := rs[name]
			if !ok {
				grammarPanic(nil, "undefined production %q", name)
			}
			return rule
		},
	}
}
