package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"

	"github.com/lanzz/abnf"
)

// Binding is one captured name-value pair, in capture order. Structured
// values are converted recursively so the repr dump stays readable.
type Binding struct {
	Name  string
	Value abnf.Value
}

func bindings(ctx *abnf.Context) []Binding {
	out := []Binding{}
	for _, key := range ctx.Keys() {
		value, _ := ctx.Get(key)
		out = append(out, Binding{Name: key, Value: convert(value)})
	}
	return out
}

func convert(v abnf.Value) abnf.Value {
	switch v := v.(type) {
	case *abnf.Context:
		return bindings(v)
	case []*abnf.Context:
		items := make([]abnf.Value, 0, len(v))
		for _, item := range v {
			items = append(items, bindings(item))
		}
		return items
	}
	return v
}

func parse(rule abnf.Rule, input string) error {
	if cli.Trace {
		rule = abnf.Trace(os.Stderr, rule)
	}
	var (
		ctx  *abnf.Context
		rest string
		err  error
	)
	if cli.Partial {
		ctx, rest, err = abnf.ParsePartial(rule, input)
	} else {
		ctx, err = abnf.Parse(rule, input)
	}
	if err != nil {
		return err
	}
	repr.Println(bindings(ctx))
	if cli.Partial {
		fmt.Printf("unparsed: %q\n", rest)
	}
	return nil
}
