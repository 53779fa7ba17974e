package abnf

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Value is any value bound in a Context: a raw matched substring, a
// transformed scalar, a list of per-iteration contexts produced by Repeat, or
// an ordered sub-context produced by Mapping.
type Value = any

// Keys beginning with the reserved prefix carry transient engine state
// between combinators and are stripped before a Context reaches the caller.
const reservedPrefix = "_"

const (
	matchKey    = reservedPrefix + "match"
	valueKey    = reservedPrefix + "value"
	unparsedKey = reservedPrefix + "unparsed"
)

// Context is the insertion-ordered mapping of names to captured values that
// is threaded through a parse. A successful Parse returns the Context with
// all reserved keys stripped; setting an existing key replaces its value but
// keeps the key's original position.
type Context struct {
	keys   []string
	values map[string]Value
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{values: map[string]Value{}}
}

// Set binds value under key, appending the key if it is new and keeping its
// existing position otherwise.
func (c *Context) Set(key string, value Value) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value bound under key, if any.
func (c *Context) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetString returns the value bound under key as a string, or "" if the key
// is unbound or its value is not a string.
func (c *Context) GetString(key string) string {
	if s, ok := c.values[key].(string); ok {
		return s
	}
	return ""
}

// Keys returns the bound keys in insertion order.
func (c *Context) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of bound keys.
func (c *Context) Len() int { return len(c.keys) }

// Matched returns the text matched by the most recently completed rule.
// It is transient parse state, only meaningful inside Assert predicates and
// Reference resolvers.
func (c *Context) Matched() string {
	s, _ := c.values[matchKey].(string)
	return s
}

// Value returns the capturable value of the most recently completed rule:
// its structured value if one is set, otherwise its matched text.
func (c *Context) Value() Value {
	if v, ok := c.values[valueKey]; ok && v != nil {
		return v
	}
	return c.Matched()
}

func (c *Context) unparsed() string {
	s, _ := c.values[unparsedKey].(string)
	return s
}

// setMatch records the outcome of a successful rule application. A nil value
// clears any structured value left over from a child rule.
func (c *Context) setMatch(match string, value Value, unparsed string) {
	c.Set(matchKey, match)
	if value == nil {
		c.delete(valueKey)
	} else {
		c.Set(valueKey, value)
	}
	c.Set(unparsedKey, unparsed)
}

func (c *Context) delete(key string) {
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	if i := slices.Index(c.keys, key); i >= 0 {
		c.keys = slices.Delete(c.keys, i, i+1)
	}
}

// clone returns an independent copy for a speculative branch. Cost is linear
// in the number of bound keys; see the isolation rules on Alternatives,
// Optional and Repeat.
func (c *Context) clone() *Context {
	return &Context{
		keys:   slices.Clone(c.keys),
		values: maps.Clone(c.values),
	}
}

// merge adopts the contents of an accepted branch.
func (c *Context) merge(branch *Context) {
	c.keys = branch.keys
	c.values = branch.values
}

// clean strips reserved keys, leaving only the caller-visible captures.
func (c *Context) clean() *Context {
	keys := c.keys[:0:0]
	for _, key := range c.keys {
		if strings.HasPrefix(key, reservedPrefix) {
			delete(c.values, key)
			continue
		}
		keys = append(keys, key)
	}
	c.keys = keys
	return c
}

func (c *Context) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range c.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %v", key, c.values[key])
	}
	sb.WriteByte('}')
	return sb.String()
}
