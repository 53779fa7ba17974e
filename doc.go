// Package abnf implements a combinator engine for building and running
// ABNF-style grammars against strings.
//
// A grammar is a tree of immutable Rule values composed from a small algebra:
// leaf matchers (Literal, RegExp, Chars), structural combinators (Sequence,
// Alternatives, Reference) and wrappers (Optional, Repeat, Mapping, Capture,
// Transform, Assert, FullMatch). Matching is PEG-style recursive descent with
// ordered choice: the first alternative that succeeds wins, and speculative
// branches are evaluated against isolated copies of the parse context so a
// failed branch leaves no residue.
//
// Captured values are collected into an insertion-ordered Context:
//
//	digit := abnf.Chars(abnf.NewCharRange("0123456789"))
//	number := abnf.Capture(digit.Bounds(1, abnf.Unbounded), "number")
//	ctx, err := abnf.Parse(number, "42")
//	// ctx.GetString("number") == "42"
//
// A failed parse returns a *NoMatchError identifying the rejecting rule and
// the exact unparsed remainder. Grammar construction defects that can never
// be recovered from (a repetition whose body matches zero characters, an
// alternative that unreachably shadows later ones) panic with a
// *GrammarError rather than masquerading as a parse failure.
//
// Rules are immutable once built and safe for concurrent use; each call to
// Parse allocates a fresh Context.
package abnf
