// Package rfc declares grammars for a number of RFC-defined formats on top
// of the abnf combinator engine: the RFC 5234 core rules, RFC 3986 URIs,
// RFC 5646/4647 language tags and ranges, and the RFC 7230 HTTP/1.1 message
// syntax.
//
// The grammars are pure clients of the engine's construction API; parse them
// with abnf.Parse or abnf.ParsePartial:
//
//	ctx, err := abnf.Parse(rfc.URI, "https://example.com/a?q=1")
//	// ctx.GetString("scheme") == "https", ctx.GetString("host") == "example.com"
package rfc

import (
	"github.com/lanzz/abnf"
)

// Core character sets from RFC 5234 appendix B.1.
var (
	AlphaSet  = abnf.NewCharSpan('a', 'z').Union(abnf.NewCharSpan('A', 'Z'))
	BitSet    = abnf.NewCharRange("01")
	CharSet   = abnf.NewCharSpan(0x01, 0x7F)
	CtlSet    = abnf.NewCharSpan(0x00, 0x1F).Union(abnf.NewCharRange("\x7f"))
	DigitSet  = abnf.NewCharSpan('0', '9')
	HexDigSet = DigitSet.Union(abnf.NewCharRange("abcdefABCDEF"))
	WSPSet    = abnf.NewCharRange(" \t")
	VCharSet  = abnf.NewCharSpan('!', '~')
	OctetSet  = abnf.NewCharSpan(0x00, 0xFF)
)

// Core rules from RFC 5234 appendix B.1.
var (
	Alpha  = abnf.Chars(AlphaSet)
	Bit    = abnf.Chars(BitSet)
	Char   = abnf.Chars(CharSet)
	CR     = abnf.LiteralCS("\r")
	LF     = abnf.LiteralCS("\n")
	CRLF   = abnf.LiteralCS("\r\n")
	Ctl    = abnf.Chars(CtlSet)
	Digit  = abnf.Chars(DigitSet)
	DQuote = abnf.LiteralCS(`"`)
	HexDig = abnf.Chars(HexDigSet)
	HTab   = abnf.LiteralCS("\t")
	SP     = abnf.LiteralCS(" ")
	WSP    = abnf.Chars(WSPSet)
	VChar  = abnf.Chars(VCharSet)
	Octet  = abnf.Chars(OctetSet)

	// LWSP permits lines containing only white space; RFC 5234 advises
	// against it in mail headers.
	LWSP abnf.Rule = abnf.Repeat(abnf.Alternatives(
		WSP,
		abnf.Sequence(CRLF, WSP),
	))
)

// Shorthand constructors keeping the grammar declarations readable.

func lit(s string) abnf.Rule { return abnf.Literal(s) }

func seq(rules ...abnf.Rule) abnf.Rule { return abnf.Sequence(rules...) }

func alt(rules ...abnf.Rule) abnf.Rule { return abnf.Alternatives(rules...) }

func opt(rule abnf.Rule) abnf.Rule { return abnf.Optional(rule) }

func rep(rule abnf.Rule) *abnf.RepeatRule { return abnf.Repeat(rule) }

func capture(rule abnf.Rule, name string) *abnf.CaptureRule {
	return abnf.Capture(rule, name)
}
