package rfc

import (
	"strings"

	"github.com/lanzz/abnf"
)

// Grandfathered tags registered during the RFC 3066 era. The irregular ones
// do not match the langtag production at all; the regular ones match it but
// their subtags carry registered rather than structural meaning. Tags that
// prefix other entries are listed longest first so ordered literal matching
// cannot commit to the shorter form.
var (
	irregularTags = []string{
		"en-GB-oed",
		"i-ami", "i-bnn", "i-default", "i-enochian", "i-hak", "i-klingon",
		"i-lux", "i-mingo", "i-navajo", "i-pwn", "i-tao", "i-tay", "i-tsu",
		"sgn-BE-FR", "sgn-BE-NL", "sgn-CH-DE",
	}
	regularTags = []string{
		"art-lojban", "cel-gaulish", "no-bok", "no-nyn", "zh-guoyu",
		"zh-hakka", "zh-min-nan", "zh-min", "zh-xiang",
	}
)

var (
	alphanumSet = AlphaSet.Union(DigitSet)
	alphanum    = abnf.Chars(alphanumSet)
)

// subtag matches a complete alphanumeric run and then gates it on ok. A
// naive translation of the RFC productions (say, exactly three letters for
// an extlang) would let a greedy character run split a longer subtag in two;
// matching the whole run first keeps subtag boundaries intact.
func subtag(ok func(string) bool) abnf.Rule {
	return abnf.Assert(alphanum.AtLeast(1), func(ctx *abnf.Context) bool {
		return ok(ctx.Matched())
	})
}

func allAlpha(s string) bool {
	for _, c := range s {
		if !AlphaSet.Contains(c) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, c := range s {
		if !DigitSet.Contains(c) {
			return false
		}
	}
	return true
}

var (
	// extlang: up to three selected ISO 639 codes.
	extlangSubtag = subtag(func(s string) bool { return len(s) == 3 && allAlpha(s) })
	extlang       = seq(extlangSubtag, rep(seq(lit("-"), extlangSubtag)).Max(2))

	language = capture(alt(
		seq(
			subtag(func(s string) bool { return len(s) >= 2 && len(s) <= 3 && allAlpha(s) }),
			opt(seq(lit("-"), capture(extlang, "extlang").Raw())),
		),
		subtag(func(s string) bool { return len(s) >= 4 && len(s) <= 8 && allAlpha(s) }),
	), "language").Raw()

	script = capture(subtag(func(s string) bool { return len(s) == 4 && allAlpha(s) }), "script")

	region = capture(subtag(func(s string) bool {
		return (len(s) == 2 && allAlpha(s)) || (len(s) == 3 && allDigits(s))
	}), "region")

	variant = subtag(func(s string) bool {
		if len(s) >= 5 && len(s) <= 8 {
			return true
		}
		return len(s) == 4 && DigitSet.Contains(rune(s[0]))
	})

	// Single alphanumerics; "x" is reserved for private use.
	singleton = subtag(func(s string) bool {
		return len(s) == 1 && !strings.EqualFold(s, "x")
	})

	extensionSubtag = subtag(func(s string) bool { return len(s) >= 2 && len(s) <= 8 })
	extension       = seq(singleton, rep(seq(lit("-"), extensionSubtag)).Min(1))

	privateUseSubtag = subtag(func(s string) bool { return len(s) >= 1 && len(s) <= 8 })

	privateUse = seq(
		subtag(func(s string) bool { return strings.EqualFold(s, "x") }),
		rep(seq(lit("-"), privateUseSubtag)).Min(1),
	)

	langtag = seq(
		language,
		opt(seq(lit("-"), script)),
		opt(seq(lit("-"), region)),
		capture(rep(seq(lit("-"), variant)), "variants").Raw(),
		capture(rep(seq(lit("-"), extension)), "extensions").Raw(),
		opt(seq(lit("-"), capture(privateUse, "privateuse").Raw())),
	)

	grandfathered = capture(alt(
		abnf.Literal(irregularTags...),
		abnf.Literal(regularTags...),
	), "grandfathered").Raw()
)

// LanguageTag is the RFC 5646 Language-Tag production. Grandfathered tags
// are tried before the langtag production: several of them are langtag
// prefixes and ordered choice would otherwise commit to a partial match.
// Successful parses capture "language", "script", "region", "variants",
// "extensions", "privateuse" or "grandfathered" as applicable.
var LanguageTag abnf.Rule = alt(
	grandfathered,
	langtag,
	capture(privateUse, "privateuse").Raw(),
)

// LanguageRange and ExtendedLanguageRange are the RFC 4647 matching
// productions.
var (
	LanguageRange abnf.Rule = alt(
		seq(Alpha.Bounds(1, 8), rep(seq(lit("-"), alphanum.Bounds(1, 8)))),
		lit("*"),
	)

	ExtendedLanguageRange abnf.Rule = seq(
		alt(Alpha.Bounds(1, 8), lit("*")),
		rep(seq(lit("-"), alt(alphanum.Bounds(1, 8), lit("*")))),
	)
)
