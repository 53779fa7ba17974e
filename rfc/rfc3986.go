package rfc

import (
	"strconv"

	"github.com/lanzz/abnf"
)

// Character sets from RFC 3986 section 2.
var (
	UnreservedSet = AlphaSet.Union(DigitSet).Union(abnf.NewCharRange("-._~"))
	GenDelimsSet  = abnf.NewCharRange(":/?#[]@")
	SubDelimsSet  = abnf.NewCharRange("!$&'()*+,;=")
	ReservedSet   = GenDelimsSet.Union(SubDelimsSet)
)

// pctEncoded matches a percent-encoded octet and yields the decoded
// character, so captured components come out decoded.
var pctEncoded = seq(
	abnf.Ignore(lit("%")),
	abnf.Transform(HexDig.Exactly(2), func(v abnf.Value) abnf.Value {
		n, _ := strconv.ParseUint(v.(string), 16, 32)
		return string(rune(n))
	}),
)

// decOctet matches one dotted-quad component, 0 to 255 with no leading zero.
var decOctet = abnf.Assert(Digit.Bounds(1, 3), func(ctx *abnf.Context) bool {
	s := ctx.Matched()
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n <= 255
})

var (
	scheme = capture(seq(Alpha, abnf.Chars(AlphaSet.Union(DigitSet).Union(abnf.NewCharRange("+-."))).AtLeast(0)), "scheme")

	userinfo = capture(rep(alt(
		abnf.Chars(UnreservedSet.Union(SubDelimsSet)).AtLeast(1),
		pctEncoded,
		lit(":"),
	)), "userinfo").Raw()

	ipv4Address = seq(decOctet, lit("."), decOctet, lit("."), decOctet, lit("."), decOctet)

	h16      = HexDig.Bounds(1, 4)
	h16Colon = seq(h16, lit(":"))
	ls32     = alt(seq(h16, lit(":"), h16), ipv4Address)

	// ipv6Address follows RFC 3986 section 3.2.2 with the optional prefixes
	// phrased as h16 (":" h16)* so a greedy h16Colon run cannot swallow the
	// "::" separator.
	ipv6Address = alt(
		seq(rep(h16Colon).Exactly(6), ls32),
		seq(lit("::"), rep(h16Colon).Exactly(5), ls32),
		seq(ipv6Prefix(0), lit("::"), rep(h16Colon).Exactly(4), ls32),
		seq(ipv6Prefix(1), lit("::"), rep(h16Colon).Exactly(3), ls32),
		seq(ipv6Prefix(2), lit("::"), rep(h16Colon).Exactly(2), ls32),
		seq(ipv6Prefix(3), lit("::"), h16Colon, ls32),
		seq(ipv6Prefix(4), lit("::"), ls32),
		seq(ipv6Prefix(5), lit("::"), h16),
		seq(ipv6Prefix(6), lit("::")),
	)

	ipvFuture = seq(
		lit("v"), HexDig.AtLeast(1), lit("."),
		abnf.Chars(UnreservedSet.Union(SubDelimsSet).Union(abnf.NewCharRange(":"))).AtLeast(1),
	)

	ipLiteral = seq(lit("["), alt(ipv6Address, ipvFuture), lit("]"))

	regName = rep(alt(
		abnf.Chars(UnreservedSet.Union(SubDelimsSet)).AtLeast(1),
		pctEncoded,
	))

	host      = capture(alt(ipLiteral, ipv4Address, regName), "host").Raw()
	port      = capture(Digit.AtLeast(0), "port")
	authority = seq(opt(seq(userinfo, lit("@"))), host, opt(seq(lit(":"), port)))

	pchar = alt(
		abnf.Chars(UnreservedSet.Union(SubDelimsSet)).AtLeast(1),
		pctEncoded,
		abnf.Chars(abnf.NewCharRange(":@")).AtLeast(1),
	)
	segment   = rep(pchar)
	segmentNZ = rep(pchar).Min(1)

	pathAbempty  = capture(rep(seq(lit("/"), segment)), "path").Raw()
	pathAbsolute = capture(seq(lit("/"), opt(seq(segmentNZ, rep(seq(lit("/"), segment))))), "path").Raw()
	pathRootless = capture(seq(segmentNZ, rep(seq(lit("/"), segment))), "path").Raw()
	pathEmpty    = capture(lit(""), "path")

	hierPart = alt(
		seq(lit("//"), authority, pathAbempty),
		pathAbsolute,
		pathRootless,
		pathEmpty,
	)

	query    = capture(rep(alt(pchar, abnf.Chars(abnf.NewCharRange("/?")).AtLeast(1))), "query").Raw()
	fragment = capture(rep(alt(pchar, abnf.Chars(abnf.NewCharRange("/?")).AtLeast(1))), "fragment").Raw()
)

// URI, AbsoluteURI, RelativeRef and URIReference are the principal rules of
// RFC 3986. Successful parses capture "scheme", "userinfo", "host", "port",
// "path", "query" and "fragment" as applicable, with percent-encoded octets
// decoded.
var (
	URI abnf.Rule = seq(
		scheme, lit(":"), hierPart,
		opt(seq(lit("?"), query)),
		opt(seq(lit("#"), fragment)),
	)

	AbsoluteURI abnf.Rule = seq(scheme, lit(":"), hierPart, opt(seq(lit("?"), query)))

	relativePart = alt(
		seq(lit("//"), authority, pathAbempty),
		pathAbsolute,
		capture(seq(segmentNZNC, rep(seq(lit("/"), segment))), "path").Raw(),
		pathEmpty,
	)

	RelativeRef abnf.Rule = seq(relativePart, opt(seq(lit("?"), query)), opt(seq(lit("#"), fragment)))

	URIReference abnf.Rule = alt(URI, RelativeRef)
)

// segmentNZNC is a non-empty segment without any colon, distinguishing a
// relative path from a scheme.
var segmentNZNC = rep(alt(
	abnf.Chars(UnreservedSet.Union(SubDelimsSet)).AtLeast(1),
	pctEncoded,
	lit("@"),
)).Min(1)

// ipv6Prefix matches up to n+1 leading h16 groups separated by single
// colons, leaving a trailing "::" unconsumed.
func ipv6Prefix(n int) abnf.Rule {
	return opt(seq(h16, rep(seq(lit(":"), h16)).Max(n)))
}
