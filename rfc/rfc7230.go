package rfc

import (
	"github.com/lanzz/abnf"
)

// Character sets from RFC 7230 section 3.2.
var (
	TCharSet   = abnf.NewCharRange("!#$%&'*+-.^_`|~").Union(DigitSet).Union(AlphaSet)
	ObsTextSet = abnf.NewCharSpan(0x80, 0xFF)
	QDTextSet  = abnf.NewCharRange("\t !").
			Union(abnf.NewCharSpan('#', '[')).
			Union(abnf.NewCharSpan(']', '~')).
			Union(ObsTextSet)
	CTextSet = abnf.NewCharRange("\t ").
			Union(abnf.NewCharSpan('!', '\'')).
			Union(abnf.NewCharSpan('*', '[')).
			Union(abnf.NewCharSpan(']', '~')).
			Union(ObsTextSet)
)

// Whitespace rules: optional, required and "bad" (allowed only for
// compatibility).
var (
	OWS abnf.Rule = abnf.Chars(WSPSet).AtLeast(0)
	RWS abnf.Rule = abnf.Chars(WSPSet).AtLeast(1)
	BWS           = OWS
)

// Token and quoted-string, shared by most header field values.
var (
	Token abnf.Rule = abnf.Chars(TCharSet).AtLeast(1)

	qdText     = abnf.Chars(QDTextSet)
	quotedPair = seq(lit(`\`), abnf.Chars(WSPSet.Union(VCharSet).Union(ObsTextSet)))

	QuotedString abnf.Rule = seq(DQuote, rep(alt(qdText.AtLeast(1), quotedPair)), DQuote)
)

// Comment is the recursive ctext production: comments nest through an
// explicit reference, resolved on every invocation. Assigned in init to
// break the initialization cycle the self-reference would otherwise form.
var Comment abnf.Rule

func init() {
	Comment = seq(
		lit("("),
		rep(alt(
			abnf.Chars(CTextSet).AtLeast(1),
			quotedPair,
			abnf.Reference(func(*abnf.Context) abnf.Rule { return Comment }),
		)),
		lit(")"),
	)
}

// Request-line and status-line components.
var (
	method        = capture(Token, "method")
	absolutePath  = rep(seq(lit("/"), segment)).Min(1)
	originForm    = seq(capture(absolutePath, "path").Raw(), opt(seq(lit("?"), query)))
	// authority-form goes last: an authority can match zero characters, so
	// anything before it must get its chance first.
	requestTarget = capture(alt(originForm, AbsoluteURI, lit("*"), authority), "target").Raw()

	httpVersion = capture(seq(abnf.LiteralCS("HTTP"), lit("/"), Digit, lit("."), Digit), "version").Raw()

	statusCode   = capture(Digit.Exactly(3), "status")
	reasonPhrase = capture(abnf.Chars(WSPSet.Union(VCharSet).Union(ObsTextSet)).AtLeast(0), "reason")
)

// RequestLine and StatusLine per RFC 7230 section 3.1, including the
// terminating CRLF. RequestLine captures "method", "target" and "version";
// StatusLine captures "version", "status" and "reason".
var (
	RequestLine abnf.Rule = seq(method, SP, requestTarget, SP, httpVersion, CRLF)
	StatusLine  abnf.Rule = seq(httpVersion, SP, statusCode, SP, reasonPhrase, CRLF)
)

// Header fields. Field names are case-insensitive and fold to lower case;
// field values keep leading and trailing optional whitespace out of the
// capture.
var (
	fieldName  = capture(abnf.CaseFold(Token), "key").Raw()
	fieldVChar = abnf.Chars(VCharSet.Union(ObsTextSet))

	fieldContent = rep(fieldVChar.AtLeast(1)).Min(1).Delimiter(abnf.Chars(WSPSet).AtLeast(1))
	obsFold      = seq(CRLF, abnf.Chars(WSPSet).AtLeast(1))
	fieldValue   = capture(rep(alt(fieldContent, obsFold)), "value").Raw()

	// HeaderField matches a single "Name: value" field without the CRLF.
	HeaderField abnf.Rule = seq(fieldName, lit(":"), abnf.Ignore(OWS), fieldValue, abnf.Ignore(OWS))

	// headerTable collapses the header block into an ordered name-to-value
	// mapping. A repeated field name keeps its first position and its last
	// value.
	headerTable = capture(abnf.Mapping(seq(HeaderField, abnf.Ignore(CRLF))), "headers")
)

// HTTPMessage is the RFC 7230 HTTP-message production: a start line, a
// header block captured as the ordered mapping "headers", and the remainder
// captured as "body".
var HTTPMessage abnf.Rule = seq(
	alt(RequestLine, StatusLine),
	headerTable,
	CRLF,
	capture(abnf.AnyChar().AtLeast(0), "body").Raw(),
)

// Host is the RFC 7230 Host header value: a URI host with an optional port.
var Host abnf.Rule = seq(host, opt(seq(lit(":"), port)))

// Connection is the RFC 7230 Connection header value: one or more
// connection options, each captured into the iteration list "options".
var Connection abnf.Rule = capture(
	abnf.Repeat(capture(abnf.CaseFold(Token), "option").Raw()).Min(1).
		Delimiter(seq(OWS, lit(","), OWS)),
	"options",
)

// ContentLength is the RFC 7230 Content-Length header value.
var ContentLength abnf.Rule = capture(Digit.AtLeast(1), "length")
