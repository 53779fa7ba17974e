package abnf

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalConsumesOnMatch(t *testing.T) {
	rule := Capture(Optional(Literal("yes")), "m").Raw()

	ctx, rest, err := ParsePartial(rule, "yes!")
	require.NoError(t, err)
	assert.Equal(t, "yes", ctx.GetString("m"))
	assert.Equal(t, "!", rest)
}

func TestOptionalDefaultOnMiss(t *testing.T) {
	rule := Capture(Optional(Literal("no")).Default("D"), "m").Raw()

	ctx, rest, err := ParsePartial(rule, "yes")
	require.NoError(t, err)
	assert.Equal(t, "D", ctx.GetString("m"))
	assert.Equal(t, "yes", rest)
}

func TestOptionalDiscardsFailedBranchCaptures(t *testing.T) {
	inner := Sequence(Capture(Literal("a"), "a"), Literal("b"))

	ctx, rest, err := ParsePartial(Optional(inner), "ax")
	require.NoError(t, err)
	_, bound := ctx.Get("a")
	assert.False(t, bound)
	assert.Equal(t, "ax", rest)
}

func TestRepeatBounds(t *testing.T) {
	rule := Capture(Repeat(Chars(digits)).Bounds(2, 4), "m").Raw()

	ctx, rest, err := ParsePartial(rule, "123456")
	require.NoError(t, err)
	assert.Equal(t, "1234", ctx.GetString("m"))
	assert.Equal(t, "56", rest)
}

func TestRepeatUnderMinFails(t *testing.T) {
	rule := Repeat(Chars(digits)).Bounds(3, 4)

	_, err := Parse(rule, "12")
	assert.True(t, IsNoMatch(err))
}

func TestRepeatDelimiter(t *testing.T) {
	rule := Capture(Repeat(Chars(digits).AtLeast(1)).Min(1).Delimiter(Literal(",")), "m").Raw()

	ctx, err := Parse(rule, "1,22,333")
	require.NoError(t, err)
	assert.Equal(t, "1,22,333", ctx.GetString("m"))

	// A trailing delimiter is not consumed by the repetition.
	_, rest, err := ParsePartial(rule, "1,22,")
	require.NoError(t, err)
	assert.Equal(t, ",", rest)
}

func TestRepeatCapturesIterationContexts(t *testing.T) {
	item := Sequence(Capture(Chars(digits).AtLeast(1), "n"), Literal(";"))
	rule := Capture(Repeat(item), "items")

	ctx, err := Parse(rule, "1;2;3;")
	require.NoError(t, err)

	items, ok := ctx.Get("items")
	require.True(t, ok)
	contexts, ok := items.([]*Context)
	require.True(t, ok)
	require.Len(t, contexts, 3)
	assert.Equal(t, "1", contexts[0].GetString("n"))
	assert.Equal(t, "3", contexts[2].GetString("n"))
}

func TestRepeatZeroLengthIterationPanics(t *testing.T) {
	rule := Repeat(Optional(Literal("z")))

	assertGrammarPanic(t, func() {
		_, _ = Parse(rule, "aaa")
	})
}

func TestMappingCollectsOrderedTable(t *testing.T) {
	pair := Sequence(
		Capture(Chars(NewCharSpan('a', 'z')).AtLeast(1), "key"),
		Literal("="),
		Capture(Chars(digits).AtLeast(1), "value"),
	)
	rule := Capture(Mapping(pair).Delimiter(Literal(",")), "params")

	ctx, err := Parse(rule, "host=1,port=2")
	require.NoError(t, err)

	params, ok := ctx.Get("params")
	require.True(t, ok)
	table, ok := params.(*Context)
	require.True(t, ok)
	assert.Equal(t, []string{"host", "port"}, table.Keys())
	assert.Equal(t, "1", table.GetString("host"))
	assert.Equal(t, "2", table.GetString("port"))
}

func TestMappingDuplicateKeyKeepsFirstPosition(t *testing.T) {
	pair := Sequence(
		Capture(Chars(NewCharSpan('a', 'z')).AtLeast(1), "key"),
		Literal("="),
		Capture(Chars(digits).AtLeast(1), "value"),
	)
	rule := Capture(Mapping(pair).Delimiter(Literal(",")), "params")

	ctx, err := Parse(rule, "a=1,b=2,a=3")
	require.NoError(t, err)

	params, ok := ctx.Get("params")
	require.True(t, ok)
	table, ok := params.(*Context)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, table.Keys())
	assert.Equal(t, "3", table.GetString("a"))
	assert.Equal(t, "2", table.GetString("b"))
}

func TestMappingCustomNames(t *testing.T) {
	pair := Sequence(
		Capture(Chars(NewCharSpan('a', 'z')).AtLeast(1), "field"),
		Literal(":"),
		Capture(Chars(digits).AtLeast(1), "data"),
	)
	rule := Capture(Mapping(pair).Names("field", "data"), "m")

	ctx, err := Parse(rule, "a:1")
	require.NoError(t, err)
	table, _ := ctx.Get("m")
	require.IsType(t, (*Context)(nil), table)
	assert.Equal(t, "1", table.(*Context).GetString("a"))
}

func TestMappingMissingCapturePanics(t *testing.T) {
	rule := Mapping(Chars(digits).AtLeast(1))

	assertGrammarPanic(t, func() {
		_, _ = Parse(rule, "123")
	})
}

func TestCaptureStructuredValueByDefault(t *testing.T) {
	rule := Capture(Repeat(Capture(Chars(digits), "d")), "list")

	ctx, err := Parse(rule, "12")
	require.NoError(t, err)
	list, ok := ctx.Get("list")
	require.True(t, ok)
	contexts, ok := list.([]*Context)
	require.True(t, ok)
	assert.Len(t, contexts, 2)
}

func TestCaptureRawFlattensRepeat(t *testing.T) {
	rule := Capture(Repeat(Capture(Chars(digits), "d")), "list").Raw()

	ctx, err := Parse(rule, "12")
	require.NoError(t, err)
	assert.Equal(t, "12", ctx.GetString("list"))
}

func TestCaptureApplyTransformsBoundValue(t *testing.T) {
	rule := Capture(Chars(digits).AtLeast(1), "n").Apply(func(v Value) Value {
		n, _ := strconv.Atoi(v.(string))
		return n
	})

	ctx, err := Parse(rule, "42")
	require.NoError(t, err)
	n, _ := ctx.Get("n")
	assert.Equal(t, 42, n)
}

func TestCaptureReservedNamePanics(t *testing.T) {
	assert.Panics(t, func() {
		Capture(Literal("x"), "_match")
	})
}

func TestTransformRewritesMatchedText(t *testing.T) {
	// Percent-decoding: the decoded character is what the enclosing sequence
	// concatenates.
	hexdig := NewCharRange("0123456789ABCDEFabcdef")
	pctEncoded := Sequence(
		Ignore(Literal("%")),
		Transform(Chars(hexdig).Exactly(2), func(v Value) Value {
			n, _ := strconv.ParseUint(v.(string), 16, 32)
			return string(rune(n))
		}),
	)
	rule := Capture(Repeat(Alternatives(pctEncoded, Chars(NewCharSpan('a', 'z')).AtLeast(1))), "s").Raw()

	ctx, err := Parse(rule, "gr%65%65n")
	require.NoError(t, err)
	assert.Equal(t, "green", ctx.GetString("s"))
}

func TestIgnoreDropsText(t *testing.T) {
	rule := Capture(Sequence(Ignore(Literal("$")), Chars(digits).AtLeast(1)), "amount").Raw()

	ctx, err := Parse(rule, "$100")
	require.NoError(t, err)
	assert.Equal(t, "100", ctx.GetString("amount"))
}

func TestCaseFoldTransformsText(t *testing.T) {
	rule := Capture(CaseFold(LiteralCS("MiXeD")), "m").Raw()

	ctx, err := Parse(rule, "MiXeD")
	require.NoError(t, err)
	assert.Equal(t, "mixed", ctx.GetString("m"))
}

func TestAssertGatesMatch(t *testing.T) {
	decOctet := Assert(Chars(digits).Bounds(1, 3), func(ctx *Context) bool {
		n, err := strconv.Atoi(ctx.Matched())
		return err == nil && n <= 255
	})

	_, err := Parse(decOctet, "255")
	assert.NoError(t, err)

	_, err = Parse(decOctet, "256")
	assert.True(t, IsNoMatch(err))
}

func TestAssertFailsAtOriginalPosition(t *testing.T) {
	gated := Assert(Chars(digits).Bounds(1, 3), func(ctx *Context) bool {
		return false
	})

	_, err := Parse(gated, "123")
	require.Error(t, err)

	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "123", nm.Unparsed)
}

func TestAssertDiscardsCapturesOnFailure(t *testing.T) {
	inner := Capture(Chars(digits).AtLeast(1), "n")
	rule := Sequence(
		Alternatives(
			Assert(inner, func(*Context) bool { return false }),
			Chars(digits).AtLeast(1),
		),
	)

	ctx, err := Parse(rule, "123")
	require.NoError(t, err)
	_, bound := ctx.Get("n")
	assert.False(t, bound)
}

func TestFullMatchRejectsLeftover(t *testing.T) {
	_, err := Parse(Literal("ab"), "abc")
	require.Error(t, err)

	var nm *NoMatchError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "c", nm.Unparsed)
}

func TestPartialReportsLeftover(t *testing.T) {
	_, rest, err := ParsePartial(Literal("ab"), "abc")
	require.NoError(t, err)
	assert.Equal(t, "c", rest)
}
