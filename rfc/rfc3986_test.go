package rfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanzz/abnf"
)

func TestURIFull(t *testing.T) {
	ctx, err := abnf.Parse(URI, "https://user:pw@example.com:8080/a/b?q=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https", ctx.GetString("scheme"))
	assert.Equal(t, "user:pw", ctx.GetString("userinfo"))
	assert.Equal(t, "example.com", ctx.GetString("host"))
	assert.Equal(t, "8080", ctx.GetString("port"))
	assert.Equal(t, "/a/b", ctx.GetString("path"))
	assert.Equal(t, "q=1", ctx.GetString("query"))
	assert.Equal(t, "frag", ctx.GetString("fragment"))
}

func TestURIMinimal(t *testing.T) {
	ctx, err := abnf.Parse(URI, "mailto:user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "mailto", ctx.GetString("scheme"))
	assert.Equal(t, "user@example.com", ctx.GetString("path"))
	_, ok := ctx.Get("host")
	assert.False(t, ok)
}

func TestURIPercentDecoding(t *testing.T) {
	ctx, err := abnf.Parse(URI, "http://example.com/a%20b?k=%2Fv")
	require.NoError(t, err)
	assert.Equal(t, "/a b", ctx.GetString("path"))
	assert.Equal(t, "k=/v", ctx.GetString("query"))
}

func TestURIEmptyAuthority(t *testing.T) {
	ctx, err := abnf.Parse(URI, "file:///etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, "file", ctx.GetString("scheme"))
	assert.Equal(t, "", ctx.GetString("host"))
	assert.Equal(t, "/etc/hosts", ctx.GetString("path"))
}

func TestURIHostForms(t *testing.T) {
	tests := []struct {
		uri  string
		host string
	}{
		{"http://192.168.0.1/", "192.168.0.1"},
		{"http://[::1]/", "[::1]"},
		{"http://[2001:db8::1]:8080/", "[2001:db8::1]"},
		{"http://[fe80::a:b:c:d]/", "[fe80::a:b:c:d]"},
		{"http://[v1.x:y]/", "[v1.x:y]"},
		// 256 is out of range for a dotted quad, so this host is a reg-name.
		{"http://256.1.1.1/", "256.1.1.1"},
	}
	for _, test := range tests {
		ctx, err := abnf.Parse(URI, test.uri)
		require.NoError(t, err, "uri %q", test.uri)
		assert.Equal(t, test.host, ctx.GetString("host"), "uri %q", test.uri)
	}
}

func TestURIRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"example.com/no-scheme",
		"1http://example.com/",
		"http://example.com/a b",
	} {
		_, err := abnf.Parse(URI, input)
		assert.True(t, abnf.IsNoMatch(err), "input %q", input)
	}
}

func TestRelativeRef(t *testing.T) {
	ctx, err := abnf.Parse(RelativeRef, "../up/one?x#y")
	require.NoError(t, err)
	assert.Equal(t, "../up/one", ctx.GetString("path"))
	assert.Equal(t, "x", ctx.GetString("query"))
	assert.Equal(t, "y", ctx.GetString("fragment"))
}

func TestURIReference(t *testing.T) {
	ctx, err := abnf.Parse(URIReference, "//example.com/p")
	require.NoError(t, err)
	assert.Equal(t, "example.com", ctx.GetString("host"))
	assert.Equal(t, "/p", ctx.GetString("path"))

	ctx, err = abnf.Parse(URIReference, "urn:isbn:0451450523")
	require.NoError(t, err)
	assert.Equal(t, "urn", ctx.GetString("scheme"))
	assert.Equal(t, "isbn:0451450523", ctx.GetString("path"))
}

func TestDecOctetBounds(t *testing.T) {
	ok := []string{"0", "9", "10", "99", "100", "199", "249", "255"}
	for _, input := range ok {
		_, err := abnf.Parse(decOctet, input)
		assert.NoError(t, err, "octet %q", input)
	}
	bad := []string{"256", "300", "999", "00", "01", "007"}
	for _, input := range bad {
		_, err := abnf.Parse(decOctet, input)
		assert.True(t, abnf.IsNoMatch(err), "octet %q", input)
	}
}
