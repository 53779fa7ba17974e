// Package main is a command-line front end for the abnf engine: it parses a
// value against one of the bundled RFC grammars and dumps the captured
// context.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lanzz/abnf/rfc"
)

var (
	version string = "dev"
	cli     struct {
		Version kong.VersionFlag
		Trace   bool `help:"Log every rule attempt to stderr."`
		Partial bool `help:"Allow trailing unparsed input and report it."`

		URI     uriCmd     `cmd:"" help:"Parse an RFC 3986 URI reference."`
		Langtag langtagCmd `cmd:"" help:"Parse an RFC 5646 language tag."`
		Request requestCmd `cmd:"" help:"Parse an RFC 7230 request line."`
		Status  statusCmd  `cmd:"" help:"Parse an RFC 7230 status line."`
		Message messageCmd `cmd:"" help:"Parse an RFC 7230 HTTP message from a file or stdin."`
	}
)

type uriCmd struct {
	Input string `arg:"" help:"URI reference to parse."`
}

func (c *uriCmd) Run() error { return parse(rfc.URIReference, c.Input) }

type langtagCmd struct {
	Input string `arg:"" help:"Language tag to parse."`
}

func (c *langtagCmd) Run() error { return parse(rfc.LanguageTag, c.Input) }

type requestCmd struct {
	Input string `arg:"" help:"Request line to parse, without the trailing CRLF."`
}

func (c *requestCmd) Run() error { return parse(rfc.RequestLine, c.Input+"\r\n") }

type statusCmd struct {
	Input string `arg:"" help:"Status line to parse, without the trailing CRLF."`
}

func (c *statusCmd) Run() error { return parse(rfc.StatusLine, c.Input+"\r\n") }

type messageCmd struct {
	File string `arg:"" default:"-" type:"existingfile" help:"Message file (read from stdin if omitted)."`
}

func (c *messageCmd) Run() error {
	r := os.Stdin
	if c.File != "-" {
		var err error
		r, err = os.Open(c.File)
		if err != nil {
			return err
		}
		defer r.Close()
	}
	input, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return parse(rfc.HTTPMessage, string(input))
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Description(`Parse values against the bundled RFC grammars.`),
		kong.Vars{"version": version},
	)
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
