package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/octet"
)

var cmdDecode = cli.Command{
	Name:  "decode",
	Usage: "Decode records of field values, one per line",
	Description: `Each record starts on an octet boundary. Records are decoded until the
input ends or --count records have been decoded.`,
	Action: runDecode,
	Flags: []cli.Flag{
		layoutFlag,
		hexFlag,
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Path to read from instead of stdin",
		},
		&cli.Int64Flag{
			Name:  "offset",
			Usage: "Octet offset of the first record in the input file",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Maximum number of records to decode; 0 decodes until end of input",
		},
	},
}

func runDecode(c *cli.Context) error {
	l, err := parseLayout(c)
	if err != nil {
		return err
	}

	var in io.Reader = c.App.Reader
	if path := c.String("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		sr, err := octet.NewSeekReader(f, c.Int64("offset"))
		if err != nil {
			f.Close()
			return err
		}
		defer sr.Close()
		in = sr
	} else if c.Int64("offset") != 0 {
		return errors.New("decode: --offset requires --input")
	}

	if c.Bool("hex") {
		in = hex.NewDecoder(hexText{r: bufio.NewReader(in)})
	}

	r := bitpack.NewReader(in)
	limit := c.Int("count")
	for n := 0; limit == 0 || n < limit; n++ {
		values, err := l.Decode(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}
		if _, err := r.Align(1); err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}
		fmt.Fprintln(c.App.Writer, strings.Join(values, ","))
	}
	return nil
}

// hexText drops the white space from hexadecimal text.
type hexText struct {
	r io.ByteReader
}

func (h hexText) Read(p []byte) (n int, err error) {
	for n < len(p) {
		b, err := h.r.ReadByte()
		if err != nil {
			return n, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		p[n] = b
		n++
	}
	return n, nil
}
