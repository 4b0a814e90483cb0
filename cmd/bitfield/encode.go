package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/internal/hashutil/crc16"
	"github.com/pchchv/bitpack/internal/hashutil/crc8"
	"github.com/pchchv/bitpack/octet"
)

var cmdEncode = cli.Command{
	Name:      "encode",
	Usage:     "Encode field values",
	ArgsUsage: "<value>...",
	Action:    runEncode,
	Flags: []cli.Flag{
		layoutFlag,
		hexFlag,
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path to output to instead of stdout (will overwrite if exists)",
		},
		&cli.BoolFlag{
			Name:  "crc",
			Usage: "Print the CRC-8 and CRC-16 of the encoded octets to stderr",
		},
	},
}

func runEncode(c *cli.Context) error {
	l, err := parseLayout(c)
	if err != nil {
		return err
	}

	var out io.Writer = c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	dst := out
	if c.Bool("hex") {
		dst = hex.NewEncoder(out)
	}

	h8, h16 := crc8.NewATM(), crc16.NewIBM()
	sink := octet.NewHashWriter(bufio.NewWriter(dst), h8)
	w := bitpack.NewByteWriter(octet.NewHashWriter(sink, h16))
	if err := l.Encode(w, c.Args().Slice()); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if c.Bool("hex") {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}

	if c.Bool("crc") {
		fmt.Fprintf(c.App.ErrWriter, "octets=%d crc8=%02x crc16=%04x\n", w.Count(), h8.Sum8(), h16.Sum16())
	}
	return nil
}
