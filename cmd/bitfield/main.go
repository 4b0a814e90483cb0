// The bitfield tool packs textual field values into bit fields and back.
//
// Usage:
//
//	bitfield encode -layout b,u7,u24 -hex true 1 8192
//	bitfield decode -layout b,u7,u24 -hex -input header.hex
//
// The layout may also be given by the BITFIELD_LAYOUT environment variable.
// See package internal/layout for the layout syntax.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pchchv/bitpack/internal/layout"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bitfield: ")
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bitfield"
	app.Usage = "Pack field values into bit fields and unpack them"
	app.Description = `Fields are laid out most significant bit first with no padding between
them. The final octet is padded with zero bits.`
	app.Commands = []*cli.Command{
		&cmdEncode,
		&cmdDecode,
		&cmdDocs,
	}
	return app
}

var layoutFlag = &cli.StringFlag{
	Name:     "layout",
	Aliases:  []string{"l"},
	Usage:    "Comma-separated field layout, e.g. b,u3,s12,x4:8,a2",
	EnvVars:  []string{"BITFIELD_LAYOUT"},
	Required: true,
}

var hexFlag = &cli.BoolFlag{
	Name:  "hex",
	Usage: "Use hexadecimal text instead of raw octets",
}

func parseLayout(c *cli.Context) (*layout.Layout, error) {
	return layout.Parse(c.String("layout"))
}
