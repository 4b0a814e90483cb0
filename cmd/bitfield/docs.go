package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pchchv/bitpack/internal/layout"
)

var cmdDocs = cli.Command{
	Name:  "docs",
	Usage: "Print the bitfield manual and the layout syntax",
	Description: `The manual is markdown unless --man is given. Either form ends with a
LAYOUT SYNTAX section listing every field form.`,
	Action: runDocs,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "man",
			Usage: "Print a roff man page",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Path to output to instead of stdout (will overwrite if exists)",
		},
	},
}

const syntaxIntro = "A layout is a comma-separated list of fields, most significant bit first."

func runDocs(c *cli.Context) error {
	var (
		docs string
		err  error
	)
	if c.Bool("man") {
		docs, err = c.App.ToMan()
		docs = strings.TrimRight(docs, "\n") + "\n" + manSyntax()
	} else {
		docs, err = c.App.ToMarkdown()
		docs = strings.TrimRight(docs, "\n") + "\n\n" + markdownSyntax()
	}
	if err != nil {
		return err
	}

	out := c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	_, err = io.WriteString(out, docs)
	return err
}

func markdownSyntax() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# LAYOUT SYNTAX\n\n%s\n\n| Field | Value |\n| --- | --- |\n", syntaxIntro)
	for _, u := range layout.Usages {
		fmt.Fprintf(&b, "| `%s` | %s |\n", u.Form, u.Meaning)
	}
	return b.String()
}

func manSyntax() string {
	var b strings.Builder
	fmt.Fprintf(&b, ".SH LAYOUT SYNTAX\n%s\n", syntaxIntro)
	for _, u := range layout.Usages {
		fmt.Fprintf(&b, ".TP\n\\fB%s\\fP\n%s\n", u.Form, u.Meaning)
	}
	return b.String()
}
