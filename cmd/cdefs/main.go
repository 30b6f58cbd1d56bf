// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program cdefs extracts the literal constants defined by C header files,
// and reports their values and C-compatible integer kinds.
//
// Usage:
//
//	cdefs scan [--config F] [--json] [--no-color] FILE...
//	cdefs check [--unsigned] LITERAL...
//
// Input files ending in ".gz" or ".zst" are decompressed before scanning.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/ctrans"
	"github.com/creachadair/ctrans/decl"
	"github.com/creachadair/ctrans/diag"
	"github.com/urfave/cli"
)

var errFailed = errors.New("one or more inputs failed")

func main() {
	log.SetFlags(0)
	log.SetPrefix("cdefs: ")

	app := cli.NewApp()
	app.Name = "cdefs"
	app.Usage = "extract literal constants from C headers"

	noColorFlag := cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colors in error messages",
	}

	app.Commands = []cli.Command{
		{
			Name:      "scan",
			Aliases:   []string{"s"},
			Usage:     "List the constants defined by header file(s)",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config", Usage: "read settings from this HuJSON file"},
				cli.BoolFlag{Name: "json", Usage: "write JSON lines instead of text"},
				noColorFlag,
			},
			Action: runScan,
		},
		{
			Name:      "check",
			Aliases:   []string{"c"},
			Usage:     "Classify literal(s) given as arguments",
			ArgsUsage: "LITERAL...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "unsigned", Usage: "accept only unsigned 32- and 64-bit values"},
				noColorFlag,
			},
			Action: runCheck,
		},
	}

	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runScan(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.Bool("json") {
		cfg.Format = "json"
	}
	if c.Bool("no-color") {
		cfg.Color = false
	}
	if c.NArg() == 0 {
		return errors.New("no input files")
	}

	var nfail int
	for _, path := range c.Args() {
		if err := scanFile(os.Stdout, path, cfg); err != nil {
			diag.Render(os.Stderr, err, diag.Options{Color: cfg.Color})
			nfail++
		}
	}
	if nfail != 0 {
		return errFailed
	}
	return nil
}

// scanFile parses the header at path and writes its constants to w.
func scanFile(w io.Writer, path string, cfg *config) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	f, err := decl.Parse(ctrans.NewSource(path, data))
	if err != nil {
		return err
	}
	return writeConstants(w, path, selectConstants(f, cfg), cfg.Format)
}

func runCheck(c *cli.Context) error {
	opts := diag.Options{Color: !c.Bool("no-color")}
	var nfail int
	for i, arg := range c.Args() {
		src := ctrans.NewSourceString(fmt.Sprintf("arg%d", i+1), arg)
		kind, value, err := checkLiteral(src, c.Bool("unsigned"))
		if err != nil {
			diag.Render(os.Stderr, err, opts)
			nfail++
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", arg, kind, value)
	}
	if nfail != 0 {
		return errFailed
	}
	return nil
}

// checkLiteral parses the complete text of src as a single literal.
func checkLiteral(src *ctrans.Source, unsigned bool) (kind, value string, _ error) {
	var p ctrans.Parser[ctrans.Literal] = ctrans.LiteralRule
	if unsigned {
		p = ctrans.Map(ctrans.IntegerRule[ctrans.UnsignedInt](), func(z ctrans.UintLiteral) ctrans.Literal {
			return z.IntoAll()
		})
	}
	rest, lit, err := ctrans.Parse(ctrans.Lexeme(p), src.Span())
	if err != nil {
		return "", "", err
	}
	if rest, err = ctrans.SkipSpace(rest); err != nil {
		return "", "", err
	} else if !rest.IsEmpty() {
		return "", "", ctrans.Errorf(rest, "unexpected text after literal")
	}
	kind, value = describe(lit)
	return kind, value, nil
}
