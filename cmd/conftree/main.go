// FILE: cmd/conftree/main.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/eeiserd/conftree"
)

func main() {
	app := &cli.App{
		Name:     "conftree",
		Usage:    "inspect, edit and convert configuration trees",
		Commands: commands(),
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "conftree:", err)
		os.Exit(1)
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "get",
			Usage:     "Print the value stored at a tag path",
			ArgsUsage: "<file> <tagPath>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "default", Usage: "Value to print when the tag is missing"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return cli.Exit("usage: conftree get <file> <tagPath>", 2)
				}
				store, err := conftree.Open(c.Args().Get(0))
				if err != nil {
					if !errors.Is(err, conftree.ErrConfigNotFound) || !c.IsSet("default") {
						return err
					}
				}
				tagPath := c.Args().Get(1)
				if c.IsSet("default") {
					fmt.Println(store.StringDefault(tagPath, c.String("default")))
					return nil
				}
				value, err := store.String(tagPath)
				if err != nil {
					return err
				}
				fmt.Println(value)
				return nil
			},
		},
		{
			Name:      "set",
			Usage:     "Store a tag value and save the file",
			ArgsUsage: "<file> <tagPath> <value>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 3 {
					return cli.Exit("usage: conftree set <file> <tagPath> <value>", 2)
				}
				path := c.Args().Get(0)
				store, err := conftree.Open(path)
				if err != nil && !errors.Is(err, conftree.ErrConfigNotFound) {
					return err
				}
				store.StoreString(c.Args().Get(1), c.Args().Get(2))
				return store.Save()
			},
		},
		{
			Name:      "list",
			Usage:     "List the subsections and tags of a section",
			ArgsUsage: "<file> [path]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return cli.Exit("usage: conftree list <file> [path]", 2)
				}
				store, err := conftree.Open(c.Args().Get(0))
				if err != nil {
					return err
				}
				sec := store.Root()
				if path := c.Args().Get(1); path != "" {
					if sec, err = store.Section(path); err != nil {
						return err
					}
				}
				return sec.List(os.Stdout)
			},
		},
		{
			Name:      "tree",
			Usage:     "Dump the whole tree in the native text format",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("usage: conftree tree <file>", 2)
				}
				store, err := conftree.Open(c.Args().Get(0))
				if err != nil {
					return err
				}
				_, err = store.WriteTo(os.Stdout)
				return err
			},
		},
		{
			Name:      "merge",
			Usage:     "Merge configuration files, later files taking precedence",
			ArgsUsage: "<out> <file>...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					return cli.Exit("usage: conftree merge <out> <file>...", 2)
				}
				store := conftree.New()
				for _, path := range c.Args().Slice()[1:] {
					if err := store.Merge(path); err != nil {
						return err
					}
				}
				return store.SaveAs(c.Args().Get(0))
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert between TOML/JSON/YAML and the native format",
			ArgsUsage: "<in> <out>",
			Description: "Imports a foreign document and writes it in the native text\n" +
				"format, or exports a native file as TOML when <out> ends in .toml.",
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return cli.Exit("usage: conftree convert <in> <out>", 2)
				}
				in, out := c.Args().Get(0), c.Args().Get(1)

				if strings.HasSuffix(out, ".toml") {
					store, err := conftree.Open(in)
					if err != nil {
						return err
					}
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					return store.ExportTOML(f)
				}

				store, err := conftree.Import(in)
				if err != nil {
					return err
				}
				return store.SaveAs(out)
			},
		},
		{
			Name:      "send",
			Usage:     "Encode a configuration file as a wire stream on stdout",
			ArgsUsage: "<file>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("usage: conftree send <file>", 2)
				}
				store, err := conftree.Open(c.Args().Get(0))
				if err != nil {
					return err
				}
				return store.WriteWire(os.Stdout)
			},
		},
		{
			Name:      "recv",
			Usage:     "Decode a wire stream from stdin and save it as a text file",
			ArgsUsage: "<out>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("usage: conftree recv <out>", 2)
				}
				store, err := conftree.ReadWire(os.Stdin)
				if err != nil {
					return err
				}
				return store.SaveAs(c.Args().Get(0))
			},
		},
	}
}
