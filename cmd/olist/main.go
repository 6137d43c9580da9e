package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	verbose bool
	logger  *slog.Logger
	in      io.Reader
	w       io.Writer
	e       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, w, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "olist"
	app.Usage = "build, filter and sort offset-linked lists"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "verbose, v",
			Usage:  "log growth and sort steps to stderr",
			EnvVar: "OLIST_VERBOSE",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "sort",
			Usage:     "sort integers with the list or array engine",
			ArgsUsage: "[INT...] (read from stdin when absent)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "mode, m",
					Value:  "list",
					Usage:  "storage to sort in `MODE` [list|array|both]",
					EnvVar: "OLIST_MODE",
				},
				cli.BoolFlag{
					Name:  "reverse, r",
					Usage: "sort in descending order",
				},
				cli.BoolFlag{
					Name:  "stats, s",
					Usage: "print comparison and swap counts to stderr",
				},
			},
			Action: runSort,
		},
		{
			Name:      "filter",
			Usage:     "drop every multiple of a divisor while walking the list",
			ArgsUsage: "[INT...] (read from stdin when absent)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "divisor, d",
					Value: 2,
					Usage: "drop values divisible by `N`",
				},
			},
			Action: runFilter,
		},
		{
			Name:      "map",
			Usage:     "store KEY=VALUE pairs and print them in key order",
			ArgsUsage: "KEY=VALUE...",
			Action:    runMap,
		},
	}

	app.Before = func(c *cli.Context) error {
		m := &metadata{
			verbose: c.Bool("verbose"),
			in:      in,
			w:       w,
			e:       e,
		}
		level := slog.LevelInfo
		if m.verbose {
			level = slog.LevelDebug
		}
		m.logger = slog.New(slog.NewTextHandler(e, &slog.HandlerOptions{Level: level}))
		c.App.Metadata = map[string]interface{}{"config": m}
		return nil
	}
	return app
}
