// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// newApp returns the command line application. Reports are produced by insp.
func newApp(insp inspector) *cli.App {
	return &cli.App{
		Name:      "mkvrename",
		Usage:     "Set title and track names of Matroska files from their metadata.",
		ArgsUsage: "mkvfile|directory ...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation.",
				EnvVars: []string{"MKVRENAME_YES"},
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Dry-run mode (only show commands).",
				EnvVars: []string{"MKVRENAME_DRY_RUN"},
			},
			&cli.BoolFlag{
				Name:    "parse-name",
				Aliases: []string{"p"},
				Usage:   "Build the title from scene information in the file name.",
				EnvVars: []string{"MKVRENAME_PARSE_NAME"},
			},
			&cli.StringFlag{
				Name:  "ignore-file",
				Usage: "File with ignore patterns (gitignore syntax) used when walking directories.",
				Value: ".mkvignore",
			},
		},
		Before: func(c *cli.Context) error {
			// Run will resolve to a print-only version when dry-run is chosen.
			var run runner = runCommand(0)
			if c.Bool("dry-run") {
				run = fakeRunCommand(0)
			}
			ctx := context.WithValue(c.Context, runnerKey, run)
			c.Context = context.WithValue(ctx, inspectorKey, insp)
			return nil
		},
		Action: actionRename,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Show current and new names of all tracks.",
				ArgsUsage: "mkvfile|directory ...",
				Action:    actionShow,
			},
			{
				Name:      "tree",
				Usage:     "Print the normalized mkvinfo report.",
				ArgsUsage: "mkvfile|directory ...",
				Action:    actionTree,
			},
			{
				Name:   "version",
				Usage:  "Show version information.",
				Action: actionVersion,
			},
		},
	}
}

func main() {
	// Plain logs.
	log.SetFlags(0)

	if err := requirements(); err != nil {
		log.Fatalf("Requirements check: %v", err)
	}

	if err := newApp(mkvinfoCommand(0)).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
