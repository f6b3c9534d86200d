// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
)

type contextKey int

const (
	runnerKey contextKey = iota
	inspectorKey
)

// renameOptions controls how renameFiles processes each file.
type renameOptions struct {
	yes       bool
	dryrun    bool
	parseName bool
}

// errorFromSlice converts the slice of strings into a single multi-line string
// and returns it, or returns nil if the error list is empty.
func errorFromSlice(errmsgs []string) error {
	if len(errmsgs) != 0 {
		return errors.New(strings.Join(errmsgs, "\n"))
	}
	return nil
}

// checkMultiArgs shows the help message for the current context and return an
// error if we don't have at least one argument.
func checkMultiArgs(c *cli.Context) error {
	if c.Args().Len() < 1 {
		showHelp(c)
		return errors.New("no files to process")
	}
	return nil
}

// showHelp shows the help for the running command, or the application help
// when running the default action.
func showHelp(c *cli.Context) {
	for _, cmd := range c.App.Commands {
		if c.Command != nil && cmd.Name == c.Command.Name {
			cli.ShowCommandHelp(c, cmd.Name)
			return
		}
	}
	cli.ShowAppHelp(c)
}

func runnerFromContext(ctx context.Context) runner {
	ret, ok := ctx.Value(runnerKey).(runner)
	if !ok {
		panic("internal error: Unable to retrieve runner from context.")
	}
	return ret
}

func inspectorFromContext(ctx context.Context) inspector {
	ret, ok := ctx.Value(inspectorKey).(inspector)
	if !ok {
		panic("internal error: Unable to retrieve inspector from context.")
	}
	return ret
}

// filesFromContext returns the file arguments, with directories expanded.
func filesFromContext(c *cli.Context) ([]string, error) {
	if err := checkMultiArgs(c); err != nil {
		return nil, err
	}
	return expandFiles(c.Args().Slice(), c.String("ignore-file"))
}

// renameFiles sets the title and track names of every file. Files failing
// inspection or naming are reported in the returned error, and do not stop
// the processing of the remaining files.
func renameFiles(files []string, opts renameOptions, insp inspector, run runner, in io.Reader, out io.Writer) error {
	var errmsgs []string

	stdin := bufio.NewReader(in)

	for _, fname := range files {
		n, err := planFile(fname, insp, opts.parseName)
		if err != nil {
			errmsgs = append(errmsgs, fmt.Sprintf("%s: %v", fname, err))
			continue
		}

		printPlan(out, fname, n)
		if !opts.yes && !opts.dryrun && !confirm(stdin, out, "Apply changes?") {
			fmt.Fprintf(out, "%s: skipped\n", fname)
			continue
		}

		command := editCommand(fname, n)
		if err := run.run(command[0], command[1:]...); err != nil {
			errmsgs = append(errmsgs, fmt.Sprintf("%s: %v", fname, err))
		}
	}
	return errorFromSlice(errmsgs)
}

func actionRename(c *cli.Context) error {
	files, err := filesFromContext(c)
	if err != nil {
		return err
	}
	opts := renameOptions{
		yes:       c.Bool("yes"),
		dryrun:    c.Bool("dry-run"),
		parseName: c.Bool("parse-name"),
	}
	return renameFiles(files, opts, inspectorFromContext(c.Context), runnerFromContext(c.Context), c.App.Reader, c.App.Writer)
}

func actionShow(c *cli.Context) error {
	files, err := filesFromContext(c)
	if err != nil {
		return err
	}

	insp := inspectorFromContext(c.Context)

	var errmsgs []string

	for _, fname := range files {
		n, err := planFile(fname, insp, c.Bool("parse-name"))
		if err != nil {
			errmsgs = append(errmsgs, fmt.Sprintf("%s: %v", fname, err))
			continue
		}
		meta, err := readMetadata(fname)
		if err != nil {
			errmsgs = append(errmsgs, fmt.Sprintf("%s: %v", fname, err))
			continue
		}
		show(c.App.Writer, fname, meta, n)
	}
	return errorFromSlice(errmsgs)
}

// actionTree prints the normalized report tree of each file.
func actionTree(c *cli.Context) error {
	files, err := filesFromContext(c)
	if err != nil {
		return err
	}

	insp := inspectorFromContext(c.Context)

	var errmsgs []string

	for _, fname := range files {
		text, err := insp.report(fname)
		if err != nil {
			errmsgs = append(errmsgs, fmt.Sprintf("%s: %v", fname, err))
			continue
		}
		root, err := parseReport(text)
		if err != nil {
			errmsgs = append(errmsgs, fmt.Sprintf("%s: %v", fname, err))
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s\n", fname)
		if err := encodeReport(c.App.Writer, root); err != nil {
			return err
		}
	}
	return errorFromSlice(errmsgs)
}

func actionVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "Build Version: %s\n", BuildVersion)
	return nil
}
