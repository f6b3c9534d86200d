// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/table"
	ParseTorrentName "github.com/middelink/go-parse-torrent-name"
	ignore "github.com/sabhiram/go-gitignore"
)

// A friendly chat about Matroska metadata track numbers.
//
// mkvinfo lists tracks in the order they are stored in the file, and
// mkvpropedit addresses them starting at 1 (ONE) in that same order
// ("--edit track:1"). Tracks are always displayed here using the
// mkvpropedit numbering.

// Extension of the files picked up when walking directories.
const mkvExt = ".mkv"

// BuildVersion holds the git build number (set by make).
var BuildVersion string

// fileStem returns the file name without directory and extension.
func fileStem(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// deriveTitle returns the title for a file. By default, this is the file
// name stem. If parseName is set, the "Scene" information in the file name
// is used to build a title in the format:
//
// Title (year) - SnnEnn
//
// Year and season/episode are optional. The stem is used if no title can be
// parsed from the name.
func deriveTitle(fname string, parseName bool) string {
	stem := fileStem(fname)
	if !parseName {
		return stem
	}

	parsed, err := ParseTorrentName.Parse(filepath.Base(fname))
	if err != nil || parsed.Title == "" {
		return stem
	}

	titleparts := []string{properTitle(parsed.Title)}
	if parsed.Year != 0 {
		titleparts = append(titleparts, fmt.Sprintf("(%d)", parsed.Year))
	}
	if parsed.Season != 0 || parsed.Episode != 0 {
		titleparts = append(titleparts, fmt.Sprintf("- S%02.2dE%02.2d", parsed.Season, parsed.Episode))
	}
	return strings.Join(titleparts, " ")
}

// properTitle performs correct capitalization on Titles, considering small
// words on the English language (taken from Go Cookbook). The first word is
// always capitalized.
func properTitle(input string) string {
	words := strings.Fields(input)
	smallwords := " a an on the to of and in "
	for index, word := range words {
		if index > 0 && strings.Contains(smallwords, " "+strings.ToLower(word)+" ") {
			words[index] = strings.ToLower(word)
			continue
		}
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[index] = string(r)
	}
	return strings.Join(words, " ")
}

// editCommand returns the mkvpropedit command line that applies the naming
// to a file. mkvpropedit uses base 1 for tracks.
func editCommand(fname string, n naming) []string {
	command := []string{
		"mkvpropedit",
		fname,
		"--set", "title=" + n.title,
	}
	for idx, name := range n.tracks {
		command = append(command, "--edit", fmt.Sprintf("track:%d", idx+1), "--set", "name="+name)
	}
	return command
}

// planFile inspects a file and returns the naming that should be applied to it.
func planFile(fname string, insp inspector, parseName bool) (naming, error) {
	text, err := insp.report(fname)
	if err != nil {
		return naming{}, err
	}
	root, err := parseReport(text)
	if err != nil {
		return naming{}, err
	}
	return classify(root, deriveTitle(fname, parseName))
}

// printPlan shows the changes about to be applied to a file.
func printPlan(w io.Writer, fname string, n naming) {
	fmt.Fprintf(w, "%s => %s\n", fname, n.title)
	for idx, name := range n.tracks {
		fmt.Fprintf(w, "  track %d => %s\n", idx+1, name)
	}
}

// confirm asks a yes/no question and returns true if the answer is "y" or
// "yes" (case insensitive). Anything else, including EOF, means no.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// show lists the current and new names of all tracks in a file.
func show(w io.Writer, fname string, meta mkvMetadata, n naming) {
	tab := table.NewWriter()
	tab.SetOutputMirror(w)
	tab.AppendHeader(table.Row{"Track", "Type", "Language", "Codec", "Current Name", "New Name"})
	tab.AppendRow(table.Row{"title", "", "", "", meta.title, n.title})

	for idx, name := range n.tracks {
		row := table.Row{idx + 1}
		if idx < len(meta.tracks) {
			t := meta.tracks[idx]
			row = append(row, t.tracktype, t.language, t.codecID, t.name)
		} else {
			row = append(row, "", "", "", "")
		}
		row = append(row, name)
		tab.AppendRow(row)
	}
	fmt.Fprintf(w, "%s\n", fname)
	tab.Render()
}

// expandFiles returns the list of files to process. Directories are walked
// for Matroska files, skipping paths matched by the ignore file (gitignore
// syntax) at the top of each directory. Other arguments are kept as is.
func expandFiles(args []string, ignoreFile string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := walkDir(arg, ignoreFile)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walkDir(root, ignoreFile string) ([]string, error) {
	var gi *ignore.GitIgnore
	if ignoreFile != "" {
		// A missing ignore file is not an error.
		gi, _ = ignore.CompileIgnoreFile(filepath.Join(root, ignoreFile))
	}

	var results []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && gi != nil && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), mkvExt) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		results = append(results, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(results)
	return results, nil
}

// requirements returns nil if all required tools are installed and an error indicating
// the tools missing otherwise.
func requirements() error {
	var tools = []string{"mkvinfo", "mkvpropedit"}

	missing := []string{}
	for _, t := range tools {
		_, err := exec.LookPath(t)
		if err != nil {
			missing = append(missing, t)
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf("required 3rd party tool(s) missing: %s", strings.Join(missing, ","))
	}
	return nil
}
