// run.go contains the interface to os.exec with a mockable object.

package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type runner interface {
	run(string, ...string) error
}

// inspector returns the mkvinfo report for a file.
type inspector interface {
	report(string) (string, error)
}

// runner provides a simple and mockable interface to exec.Command()
type runCommand int

// run creates an *exec.Cmd object using exec.Command and runs
// it using exec.Run. The return is the return of exec.Run.
func (x runCommand) run(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	io.Copy(os.Stdout, stdout)
	io.Copy(os.Stderr, stderr)

	return cmd.Wait()
}

// fakeRunCommand provides a runner for dry-run operations.
type fakeRunCommand int

// Fakerunner just logs the commands (dry-run)
func (x fakeRunCommand) run(name string, args ...string) error {
	log.Print(quoteCommand(name, args...))
	return nil
}

// quoteCommand formats a command line for display.
func quoteCommand(name string, args ...string) string {
	var quoted []string

	for _, a := range args {
		quoted = append(quoted, strconv.Quote(a))
	}
	return fmt.Sprintf("%q %s", name, strings.Join(quoted, " "))
}

// mkvinfoCommand runs mkvinfo to produce the textual report of a file. The
// UI language is forced to English so section names remain stable.
type mkvinfoCommand int

func (x mkvinfoCommand) report(fname string) (string, error) {
	var stderr bytes.Buffer

	cmd := exec.Command("mkvinfo", "--ui-language", "en_US", fname)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			// mkvinfo prints its errors to stdout.
			msg = strings.TrimSpace(string(out))
		}
		return "", fmt.Errorf("mkvinfo: %v: %s", err, msg)
	}
	return string(out), nil
}
