// qrctl decodes, builds and checks Thai QR payment payloads from the
// command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/thaiqr/internal/logging"
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	summary string
	run     func(e env, args []string) error
}

var commands = []command{
	{"decode", "decode a payload (use - to read stdin)", runDecode},
	{"encode", "build a bill payment payload", runEncode},
	{"sample", "print the sample generator input and its payload", runSample},
	{"crc", "print the CRC-16 checksum of the argument", runCRC},
	{"verify", "verify the trailing checksum of a payload", runVerify},
}

func main() {
	logging.ConfigureCLI()

	e := env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(e, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "qrctl: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(e env, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(e.stdout)
		if len(args) == 0 {
			return usageError("missing command")
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		if err := cmd.run(e, args[1:]); !errors.Is(err, errHelp) {
			return err
		}
		return nil
	}
	printUsage(e.stderr)
	return usageError("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: qrctl <command> [flags] [args]")
	fmt.Fprintln(w)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.summary)
	}
}
