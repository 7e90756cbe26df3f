// adc decodes, encodes and renders Artifact Deck Codes from the command
// line.
//
// Usage:
//
//	adc decode [--cards DIR] [--lang LANG] [--json] CODE...
//	adc encode [--file PATH] [--sanitize POLICY]
//	adc qr [--size N] [--output FILE] CODE
//	adc cards [--cards DIR] [--heroes] [--search WORDS] [--lang LANG]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// usageError marks errors caused by bad arguments; they exit with 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
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
	{"decode", "print the deck behind one or more codes", runDecode},
	{"encode", "read a deck as JSON and print its code", runEncode},
	{"qr", "write a QR code PNG for a deck code", runQR},
	{"cards", "list cards from a card set directory", runCards},
}

func main() {
	os.Exit(run(os.Args[1:], env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}))
}

func run(args []string, e env) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(e.stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		err := c.run(e, args[1:])
		if err == nil || errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(e.stderr, "adc %s: %v\n", c.name, err)
		var usage *usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	fmt.Fprintf(e.stderr, "adc: unknown command %q\n", args[0])
	printUsage(e.stderr)
	return 2
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: adc <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

func newFlagSet(name string, e env) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("adc "+name, pflag.ContinueOnError)
	flagSet.SetOutput(e.stderr)
	return flagSet
}
