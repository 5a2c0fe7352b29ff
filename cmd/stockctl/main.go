// stockctl runs the stock tools against local folders.
//
// Usage:
//
//	stockctl scan [flags] <event-dir>
//	stockctl allocate --stock <file> --demand <file> [flags]
//	stockctl reconcile [flags] <event-dir>
//	stockctl resolve [flags] <label>
//	stockctl classify [flags] <folder-name>
//	stockctl hash-password [flags] [password]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/iliyamo/ticket-stock-reconciler/internal/config"
)

// errShortfall makes allocate exit with status 2.
var errShortfall = errors.New("insufficient stock")

type command func(args []string, stdin io.Reader, stdout io.Writer) error

var commands = map[string]command{
	"scan":          scanCmd,
	"allocate":      allocateCmd,
	"reconcile":     reconcileCmd,
	"resolve":       resolveCmd,
	"classify":      classifyCmd,
	"hash-password": hashPasswordCmd,
}

func main() {
	_ = config.LoadEnvFiles(".env")
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	name := os.Args[1]
	if name == "help" || name == "--help" || name == "-h" {
		printUsage(os.Stdout)
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", name)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	err := cmd(os.Args[2:], os.Stdin, os.Stdout)
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
	case errors.Is(err, errShortfall):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `stockctl - ticket stock reconciliation tools

USAGE
    stockctl <command> [flags] [args]

COMMANDS
    scan           Print the stock report of an event folder
    allocate       Allocate a listing sheet over a stock report
    reconcile      Print the reconciliation report of an event folder
    resolve        Canonicalize a sector label
    classify       Read an order folder name
    hash-password  Print a bcrypt hash for OPERATOR_PASSWORD_HASH

ENVIRONMENT
    VENUE_DB_PATH  Venue block database used by reconcile, allocate and resolve
    LOG_LEVEL      debug, info, warn or error (default warn)
`)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// oneArg parses fs and returns its single positional argument.
func oneArg(fs *pflag.FlagSet, args []string, what string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one %s", fs.Name(), what)
	}
	return fs.Arg(0), nil
}
