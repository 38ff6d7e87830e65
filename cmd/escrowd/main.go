package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string

	flagLogLevel = "log_level"
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "log level: debug, info, error or none")

	flag.CommandLine.Usage = helpMessage
}

// commands is a register of all available commands. The name is used to
// match with the first argument given.
//
// A command is given the home directory, a logger, the output to write
// results to and its command line arguments, without the program and the
// command name. It is the responsibility of the command function to parse
// the arguments.
var commands = map[string]func(home string, logger log.Logger, out io.Writer, args []string) error{
	"approve": cmdApprove,
	"balance": cmdBalance,
	"create":  cmdCreate,
	"init":    cmdInit,
	"settle":  cmdSettle,
	"show":    cmdShow,
	"version": cmdVersion,
}

func helpMessage() {
	fmt.Fprintln(os.Stderr, "escrowd")
	fmt.Fprintln(os.Stderr, "          Multi party escrow on a local merkle store")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "Usage: escrowd [-home <dir>] <command> [<flags>]\n")
	fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
	fmt.Fprintln(os.Stderr, "Run 'escrowd <command> -help' to learn more about each command.")
	fmt.Fprintln(os.Stderr, `
  -home string
        directory to store files under (default "$HOME/.escrowd")
  -log_level string
        log level: debug, info, error or none (default "info")`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Missing command:")
		helpMessage()
		os.Exit(2)
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).
		With("module", "escrowd")
	allowed, err := log.AllowLevel(*varLogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger = log.NewFilter(logger, allowed)

	run, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", flag.Arg(0))
		helpMessage()
		os.Exit(2)
	}
	if err := run(*varHome, logger, os.Stdout, flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error %d: %+v\n", errors.Code(err), err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(home string, logger log.Logger, out io.Writer, args []string) error {
	fmt.Fprintln(out, weave.Version())
	return nil
}
