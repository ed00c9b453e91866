// Command rcx computes risk contributions from portfolio holdings.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/exposure/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("rcx")

	commander := subcommands.NewCommander(flag.CommandLine, "rcx")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
