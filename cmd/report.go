package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/exposure/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	inputFlags
	raw bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the contributions of each portfolio group" }
func (*reportCmd) Usage() string {
	return `rcx report [-i <holdings>] [-if csv|jsonl] [-config <policy.yaml>] [-raw]

  Displays one table per portfolio group and date, followed by the values
  that need attention.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.BoolVar(&c.raw, "raw", false, "print the markdown source instead of rendering it")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := c.run(newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing rows: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.RenderReport(renderer.NewReport(res.Rows))
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}
