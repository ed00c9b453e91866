package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/exposure"
	"github.com/google/subcommands"
)

type columnsCmd struct{}

func (*columnsCmd) Name() string     { return "columns" }
func (*columnsCmd) Synopsis() string { return "list the input and output columns" }
func (*columnsCmd) Usage() string {
	return `rcx columns

  Lists the holding columns read by the pipeline, and the columns it writes, in order.
`
}

func (c *columnsCmd) SetFlags(f *flag.FlagSet) {}

func (c *columnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var b strings.Builder
	fmt.Fprintln(&b, "# Columns")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "## Input")
	fmt.Fprintln(&b)
	for _, name := range exposure.HoldingColumns() {
		fmt.Fprintf(&b, "* `%s`\n", name)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "## Output")
	fmt.Fprintln(&b)
	for i, name := range exposure.Columns {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, name)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
