package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/exposure/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	raw bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `rcx topic [-raw] [<topic>...|*]

Print the documentation topics, or the list of topics when none is given.
'*' prints all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print the markdown source")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}

	md, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading topic: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
