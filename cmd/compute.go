package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/exposure"
	"github.com/google/subcommands"
)

// computeCmd holds the flags for the 'compute' subcommand.
type computeCmd struct {
	inputFlags
	output       string
	outputFormat string
}

func (*computeCmd) Name() string     { return "compute" }
func (*computeCmd) Synopsis() string { return "compute weights and risk contributions from holdings" }
func (*computeCmd) Usage() string {
	return `rcx compute [-i <holdings>] [-if csv|jsonl] [-o <file>] [-of csv|jsonl|msgpack] [-config <policy.yaml>]

  Reads holdings, writes one row per instrument of each portfolio group and date.
`
}

func (c *computeCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "output file, standard output when empty")
	f.StringVar(&c.outputFormat, "of", "", "output format: csv, jsonl or msgpack. Defaults from the file extension, csv on standard output")
}

func (c *computeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := formatFor(c.outputFormat, c.output, exposure.CSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing output format: %v\n", err)
		return subcommands.ExitUsageError
	}

	log := newLogger()
	res, err := c.run(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing rows: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeRows(c.output, format, res.Rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing rows: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Debug().Str("output", c.output).Int("rows", len(res.Rows)).Msg("written")
	return subcommands.ExitSuccess
}

// writeRows encodes rows into filename, or standard output when empty.
func writeRows(filename string, format exposure.Format, rows []exposure.Row) (err error) {
	var w io.Writer = os.Stdout
	if filename != "" {
		f, cerr := os.Create(filename)
		if cerr != nil {
			return fmt.Errorf("cannot create %q: %w", filename, cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return exposure.EncodeRows(w, format, rows)
}
