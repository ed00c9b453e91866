package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/exposure"
	"github.com/google/subcommands"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct {
	inputFlags
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "select values from the rows with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `rcx query [-i <holdings>] [-if csv|jsonl] [-config <policy.yaml>] <jsonpath>

  Evaluates the expression on the array of rows, in their JSONL form, and
  prints the result as JSON. For instance:

    rcx query -i holdings.csv '$[?(@.portfolio_gps_code == "P1")].convexity_contrib_weight'
`
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}

	res, err := c.run(newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing rows: %v\n", err)
		return subcommands.ExitFailure
	}

	value, err := queryRows(res.Rows, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// queryRows evaluates a JSONPath expression on rows, as the generic JSON value
// of an array of row objects.
func queryRows(rows []exposure.Row, path string) (any, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	return jsonpath.Get(path, jobj)
}
