package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/exposure"
	"github.com/google/subcommands"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	inputFlags
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "list infinite weights and degenerate portfolio totals" }
func (*checkCmd) Usage() string {
	return `rcx check [-i <holdings>] [-if csv|jsonl] [-config <policy.yaml>]

  Lists the values downstream consumers must guard against. The exit status is
  a failure when there is any.
`
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := newLogger()
	res, err := c.run(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing rows: %v\n", err)
		return subcommands.ExitFailure
	}

	anomalies := exposure.Inspect(res.Rows)
	for _, a := range anomalies {
		fmt.Println(a)
	}
	if len(anomalies) > 0 {
		log.Warn().Int("anomalies", len(anomalies)).Int("rows", len(res.Rows)).Msg("check failed")
		return subcommands.ExitFailure
	}
	log.Info().Int("rows", len(res.Rows)).Msg("no anomaly")
	return subcommands.ExitSuccess
}
