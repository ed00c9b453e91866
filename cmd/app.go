// Package cmd implements the CLI application computing risk contributions from holdings.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/exposure"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&computeCmd{}, "pipeline")
	c.Register(&reportCmd{}, "pipeline")
	c.Register(&queryCmd{}, "pipeline")
	c.Register(&checkCmd{}, "pipeline")

	c.Register(&columnsCmd{}, "documentation")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var verbose = flag.Bool("v", false, "log the pipeline stages on stderr")

// newLogger returns the logger of a single invocation, tagged with a run id.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Str("run", uuid.NewString()).
		Logger()
}

// inputFlags are the flags shared by the subcommands that run the pipeline.
type inputFlags struct {
	input  string
	format string
	config string
}

func (in *inputFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&in.input, "i", "", "holdings file, standard input when empty")
	f.StringVar(&in.format, "if", "", "holdings format: csv or jsonl. Defaults from the file extension, csv on standard input")
	f.StringVar(&in.config, "config", "", "YAML policy file, see 'rcx topic policy'")
}

// run decodes the holdings and runs the pipeline over them.
func (in *inputFlags) run(log zerolog.Logger) (*exposure.Result, error) {
	policy := exposure.DefaultPolicy()
	if in.config != "" {
		var err error
		if policy, err = exposure.LoadPolicy(in.config); err != nil {
			return nil, err
		}
	}

	holdings, err := in.decode()
	if err != nil {
		return nil, err
	}
	log.Debug().Str("input", in.input).Int("holdings", len(holdings)).Msg("decoded")

	return exposure.NewPipeline(exposure.WithPolicy(policy), exposure.WithLogger(log)).Run(holdings)
}

func (in *inputFlags) decode() ([]exposure.Holding, error) {
	format, err := formatFor(in.format, in.input, exposure.CSV)
	if err != nil {
		return nil, err
	}

	var r io.Reader = os.Stdin
	if in.input != "" {
		f, err := os.Open(in.input)
		if err != nil {
			return nil, fmt.Errorf("cannot open holdings %q: %w", in.input, err)
		}
		defer f.Close()
		r = f
	}

	holdings, err := exposure.DecodeHoldings(r, format)
	if err != nil && in.input != "" {
		return nil, fmt.Errorf("in %q: %w", in.input, err)
	}
	return holdings, err
}

// formatFor returns the explicit format name if any, the format of filename
// otherwise, def for the standard streams.
func formatFor(name, filename string, def exposure.Format) (exposure.Format, error) {
	switch {
	case name != "":
		return exposure.ParseFormat(name)
	case filename != "":
		return exposure.FormatOf(filename)
	}
	return def, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
