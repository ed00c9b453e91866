package cmd

import (
	"github.com/etnz/exposure/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the subcommands registered by Register.
func Completion() *complete.Command {
	input := func(extra map[string]complete.Predictor) *complete.Command {
		flags := map[string]complete.Predictor{
			"i":      predict.Files("*"),
			"if":     predict.Set{"csv", "jsonl"},
			"config": predict.Files("*.yaml"),
		}
		for name, p := range extra {
			flags[name] = p
		}
		return &complete.Command{Flags: flags}
	}

	topics, _ := docs.GetAllTopics()
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"compute": input(map[string]complete.Predictor{
				"o":  predict.Files("*"),
				"of": predict.Set{"csv", "jsonl", "msgpack"},
			}),
			"report":  input(map[string]complete.Predictor{"raw": predict.Nothing}),
			"query":   input(nil),
			"check":   input(nil),
			"columns": {},
			"topic": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  predict.Set(append(topics, "*")),
			},
		},
	}
}
