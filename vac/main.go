package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/valops/vacct/cmd"
)

// completion describes the command tree for shell completion. It must run
// before flag parsing.
func completion() {
	globalFlags := map[string]complete.Predictor{
		"config": predict.Files("*.json"),
		"db":     predict.Files("*.db"),
		"rpc":    predict.Nothing,
	}
	c := &complete.Command{
		Flags: globalFlags,
		Sub: map[string]*complete.Command{
			"fetch":     {Flags: map[string]complete.Predictor{"inception": predict.Nothing}},
			"prices":    {Flags: map[string]complete.Predictor{"inception": predict.Nothing}},
			"cost":      {},
			"report":    {Flags: map[string]complete.Predictor{"f": predict.Set{"markdown", "csv", "schedule-c", "summary"}}},
			"reconcile": {},
			"serve":     {},
			"assist":    {},
			"topic":     {},
		},
	}
	c.Complete("vac")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
