// Command lpf tracks concentrated liquidity positions and the rewards they earn.
//
// Install the shell completion with COMP_INSTALL=1 lpf.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	"github.com/etnz/lpfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	completion(commander).Complete("lpf")

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}
	if err := cmd.ApplyConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}

	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// isRegistered reports whether name is a builtin command.
func isRegistered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		found = found || c.Name() == name
	})
	return found
}

// completion describes the commands and their flags for the shell completion.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(f)}
	})
	return root
}

// flagPredictors predicts file names for file flags and anything for the others.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case fl.Name == "ledger-file":
			res[fl.Name] = predict.Files("*.jsonl")
		case fl.Name == "config":
			res[fl.Name] = predict.Files("*.yaml")
		case fl.Name == "prices-db":
			res[fl.Name] = predict.Files("*.db")
		case fl.Name == "f":
			res[fl.Name] = predict.Files("*.json")
		case isBool(fl):
			res[fl.Name] = predict.Nothing
		case strings.HasPrefix(fl.Usage, "Transaction date"), strings.HasPrefix(fl.Usage, "Report date"), strings.HasPrefix(fl.Usage, "Price date"):
			res[fl.Name] = predict.Set{fl.DefValue}
		default:
			res[fl.Name] = predict.Something
		}
	})
	return res
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
