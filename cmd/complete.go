package cmd

import (
	"flag"

	"github.com/etnz/capital"
	"github.com/etnz/capital/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// assetArgs lists the commands whose first argument is an asset.
var assetArgs = map[string]bool{
	"allocate": true, "adjust": true, "liquidate": true, "pnl": true,
	"items": true, "item-add": true, "item-remove": true,
	"buy": true, "price": true, "stats": true,
}

// predictAssets completes the well known asset keys.
var predictAssets = func() predict.Set {
	var keys predict.Set
	for _, k := range capital.CanonicalKeys {
		keys = append(keys, string(k))
	}
	return keys
}()

func predictTopics(string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}

// Completion describes the commands registered in cdr for shell completion.
func Completion(cdr *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub: make(map[string]*complete.Command),
		Flags: map[string]complete.Predictor{
			"state-file": predict.Files("*.json"),
			"currency":   predict.Set{capital.Toman, "USD", "EUR"},
			"usdt":       predict.Something,
			"v":          predict.Nothing,
		},
	}
	var names predict.Set
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		names = append(names, c.Name())
		root.Sub[c.Name()] = commandCompletion(c)
	})
	if help, ok := root.Sub["help"]; ok {
		help.Args = names
	}
	return root
}

func commandCompletion(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	cc := &complete.Command{Flags: make(map[string]complete.Predictor), Args: predict.Nothing}
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case isBool(f):
			cc.Flags[f.Name] = predict.Nothing
		case f.Name == "asset":
			cc.Flags[f.Name] = predictAssets
		case f.Name == "o":
			cc.Flags[f.Name] = predict.Files("*.json")
		default:
			cc.Flags[f.Name] = predict.Something
		}
	})
	switch {
	case assetArgs[c.Name()]:
		cc.Args = predictAssets
	case c.Name() == "topic":
		cc.Args = complete.PredictFunc(predictTopics)
	case c.Name() == "import":
		cc.Args = predict.Files("*.json")
	}
	return cc
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
